package matchmark

// OverlapPolicy decides which matcher's attribute survives when two
// matches cover the same text.
type OverlapPolicy uint8

const (
	// LastMatcherWins applies matches in configuration order, so a later
	// matcher's attribute overwrites an earlier one on overlap.
	LastMatcherWins OverlapPolicy = iota

	// FirstMatcherWins gives precedence to the earlier matcher.
	FirstMatcherWins
)

// String returns the policy name.
func (p OverlapPolicy) String() string {
	switch p {
	case LastMatcherWins:
		return "last-matcher-wins"
	case FirstMatcherWins:
		return "first-matcher-wins"
	default:
		return "unknown"
	}
}

// Scheduler defers a function past the current call stack. The initial
// document scan runs through it so that New returns before any derived
// writes are published.
type Scheduler func(fn func())

// Option configures a synchronizer.
type Option func(*Synchronizer)

// WithObserver sets the recovered-error observer.
func WithObserver(o Observer) Option {
	return func(s *Synchronizer) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithOverlapPolicy sets the overlap resolution policy.
func WithOverlapPolicy(p OverlapPolicy) Option {
	return func(s *Synchronizer) {
		s.policy = p
	}
}

// WithScheduler sets the scheduler for the deferred initial scan. The
// default runs the scan synchronously inside New.
func WithScheduler(sched Scheduler) Option {
	return func(s *Synchronizer) {
		if sched != nil {
			s.scheduler = sched
		}
	}
}
