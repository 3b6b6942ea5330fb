package matchmark

import "github.com/charmbracelet/log"

// Observer receives errors the synchronizer recovers from. The
// synchronizer never aborts a whole pass on a single failed write; it
// reports the failure and moves on, so one bad span cannot freeze
// derived formatting for the rest of the document.
type Observer interface {
	ObserveError(kind ErrorKind, err error)
}

// NopObserver discards every error.
type NopObserver struct{}

// ObserveError implements Observer.
func (NopObserver) ObserveError(ErrorKind, error) {}

// LogObserver reports recovered errors through a structured logger.
type LogObserver struct {
	logger *log.Logger
}

// NewLogObserver creates an observer over the given logger. A nil
// logger uses the package default.
func NewLogObserver(logger *log.Logger) *LogObserver {
	if logger == nil {
		logger = log.Default()
	}
	return &LogObserver{logger: logger}
}

// ObserveError implements Observer.
func (o *LogObserver) ObserveError(kind ErrorKind, err error) {
	o.logger.Warn("sync pass error", "kind", kind.String(), "err", err)
}
