package matchmark

import (
	"fmt"

	"github.com/dshills/matchmark/delta"
	"github.com/dshills/matchmark/document"
	"github.com/dshills/matchmark/pattern"
)

// Synchronizer keeps a matcher set's derived attributes consistent with
// the text of one document. It observes the document's change feed and
// rewrites derived runs on every line a local edit touched.
//
// The synchronizer follows the document's threading model: all edits,
// and therefore all listener callbacks, happen on a single goroutine.
type Synchronizer struct {
	doc       document.Document
	set       *pattern.Set
	sub       document.Subscription
	observer  Observer
	policy    OverlapPolicy
	scheduler Scheduler

	// applying is set while the synchronizer performs its own
	// FormatRange writes, so the change events those writes publish do
	// not retrigger a pass.
	applying bool
	disposed bool
}

// New creates a synchronizer over the document and matcher set,
// subscribes to the change feed, and schedules an initial scan of the
// whole document. With the default scheduler the scan completes before
// New returns.
func New(doc document.Document, set *pattern.Set, opts ...Option) (*Synchronizer, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if set == nil {
		return nil, ErrNilSet
	}

	s := &Synchronizer{
		doc:       doc,
		set:       set,
		observer:  NopObserver{},
		policy:    LastMatcherWins,
		scheduler: func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(s)
	}

	sub, err := doc.Subscribe(s.onChange)
	if err != nil {
		return nil, fmt.Errorf("subscribing to change feed: %w", err)
	}
	s.sub = sub

	s.scheduler(func() {
		if s.disposed {
			return
		}
		s.syncSpan(delta.Span{Start: 0, End: s.doc.Length()})
	})
	return s, nil
}

// Policy returns the overlap resolution policy.
func (s *Synchronizer) Policy() OverlapPolicy {
	return s.policy
}

// Disposed returns true once Dispose has been called.
func (s *Synchronizer) Disposed() bool {
	return s.disposed
}

// ProcessRange re-derives formatting on every line intersecting
// [start, end), regardless of whether an edit occurred there.
func (s *Synchronizer) ProcessRange(start, end int) error {
	if s.disposed {
		return ErrDisposed
	}
	if start < 0 || end > s.doc.Length() || start > end {
		return fmt.Errorf("%w: [%d,%d) in document of length %d",
			document.ErrInvalidRange, start, end, s.doc.Length())
	}
	s.syncSpan(delta.Span{Start: start, End: end})
	return nil
}

// ProcessEntireDocument re-derives formatting on every line.
func (s *Synchronizer) ProcessEntireDocument() error {
	if s.disposed {
		return ErrDisposed
	}
	return s.ProcessRange(0, s.doc.Length())
}

// Dispose cancels the change-feed subscription. Further edits are
// ignored and further Process calls fail with ErrDisposed. Dispose is
// idempotent. The document itself is untouched: derived runs written so
// far remain.
func (s *Synchronizer) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.sub != nil {
		s.sub.Cancel()
	}
}

// onChange is the change-feed listener. Only local edits trigger a
// pass: remote edits are the remote side's responsibility, and API
// edits include the synchronizer's own writes.
func (s *Synchronizer) onChange(d delta.Delta) {
	if s.disposed || s.applying {
		return
	}
	if d.Source != delta.SourceLocal {
		return
	}
	span, ok := d.ChangedSpan()
	if !ok {
		return
	}
	s.syncSpan(span)
}

// syncSpan re-derives every line intersecting the span. The span is in
// offsets of the current document text; a span that no longer fits
// aborts the pass.
func (s *Synchronizer) syncSpan(span delta.Span) {
	length := s.doc.Length()
	if span.Start > length {
		s.observer.ObserveError(ErrKindRange,
			fmt.Errorf("%w: span %s, length %d", ErrStaleRange, span, length))
		return
	}
	end := span.End
	if end > length {
		end = length
	}

	offset := span.Start
	for {
		line, err := s.doc.LineContaining(offset)
		if err != nil {
			s.observer.ObserveError(ErrKindLine,
				fmt.Errorf("looking up line at %d: %w", offset, err))
			return
		}
		s.syncLine(line)
		if !line.HasTerminator {
			return
		}
		next := line.End() + 1
		if next > end {
			return
		}
		offset = next
	}
}

// syncLine clears the set's derived runs on one line and writes back
// the current matches. Individual write failures are reported and
// skipped so one bad span cannot stall the rest of the line.
func (s *Synchronizer) syncLine(line document.Line) {
	text, err := s.doc.TextRange(line.Offset, line.End())
	if err != nil {
		s.observer.ObserveError(ErrKindRange,
			fmt.Errorf("reading line %d: %w", line.Index, err))
		return
	}

	s.applying = true
	defer func() { s.applying = false }()

	// Clearing a zero or one rune range cannot remove a meaningful run;
	// matches shorter than one rune do not exist.
	if line.Length > 1 {
		for _, attr := range s.set.Attributes() {
			if err := s.doc.FormatRange(line.Offset, line.Length, attr.Cleared()); err != nil {
				s.observer.ObserveError(ErrKindClear,
					fmt.Errorf("clearing %s on line %d: %w", attr.Key, line.Index, err))
			}
		}
	}

	matchers := s.set.Matchers()
	if s.policy == FirstMatcherWins {
		for i, j := 0, len(matchers)-1; i < j; i, j = i+1, j-1 {
			matchers[i], matchers[j] = matchers[j], matchers[i]
		}
	}

	length := s.doc.Length()
	for _, m := range matchers {
		for _, match := range m.FindMatches(text, line.Offset) {
			if match.End > length {
				s.observer.ObserveError(ErrKindApply,
					fmt.Errorf("%w: match %s", ErrStaleRange, match))
				continue
			}
			if err := s.doc.FormatRange(match.Start, match.Len(), match.Attr); err != nil {
				s.observer.ObserveError(ErrKindApply,
					fmt.Errorf("applying %s at %d: %w", match.Attr.Key, match.Start, err))
			}
		}
	}
}
