// Package document defines the contract the synchronizer consumes from
// a rich-text document, plus Memory, an in-memory reference
// implementation used by tests and examples.
//
// The model is single-threaded and event-driven: edits are delivered to
// listeners synchronously, one at a time, on the goroutine performing
// the edit. A document must not be mutated from multiple goroutines.
package document

import (
	"errors"

	"github.com/dshills/matchmark/attribute"
	"github.com/dshills/matchmark/delta"
)

var (
	// ErrOutOfRange is returned when an offset lies outside the document.
	ErrOutOfRange = errors.New("offset out of range")

	// ErrInvalidRange is returned when a range does not fit the document.
	ErrInvalidRange = errors.New("invalid range")

	// ErrNilListener is returned when subscribing with a nil listener.
	ErrNilListener = errors.New("nil listener")
)

// Listener receives each edit published on the document's change feed.
type Listener func(d delta.Delta)

// Subscription is a handle on an active change-feed subscription.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Cancel stops delivery. It is idempotent.
	Cancel()

	// Active returns true until the subscription is cancelled.
	Active() bool
}

// Line describes one line of the document.
type Line struct {
	// Index is the zero-based line number.
	Index int

	// Offset is the absolute rune offset of the line start.
	Offset int

	// Length is the line's rune length, excluding the trailing
	// terminator.
	Length int

	// HasTerminator is true when the line ends with a newline.
	HasTerminator bool
}

// End returns the absolute offset one past the last content rune,
// excluding the terminator.
func (l Line) End() int {
	return l.Offset + l.Length
}

// Span returns the line's content span, excluding the terminator.
func (l Line) Span() delta.Span {
	return delta.Span{Start: l.Offset, End: l.End()}
}

// Document is the mutable rich-text collaborator the synchronizer
// observes and writes derived formatting to. The synchronizer never
// owns the document.
type Document interface {
	// Length returns the document's rune length.
	Length() int

	// TextRange returns the text in [start, end).
	TextRange(start, end int) (string, error)

	// LineContaining returns the line containing the given offset.
	// The offset may equal Length (caret at end of document).
	LineContaining(offset int) (Line, error)

	// FormatRange applies a formatting run over [start, start+length),
	// or clears runs of the attribute's key when the attribute carries
	// the unset sentinel. The write is synchronous and itself publishes
	// a change-feed event with API provenance.
	FormatRange(start, length int, attr attribute.Attribute) error

	// Subscribe registers a listener on the change feed.
	Subscribe(fn Listener) (Subscription, error)
}
