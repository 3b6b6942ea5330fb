// Package delta describes document edits as ordered operation sequences
// of retain, insert, and delete instructions, together with the
// provenance of the edit. Positions are rune offsets.
package delta

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/matchmark/attribute"
)

// OpKind identifies the kind of a single operation.
type OpKind uint8

const (
	// Retain skips over existing content, optionally reformatting it.
	Retain OpKind = iota

	// Insert adds new text at the current position.
	Insert

	// Delete removes existing content at the current position.
	Delete
)

// String returns the operation kind name.
func (k OpKind) String() string {
	switch k {
	case Retain:
		return "retain"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Op is a single instruction in an operation sequence.
type Op struct {
	// Kind is the instruction type.
	Kind OpKind

	// N is the rune count for Retain and Delete instructions.
	N int

	// Text is the inserted text for Insert instructions.
	Text string

	// Attrs carries formatting applied by Retain or Insert instructions.
	Attrs []attribute.Attribute
}

// RetainOp creates a retain instruction over n runes.
func RetainOp(n int) Op {
	return Op{Kind: Retain, N: n}
}

// RetainAttrs creates a retain instruction that reformats n runes.
func RetainAttrs(n int, attrs ...attribute.Attribute) Op {
	return Op{Kind: Retain, N: n, Attrs: attrs}
}

// InsertOp creates an insert instruction.
func InsertOp(text string) Op {
	return Op{Kind: Insert, Text: text}
}

// InsertAttrs creates an insert instruction with formatting.
func InsertAttrs(text string, attrs ...attribute.Attribute) Op {
	return Op{Kind: Insert, Text: text, Attrs: attrs}
}

// DeleteOp creates a delete instruction over n runes.
func DeleteOp(n int) Op {
	return Op{Kind: Delete, N: n}
}

// Len returns the number of runes the instruction spans: the retained or
// deleted count, or the rune length of inserted text.
func (o Op) Len() int {
	if o.Kind == Insert {
		return utf8.RuneCountInString(o.Text)
	}
	return o.N
}

// String returns a human-readable representation of the instruction.
func (o Op) String() string {
	switch o.Kind {
	case Retain:
		if len(o.Attrs) > 0 {
			return fmt.Sprintf("retain(%d,%v)", o.N, o.Attrs)
		}
		return fmt.Sprintf("retain(%d)", o.N)
	case Insert:
		return fmt.Sprintf("insert(%q)", o.Text)
	case Delete:
		return fmt.Sprintf("delete(%d)", o.N)
	default:
		return "unknown"
	}
}

// Source identifies where an edit originated.
type Source uint8

const (
	// SourceLocal marks direct user input on the local device.
	SourceLocal Source = iota

	// SourceRemote marks edits replayed from a remote collaborator or a
	// bulk content load.
	SourceRemote

	// SourceAPI marks programmatic edits, including derived-formatting
	// writes issued by the synchronizer itself.
	SourceAPI
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceLocal:
		return "local"
	case SourceRemote:
		return "remote"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Delta is one edit: an ordered operation sequence plus provenance.
type Delta struct {
	Ops    []Op
	Source Source
}

// New creates a delta from the given instructions.
func New(source Source, ops ...Op) Delta {
	return Delta{Ops: ops, Source: source}
}

// IsEmpty returns true if the delta has no instructions.
func (d Delta) IsEmpty() bool {
	return len(d.Ops) == 0
}

// String returns a human-readable representation of the delta.
func (d Delta) String() string {
	parts := make([]string, len(d.Ops))
	for i, op := range d.Ops {
		parts[i] = op.String()
	}
	return fmt.Sprintf("%s[%s]", d.Source, strings.Join(parts, " "))
}

// Span is a half-open rune-offset range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the span length.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span covers no positions.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains returns true if the offset lies within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// ChangedSpan computes the minimal text span touched by the delta, in
// offsets of the resulting document. The running offset advances on
// retain and insert; the first insert or delete fixes the span start;
// the end tracks the rightmost position touched. A delta consisting only
// of retains changes no content and reports false. A pure deletion
// reports an empty span at the deletion point.
func (d Delta) ChangedSpan() (Span, bool) {
	pos := 0
	start := -1
	end := 0

	for _, op := range d.Ops {
		switch op.Kind {
		case Retain:
			pos += op.N
		case Insert:
			if start < 0 {
				start = pos
			}
			pos += op.Len()
			if pos > end {
				end = pos
			}
		case Delete:
			if start < 0 {
				start = pos
			}
			if pos > end {
				end = pos
			}
		}
	}

	if start < 0 {
		return Span{}, false
	}
	if end < start {
		end = start
	}
	return Span{Start: start, End: end}, true
}
