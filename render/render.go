// Package render projects matched, attributed spans into indivisible
// render units padded with invisible filler so that the rendered form
// consumes exactly as many character-offset slots as the original text.
//
// The projector is pure: it never touches the document. It answers one
// question per attributed span encountered during layout, or returns
// nil ("no opinion") so the renderer falls back to plain text.
package render

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/matchmark/attribute"
	"github.com/dshills/matchmark/style"
)

// FillerRune is the invisible character used for padding slots
// (ZERO WIDTH SPACE). It is a true character in the offset model but
// has no visual width.
const FillerRune = '​'

// HandlerKind tags the capability of an interaction handler.
type HandlerKind uint8

const (
	// HandlerNone means no handler is attached to the span.
	HandlerNone HandlerKind = iota

	// HandlerTap means the span reacts to tap/click activation.
	HandlerTap
)

// String returns the handler kind name.
func (k HandlerKind) String() string {
	switch k {
	case HandlerNone:
		return "none"
	case HandlerTap:
		return "tap"
	default:
		return "unknown"
	}
}

// Handler is a capability-tagged interaction handler attached to a
// span. The zero value means no handler.
type Handler struct {
	Kind HandlerKind
	Tap  func() error
}

// NoHandler returns the absent handler.
func NoHandler() Handler {
	return Handler{Kind: HandlerNone}
}

// TapHandler wraps a tap callback.
func TapHandler(fn func() error) Handler {
	return Handler{Kind: HandlerTap, Tap: fn}
}

// PartKind identifies the role of one piece inside a render unit.
type PartKind uint8

const (
	// PartText is a styled text fragment.
	PartText PartKind = iota

	// PartCaret is the thin caret indicator shown when the cursor falls
	// inside the matched span.
	PartCaret
)

// String returns the part kind name.
func (k PartKind) String() string {
	switch k {
	case PartText:
		return "text"
	case PartCaret:
		return "caret"
	default:
		return "unknown"
	}
}

// Part is one piece of an indivisible render unit.
type Part struct {
	Kind  PartKind
	Text  string
	Style style.Style
}

// Unit is an indivisible render unit: it occupies exactly one position
// in the character-offset model regardless of its visual width or child
// content.
type Unit struct {
	Parts []Part
}

// Text returns the concatenated text of the unit's text parts.
func (u Unit) Text() string {
	var out string
	for _, p := range u.Parts {
		if p.Kind == PartText {
			out += p.Text
		}
	}
	return out
}

// HasCaret returns true if the unit contains a caret indicator part.
func (u Unit) HasCaret() bool {
	for _, p := range u.Parts {
		if p.Kind == PartCaret {
			return true
		}
	}
	return false
}

// Instruction is the projector's replacement rendering for one matched
// span: one indivisible unit followed by FillerCount invisible filler
// slots, so the span still consumes its original number of
// character-offset slots.
type Instruction struct {
	// Unit is the indivisible render unit for the whole match.
	Unit Unit

	// FillerCount is the number of invisible filler slots following the
	// unit. Always the original rune length minus one.
	FillerCount int

	// OnTap is the resolved activation callback, or nil when the span
	// has none.
	OnTap func() error
}

// SlotCount returns the number of character-offset slots the
// instruction consumes: the unit plus its filler.
func (in *Instruction) SlotCount() int {
	return 1 + in.FillerCount
}

// Span is one attributed span offered to the projector during layout.
type Span struct {
	// Text is the matched text.
	Text string

	// Attr is the attribute on the span.
	Attr attribute.Attribute

	// Ambient is the surrounding text style the derived style overlays.
	Ambient style.Style

	// Handler is a pre-existing interaction handler on the span, if any.
	Handler Handler

	// HasCursor is true when the caret falls inside this span; Cursor
	// is then the caret's rune offset within Text.
	HasCursor bool
	Cursor    int
}

// Projector produces render instructions for attributed spans it
// recognizes through its registry.
type Projector struct {
	registry *attribute.Registry
}

// NewProjector creates a projector resolving attributes through the
// given registry.
func NewProjector(registry *attribute.Registry) *Projector {
	return &Projector{registry: registry}
}

// Project returns the replacement rendering for the span, or nil when
// the span's attribute is not recognized (or the text is empty) and the
// renderer should fall back to default text rendering.
//
// A cursor offset outside [0, len(text)] is treated as no cursor in
// this span.
func (p *Projector) Project(span Span) *Instruction {
	desc, ok := p.registry.Lookup(span.Attr.Key)
	if !ok {
		return nil
	}

	length := utf8.RuneCountInString(span.Text)
	if length == 0 {
		return nil
	}

	derived := span.Ambient.Merge(desc.Style)

	var parts []Part
	if span.HasCursor && span.Cursor >= 0 && span.Cursor <= length {
		split := splitAtGrapheme(span.Text, span.Cursor)
		if before := span.Text[:split]; before != "" {
			parts = append(parts, Part{Kind: PartText, Text: before, Style: derived})
		}
		parts = append(parts, Part{Kind: PartCaret, Style: derived})
		if after := span.Text[split:]; after != "" {
			parts = append(parts, Part{Kind: PartText, Text: after, Style: derived})
		}
	} else {
		parts = append(parts, Part{Kind: PartText, Text: span.Text, Style: derived})
	}

	return &Instruction{
		Unit:        Unit{Parts: parts},
		FillerCount: length - 1,
		OnTap:       p.resolveTap(span, desc),
	}
}

// resolveTap preserves a supplied tap callback verbatim; otherwise the
// attribute's registered default activation runs.
func (p *Projector) resolveTap(span Span, desc attribute.Descriptor) func() error {
	if span.Handler.Kind == HandlerTap && span.Handler.Tap != nil {
		return span.Handler.Tap
	}
	if desc.OnActivate == nil {
		return nil
	}
	text := span.Text
	return func() error {
		return desc.OnActivate(text)
	}
}

// splitAtGrapheme returns the byte index of the grapheme-cluster
// boundary at or below the given rune offset, so a caret never splits
// a cluster.
func splitAtGrapheme(text string, offset int) int {
	if offset <= 0 {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	runeCount := 0
	byteSplit := 0
	for g.Next() {
		next := runeCount + len(g.Runes())
		if next > offset {
			break
		}
		runeCount = next
		_, to := g.Positions()
		byteSplit = to
	}
	return byteSplit
}
