package document

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/matchmark/attribute"
	"github.com/dshills/matchmark/delta"
)

// Memory is an in-memory Document. Text is held as runes, formatting
// runs in an interval tree, and every edit is published synchronously
// to subscribers in subscription order.
type Memory struct {
	text []rune
	runs *runStore
	subs []*memorySub
}

// NewMemory creates a document with the given initial text. The initial
// content is not published on the change feed.
func NewMemory(initial string) *Memory {
	return &Memory{
		text: []rune(initial),
		runs: newRunStore(),
	}
}

// Length returns the document's rune length.
func (m *Memory) Length() int {
	return len(m.text)
}

// Text returns the full document text.
func (m *Memory) Text() string {
	return string(m.text)
}

// TextRange returns the text in [start, end).
func (m *Memory) TextRange(start, end int) (string, error) {
	if start < 0 || end < start || end > len(m.text) {
		return "", fmt.Errorf("text range [%d,%d) in document of length %d: %w",
			start, end, len(m.text), ErrInvalidRange)
	}
	return string(m.text[start:end]), nil
}

// LineContaining returns the line containing the given offset. An
// offset on a line's terminator belongs to that line; offset == Length
// resolves to the final line.
func (m *Memory) LineContaining(offset int) (Line, error) {
	if offset < 0 || offset > len(m.text) {
		return Line{}, fmt.Errorf("offset %d in document of length %d: %w",
			offset, len(m.text), ErrOutOfRange)
	}

	index := 0
	lineStart := 0
	for i, r := range m.text {
		if r != '\n' {
			continue
		}
		if offset <= i {
			return Line{
				Index:         index,
				Offset:        lineStart,
				Length:        i - lineStart,
				HasTerminator: true,
			}, nil
		}
		lineStart = i + 1
		index++
	}

	return Line{
		Index:  index,
		Offset: lineStart,
		Length: len(m.text) - lineStart,
	}, nil
}

// LineCount returns the number of lines. A trailing newline starts a
// final empty line.
func (m *Memory) LineCount() int {
	count := 1
	for _, r := range m.text {
		if r == '\n' {
			count++
		}
	}
	return count
}

// InsertText inserts text at the given rune offset and publishes the
// edit with the given provenance.
func (m *Memory) InsertText(offset int, text string, src delta.Source) error {
	if offset < 0 || offset > len(m.text) {
		return fmt.Errorf("insert at %d in document of length %d: %w",
			offset, len(m.text), ErrOutOfRange)
	}
	if text == "" {
		return nil
	}

	runes := []rune(text)
	m.text = slices.Insert(m.text, offset, runes...)
	m.runs.shiftInsert(offset, len(runes))

	var ops []delta.Op
	if offset > 0 {
		ops = append(ops, delta.RetainOp(offset))
	}
	ops = append(ops, delta.InsertOp(text))
	m.publish(delta.New(src, ops...))
	return nil
}

// DeleteText removes n runes starting at the given offset and publishes
// the edit with the given provenance.
func (m *Memory) DeleteText(offset, n int, src delta.Source) error {
	if offset < 0 || n < 0 || offset+n > len(m.text) {
		return fmt.Errorf("delete [%d,%d) in document of length %d: %w",
			offset, offset+n, len(m.text), ErrInvalidRange)
	}
	if n == 0 {
		return nil
	}

	m.text = slices.Delete(m.text, offset, offset+n)
	m.runs.shiftDelete(offset, n)

	var ops []delta.Op
	if offset > 0 {
		ops = append(ops, delta.RetainOp(offset))
	}
	ops = append(ops, delta.DeleteOp(n))
	m.publish(delta.New(src, ops...))
	return nil
}

// SetText replaces the whole document content, dropping all formatting
// runs. The edit is published with remote provenance, the way a bulk
// content load arrives.
func (m *Memory) SetText(text string) {
	oldLen := len(m.text)
	m.text = []rune(text)
	m.runs.clearAll()

	var ops []delta.Op
	if oldLen > 0 {
		ops = append(ops, delta.DeleteOp(oldLen))
	}
	if text != "" {
		ops = append(ops, delta.InsertOp(text))
	}
	if len(ops) == 0 {
		return
	}
	m.publish(delta.New(delta.SourceRemote, ops...))
}

// Apply applies a delta's operation sequence to the document and
// publishes it verbatim.
func (m *Memory) Apply(d delta.Delta) error {
	pos := 0
	for _, op := range d.Ops {
		switch op.Kind {
		case delta.Retain:
			if pos+op.N > len(m.text) {
				return fmt.Errorf("retain past end at %d: %w", pos, ErrInvalidRange)
			}
			for _, attr := range op.Attrs {
				m.applyAttr(pos, op.N, attr)
			}
			pos += op.N
		case delta.Insert:
			runes := []rune(op.Text)
			m.text = slices.Insert(m.text, pos, runes...)
			m.runs.shiftInsert(pos, len(runes))
			for _, attr := range op.Attrs {
				m.applyAttr(pos, len(runes), attr)
			}
			pos += len(runes)
		case delta.Delete:
			if pos+op.N > len(m.text) {
				return fmt.Errorf("delete past end at %d: %w", pos, ErrInvalidRange)
			}
			m.text = slices.Delete(m.text, pos, pos+op.N)
			m.runs.shiftDelete(pos, op.N)
		}
	}
	m.publish(d)
	return nil
}

// FormatRange applies or clears a formatting run over
// [start, start+length) and publishes the write as an API-provenance,
// all-retain delta.
func (m *Memory) FormatRange(start, length int, attr attribute.Attribute) error {
	if start < 0 || length < 0 || start+length > len(m.text) {
		return fmt.Errorf("format range [%d,%d) in document of length %d: %w",
			start, start+length, len(m.text), ErrInvalidRange)
	}
	if length == 0 {
		return nil
	}

	m.applyAttr(start, length, attr)

	var ops []delta.Op
	if start > 0 {
		ops = append(ops, delta.RetainOp(start))
	}
	ops = append(ops, delta.RetainAttrs(length, attr))
	m.publish(delta.New(delta.SourceAPI, ops...))
	return nil
}

func (m *Memory) applyAttr(start, length int, attr attribute.Attribute) {
	if attr.Unset {
		m.runs.clear(attr.Key, start, start+length)
		return
	}
	m.runs.add(start, start+length, attr)
}

// RunsAt returns the formatting runs covering the position, in
// application order. When runs overlap, the last one wins for display.
func (m *Memory) RunsAt(pos int) []Run {
	return m.runs.at(pos)
}

// RunsInRange returns the formatting runs overlapping [start, end), in
// application order.
func (m *Memory) RunsInRange(start, end int) []Run {
	return m.runs.inRange(start, end)
}

// Runs returns every formatting run, in application order.
func (m *Memory) Runs() []Run {
	return m.runs.all()
}

// Subscribe registers a listener on the change feed. Delivery is
// synchronous and in subscription order.
func (m *Memory) Subscribe(fn Listener) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilListener
	}
	sub := &memorySub{
		id:     uuid.NewString(),
		fn:     fn,
		doc:    m,
		active: true,
	}
	m.subs = append(m.subs, sub)
	return sub, nil
}

func (m *Memory) publish(d delta.Delta) {
	// Snapshot so listeners can cancel (or add) subscriptions while a
	// delivery is in flight.
	subs := make([]*memorySub, len(m.subs))
	copy(subs, m.subs)
	for _, sub := range subs {
		if sub.active {
			sub.fn(d)
		}
	}
}

type memorySub struct {
	id     string
	fn     Listener
	doc    *Memory
	active bool
}

// ID returns the unique subscription identifier.
func (s *memorySub) ID() string {
	return s.id
}

// Active returns true until the subscription is cancelled.
func (s *memorySub) Active() bool {
	return s.active
}

// Cancel stops delivery and detaches the subscription from the
// document. It is idempotent.
func (s *memorySub) Cancel() {
	if !s.active {
		return
	}
	s.active = false
	for i, sub := range s.doc.subs {
		if sub == s {
			s.doc.subs = slices.Delete(s.doc.subs, i, i+1)
			break
		}
	}
}
