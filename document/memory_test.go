package document

import (
	"errors"
	"testing"

	"github.com/dshills/matchmark/attribute"
	"github.com/dshills/matchmark/delta"
)

func TestNewMemory(t *testing.T) {
	m := NewMemory("hello\nworld")

	if m.Length() != 11 {
		t.Errorf("Length() = %d, want 11", m.Length())
	}
	if m.Text() != "hello\nworld" {
		t.Errorf("Text() = %q", m.Text())
	}
	if m.LineCount() != 2 {
		t.Errorf("LineCount() = %d, want 2", m.LineCount())
	}
}

func TestTextRange(t *testing.T) {
	m := NewMemory("héllo wörld")

	got, err := m.TextRange(1, 4)
	if err != nil {
		t.Fatalf("TextRange: %v", err)
	}
	if got != "éll" {
		t.Errorf("TextRange(1,4) = %q, want 'éll'", got)
	}

	if _, err := m.TextRange(-1, 2); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("negative start should be ErrInvalidRange, got %v", err)
	}
	if _, err := m.TextRange(0, 100); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("end past length should be ErrInvalidRange, got %v", err)
	}
	if _, err := m.TextRange(5, 2); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("inverted range should be ErrInvalidRange, got %v", err)
	}
}

func TestLineContaining(t *testing.T) {
	m := NewMemory("one\ntwo\n\nfour")

	tests := []struct {
		name   string
		offset int
		want   Line
	}{
		{name: "start of first line", offset: 0,
			want: Line{Index: 0, Offset: 0, Length: 3, HasTerminator: true}},
		{name: "on first terminator", offset: 3,
			want: Line{Index: 0, Offset: 0, Length: 3, HasTerminator: true}},
		{name: "start of second line", offset: 4,
			want: Line{Index: 1, Offset: 4, Length: 3, HasTerminator: true}},
		{name: "empty line", offset: 8,
			want: Line{Index: 2, Offset: 8, Length: 0, HasTerminator: true}},
		{name: "inside last line", offset: 10,
			want: Line{Index: 3, Offset: 9, Length: 4}},
		{name: "caret at end of document", offset: 13,
			want: Line{Index: 3, Offset: 9, Length: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.LineContaining(tt.offset)
			if err != nil {
				t.Fatalf("LineContaining(%d): %v", tt.offset, err)
			}
			if got != tt.want {
				t.Errorf("LineContaining(%d) = %+v, want %+v", tt.offset, got, tt.want)
			}
		})
	}

	if _, err := m.LineContaining(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("negative offset should be ErrOutOfRange, got %v", err)
	}
	if _, err := m.LineContaining(14); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("offset past end should be ErrOutOfRange, got %v", err)
	}
}

func TestLineSpan(t *testing.T) {
	l := Line{Index: 1, Offset: 4, Length: 3, HasTerminator: true}
	if l.End() != 7 {
		t.Errorf("End() = %d, want 7", l.End())
	}
	if got := l.Span(); got != (delta.Span{Start: 4, End: 7}) {
		t.Errorf("Span() = %v", got)
	}
}

func TestInsertTextPublishesDelta(t *testing.T) {
	m := NewMemory("ab")

	var got []delta.Delta
	if _, err := m.Subscribe(func(d delta.Delta) { got = append(got, d) }); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := m.InsertText(1, "XY", delta.SourceLocal); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	if m.Text() != "aXYb" {
		t.Errorf("Text() = %q, want 'aXYb'", m.Text())
	}
	if len(got) != 1 {
		t.Fatalf("published %d deltas, want 1", len(got))
	}
	if got[0].Source != delta.SourceLocal {
		t.Errorf("Source = %v, want local", got[0].Source)
	}
	span, changed := got[0].ChangedSpan()
	if !changed || span != (delta.Span{Start: 1, End: 3}) {
		t.Errorf("ChangedSpan = %v (%v), want [1,3)", span, changed)
	}

	// Empty insert is a no-op and publishes nothing.
	if err := m.InsertText(0, "", delta.SourceLocal); err != nil {
		t.Fatalf("empty InsertText: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("empty insert should not publish, got %d deltas", len(got))
	}

	if err := m.InsertText(99, "x", delta.SourceLocal); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("insert past end should be ErrOutOfRange, got %v", err)
	}
}

func TestDeleteTextPublishesDelta(t *testing.T) {
	m := NewMemory("#flutter")

	var got []delta.Delta
	if _, err := m.Subscribe(func(d delta.Delta) { got = append(got, d) }); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := m.DeleteText(4, 4, delta.SourceLocal); err != nil {
		t.Fatalf("DeleteText: %v", err)
	}
	if m.Text() != "#flu" {
		t.Errorf("Text() = %q, want '#flu'", m.Text())
	}
	if len(got) != 1 {
		t.Fatalf("published %d deltas, want 1", len(got))
	}
	span, changed := got[0].ChangedSpan()
	if !changed || span != (delta.Span{Start: 4, End: 4}) {
		t.Errorf("ChangedSpan = %v (%v), want empty span at 4", span, changed)
	}

	if err := m.DeleteText(2, 99, delta.SourceLocal); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("delete past end should be ErrInvalidRange, got %v", err)
	}
}

func TestSetText(t *testing.T) {
	m := NewMemory("old content")
	m.FormatRange(0, 3, attribute.New("hashtag", "true"))

	var got []delta.Delta
	m.Subscribe(func(d delta.Delta) { got = append(got, d) })

	m.SetText("fresh")
	if m.Text() != "fresh" {
		t.Errorf("Text() = %q", m.Text())
	}
	if len(m.Runs()) != 0 {
		t.Error("SetText should drop all formatting runs")
	}
	if len(got) != 1 {
		t.Fatalf("published %d deltas, want 1", len(got))
	}
	if got[0].Source != delta.SourceRemote {
		t.Errorf("bulk load provenance = %v, want remote", got[0].Source)
	}
}

func TestApply(t *testing.T) {
	m := NewMemory("hello world")

	var got []delta.Delta
	m.Subscribe(func(d delta.Delta) { got = append(got, d) })

	d := delta.New(delta.SourceLocal,
		delta.RetainOp(6),
		delta.DeleteOp(5),
		delta.InsertOp("there"),
	)
	if err := m.Apply(d); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if m.Text() != "hello there" {
		t.Errorf("Text() = %q, want 'hello there'", m.Text())
	}
	if len(got) != 1 || got[0].Source != delta.SourceLocal {
		t.Errorf("Apply should publish the delta verbatim, got %v", got)
	}

	bad := delta.New(delta.SourceLocal, delta.RetainOp(100))
	if err := m.Apply(bad); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("retain past end should be ErrInvalidRange, got %v", err)
	}
}

func TestApplyInsertWithAttrs(t *testing.T) {
	m := NewMemory("")
	attr := attribute.New("hashtag", "true")

	d := delta.New(delta.SourceLocal, delta.InsertAttrs("#go", attr))
	if err := m.Apply(d); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	runs := m.RunsInRange(0, 3)
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Start != 0 || runs[0].End != 3 || runs[0].Attr.Key != "hashtag" {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestFormatRange(t *testing.T) {
	m := NewMemory("#flutter rocks")
	attr := attribute.New("hashtag", "true")

	var got []delta.Delta
	m.Subscribe(func(d delta.Delta) { got = append(got, d) })

	if err := m.FormatRange(0, 8, attr); err != nil {
		t.Fatalf("FormatRange: %v", err)
	}

	runs := m.RunsAt(3)
	if len(runs) != 1 || runs[0].Attr.Key != "hashtag" {
		t.Fatalf("RunsAt(3) = %v", runs)
	}
	if len(m.RunsAt(8)) != 0 {
		t.Error("run end is exclusive")
	}

	// The write itself is a change-feed event: all retains, API source.
	if len(got) != 1 {
		t.Fatalf("published %d deltas, want 1", len(got))
	}
	if got[0].Source != delta.SourceAPI {
		t.Errorf("format provenance = %v, want api", got[0].Source)
	}
	if _, changed := got[0].ChangedSpan(); changed {
		t.Error("an all-retain formatting delta must report no changed span")
	}

	if err := m.FormatRange(10, 10, attr); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("format past end should be ErrInvalidRange, got %v", err)
	}
	if err := m.FormatRange(0, 0, attr); err != nil {
		t.Errorf("zero-length format should be a no-op, got %v", err)
	}
}

func TestFormatRangeUnset(t *testing.T) {
	m := NewMemory("#flutter rocks")
	attr := attribute.New("hashtag", "true")

	m.FormatRange(0, 8, attr)
	if err := m.FormatRange(0, 14, attr.Cleared()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(m.Runs()) != 0 {
		t.Errorf("runs after clear = %v, want none", m.Runs())
	}
}

func TestRunShiftOnInsert(t *testing.T) {
	m := NewMemory("aa#tag")
	m.FormatRange(2, 4, attribute.New("hashtag", "true"))

	// Insert before the run: the run moves right.
	m.InsertText(0, "xx", delta.SourceLocal)
	runs := m.Runs()
	if len(runs) != 1 || runs[0].Start != 4 || runs[0].End != 8 {
		t.Fatalf("runs after insert before = %v, want [4,8)", runs)
	}

	// Insert inside the run: the run grows.
	m.InsertText(6, "y", delta.SourceLocal)
	runs = m.Runs()
	if len(runs) != 1 || runs[0].Start != 4 || runs[0].End != 9 {
		t.Fatalf("runs after insert inside = %v, want [4,9)", runs)
	}
}

func TestRunShiftOnDelete(t *testing.T) {
	m := NewMemory("xx#tag yy")
	m.FormatRange(2, 4, attribute.New("hashtag", "true"))

	// Delete before the run: the run moves left.
	m.DeleteText(0, 2, delta.SourceLocal)
	runs := m.Runs()
	if len(runs) != 1 || runs[0].Start != 0 || runs[0].End != 4 {
		t.Fatalf("runs after delete before = %v, want [0,4)", runs)
	}

	// Delete overlapping the run's tail: the run shrinks.
	m.DeleteText(2, 3, delta.SourceLocal)
	runs = m.Runs()
	if len(runs) != 1 || runs[0].Start != 0 || runs[0].End != 2 {
		t.Fatalf("runs after overlapping delete = %v, want [0,2)", runs)
	}

	// Delete covering the whole run: the run disappears.
	m.DeleteText(0, 2, delta.SourceLocal)
	if len(m.Runs()) != 0 {
		t.Errorf("runs after covering delete = %v, want none", m.Runs())
	}
}

func TestSubscriptionLifecycle(t *testing.T) {
	m := NewMemory("")

	if _, err := m.Subscribe(nil); !errors.Is(err, ErrNilListener) {
		t.Errorf("nil listener should be rejected, got %v", err)
	}

	count := 0
	sub, err := m.Subscribe(func(delta.Delta) { count++ })
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if sub.ID() == "" {
		t.Error("subscription should have an ID")
	}
	if !sub.Active() {
		t.Error("new subscription should be active")
	}

	m.InsertText(0, "a", delta.SourceLocal)
	if count != 1 {
		t.Fatalf("listener called %d times, want 1", count)
	}

	sub.Cancel()
	if sub.Active() {
		t.Error("cancelled subscription should be inactive")
	}
	m.InsertText(0, "b", delta.SourceLocal)
	if count != 1 {
		t.Errorf("cancelled listener still called, count = %d", count)
	}

	// Idempotent.
	sub.Cancel()
}

func TestSubscribersDeliveredInOrder(t *testing.T) {
	m := NewMemory("")

	var order []int
	m.Subscribe(func(delta.Delta) { order = append(order, 1) })
	m.Subscribe(func(delta.Delta) { order = append(order, 2) })

	m.InsertText(0, "x", delta.SourceLocal)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("delivery order = %v, want [1 2]", order)
	}
}

func TestCancelDuringDelivery(t *testing.T) {
	m := NewMemory("")

	var sub Subscription
	calls := 0
	sub, _ = m.Subscribe(func(delta.Delta) {
		calls++
		sub.Cancel()
	})

	m.InsertText(0, "a", delta.SourceLocal)
	m.InsertText(0, "b", delta.SourceLocal)
	if calls != 1 {
		t.Errorf("listener called %d times, want 1", calls)
	}
}
