package document

import (
	"testing"

	"github.com/dshills/matchmark/attribute"
)

var (
	tagAttr  = attribute.New("hashtag", "true")
	mentAttr = attribute.New("mention", "true")
)

func TestRunStoreAddAndQuery(t *testing.T) {
	rs := newRunStore()
	rs.add(0, 4, tagAttr)
	rs.add(10, 14, mentAttr)

	if got := rs.at(2); len(got) != 1 || got[0].Attr.Key != "hashtag" {
		t.Errorf("at(2) = %v", got)
	}
	if got := rs.at(4); len(got) != 0 {
		t.Errorf("at(4) should be empty (end exclusive), got %v", got)
	}
	if got := rs.at(7); len(got) != 0 {
		t.Errorf("at(7) should be empty, got %v", got)
	}

	got := rs.inRange(2, 12)
	if len(got) != 2 {
		t.Fatalf("inRange(2,12) = %v, want both runs", got)
	}

	if got := rs.inRange(4, 10); len(got) != 0 {
		t.Errorf("inRange(4,10) should be empty, got %v", got)
	}
	if got := rs.inRange(5, 5); len(got) != 0 {
		t.Errorf("empty range should return nothing, got %v", got)
	}
}

func TestRunStoreSeqOrder(t *testing.T) {
	rs := newRunStore()
	rs.add(0, 10, tagAttr)
	rs.add(2, 6, mentAttr)

	got := rs.at(3)
	if len(got) != 2 {
		t.Fatalf("at(3) = %v, want 2 runs", got)
	}
	if got[0].Attr.Key != "hashtag" || got[1].Attr.Key != "mention" {
		t.Errorf("runs should come back in application order, got %v", got)
	}
	if got[0].Seq >= got[1].Seq {
		t.Errorf("Seq should increase with application order: %d, %d", got[0].Seq, got[1].Seq)
	}
}

func TestRunStoreClearExact(t *testing.T) {
	rs := newRunStore()
	rs.add(0, 4, tagAttr)

	rs.clear("hashtag", 0, 4)
	if got := rs.all(); len(got) != 0 {
		t.Errorf("all() after clear = %v, want none", got)
	}
}

func TestRunStoreClearTrimsOverhang(t *testing.T) {
	rs := newRunStore()
	rs.add(0, 10, tagAttr)

	rs.clear("hashtag", 3, 6)
	got := rs.all()
	if len(got) != 2 {
		t.Fatalf("all() after partial clear = %v, want 2 remnants", got)
	}
	if got[0].Start != 0 || got[0].End != 3 {
		t.Errorf("left remnant = %+v, want [0,3)", got[0])
	}
	if got[1].Start != 6 || got[1].End != 10 {
		t.Errorf("right remnant = %+v, want [6,10)", got[1])
	}
}

func TestRunStoreClearLeavesOtherKeys(t *testing.T) {
	rs := newRunStore()
	rs.add(0, 4, tagAttr)
	rs.add(0, 4, mentAttr)

	rs.clear("hashtag", 0, 4)
	got := rs.all()
	if len(got) != 1 || got[0].Attr.Key != "mention" {
		t.Errorf("clear should only remove the given key, got %v", got)
	}
}

func TestRunStoreClearOutsideRange(t *testing.T) {
	rs := newRunStore()
	rs.add(0, 3, tagAttr)

	rs.clear("hashtag", 5, 9)
	if got := rs.all(); len(got) != 1 {
		t.Errorf("clear outside the run should keep it, got %v", got)
	}

	rs.clear("hashtag", 3, 3)
	if got := rs.all(); len(got) != 1 {
		t.Errorf("empty clear range should be a no-op, got %v", got)
	}
}

func TestRunStoreAll(t *testing.T) {
	rs := newRunStore()
	if got := rs.all(); got != nil {
		t.Errorf("empty store all() = %v, want nil", got)
	}

	rs.add(5, 8, tagAttr)
	rs.add(0, 2, mentAttr)
	got := rs.all()
	if len(got) != 2 {
		t.Fatalf("all() = %v, want 2 runs", got)
	}
	// Application order, not positional order.
	if got[0].Attr.Key != "hashtag" || got[1].Attr.Key != "mention" {
		t.Errorf("all() order = %v", got)
	}
}
