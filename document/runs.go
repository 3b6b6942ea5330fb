package document

import (
	"cmp"
	"sort"

	"github.com/rdleal/intervalst/interval"

	"github.com/dshills/matchmark/attribute"
)

// Run is one applied formatting run. Seq records application order;
// when runs overlap, the run with the highest Seq was written last.
type Run struct {
	// Start is the absolute rune offset of the first formatted rune.
	Start int

	// End is the absolute rune offset one past the last formatted rune.
	End int

	// Attr is the applied attribute.
	Attr attribute.Attribute

	// Seq is the application order of the run.
	Seq int
}

// runStore keeps formatting runs in an interval search tree so that
// overlapping runs over the same text can coexist and be queried by
// position or range.
type runStore struct {
	tree    *interval.MultiValueSearchTree[Run, int]
	nextSeq int
}

func newRunStore() *runStore {
	return &runStore{tree: newRunTree()}
}

func newRunTree() *interval.MultiValueSearchTree[Run, int] {
	return interval.NewMultiValueSearchTree[Run](func(a, b int) int {
		return cmp.Compare(a, b)
	})
}

// add records a run over [start, end) and returns it.
func (rs *runStore) add(start, end int, attr attribute.Attribute) Run {
	r := Run{Start: start, End: end, Attr: attr, Seq: rs.nextSeq}
	rs.nextSeq++
	rs.tree.Insert(start, end, r)
	return r
}

// at returns the runs covering the given position, in application order.
func (rs *runStore) at(pos int) []Run {
	hits, _ := rs.tree.AllIntersections(pos, pos+1)
	runs := make([]Run, 0, len(hits))
	for _, r := range hits {
		if r.Start <= pos && pos < r.End {
			runs = append(runs, r)
		}
	}
	sortBySeq(runs)
	return runs
}

// inRange returns the runs overlapping [start, end), in application
// order.
func (rs *runStore) inRange(start, end int) []Run {
	if start >= end {
		return nil
	}
	hits, _ := rs.tree.AllIntersections(start, end)
	runs := make([]Run, 0, len(hits))
	for _, r := range hits {
		if r.Start < end && r.End > start {
			runs = append(runs, r)
		}
	}
	sortBySeq(runs)
	return runs
}

// all returns every stored run in application order.
func (rs *runStore) all() []Run {
	maxVals, found := rs.tree.MaxEnd()
	if !found || len(maxVals) == 0 {
		return nil
	}
	maxEnd := maxVals[0].End
	hits, _ := rs.tree.AllIntersections(0, maxEnd)
	runs := make([]Run, len(hits))
	copy(runs, hits)
	sortBySeq(runs)
	return runs
}

// clear removes runs of the given key within [start, end). Runs
// extending past the range are trimmed, keeping their remnants outside
// it.
func (rs *runStore) clear(key string, start, end int) {
	if start >= end {
		return
	}

	type iv struct{ s, e int }
	seen := make(map[iv]bool)

	for _, hit := range rs.inRange(start, end) {
		if hit.Attr.Key != key {
			continue
		}
		span := iv{hit.Start, hit.End}
		if seen[span] {
			continue
		}
		seen[span] = true

		// Deleting an interval drops every run stored at it, so collect
		// the other runs sharing the interval and re-insert them along
		// with any trimmed remnants.
		stored, _ := rs.tree.AllIntersections(span.s, span.e)
		var keep []Run
		for _, r := range stored {
			if r.Start != span.s || r.End != span.e {
				continue
			}
			if r.Attr.Key != key {
				keep = append(keep, r)
				continue
			}
			if r.Start < start {
				keep = append(keep, Run{Start: r.Start, End: start, Attr: r.Attr, Seq: r.Seq})
			}
			if r.End > end {
				keep = append(keep, Run{Start: end, End: r.End, Attr: r.Attr, Seq: r.Seq})
			}
		}

		rs.tree.Delete(span.s, span.e)
		for _, r := range keep {
			rs.tree.Insert(r.Start, r.End, r)
		}
	}
}

// shiftInsert adjusts run offsets for an insertion of n runes at pos.
// Runs spanning the insertion point grow; runs after it move right.
func (rs *runStore) shiftInsert(pos, n int) {
	if n <= 0 {
		return
	}
	rs.rebuild(func(r Run) (Run, bool) {
		if r.Start >= pos {
			r.Start += n
		}
		if r.End > pos {
			r.End += n
		}
		return r, true
	})
}

// shiftDelete adjusts run offsets for a deletion of [pos, pos+n). Runs
// collapsing to zero length are dropped.
func (rs *runStore) shiftDelete(pos, n int) {
	if n <= 0 {
		return
	}
	cut := pos + n
	rs.rebuild(func(r Run) (Run, bool) {
		switch {
		case r.Start >= cut:
			r.Start -= n
		case r.Start > pos:
			r.Start = pos
		}
		switch {
		case r.End >= cut:
			r.End -= n
		case r.End > pos:
			r.End = pos
		}
		if r.End <= r.Start {
			return Run{}, false
		}
		return r, true
	})
}

// clearAll drops every run.
func (rs *runStore) clearAll() {
	rs.tree = newRunTree()
}

func (rs *runStore) rebuild(transform func(Run) (Run, bool)) {
	runs := rs.all()
	rs.tree = newRunTree()
	for _, r := range runs {
		if out, keep := transform(r); keep {
			rs.tree.Insert(out.Start, out.End, out)
		}
	}
}

func sortBySeq(runs []Run) {
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Seq < runs[j].Seq
	})
}
