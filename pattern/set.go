package pattern

import (
	"sort"

	"github.com/dshills/matchmark/attribute"
)

// Set is an ordered collection of matchers. The order is the
// configuration order; it is not significant for correctness but makes
// output deterministic when start positions tie.
type Set struct {
	matchers []*Matcher
}

// NewSet creates a set from matchers in configuration order. Nil
// matchers are skipped.
func NewSet(matchers ...*Matcher) *Set {
	kept := make([]*Matcher, 0, len(matchers))
	for _, m := range matchers {
		if m != nil {
			kept = append(kept, m)
		}
	}
	return &Set{matchers: kept}
}

// Len returns the number of matchers.
func (s *Set) Len() int {
	return len(s.matchers)
}

// Matchers returns the matchers in configuration order.
func (s *Set) Matchers() []*Matcher {
	out := make([]*Matcher, len(s.matchers))
	copy(out, s.matchers)
	return out
}

// FindAllMatches aggregates every matcher's matches over the same text
// and base offset, sorted ascending by start position. Ties keep the
// matchers' configuration order. Matches from different matchers may
// overlap; the set does not deduplicate or resolve overlaps.
func (s *Set) FindAllMatches(text string, base int) []Match {
	var all []Match
	for _, m := range s.matchers {
		all = append(all, m.FindMatches(text, base)...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Start < all[j].Start
	})
	return all
}

// Attributes returns each matcher's derived attribute in configuration
// order.
func (s *Set) Attributes() []attribute.Attribute {
	attrs := make([]attribute.Attribute, len(s.matchers))
	for i, m := range s.matchers {
		attrs[i] = m.attr
	}
	return attrs
}

// OwnsAttribute returns true if any matcher derives an attribute with
// the same key.
func (s *Set) OwnsAttribute(attr attribute.Attribute) bool {
	_, ok := s.MatcherFor(attr)
	return ok
}

// MatcherFor returns the first matcher deriving an attribute with the
// same key.
func (s *Set) MatcherFor(attr attribute.Attribute) (*Matcher, bool) {
	for _, m := range s.matchers {
		if m.attr.SameKey(attr) {
			return m, true
		}
	}
	return nil, false
}
