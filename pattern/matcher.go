package pattern

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/dshills/matchmark/attribute"
)

// Matcher pairs one compiled regular expression with the attribute it
// derives. Matchers are immutable after construction and own no
// document state.
type Matcher struct {
	re            *regexp.Regexp
	expr          string
	attr          attribute.Attribute
	caseSensitive bool
}

// NewMatcher compiles a matcher for the given expression. When
// caseSensitive is false the expression is compiled with the
// case-insensitive flag.
func NewMatcher(expr string, attr attribute.Attribute, caseSensitive bool) (*Matcher, error) {
	compiled := expr
	if !caseSensitive {
		compiled = "(?i)" + compiled
	}
	re, err := regexp.Compile(compiled)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", expr, err)
	}
	return &Matcher{
		re:            re,
		expr:          expr,
		attr:          attr,
		caseSensitive: caseSensitive,
	}, nil
}

// MustMatcher is like NewMatcher but panics on a bad expression.
// Intended for statically known patterns.
func MustMatcher(expr string, attr attribute.Attribute, caseSensitive bool) *Matcher {
	m, err := NewMatcher(expr, attr, caseSensitive)
	if err != nil {
		panic(err)
	}
	return m
}

// Pattern returns the original expression text.
func (m *Matcher) Pattern() string {
	return m.expr
}

// Attribute returns the attribute this matcher derives.
func (m *Matcher) Attribute() attribute.Attribute {
	return m.attr
}

// CaseSensitive reports whether matching respects letter case.
func (m *Matcher) CaseSensitive() bool {
	return m.caseSensitive
}

// FindMatches scans text for all non-overlapping matches and returns
// one Match per occurrence, with Start and End shifted by base so they
// are absolute document offsets. Zero-length matches are discarded: the
// caller's scope is a single finite line, and an empty occurrence
// derives no formatting.
func (m *Matcher) FindMatches(text string, base int) []Match {
	if text == "" {
		return nil
	}

	idxs := m.re.FindAllStringIndex(text, -1)
	if len(idxs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(idxs))

	// Indexes are byte offsets in ascending order; convert to rune
	// offsets in a single pass over the text.
	byteIdx, runeIdx := 0, 0
	advance := func(target int) int {
		for byteIdx < target {
			_, size := utf8.DecodeRuneInString(text[byteIdx:])
			byteIdx += size
			runeIdx++
		}
		return runeIdx
	}

	for _, idx := range idxs {
		if idx[0] == idx[1] {
			continue
		}
		start := advance(idx[0])
		end := advance(idx[1])
		matches = append(matches, Match{
			Text:  text[idx[0]:idx[1]],
			Start: base + start,
			End:   base + end,
			Attr:  m.attr,
		})
	}

	if len(matches) == 0 {
		return nil
	}
	return matches
}

// String returns a human-readable representation of the matcher.
func (m *Matcher) String() string {
	return fmt.Sprintf("matcher(%s %q)", m.attr.Key, m.expr)
}
