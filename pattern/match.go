// Package pattern locates regular-expression matches in document text
// and maps them to the formatting attributes they derive.
package pattern

import (
	"fmt"

	"github.com/dshills/matchmark/attribute"
)

// Match is one located occurrence of a pattern. Start and End are
// absolute rune offsets into the full document; End is exclusive.
// Matches are transient values produced fresh on every scan.
type Match struct {
	// Text is the matched text.
	Text string

	// Start is the absolute rune offset of the first matched rune.
	Start int

	// End is the absolute rune offset one past the last matched rune.
	End int

	// Attr is the attribute the owning matcher derives.
	Attr attribute.Attribute
}

// Len returns the match length in runes.
func (m Match) Len() int {
	return m.End - m.Start
}

// Equal returns true if all four fields are equal.
func (m Match) Equal(other Match) bool {
	return m.Text == other.Text &&
		m.Start == other.Start &&
		m.End == other.End &&
		m.Attr == other.Attr
}

// Overlaps returns true if two matches cover any common position.
func (m Match) Overlaps(other Match) bool {
	return m.Start < other.End && other.Start < m.End
}

// String returns a human-readable representation of the match.
func (m Match) String() string {
	return fmt.Sprintf("%q@[%d,%d):%s", m.Text, m.Start, m.End, m.Attr.Key)
}
