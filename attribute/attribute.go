// Package attribute defines the keyed formatting markers that pattern
// matching derives, plus the registry that associates each marker kind
// with its visual style and activation behavior.
package attribute

import "fmt"

// Scope describes what a formatting attribute applies to.
type Scope uint8

const (
	// ScopeCharacter applies the attribute to a contiguous run of characters.
	ScopeCharacter Scope = iota

	// ScopeLine applies the attribute to an entire line.
	ScopeLine
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeCharacter:
		return "character"
	case ScopeLine:
		return "line"
	default:
		return "unknown"
	}
}

// Attribute is a keyed, scoped formatting marker applicable to a text
// range. Attributes are value types and are compared by Key.
type Attribute struct {
	// Key identifies the attribute kind (e.g. "hashtag", "mention").
	Key string

	// Scope describes what the attribute applies to.
	Scope Scope

	// Value is the attribute payload, if any.
	Value string

	// Unset marks this attribute as the explicit clear sentinel: applying
	// it to a range removes runs of the same Key instead of adding one.
	Unset bool
}

// New creates a character-scoped attribute with the given key and value.
func New(key, value string) Attribute {
	return Attribute{Key: key, Scope: ScopeCharacter, Value: value}
}

// Cleared returns a copy of the attribute carrying the unset sentinel.
func (a Attribute) Cleared() Attribute {
	a.Unset = true
	return a
}

// SameKey returns true if both attributes identify the same kind.
func (a Attribute) SameKey(other Attribute) bool {
	return a.Key == other.Key
}

// String returns a human-readable representation of the attribute.
func (a Attribute) String() string {
	if a.Unset {
		return fmt.Sprintf("%s(unset)", a.Key)
	}
	if a.Value == "" {
		return a.Key
	}
	return fmt.Sprintf("%s=%s", a.Key, a.Value)
}
