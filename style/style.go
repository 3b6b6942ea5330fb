// Package style defines the visual text styles that derived formatting
// resolves to. It is deliberately renderer-agnostic: backends translate
// these values into their own representation.
package style

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Attr represents text attribute flags (bold, italic, etc.).
type Attr uint16

// Text attribute flags.
const (
	AttrNone          Attr = 0
	AttrBold          Attr = 1 << iota
	AttrItalic             // Italic text
	AttrUnderline          // Underlined text
	AttrStrikethrough      // Strikethrough text
	AttrDim                // Faint/dim text
	AttrReverse            // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given flag.
func (a Attr) Has(flag Attr) bool {
	return a&flag != 0
}

// With returns a new attribute set with the given flag added.
func (a Attr) With(flag Attr) Attr {
	return a | flag
}

// Without returns a new attribute set with the given flag removed.
func (a Attr) Without(flag Attr) Attr {
	return a &^ flag
}

// Color represents an RGB color value.
type Color struct {
	R, G, B uint8

	// Default indicates the ambient/default color of the surrounding text.
	Default bool
}

// ColorDefault represents the ambient default color.
var ColorDefault = Color{Default: true}

// ColorFromRGB creates a color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex parses a color from a hex string such as "#1e90ff".
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parsing hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// IsDefault returns true if this is the ambient default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// Hex returns the hex representation of the color.
func (c Color) Hex() string {
	if c.Default {
		return ""
	}
	return c.toColorful().Hex()
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return c.Hex()
}

// Blend blends two colors together. amount is in [0, 1]; 0 returns c
// unchanged and 1 returns other.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	return fromColorful(c.toColorful().BlendRgb(other.toColorful(), amount))
}

// Lighten returns a lighter version of the color.
func (c Color) Lighten(amount float64) Color {
	if c.Default {
		return c
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return fromColorful(c.toColorful().BlendRgb(white, amount))
}

// Darken returns a darker version of the color.
func (c Color) Darken(amount float64) Color {
	if c.Default {
		return c
	}
	return fromColorful(c.toColorful().BlendRgb(colorful.Color{}, amount))
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Style represents the visual style of a text run.
type Style struct {
	Foreground Color
	Background Color
	Attrs      Attr
}

// DefaultStyle returns the ambient default style.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
		Attrs:      AttrNone,
	}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	return Style{
		Foreground: fg,
		Background: ColorDefault,
		Attrs:      AttrNone,
	}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns a new style with the bold flag added.
func (s Style) Bold() Style {
	s.Attrs |= AttrBold
	return s
}

// Italic returns a new style with the italic flag added.
func (s Style) Italic() Style {
	s.Attrs |= AttrItalic
	return s
}

// Underline returns a new style with the underline flag added.
func (s Style) Underline() Style {
	s.Attrs |= AttrUnderline
	return s
}

// Strikethrough returns a new style with the strikethrough flag added.
func (s Style) Strikethrough() Style {
	s.Attrs |= AttrStrikethrough
	return s
}

// Merge overlays other onto s. Non-default colors in other win; attribute
// flags are unioned.
func (s Style) Merge(other Style) Style {
	result := s
	if !other.Foreground.IsDefault() {
		result.Foreground = other.Foreground
	}
	if !other.Background.IsDefault() {
		result.Background = other.Background
	}
	result.Attrs |= other.Attrs
	return result
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attrs == other.Attrs
}

// IsDefault returns true if this is the ambient default style.
func (s Style) IsDefault() bool {
	return s.Foreground.IsDefault() &&
		s.Background.IsDefault() &&
		s.Attrs == AttrNone
}
