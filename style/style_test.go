package style

import "testing"

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		want    Color
		wantErr bool
	}{
		{name: "six digit", hex: "#1e90ff", want: Color{R: 0x1e, G: 0x90, B: 0xff}},
		{name: "black", hex: "#000000", want: Color{R: 0, G: 0, B: 0}},
		{name: "white", hex: "#ffffff", want: Color{R: 255, G: 255, B: 255}},
		{name: "invalid", hex: "not-a-color", wantErr: true},
		{name: "empty", hex: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ColorFromHex(tt.hex)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ColorFromHex(%q) expected error, got %v", tt.hex, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ColorFromHex(%q) unexpected error: %v", tt.hex, err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("ColorFromHex(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c := ColorFromRGB(0x1e, 0x90, 0xff)
	if c.Hex() != "#1e90ff" {
		t.Errorf("Hex() = %q, want #1e90ff", c.Hex())
	}
	if ColorDefault.Hex() != "" {
		t.Errorf("default color should have empty hex, got %q", ColorDefault.Hex())
	}
}

func TestColorBlend(t *testing.T) {
	black := ColorFromRGB(0, 0, 0)
	white := ColorFromRGB(255, 255, 255)

	mid := black.Blend(white, 0.5)
	if mid.R < 100 || mid.R > 155 {
		t.Errorf("blend midpoint R = %d, want roughly 127", mid.R)
	}
	if !black.Blend(white, 0).Equals(black) {
		t.Error("blend with amount 0 should return the receiver")
	}
	if !black.Blend(white, 1).Equals(white) {
		t.Error("blend with amount 1 should return the other color")
	}

	// Default colors cannot be blended numerically.
	if !ColorDefault.Blend(white, 0.4).Equals(ColorDefault) {
		t.Error("blending a default color below 0.5 should keep the default")
	}
	if !ColorDefault.Blend(white, 0.6).Equals(white) {
		t.Error("blending a default color above 0.5 should take the other")
	}
}

func TestColorLightenDarken(t *testing.T) {
	gray := ColorFromRGB(128, 128, 128)

	lighter := gray.Lighten(0.5)
	if lighter.R <= gray.R {
		t.Errorf("Lighten should increase channel values, got %d", lighter.R)
	}

	darker := gray.Darken(0.5)
	if darker.R >= gray.R {
		t.Errorf("Darken should decrease channel values, got %d", darker.R)
	}

	if !ColorDefault.Lighten(0.5).Equals(ColorDefault) {
		t.Error("Lighten of default color should be a no-op")
	}
}

func TestAttrFlags(t *testing.T) {
	a := AttrNone.With(AttrBold).With(AttrUnderline)

	if !a.Has(AttrBold) || !a.Has(AttrUnderline) {
		t.Error("flags should be set")
	}
	if a.Has(AttrItalic) {
		t.Error("italic should not be set")
	}

	a = a.Without(AttrBold)
	if a.Has(AttrBold) {
		t.Error("bold should be removed")
	}
	if !a.Has(AttrUnderline) {
		t.Error("underline should survive removal of bold")
	}
}

func TestStyleMerge(t *testing.T) {
	base := NewStyle(ColorFromRGB(10, 10, 10))
	link := NewStyle(ColorFromRGB(0x1e, 0x90, 0xff)).Underline()

	merged := base.Merge(link)
	if !merged.Foreground.Equals(link.Foreground) {
		t.Error("non-default foreground of other should win")
	}
	if !merged.Attrs.Has(AttrUnderline) {
		t.Error("attribute flags should be unioned")
	}

	// Default-colored overlay keeps the base colors.
	bare := DefaultStyle().Bold()
	merged = base.Merge(bare)
	if !merged.Foreground.Equals(base.Foreground) {
		t.Error("default foreground of other should not override base")
	}
	if !merged.Attrs.Has(AttrBold) {
		t.Error("bold flag should merge")
	}
}

func TestStyleIsDefault(t *testing.T) {
	if !DefaultStyle().IsDefault() {
		t.Error("DefaultStyle should be default")
	}
	if NewStyle(ColorFromRGB(1, 2, 3)).IsDefault() {
		t.Error("colored style should not be default")
	}
	if DefaultStyle().Bold().IsDefault() {
		t.Error("styled attrs should not be default")
	}
}

func TestThemeLookup(t *testing.T) {
	theme := NewTheme()
	hashtag := NewStyle(ColorFromRGB(0x1e, 0x90, 0xff)).Bold()
	theme.Set("hashtag", hashtag)

	if got := theme.For("hashtag"); !got.Equals(hashtag) {
		t.Errorf("For(hashtag) = %v, want %v", got, hashtag)
	}
	if !theme.Has("hashtag") {
		t.Error("Has(hashtag) should be true")
	}
	if theme.Has("mention") {
		t.Error("Has(mention) should be false")
	}

	if got := theme.For("mention"); !got.Equals(DefaultStyle()) {
		t.Errorf("unknown key should return fallback, got %v", got)
	}

	fb := DefaultStyle().Underline()
	theme.SetFallback(fb)
	if got := theme.For("mention"); !got.Equals(fb) {
		t.Errorf("fallback after SetFallback = %v, want %v", got, fb)
	}
}
