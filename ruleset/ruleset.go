// Package ruleset loads matcher rules from JSON or TOML files and
// builds the matcher set and attribute registry they describe.
package ruleset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/dshills/matchmark/attribute"
	"github.com/dshills/matchmark/pattern"
	"github.com/dshills/matchmark/script"
	"github.com/dshills/matchmark/style"
)

// StyleSpec describes the visual treatment a rule derives.
type StyleSpec struct {
	Foreground string `toml:"foreground" json:"foreground"`
	Background string `toml:"background" json:"background"`
	Bold       bool   `toml:"bold" json:"bold"`
	Italic     bool   `toml:"italic" json:"italic"`
	Underline  bool   `toml:"underline" json:"underline"`
	Strike     bool   `toml:"strike" json:"strike"`
}

// Rule pairs a pattern with the attribute it derives. OnActivate is an
// optional Lua chunk run when a projected span is tapped.
type Rule struct {
	Name          string    `toml:"name" json:"name"`
	Pattern       string    `toml:"pattern" json:"pattern"`
	Attribute     string    `toml:"attribute" json:"attribute"`
	CaseSensitive *bool     `toml:"case_sensitive" json:"case_sensitive"`
	Style         StyleSpec `toml:"style" json:"style"`
	OnActivate    string    `toml:"on_activate" json:"on_activate"`
}

func (r Rule) caseSensitive() bool {
	if r.CaseSensitive == nil {
		return true
	}
	return *r.CaseSensitive
}

// Config is an ordered list of rules. Order is significant: it decides
// tie-breaks between matches starting at the same offset.
type Config struct {
	Rules []Rule `toml:"rules" json:"rules"`
}

// LoadJSON parses a JSON rule document.
func LoadJSON(data []byte) (*Config, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	rules := root.Get("rules")
	if !rules.Exists() {
		return nil, fmt.Errorf("%w: missing rules array", ErrInvalidConfig)
	}
	if !rules.IsArray() {
		return nil, fmt.Errorf("%w: rules is not an array", ErrInvalidConfig)
	}

	cfg := &Config{}
	for _, item := range rules.Array() {
		rule := Rule{
			Name:       item.Get("name").String(),
			Pattern:    item.Get("pattern").String(),
			Attribute:  item.Get("attribute").String(),
			OnActivate: item.Get("on_activate").String(),
			Style: StyleSpec{
				Foreground: item.Get("style.foreground").String(),
				Background: item.Get("style.background").String(),
				Bold:       item.Get("style.bold").Bool(),
				Italic:     item.Get("style.italic").Bool(),
				Underline:  item.Get("style.underline").Bool(),
				Strike:     item.Get("style.strike").Bool(),
			},
		}
		if cs := item.Get("case_sensitive"); cs.Exists() {
			v := cs.Bool()
			rule.CaseSensitive = &v
		}
		cfg.Rules = append(cfg.Rules, rule)
	}
	return cfg, cfg.validate()
}

// LoadTOML parses a TOML rule document.
func LoadTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTOML, err)
	}
	return cfg, cfg.validate()
}

// LoadFile loads a rule file, choosing the parser by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(data)
	case ".toml":
		return LoadTOML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
	}
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Rules))
	for i, r := range c.Rules {
		if r.Pattern == "" {
			return fmt.Errorf("%w: rule %d (%s) has no pattern", ErrInvalidConfig, i, r.Name)
		}
		if r.Attribute == "" {
			return fmt.Errorf("%w: rule %d (%s) has no attribute", ErrInvalidConfig, i, r.Name)
		}
		if seen[r.Attribute] {
			return fmt.Errorf("%w: duplicate attribute %q", ErrInvalidConfig, r.Attribute)
		}
		seen[r.Attribute] = true
	}
	return nil
}

// Build compiles the rules into a matcher set and attribute registry.
// The engine may be nil when no rule carries an activation chunk.
func (c *Config) Build(engine *script.Engine) (*pattern.Set, *attribute.Registry, error) {
	matchers := make([]*pattern.Matcher, 0, len(c.Rules))
	registry := attribute.NewRegistry()

	for _, rule := range c.Rules {
		attr := attribute.New(rule.Attribute, rule.Name)
		m, err := pattern.NewMatcher(rule.Pattern, attr, rule.caseSensitive())
		if err != nil {
			return nil, nil, fmt.Errorf("rule %q: %w", rule.Name, err)
		}
		matchers = append(matchers, m)

		desc := attribute.Descriptor{Attr: attr, Style: buildStyle(rule.Style)}
		if rule.OnActivate != "" {
			if engine == nil {
				return nil, nil, fmt.Errorf("rule %q: %w", rule.Name, ErrNoEngine)
			}
			fn, err := engine.Compile(rule.Name, rule.OnActivate)
			if err != nil {
				return nil, nil, fmt.Errorf("rule %q: %w", rule.Name, err)
			}
			key := rule.Attribute
			desc.OnActivate = func(text string) error { return fn(text, key) }
		}
		registry.Register(desc)
	}

	return pattern.NewSet(matchers...), registry, nil
}

// BuildTheme returns a theme mapping each rule's attribute key to its
// style. Unknown keys resolve to the ambient default.
func (c *Config) BuildTheme() *style.Theme {
	th := style.NewTheme()
	for _, rule := range c.Rules {
		th.Set(rule.Attribute, buildStyle(rule.Style))
	}
	return th
}

func buildStyle(spec StyleSpec) style.Style {
	s := style.DefaultStyle()
	if spec.Foreground != "" {
		if c, err := style.ColorFromHex(spec.Foreground); err == nil {
			s.Foreground = c
		}
	}
	if spec.Background != "" {
		if c, err := style.ColorFromHex(spec.Background); err == nil {
			s.Background = c
		}
	}
	if spec.Bold {
		s.Attrs |= style.AttrBold
	}
	if spec.Italic {
		s.Attrs |= style.AttrItalic
	}
	if spec.Underline {
		s.Attrs |= style.AttrUnderline
	}
	if spec.Strike {
		s.Attrs |= style.AttrStrikethrough
	}
	return s
}
