package style

import "sync"

// Theme maps attribute keys to visual styles.
type Theme struct {
	mu       sync.RWMutex
	styles   map[string]Style
	fallback Style
}

// NewTheme creates an empty theme with a default fallback style.
func NewTheme() *Theme {
	return &Theme{
		styles:   make(map[string]Style),
		fallback: DefaultStyle(),
	}
}

// Set assigns a style to an attribute key.
func (t *Theme) Set(key string, s Style) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.styles[key] = s
}

// SetFallback sets the style returned for unknown keys.
func (t *Theme) SetFallback(s Style) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fallback = s
}

// For returns the style for an attribute key, or the fallback style if
// the key has no entry.
func (t *Theme) For(key string) Style {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if s, ok := t.styles[key]; ok {
		return s
	}
	return t.fallback
}

// Has returns true if the theme has an explicit style for the key.
func (t *Theme) Has(key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.styles[key]
	return ok
}

// Keys returns all keys with explicit styles.
func (t *Theme) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]string, 0, len(t.styles))
	for k := range t.styles {
		keys = append(keys, k)
	}
	return keys
}
