package attribute

import (
	"sync"

	"github.com/dshills/matchmark/style"
)

// ActivateFunc runs when a matched span carrying the attribute is
// activated (tapped) and no handler was already attached to the span.
type ActivateFunc func(text string) error

// Descriptor associates an attribute kind with its visual style and
// default activation behavior.
type Descriptor struct {
	// Attr is the canonical attribute for this kind.
	Attr Attribute

	// Style is the derived style applied to matched spans.
	Style style.Style

	// OnActivate is the default activation handler. May be nil.
	OnActivate ActivateFunc
}

// Registry maps attribute keys to descriptors. It replaces loose
// string-keyed association between matchers and renderers with a typed
// lookup by identifier.
type Registry struct {
	mu    sync.RWMutex
	byKey map[string]Descriptor
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey: make(map[string]Descriptor),
	}
}

// Register adds or replaces the descriptor for its attribute key.
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byKey[d.Attr.Key]; !exists {
		r.order = append(r.order, d.Attr.Key)
	}
	r.byKey[d.Attr.Key] = d
}

// Lookup returns the descriptor for a key.
func (r *Registry) Lookup(key string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byKey[key]
	return d, ok
}

// Has returns true if the key is registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey)
}
