package binding

import (
	"fmt"
	"sync"
)

// Registry stores bindings by ID in registration order.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]*Binding
	order    []string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[string]*Binding),
	}
}

// Register adds a binding by its ID. Duplicate IDs return an error.
func (r *Registry) Register(b *Binding) error {
	if b == nil {
		return fmt.Errorf("binding: binding is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bindings[b.id]; exists {
		return &ConfigError{Binding: b.id, Reason: "already registered"}
	}
	r.bindings[b.id] = b
	r.order = append(r.order, b.id)
	return nil
}

// Has reports whether a binding ID is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.bindings[id]
	return ok
}

// Get retrieves a binding by ID.
func (r *Registry) Get(id string) (*Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bindings[id]
	return b, ok
}

// List returns the bindings in registration order.
func (r *Registry) List() []*Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Binding, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.bindings[id])
	}
	return out
}
