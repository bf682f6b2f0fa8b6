package karst

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the type descriptors of one or more generated model
// packages. Generated registry files register their descriptors into
// the global registry from init(), so lookups are available as soon as
// the model package is imported.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*TypeDescriptor
}

// NewRegistry creates an empty registry. Most callers use the package
// level Register/Lookup functions backed by the global registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*TypeDescriptor)}
}

var global = NewRegistry()

// Register adds descriptors to the global registry.
func Register(types ...*TypeDescriptor) error {
	return global.Register(types...)
}

// Lookup returns the descriptor registered under the given qualified
// name from the global registry.
func Lookup(qualified string) (*TypeDescriptor, bool) {
	return global.Lookup(qualified)
}

// Types returns a snapshot of all globally registered descriptors.
func Types() []*TypeDescriptor {
	return global.Types()
}

// Register adds descriptors to the registry. Registering a qualified
// name twice is an error: descriptors are singletons and a duplicate
// indicates two generated packages mapping the same declaration.
func (r *Registry) Register(types ...*TypeDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range types {
		if t == nil || t.Qualified == "" {
			return fmt.Errorf("karst: cannot register descriptor without a qualified name")
		}
		if _, ok := r.byName[t.Qualified]; ok {
			return fmt.Errorf("karst: descriptor %q registered twice", t.Qualified)
		}
		r.byName[t.Qualified] = t
	}
	return nil
}

// Lookup returns the descriptor registered under the qualified name.
func (r *Registry) Lookup(qualified string) (*TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[qualified]
	return t, ok
}

// Types returns all registered descriptors sorted by qualified name.
// The slice is a copy; mutating it does not affect the registry.
func (r *Registry) Types() []*TypeDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*TypeDescriptor, 0, len(r.byName))
	for _, t := range r.byName {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Qualified < out[j].Qualified })
	return out
}
