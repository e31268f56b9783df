package library

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps library names to their factories.
// It is safe for concurrent use; lookups take a read lock only.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a named factory to the registry.
// Returns an error if the name is empty, the factory is nil, or the name is taken.
func (r *Registry) Register(name string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("cannot register nil factory for library %q", name)
	}
	if name == "" {
		return fmt.Errorf("cannot register library with empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateLibrary, name)
	}

	r.factories[name] = factory
	return nil
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLibrary, name)
	}
	return factory, nil
}

// New builds a new instance of the named library.
func (r *Registry) New(name string, directed bool) (Interface, error) {
	factory, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return factory(directed)
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered libraries.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry populated by built-in adapters.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a factory to the default registry.
// It panics on error, since it is meant to be called from init().
func Register(name string, factory Factory) {
	if err := defaultRegistry.Register(name, factory); err != nil {
		panic(err)
	}
}
