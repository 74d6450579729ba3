package resolver

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
)

// Registry maps entity type names to their descriptors. Resolver
// configuration names types; the registry turns those names into the
// descriptors the KeyResolver works with. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]domain.EntityType
}

// NewRegistry creates a registry holding the given types.
// Returns an error if any type is invalid or registered twice.
func NewRegistry(types ...domain.EntityType) (*Registry, error) {
	r := &Registry{types: make(map[string]domain.EntityType, len(types))}
	for _, t := range types {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register validates t and adds it to the registry.
func (r *Registry) Register(t domain.EntityType) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("registering entity type %q: %w", t.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.types == nil {
		r.types = make(map[string]domain.EntityType)
	}
	if _, exists := r.types[t.Name]; exists {
		return fmt.Errorf("%w: entity type %q already registered", domain.ErrConfiguration, t.Name)
	}
	r.types[t.Name] = t
	return nil
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (domain.EntityType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}
