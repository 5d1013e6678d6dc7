package ability

import (
	"sort"
	"sync"

	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// Registry holds ability definitions by ID
type Registry struct {
	mu        sync.RWMutex
	abilities map[string]*Ability
}

// NewRegistry creates a registry preloaded with the given definitions
func NewRegistry(abilities ...*Ability) (*Registry, error) {
	r := &Registry{
		abilities: make(map[string]*Ability),
	}
	for _, a := range abilities {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a definition to the registry
func (r *Registry) Register(a *Ability) error {
	if err := a.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.abilities[a.ID]; exists {
		return engineerr.AlreadyExistsf("ability %s is already registered", a.ID)
	}
	r.abilities[a.ID] = a
	return nil
}

// Get retrieves a definition by ID
func (r *Registry) Get(id string) (*Ability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.abilities[id]
	return a, exists
}

// List returns all registered ability IDs in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.abilities))
	for id := range r.abilities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
