package combatants

import (
	"context"
	"cmp"
	"slices"
	"sync"

	"github.com/KirkDiggler/rune-engine/internal/combatant"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the combatant repository
type InMemoryRepository struct {
	mu           sync.RWMutex
	combatants   map[string]*combatant.Snapshot
	timeProvider TimeProvider
}

// NewInMemoryRepository creates a new in-memory combatant repository
func NewInMemoryRepository() Repository {
	return NewInMemoryRepositoryWithClock(&RealTimeProvider{})
}

// NewInMemoryRepositoryWithClock creates an in-memory repository stamping
// snapshots with the given clock
func NewInMemoryRepositoryWithClock(timeProvider TimeProvider) Repository {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &InMemoryRepository{
		combatants:   make(map[string]*combatant.Snapshot),
		timeProvider: timeProvider,
	}
}

// Create stores a new combatant
func (r *InMemoryRepository) Create(ctx context.Context, snap *combatant.Snapshot) error {
	if snap == nil {
		return engineerr.InvalidArgument("combatant cannot be nil")
	}
	if snap.ID == "" {
		return engineerr.InvalidArgument("combatant ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.combatants[snap.ID]; exists {
		return engineerr.AlreadyExistsf("combatant with ID '%s' already exists", snap.ID).
			WithMeta("combatant_id", snap.ID)
	}

	snap.UpdatedAt = r.timeProvider.Now()
	r.combatants[snap.ID] = clone(snap)

	return nil
}

// Get retrieves a combatant by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*combatant.Snapshot, error) {
	if id == "" {
		return nil, engineerr.InvalidArgument("combatant ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, exists := r.combatants[id]
	if !exists {
		return nil, engineerr.NotFoundf("combatant with ID '%s' not found", id).
			WithMeta("combatant_id", id)
	}

	return clone(snap), nil
}

// Update replaces a stored combatant
func (r *InMemoryRepository) Update(ctx context.Context, snap *combatant.Snapshot) error {
	if snap == nil {
		return engineerr.InvalidArgument("combatant cannot be nil")
	}
	if snap.ID == "" {
		return engineerr.InvalidArgument("combatant ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.combatants[snap.ID]; !exists {
		return engineerr.NotFoundf("combatant with ID '%s' not found", snap.ID).
			WithMeta("combatant_id", snap.ID)
	}

	snap.UpdatedAt = r.timeProvider.Now()
	r.combatants[snap.ID] = clone(snap)

	return nil
}

// Delete removes a combatant
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return engineerr.InvalidArgument("combatant ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.combatants[id]; !exists {
		return engineerr.NotFoundf("combatant with ID '%s' not found", id).
			WithMeta("combatant_id", id)
	}

	delete(r.combatants, id)
	return nil
}

// ListByEncounter retrieves every combatant in an encounter, ordered by ID
func (r *InMemoryRepository) ListByEncounter(ctx context.Context, encounterID string) ([]*combatant.Snapshot, error) {
	if encounterID == "" {
		return nil, engineerr.InvalidArgument("encounter ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*combatant.Snapshot
	for _, snap := range r.combatants {
		if snap.EncounterID == encounterID {
			result = append(result, clone(snap))
		}
	}

	sortByID(result)

	return result, nil
}

func clone(snap *combatant.Snapshot) *combatant.Snapshot {
	c := *snap
	c.Abilities = slices.Clone(snap.Abilities)
	return &c
}

func sortByID(snaps []*combatant.Snapshot) {
	slices.SortFunc(snaps, func(a, b *combatant.Snapshot) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
