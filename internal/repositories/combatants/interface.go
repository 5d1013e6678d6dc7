package combatants

//go:generate mockgen -destination=mock/mock_repository.go -package=mockcombatants -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/rune-engine/internal/combatant"
)

// Repository persists combatant snapshots between turns
type Repository interface {
	// Create stores a new combatant
	Create(ctx context.Context, snap *combatant.Snapshot) error

	// Get retrieves a combatant by ID
	Get(ctx context.Context, id string) (*combatant.Snapshot, error)

	// Update replaces a stored combatant
	Update(ctx context.Context, snap *combatant.Snapshot) error

	// Delete removes a combatant
	Delete(ctx context.Context, id string) error

	// ListByEncounter retrieves every combatant placed in an encounter
	ListByEncounter(ctx context.Context, encounterID string) ([]*combatant.Snapshot, error)
}
