package combatants_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rune-engine/internal/combatant"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
	"github.com/KirkDiggler/rune-engine/internal/repositories/combatants"
)

// runRepositoryContract exercises behavior every Repository must share.
// prefix keeps IDs apart when the backing store is shared.
func runRepositoryContract(t *testing.T, repo combatants.Repository, prefix string) {
	t.Helper()
	ctx := context.Background()
	id := func(s string) string { return prefix + s }

	t.Run("create then get", func(t *testing.T) {
		snap := &combatant.Snapshot{
			ID:          id("torvald"),
			EncounterID: id("enc-1"),
			Name:        "Torvald",
			Rage:        75,
			Abilities:   []string{"second-chance"},
		}
		require.NoError(t, repo.Create(ctx, snap))
		assert.False(t, snap.UpdatedAt.IsZero(), "create stamps the snapshot")

		got, err := repo.Get(ctx, snap.ID)
		require.NoError(t, err)
		assert.Equal(t, 75, got.Rage)
		assert.Equal(t, []string{"second-chance"}, got.Abilities)
		assert.Equal(t, snap.EncounterID, got.EncounterID)
	})

	t.Run("duplicate create", func(t *testing.T) {
		snap := &combatant.Snapshot{ID: id("dupe"), Name: "Twice"}
		require.NoError(t, repo.Create(ctx, snap))

		err := repo.Create(ctx, snap)
		assert.True(t, engineerr.IsAlreadyExists(err))
	})

	t.Run("update and list by encounter", func(t *testing.T) {
		wren := &combatant.Snapshot{ID: id("wren"), EncounterID: id("enc-2"), Name: "Wren"}
		ash := &combatant.Snapshot{ID: id("ash"), EncounterID: id("enc-2"), Name: "Ash"}
		require.NoError(t, repo.Create(ctx, wren))
		require.NoError(t, repo.Create(ctx, ash))

		wren.Momentum = 55
		require.NoError(t, repo.Update(ctx, wren))

		listed, err := repo.ListByEncounter(ctx, id("enc-2"))
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, id("ash"), listed[0].ID)
		assert.Equal(t, id("wren"), listed[1].ID)
		assert.Equal(t, 55, listed[1].Momentum)

		// Moving to another encounter leaves the old one
		ash.EncounterID = id("enc-3")
		require.NoError(t, repo.Update(ctx, ash))

		listed, err = repo.ListByEncounter(ctx, id("enc-2"))
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, id("wren"), listed[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		snap := &combatant.Snapshot{ID: id("doomed"), EncounterID: id("enc-4")}
		require.NoError(t, repo.Create(ctx, snap))
		require.NoError(t, repo.Delete(ctx, snap.ID))

		_, err := repo.Get(ctx, snap.ID)
		assert.True(t, engineerr.IsNotFound(err))

		listed, err := repo.ListByEncounter(ctx, id("enc-4"))
		require.NoError(t, err)
		assert.Empty(t, listed)

		assert.True(t, engineerr.IsNotFound(repo.Delete(ctx, snap.ID)))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.Get(ctx, id("nobody"))
		assert.True(t, engineerr.IsNotFound(err))

		err = repo.Update(ctx, &combatant.Snapshot{ID: id("nobody")})
		assert.True(t, engineerr.IsNotFound(err))
	})
}
