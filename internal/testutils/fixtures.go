package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rune-engine/internal/ability"
	"github.com/KirkDiggler/rune-engine/internal/combatant"
	"github.com/KirkDiggler/rune-engine/internal/resource"
)

// Ability IDs registered by CreateTestRegistry
const (
	AbilityMasterLocksmith = "master-locksmith"
	AbilitySteadyHands     = "steady-hands"
	AbilitySecondChance    = "second-chance"
	AbilityAetherLance     = "aether-lance"
)

// CreateTestAbilities returns a small set of master abilities covering each
// kind of modifier
func CreateTestAbilities() []*ability.Ability {
	return []*ability.Ability{
		{
			ID:          AbilityMasterLocksmith,
			Name:        "Master Locksmith",
			SkillID:     "lockpicking",
			AutoSucceed: &ability.AutoSucceedRule{MaxDC: 3},
			Effects:     []ability.Effect{ability.EffectSilentExecution},
		},
		{
			ID:        AbilitySteadyHands,
			Name:      "Steady Hands",
			SkillID:   "lockpicking",
			DiceBonus: 1,
			Effects:   []ability.Effect{ability.EffectPreserveConsumable},
		},
		{
			ID:              AbilitySecondChance,
			Name:            "Second Chance",
			SkillID:         "athletics",
			RerollOnFailure: true,
		},
		{
			ID:            AbilityAetherLance,
			Name:          "Aether Lance",
			SkillID:       "arcana",
			DiceBonus:     2,
			ResonanceGain: 2,
		},
	}
}

// CreateTestRegistry registers CreateTestAbilities
func CreateTestRegistry(t *testing.T) *ability.Registry {
	t.Helper()
	registry, err := ability.NewRegistry(CreateTestAbilities()...)
	require.NoError(t, err)
	return registry
}

// CreateTestSnapshot creates a combatant snapshot with every resource at zero
func CreateTestSnapshot(id, encounterID, name string) *combatant.Snapshot {
	return &combatant.Snapshot{
		ID:          id,
		EncounterID: encounterID,
		Name:        name,
	}
}

// CreateTestCombatant builds a combatant from snap using the default tables
func CreateTestCombatant(t *testing.T, snap *combatant.Snapshot) combatant.Combatant {
	t.Helper()
	c, err := combatant.FromSnapshot(snap, resource.DefaultTables())
	require.NoError(t, err)
	return c
}
