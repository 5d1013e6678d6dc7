package resource_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
	"github.com/KirkDiggler/rune-engine/internal/resource"
)

func newRage(t *testing.T, initial int) resource.Rage {
	t.Helper()
	r, err := resource.NewRage(resource.DefaultRageTable(), initial)
	require.NoError(t, err)
	return r
}

func TestRage_GainIntoFrenzy(t *testing.T) {
	rage := newRage(t, 75)

	rage, res, err := rage.Gain(10, resource.SourceHit)

	require.NoError(t, err)
	assert.Equal(t, 75, res.PreviousValue)
	assert.Equal(t, 85, res.NewValue)
	assert.Equal(t, 10, res.AmountApplied)
	assert.True(t, res.ThresholdChanged)
	assert.Equal(t, resource.Enraged, res.PreviousLevel)
	assert.Equal(t, resource.FrenzyBeyondReason, res.NewLevel)
	assert.Equal(t, []resource.RageLevel{resource.FrenzyBeyondReason}, res.Entered)
	assert.ElementsMatch(t, []resource.TierEffect{
		resource.EffectForcedAttack, resource.EffectRageDamageBonus, resource.EffectIgnorePain,
	}, res.Unlocked)
	assert.Equal(t, resource.SourceHit, res.Source)
	assert.Equal(t, 85, rage.Current())
	assert.True(t, rage.InFrenzy())
	assert.True(t, rage.HasEffect(resource.EffectForcedAttack))
	assert.Equal(t, "rage gain 10 (hit): 75 -> 85, enraged -> frenzy-beyond-reason", res.String())
}

func TestTracker_GainClampsAtMax(t *testing.T) {
	rage := newRage(t, 95)

	rage, res, err := rage.Gain(20, resource.SourceKill)
	require.NoError(t, err)
	assert.Equal(t, 100, res.NewValue)
	assert.Equal(t, 5, res.AmountApplied)
	assert.Equal(t, 20, res.Requested)
	assert.True(t, res.Clamped())
	assert.False(t, res.ThresholdChanged)

	rage, res, err = rage.Gain(20, resource.SourceKill)
	require.NoError(t, err)
	assert.Equal(t, 0, res.AmountApplied, "a full tracker applies nothing")
	assert.Equal(t, 100, rage.Current())
}

func TestTracker_DecayFloorsAtZero(t *testing.T) {
	rage := newRage(t, 15)

	rage, res, err := rage.Decay(40, resource.SourceRest)

	require.NoError(t, err)
	assert.Equal(t, 0, rage.Current())
	assert.Equal(t, 15, res.AmountApplied)
	assert.Equal(t, resource.DirectionDecay, res.Direction)
	assert.False(t, res.ThresholdChanged)
}

func TestTracker_GainSpanningSeveralTiers(t *testing.T) {
	rage := newRage(t, 10)

	_, res, err := rage.Gain(85, resource.SourceAdjustment)

	require.NoError(t, err)
	assert.Equal(t, resource.Calm, res.PreviousLevel)
	assert.Equal(t, resource.FrenzyBeyondReason, res.NewLevel)
	assert.Equal(t, []resource.RageLevel{resource.Angry, resource.Enraged, resource.FrenzyBeyondReason}, res.Entered)
	assert.True(t, res.EnteredLevel(resource.Enraged), "intermediate tiers are reported")
	assert.Empty(t, res.Exited)
}

func TestTracker_DecayOutOfTopTierRevokesEffects(t *testing.T) {
	momentum, err := resource.NewMomentum(resource.DefaultMomentumTable(), 90)
	require.NoError(t, err)
	require.True(t, momentum.IsUnstoppable())

	momentum, res, err := momentum.Decay(70, resource.SourceMiss)

	require.NoError(t, err)
	assert.Equal(t, 20, momentum.Current())
	assert.Equal(t, resource.Still, res.NewLevel)
	assert.Equal(t, []resource.MomentumLevel{resource.Unstoppable, resource.Flowing, resource.Building}, res.Exited)
	assert.True(t, res.ExitedLevel(resource.Flowing))
	assert.ElementsMatch(t, []resource.TierEffect{
		resource.EffectCritBonus, resource.EffectHealOnKill, resource.EffectExtraMovement,
	}, res.Revoked)
	assert.Empty(t, res.Unlocked)
	assert.False(t, momentum.HasEffect(resource.EffectCritBonus))
}

func TestTracker_BoundaryValues(t *testing.T) {
	tests := []struct {
		value int
		want  resource.MomentumLevel
	}{
		{0, resource.Still},
		{20, resource.Still},
		{21, resource.Building},
		{50, resource.Building},
		{51, resource.Flowing},
		{80, resource.Flowing},
		{81, resource.Unstoppable},
		{100, resource.Unstoppable},
	}

	for _, tt := range tests {
		m, err := resource.NewMomentum(resource.DefaultMomentumTable(), tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, m.Level(), "momentum %d", tt.value)
	}
}

func TestTracker_RejectsBadInput(t *testing.T) {
	_, err := resource.NewRage(resource.DefaultRageTable(), 101)
	assert.True(t, engineerr.IsInvalidArgument(err))

	_, err = resource.NewRage(resource.DefaultRageTable(), -1)
	assert.True(t, engineerr.IsInvalidArgument(err))

	rage := newRage(t, 50)
	same, _, err := rage.Gain(-5, resource.SourceHit)
	assert.True(t, engineerr.IsInvalidArgument(err))
	assert.Equal(t, 50, same.Current())

	_, _, err = rage.Decay(-5, resource.SourceRest)
	assert.True(t, engineerr.IsInvalidArgument(err))
}

func TestTracker_StaysInBoundsUnderRandomChanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tracker, err := resource.NewTracker(resource.DefaultResonanceTable(), 0)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		amount := rng.Intn(8)
		var res resource.Result[resource.ResonanceLevel]
		if rng.Intn(2) == 0 {
			tracker, res, err = tracker.Gain(amount, resource.SourceCast)
		} else {
			tracker, res, err = tracker.Decay(amount, resource.SourceTurnEnd)
		}
		require.NoError(t, err)

		assert.GreaterOrEqual(t, tracker.Current(), 0)
		assert.LessOrEqual(t, tracker.Current(), tracker.Max())
		assert.LessOrEqual(t, res.AmountApplied, amount)
		assert.Equal(t, res.PreviousLevel != res.NewLevel, res.ThresholdChanged)
		assert.Equal(t, tracker.Level(), res.NewLevel)
	}
}

func TestTracker_ValueSemantics(t *testing.T) {
	before := newRage(t, 30)
	after, _, err := before.Gain(30, resource.SourceHit)

	require.NoError(t, err)
	assert.Equal(t, 30, before.Current())
	assert.Equal(t, 60, after.Current())
}

func TestTable_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tbl *resource.Table[resource.RageLevel])
	}{
		{name: "unknown kind", mutate: func(tbl *resource.Table[resource.RageLevel]) { tbl.Kind = 0 }},
		{name: "zero max", mutate: func(tbl *resource.Table[resource.RageLevel]) { tbl.Max = 0 }},
		{name: "no levels", mutate: func(tbl *resource.Table[resource.RageLevel]) { tbl.Levels = nil }},
		{name: "first level above zero", mutate: func(tbl *resource.Table[resource.RageLevel]) { tbl.Levels[0].Min = 1 }},
		{name: "mins not ascending", mutate: func(tbl *resource.Table[resource.RageLevel]) { tbl.Levels[2].Min = 20 }},
		{name: "top tier above max", mutate: func(tbl *resource.Table[resource.RageLevel]) { tbl.Max = 70 }},
		{name: "unknown effect", mutate: func(tbl *resource.Table[resource.RageLevel]) {
			tbl.Levels[1].Effects = []resource.TierEffect{99}
		}},
		{name: "levels out of order", mutate: func(tbl *resource.Table[resource.RageLevel]) {
			tbl.Levels[1].Level, tbl.Levels[2].Level = tbl.Levels[2].Level, tbl.Levels[1].Level
		}},
	}

	require.NoError(t, resource.DefaultTables().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := resource.DefaultRageTable()
			tt.mutate(&tbl)
			assert.True(t, engineerr.IsValidation(tbl.Validate()))
		})
	}
}

func TestResult_Change(t *testing.T) {
	rage := newRage(t, 45)
	_, res, err := rage.Gain(40, resource.SourceHit)
	require.NoError(t, err)

	change := res.Change()

	assert.Equal(t, resource.KindRage, change.Kind)
	assert.Equal(t, "angry", change.PreviousLevel)
	assert.Equal(t, "frenzy-beyond-reason", change.NewLevel)
	assert.Equal(t, []string{"enraged", "frenzy-beyond-reason"}, change.Entered)
	assert.Nil(t, change.Exited)
}
