package resource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rune-engine/internal/dice"
	mockdice "github.com/KirkDiggler/rune-engine/internal/dice/mock"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
	"github.com/KirkDiggler/rune-engine/internal/resource"
)

func newCorruption(t *testing.T, initial int) resource.Corruption {
	t.Helper()
	c, err := resource.NewCorruption(resource.DefaultCorruptionTable(), initial)
	require.NoError(t, err)
	return c
}

func TestRiskGate_Percent(t *testing.T) {
	gate, err := resource.NewRiskGate(resource.DefaultRiskConfig(), dice.NewSeededSource(1))
	require.NoError(t, err)

	tests := []struct {
		kind    resource.Kind
		value   int
		want    int
		trigger bool
	}{
		{resource.KindRage, 79, 0, false},
		{resource.KindRage, 80, 5, true},
		{resource.KindRage, 84, 5, true},
		{resource.KindRage, 85, 15, true},
		{resource.KindRage, 95, 25, true},
		{resource.KindRage, 100, 25, true},
		{resource.KindResonance, 4, 0, false},
		{resource.KindResonance, 5, 5, true},
		{resource.KindResonance, 7, 15, true},
		{resource.KindResonance, 10, 25, true},
		{resource.KindMomentum, 100, 0, false},
	}

	for _, tt := range tests {
		percent, ok := gate.Percent(tt.kind, tt.value)
		assert.Equal(t, tt.trigger, ok, "%s %d", tt.kind, tt.value)
		assert.Equal(t, tt.want, percent, "%s %d", tt.kind, tt.value)
	}
}

func TestRiskGate_CorruptionScenario(t *testing.T) {
	t.Run("draw under the percentage corrupts", func(t *testing.T) {
		// Face 10 draws 9 on a 0-99 scale.
		src := mockdice.NewManualSource(10)
		gate, err := resource.NewRiskGate(resource.DefaultRiskConfig(), src)
		require.NoError(t, err)

		a, corruption, err := gate.Assess(resource.KindRage, 85, newCorruption(t, 3))

		require.NoError(t, err)
		assert.True(t, a.Triggered)
		assert.Equal(t, 15, a.Percent)
		assert.Equal(t, 9, a.Draw)
		assert.True(t, a.CorruptionTriggered)
		require.NotNil(t, a.Corruption)
		assert.Equal(t, resource.SourceRiskCheck, a.Corruption.Source)
		assert.Equal(t, 4, corruption.Current())
		assert.Equal(t, "rage 85: 15% risk, drew 9, corrupted", a.String())
	})

	t.Run("draw at the percentage resists", func(t *testing.T) {
		src := mockdice.NewManualSource(16)
		gate, err := resource.NewRiskGate(resource.DefaultRiskConfig(), src)
		require.NoError(t, err)

		a, corruption, err := gate.Assess(resource.KindRage, 85, newCorruption(t, 3))

		require.NoError(t, err)
		assert.True(t, a.Triggered)
		assert.Equal(t, 15, a.Draw)
		assert.False(t, a.CorruptionTriggered)
		assert.Nil(t, a.Corruption)
		assert.Equal(t, 3, corruption.Current())
	})
}

func TestRiskGate_BelowTriggerNeverDraws(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mockdice.NewMockSource(ctrl)
	gate, err := resource.NewRiskGate(resource.DefaultRiskConfig(), src)
	require.NoError(t, err)

	a, corruption, err := gate.Assess(resource.KindRage, 79, newCorruption(t, 3))

	require.NoError(t, err)
	assert.False(t, a.Triggered)
	assert.Equal(t, -1, a.Draw)
	assert.Equal(t, 3, corruption.Current())
}

func TestRiskGate_PercentageBoundaries(t *testing.T) {
	cfg := resource.RiskConfig{
		Rage:                 []resource.RiskBand{{Min: 80, Percent: 0}, {Min: 90, Percent: 100}},
		CorruptionPerTrigger: 2,
	}

	t.Run("zero percent never triggers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := mockdice.NewMockSource(ctrl)
		src.EXPECT().Intn(100).Return(0)
		gate, err := resource.NewRiskGate(cfg, src)
		require.NoError(t, err)

		a, corruption, err := gate.Assess(resource.KindRage, 85, newCorruption(t, 0))

		require.NoError(t, err)
		assert.False(t, a.CorruptionTriggered)
		assert.Equal(t, 0, corruption.Current())
	})

	t.Run("hundred percent always triggers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := mockdice.NewMockSource(ctrl)
		src.EXPECT().Intn(100).Return(99)
		gate, err := resource.NewRiskGate(cfg, src)
		require.NoError(t, err)

		a, corruption, err := gate.Assess(resource.KindRage, 90, newCorruption(t, 0))

		require.NoError(t, err)
		assert.True(t, a.CorruptionTriggered)
		assert.Equal(t, 2, corruption.Current())
	})
}

func TestRiskGate_UsesTriggeringValueNotCorruption(t *testing.T) {
	// The same draw against very different corruption values must agree.
	for _, start := range []int{0, 40, 99} {
		src := mockdice.NewManualSource(5)
		gate, err := resource.NewRiskGate(resource.DefaultRiskConfig(), src)
		require.NoError(t, err)

		a, _, err := gate.Assess(resource.KindResonance, 5, newCorruption(t, start))
		require.NoError(t, err)
		assert.Equal(t, 5, a.Percent)
		assert.True(t, a.CorruptionTriggered, "draw 4 is under 5 percent")
	}
}

func TestRiskGate_AssessUse(t *testing.T) {
	rage := newRage(t, 96)
	resonance, err := resource.NewResonance(resource.DefaultResonanceTable(), 7, 0)
	require.NoError(t, err)

	// Rage draws 20 (25% band), resonance draws 80 (15% band).
	src := mockdice.NewManualSource(21, 81)
	gate, err := resource.NewRiskGate(resource.DefaultRiskConfig(), src)
	require.NoError(t, err)

	assessments, corruption, err := gate.AssessUse(rage, resonance, newCorruption(t, 10))

	require.NoError(t, err)
	require.Len(t, assessments, 2)
	assert.Equal(t, resource.KindRage, assessments[0].TriggerKind)
	assert.True(t, assessments[0].CorruptionTriggered)
	assert.Equal(t, resource.KindResonance, assessments[1].TriggerKind)
	assert.False(t, assessments[1].CorruptionTriggered)
	assert.Equal(t, 11, corruption.Current())
	assert.Equal(t, 0, src.Remaining())
}

func TestRiskGate_AssessUseSkipsCalmResources(t *testing.T) {
	ctrl := gomock.NewController(t)
	gate, err := resource.NewRiskGate(resource.DefaultRiskConfig(), mockdice.NewMockSource(ctrl))
	require.NoError(t, err)

	resonance, err := resource.NewResonance(resource.DefaultResonanceTable(), 2, 0)
	require.NoError(t, err)

	assessments, corruption, err := gate.AssessUse(newRage(t, 40), resonance, newCorruption(t, 10))

	require.NoError(t, err)
	assert.Empty(t, assessments)
	assert.Equal(t, 10, corruption.Current())
}

func TestRiskConfig_Validate(t *testing.T) {
	require.NoError(t, resource.DefaultRiskConfig().Validate())

	tests := []struct {
		name string
		cfg  resource.RiskConfig
	}{
		{name: "percent over 100", cfg: resource.RiskConfig{Rage: []resource.RiskBand{{Min: 80, Percent: 101}}, CorruptionPerTrigger: 1}},
		{name: "negative percent", cfg: resource.RiskConfig{Resonance: []resource.RiskBand{{Min: 5, Percent: -1}}, CorruptionPerTrigger: 1}},
		{name: "bands out of order", cfg: resource.RiskConfig{Rage: []resource.RiskBand{{Min: 85, Percent: 5}, {Min: 80, Percent: 15}}, CorruptionPerTrigger: 1}},
		{name: "no corruption gain", cfg: resource.RiskConfig{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, engineerr.IsValidation(tt.cfg.Validate()))
		})
	}

	_, err := resource.NewRiskGate(resource.DefaultRiskConfig(), nil)
	assert.True(t, engineerr.IsInvalidArgument(err))
}

func TestRiskConfig_YAML(t *testing.T) {
	var cfg resource.RiskConfig
	err := yaml.Unmarshal([]byte(`
rage:
  - {min: 70, percent: 10}
  - {min: 90, percent: 50}
resonance:
  - {min: 6, percent: 20}
corruption_per_trigger: 3
`), &cfg)

	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []resource.RiskBand{{Min: 70, Percent: 10}, {Min: 90, Percent: 50}}, cfg.Rage)
	assert.Equal(t, 3, cfg.CorruptionPerTrigger)
}
