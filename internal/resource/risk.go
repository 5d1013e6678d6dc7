package resource

import (
	"fmt"

	"github.com/KirkDiggler/rune-engine/internal/dice"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// RiskBand sets the corruption chance once the triggering resource reaches Min.
type RiskBand struct {
	Min     int `yaml:"min"`
	Percent int `yaml:"percent"`
}

// RiskConfig holds the bands for each resource that can trigger a
// corruption check. The first band's Min is the trigger condition.
type RiskConfig struct {
	Rage                 []RiskBand `yaml:"rage"`
	Resonance            []RiskBand `yaml:"resonance"`
	CorruptionPerTrigger int        `yaml:"corruption_per_trigger"`
}

// DefaultRiskConfig returns the standard 5/15/25 percent bands.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		Rage: []RiskBand{
			{Min: 80, Percent: 5},
			{Min: 85, Percent: 15},
			{Min: 95, Percent: 25},
		},
		Resonance: []RiskBand{
			{Min: 5, Percent: 5},
			{Min: 7, Percent: 15},
			{Min: 9, Percent: 25},
		},
		CorruptionPerTrigger: 1,
	}
}

// Validate checks band ordering and percentages.
func (c RiskConfig) Validate() error {
	if err := validateBands(KindRage, c.Rage); err != nil {
		return err
	}
	if err := validateBands(KindResonance, c.Resonance); err != nil {
		return err
	}
	if c.CorruptionPerTrigger < 1 {
		return engineerr.Validationf("corruption per trigger must be at least 1, got %d", c.CorruptionPerTrigger)
	}
	return nil
}

func validateBands(kind Kind, bands []RiskBand) error {
	for i, band := range bands {
		if band.Percent < 0 || band.Percent > 100 {
			return engineerr.Validationf("%s risk percent must be between 0 and 100, got %d", kind, band.Percent)
		}
		if i > 0 && band.Min <= bands[i-1].Min {
			return engineerr.Validationf("%s risk bands must ascend, %d after %d", kind, band.Min, bands[i-1].Min)
		}
	}
	return nil
}

func (c RiskConfig) bands(kind Kind) []RiskBand {
	switch kind {
	case KindRage:
		return c.Rage
	case KindResonance:
		return c.Resonance
	default:
		return nil
	}
}

// Assessment is the audit record of one corruption check.
type Assessment struct {
	TriggerKind  Kind
	TriggerValue int

	// Triggered means the trigger condition held and a draw was made
	Triggered bool
	Percent   int

	// Draw is the uniform 0-99 draw, or -1 when no draw was made
	Draw int

	CorruptionTriggered bool
	Corruption          *Result[CorruptionLevel]
}

func (a Assessment) String() string {
	if !a.Triggered {
		return fmt.Sprintf("%s %d: below risk threshold", a.TriggerKind, a.TriggerValue)
	}
	verdict := "resisted"
	if a.CorruptionTriggered {
		verdict = "corrupted"
	}
	return fmt.Sprintf("%s %d: %d%% risk, drew %d, %s", a.TriggerKind, a.TriggerValue, a.Percent, a.Draw, verdict)
}

// RiskGate runs the two-stage corruption check: a trigger condition on
// another resource, then a percentage draw that may feed Corruption.
type RiskGate struct {
	cfg RiskConfig
	src dice.Source
}

// NewRiskGate validates cfg and binds the gate to its own random source.
func NewRiskGate(cfg RiskConfig, src dice.Source) (*RiskGate, error) {
	if src == nil {
		return nil, engineerr.InvalidArgument("risk gate needs a random source")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &RiskGate{cfg: cfg, src: src}, nil
}

// Percent returns the corruption chance for a triggering resource at value.
// ok is false when the trigger condition does not hold.
func (g *RiskGate) Percent(kind Kind, value int) (percent int, ok bool) {
	for _, band := range g.cfg.bands(kind) {
		if value >= band.Min {
			percent, ok = band.Percent, true
		}
	}
	return percent, ok
}

// Assess checks one triggering resource value and, when the draw lands
// under the band's percentage, gains Corruption. The percentage depends
// only on the triggering value, never on Corruption itself.
func (g *RiskGate) Assess(kind Kind, value int, corruption Corruption) (Assessment, Corruption, error) {
	a := Assessment{TriggerKind: kind, TriggerValue: value, Draw: -1}

	percent, ok := g.Percent(kind, value)
	if !ok {
		return a, corruption, nil
	}

	a.Triggered = true
	a.Percent = percent
	a.Draw = dice.RollPercent(g.src)
	if a.Draw >= percent {
		return a, corruption, nil
	}

	next, res, err := corruption.Gain(g.cfg.CorruptionPerTrigger, SourceRiskCheck)
	if err != nil {
		return a, corruption, engineerr.Wrap(err, "failed to apply corruption")
	}
	a.CorruptionTriggered = true
	a.Corruption = &res
	return a, next, nil
}

// AssessUse runs the gate for an ability use against the Rage and Resonance
// values held before the ability's own costs are applied. Rage is checked
// first; each trigger draws independently.
func (g *RiskGate) AssessUse(rage Rage, resonance Resonance, corruption Corruption) ([]Assessment, Corruption, error) {
	var out []Assessment
	for _, trigger := range []struct {
		kind  Kind
		value int
	}{
		{KindRage, rage.Current()},
		{KindResonance, resonance.Current()},
	} {
		a, next, err := g.Assess(trigger.kind, trigger.value, corruption)
		if err != nil {
			return nil, corruption, err
		}
		corruption = next
		if a.Triggered {
			out = append(out, a)
		}
	}
	return out, corruption, nil
}
