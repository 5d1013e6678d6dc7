package resource

import (
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// Tier is one band of a table. It applies from Min up to the next tier's Min.
type Tier[L Level] struct {
	Level   L            `yaml:"level"`
	Min     int          `yaml:"min"`
	Effects []TierEffect `yaml:"effects,omitempty"`
}

// Table is the tuning data of one resource.
type Table[L Level] struct {
	Kind   Kind      `yaml:"-"`
	Max    int       `yaml:"max"`
	Levels []Tier[L] `yaml:"levels"`
}

// Validate requires tiers that start at 0, ascend strictly and fit under Max.
func (t Table[L]) Validate() error {
	if !t.Kind.Valid() {
		return engineerr.Validationf("table has unknown resource kind %d", int(t.Kind))
	}
	if t.Max < 1 {
		return engineerr.Validationf("%s max must be positive, got %d", t.Kind, t.Max)
	}
	if len(t.Levels) == 0 {
		return engineerr.Validationf("%s table needs at least one level", t.Kind)
	}
	if t.Levels[0].Min != 0 {
		return engineerr.Validationf("%s first level must start at 0, got %d", t.Kind, t.Levels[0].Min)
	}

	for i, tier := range t.Levels {
		if i > 0 {
			prev := t.Levels[i-1]
			if tier.Min <= prev.Min {
				return engineerr.Validationf("%s level %s must start above %s (%d <= %d)",
					t.Kind, tier.Level, prev.Level, tier.Min, prev.Min)
			}
			if tier.Level <= prev.Level {
				return engineerr.Validationf("%s levels must be listed in ascending order, %s after %s",
					t.Kind, tier.Level, prev.Level)
			}
		}
		for _, e := range tier.Effects {
			if !e.Valid() {
				return engineerr.Validationf("%s level %s has unknown effect %d", t.Kind, tier.Level, int(e))
			}
		}
	}

	if last := t.Levels[len(t.Levels)-1]; last.Min > t.Max {
		return engineerr.Validationf("%s level %s starts above max (%d > %d)", t.Kind, last.Level, last.Min, t.Max)
	}
	return nil
}

// index returns the position of the tier containing value.
func (t Table[L]) index(value int) int {
	idx := 0
	for i, tier := range t.Levels {
		if value >= tier.Min {
			idx = i
		}
	}
	return idx
}

// LevelFor returns the tier containing value.
func (t Table[L]) LevelFor(value int) L {
	return t.Levels[t.index(value)].Level
}

// EffectsFor returns the effects granted at value.
func (t Table[L]) EffectsFor(value int) []TierEffect {
	return t.Levels[t.index(value)].Effects
}

// MinFor returns the lower boundary of level, or false if the table has no such tier.
func (t Table[L]) MinFor(level L) (int, bool) {
	for _, tier := range t.Levels {
		if tier.Level == level {
			return tier.Min, true
		}
	}
	return 0, false
}

// DefaultRageTable returns the standard Rage tiers.
func DefaultRageTable() Table[RageLevel] {
	return Table[RageLevel]{
		Kind: KindRage,
		Max:  100,
		Levels: []Tier[RageLevel]{
			{Level: Calm, Min: 0},
			{Level: Angry, Min: 20},
			{Level: Enraged, Min: 50},
			{Level: FrenzyBeyondReason, Min: 80, Effects: []TierEffect{EffectForcedAttack, EffectRageDamageBonus, EffectIgnorePain}},
		},
	}
}

// DefaultMomentumTable returns the standard Momentum tiers.
func DefaultMomentumTable() Table[MomentumLevel] {
	return Table[MomentumLevel]{
		Kind: KindMomentum,
		Max:  100,
		Levels: []Tier[MomentumLevel]{
			{Level: Still, Min: 0},
			{Level: Building, Min: 21},
			{Level: Flowing, Min: 51},
			{Level: Unstoppable, Min: 81, Effects: []TierEffect{EffectCritBonus, EffectHealOnKill, EffectExtraMovement}},
		},
	}
}

// DefaultCorruptionTable returns the standard Corruption tiers.
func DefaultCorruptionTable() Table[CorruptionLevel] {
	return Table[CorruptionLevel]{
		Kind: KindCorruption,
		Max:  100,
		Levels: []Tier[CorruptionLevel]{
			{Level: Untainted, Min: 0},
			{Level: Tainted, Min: 25},
			{Level: Blighted, Min: 50},
			{Level: Consumed, Min: 75, Effects: []TierEffect{EffectTaintedAura}},
		},
	}
}

// DefaultResonanceTable returns the standard Aetheric Resonance tiers.
func DefaultResonanceTable() Table[ResonanceLevel] {
	return Table[ResonanceLevel]{
		Kind: KindResonance,
		Max:  10,
		Levels: []Tier[ResonanceLevel]{
			{Level: Dormant, Min: 0},
			{Level: Attuned, Min: 3, Effects: []TierEffect{EffectAetherSight}},
			{Level: Resonant, Min: 5, Effects: []TierEffect{EffectAetherSight}},
			{Level: Overcharged, Min: 8, Effects: []TierEffect{EffectAetherSight, EffectSpellEcho}},
		},
	}
}

// Tables bundles the tuning of every resource a combatant owns.
type Tables struct {
	Rage       Table[RageLevel]       `yaml:"rage"`
	Momentum   Table[MomentumLevel]   `yaml:"momentum"`
	Corruption Table[CorruptionLevel] `yaml:"corruption"`
	Resonance  Table[ResonanceLevel]  `yaml:"resonance"`
}

// DefaultTables returns the standard tuning for all four resources.
func DefaultTables() Tables {
	return Tables{
		Rage:       DefaultRageTable(),
		Momentum:   DefaultMomentumTable(),
		Corruption: DefaultCorruptionTable(),
		Resonance:  DefaultResonanceTable(),
	}
}

// Validate validates each table.
func (t Tables) Validate() error {
	if err := t.Rage.Validate(); err != nil {
		return err
	}
	if err := t.Momentum.Validate(); err != nil {
		return err
	}
	if err := t.Corruption.Validate(); err != nil {
		return err
	}
	return t.Resonance.Validate()
}
