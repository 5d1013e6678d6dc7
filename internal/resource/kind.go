package resource

import (
	"fmt"

	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// Kind identifies one of the bounded resources a combatant owns.
type Kind int

const (
	KindRage Kind = iota + 1
	KindMomentum
	KindCorruption
	KindResonance
)

var kindNames = map[Kind]string{
	KindRage:       "rage",
	KindMomentum:   "momentum",
	KindCorruption: "corruption",
	KindResonance:  "resonance",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("resource(%d)", int(k))
}

// Valid reports whether k is a known resource kind.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind converts a name such as "rage" into a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, engineerr.InvalidArgumentf("unknown resource kind %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, engineerr.InvalidArgumentf("unknown resource kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Direction is the sign of a change.
type Direction int

const (
	DirectionGain Direction = iota + 1
	DirectionDecay
)

func (d Direction) String() string {
	switch d {
	case DirectionGain:
		return "gain"
	case DirectionDecay:
		return "decay"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Source names what caused a gain or decay. It is recorded on every Result
// so changes can be audited.
type Source string

const (
	SourceHit        Source = "hit"
	SourceDamage     Source = "damage_taken"
	SourceKill       Source = "kill"
	SourceCrit       Source = "critical_hit"
	SourceMiss       Source = "miss"
	SourceAbility    Source = "ability"
	SourceCast       Source = "cast"
	SourceRiskCheck  Source = "risk_check"
	SourceTurnEnd    Source = "turn_end"
	SourceRest       Source = "rest"
	SourceCleansing  Source = "cleansing"
	SourceEncounter  Source = "encounter_end"
	SourceAdjustment Source = "adjustment"
)

// TierEffect is a flag a tier grants while the resource sits in it. The
// combat layer queries these instead of comparing tier names.
type TierEffect int

const (
	EffectForcedAttack TierEffect = iota + 1
	EffectRageDamageBonus
	EffectIgnorePain
	EffectCritBonus
	EffectHealOnKill
	EffectExtraMovement
	EffectAetherSight
	EffectSpellEcho
	EffectTaintedAura
)

var tierEffectNames = map[TierEffect]string{
	EffectForcedAttack:    "forced-attack",
	EffectRageDamageBonus: "rage-damage-bonus",
	EffectIgnorePain:      "ignore-pain",
	EffectCritBonus:       "crit-bonus",
	EffectHealOnKill:      "heal-on-kill",
	EffectExtraMovement:   "extra-movement",
	EffectAetherSight:     "aether-sight",
	EffectSpellEcho:       "spell-echo",
	EffectTaintedAura:     "tainted-aura",
}

func (e TierEffect) String() string {
	if name, ok := tierEffectNames[e]; ok {
		return name
	}
	return fmt.Sprintf("tier-effect(%d)", int(e))
}

// Valid reports whether e is a known tier effect.
func (e TierEffect) Valid() bool {
	_, ok := tierEffectNames[e]
	return ok
}

// ParseTierEffect converts a configuration name into a TierEffect.
func ParseTierEffect(name string) (TierEffect, error) {
	for e, n := range tierEffectNames {
		if n == name {
			return e, nil
		}
	}
	return 0, engineerr.InvalidArgumentf("unknown tier effect %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (e TierEffect) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, engineerr.InvalidArgumentf("unknown tier effect %d", int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *TierEffect) UnmarshalText(text []byte) error {
	parsed, err := ParseTierEffect(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
