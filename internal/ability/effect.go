package ability

import (
	"fmt"

	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// Effect is a special effect an ability attaches to a check. The set is
// closed; consumers switch on it rather than matching text.
type Effect int

const (
	EffectNoReputationLossOnFailure Effect = iota + 1
	EffectExtraLootRoll
	EffectSilentExecution
	EffectPreserveConsumable
	EffectRevealHiddenDetail
)

var effectNames = map[Effect]string{
	EffectNoReputationLossOnFailure: "no-reputation-loss-on-failure",
	EffectExtraLootRoll:             "extra-loot-roll",
	EffectSilentExecution:           "silent-execution",
	EffectPreserveConsumable:        "preserve-consumable",
	EffectRevealHiddenDetail:        "reveal-hidden-detail",
}

func (e Effect) String() string {
	if name, ok := effectNames[e]; ok {
		return name
	}
	return fmt.Sprintf("effect(%d)", int(e))
}

// Valid reports whether e is one of the known effects.
func (e Effect) Valid() bool {
	_, ok := effectNames[e]
	return ok
}

// ParseEffect converts a configuration name into an Effect.
func ParseEffect(name string) (Effect, error) {
	for effect, n := range effectNames {
		if n == name {
			return effect, nil
		}
	}
	return 0, engineerr.InvalidArgumentf("unknown ability effect %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (e Effect) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, engineerr.InvalidArgumentf("unknown ability effect %d", int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Effect) UnmarshalText(text []byte) error {
	parsed, err := ParseEffect(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
