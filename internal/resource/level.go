package resource

import (
	"fmt"

	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// Level is the tier enum of one resource. Values are ordered from the lowest
// tier to the highest.
type Level interface {
	~int
	String() string
}

// RageLevel is a Rage tier.
type RageLevel int

const (
	Calm RageLevel = iota
	Angry
	Enraged
	FrenzyBeyondReason
)

var rageLevelNames = []string{"calm", "angry", "enraged", "frenzy-beyond-reason"}

func (l RageLevel) String() string { return levelName("rage", rageLevelNames, int(l)) }

func (l RageLevel) MarshalText() ([]byte, error) {
	return marshalLevel("rage", rageLevelNames, int(l))
}

func (l *RageLevel) UnmarshalText(text []byte) error {
	v, err := parseLevel("rage", rageLevelNames, string(text))
	*l = RageLevel(v)
	return err
}

// MomentumLevel is a Momentum tier.
type MomentumLevel int

const (
	Still MomentumLevel = iota
	Building
	Flowing
	Unstoppable
)

var momentumLevelNames = []string{"still", "building", "flowing", "unstoppable"}

func (l MomentumLevel) String() string { return levelName("momentum", momentumLevelNames, int(l)) }

func (l MomentumLevel) MarshalText() ([]byte, error) {
	return marshalLevel("momentum", momentumLevelNames, int(l))
}

func (l *MomentumLevel) UnmarshalText(text []byte) error {
	v, err := parseLevel("momentum", momentumLevelNames, string(text))
	*l = MomentumLevel(v)
	return err
}

// CorruptionLevel is a Corruption tier.
type CorruptionLevel int

const (
	Untainted CorruptionLevel = iota
	Tainted
	Blighted
	Consumed
)

var corruptionLevelNames = []string{"untainted", "tainted", "blighted", "consumed"}

func (l CorruptionLevel) String() string {
	return levelName("corruption", corruptionLevelNames, int(l))
}

func (l CorruptionLevel) MarshalText() ([]byte, error) {
	return marshalLevel("corruption", corruptionLevelNames, int(l))
}

func (l *CorruptionLevel) UnmarshalText(text []byte) error {
	v, err := parseLevel("corruption", corruptionLevelNames, string(text))
	*l = CorruptionLevel(v)
	return err
}

// ResonanceLevel is an Aetheric Resonance tier.
type ResonanceLevel int

const (
	Dormant ResonanceLevel = iota
	Attuned
	Resonant
	Overcharged
)

var resonanceLevelNames = []string{"dormant", "attuned", "resonant", "overcharged"}

func (l ResonanceLevel) String() string {
	return levelName("resonance", resonanceLevelNames, int(l))
}

func (l ResonanceLevel) MarshalText() ([]byte, error) {
	return marshalLevel("resonance", resonanceLevelNames, int(l))
}

func (l *ResonanceLevel) UnmarshalText(text []byte) error {
	v, err := parseLevel("resonance", resonanceLevelNames, string(text))
	*l = ResonanceLevel(v)
	return err
}

func levelName(kind string, names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%s-level(%d)", kind, v)
	}
	return names[v]
}

func marshalLevel(kind string, names []string, v int) ([]byte, error) {
	if v < 0 || v >= len(names) {
		return nil, engineerr.InvalidArgumentf("unknown %s level %d", kind, v)
	}
	return []byte(names[v]), nil
}

func parseLevel(kind string, names []string, text string) (int, error) {
	for i, n := range names {
		if n == text {
			return i, nil
		}
	}
	return 0, engineerr.InvalidArgumentf("unknown %s level %q", kind, text)
}
