package resource

import (
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// Rage builds in combat and tips into Frenzy at the top tier.
type Rage struct {
	Tracker[RageLevel]
}

// NewRage creates a Rage tracker starting at initial.
func NewRage(table Table[RageLevel], initial int) (Rage, error) {
	t, err := NewTracker(table, initial)
	return Rage{t}, err
}

func (r Rage) Gain(amount int, source Source) (Rage, Result[RageLevel], error) {
	t, res, err := r.Tracker.Gain(amount, source)
	return Rage{t}, res, err
}

func (r Rage) Decay(amount int, reason Source) (Rage, Result[RageLevel], error) {
	t, res, err := r.Tracker.Decay(amount, reason)
	return Rage{t}, res, err
}

// InFrenzy reports whether the combatant has lost control.
func (r Rage) InFrenzy() bool {
	return r.Level() == FrenzyBeyondReason
}

// Momentum builds from successive successes.
type Momentum struct {
	Tracker[MomentumLevel]
}

// NewMomentum creates a Momentum tracker starting at initial.
func NewMomentum(table Table[MomentumLevel], initial int) (Momentum, error) {
	t, err := NewTracker(table, initial)
	return Momentum{t}, err
}

func (m Momentum) Gain(amount int, source Source) (Momentum, Result[MomentumLevel], error) {
	t, res, err := m.Tracker.Gain(amount, source)
	return Momentum{t}, res, err
}

func (m Momentum) Decay(amount int, reason Source) (Momentum, Result[MomentumLevel], error) {
	t, res, err := m.Tracker.Decay(amount, reason)
	return Momentum{t}, res, err
}

// IsUnstoppable reports whether momentum is in its top tier.
func (m Momentum) IsUnstoppable() bool {
	return m.Level() == Unstoppable
}

// Corruption is never gained passively; it only grows through the RiskGate
// or explicit story effects.
type Corruption struct {
	Tracker[CorruptionLevel]
}

// NewCorruption creates a Corruption tracker starting at initial.
func NewCorruption(table Table[CorruptionLevel], initial int) (Corruption, error) {
	t, err := NewTracker(table, initial)
	return Corruption{t}, err
}

func (c Corruption) Gain(amount int, source Source) (Corruption, Result[CorruptionLevel], error) {
	t, res, err := c.Tracker.Gain(amount, source)
	return Corruption{t}, res, err
}

func (c Corruption) Decay(amount int, reason Source) (Corruption, Result[CorruptionLevel], error) {
	t, res, err := c.Tracker.Decay(amount, reason)
	return Corruption{t}, res, err
}

// Resonance is Aetheric Resonance. Besides the tracked value it keeps a
// pool of accumulated aetheric damage that only Release drains.
type Resonance struct {
	Tracker[ResonanceLevel]
	accumulated int
}

// NewResonance creates a Resonance tracker with an existing damage pool.
func NewResonance(table Table[ResonanceLevel], initial, accumulated int) (Resonance, error) {
	if accumulated < 0 {
		return Resonance{}, engineerr.InvalidArgumentf("accumulated aether cannot be negative, got %d", accumulated)
	}
	t, err := NewTracker(table, initial)
	return Resonance{Tracker: t, accumulated: accumulated}, err
}

// Accumulated is the aetheric damage waiting to be released.
func (r Resonance) Accumulated() int {
	return r.accumulated
}

func (r Resonance) Gain(amount int, source Source) (Resonance, Result[ResonanceLevel], error) {
	t, res, err := r.Tracker.Gain(amount, source)
	return Resonance{Tracker: t, accumulated: r.accumulated}, res, err
}

func (r Resonance) Decay(amount int, reason Source) (Resonance, Result[ResonanceLevel], error) {
	t, res, err := r.Tracker.Decay(amount, reason)
	return Resonance{Tracker: t, accumulated: r.accumulated}, res, err
}

// Cast gains resonance for one ability use and banks its aetheric damage.
func (r Resonance) Cast(gain, aethericDamage int, source Source) (Resonance, Result[ResonanceLevel], error) {
	if aethericDamage < 0 {
		return r, Result[ResonanceLevel]{}, engineerr.InvalidArgumentf("aetheric damage cannot be negative, got %d", aethericDamage)
	}
	next, res, err := r.Gain(gain, source)
	if err != nil {
		return r, res, err
	}
	next.accumulated += aethericDamage
	return next, res, nil
}

// Release empties the damage pool and returns how much was stored. The
// resonance value itself is untouched.
func (r Resonance) Release() (Resonance, int) {
	burst := r.accumulated
	r.accumulated = 0
	return r, burst
}
