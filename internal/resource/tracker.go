// Package resource implements bounded combat resources with tiered
// thresholds: Rage, Momentum, Corruption and Aetheric Resonance.
//
// All four share one Tracker that clamps to [0, Max] and reports every tier
// boundary a change crosses. Values are immutable; Gain and Decay return the
// updated resource alongside an auditable Result.
package resource

import (
	"fmt"
	"slices"
	"strings"

	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// Result records one Gain or Decay.
type Result[L Level] struct {
	Kind      Kind
	Direction Direction
	Source    Source

	PreviousValue int
	NewValue      int

	// Requested is the amount asked for; AmountApplied is what fit.
	Requested     int
	AmountApplied int

	PreviousLevel    L
	NewLevel         L
	ThresholdChanged bool

	// Entered lists every tier crossed upward, lowest first. Exited lists
	// every tier left on the way down, highest first.
	Entered []L
	Exited  []L

	Unlocked []TierEffect
	Revoked  []TierEffect
}

// Clamped reports whether the change hit a boundary before the full amount applied.
func (r Result[L]) Clamped() bool {
	return r.AmountApplied < r.Requested
}

// EnteredLevel reports whether the change crossed into level on the way up,
// even if it continued past it.
func (r Result[L]) EnteredLevel(level L) bool {
	return slices.Contains(r.Entered, level)
}

// ExitedLevel reports whether the change left level on the way down.
func (r Result[L]) ExitedLevel(level L) bool {
	return slices.Contains(r.Exited, level)
}

func (r Result[L]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %d (%s): %d -> %d", r.Kind, r.Direction, r.AmountApplied, r.Source, r.PreviousValue, r.NewValue)
	if r.Clamped() {
		fmt.Fprintf(&b, " [clamped from %d]", r.Requested)
	}
	if r.ThresholdChanged {
		fmt.Fprintf(&b, ", %s -> %s", r.PreviousLevel, r.NewLevel)
	}
	return b.String()
}

// Change is the untyped view of a Result, used where the resource kind is
// only known at runtime.
type Change struct {
	Kind             Kind
	Direction        Direction
	Source           Source
	PreviousValue    int
	NewValue         int
	Requested        int
	AmountApplied    int
	PreviousLevel    string
	NewLevel         string
	ThresholdChanged bool
	Entered          []string
	Exited           []string
	Unlocked         []TierEffect
	Revoked          []TierEffect
}

// Change converts the result into its untyped view.
func (r Result[L]) Change() Change {
	return Change{
		Kind:             r.Kind,
		Direction:        r.Direction,
		Source:           r.Source,
		PreviousValue:    r.PreviousValue,
		NewValue:         r.NewValue,
		Requested:        r.Requested,
		AmountApplied:    r.AmountApplied,
		PreviousLevel:    r.PreviousLevel.String(),
		NewLevel:         r.NewLevel.String(),
		ThresholdChanged: r.ThresholdChanged,
		Entered:          levelNames(r.Entered),
		Exited:           levelNames(r.Exited),
		Unlocked:         r.Unlocked,
		Revoked:          r.Revoked,
	}
}

func levelNames[L Level](levels []L) []string {
	if len(levels) == 0 {
		return nil
	}
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.String()
	}
	return names
}

// Tracker is a bounded value in [0, table.Max] with tiered thresholds.
type Tracker[L Level] struct {
	table   Table[L]
	current int
}

// NewTracker validates the table and starts the tracker at initial.
func NewTracker[L Level](table Table[L], initial int) (Tracker[L], error) {
	if err := table.Validate(); err != nil {
		return Tracker[L]{}, err
	}
	if initial < 0 || initial > table.Max {
		return Tracker[L]{}, engineerr.InvalidArgumentf("%s must be between 0 and %d, got %d", table.Kind, table.Max, initial).
			WithMeta("kind", table.Kind.String()).
			WithMeta("value", initial)
	}
	return Tracker[L]{table: table, current: initial}, nil
}

func (t Tracker[L]) Current() int          { return t.current }
func (t Tracker[L]) Max() int              { return t.table.Max }
func (t Tracker[L]) Kind() Kind            { return t.table.Kind }
func (t Tracker[L]) Table() Table[L]       { return t.table }
func (t Tracker[L]) Level() L              { return t.table.LevelFor(t.current) }
func (t Tracker[L]) Effects() []TierEffect { return t.table.EffectsFor(t.current) }

// HasEffect reports whether the current tier grants e.
func (t Tracker[L]) HasEffect(e TierEffect) bool {
	return slices.Contains(t.Effects(), e)
}

// AtLeast reports whether the tracker sits in level or above.
func (t Tracker[L]) AtLeast(level L) bool {
	return t.Level() >= level
}

// Gain adds amount, capped at Max.
func (t Tracker[L]) Gain(amount int, source Source) (Tracker[L], Result[L], error) {
	if amount < 0 {
		return t, Result[L]{}, engineerr.InvalidArgumentf("%s gain cannot be negative, got %d", t.table.Kind, amount)
	}
	next := min(t.current+amount, t.table.Max)
	return t.apply(DirectionGain, amount, next, source)
}

// Decay removes amount, floored at 0.
func (t Tracker[L]) Decay(amount int, reason Source) (Tracker[L], Result[L], error) {
	if amount < 0 {
		return t, Result[L]{}, engineerr.InvalidArgumentf("%s decay cannot be negative, got %d", t.table.Kind, amount)
	}
	next := max(t.current-amount, 0)
	return t.apply(DirectionDecay, amount, next, reason)
}

func (t Tracker[L]) apply(dir Direction, requested, next int, source Source) (Tracker[L], Result[L], error) {
	prevIdx := t.table.index(t.current)
	nextIdx := t.table.index(next)

	applied := next - t.current
	if applied < 0 {
		applied = -applied
	}

	res := Result[L]{
		Kind:             t.table.Kind,
		Direction:        dir,
		Source:           source,
		PreviousValue:    t.current,
		NewValue:         next,
		Requested:        requested,
		AmountApplied:    applied,
		PreviousLevel:    t.table.Levels[prevIdx].Level,
		NewLevel:         t.table.Levels[nextIdx].Level,
		ThresholdChanged: prevIdx != nextIdx,
	}

	for i := prevIdx + 1; i <= nextIdx; i++ {
		res.Entered = append(res.Entered, t.table.Levels[i].Level)
	}
	for i := prevIdx; i > nextIdx; i-- {
		res.Exited = append(res.Exited, t.table.Levels[i].Level)
	}

	prevEffects := t.table.Levels[prevIdx].Effects
	nextEffects := t.table.Levels[nextIdx].Effects
	res.Unlocked = effectDiff(nextEffects, prevEffects)
	res.Revoked = effectDiff(prevEffects, nextEffects)

	t.current = next
	return t, res, nil
}

// effectDiff returns the effects in a that are not in b.
func effectDiff(a, b []TierEffect) []TierEffect {
	var out []TierEffect
	for _, e := range a {
		if !slices.Contains(b, e) {
			out = append(out, e)
		}
	}
	return out
}
