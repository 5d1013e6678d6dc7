// Package dice rolls dice pools with exploding dice and advantage.
//
// Randomness always comes from an injected Source so that tests can script
// exact faces and encounters can own independent generators.
package dice

import (
	"fmt"
	"strings"
)

// RollResult is the full audit trail of one pool roll. It is never mutated
// after the roller returns it.
type RollResult struct {
	Pool Pool

	// Rolls are the primary dice of the selected attempt, in draw order
	Rolls []int

	// ExplosionRolls are the extra dice chained from max faces
	ExplosionRolls []int

	// DiceTotal is the sum of primary and explosion dice, without the modifier
	DiceTotal int

	// Total is DiceTotal plus the pool modifier
	Total int

	Advantage AdvantageType

	// AllRollTotals holds one total per attempt (two under advantage/disadvantage)
	AllRollTotals     []int
	SelectedRollIndex int
}

// IsNaturalMax reports whether the first die landed on its highest face.
func (r *RollResult) IsNaturalMax() bool {
	return len(r.Rolls) > 0 && r.Rolls[0] == r.Pool.Sides()
}

// IsNaturalOne reports whether the first die landed on 1.
func (r *RollResult) IsNaturalOne() bool {
	return len(r.Rolls) > 0 && r.Rolls[0] == 1
}

// HadExplosions reports whether any die exploded.
func (r *RollResult) HadExplosions() bool {
	return len(r.ExplosionRolls) > 0
}

// AllDice returns the primary dice followed by the explosion dice.
func (r *RollResult) AllDice() []int {
	all := make([]int, 0, len(r.Rolls)+len(r.ExplosionRolls))
	all = append(all, r.Rolls...)
	return append(all, r.ExplosionRolls...)
}

func (r *RollResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", r.Pool, compact(r.Rolls))
	if r.HadExplosions() {
		fmt.Fprintf(&b, " explode %s", compact(r.ExplosionRolls))
	}
	if r.Pool.Modifier() != 0 {
		fmt.Fprintf(&b, " %+d", r.Pool.Modifier())
	}
	fmt.Fprintf(&b, " = **%d**", r.Total)
	if len(r.AllRollTotals) > 1 {
		fmt.Fprintf(&b, " (%s: %v, kept #%d)", r.Advantage, r.AllRollTotals, r.SelectedRollIndex+1)
	}
	return b.String()
}

func compact(rolls []int) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", rolls), " ", ",")
}
