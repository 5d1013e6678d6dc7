// Package ability decides, before any dice are rolled, how a character's
// unlocked master abilities change a skill check.
package ability

import (
	"slices"

	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// Ability is the definition of an unlockable specialization ability.
type Ability struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	SkillID string `yaml:"skill"`

	// Subtypes and TargetKinds narrow the checks the ability applies to.
	// Empty means any.
	Subtypes    []string `yaml:"subtypes,omitempty"`
	TargetKinds []string `yaml:"target_kinds,omitempty"`

	AutoSucceed     *AutoSucceedRule `yaml:"auto_succeed,omitempty"`
	DiceBonus       int              `yaml:"dice_bonus,omitempty"`
	RerollOnFailure bool             `yaml:"reroll_on_failure,omitempty"`
	Effects         []Effect         `yaml:"effects,omitempty"`

	// ResonanceGain is the Aetheric Resonance generated each time the ability is used
	ResonanceGain int `yaml:"resonance_gain,omitempty"`
}

// AutoSucceedRule skips the roll entirely for easy enough checks.
type AutoSucceedRule struct {
	Always bool `yaml:"always,omitempty"`
	MaxDC  int  `yaml:"max_dc,omitempty"`
}

// Context describes the check an ability is evaluated against.
type Context struct {
	SkillID    string
	Subtype    string
	TargetID   string
	TargetKind string
	DC         int
}

// Validate checks the definition for contract violations.
func (a *Ability) Validate() error {
	if a == nil {
		return engineerr.InvalidArgument("ability cannot be nil")
	}
	if a.ID == "" {
		return engineerr.InvalidArgument("ability id is required")
	}
	if a.SkillID == "" {
		return engineerr.InvalidArgumentf("ability %s has no skill", a.ID)
	}
	if a.DiceBonus < 0 {
		return engineerr.InvalidArgumentf("ability %s has negative dice bonus %d", a.ID, a.DiceBonus)
	}
	if a.ResonanceGain < 0 {
		return engineerr.InvalidArgumentf("ability %s has negative resonance gain %d", a.ID, a.ResonanceGain)
	}
	for _, effect := range a.Effects {
		if !effect.Valid() {
			return engineerr.InvalidArgumentf("ability %s has unknown effect %d", a.ID, int(effect))
		}
	}
	return nil
}

// AppliesTo reports whether the ability qualifies for the check context.
func (a *Ability) AppliesTo(ctx Context) bool {
	if a.SkillID != ctx.SkillID {
		return false
	}
	if len(a.Subtypes) > 0 && !slices.Contains(a.Subtypes, ctx.Subtype) {
		return false
	}
	if len(a.TargetKinds) > 0 && !slices.Contains(a.TargetKinds, ctx.TargetKind) {
		return false
	}
	return true
}

// AutoSucceeds reports whether the ability bypasses the roll for ctx.
func (a *Ability) AutoSucceeds(ctx Context) bool {
	if a.AutoSucceed == nil || !a.AppliesTo(ctx) {
		return false
	}
	return a.AutoSucceed.Always || ctx.DC <= a.AutoSucceed.MaxDC
}
