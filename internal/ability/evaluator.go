package ability

import (
	"fmt"
	"slices"
	"strings"

	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// Evaluation is the advisory modifier envelope handed to the check resolver.
type Evaluation struct {
	ShouldAutoSucceed  bool
	AutoSucceedAbility string

	TotalDiceBonus     int
	DiceBonusAbilities []string

	ActiveSpecialEffects []Effect

	CanReroll       bool
	RerollAbilityID string
}

// HasEffect reports whether effect is active for the check.
func (e *Evaluation) HasEffect(effect Effect) bool {
	return e != nil && slices.Contains(e.ActiveSpecialEffects, effect)
}

func (e *Evaluation) String() string {
	if e == nil {
		return "no master abilities"
	}
	if e.ShouldAutoSucceed {
		return fmt.Sprintf("automatic success (%s)", e.AutoSucceedAbility)
	}

	parts := make([]string, 0, 3)
	if e.TotalDiceBonus > 0 {
		parts = append(parts, fmt.Sprintf("+%d dice (%s)", e.TotalDiceBonus, strings.Join(e.DiceBonusAbilities, ", ")))
	}
	if e.CanReroll {
		parts = append(parts, fmt.Sprintf("reroll on failure (%s)", e.RerollAbilityID))
	}
	if len(e.ActiveSpecialEffects) > 0 {
		names := make([]string, len(e.ActiveSpecialEffects))
		for i, effect := range e.ActiveSpecialEffects {
			names[i] = effect.String()
		}
		parts = append(parts, strings.Join(names, ", "))
	}
	if len(parts) == 0 {
		return "no master abilities"
	}
	return strings.Join(parts, "; ")
}

// Evaluator inspects unlocked abilities against a check context.
type Evaluator struct {
	registry *Registry
}

// NewEvaluator creates an evaluator over the registry
func NewEvaluator(registry *Registry) *Evaluator {
	if registry == nil {
		panic("ability registry is required")
	}
	return &Evaluator{registry: registry}
}

// Evaluate resolves the unlocked abilities, in unlock order, into a modifier
// envelope. The first auto-succeeding ability short-circuits evaluation;
// otherwise dice bonuses stack, the first reroll ability is recorded and
// special effects are collected once each.
func (e *Evaluator) Evaluate(unlocked []string, ctx Context) (*Evaluation, error) {
	abilities, err := e.resolve(unlocked)
	if err != nil {
		return nil, err
	}

	for _, a := range abilities {
		if a.AutoSucceeds(ctx) {
			return &Evaluation{
				ShouldAutoSucceed:    true,
				AutoSucceedAbility:   a.ID,
				ActiveSpecialEffects: appendEffects(nil, a.Effects),
			}, nil
		}
	}

	eval := &Evaluation{}
	for _, a := range abilities {
		if !a.AppliesTo(ctx) {
			continue
		}

		if a.DiceBonus > 0 {
			eval.TotalDiceBonus += a.DiceBonus
			eval.DiceBonusAbilities = append(eval.DiceBonusAbilities, a.ID)
		}
		if a.RerollOnFailure && !eval.CanReroll {
			eval.CanReroll = true
			eval.RerollAbilityID = a.ID
		}
		eval.ActiveSpecialEffects = appendEffects(eval.ActiveSpecialEffects, a.Effects)
	}

	return eval, nil
}

// resolve looks up each unlocked ID once, keeping first-seen order
func (e *Evaluator) resolve(unlocked []string) ([]*Ability, error) {
	seen := make(map[string]bool, len(unlocked))
	abilities := make([]*Ability, 0, len(unlocked))
	for _, id := range unlocked {
		if seen[id] {
			continue
		}
		seen[id] = true

		a, ok := e.registry.Get(id)
		if !ok {
			return nil, engineerr.NotFoundf("ability %s not found", id).WithMeta("ability_id", id)
		}
		abilities = append(abilities, a)
	}
	return abilities, nil
}

func appendEffects(dst, effects []Effect) []Effect {
	for _, effect := range effects {
		if !slices.Contains(dst, effect) {
			dst = append(dst, effect)
		}
	}
	return dst
}
