package resolution

import (
	"context"
	"log"

	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
	"github.com/KirkDiggler/rune-engine/internal/events"
	"github.com/KirkDiggler/rune-engine/internal/resource"
)

// ChangeResource gains or decays one resource and persists the combatant.
// A ThresholdCrossed event is emitted once when the tier changed.
func (s *service) ChangeResource(ctx context.Context, input *ResourceInput) (*ResourceOutput, error) {
	if input == nil {
		return nil, engineerr.InvalidArgument("input cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.GetCombatant(ctx, input.CombatantID)
	if err != nil {
		return nil, err
	}

	source := input.Source
	if source == "" {
		source = resource.SourceAdjustment
	}

	next, change, err := c.Apply(input.Kind, input.Direction, input.Amount, source)
	if err != nil {
		return nil, err
	}

	if change.AmountApplied > 0 {
		if err := s.save(ctx, next); err != nil {
			return nil, err
		}
	}

	if err := s.emitThreshold(next.ID(), change); err != nil {
		return nil, err
	}

	return &ResourceOutput{Combatant: next, Change: change}, nil
}

// UseAbility informs before it commits: the corruption risk gate runs on the
// Rage and Resonance values held before the use, and only then is the
// ability's resonance gain and aetheric damage applied.
func (s *service) UseAbility(ctx context.Context, input *UseAbilityInput) (*UseAbilityOutput, error) {
	if input == nil {
		return nil, engineerr.InvalidArgument("input cannot be nil")
	}
	if input.AethericDamage < 0 {
		return nil, engineerr.InvalidArgumentf("aetheric damage cannot be negative, got %d", input.AethericDamage)
	}

	a, ok := s.registry.Get(input.AbilityID)
	if !ok {
		return nil, engineerr.NotFoundf("ability %s not found", input.AbilityID).WithMeta("ability_id", input.AbilityID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.GetCombatant(ctx, input.CombatantID)
	if err != nil {
		return nil, err
	}
	if !c.HasAbility(a.ID) {
		return nil, engineerr.FailedPreconditionf("combatant %s has not unlocked %s", c.ID(), a.ID).
			WithMeta("combatant_id", c.ID()).
			WithMeta("ability_id", a.ID)
	}

	assessments, corruption, err := s.riskGate.AssessUse(c.Rage(), c.Resonance(), c.Corruption())
	if err != nil {
		return nil, engineerr.Wrapf(err, "corruption check failed for %s", c.ID())
	}
	c = c.WithCorruption(corruption)

	resonance, res, err := c.Resonance().Cast(a.ResonanceGain, input.AethericDamage, resource.SourceAbility)
	if err != nil {
		return nil, err
	}
	c = c.WithResonance(resonance)

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	for _, assessment := range assessments {
		log.Printf("Resolution: %s used %s, %s", c.ID(), a.ID, assessment)

		if err := s.emit(&events.CorruptionRiskEvent{
			BaseEvent:  events.BaseEvent{Type: events.EventTypeCorruptionRisk, CombatantID: c.ID()},
			Assessment: assessment,
		}); err != nil {
			return nil, err
		}
		if assessment.Corruption != nil {
			if err := s.emitThreshold(c.ID(), assessment.Corruption.Change()); err != nil {
				return nil, err
			}
		}
	}

	change := res.Change()
	if err := s.emitThreshold(c.ID(), change); err != nil {
		return nil, err
	}

	return &UseAbilityOutput{
		Combatant:   c,
		Assessments: assessments,
		Resonance:   change,
	}, nil
}

// ReleaseAether drains the accumulated aetheric damage pool. Resonance
// itself is left where it is.
func (s *service) ReleaseAether(ctx context.Context, combatantID string) (*ReleaseOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.GetCombatant(ctx, combatantID)
	if err != nil {
		return nil, err
	}

	resonance, amount := c.Resonance().Release()
	if amount == 0 {
		return &ReleaseOutput{Combatant: c}, nil
	}

	c = c.WithResonance(resonance)
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	log.Printf("Resolution: %s released %d aetheric damage", c.ID(), amount)

	if err := s.emit(&events.AetherReleasedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeAetherReleased, CombatantID: c.ID()},
		Amount:    amount,
	}); err != nil {
		return nil, err
	}

	return &ReleaseOutput{Combatant: c, Amount: amount}, nil
}

func (s *service) emitThreshold(combatantID string, change resource.Change) error {
	if !change.ThresholdChanged {
		return nil
	}

	log.Printf("Resolution: %s %s moved %s -> %s", combatantID, change.Kind, change.PreviousLevel, change.NewLevel)

	return s.emit(&events.ThresholdCrossedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeThresholdCrossed, CombatantID: combatantID},
		Change:    change,
	})
}
