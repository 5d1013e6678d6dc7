package resolution

import (
	"context"
	"log"

	"github.com/KirkDiggler/rune-engine/internal/ability"
	"github.com/KirkDiggler/rune-engine/internal/check"
	"github.com/KirkDiggler/rune-engine/internal/combatant"
	"github.com/KirkDiggler/rune-engine/internal/dice"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
	"github.com/KirkDiggler/rune-engine/internal/events"
)

// PerformCheck rolls a single skill check for a combatant. Master abilities
// are evaluated before the pool is built.
func (s *service) PerformCheck(ctx context.Context, input *CheckInput) (*check.Result, error) {
	if input == nil {
		return nil, engineerr.InvalidArgument("input cannot be nil")
	}
	if input.SkillID == "" {
		return nil, engineerr.InvalidArgument("skill ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.GetCombatant(ctx, input.CombatantID)
	if err != nil {
		return nil, err
	}

	mods, pool, err := s.prepare(c, ability.Context{
		SkillID:    input.SkillID,
		Subtype:    input.Subtype,
		TargetID:   input.TargetID,
		TargetKind: input.TargetKind,
		DC:         input.DC,
	}, input.Pool)
	if err != nil {
		return nil, err
	}

	result, err := s.resolver.Perform(&check.Request{
		SkillID:   input.SkillID,
		Pool:      pool,
		DC:        input.DC,
		Modifiers: mods,
	})
	if err != nil {
		return nil, engineerr.Wrapf(err, "failed to resolve %s check for %s", input.SkillID, c.ID())
	}

	log.Printf("Resolution: %s rolled %s", c.ID(), result)

	if err := s.emit(&events.CheckResolvedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeCheckResolved, CombatantID: c.ID()},
		Result:    result,
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// PerformCooperativeCheck rolls a group check. Each participant's abilities
// are evaluated against the shared check context.
func (s *service) PerformCooperativeCheck(ctx context.Context, input *CooperativeInput) (*check.CooperativeResult, error) {
	if input == nil {
		return nil, engineerr.InvalidArgument("input cannot be nil")
	}
	if input.SkillID == "" {
		return nil, engineerr.InvalidArgument("skill ID is required")
	}
	if len(input.Participants) == 0 {
		return nil, engineerr.InvalidArgument("cooperative check needs at least one participant")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	checkCtx := ability.Context{
		SkillID:    input.SkillID,
		Subtype:    input.Subtype,
		TargetID:   input.TargetID,
		TargetKind: input.TargetKind,
		DC:         input.DC,
	}

	participants := make([]check.Participant, len(input.Participants))
	for i, p := range input.Participants {
		c, err := s.GetCombatant(ctx, p.CombatantID)
		if err != nil {
			return nil, err
		}

		mods, pool, err := s.prepare(c, checkCtx, p.Pool)
		if err != nil {
			return nil, err
		}

		participants[i] = check.Participant{
			ID:        c.ID(),
			Pool:      pool,
			Modifiers: mods,
		}
	}

	result, err := s.resolver.ResolveCooperative(&check.CooperativeRequest{
		Type:         input.Type,
		SkillID:      input.SkillID,
		DC:           input.DC,
		Participants: participants,
		PrimaryID:    input.PrimaryID,
	})
	if err != nil {
		return nil, engineerr.Wrapf(err, "failed to resolve %s %s check", input.Type, input.SkillID)
	}

	log.Printf("Resolution: %s", result)

	if err := s.emit(&events.CooperativeResolvedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeCooperativeResolved, CombatantID: result.ActiveRollerID},
		Result:    result,
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// prepare evaluates the combatant's abilities and lets BeforeCheck listeners
// add situational dice to the base pool. A cancelled check is an error.
func (s *service) prepare(c combatant.Combatant, checkCtx ability.Context, pool dice.Pool) (*ability.Evaluation, dice.Pool, error) {
	mods, err := s.evaluator.Evaluate(c.Abilities(), checkCtx)
	if err != nil {
		return nil, dice.Pool{}, engineerr.Wrapf(err, "failed to evaluate abilities of %s", c.ID())
	}

	before := &events.BeforeCheckEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeBeforeCheck, CombatantID: c.ID()},
		SkillID:   checkCtx.SkillID,
		DC:        checkCtx.DC,
		Modifiers: mods,
	}
	if err := s.emit(before); err != nil {
		return nil, dice.Pool{}, err
	}
	if before.IsCancelled() {
		return nil, dice.Pool{}, engineerr.FailedPreconditionf("%s check for %s was cancelled", checkCtx.SkillID, c.ID()).
			WithMeta("combatant_id", c.ID())
	}

	if before.ExtraDice > 0 && !mods.ShouldAutoSucceed {
		pool, err = pool.AddDice(before.ExtraDice)
		if err != nil {
			return nil, dice.Pool{}, err
		}
	}

	return mods, pool, nil
}
