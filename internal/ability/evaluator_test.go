package ability_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rune-engine/internal/ability"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

type EvaluatorSuite struct {
	suite.Suite
	registry  *ability.Registry
	evaluator *ability.Evaluator
}

func TestEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorSuite))
}

func (s *EvaluatorSuite) SetupTest() {
	registry, err := ability.NewRegistry(
		&ability.Ability{
			ID:          "master-locksmith",
			Name:        "Master Locksmith",
			SkillID:     "lockpicking",
			AutoSucceed: &ability.AutoSucceedRule{MaxDC: 3},
			Effects:     []ability.Effect{ability.EffectSilentExecution},
		},
		&ability.Ability{
			ID:          "lock-savant",
			Name:        "Lock Savant",
			SkillID:     "lockpicking",
			AutoSucceed: &ability.AutoSucceedRule{MaxDC: 2},
		},
		&ability.Ability{
			ID:        "steady-hands",
			Name:      "Steady Hands",
			SkillID:   "lockpicking",
			DiceBonus: 2,
			Effects:   []ability.Effect{ability.EffectPreserveConsumable},
		},
		&ability.Ability{
			ID:              "second-chance",
			Name:            "Second Chance",
			SkillID:         "lockpicking",
			DiceBonus:       1,
			RerollOnFailure: true,
			Effects:         []ability.Effect{ability.EffectPreserveConsumable, ability.EffectSilentExecution},
		},
		&ability.Ability{
			ID:              "old-habits",
			Name:            "Old Habits",
			SkillID:         "lockpicking",
			RerollOnFailure: true,
		},
		&ability.Ability{
			ID:        "runic-locks",
			Name:      "Runic Lock Lore",
			SkillID:   "lockpicking",
			Subtypes:  []string{"runic"},
			DiceBonus: 3,
		},
		&ability.Ability{
			ID:          "smooth-talker",
			Name:        "Smooth Talker",
			SkillID:     "persuasion",
			TargetKinds: []string{"merchant"},
			DiceBonus:   1,
			Effects:     []ability.Effect{ability.EffectNoReputationLossOnFailure},
		},
		&ability.Ability{
			ID:          "born-leader",
			Name:        "Born Leader",
			SkillID:     "persuasion",
			AutoSucceed: &ability.AutoSucceedRule{Always: true},
		},
	)
	s.Require().NoError(err)
	s.registry = registry
	s.evaluator = ability.NewEvaluator(registry)
}

func (s *EvaluatorSuite) TestAutoSucceedShortCircuits() {
	eval, err := s.evaluator.Evaluate(
		[]string{"steady-hands", "master-locksmith", "second-chance"},
		ability.Context{SkillID: "lockpicking", DC: 3},
	)

	s.Require().NoError(err)
	s.True(eval.ShouldAutoSucceed)
	s.Equal("master-locksmith", eval.AutoSucceedAbility)
	s.Zero(eval.TotalDiceBonus, "no bonus dice are computed when the roll is skipped")
	s.False(eval.CanReroll)
	s.Equal([]ability.Effect{ability.EffectSilentExecution}, eval.ActiveSpecialEffects)
}

func (s *EvaluatorSuite) TestMultipleAutoSucceedReportOneTrigger() {
	eval, err := s.evaluator.Evaluate(
		[]string{"lock-savant", "master-locksmith", "lock-savant"},
		ability.Context{SkillID: "lockpicking", DC: 1},
	)

	s.Require().NoError(err)
	s.True(eval.ShouldAutoSucceed)
	s.Equal("lock-savant", eval.AutoSucceedAbility)
}

func (s *EvaluatorSuite) TestAutoSucceedRespectsMaxDC() {
	eval, err := s.evaluator.Evaluate(
		[]string{"master-locksmith", "steady-hands"},
		ability.Context{SkillID: "lockpicking", DC: 4},
	)

	s.Require().NoError(err)
	s.False(eval.ShouldAutoSucceed)
	s.Empty(eval.AutoSucceedAbility)
	s.Equal(2, eval.TotalDiceBonus)
}

func (s *EvaluatorSuite) TestDiceBonusesStack() {
	eval, err := s.evaluator.Evaluate(
		[]string{"steady-hands", "second-chance", "runic-locks"},
		ability.Context{SkillID: "lockpicking", Subtype: "runic", DC: 5},
	)

	s.Require().NoError(err)
	s.Equal(6, eval.TotalDiceBonus)
	s.Equal([]string{"steady-hands", "second-chance", "runic-locks"}, eval.DiceBonusAbilities)
	s.True(eval.CanReroll)
	s.Equal("second-chance", eval.RerollAbilityID)
	s.Equal([]ability.Effect{ability.EffectPreserveConsumable, ability.EffectSilentExecution}, eval.ActiveSpecialEffects)
	s.True(eval.HasEffect(ability.EffectSilentExecution))
	s.False(eval.HasEffect(ability.EffectExtraLootRoll))
}

func (s *EvaluatorSuite) TestDuplicateUnlocksDoNotStackTwice() {
	eval, err := s.evaluator.Evaluate(
		[]string{"steady-hands", "steady-hands"},
		ability.Context{SkillID: "lockpicking", DC: 5},
	)

	s.Require().NoError(err)
	s.Equal(2, eval.TotalDiceBonus)
}

func (s *EvaluatorSuite) TestFirstRerollAbilityIsRecorded() {
	eval, err := s.evaluator.Evaluate(
		[]string{"old-habits", "second-chance"},
		ability.Context{SkillID: "lockpicking", DC: 5},
	)

	s.Require().NoError(err)
	s.True(eval.CanReroll)
	s.Equal("old-habits", eval.RerollAbilityID)
}

func (s *EvaluatorSuite) TestSubtypeAndTargetFilters() {
	testCases := []struct {
		name      string
		ctx       ability.Context
		unlocked  []string
		wantBonus int
	}{
		{
			name:      "subtype mismatch",
			ctx:       ability.Context{SkillID: "lockpicking", Subtype: "mechanical", DC: 5},
			unlocked:  []string{"runic-locks"},
			wantBonus: 0,
		},
		{
			name:      "subtype match",
			ctx:       ability.Context{SkillID: "lockpicking", Subtype: "runic", DC: 5},
			unlocked:  []string{"runic-locks"},
			wantBonus: 3,
		},
		{
			name:      "target kind match",
			ctx:       ability.Context{SkillID: "persuasion", TargetID: "npc-7", TargetKind: "merchant", DC: 5},
			unlocked:  []string{"smooth-talker"},
			wantBonus: 1,
		},
		{
			name:      "target kind mismatch",
			ctx:       ability.Context{SkillID: "persuasion", TargetID: "npc-8", TargetKind: "guard", DC: 5},
			unlocked:  []string{"smooth-talker"},
			wantBonus: 0,
		},
		{
			name:      "different skill",
			ctx:       ability.Context{SkillID: "athletics", DC: 5},
			unlocked:  []string{"steady-hands", "smooth-talker"},
			wantBonus: 0,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			eval, err := s.evaluator.Evaluate(tc.unlocked, tc.ctx)
			s.Require().NoError(err)
			s.Equal(tc.wantBonus, eval.TotalDiceBonus)
		})
	}
}

func (s *EvaluatorSuite) TestAlwaysAutoSucceedIgnoresDC() {
	eval, err := s.evaluator.Evaluate(
		[]string{"smooth-talker", "born-leader"},
		ability.Context{SkillID: "persuasion", TargetKind: "merchant", DC: 99},
	)

	s.Require().NoError(err)
	s.True(eval.ShouldAutoSucceed)
	s.Equal("born-leader", eval.AutoSucceedAbility)
	s.Equal("automatic success (born-leader)", eval.String())
}

func (s *EvaluatorSuite) TestUnknownAbility() {
	_, err := s.evaluator.Evaluate([]string{"steady-hands", "made-up"}, ability.Context{SkillID: "lockpicking"})

	s.Require().Error(err)
	s.True(engineerr.IsNotFound(err))
}

func (s *EvaluatorSuite) TestNoAbilities() {
	eval, err := s.evaluator.Evaluate(nil, ability.Context{SkillID: "lockpicking", DC: 2})

	s.Require().NoError(err)
	s.False(eval.ShouldAutoSucceed)
	s.Zero(eval.TotalDiceBonus)
	s.False(eval.CanReroll)
	s.Equal("no master abilities", eval.String())
}

func (s *EvaluatorSuite) TestEvaluationString() {
	eval, err := s.evaluator.Evaluate(
		[]string{"steady-hands", "second-chance"},
		ability.Context{SkillID: "lockpicking", DC: 5},
	)

	s.Require().NoError(err)
	s.Equal("+3 dice (steady-hands, second-chance); reroll on failure (second-chance); preserve-consumable, silent-execution", eval.String())
}
