// Package check turns dice rolls into tiered skill-check outcomes, alone or
// for a group acting together.
package check

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rune-engine/internal/ability"
	"github.com/KirkDiggler/rune-engine/internal/dice"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
	"github.com/KirkDiggler/rune-engine/internal/uuid"
)

// Result is the outcome of a single skill check.
type Result struct {
	ID      string
	SkillID string
	DC      int

	// Roll is nil when a master ability skipped the roll
	Roll *dice.RollResult

	Successes    int
	Botches      int
	NetSuccesses int
	Margin       int
	Outcome      Outcome

	// IsFumble marks a natural 1 on the first die with no successes at all
	IsFumble bool

	AutoSucceeded      bool
	AutoSucceedAbility string

	BonusDice int

	Rerolled      bool
	RerollAbility string
	FirstAttempt  *Result

	Effects []ability.Effect
}

// IsSuccess reports whether the check met its DC.
func (r *Result) IsSuccess() bool {
	return r.Outcome.IsSuccess()
}

func (r *Result) String() string {
	var b strings.Builder
	if r.SkillID != "" {
		fmt.Fprintf(&b, "%s ", r.SkillID)
	}
	fmt.Fprintf(&b, "DC %d: ", r.DC)

	if r.AutoSucceeded {
		fmt.Fprintf(&b, "%s (automatic, %s)", r.Outcome, r.AutoSucceedAbility)
		return b.String()
	}

	fmt.Fprintf(&b, "%s with %d net successes (margin %+d)", r.Outcome, r.NetSuccesses, r.Margin)
	if r.IsFumble {
		b.WriteString(", fumbled")
	}
	if r.Roll != nil {
		fmt.Fprintf(&b, " | %s", r.Roll)
	}
	if r.BonusDice > 0 {
		fmt.Fprintf(&b, " | +%d bonus dice", r.BonusDice)
	}
	if r.Rerolled {
		fmt.Fprintf(&b, " | rerolled via %s after %s", r.RerollAbility, r.FirstAttempt.Outcome)
	}
	return b.String()
}

// Request is a single character's check.
type Request struct {
	SkillID string

	// Pool is the base pool before master-ability bonus dice. It is not
	// touched when the modifiers auto-succeed.
	Pool dice.Pool
	DC   int

	// Modifiers is the output of the ability evaluator; nil means none
	Modifiers *ability.Evaluation
}

// Resolver resolves skill checks under a set of rules.
type Resolver struct {
	rules  Rules
	roller dice.Roller
	ids    uuid.Generator
}

// ResolverConfig holds the collaborators of a Resolver
type ResolverConfig struct {
	Rules       Rules
	Roller      dice.Roller
	IDGenerator uuid.Generator
}

// NewResolver creates a resolver after validating its rules
func NewResolver(cfg *ResolverConfig) (*Resolver, error) {
	if cfg == nil {
		return nil, engineerr.InvalidArgument("resolver config cannot be nil")
	}
	if cfg.Roller == nil {
		return nil, engineerr.InvalidArgument("dice roller is required")
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, engineerr.Wrap(err, "invalid check rules")
	}

	ids := cfg.IDGenerator
	if ids == nil {
		ids = uuid.NewPrefixedGenerator("chk")
	}

	return &Resolver{
		rules:  cfg.Rules,
		roller: cfg.Roller,
		ids:    ids,
	}, nil
}

// Rules returns the rules the resolver was built with.
func (r *Resolver) Rules() Rules {
	return r.rules
}

// Evaluate converts a roll into net successes and an outcome against dc.
// It has no side effects.
func (r *Resolver) Evaluate(roll *dice.RollResult, dc int) (*Result, error) {
	if roll == nil {
		return nil, engineerr.InvalidArgument("roll cannot be nil")
	}
	if dc < 0 {
		return nil, engineerr.InvalidArgumentf("DC cannot be negative, got %d", dc)
	}

	successes := 0
	ones := 0
	for _, face := range roll.AllDice() {
		if face >= r.rules.SuccessCutoff {
			successes++
		}
		if face == 1 {
			ones++
		}
	}

	botches := ones
	if r.rules.BotchFirstDieOnly {
		botches = 0
		if roll.IsNaturalOne() {
			botches = 1
		}
	}

	net := successes - botches
	if net < r.rules.MinNetSuccesses {
		net = r.rules.MinNetSuccesses
	}

	fumble := roll.IsNaturalOne() && successes == 0
	margin := net - dc

	outcome := r.rules.Outcomes.Classify(margin)
	if fumble && r.rules.FumbleForcesCriticalFailure {
		outcome = CriticalFailure
	}

	return &Result{
		DC:           dc,
		Roll:         roll,
		Successes:    successes,
		Botches:      botches,
		NetSuccesses: net,
		Margin:       margin,
		Outcome:      outcome,
		IsFumble:     fumble,
	}, nil
}

// Perform runs a full check: an auto-succeeding envelope returns without
// rolling, otherwise bonus dice are added before the roll and a reroll
// ability is spent only if the first attempt fails.
func (r *Resolver) Perform(req *Request) (*Result, error) {
	if req == nil {
		return nil, engineerr.InvalidArgument("check request cannot be nil")
	}
	if req.DC < 0 {
		return nil, engineerr.InvalidArgumentf("DC cannot be negative, got %d", req.DC)
	}

	mods := req.Modifiers
	if mods == nil {
		mods = &ability.Evaluation{}
	}

	if mods.ShouldAutoSucceed {
		return r.autoSuccess(req, mods), nil
	}

	pool, err := req.Pool.AddDice(mods.TotalDiceBonus)
	if err != nil {
		return nil, err
	}
	if err := pool.Validate(); err != nil {
		return nil, err
	}

	result, err := r.rollAndEvaluate(pool, req.DC)
	if err != nil {
		return nil, err
	}

	if !result.IsSuccess() && mods.CanReroll {
		first := result
		result, err = r.rollAndEvaluate(pool, req.DC)
		if err != nil {
			return nil, err
		}
		result.Rerolled = true
		result.RerollAbility = mods.RerollAbilityID
		result.FirstAttempt = first
	}

	result.ID = r.ids.New()
	result.SkillID = req.SkillID
	result.BonusDice = mods.TotalDiceBonus
	result.Effects = mods.ActiveSpecialEffects
	return result, nil
}

func (r *Resolver) rollAndEvaluate(pool dice.Pool, dc int) (*Result, error) {
	roll, err := r.roller.Roll(pool)
	if err != nil {
		return nil, engineerr.Wrap(err, "failed to roll check pool")
	}
	return r.Evaluate(roll, dc)
}

func (r *Resolver) autoSuccess(req *Request, mods *ability.Evaluation) *Result {
	margin := r.rules.Outcomes.MinMargin(r.rules.AutoSucceedOutcome)
	return &Result{
		ID:                 r.ids.New(),
		SkillID:            req.SkillID,
		DC:                 req.DC,
		NetSuccesses:       req.DC + margin,
		Margin:             margin,
		Outcome:            r.rules.AutoSucceedOutcome,
		AutoSucceeded:      true,
		AutoSucceedAbility: mods.AutoSucceedAbility,
		Effects:            mods.ActiveSpecialEffects,
	}
}
