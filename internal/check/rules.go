package check

import (
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// Rules are the game-balance parameters of check resolution.
type Rules struct {
	// SuccessCutoff is the lowest face that counts as a success
	SuccessCutoff int `yaml:"success_cutoff"`

	// BotchFirstDieOnly counts only a natural 1 on the first die as a botch;
	// when false every 1 in the pool is a botch
	BotchFirstDieOnly bool `yaml:"botch_first_die_only"`

	MinNetSuccesses int `yaml:"min_net_successes"`

	// FumbleForcesCriticalFailure turns a fumble into a critical failure
	// regardless of the margin
	FumbleForcesCriticalFailure bool `yaml:"fumble_forces_critical_failure"`

	// AssistThreshold is the net successes a helper needs to grant a bonus die
	AssistThreshold int `yaml:"assist_threshold"`

	// AutoSucceedOutcome is reported when a master ability skips the roll
	AutoSucceedOutcome Outcome `yaml:"auto_succeed_outcome"`

	Outcomes OutcomeTable `yaml:"outcomes"`
}

// DefaultRules returns the standard tuning.
func DefaultRules() Rules {
	return Rules{
		SuccessCutoff:               8,
		BotchFirstDieOnly:           true,
		MinNetSuccesses:             0,
		FumbleForcesCriticalFailure: true,
		AssistThreshold:             2,
		AutoSucceedOutcome:          FullSuccess,
		Outcomes:                    DefaultOutcomeTable(),
	}
}

// Validate checks the rules for values the resolver cannot work with.
func (r Rules) Validate() error {
	if r.SuccessCutoff < 2 {
		return engineerr.Validationf("success cutoff must be at least 2, got %d", r.SuccessCutoff)
	}
	if r.MinNetSuccesses < 0 {
		return engineerr.Validationf("minimum net successes cannot be negative, got %d", r.MinNetSuccesses)
	}
	if r.AssistThreshold < 1 {
		return engineerr.Validationf("assist threshold must be at least 1, got %d", r.AssistThreshold)
	}
	if !r.AutoSucceedOutcome.IsSuccess() || r.AutoSucceedOutcome > CriticalSuccess {
		return engineerr.Validationf("auto-succeed outcome must be a success, got %s", r.AutoSucceedOutcome)
	}
	return r.Outcomes.Validate()
}
