package check

import (
	"fmt"

	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// Outcome is the tiered result of a check. Values are ordered from worst to best.
type Outcome int

const (
	CriticalFailure Outcome = iota
	Failure
	MarginalSuccess
	FullSuccess
	ExceptionalSuccess
	CriticalSuccess
)

var outcomeNames = []string{
	CriticalFailure:    "critical-failure",
	Failure:            "failure",
	MarginalSuccess:    "marginal-success",
	FullSuccess:        "full-success",
	ExceptionalSuccess: "exceptional-success",
	CriticalSuccess:    "critical-success",
}

func (o Outcome) String() string {
	if o < CriticalFailure || o > CriticalSuccess {
		return fmt.Sprintf("outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// IsSuccess reports whether the outcome is at least a marginal success.
func (o Outcome) IsSuccess() bool {
	return o >= MarginalSuccess
}

// ParseOutcome converts a configuration name into an Outcome.
func ParseOutcome(name string) (Outcome, error) {
	for i, n := range outcomeNames {
		if n == name {
			return Outcome(i), nil
		}
	}
	return 0, engineerr.InvalidArgumentf("unknown outcome %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	if o < CriticalFailure || o > CriticalSuccess {
		return nil, engineerr.InvalidArgumentf("unknown outcome %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// OutcomeTable buckets a margin (net successes minus DC) into an Outcome.
// Each field is the smallest margin that reaches that tier; anything below
// FailureMin is a critical failure.
type OutcomeTable struct {
	FailureMin     int `yaml:"failure_min"`
	MarginalMin    int `yaml:"marginal_min"`
	FullMin        int `yaml:"full_min"`
	ExceptionalMin int `yaml:"exceptional_min"`
	CriticalMin    int `yaml:"critical_min"`
}

// DefaultOutcomeTable returns the standard cut points.
func DefaultOutcomeTable() OutcomeTable {
	return OutcomeTable{
		FailureMin:     -2,
		MarginalMin:    0,
		FullMin:        1,
		ExceptionalMin: 3,
		CriticalMin:    5,
	}
}

// Validate requires strictly increasing cut points with success starting at a margin of 0.
func (t OutcomeTable) Validate() error {
	cuts := []int{t.FailureMin, t.MarginalMin, t.FullMin, t.ExceptionalMin, t.CriticalMin}
	for i := 1; i < len(cuts); i++ {
		if cuts[i] <= cuts[i-1] {
			return engineerr.Validationf("outcome cut points must be strictly increasing, got %v", cuts)
		}
	}
	if t.MarginalMin != 0 {
		return engineerr.Validationf("marginal success must start at margin 0, got %d", t.MarginalMin)
	}
	return nil
}

// Classify maps a margin onto an outcome.
func (t OutcomeTable) Classify(margin int) Outcome {
	switch {
	case margin >= t.CriticalMin:
		return CriticalSuccess
	case margin >= t.ExceptionalMin:
		return ExceptionalSuccess
	case margin >= t.FullMin:
		return FullSuccess
	case margin >= t.MarginalMin:
		return MarginalSuccess
	case margin >= t.FailureMin:
		return Failure
	default:
		return CriticalFailure
	}
}

// MinMargin returns the smallest margin that classifies as o.
func (t OutcomeTable) MinMargin(o Outcome) int {
	switch o {
	case Failure:
		return t.FailureMin
	case MarginalSuccess:
		return t.MarginalMin
	case FullSuccess:
		return t.FullMin
	case ExceptionalSuccess:
		return t.ExceptionalMin
	case CriticalSuccess:
		return t.CriticalMin
	default:
		return t.FailureMin - 1
	}
}
