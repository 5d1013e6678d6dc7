package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rune-engine/internal/ability"
	"github.com/KirkDiggler/rune-engine/internal/check"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
	"github.com/KirkDiggler/rune-engine/internal/resource"
)

// Tuning is the game-design data the engine runs on. Every table is data so
// designers can rebalance without code changes.
type Tuning struct {
	Check     check.Rules         `yaml:"check"`
	Resources resource.Tables     `yaml:"resources"`
	Risk      resource.RiskConfig `yaml:"risk"`
	Abilities []*ability.Ability  `yaml:"abilities,omitempty"`
}

// DefaultTuning returns the built-in tables with no master abilities
func DefaultTuning() *Tuning {
	return &Tuning{
		Check:     check.DefaultRules(),
		Resources: resource.DefaultTables(),
		Risk:      resource.DefaultRiskConfig(),
	}
}

// LoadTuning reads a YAML tuning file over the defaults. An empty path
// returns the defaults.
func LoadTuning(path string) (*Tuning, error) {
	if path == "" {
		return DefaultTuning(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, engineerr.NotFoundf("tuning file %s not found", path).WithMeta("path", path)
		}
		return nil, engineerr.Wrapf(err, "failed to open tuning file %s", path)
	}
	defer f.Close()

	tuning, err := DecodeTuning(f)
	if err != nil {
		return nil, engineerr.Wrapf(err, "tuning file %s", path)
	}
	return tuning, nil
}

// DecodeTuning decodes YAML over the defaults. Keys left out keep their
// default values; lists such as tier levels are replaced whole.
func DecodeTuning(r io.Reader) (*Tuning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, engineerr.Wrap(err, "failed to read tuning")
	}

	tuning := DefaultTuning()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(tuning); err != nil {
			return nil, engineerr.WrapWithCode(err, engineerr.CodeValidation, "failed to decode tuning")
		}
	}

	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	return tuning, nil
}

// Validate checks every table
func (t *Tuning) Validate() error {
	if err := t.Check.Validate(); err != nil {
		return engineerr.Wrap(err, "check rules")
	}
	if err := t.Resources.Validate(); err != nil {
		return engineerr.Wrap(err, "resource tables")
	}
	if err := t.Risk.Validate(); err != nil {
		return engineerr.Wrap(err, "risk config")
	}
	if _, err := t.Registry(); err != nil {
		return engineerr.Wrap(err, "abilities")
	}
	return nil
}

// Registry builds an ability registry from the tuned abilities
func (t *Tuning) Registry() (*ability.Registry, error) {
	return ability.NewRegistry(t.Abilities...)
}
