// Package combatant holds the per-character state the engine mutates: one of
// each bounded resource plus the unlocked master abilities.
package combatant

import (
	"slices"
	"time"

	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
	"github.com/KirkDiggler/rune-engine/internal/resource"
)

// Snapshot is the persisted shape of a combatant.
type Snapshot struct {
	ID                string    `json:"id"`
	EncounterID       string    `json:"encounter_id,omitempty"`
	Name              string    `json:"name"`
	Rage              int       `json:"rage"`
	Momentum          int       `json:"momentum"`
	Corruption        int       `json:"corruption"`
	Resonance         int       `json:"resonance"`
	AccumulatedAether int       `json:"accumulated_aether"`
	Abilities         []string  `json:"abilities,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Combatant owns exactly one instance of each resource. It is a value:
// every change returns a new Combatant and leaves the receiver untouched.
type Combatant struct {
	id          string
	encounterID string
	name        string

	rage       resource.Rage
	momentum   resource.Momentum
	corruption resource.Corruption
	resonance  resource.Resonance

	abilities []string
	updatedAt time.Time
}

// New creates a combatant with every resource at zero.
func New(id, name string, tables resource.Tables) (Combatant, error) {
	return FromSnapshot(&Snapshot{ID: id, Name: name}, tables)
}

// FromSnapshot rebuilds a combatant from stored values, rejecting any value
// outside its table's range.
func FromSnapshot(snap *Snapshot, tables resource.Tables) (Combatant, error) {
	if snap == nil {
		return Combatant{}, engineerr.InvalidArgument("snapshot cannot be nil")
	}
	if snap.ID == "" {
		return Combatant{}, engineerr.InvalidArgument("combatant id is required")
	}

	rage, err := resource.NewRage(tables.Rage, snap.Rage)
	if err != nil {
		return Combatant{}, engineerr.Wrapf(err, "combatant %s", snap.ID)
	}
	momentum, err := resource.NewMomentum(tables.Momentum, snap.Momentum)
	if err != nil {
		return Combatant{}, engineerr.Wrapf(err, "combatant %s", snap.ID)
	}
	corruption, err := resource.NewCorruption(tables.Corruption, snap.Corruption)
	if err != nil {
		return Combatant{}, engineerr.Wrapf(err, "combatant %s", snap.ID)
	}
	resonance, err := resource.NewResonance(tables.Resonance, snap.Resonance, snap.AccumulatedAether)
	if err != nil {
		return Combatant{}, engineerr.Wrapf(err, "combatant %s", snap.ID)
	}

	return Combatant{
		id:          snap.ID,
		encounterID: snap.EncounterID,
		name:        snap.Name,
		rage:        rage,
		momentum:    momentum,
		corruption:  corruption,
		resonance:   resonance,
		abilities:   dedupe(snap.Abilities),
		updatedAt:   snap.UpdatedAt,
	}, nil
}

// Snapshot returns the persisted shape of c.
func (c Combatant) Snapshot() *Snapshot {
	return &Snapshot{
		ID:                c.id,
		EncounterID:       c.encounterID,
		Name:              c.name,
		Rage:              c.rage.Current(),
		Momentum:          c.momentum.Current(),
		Corruption:        c.corruption.Current(),
		Resonance:         c.resonance.Current(),
		AccumulatedAether: c.resonance.Accumulated(),
		Abilities:         slices.Clone(c.abilities),
		UpdatedAt:         c.updatedAt,
	}
}

func (c Combatant) ID() string                      { return c.id }
func (c Combatant) EncounterID() string             { return c.encounterID }
func (c Combatant) Name() string                    { return c.name }
func (c Combatant) Rage() resource.Rage             { return c.rage }
func (c Combatant) Momentum() resource.Momentum     { return c.momentum }
func (c Combatant) Corruption() resource.Corruption { return c.corruption }
func (c Combatant) Resonance() resource.Resonance   { return c.resonance }
func (c Combatant) UpdatedAt() time.Time            { return c.updatedAt }

// Abilities returns the unlocked master ability IDs in unlock order.
func (c Combatant) Abilities() []string {
	return slices.Clone(c.abilities)
}

// HasAbility reports whether id has been unlocked.
func (c Combatant) HasAbility(id string) bool {
	return slices.Contains(c.abilities, id)
}

// WithAbility unlocks id. Unlocking twice is a no-op.
func (c Combatant) WithAbility(id string) Combatant {
	if id == "" || c.HasAbility(id) {
		return c
	}
	c.abilities = append(slices.Clone(c.abilities), id)
	return c
}

// WithEncounter places the combatant in an encounter.
func (c Combatant) WithEncounter(encounterID string) Combatant {
	c.encounterID = encounterID
	return c
}

func (c Combatant) WithRage(r resource.Rage) Combatant {
	c.rage = r
	return c
}

func (c Combatant) WithMomentum(m resource.Momentum) Combatant {
	c.momentum = m
	return c
}

func (c Combatant) WithCorruption(cr resource.Corruption) Combatant {
	c.corruption = cr
	return c
}

func (c Combatant) WithResonance(r resource.Resonance) Combatant {
	c.resonance = r
	return c
}

// Value returns the current value of the resource of the given kind.
func (c Combatant) Value(kind resource.Kind) (int, error) {
	switch kind {
	case resource.KindRage:
		return c.rage.Current(), nil
	case resource.KindMomentum:
		return c.momentum.Current(), nil
	case resource.KindCorruption:
		return c.corruption.Current(), nil
	case resource.KindResonance:
		return c.resonance.Current(), nil
	default:
		return 0, engineerr.InvalidArgumentf("unknown resource kind %d", int(kind))
	}
}

// Apply runs a Gain or Decay on the resource of the given kind.
func (c Combatant) Apply(kind resource.Kind, dir resource.Direction, amount int, source resource.Source) (Combatant, resource.Change, error) {
	if dir != resource.DirectionGain && dir != resource.DirectionDecay {
		return c, resource.Change{}, engineerr.InvalidArgumentf("unknown direction %d", int(dir))
	}
	gain := dir == resource.DirectionGain

	switch kind {
	case resource.KindRage:
		var (
			next resource.Rage
			res  resource.Result[resource.RageLevel]
			err  error
		)
		if gain {
			next, res, err = c.rage.Gain(amount, source)
		} else {
			next, res, err = c.rage.Decay(amount, source)
		}
		if err != nil {
			return c, resource.Change{}, err
		}
		return c.WithRage(next), res.Change(), nil

	case resource.KindMomentum:
		var (
			next resource.Momentum
			res  resource.Result[resource.MomentumLevel]
			err  error
		)
		if gain {
			next, res, err = c.momentum.Gain(amount, source)
		} else {
			next, res, err = c.momentum.Decay(amount, source)
		}
		if err != nil {
			return c, resource.Change{}, err
		}
		return c.WithMomentum(next), res.Change(), nil

	case resource.KindCorruption:
		var (
			next resource.Corruption
			res  resource.Result[resource.CorruptionLevel]
			err  error
		)
		if gain {
			next, res, err = c.corruption.Gain(amount, source)
		} else {
			next, res, err = c.corruption.Decay(amount, source)
		}
		if err != nil {
			return c, resource.Change{}, err
		}
		return c.WithCorruption(next), res.Change(), nil

	case resource.KindResonance:
		var (
			next resource.Resonance
			res  resource.Result[resource.ResonanceLevel]
			err  error
		)
		if gain {
			next, res, err = c.resonance.Gain(amount, source)
		} else {
			next, res, err = c.resonance.Decay(amount, source)
		}
		if err != nil {
			return c, resource.Change{}, err
		}
		return c.WithResonance(next), res.Change(), nil

	default:
		return c, resource.Change{}, engineerr.InvalidArgumentf("unknown resource kind %d", int(kind))
	}
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
