// Package resolution is the engine's entry point: it loads combatants,
// evaluates their master abilities, rolls checks, applies resource changes
// and tells listeners what happened.
package resolution

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/KirkDiggler/rune-engine/internal/ability"
	"github.com/KirkDiggler/rune-engine/internal/check"
	"github.com/KirkDiggler/rune-engine/internal/combatant"
	"github.com/KirkDiggler/rune-engine/internal/dice"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
	"github.com/KirkDiggler/rune-engine/internal/events"
	"github.com/KirkDiggler/rune-engine/internal/repositories/combatants"
	"github.com/KirkDiggler/rune-engine/internal/resource"
	"github.com/KirkDiggler/rune-engine/internal/uuid"
)

// Service defines the resolution service interface
type Service interface {
	// CreateCombatant stores a new combatant with every resource at zero
	CreateCombatant(ctx context.Context, input *CreateCombatantInput) (combatant.Combatant, error)

	// GetCombatant retrieves a combatant by ID
	GetCombatant(ctx context.Context, combatantID string) (combatant.Combatant, error)

	// ListEncounter retrieves every combatant in an encounter
	ListEncounter(ctx context.Context, encounterID string) ([]combatant.Combatant, error)

	// UnlockAbility grants a combatant a registered master ability
	UnlockAbility(ctx context.Context, combatantID, abilityID string) (combatant.Combatant, error)

	// PerformCheck rolls a single skill check for a combatant
	PerformCheck(ctx context.Context, input *CheckInput) (*check.Result, error)

	// PerformCooperativeCheck rolls a group check
	PerformCooperativeCheck(ctx context.Context, input *CooperativeInput) (*check.CooperativeResult, error)

	// ChangeResource gains or decays one resource
	ChangeResource(ctx context.Context, input *ResourceInput) (*ResourceOutput, error)

	// UseAbility runs the corruption risk gate and then pays the ability's resonance
	UseAbility(ctx context.Context, input *UseAbilityInput) (*UseAbilityOutput, error)

	// ReleaseAether drains the accumulated aetheric damage pool
	ReleaseAether(ctx context.Context, combatantID string) (*ReleaseOutput, error)
}

// CreateCombatantInput contains data for creating a combatant
type CreateCombatantInput struct {
	// ID is generated when empty
	ID          string
	Name        string
	EncounterID string
	Abilities   []string
}

// CheckInput describes a single skill check
type CheckInput struct {
	CombatantID string
	SkillID     string
	Subtype     string
	TargetID    string
	TargetKind  string
	DC          int

	// Pool is the base pool from attributes and skill ranks
	Pool dice.Pool
}

// ParticipantInput is one member of a group check
type ParticipantInput struct {
	CombatantID string
	Pool        dice.Pool
}

// CooperativeInput describes a group check
type CooperativeInput struct {
	Type         check.CooperationType
	SkillID      string
	Subtype      string
	TargetID     string
	TargetKind   string
	DC           int
	Participants []ParticipantInput

	// PrimaryID names the authoritative roller of an Assisted check
	PrimaryID string
}

// ResourceInput describes a single resource change
type ResourceInput struct {
	CombatantID string
	Kind        resource.Kind
	Direction   resource.Direction
	Amount      int
	Source      resource.Source
}

// ResourceOutput is the combatant after a resource change
type ResourceOutput struct {
	Combatant combatant.Combatant
	Change    resource.Change
}

// UseAbilityInput describes the use of an unlocked ability
type UseAbilityInput struct {
	CombatantID string
	AbilityID   string

	// AethericDamage is banked into the resonance pool
	AethericDamage int
}

// UseAbilityOutput reports the risk checks and resonance paid for an ability use
type UseAbilityOutput struct {
	Combatant   combatant.Combatant
	Assessments []resource.Assessment
	Resonance   resource.Change
}

// ReleaseOutput is the result of draining the aetheric pool
type ReleaseOutput struct {
	Combatant combatant.Combatant
	Amount    int
}

type service struct {
	// mu serializes rolls and read-modify-write cycles
	mu sync.Mutex

	repository    combatants.Repository
	resolver      *check.Resolver
	registry      *ability.Registry
	evaluator     *ability.Evaluator
	riskGate      *resource.RiskGate
	tables        resource.Tables
	bus           *events.Bus
	uuidGenerator uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository combatants.Repository
	Resolver   *check.Resolver
	Registry   *ability.Registry
	RiskGate   *resource.RiskGate
	Tables     resource.Tables

	// Evaluator defaults to one over Registry
	Evaluator *ability.Evaluator

	// EventBus defaults to a bus with no listeners
	EventBus      *events.Bus
	UUIDGenerator uuid.Generator
}

// NewService creates a new resolution service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("service config is required")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Resolver == nil {
		panic("check resolver is required")
	}
	if cfg.Registry == nil {
		panic("ability registry is required")
	}
	if cfg.RiskGate == nil {
		panic("risk gate is required")
	}
	if err := cfg.Tables.Validate(); err != nil {
		panic("resource tables are invalid: " + err.Error())
	}

	svc := &service{
		repository: cfg.Repository,
		resolver:   cfg.Resolver,
		registry:   cfg.Registry,
		evaluator:  cfg.Evaluator,
		riskGate:   cfg.RiskGate,
		tables:     cfg.Tables,
		bus:        cfg.EventBus,
	}

	if svc.evaluator == nil {
		svc.evaluator = ability.NewEvaluator(cfg.Registry)
	}
	if svc.bus == nil {
		svc.bus = events.NewBus()
	}
	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewPrefixedGenerator("cmb")
	}

	return svc
}

// CreateCombatant stores a new combatant with every resource at zero
func (s *service) CreateCombatant(ctx context.Context, input *CreateCombatantInput) (combatant.Combatant, error) {
	if input == nil {
		return combatant.Combatant{}, engineerr.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.Name) == "" {
		return combatant.Combatant{}, engineerr.InvalidArgument("combatant name is required")
	}
	for _, id := range input.Abilities {
		if _, ok := s.registry.Get(id); !ok {
			return combatant.Combatant{}, engineerr.NotFoundf("ability %s not found", id).WithMeta("ability_id", id)
		}
	}

	id := input.ID
	if id == "" {
		id = s.uuidGenerator.New()
	}

	c, err := combatant.New(id, input.Name, s.tables)
	if err != nil {
		return combatant.Combatant{}, err
	}
	c = c.WithEncounter(input.EncounterID)
	for _, abilityID := range input.Abilities {
		c = c.WithAbility(abilityID)
	}

	if err := s.repository.Create(ctx, c.Snapshot()); err != nil {
		return combatant.Combatant{}, engineerr.Wrapf(err, "failed to create combatant %s", id)
	}

	log.Printf("Resolution: Created combatant %s (%s) in encounter %q", id, input.Name, input.EncounterID)
	return c, nil
}

// GetCombatant retrieves a combatant by ID
func (s *service) GetCombatant(ctx context.Context, combatantID string) (combatant.Combatant, error) {
	if combatantID == "" {
		return combatant.Combatant{}, engineerr.InvalidArgument("combatant ID is required")
	}

	snap, err := s.repository.Get(ctx, combatantID)
	if err != nil {
		return combatant.Combatant{}, engineerr.Wrapf(err, "failed to get combatant %s", combatantID)
	}

	return combatant.FromSnapshot(snap, s.tables)
}

// ListEncounter retrieves every combatant in an encounter
func (s *service) ListEncounter(ctx context.Context, encounterID string) ([]combatant.Combatant, error) {
	snaps, err := s.repository.ListByEncounter(ctx, encounterID)
	if err != nil {
		return nil, engineerr.Wrapf(err, "failed to list encounter %s", encounterID)
	}

	out := make([]combatant.Combatant, 0, len(snaps))
	for _, snap := range snaps {
		c, err := combatant.FromSnapshot(snap, s.tables)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// UnlockAbility grants a combatant a registered master ability
func (s *service) UnlockAbility(ctx context.Context, combatantID, abilityID string) (combatant.Combatant, error) {
	if _, ok := s.registry.Get(abilityID); !ok {
		return combatant.Combatant{}, engineerr.NotFoundf("ability %s not found", abilityID).WithMeta("ability_id", abilityID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.GetCombatant(ctx, combatantID)
	if err != nil {
		return combatant.Combatant{}, err
	}
	if c.HasAbility(abilityID) {
		return c, nil
	}

	c = c.WithAbility(abilityID)
	if err := s.save(ctx, c); err != nil {
		return combatant.Combatant{}, err
	}

	log.Printf("Resolution: Combatant %s unlocked %s", combatantID, abilityID)
	return c, nil
}

func (s *service) save(ctx context.Context, c combatant.Combatant) error {
	if err := s.repository.Update(ctx, c.Snapshot()); err != nil {
		return engineerr.Wrapf(err, "failed to save combatant %s", c.ID())
	}
	return nil
}

func (s *service) emit(event events.Event) error {
	if err := s.bus.Emit(event); err != nil {
		return engineerr.Wrapf(err, "failed to emit %s", event.GetType())
	}
	return nil
}
