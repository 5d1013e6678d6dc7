package main

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rune-engine/internal/check"
	"github.com/KirkDiggler/rune-engine/internal/config"
	"github.com/KirkDiggler/rune-engine/internal/dice"
	"github.com/KirkDiggler/rune-engine/internal/events"
	"github.com/KirkDiggler/rune-engine/internal/repositories/combatants"
	"github.com/KirkDiggler/rune-engine/internal/resource"
	"github.com/KirkDiggler/rune-engine/internal/services/resolution"
	"github.com/KirkDiggler/rune-engine/internal/uuid"
)

//go:embed demo.yaml
var demoTuning []byte

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	tuning, err := loadTuning(cfg.Engine.TuningFile)
	if err != nil {
		log.Fatalf("Failed to load tuning: %v", err)
	}

	registry, err := tuning.Registry()
	if err != nil {
		log.Fatalf("Failed to build ability registry: %v", err)
	}

	roller, seed, err := cfg.Engine.NewRoller()
	if err != nil {
		log.Fatalf("Failed to create dice roller: %v", err)
	}
	log.Printf("Dice seed: %d (set RUNE_SEED to replay)", seed)

	resolver, err := check.NewResolver(&check.ResolverConfig{
		Rules:  tuning.Check,
		Roller: roller,
	})
	if err != nil {
		log.Fatalf("Failed to create resolver: %v", err)
	}

	// The risk gate draws from its own stream so check rolls replay identically
	riskGate, err := resource.NewRiskGate(tuning.Risk, dice.NewSeededSource(seed+1))
	if err != nil {
		log.Fatalf("Failed to create risk gate: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer cancel()

	repo, closeRepo := newRepository(ctx, cfg.Redis)
	defer closeRepo()

	bus := events.NewBus()
	bus.Subscribe(events.EventTypeThresholdCrossed, events.NewListener("narrator", events.PriorityPostCalculation, narrate))
	bus.Subscribe(events.EventTypeCorruptionRisk, events.NewListener("narrator", events.PriorityPostCalculation, narrate))

	svc := resolution.NewService(&resolution.ServiceConfig{
		Repository: repo,
		Resolver:   resolver,
		Registry:   registry,
		RiskGate:   riskGate,
		Tables:     tuning.Resources,
		EventBus:   bus,
	})

	if err := runSkirmish(ctx, svc); err != nil {
		log.Fatalf("Skirmish failed: %v", err)
	}
}

func loadTuning(path string) (*config.Tuning, error) {
	if path != "" {
		log.Printf("Loading tuning from %s", path)
		return config.LoadTuning(path)
	}
	return config.DecodeTuning(bytes.NewReader(demoTuning))
}

// newRepository connects to Redis, falling back to memory when it is unreachable
func newRepository(ctx context.Context, cfg config.RedisConfig) (combatants.Repository, func()) {
	if cfg.InMemory {
		log.Println("RUNE_IN_MEMORY set, using in-memory repository")
		return combatants.NewInMemoryRepository(), func() {}
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Printf("Failed to parse Redis options: %v", err)
		log.Println("Falling back to in-memory repository")
		return combatants.NewInMemoryRepository(), func() {}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if pingErr := client.Ping(pingCtx).Err(); pingErr != nil {
		log.Printf("Failed to connect to Redis at %s: %v", opts.Addr, pingErr)
		log.Println("Falling back to in-memory repository")
		_ = client.Close()
		return combatants.NewInMemoryRepository(), func() {}
	}

	log.Printf("Using Redis at %s for persistence", opts.Addr)
	return combatants.NewRedis(client), func() {
		if err := client.Close(); err != nil {
			log.Printf("Failed to close Redis connection: %v", err)
		}
	}
}

func narrate(e events.Event) error {
	switch ev := e.(type) {
	case *events.ThresholdCrossedEvent:
		fmt.Printf("  >> %s's %s is now %s\n", ev.GetCombatantID(), ev.Change.Kind, ev.Change.NewLevel)
	case *events.CorruptionRiskEvent:
		fmt.Printf("  >> %s risks corruption: %s\n", ev.GetCombatantID(), ev.Assessment)
	}
	return nil
}

func runSkirmish(ctx context.Context, svc resolution.Service) error {
	encounterID := uuid.NewPrefixedGenerator("enc").New()
	fmt.Printf("Encounter %s\n\n", encounterID)

	sable, err := svc.CreateCombatant(ctx, &resolution.CreateCombatantInput{
		Name:        "Sable",
		EncounterID: encounterID,
		Abilities:   []string{"second-wind", "aether-lance"},
	})
	if err != nil {
		return err
	}
	orrin, err := svc.CreateCombatant(ctx, &resolution.CreateCombatantInput{
		Name:        "Orrin",
		EncounterID: encounterID,
		Abilities:   []string{"steady-hands", "keen-eye"},
	})
	if err != nil {
		return err
	}
	wren, err := svc.CreateCombatant(ctx, &resolution.CreateCombatantInput{
		Name:        "Wren",
		EncounterID: encounterID,
		Abilities:   []string{"master-locksmith"},
	})
	if err != nil {
		return err
	}

	fmt.Println("-- The vault door")
	for _, dc := range []int{2, 4} {
		result, err := svc.PerformCheck(ctx, &resolution.CheckInput{
			CombatantID: wren.ID(),
			SkillID:     "lockpicking",
			DC:          dc,
			Pool:        dice.MustPool(3, 10, 0),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Wren: %s\n", result)
	}

	fmt.Println("\n-- Searching the antechamber together")
	coop, err := svc.PerformCooperativeCheck(ctx, &resolution.CooperativeInput{
		Type:      check.Assisted,
		SkillID:   "search",
		DC:        2,
		PrimaryID: orrin.ID(),
		Participants: []resolution.ParticipantInput{
			{CombatantID: orrin.ID(), Pool: dice.MustPool(3, 10, 0)},
			{CombatantID: sable.ID(), Pool: dice.MustPool(2, 10, 0)},
			{CombatantID: wren.ID(), Pool: dice.MustPool(2, 10, 0)},
		},
	})
	if err != nil {
		return err
	}
	fmt.Printf("Party: %s\n", coop)

	fmt.Println("\n-- The warden attacks")
	for round := 1; round <= 4; round++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		hit, err := svc.ChangeResource(ctx, &resolution.ResourceInput{
			CombatantID: sable.ID(),
			Kind:        resource.KindRage,
			Direction:   resource.DirectionGain,
			Amount:      25,
			Source:      resource.SourceDamage,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Round %d: Sable takes a hit, rage %d\n", round, hit.Change.NewValue)

		used, err := svc.UseAbility(ctx, &resolution.UseAbilityInput{
			CombatantID:    sable.ID(),
			AbilityID:      "aether-lance",
			AethericDamage: 3 + round,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Round %d: Sable casts Aether Lance, resonance %d, corruption %d\n",
			round, used.Combatant.Resonance().Current(), used.Combatant.Corruption().Current())

		swing, err := svc.ChangeResource(ctx, &resolution.ResourceInput{
			CombatantID: orrin.ID(),
			Kind:        resource.KindMomentum,
			Direction:   resource.DirectionGain,
			Amount:      22,
			Source:      resource.SourceHit,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Round %d: Orrin lands a blow, momentum %d\n", round, swing.Change.NewValue)
	}

	released, err := svc.ReleaseAether(ctx, sable.ID())
	if err != nil {
		return err
	}
	fmt.Printf("\nSable releases %d aetheric damage\n", released.Amount)

	fmt.Println("\n-- Aftermath")
	list, err := svc.ListEncounter(ctx, encounterID)
	if err != nil {
		return err
	}
	for _, c := range list {
		fmt.Printf("  %-6s rage %3d (%s)  momentum %3d (%s)  corruption %3d (%s)  resonance %2d (%s)\n",
			c.Name(),
			c.Rage().Current(), c.Rage().Level(),
			c.Momentum().Current(), c.Momentum().Level(),
			c.Corruption().Current(), c.Corruption().Level(),
			c.Resonance().Current(), c.Resonance().Level())
	}

	return nil
}
