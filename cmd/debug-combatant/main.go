package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rune-engine/internal/combatant"
	"github.com/KirkDiggler/rune-engine/internal/repositories/combatants"
	"github.com/KirkDiggler/rune-engine/internal/resource"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: debug-combatant <combatant-id> | -encounter <encounter-id>")
		os.Exit(1)
	}

	ctx := context.Background()

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	// Test connection first
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}
	defer func() {
		clientErr := client.Close()
		if clientErr != nil {
			log.Printf("Failed to close Redis connection: %v", clientErr)
		}
	}()

	repo := combatants.NewRedis(client)
	tables := resource.DefaultTables()

	if os.Args[1] == "-encounter" && len(os.Args) > 2 {
		snaps, listErr := repo.ListByEncounter(ctx, os.Args[2])
		if listErr != nil {
			log.Printf("Failed to list encounter: %v", listErr)
			return
		}
		fmt.Printf("Encounter %s: %d combatants\n", os.Args[2], len(snaps))
		for _, snap := range snaps {
			fmt.Println()
			dump(snap, tables)
		}
		return
	}

	snap, err := repo.Get(ctx, os.Args[1])
	if err != nil {
		log.Printf("Failed to get combatant: %v", err)
		return
	}
	dump(snap, tables)
}

func dump(snap *combatant.Snapshot, tables resource.Tables) {
	fmt.Printf("Combatant ID: %s\n", snap.ID)
	fmt.Printf("Name: %s\n", snap.Name)
	fmt.Printf("Encounter: %s\n", snap.EncounterID)
	fmt.Printf("Updated: %s\n", snap.UpdatedAt)

	// Values outside the default tables still print raw
	c, err := combatant.FromSnapshot(snap, tables)
	if err != nil {
		fmt.Printf("Invalid against default tables: %v\n", err)
		fmt.Printf("Raw: rage=%d momentum=%d corruption=%d resonance=%d aether=%d\n",
			snap.Rage, snap.Momentum, snap.Corruption, snap.Resonance, snap.AccumulatedAether)
		return
	}

	fmt.Printf("Rage: %d (%s) %v\n", c.Rage().Current(), c.Rage().Level(), c.Rage().Effects())
	fmt.Printf("Momentum: %d (%s) %v\n", c.Momentum().Current(), c.Momentum().Level(), c.Momentum().Effects())
	fmt.Printf("Corruption: %d (%s) %v\n", c.Corruption().Current(), c.Corruption().Level(), c.Corruption().Effects())
	fmt.Printf("Resonance: %d (%s) %v, %d aether held\n",
		c.Resonance().Current(), c.Resonance().Level(), c.Resonance().Effects(), c.Resonance().Accumulated())

	fmt.Printf("Abilities: %d\n", len(snap.Abilities))
	for _, id := range snap.Abilities {
		fmt.Printf("  %s\n", id)
	}
}
