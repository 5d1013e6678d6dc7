package combatants

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rune-engine/internal/combatant"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// Data is the serialized form of a combatant in Redis
type Data struct {
	ID                string    `json:"id"`
	EncounterID       string    `json:"encounter_id,omitempty"`
	Name              string    `json:"name"`
	Rage              int       `json:"rage"`
	Momentum          int       `json:"momentum"`
	Corruption        int       `json:"corruption"`
	Resonance         int       `json:"resonance"`
	AccumulatedAether int       `json:"accumulated_aether"`
	Abilities         []string  `json:"abilities,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// RedisConfig holds configuration for the Redis repository
type RedisConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
}

// NewRedisRepository creates a Redis-backed combatant repository
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, engineerr.InvalidArgument("redis config cannot be nil")
	}
	if cfg.Client == nil {
		return nil, engineerr.InvalidArgument("redis client is required")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: timeProvider,
	}, nil
}

// NewRedis creates a Redis-backed repository using the wall clock
func NewRedis(client redis.UniversalClient) Repository {
	return &redisRepo{
		client:       client,
		timeProvider: &RealTimeProvider{},
	}
}

func combatantKey(id string) string {
	return fmt.Sprintf("combatant:%s", id)
}

func encounterKey(encounterID string) string {
	return fmt.Sprintf("encounter:%s:combatants", encounterID)
}

func (r *redisRepo) Create(ctx context.Context, snap *combatant.Snapshot) error {
	if snap == nil {
		return engineerr.InvalidArgument("combatant cannot be nil")
	}
	if snap.ID == "" {
		return engineerr.InvalidArgument("combatant ID is required")
	}

	exists, err := r.client.Exists(ctx, combatantKey(snap.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check combatant existence: %w", err)
	}
	if exists > 0 {
		return engineerr.AlreadyExistsf("combatant with ID '%s' already exists", snap.ID).
			WithMeta("combatant_id", snap.ID)
	}

	now := r.timeProvider.Now()
	snap.UpdatedAt = now

	data := toData(snap)
	data.CreatedAt = now

	return r.write(ctx, data, "")
}

func (r *redisRepo) Get(ctx context.Context, id string) (*combatant.Snapshot, error) {
	data, err := r.getData(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSnapshot(data), nil
}

func (r *redisRepo) Update(ctx context.Context, snap *combatant.Snapshot) error {
	if snap == nil {
		return engineerr.InvalidArgument("combatant cannot be nil")
	}

	existing, err := r.getData(ctx, snap.ID)
	if err != nil {
		return err
	}

	snap.UpdatedAt = r.timeProvider.Now()

	data := toData(snap)
	data.CreatedAt = existing.CreatedAt

	return r.write(ctx, data, existing.EncounterID)
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	existing, err := r.getData(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, combatantKey(id))
	if existing.EncounterID != "" {
		pipe.SRem(ctx, encounterKey(existing.EncounterID), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete combatant from Redis: %w", err)
	}

	return nil
}

func (r *redisRepo) ListByEncounter(ctx context.Context, encounterID string) ([]*combatant.Snapshot, error) {
	if encounterID == "" {
		return nil, engineerr.InvalidArgument("encounter ID is required")
	}

	ids, err := r.client.SMembers(ctx, encounterKey(encounterID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get encounter combatants from Redis: %w", err)
	}

	snaps := make([]*combatant.Snapshot, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			snap, err := r.Get(gctx, id)
			if err != nil {
				// The index can briefly outlive a deleted combatant
				if engineerr.IsNotFound(err) {
					return nil
				}
				return fmt.Errorf("failed to get combatant %s: %w", id, err)
			}
			snaps[i] = snap
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*combatant.Snapshot, 0, len(snaps))
	for _, snap := range snaps {
		if snap != nil {
			result = append(result, snap)
		}
	}
	sortByID(result)

	return result, nil
}

func (r *redisRepo) getData(ctx context.Context, id string) (*Data, error) {
	if id == "" {
		return nil, engineerr.InvalidArgument("combatant ID is required")
	}

	jsonData, err := r.client.Get(ctx, combatantKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, engineerr.NotFoundf("combatant with ID '%s' not found", id).
				WithMeta("combatant_id", id)
		}
		return nil, fmt.Errorf("failed to get combatant from Redis: %w", err)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal combatant data: %w", err)
	}

	return &data, nil
}

// write stores data and moves the encounter index entry when the encounter changed
func (r *redisRepo) write(ctx context.Context, data *Data, previousEncounter string) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal combatant data: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, combatantKey(data.ID), string(jsonData), 0)
	if previousEncounter != "" && previousEncounter != data.EncounterID {
		pipe.SRem(ctx, encounterKey(previousEncounter), data.ID)
	}
	if data.EncounterID != "" {
		pipe.SAdd(ctx, encounterKey(data.EncounterID), data.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store combatant in Redis: %w", err)
	}

	return nil
}

func toData(snap *combatant.Snapshot) *Data {
	return &Data{
		ID:                snap.ID,
		EncounterID:       snap.EncounterID,
		Name:              snap.Name,
		Rage:              snap.Rage,
		Momentum:          snap.Momentum,
		Corruption:        snap.Corruption,
		Resonance:         snap.Resonance,
		AccumulatedAether: snap.AccumulatedAether,
		Abilities:         snap.Abilities,
		UpdatedAt:         snap.UpdatedAt,
	}
}

func toSnapshot(data *Data) *combatant.Snapshot {
	return &combatant.Snapshot{
		ID:                data.ID,
		EncounterID:       data.EncounterID,
		Name:              data.Name,
		Rage:              data.Rage,
		Momentum:          data.Momentum,
		Corruption:        data.Corruption,
		Resonance:         data.Resonance,
		AccumulatedAether: data.AccumulatedAether,
		Abilities:         data.Abilities,
		UpdatedAt:         data.UpdatedAt,
	}
}
