package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rune-engine/internal/config"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})

	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Zero(t, cfg.Redis.DB)
	assert.False(t, cfg.Redis.InMemory)
	assert.Equal(t, 10, cfg.Engine.MaxExplosionDepth)
	assert.Zero(t, cfg.Engine.Seed)
	assert.Empty(t, cfg.Engine.TuningFile)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"REDIS_ADDR":               "redis:6380",
		"REDIS_PASSWORD":           "hunter2",
		"REDIS_DB":                 "3",
		"RUNE_SEED":                "42",
		"RUNE_MAX_EXPLOSION_DEPTH": "4",
		"RUNE_TUNING_FILE":         "tuning.yaml",
		"RUNE_IN_MEMORY":           "true",
	})

	require.NoError(t, err)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Redis.InMemory)
	assert.Equal(t, int64(42), cfg.Engine.Seed)
	assert.Equal(t, 4, cfg.Engine.MaxExplosionDepth)
	assert.Equal(t, "tuning.yaml", cfg.Engine.TuningFile)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unparseable db", env: map[string]string{"REDIS_DB": "zero"}},
		{name: "negative db", env: map[string]string{"REDIS_DB": "-1"}},
		{name: "zero explosion depth", env: map[string]string{"RUNE_MAX_EXPLOSION_DEPTH": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadFrom(tt.env)
			require.Error(t, err)
		})
	}
}

func TestRedisConfig_Options(t *testing.T) {
	opts, err := config.RedisConfig{Addr: "cache:6379", Password: "pw", DB: 2}.Options()
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)

	opts, err = config.RedisConfig{URL: "redis://:secret@example.com:6390/5", Addr: "ignored:1"}.Options()
	require.NoError(t, err)
	assert.Equal(t, "example.com:6390", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 5, opts.DB)

	_, err = config.RedisConfig{URL: "mysql://nope"}.Options()
	assert.True(t, engineerr.IsInvalidArgument(err))
}

func TestEngineConfig_NewRoller(t *testing.T) {
	roller, seed, err := config.EngineConfig{Seed: 7, MaxExplosionDepth: 3}.NewRoller()
	require.NoError(t, err)
	assert.Equal(t, int64(7), seed)
	require.NotNil(t, roller)

	_, seed, err = config.EngineConfig{MaxExplosionDepth: 3}.NewRoller()
	require.NoError(t, err)
	assert.NotZero(t, seed)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &config.Config{
		Engine: config.EngineConfig{MaxExplosionDepth: 10},
	}
	assert.True(t, engineerr.IsValidation(cfg.Validate()), "an address is required")

	cfg.Redis.InMemory = true
	assert.NoError(t, cfg.Validate())
}
