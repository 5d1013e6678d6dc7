// Package config loads process configuration from the environment and engine
// tuning from YAML.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rune-engine/internal/dice"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	Redis  RedisConfig
	Engine EngineConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// URL wins over the individual fields when set
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	// InMemory skips Redis entirely
	InMemory bool `env:"RUNE_IN_MEMORY"`
}

// EngineConfig holds engine-wide settings
type EngineConfig struct {
	// Seed fixes the dice source; zero draws a fresh seed
	Seed              int64  `env:"RUNE_SEED"`
	MaxExplosionDepth int    `env:"RUNE_MAX_EXPLOSION_DEPTH" envDefault:"10"`
	TuningFile        string `env:"RUNE_TUNING_FILE"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom loads configuration from the given variables instead of the process environment
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, engineerr.WrapWithCode(err, engineerr.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if c.Redis.DB < 0 {
		return engineerr.Validationf("REDIS_DB cannot be negative, got %d", c.Redis.DB)
	}
	if !c.Redis.InMemory && c.Redis.URL == "" && c.Redis.Addr == "" {
		return engineerr.Validationf("REDIS_ADDR or REDIS_URL is required unless RUNE_IN_MEMORY is set")
	}
	if c.Engine.MaxExplosionDepth < 1 {
		return engineerr.Validationf("RUNE_MAX_EXPLOSION_DEPTH must be at least 1, got %d", c.Engine.MaxExplosionDepth)
	}
	return nil
}

// Options builds go-redis client options
func (c RedisConfig) Options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, engineerr.WrapWithCode(err, engineerr.CodeInvalidArgument, "invalid REDIS_URL")
		}
		return opts, nil
	}

	return &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	}, nil
}

// NewRoller builds the dice roller described by the engine settings
func (c EngineConfig) NewRoller() (dice.Roller, int64, error) {
	seed := c.Seed
	if seed == 0 {
		var err error
		seed, err = dice.NewSeed()
		if err != nil {
			return nil, 0, err
		}
	}

	return dice.NewRoller(dice.NewSeededSource(seed), dice.WithMaxExplosionDepth(c.MaxExplosionDepth)), seed, nil
}
