// Package config holds the externally settable configuration, loaded from
// HOLDEM_-prefixed environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	Host string `envconfig:"HOST" default:""`
	Port int    `envconfig:"PORT" default:"8080"`

	SmallBlind   int `envconfig:"SMALL_BLIND" default:"10"`
	BigBlind     int `envconfig:"BIG_BLIND" default:"20"`
	InitialChips int `envconfig:"INITIAL_CHIPS" default:"1000"`
	BorrowAmount int `envconfig:"BORROW_AMOUNT" default:"1000"`
	MaxSeats     int `envconfig:"MAX_SEATS" default:"10"`

	ShowdownDelay      time.Duration `envconfig:"SHOWDOWN_DELAY" default:"5s"`
	DisconnectTimeout  time.Duration `envconfig:"DISCONNECT_TIMEOUT" default:"5m"`
	StaleSweepInterval time.Duration `envconfig:"STALE_SWEEP_INTERVAL" default:"1m"`

	StorageType string `envconfig:"STORAGE_TYPE" default:"memory"`
	RedisURL    string `envconfig:"REDIS_URL" default:""`
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("holdem", &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration with every field at its default value.
// Intended for tests.
func Default() Config {
	return Config{
		Port:               8080,
		SmallBlind:         10,
		BigBlind:           20,
		InitialChips:       1000,
		BorrowAmount:       1000,
		MaxSeats:           10,
		ShowdownDelay:      5 * time.Second,
		DisconnectTimeout:  5 * time.Minute,
		StaleSweepInterval: time.Minute,
		StorageType:        StorageMemory,
	}
}

func (c Config) Validate() error {
	if c.SmallBlind <= 0 || c.BigBlind < c.SmallBlind {
		return fmt.Errorf("invalid blinds: small=%d big=%d", c.SmallBlind, c.BigBlind)
	}
	if c.InitialChips <= 0 {
		return fmt.Errorf("initial chips must be positive, got %d", c.InitialChips)
	}
	if c.MaxSeats < 2 {
		return fmt.Errorf("need at least two seats, got %d", c.MaxSeats)
	}
	switch c.StorageType {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis storage requires HOLDEM_REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.StorageType)
	}
	return nil
}

// ListenAddr is the host:port the HTTP server binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
