package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10, cfg.SmallBlind)
	assert.Equal(t, 20, cfg.BigBlind)
	assert.Equal(t, 1000, cfg.InitialChips)
	assert.Equal(t, 5*time.Second, cfg.ShowdownDelay)
	assert.Equal(t, 5*time.Minute, cfg.DisconnectTimeout)
	assert.Equal(t, StorageMemory, cfg.StorageType)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("HOLDEM_PORT", "9999")
	t.Setenv("HOLDEM_BIG_BLIND", "50")
	t.Setenv("HOLDEM_SMALL_BLIND", "25")
	t.Setenv("HOLDEM_SHOWDOWN_DELAY", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, 25, cfg.SmallBlind)
	assert.Equal(t, 50, cfg.BigBlind)
	assert.Equal(t, 2*time.Second, cfg.ShowdownDelay)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults are valid", func(*Config) {}, true},
		{"zero small blind", func(c *Config) { c.SmallBlind = 0 }, false},
		{"big blind below small", func(c *Config) { c.BigBlind = 5 }, false},
		{"zero initial chips", func(c *Config) { c.InitialChips = 0 }, false},
		{"one seat", func(c *Config) { c.MaxSeats = 1 }, false},
		{"redis without url", func(c *Config) { c.StorageType = StorageRedis }, false},
		{"redis with url", func(c *Config) {
			c.StorageType = StorageRedis
			c.RedisURL = "redis://localhost:6379"
		}, true},
		{"unknown storage", func(c *Config) { c.StorageType = "postgres" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestListenAddr(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.ListenAddr())

	cfg.Host = "127.0.0.1"
	cfg.Port = 9000
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr())
}
