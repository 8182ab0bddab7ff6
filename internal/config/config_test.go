package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 256, cfg.Cache.Capacity)
	assert.Equal(t, 30*time.Second, cfg.Autosave.Interval)
	assert.Equal(t, 2*time.Second, cfg.Autosave.Debounce)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("AUTOSAVE_DEBOUNCE", "500ms")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Autosave.Debounce)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg := LoadOrDefault()
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
}
