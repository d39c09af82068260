package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.ErrorContains(t, err, "DISCORD_TOKEN")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("CACHE_TTL_HOURS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "online", cfg.BotStatus)
	assert.False(t, cfg.RegisterCommandsOnBot)
}

func TestLoadConfig_CacheTTL(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("CACHE_TTL_HOURS", "6")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 6*time.Hour, cfg.CacheTTL)
}
