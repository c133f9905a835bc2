package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Port)
	assert.NotEmpty(t, cfg.Env)
	assert.NotEmpty(t, cfg.Finnhub.BaseURL)
	assert.NotEmpty(t, cfg.FRED.BaseURL)
	assert.NotEmpty(t, cfg.Alpaca.BaseURL)
	assert.NotEmpty(t, cfg.Gemini.Model)
}

func TestRequireCapabilities(t *testing.T) {
	cfg := &Config{}

	assert.Error(t, cfg.RequireFinnhub())
	assert.Error(t, cfg.RequireAlpaca())
	assert.Error(t, cfg.RequireGemini())

	cfg.Finnhub.APIKey = "x"
	assert.NoError(t, cfg.RequireFinnhub())

	// Brokerage needs both halves of the credential
	cfg.Alpaca.APIKey = "x"
	assert.Error(t, cfg.RequireAlpaca())
	cfg.Alpaca.APISecret = "y"
	assert.NoError(t, cfg.RequireAlpaca())

	cfg.Gemini.APIKey = "x"
	assert.NoError(t, cfg.RequireGemini())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("FINNHUB_API_KEY", "fk")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "fk", cfg.Finnhub.APIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("REDIS_ENABLED", "not-a-bool")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Database.MaxConns)
	// Unparseable values fall back to the default
	assert.False(t, cfg.Redis.Enabled)
}
