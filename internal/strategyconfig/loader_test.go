package strategyconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strategy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalWatchlist = `
meta:
  strategy_id: test-strategy
universe:
  source: watchlist
  symbols: [AAPL, MSFT]
filters:
  liquidity:
    enable: true
  momentum:
    enable: true
ranking:
  sort_by: pct_change
sizing:
  mode: fixed
  fixed_qty: 2
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalWatchlist))
	require.NoError(t, err)

	assert.Equal(t, "test-strategy", cfg.Meta.StrategyID)
	assert.Equal(t, 7, cfg.Universe.NewsWindowDays)
	assert.Equal(t, 5.0, cfg.Filters.Liquidity.PriceMin)
	assert.Equal(t, 100.0, cfg.Filters.Liquidity.PriceMax)
	assert.Equal(t, 500_000.0, cfg.Filters.Liquidity.MinIntradayVolume)
	assert.Equal(t, 0.03, cfg.Filters.Momentum.MinPct)
	assert.Equal(t, 5, cfg.Ranking.MaxCandidates)
	assert.Equal(t, 2, cfg.Sizing.FixedQty)
	assert.Equal(t, 1200, cfg.Pacing.SymbolDelayMS)
	assert.Equal(t, 300, cfg.Pacing.OrderDelayMS)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(writeConfig(t, minimalWatchlist+`
unknown_section:
  foo: bar
`))
	assert.Error(t, err, "typos must fail loudly, not default silently")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(writeConfig(t, minimalWatchlist))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"missing strategy id", func(c *Config) { c.Meta.StrategyID = "" }, true},
		{"watchlist without symbols", func(c *Config) { c.Universe.Symbols = nil }, true},
		{"bad universe source", func(c *Config) { c.Universe.Source = "screener" }, true},
		{"inverted price band", func(c *Config) {
			c.Filters.Liquidity.PriceMin = 200
			c.Filters.Liquidity.PriceMax = 100
		}, true},
		{"negative momentum", func(c *Config) { c.Filters.Momentum.MinPct = -0.01 }, true},
		{"surprise ratio below one", func(c *Config) {
			c.Filters.EarningsSurprise.Enable = true
			c.Filters.EarningsSurprise.MinEPSRatio = 0.8
		}, true},
		{"sentiment without catalyst", func(c *Config) { c.Filters.Sentiment.Enable = true }, true},
		{"sentiment with catalyst", func(c *Config) {
			c.Filters.Catalyst.Enable = true
			c.Filters.Sentiment.Enable = true
		}, false},
		{"bad sort key", func(c *Config) { c.Ranking.SortBy = "volume" }, true},
		{"surprise sort without surprise filter", func(c *Config) { c.Ranking.SortBy = "surprise_ratio" }, true},
		{"risk sizing out of bounds", func(c *Config) {
			c.Sizing.Mode = SizingRisk
			c.Sizing.RiskPctOfEquity = 0.5
			c.Sizing.AssumedStopPct = 0.05
		}, true},
		{"fixed sizing zero qty", func(c *Config) { c.Sizing.FixedQty = 0 }, true},
		{"negative pacing", func(c *Config) { c.Pacing.OrderDelayMS = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashDeterministic(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalWatchlist))
	require.NoError(t, err)

	h1, err := Hash(cfg)
	require.NoError(t, err)
	assert.Len(t, h1, 64)

	h2, _ := Hash(cfg)
	assert.Equal(t, h1, h2)

	cfg.Filters.Momentum.MinPct = 0.07
	h3, _ := Hash(cfg)
	assert.NotEqual(t, h1, h3)
}
