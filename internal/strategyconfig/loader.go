package strategyconfig

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a strategy YAML file. KnownFields(true) makes typos and
// stale fields fail immediately instead of silently defaulting.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills zero values with the shared defaults so variant
// files only state what they change.
func applyDefaults(cfg *Config) {
	if cfg.Universe.NewsWindowDays == 0 {
		cfg.Universe.NewsWindowDays = 7
	}
	if cfg.Filters.Liquidity.Enable && cfg.Filters.Liquidity.PriceMin == 0 && cfg.Filters.Liquidity.PriceMax == 0 {
		cfg.Filters.Liquidity.PriceMin = 5
		cfg.Filters.Liquidity.PriceMax = 100
	}
	if cfg.Filters.Liquidity.Enable && cfg.Filters.Liquidity.MinIntradayVolume == 0 {
		cfg.Filters.Liquidity.MinIntradayVolume = 500_000
	}
	if cfg.Filters.Liquidity.Enable && cfg.Filters.Liquidity.MinADV10 == 0 {
		cfg.Filters.Liquidity.MinADV10 = 500_000
	}
	if cfg.Filters.Momentum.Enable && cfg.Filters.Momentum.MinPct == 0 {
		cfg.Filters.Momentum.MinPct = 0.03
	}
	if cfg.Filters.EarningsSurprise.Enable && cfg.Filters.EarningsSurprise.MinEPSRatio == 0 {
		cfg.Filters.EarningsSurprise.MinEPSRatio = 1.2
	}
	if cfg.Ranking.MaxCandidates == 0 {
		cfg.Ranking.MaxCandidates = 5
	}
	if cfg.Ranking.SortBy == "" {
		cfg.Ranking.SortBy = "pct_change"
	}
	if cfg.Sizing.Mode == "" {
		cfg.Sizing.Mode = SizingFixed
	}
	if cfg.Sizing.Mode == SizingRisk {
		if cfg.Sizing.RiskPctOfEquity == 0 {
			cfg.Sizing.RiskPctOfEquity = 0.005
		}
		if cfg.Sizing.AssumedStopPct == 0 {
			cfg.Sizing.AssumedStopPct = 0.05
		}
	}
	if cfg.Sizing.Mode == SizingFixed && cfg.Sizing.FixedQty == 0 {
		cfg.Sizing.FixedQty = 1
	}
	if cfg.Pacing.SymbolDelayMS == 0 {
		cfg.Pacing.SymbolDelayMS = 1200
	}
	if cfg.Pacing.OrderDelayMS == 0 {
		cfg.Pacing.OrderDelayMS = 300
	}
}

// Hash generates a SHA256 hash of the config (canonical JSON) for run
// summaries and audit logs.
func Hash(cfg *Config) (string, error) {
	jsonBytes, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
