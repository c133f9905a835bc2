package strategyconfig

import "fmt"

// Validate checks config consistency beyond what YAML decoding enforces.
func Validate(cfg *Config) error {
	if cfg.Meta.StrategyID == "" {
		return fmt.Errorf("meta.strategy_id is required")
	}

	switch cfg.Universe.Source {
	case SourceWatchlist:
		if len(cfg.Universe.Symbols) == 0 {
			return fmt.Errorf("universe.symbols is required for watchlist source")
		}
	case SourceEarningsCalendar:
		// Calendar universes define their own symbols per run
	default:
		return fmt.Errorf("universe.source must be %q or %q, got %q",
			SourceWatchlist, SourceEarningsCalendar, cfg.Universe.Source)
	}

	if cfg.Filters.Liquidity.Enable && cfg.Filters.Liquidity.PriceMin > cfg.Filters.Liquidity.PriceMax {
		return fmt.Errorf("filters.liquidity: price_min %.2f exceeds price_max %.2f",
			cfg.Filters.Liquidity.PriceMin, cfg.Filters.Liquidity.PriceMax)
	}

	if cfg.Filters.Momentum.Enable && cfg.Filters.Momentum.MinPct < 0 {
		return fmt.Errorf("filters.momentum.min_pct must not be negative")
	}

	if cfg.Filters.EarningsSurprise.Enable && cfg.Filters.EarningsSurprise.MinEPSRatio < 1 {
		return fmt.Errorf("filters.earnings_surprise.min_eps_ratio must be >= 1")
	}

	if cfg.Filters.Sentiment.Enable && !cfg.Filters.Catalyst.Enable {
		return fmt.Errorf("filters.sentiment requires filters.catalyst: sentiment scores matched headlines")
	}

	switch cfg.Ranking.SortBy {
	case "pct_change", "surprise_ratio":
	default:
		return fmt.Errorf("ranking.sort_by must be pct_change or surprise_ratio, got %q", cfg.Ranking.SortBy)
	}

	if cfg.Ranking.SortBy == "surprise_ratio" && !cfg.Filters.EarningsSurprise.Enable {
		return fmt.Errorf("ranking by surprise_ratio requires the earnings_surprise filter")
	}

	switch cfg.Sizing.Mode {
	case SizingRisk:
		if cfg.Sizing.RiskPctOfEquity <= 0 || cfg.Sizing.RiskPctOfEquity > 0.1 {
			return fmt.Errorf("sizing.risk_pct_of_equity must be in (0, 0.1]")
		}
		if cfg.Sizing.AssumedStopPct <= 0 || cfg.Sizing.AssumedStopPct > 0.5 {
			return fmt.Errorf("sizing.assumed_stop_pct must be in (0, 0.5]")
		}
	case SizingFixed:
		if cfg.Sizing.FixedQty < 1 {
			return fmt.Errorf("sizing.fixed_qty must be >= 1")
		}
	default:
		return fmt.Errorf("sizing.mode must be %q or %q, got %q", SizingRisk, SizingFixed, cfg.Sizing.Mode)
	}

	if cfg.Pacing.SymbolDelayMS < 0 || cfg.Pacing.OrderDelayMS < 0 {
		return fmt.Errorf("pacing delays must not be negative")
	}

	return nil
}
