package strategyconfig

// Config is the full parameter set for one strategy variant. The three
// shipped variants (earnings-drift, momentum-spike, news-sentiment) are
// the same pipeline with different values here — thresholds are tuning
// experiments, so none of them live in code.
type Config struct {
	Meta     Meta     `yaml:"meta" json:"meta"`
	Universe Universe `yaml:"universe" json:"universe"`
	Filters  Filters  `yaml:"filters" json:"filters"`
	Ranking  Ranking  `yaml:"ranking" json:"ranking"`
	Sizing   Sizing   `yaml:"sizing" json:"sizing"`
	Pacing   Pacing   `yaml:"pacing" json:"pacing"`
}

// Meta identifies the strategy variant.
type Meta struct {
	StrategyID  string `yaml:"strategy_id" json:"strategy_id"`
	Description string `yaml:"description" json:"description"`

	// Schedule is the cron expression (with seconds) for scheduled runs.
	// Empty means the strategy only runs on demand.
	Schedule string `yaml:"schedule" json:"schedule,omitempty"`
}

// UniverseSource selects how the raw candidate universe is built.
type UniverseSource string

const (
	// SourceWatchlist scans a fixed symbol list
	SourceWatchlist UniverseSource = "watchlist"

	// SourceEarningsCalendar scans recent earnings releases
	SourceEarningsCalendar UniverseSource = "earnings_calendar"
)

// Universe defines the candidate universe.
type Universe struct {
	Source         UniverseSource `yaml:"source" json:"source"`
	Symbols        []string       `yaml:"symbols" json:"symbols"`
	NewsWindowDays int            `yaml:"news_window_days" json:"news_window_days"`
}

// Filters declares which predicates apply and their thresholds.
type Filters struct {
	Liquidity        Liquidity        `yaml:"liquidity" json:"liquidity"`
	Momentum         Momentum         `yaml:"momentum" json:"momentum"`
	EarningsSurprise EarningsSurprise `yaml:"earnings_surprise" json:"earnings_surprise"`
	Catalyst         Catalyst         `yaml:"catalyst" json:"catalyst"`
	Sentiment        Sentiment        `yaml:"sentiment" json:"sentiment"`
}

// Liquidity filter parameters.
type Liquidity struct {
	Enable            bool    `yaml:"enable" json:"enable"`
	PriceMin          float64 `yaml:"price_min" json:"price_min"`
	PriceMax          float64 `yaml:"price_max" json:"price_max"`
	MinIntradayVolume float64 `yaml:"min_intraday_volume" json:"min_intraday_volume"`
	MinADV10          float64 `yaml:"min_adv10" json:"min_adv10"`
}

// Momentum filter parameters. Variants use anything from 1% to 10%.
type Momentum struct {
	Enable bool    `yaml:"enable" json:"enable"`
	MinPct float64 `yaml:"min_pct" json:"min_pct"`
}

// EarningsSurprise filter parameters.
type EarningsSurprise struct {
	Enable      bool    `yaml:"enable" json:"enable"`
	MinEPSRatio float64 `yaml:"min_eps_ratio" json:"min_eps_ratio"`
}

// Catalyst keyword filter parameters.
type Catalyst struct {
	Enable   bool     `yaml:"enable" json:"enable"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Sentiment gating parameters.
type Sentiment struct {
	Enable bool `yaml:"enable" json:"enable"`
}

// Ranking parameters.
type Ranking struct {
	SortBy        string `yaml:"sort_by" json:"sort_by"` // pct_change | surprise_ratio
	MaxCandidates int    `yaml:"max_candidates" json:"max_candidates"`
}

// SizingMode selects between risk-budget and fixed quantities.
type SizingMode string

const (
	SizingRisk  SizingMode = "risk"
	SizingFixed SizingMode = "fixed"
)

// Sizing parameters.
type Sizing struct {
	Mode            SizingMode `yaml:"mode" json:"mode"`
	RiskPctOfEquity float64    `yaml:"risk_pct_of_equity" json:"risk_pct_of_equity"`
	AssumedStopPct  float64    `yaml:"assumed_stop_pct" json:"assumed_stop_pct"`
	FixedQty        int        `yaml:"fixed_qty" json:"fixed_qty"`
}

// Pacing controls the serialized inter-call delays that keep the run
// inside third-party API quotas. Backpressure, not an incidental sleep.
type Pacing struct {
	SymbolDelayMS int `yaml:"symbol_delay_ms" json:"symbol_delay_ms"`
	OrderDelayMS  int `yaml:"order_delay_ms" json:"order_delay_ms"`
}
