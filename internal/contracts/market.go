package contracts

import "time"

// Quote is a point-in-time market quote. Fetched per evaluation cycle,
// never persisted.
type Quote struct {
	Symbol         string  `json:"symbol"`
	Current        float64 `json:"current"`
	PreviousClose  float64 `json:"previous_close"`
	IntradayVolume float64 `json:"intraday_volume"`
}

// PctChange returns the percent change from previous close (0.03 = +3%).
// Returns 0 when the previous close is missing.
func (q *Quote) PctChange() float64 {
	if q.PreviousClose == 0 {
		return 0
	}
	return (q.Current - q.PreviousClose) / q.PreviousClose
}

// Valid reports whether the quote carries usable price data.
func (q *Quote) Valid() bool {
	return q.Current > 0 && q.PreviousClose > 0
}

// Metrics holds per-symbol fundamentals and liquidity metrics.
// Fundamental ratios are pointers: a missing value stays nil and the
// growth classifier falls back to the value profile.
type Metrics struct {
	Symbol        string   `json:"symbol"`
	ADV10         float64  `json:"adv10"` // 10-day average daily volume, shares
	RevenueGrowth *float64 `json:"revenue_growth,omitempty"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	DebtRatio     *float64 `json:"debt_ratio,omitempty"`
}

// ReleaseTiming indicates when an earnings release happens relative to
// the trading session.
type ReleaseTiming string

const (
	ReleaseBeforeOpen ReleaseTiming = "bmo" // before market open
	ReleaseAfterClose ReleaseTiming = "amc" // after market close
)

// EarningsEvent is a single earnings-calendar entry. Immutable once fetched.
type EarningsEvent struct {
	Symbol          string        `json:"symbol"`
	ReleaseDate     time.Time     `json:"release_date"`
	ReleaseTiming   ReleaseTiming `json:"release_timing"`
	EPSActual       float64       `json:"eps_actual"`
	EPSEstimate     float64       `json:"eps_estimate"`
	RevenueActual   float64       `json:"revenue_actual"`
	RevenueEstimate float64       `json:"revenue_estimate"`
}

// SurpriseRatio returns epsActual/epsEstimate, or 0 when either side is
// non-positive (a negative estimate makes the ratio meaningless).
func (e *EarningsEvent) SurpriseRatio() float64 {
	if e.EPSActual <= 0 || e.EPSEstimate <= 0 {
		return 0
	}
	return e.EPSActual / e.EPSEstimate
}

// RevenueBeat reports whether actual revenue exceeded the estimate.
func (e *EarningsEvent) RevenueBeat() bool {
	return e.RevenueActual > e.RevenueEstimate
}

// NewsItem is a company news headline used for catalyst matching and
// sentiment scoring. Not persisted by the pipeline.
type NewsItem struct {
	Symbol      string    `json:"symbol"`
	Headline    string    `json:"headline"`
	Summary     string    `json:"summary"`
	PublishedAt time.Time `json:"published_at"`
}

// SeriesObservation is a single point of a macro time series.
// Missing marks placeholder values the provider could not resolve.
type SeriesObservation struct {
	Date    time.Time `json:"date"`
	Value   float64   `json:"value"`
	Missing bool      `json:"missing"`
}
