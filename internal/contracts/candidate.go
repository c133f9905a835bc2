package contracts

// Candidate is the pipeline's central working entity. Created once by a
// strategy's fetch stage and enriched in place by each later stage; it is
// discarded at the end of a run and carries no cross-run identity.
type Candidate struct {
	Symbol string `json:"symbol"`

	// Quote snapshot at fetch time
	Price          float64 `json:"price"`
	PreviousClose  float64 `json:"previous_close"`
	IntradayVolume float64 `json:"intraday_volume"`
	ADV10          float64 `json:"adv10"`

	// Reference metrics. MomentumPct is always set; SurpriseRatio only for
	// earnings-driven candidates. A candidate is not rankable without the
	// metric its strategy sorts by.
	MomentumPct   float64 `json:"momentum_pct"`
	SurpriseRatio float64 `json:"surprise_ratio,omitempty"`

	// Supporting evidence
	Headline string         `json:"headline,omitempty"`
	Earnings *EarningsEvent `json:"earnings,omitempty"`

	// Fundamentals for regime gating; nil when unavailable
	RevenueGrowth *float64 `json:"revenue_growth,omitempty"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	DebtRatio     *float64 `json:"debt_ratio,omitempty"`

	// Enriched by the regime gate
	Growth GrowthProfile `json:"growth,omitempty"`

	// Enriched by the sizing stage
	Qty int `json:"qty,omitempty"`
}

// SortMetric returns the candidate's value for the given ranking key.
func (c *Candidate) SortMetric(key SortKey) float64 {
	switch key {
	case SortBySurpriseRatio:
		return c.SurpriseRatio
	default:
		return c.MomentumPct
	}
}

// SortKey selects the primary ranking metric for a strategy.
type SortKey string

const (
	// SortByPctChange ranks by percent price change from previous close
	SortByPctChange SortKey = "pct_change"

	// SortBySurpriseRatio ranks by EPS surprise ratio, with momentum as
	// the tie-break
	SortBySurpriseRatio SortKey = "surprise_ratio"
)
