package contracts

// Regime is the discrete macroeconomic regime derived from the policy-rate
// and balance-sheet trends.
//
//	Q1: rate falling, balance sheet rising  (easy money, QE on)
//	Q2: rate falling, balance sheet falling (rate cuts, no QE)
//	Q3: rate rising,  balance sheet rising  (hikes with QE)
//	Q4: rate rising,  balance sheet falling (tightening)
type Regime string

const (
	RegimeQ1 Regime = "Q1"
	RegimeQ2 Regime = "Q2"
	RegimeQ3 Regime = "Q3"
	RegimeQ4 Regime = "Q4"

	// RegimeDefault is the conservative fallback when either macro series
	// cannot be resolved. There is exactly one source of truth for this
	// default: the regime classifier.
	RegimeDefault = RegimeQ2
)

// String returns the regime label
func (r Regime) String() string {
	return string(r)
}

// GrowthProfile labels a stock's growth character from its fundamentals.
type GrowthProfile string

const (
	GrowthAggressive GrowthProfile = "aggressive"
	GrowthModerate   GrowthProfile = "moderate"
	GrowthValue      GrowthProfile = "value"
)
