package regime

import "github.com/stonjarli/backend/internal/contracts"

// Growth-profile thresholds. Revenue growth is a ratio (0.20 = 20%).
const (
	aggressiveRevenueGrowth = 0.20
	aggressivePERatio       = 30.0
	moderateRevenueGrowth   = 0.10
)

// ClassifyGrowth labels a stock's growth profile from revenue growth and
// P/E ratio. Total: a stock lacking either input is classified value,
// never aggressive.
func ClassifyGrowth(revenueGrowth, peRatio *float64) contracts.GrowthProfile {
	if revenueGrowth == nil || peRatio == nil {
		return contracts.GrowthValue
	}

	if *revenueGrowth > aggressiveRevenueGrowth && *peRatio > aggressivePERatio {
		return contracts.GrowthAggressive
	}

	if *revenueGrowth > moderateRevenueGrowth {
		return contracts.GrowthModerate
	}

	return contracts.GrowthValue
}
