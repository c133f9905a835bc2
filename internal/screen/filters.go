package screen

import (
	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/pkg/logger"
)

// Screen applies a strategy's local filter predicates to candidates.
// Predicates compose by logical AND; each strategy enables a subset.
// The sentiment predicate is deliberately NOT here: it requires an
// external call per candidate and must run after all local predicates,
// so the orchestrator owns it.
type Screen struct {
	config Config
	logger *logger.Logger
}

// Config defines which predicates apply and their thresholds.
type Config struct {
	// Liquidity filter
	LiquidityEnabled  bool
	PriceMin          float64
	PriceMax          float64
	MinIntradayVolume float64
	MinADV10          float64

	// Momentum filter
	MomentumEnabled bool
	MinMomentumPct  float64 // 0.03 = +3%

	// Earnings surprise filter
	SurpriseEnabled     bool
	MinEPSSurpriseRatio float64 // 1.2 = 20% beat
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		LiquidityEnabled:  true,
		PriceMin:          5,
		PriceMax:          100,
		MinIntradayVolume: 500_000,
		MinADV10:          500_000,

		MomentumEnabled: true,
		MinMomentumPct:  0.03,

		SurpriseEnabled:     false,
		MinEPSSurpriseRatio: 1.2,
	}
}

// New creates a new screen
func New(config Config, log *logger.Logger) *Screen {
	return &Screen{
		config: config,
		logger: log,
	}
}

// Apply runs the enabled predicates over the candidates and returns the
// qualified subset plus a filter-name → rejection-count accounting map.
func (s *Screen) Apply(candidates []contracts.Candidate) ([]contracts.Candidate, map[string]int) {
	passed := make([]contracts.Candidate, 0, len(candidates))
	filtered := make(map[string]int)

	for _, c := range candidates {
		reason := s.Check(&c)
		if reason == "" {
			passed = append(passed, c)
		} else {
			filtered[reason]++
			s.logger.WithFields(map[string]interface{}{
				"symbol": c.Symbol,
				"filter": reason,
			}).Debug("Candidate filtered out")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"total_input":  len(candidates),
		"passed":       len(passed),
		"filtered_out": len(candidates) - len(passed),
		"filters":      filtered,
	}).Info("Screening completed")

	return passed, filtered
}

// Check runs the enabled predicates against a single candidate.
// Returns empty string if passed, otherwise the name of the first
// rejecting filter.
func (s *Screen) Check(c *contracts.Candidate) string {
	if s.config.SurpriseEnabled {
		if c.Earnings == nil {
			return "earnings_surprise"
		}
		if c.Earnings.SurpriseRatio() < s.config.MinEPSSurpriseRatio || !c.Earnings.RevenueBeat() {
			return "earnings_surprise"
		}
	}

	if s.config.LiquidityEnabled {
		if c.Price < s.config.PriceMin || c.Price > s.config.PriceMax {
			return "liquidity"
		}
		if c.IntradayVolume < s.config.MinIntradayVolume {
			return "liquidity"
		}
		if c.ADV10 < s.config.MinADV10 {
			return "liquidity"
		}
	}

	if s.config.MomentumEnabled {
		if c.MomentumPct < s.config.MinMomentumPct {
			return "momentum"
		}
	}

	return ""
}
