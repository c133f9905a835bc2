package regime

import (
	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/pkg/logger"
)

// Q4 special rule thresholds: under tightening, only low-debt cheap
// stocks pass, regardless of growth profile.
const (
	q4MaxDebtRatio = 1.0
	q4MaxPERatio   = 15.0
)

// Gate filters a ranked candidate list down to regime-appropriate growth
// profiles. It is a pure filter: input ordering is preserved and it never
// truncates — the top-N cap belongs to the ranker.
type Gate struct {
	logger *logger.Logger
}

// NewGate creates a new regime gate
func NewGate(log *logger.Logger) *Gate {
	return &Gate{logger: log}
}

// Apply enriches each candidate with its growth profile and keeps the
// ones acceptable under the given regime:
//
//	Q1      → aggressive only
//	Q4      → debtRatio < 1 AND P/E < 15, growth profile ignored
//	Q2, Q3  → moderate or value
func (g *Gate) Apply(candidates []contracts.Candidate, regime contracts.Regime) []contracts.Candidate {
	kept := make([]contracts.Candidate, 0, len(candidates))

	for _, c := range candidates {
		c.Growth = ClassifyGrowth(c.RevenueGrowth, c.PERatio)

		if g.accepts(&c, regime) {
			kept = append(kept, c)
		} else {
			g.logger.WithFields(map[string]interface{}{
				"symbol": c.Symbol,
				"regime": regime,
				"growth": c.Growth,
			}).Debug("Candidate rejected by regime gate")
		}
	}

	g.logger.WithFields(map[string]interface{}{
		"regime":   regime,
		"input":    len(candidates),
		"accepted": len(kept),
	}).Info("Regime gate applied")

	return kept
}

// accepts checks a single candidate against the regime's acceptance rule.
func (g *Gate) accepts(c *contracts.Candidate, regime contracts.Regime) bool {
	switch regime {
	case contracts.RegimeQ1:
		return c.Growth == contracts.GrowthAggressive
	case contracts.RegimeQ4:
		if c.DebtRatio == nil || c.PERatio == nil {
			return false
		}
		return *c.DebtRatio < q4MaxDebtRatio && *c.PERatio < q4MaxPERatio
	default:
		return c.Growth == contracts.GrowthModerate || c.Growth == contracts.GrowthValue
	}
}
