package selection

import (
	"sort"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/pkg/logger"
)

// Ranker orders qualified candidates by the strategy's sort key and
// truncates to MaxCandidates. This is the single point in the pipeline
// where the top-N cap is applied; the regime gate downstream never
// re-truncates.
type Ranker struct {
	config Config
	logger *logger.Logger
}

// Config defines ranking parameters.
type Config struct {
	SortBy        contracts.SortKey
	MaxCandidates int
}

// DefaultConfig ranks by percent change with the standard exposure cap.
func DefaultConfig() Config {
	return Config{
		SortBy:        contracts.SortByPctChange,
		MaxCandidates: 5,
	}
}

// NewRanker creates a new ranker
func NewRanker(config Config, log *logger.Logger) *Ranker {
	if config.MaxCandidates <= 0 {
		config.MaxCandidates = 5
	}
	return &Ranker{
		config: config,
		logger: log,
	}
}

// Rank sorts descending by the primary metric, stable so exact ties keep
// their relative order, then truncates to the cap. When ranking by
// surprise ratio, momentum breaks ties.
func (r *Ranker) Rank(candidates []contracts.Candidate) []contracts.Candidate {
	ranked := make([]contracts.Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		a := ranked[i].SortMetric(r.config.SortBy)
		b := ranked[j].SortMetric(r.config.SortBy)
		if a != b {
			return a > b
		}
		if r.config.SortBy == contracts.SortBySurpriseRatio {
			return ranked[i].MomentumPct > ranked[j].MomentumPct
		}
		return false
	})

	if len(ranked) > r.config.MaxCandidates {
		ranked = ranked[:r.config.MaxCandidates]
	}

	if len(ranked) > 0 {
		r.logger.WithFields(map[string]interface{}{
			"total":      len(candidates),
			"kept":       len(ranked),
			"top_symbol": ranked[0].Symbol,
			"sort_by":    r.config.SortBy,
		}).Info("Ranking completed")
	}

	return ranked
}
