package regime

import (
	"context"
	"time"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/pkg/logger"
	"github.com/stonjarli/backend/pkg/redis"
)

// Classifier derives the macro regime from two trailing series: the
// policy rate and the central-bank balance-sheet size.
// The Q2 fallback for unresolvable data lives here and nowhere else.
type Classifier struct {
	series contracts.SeriesProvider
	config Config
	cache  *redis.Cache
	logger *logger.Logger
}

// Config defines the series and lookback window for classification.
type Config struct {
	RateSeriesID         string        // policy rate series (e.g. DFF)
	BalanceSheetSeriesID string        // balance sheet series (e.g. WALCL)
	Lookback             time.Duration // window between "past" and "latest"
	CacheTTL             time.Duration // regime cache TTL; 0 disables caching
}

// DefaultConfig returns the standard Fed series with a ~3 month window.
func DefaultConfig() Config {
	return Config{
		RateSeriesID:         "DFF",   // Fed Funds Effective Rate
		BalanceSheetSeriesID: "WALCL", // Fed Total Assets
		Lookback:             90 * 24 * time.Hour,
		CacheTTL:             time.Hour,
	}
}

// NewClassifier creates a new regime classifier. cache may be a disabled
// redis cache; classification then always recomputes.
func NewClassifier(series contracts.SeriesProvider, config Config, cache *redis.Cache, log *logger.Logger) *Classifier {
	return &Classifier{
		series: series,
		config: config,
		cache:  cache,
		logger: log,
	}
}

// Classify returns the current regime. It never fails: if either series
// cannot be resolved it returns the conservative default Q2.
func (c *Classifier) Classify(ctx context.Context) contracts.Regime {
	if c.cache != nil && c.config.CacheTTL > 0 {
		var cached contracts.Regime
		if found, _ := c.cache.Get(ctx, "regime", &cached); found && cached != "" {
			return cached
		}
	}

	rate, rateOK := c.resolvePair(ctx, c.config.RateSeriesID)
	bs, bsOK := c.resolvePair(ctx, c.config.BalanceSheetSeriesID)

	if !rateOK || !bsOK {
		c.logger.WithFields(map[string]interface{}{
			"rate_resolved":          rateOK,
			"balance_sheet_resolved": bsOK,
			"fallback":               contracts.RegimeDefault,
		}).Warn("Regime series unavailable, using default regime")
		return contracts.RegimeDefault
	}

	regime := Map(rate.latest > rate.past, bs.latest > bs.past)

	c.logger.WithFields(map[string]interface{}{
		"regime":        regime,
		"rate_latest":   rate.latest,
		"rate_past":     rate.past,
		"bs_latest":     bs.latest,
		"bs_past":       bs.past,
	}).Info("Regime classified")

	if c.cache != nil && c.config.CacheTTL > 0 {
		_ = c.cache.Set(ctx, "regime", regime, c.config.CacheTTL)
	}

	return regime
}

// Map translates the two trend booleans into a regime label.
//
//	| rateRising | bsRising | Regime |
//	|------------|----------|--------|
//	| false      | true     | Q1     |
//	| false      | false    | Q2     |
//	| true       | true     | Q3     |
//	| true       | false    | Q4     |
func Map(rateRising, bsRising bool) contracts.Regime {
	switch {
	case !rateRising && bsRising:
		return contracts.RegimeQ1
	case !rateRising && !bsRising:
		return contracts.RegimeQ2
	case rateRising && bsRising:
		return contracts.RegimeQ3
	default:
		return contracts.RegimeQ4
	}
}

// seriesPair is the resolved (latest, past) observation pair for a series.
type seriesPair struct {
	latest float64
	past   float64
}

// resolvePair fetches the series window and picks the most recent valid
// observation and the earliest valid one (≈ lookback ago). Placeholder
// points are skipped in both directions.
func (c *Classifier) resolvePair(ctx context.Context, seriesID string) (seriesPair, bool) {
	to := time.Now()
	from := to.Add(-c.config.Lookback)

	obs, err := c.series.GetObservations(ctx, seriesID, from, to)
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"series": seriesID,
			"error":  err.Error(),
		}).Warn("Failed to fetch macro series")
		return seriesPair{}, false
	}

	var latest, past *contracts.SeriesObservation
	for i := len(obs) - 1; i >= 0; i-- {
		if !obs[i].Missing {
			latest = &obs[i]
			break
		}
	}
	for i := range obs {
		if !obs[i].Missing {
			past = &obs[i]
			break
		}
	}

	if latest == nil || past == nil {
		return seriesPair{}, false
	}

	return seriesPair{latest: latest.Value, past: past.Value}, true
}
