package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/internal/strategyconfig"
)

// fetchUniverse builds the raw candidate list according to the strategy's
// universe source. Per-symbol failures are recorded on the summary and
// the symbol is skipped; the batch always continues.
func (o *Orchestrator) fetchUniverse(ctx context.Context, summary *contracts.RunSummary) ([]contracts.Candidate, error) {
	switch o.cfg.Universe.Source {
	case strategyconfig.SourceEarningsCalendar:
		return o.fetchFromEarningsCalendar(ctx, summary)
	default:
		return o.fetchFromWatchlist(ctx, summary)
	}
}

// fetchFromWatchlist scans the configured symbol list.
func (o *Orchestrator) fetchFromWatchlist(ctx context.Context, summary *contracts.RunSummary) ([]contracts.Candidate, error) {
	candidates := make([]contracts.Candidate, 0, len(o.cfg.Universe.Symbols))

	for _, symbol := range o.cfg.Universe.Symbols {
		if err := o.waitSymbol(ctx); err != nil {
			return candidates, err
		}

		c, err := o.buildCandidate(ctx, symbol, nil)
		if err != nil {
			summary.AddError(symbol, contracts.StageFetch, err)
			o.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			}).Warn("Skipping symbol after fetch failure")
			continue
		}
		if c == nil {
			summary.Exclusions["catalyst"]++
			continue
		}

		candidates = append(candidates, *c)
	}

	return candidates, nil
}

// fetchFromEarningsCalendar scans recent earnings releases: yesterday's
// after-close reports plus today's before-open reports. Monday runs reach
// back across the weekend to Friday.
func (o *Orchestrator) fetchFromEarningsCalendar(ctx context.Context, summary *contracts.RunSummary) ([]contracts.Candidate, error) {
	now := o.now()
	candidates := make([]contracts.Candidate, 0)
	seen := make(map[string]bool)

	type datedEvents struct {
		date   time.Time
		timing contracts.ReleaseTiming
	}

	scans := []datedEvents{{date: now, timing: contracts.ReleaseBeforeOpen}}
	for _, d := range priorTradingDates(now) {
		scans = append(scans, datedEvents{date: d, timing: contracts.ReleaseAfterClose})
	}

	for _, scan := range scans {
		events, err := o.market.GetEarningsCalendar(ctx, scan.date)
		if err != nil {
			summary.AddError("", contracts.StageFetch, fmt.Errorf("earnings calendar %s: %w", scan.date.Format("2006-01-02"), err))
			continue
		}

		for _, event := range events {
			if event.ReleaseTiming != scan.timing || seen[event.Symbol] {
				continue
			}
			seen[event.Symbol] = true

			if err := o.waitSymbol(ctx); err != nil {
				return candidates, err
			}

			event := event
			c, err := o.buildCandidate(ctx, event.Symbol, &event)
			if err != nil {
				summary.AddError(event.Symbol, contracts.StageFetch, err)
				continue
			}
			if c == nil {
				summary.Exclusions["catalyst"]++
				continue
			}

			candidates = append(candidates, *c)
		}
	}

	return candidates, nil
}

// buildCandidate fetches the quote and metrics for a symbol and, when the
// catalyst filter is enabled, requires a keyword-matching news item.
// Returns (nil, nil) when the catalyst requirement rejects the symbol.
func (o *Orchestrator) buildCandidate(ctx context.Context, symbol string, earnings *contracts.EarningsEvent) (*contracts.Candidate, error) {
	quote, err := o.market.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}

	metrics, err := o.market.GetMetrics(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	c := &contracts.Candidate{
		Symbol:         symbol,
		Price:          quote.Current,
		PreviousClose:  quote.PreviousClose,
		IntradayVolume: quote.IntradayVolume,
		ADV10:          metrics.ADV10,
		MomentumPct:    quote.PctChange(),
		RevenueGrowth:  metrics.RevenueGrowth,
		PERatio:        metrics.PERatio,
		DebtRatio:      metrics.DebtRatio,
	}

	if earnings != nil {
		c.Earnings = earnings
		c.SurpriseRatio = earnings.SurpriseRatio()
	}

	if o.cfg.Filters.Catalyst.Enable {
		headline, ok, err := o.findCatalyst(ctx, symbol)
		if err != nil {
			return nil, fmt.Errorf("news: %w", err)
		}
		if !ok {
			return nil, nil
		}
		c.Headline = headline
	}

	return c, nil
}

// findCatalyst scans the symbol's recent news for a catalyst keyword and
// returns the first matching headline.
func (o *Orchestrator) findCatalyst(ctx context.Context, symbol string) (string, bool, error) {
	to := o.now()
	from := to.AddDate(0, 0, -o.cfg.Universe.NewsWindowDays)

	news, err := o.market.GetCompanyNews(ctx, symbol, from, to)
	if err != nil {
		return "", false, err
	}

	matched := o.catalyst.Match(news)
	if len(matched) == 0 {
		return "", false, nil
	}

	return matched[0].Headline, true, nil
}

// priorTradingDates returns the calendar days before now whose after-close
// earnings are still actionable: yesterday, extended back across weekend
// days so a Monday run covers Friday's reports.
func priorTradingDates(now time.Time) []time.Time {
	d := now.AddDate(0, 0, -1)
	dates := []time.Time{d}
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, -1)
		dates = append(dates, d)
	}
	return dates
}
