package strategy

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/internal/regime"
	"github.com/stonjarli/backend/internal/strategyconfig"
	"github.com/stonjarli/backend/pkg/logger"
)

// momentumConfig is a watchlist strategy with no pacing, suitable for
// fast test runs.
func momentumConfig(symbols ...string) strategyconfig.Config {
	return strategyconfig.Config{
		Meta: strategyconfig.Meta{StrategyID: "test-momentum"},
		Universe: strategyconfig.Universe{
			Source:         strategyconfig.SourceWatchlist,
			Symbols:        symbols,
			NewsWindowDays: 3,
		},
		Filters: strategyconfig.Filters{
			Liquidity: strategyconfig.Liquidity{
				Enable:            true,
				PriceMin:          5,
				PriceMax:          500,
				MinIntradayVolume: 500_000,
				MinADV10:          500_000,
			},
			Momentum: strategyconfig.Momentum{Enable: true, MinPct: 0.03},
		},
		Ranking: strategyconfig.Ranking{SortBy: "pct_change", MaxCandidates: 5},
		Sizing: strategyconfig.Sizing{
			Mode:            strategyconfig.SizingRisk,
			RiskPctOfEquity: 0.005,
			AssumedStopPct:  0.05,
		},
	}
}

func testRegime(rateRising, bsRising bool) *regime.Classifier {
	cfg := regime.DefaultConfig()
	cfg.CacheTTL = 0
	return regime.NewClassifier(&mockSeries{rateRising: rateRising, bsRising: bsRising}, cfg, nil, logger.NewNop())
}

func newTestOrchestrator(t *testing.T, cfg strategyconfig.Config, deps Deps) *Orchestrator {
	t.Helper()
	orch, err := New(cfg, deps, logger.NewNop())
	require.NoError(t, err)
	return orch
}

func TestRunEndToEnd(t *testing.T) {
	market := newMockMarket()
	market.addSymbol("HOT", 50, 0.08)
	market.addSymbol("WARM", 40, 0.05)
	market.addSymbol("FLAT", 30, 0.01)            // fails momentum
	market.quoteErrs["DOWN"] = fmt.Errorf("quote feed 502") // per-symbol failure

	broker := newMockBroker(10_000)
	orch := newTestOrchestrator(t, momentumConfig("HOT", "WARM", "FLAT", "DOWN"), Deps{
		Market: market,
		Broker: broker,
		Regime: testRegime(false, false), // Q2, moderate fundamentals pass
	})

	summary, err := orch.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)

	// One symbol failed fetch and was isolated; the rest continued
	assert.Equal(t, 4, summary.Attempted)
	assert.Len(t, summary.Errors, 1)
	assert.Equal(t, "DOWN", summary.Errors[0].Symbol)
	assert.Equal(t, contracts.StageFetch, summary.Errors[0].Stage)

	assert.Equal(t, 2, summary.Qualified)
	assert.Equal(t, map[string]int{"momentum": 1}, summary.Exclusions)
	assert.Equal(t, contracts.RegimeQ2, summary.Regime)
	assert.Equal(t, 2, summary.Gated)
	assert.Equal(t, 2, summary.Submitted)
	assert.Empty(t, summary.EmptiedAt)

	// Ranked descending by momentum, sized from the risk budget:
	// 10000 * 0.005 / (price * 0.05)
	require.Len(t, broker.submitted, 2)
	assert.Equal(t, "HOT", broker.submitted[0].Symbol)
	assert.Equal(t, 20, broker.submitted[0].Qty)
	assert.Equal(t, "WARM", broker.submitted[1].Symbol)
	assert.Equal(t, 25, broker.submitted[1].Qty)
	for _, o := range broker.submitted {
		assert.Equal(t, contracts.OrderSideBuy, o.Side)
		assert.Equal(t, contracts.OrderTypeMarket, o.Type)
	}
}

func TestRunRespectsRankingCap(t *testing.T) {
	market := newMockMarket()
	for i := 0; i < 8; i++ {
		market.addSymbol(fmt.Sprintf("S%d", i), 50, 0.04+float64(i)*0.01)
	}

	cfg := momentumConfig("S0", "S1", "S2", "S3", "S4", "S5", "S6", "S7")
	cfg.Ranking.MaxCandidates = 3

	broker := newMockBroker(10_000)
	orch := newTestOrchestrator(t, cfg, Deps{
		Market: market,
		Broker: broker,
		Regime: testRegime(false, false),
	})

	summary, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, summary.Qualified)
	assert.Equal(t, 3, summary.Ranked)
	assert.Equal(t, 3, summary.Submitted)
	// Highest momentum first
	assert.Equal(t, "S7", broker.submitted[0].Symbol)
}

func TestRunEmptyAtFilter(t *testing.T) {
	market := newMockMarket()
	market.addSymbol("FLAT1", 50, 0.00)
	market.addSymbol("FLAT2", 40, 0.01)

	broker := newMockBroker(10_000)
	orch := newTestOrchestrator(t, momentumConfig("FLAT1", "FLAT2"), Deps{
		Market: market,
		Broker: broker,
		Regime: testRegime(false, false),
	})

	summary, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.ZeroOrders())
	assert.Equal(t, contracts.StageFilter, summary.EmptiedAt)
	assert.Empty(t, broker.submitted)
}

func TestRunEmptyAtGate(t *testing.T) {
	market := newMockMarket()
	market.addSymbol("MOD", 50, 0.05) // moderate profile, rejected in Q1

	broker := newMockBroker(10_000)
	orch := newTestOrchestrator(t, momentumConfig("MOD"), Deps{
		Market: market,
		Broker: broker,
		Regime: testRegime(false, true), // Q1 accepts aggressive only
	})

	summary, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, contracts.RegimeQ1, summary.Regime)
	assert.Equal(t, 1, summary.Ranked)
	assert.Equal(t, 0, summary.Gated)
	assert.Equal(t, contracts.StageGate, summary.EmptiedAt)
	assert.Empty(t, broker.submitted)
}

func TestRunSentimentPredicate(t *testing.T) {
	market := newMockMarket()
	market.addSymbol("GOOD", 50, 0.06)
	market.addSymbol("BAD", 40, 0.07)
	market.addSymbol("FLAT", 30, 0.01) // fails momentum, must not cost a classifier call
	market.news["GOOD"] = []contracts.NewsItem{{Symbol: "GOOD", Headline: "Announces major acquisition"}}
	market.news["BAD"] = []contracts.NewsItem{{Symbol: "BAD", Headline: "Acquisition falls through"}}
	market.news["FLAT"] = []contracts.NewsItem{{Symbol: "FLAT", Headline: "Signs new contract"}}

	cfg := momentumConfig("GOOD", "BAD", "FLAT")
	cfg.Filters.Catalyst.Enable = true
	cfg.Filters.Sentiment.Enable = true

	classifier := &mockSentiment{labels: map[string]contracts.SentimentLabel{
		"GOOD": contracts.SentimentPositive,
		"BAD":  contracts.SentimentNegative,
	}}
	recorder := &mockRecorder{}
	broker := newMockBroker(10_000)

	orch := newTestOrchestrator(t, cfg, Deps{
		Market:    market,
		Broker:    broker,
		Regime:    testRegime(false, false),
		Sentiment: classifier,
		Recorder:  recorder,
	})

	summary, err := orch.Run(context.Background())
	require.NoError(t, err)

	// Sentiment ran only on the locally qualified candidates
	assert.ElementsMatch(t, []string{"GOOD", "BAD"}, classifier.calls)

	assert.Equal(t, 1, summary.Qualified)
	assert.Equal(t, 1, summary.Submitted)
	assert.Equal(t, "GOOD", broker.submitted[0].Symbol)
	assert.Equal(t, 1, summary.Exclusions["sentiment"])

	// Both verdicts hit the side channel, not just the positive one
	assert.Len(t, recorder.recorded, 2)
}

func TestRunSentimentRequiresClassifier(t *testing.T) {
	cfg := momentumConfig("ANY")
	cfg.Filters.Catalyst.Enable = true
	cfg.Filters.Sentiment.Enable = true

	_, err := New(cfg, Deps{
		Market: newMockMarket(),
		Broker: newMockBroker(0),
		Regime: testRegime(false, false),
	}, logger.NewNop())

	assert.Error(t, err)
}

func TestRunCatalystFilter(t *testing.T) {
	market := newMockMarket()
	market.addSymbol("NEWSY", 50, 0.05)
	market.addSymbol("QUIET", 40, 0.05)
	market.news["NEWSY"] = []contracts.NewsItem{{Symbol: "NEWSY", Headline: "FDA approval granted"}}
	market.news["QUIET"] = []contracts.NewsItem{{Symbol: "QUIET", Headline: "CEO gives interview"}}

	cfg := momentumConfig("NEWSY", "QUIET")
	cfg.Filters.Catalyst.Enable = true

	broker := newMockBroker(10_000)
	orch := newTestOrchestrator(t, cfg, Deps{
		Market: market,
		Broker: broker,
		Regime: testRegime(false, false),
	})

	summary, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Exclusions["catalyst"])
	require.Len(t, broker.submitted, 1)
	assert.Equal(t, "NEWSY", broker.submitted[0].Symbol)
}

func TestRunSizingDegradesWithoutAccount(t *testing.T) {
	market := newMockMarket()
	market.addSymbol("HOT", 50, 0.08)

	broker := newMockBroker(0)
	broker.accountErr = fmt.Errorf("account endpoint down")

	orch := newTestOrchestrator(t, momentumConfig("HOT"), Deps{
		Market: market,
		Broker: broker,
		Regime: testRegime(false, false),
	})

	summary, err := orch.Run(context.Background())
	require.NoError(t, err)

	// Degraded mode: quantity 1, run continues, failure recorded
	assert.Equal(t, 1, summary.Submitted)
	require.Len(t, broker.submitted, 1)
	assert.Equal(t, 1, broker.submitted[0].Qty)

	require.Len(t, summary.Errors, 1)
	assert.Equal(t, contracts.StageSize, summary.Errors[0].Stage)
}

func TestRunFixedSizing(t *testing.T) {
	market := newMockMarket()
	market.addSymbol("HOT", 50, 0.08)

	cfg := momentumConfig("HOT")
	cfg.Sizing = strategyconfig.Sizing{Mode: strategyconfig.SizingFixed, FixedQty: 3}

	broker := newMockBroker(10_000)
	orch := newTestOrchestrator(t, cfg, Deps{
		Market: market,
		Broker: broker,
		Regime: testRegime(false, false),
	})

	_, err := orch.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, broker.submitted, 1)
	assert.Equal(t, 3, broker.submitted[0].Qty)
}

func TestRunSubmitFailureIsolated(t *testing.T) {
	market := newMockMarket()
	market.addSymbol("OK", 50, 0.08)
	market.addSymbol("REJECTED", 40, 0.06)

	broker := newMockBroker(10_000)
	broker.submitErrs["REJECTED"] = fmt.Errorf("insufficient buying power")

	orch := newTestOrchestrator(t, momentumConfig("OK", "REJECTED"), Deps{
		Market: market,
		Broker: broker,
		Regime: testRegime(false, false),
	})

	summary, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Submitted)
	assert.Len(t, summary.Orders, 2)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "REJECTED", summary.Errors[0].Symbol)
	assert.Equal(t, contracts.StageSubmit, summary.Errors[0].Stage)
	assert.Empty(t, summary.EmptiedAt, "orders were placed")
}

func TestRunEarningsCalendarUniverse(t *testing.T) {
	now := time.Date(2026, 8, 25, 9, 45, 0, 0, time.UTC) // Tuesday
	yesterday := "2026-08-24"
	today := "2026-08-25"

	market := newMockMarket()
	market.addSymbol("AMC1", 50, 0.06)
	market.addSymbol("BMO1", 40, 0.05)
	market.addSymbol("WRONG", 30, 0.09)

	beat := func(symbol, day string, timing contracts.ReleaseTiming) contracts.EarningsEvent {
		d, _ := time.Parse("2006-01-02", day)
		return contracts.EarningsEvent{
			Symbol: symbol, ReleaseDate: d, ReleaseTiming: timing,
			EPSActual: 1.5, EPSEstimate: 1.0,
			RevenueActual: 110, RevenueEstimate: 100,
		}
	}

	market.calendar[yesterday] = []contracts.EarningsEvent{
		beat("AMC1", yesterday, contracts.ReleaseAfterClose),
		// bmo yesterday is stale, must be skipped
		beat("WRONG", yesterday, contracts.ReleaseBeforeOpen),
	}
	market.calendar[today] = []contracts.EarningsEvent{
		beat("BMO1", today, contracts.ReleaseBeforeOpen),
	}

	cfg := momentumConfig()
	cfg.Universe.Source = strategyconfig.SourceEarningsCalendar
	cfg.Filters.EarningsSurprise = strategyconfig.EarningsSurprise{Enable: true, MinEPSRatio: 1.2}
	cfg.Ranking.SortBy = "surprise_ratio"

	broker := newMockBroker(10_000)
	orch := newTestOrchestrator(t, cfg, Deps{
		Market: market,
		Broker: broker,
		Regime: testRegime(false, false),
	})
	orch.now = func() time.Time { return now }

	summary, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Qualified)
	symbols := make([]string, 0, len(broker.submitted))
	for _, o := range broker.submitted {
		symbols = append(symbols, o.Symbol)
	}
	assert.ElementsMatch(t, []string{"AMC1", "BMO1"}, symbols)
}

func TestPriorTradingDates(t *testing.T) {
	t.Run("midweek yields yesterday only", func(t *testing.T) {
		wed := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
		dates := priorTradingDates(wed)
		require.Len(t, dates, 1)
		assert.Equal(t, time.Tuesday, dates[0].Weekday())
	})

	t.Run("monday reaches back to friday", func(t *testing.T) {
		mon := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
		dates := priorTradingDates(mon)
		require.Len(t, dates, 3)
		assert.Equal(t, time.Sunday, dates[0].Weekday())
		assert.Equal(t, time.Saturday, dates[1].Weekday())
		assert.Equal(t, time.Friday, dates[2].Weekday())
	})
}

func TestRunAlwaysReturnsSummaryOnCancel(t *testing.T) {
	market := newMockMarket()
	market.addSymbol("HOT", 50, 0.08)

	cfg := momentumConfig("HOT")
	cfg.Pacing.SymbolDelayMS = 50

	broker := newMockBroker(10_000)
	orch := newTestOrchestrator(t, cfg, Deps{
		Market: market,
		Broker: broker,
		Regime: testRegime(false, false),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := orch.Run(ctx)
	assert.Error(t, err)
	require.NotNil(t, summary, "summary must survive cancellation")
	assert.True(t, summary.ZeroOrders())
}
