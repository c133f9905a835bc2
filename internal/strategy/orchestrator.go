package strategy

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/internal/regime"
	"github.com/stonjarli/backend/internal/screen"
	"github.com/stonjarli/backend/internal/selection"
	"github.com/stonjarli/backend/internal/sizing"
	"github.com/stonjarli/backend/internal/strategyconfig"
	"github.com/stonjarli/backend/pkg/logger"
)

// Deps are the external collaborators a strategy run needs. Sentiment and
// Recorder may be nil when the strategy's sentiment predicate is disabled.
type Deps struct {
	Market    contracts.MarketData
	Broker    contracts.Broker
	Regime    *regime.Classifier
	Sentiment contracts.SentimentClassifier
	Recorder  contracts.SentimentRecorder
}

// Orchestrator drives one strategy variant through the staged pipeline:
//
//	FETCH_UNIVERSE → FILTER → RANK → REGIME_GATE → SIZE → SUBMIT
//
// All three shipped variants are this same machine with different config.
// A run always completes with a summary; per-symbol failures are caught,
// recorded and skipped rather than aborting the batch.
type Orchestrator struct {
	cfg    strategyconfig.Config
	deps   Deps
	market contracts.MarketData

	screen   *screen.Screen
	catalyst *screen.CatalystMatcher
	ranker   *selection.Ranker
	gate     *regime.Gate

	symbolLimiter *rate.Limiter
	orderLimiter  *rate.Limiter

	now    func() time.Time
	logger *logger.Logger
}

// New creates an orchestrator for one strategy config.
func New(cfg strategyconfig.Config, deps Deps, log *logger.Logger) (*Orchestrator, error) {
	if deps.Market == nil || deps.Broker == nil || deps.Regime == nil {
		return nil, fmt.Errorf("market, broker and regime dependencies are required")
	}
	if cfg.Filters.Sentiment.Enable && deps.Sentiment == nil {
		return nil, fmt.Errorf("strategy %s enables sentiment but no classifier is wired", cfg.Meta.StrategyID)
	}

	keywords := cfg.Filters.Catalyst.Keywords
	if len(keywords) == 0 {
		keywords = screen.DefaultCatalystKeywords()
	}

	return &Orchestrator{
		cfg:    cfg,
		deps:   deps,
		market: deps.Market,
		screen: screen.New(screen.Config{
			LiquidityEnabled:    cfg.Filters.Liquidity.Enable,
			PriceMin:            cfg.Filters.Liquidity.PriceMin,
			PriceMax:            cfg.Filters.Liquidity.PriceMax,
			MinIntradayVolume:   cfg.Filters.Liquidity.MinIntradayVolume,
			MinADV10:            cfg.Filters.Liquidity.MinADV10,
			MomentumEnabled:     cfg.Filters.Momentum.Enable,
			MinMomentumPct:      cfg.Filters.Momentum.MinPct,
			SurpriseEnabled:     cfg.Filters.EarningsSurprise.Enable,
			MinEPSSurpriseRatio: cfg.Filters.EarningsSurprise.MinEPSRatio,
		}, log),
		catalyst: screen.NewCatalystMatcher(keywords),
		ranker: selection.NewRanker(selection.Config{
			SortBy:        contracts.SortKey(cfg.Ranking.SortBy),
			MaxCandidates: cfg.Ranking.MaxCandidates,
		}, log),
		gate:          regime.NewGate(log),
		symbolLimiter: limiterFor(cfg.Pacing.SymbolDelayMS),
		orderLimiter:  limiterFor(cfg.Pacing.OrderDelayMS),
		now:           time.Now,
		logger: log.WithFields(map[string]interface{}{
			"strategy": cfg.Meta.StrategyID,
		}),
	}, nil
}

// ID returns the strategy identifier.
func (o *Orchestrator) ID() string {
	return o.cfg.Meta.StrategyID
}

// Schedule returns the strategy's cron schedule, empty for on-demand.
func (o *Orchestrator) Schedule() string {
	return o.cfg.Meta.Schedule
}

// Run executes the pipeline once. The returned summary is always non-nil,
// including on context cancellation; the error is non-nil only when the
// run was cut short by the context.
func (o *Orchestrator) Run(ctx context.Context) (*contracts.RunSummary, error) {
	started := o.now()
	summary := &contracts.RunSummary{
		Strategy:   o.cfg.Meta.StrategyID,
		RunID:      fmt.Sprintf("%s-%s", o.cfg.Meta.StrategyID, started.Format("20060102-150405")),
		StartedAt:  started,
		Exclusions: make(map[string]int),
	}
	defer func() {
		summary.Duration = o.now().Sub(started)
		o.logger.WithFields(map[string]interface{}{
			"run_id":    summary.RunID,
			"attempted": summary.Attempted,
			"submitted": summary.Submitted,
			"errors":    len(summary.Errors),
			"duration":  summary.Duration.String(),
		}).Info("Strategy run completed")
	}()

	// FETCH_UNIVERSE
	candidates, err := o.fetchUniverse(ctx, summary)
	summary.Attempted = len(candidates) + len(summary.Errors)
	if err != nil {
		summary.EmptiedAt = contracts.StageFetch
		return summary, err
	}
	if len(candidates) == 0 {
		summary.EmptiedAt = contracts.StageFetch
		return summary, nil
	}

	// FILTER: local predicates first, the external sentiment predicate
	// last so rejected candidates never cost a classifier call.
	qualified, exclusions := o.screen.Apply(candidates)
	for name, n := range exclusions {
		summary.Exclusions[name] += n
	}

	if o.cfg.Filters.Sentiment.Enable {
		qualified, err = o.applySentiment(ctx, qualified, summary)
		if err != nil {
			summary.EmptiedAt = contracts.StageFilter
			return summary, err
		}
	}

	summary.Qualified = len(qualified)
	if len(qualified) == 0 {
		summary.EmptiedAt = contracts.StageFilter
		return summary, nil
	}

	// RANK
	ranked := o.ranker.Rank(qualified)
	summary.Ranked = len(ranked)
	if len(ranked) == 0 {
		summary.EmptiedAt = contracts.StageRank
		return summary, nil
	}

	// REGIME_GATE
	summary.Regime = o.deps.Regime.Classify(ctx)
	gated := o.gate.Apply(ranked, summary.Regime)
	summary.Gated = len(gated)
	if len(gated) == 0 {
		summary.EmptiedAt = contracts.StageGate
		return summary, nil
	}

	// SIZE
	sized := o.size(ctx, gated, summary)
	summary.Sized = len(sized)

	// SUBMIT
	if err := o.submit(ctx, sized, summary); err != nil {
		return summary, err
	}
	if summary.Submitted == 0 && summary.EmptiedAt == "" {
		summary.EmptiedAt = contracts.StageSubmit
	}

	return summary, nil
}

// applySentiment keeps candidates whose catalyst headline scores positive.
// Classifier failures degrade to neutral inside the classifier, so a
// flaky model narrows the output instead of failing the run. All verdicts
// are recorded to the side channel when a recorder is wired.
func (o *Orchestrator) applySentiment(ctx context.Context, candidates []contracts.Candidate, summary *contracts.RunSummary) ([]contracts.Candidate, error) {
	kept := make([]contracts.Candidate, 0, len(candidates))
	verdicts := make([]contracts.SentimentVerdict, 0, len(candidates))

	for _, c := range candidates {
		if err := o.waitSymbol(ctx); err != nil {
			return kept, err
		}
		if c.Headline == "" {
			summary.Exclusions["sentiment"]++
			continue
		}

		verdict, err := o.deps.Sentiment.Classify(ctx, c.Symbol, c.Headline)
		if err != nil {
			summary.AddError(c.Symbol, contracts.StageFilter, err)
			summary.Exclusions["sentiment"]++
			continue
		}
		verdicts = append(verdicts, *verdict)

		if verdict.Label != contracts.SentimentPositive {
			summary.Exclusions["sentiment"]++
			continue
		}
		kept = append(kept, c)
	}

	if o.deps.Recorder != nil && len(verdicts) > 0 {
		if err := o.deps.Recorder.Record(ctx, verdicts); err != nil {
			o.logger.WithError(err).Warn("Failed to record sentiment verdicts")
		}
	}

	return kept, nil
}

// size computes the order quantity for each candidate. When the account
// read fails the run degrades to quantity 1 per candidate rather than
// aborting.
func (o *Orchestrator) size(ctx context.Context, candidates []contracts.Candidate, summary *contracts.RunSummary) []contracts.Candidate {
	if o.cfg.Sizing.Mode == strategyconfig.SizingFixed {
		for i := range candidates {
			candidates[i].Qty = o.cfg.Sizing.FixedQty
		}
		return candidates
	}

	var equity float64
	account, err := o.deps.Broker.GetAccount(ctx)
	if err != nil {
		summary.AddError("", contracts.StageSize, fmt.Errorf("account read: %w", err))
		o.logger.WithError(err).Warn("Account unavailable, sizing degraded to 1 share per order")
	} else {
		equity = account.EquityValue()
	}

	cfg := sizing.Config{
		RiskPctOfEquity: o.cfg.Sizing.RiskPctOfEquity,
		AssumedStopPct:  o.cfg.Sizing.AssumedStopPct,
	}
	for i := range candidates {
		candidates[i].Qty = sizing.Shares(candidates[i].Price, equity, cfg)
	}

	return candidates
}

// submit places a market buy for each sized candidate, serialized through
// the order pacer. Broker rejections are recorded per symbol; the batch
// continues.
func (o *Orchestrator) submit(ctx context.Context, candidates []contracts.Candidate, summary *contracts.RunSummary) error {
	for _, c := range candidates {
		if err := o.wait(ctx, o.orderLimiter); err != nil {
			return err
		}

		placed := contracts.PlacedOrder{
			Symbol:  c.Symbol,
			Qty:     c.Qty,
			Side:    contracts.OrderSideBuy,
			Attempt: o.now(),
		}

		result, err := o.deps.Broker.SubmitOrder(ctx, contracts.OrderRequest{
			Symbol:      c.Symbol,
			Qty:         c.Qty,
			Side:        contracts.OrderSideBuy,
			Type:        contracts.OrderTypeMarket,
			TimeInForce: contracts.TimeInForceDay,
		})
		if err != nil {
			placed.Err = err.Error()
			summary.AddError(c.Symbol, contracts.StageSubmit, err)
		} else {
			placed.Result = result
			summary.Submitted++
		}

		summary.Orders = append(summary.Orders, placed)
	}

	return nil
}

// waitSymbol blocks until the symbol pacer allows the next external call.
func (o *Orchestrator) waitSymbol(ctx context.Context) error {
	return o.wait(ctx, o.symbolLimiter)
}

func (o *Orchestrator) wait(ctx context.Context, l *rate.Limiter) error {
	if l == nil {
		return ctx.Err()
	}
	return l.Wait(ctx)
}

// limiterFor converts a per-call delay into a rate limiter. Zero delay
// means no pacing.
func limiterFor(delayMS int) *rate.Limiter {
	if delayMS <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Duration(delayMS)*time.Millisecond), 1)
}
