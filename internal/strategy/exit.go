package strategy

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/pkg/logger"
)

// ExitAction is the decision taken for one open position.
type ExitAction string

const (
	// ExitHold leaves the position untouched
	ExitHold ExitAction = "hold"

	// ExitTrail attaches a trailing stop to lock in the gain
	ExitTrail ExitAction = "trail"

	// ExitSell liquidates the position at market
	ExitSell ExitAction = "sell"
)

// ExitVerdict records the decision for one position.
type ExitVerdict struct {
	Symbol   string                `json:"symbol"`
	Action   ExitAction            `json:"action"`
	Reason   string                `json:"reason"`
	HeldDays int                   `json:"held_days"`
	GainPct  float64               `json:"gain_pct"`
	Order    *contracts.PlacedOrder `json:"order,omitempty"`
}

// ExitConfig defines the holding-period exit rules.
type ExitConfig struct {
	MinHoldDays  int     // days before a winner gets a trailing stop
	MinGainPct   float64 // gain required to attach the trailing stop
	TrailPercent float64 // trailing stop distance
	MaxHoldDays  int     // hard limit before a market liquidation
	OrderDelayMS int     // pacing between order submissions
}

// DefaultExitConfig trails winners up 4% after 5 days with a 2% stop and
// liquidates anything held past 60 days.
func DefaultExitConfig() ExitConfig {
	return ExitConfig{
		MinHoldDays:  5,
		MinGainPct:   4.0,
		TrailPercent: 2.0,
		MaxHoldDays:  60,
		OrderDelayMS: 300,
	}
}

// ExitEngine walks the open positions and applies the holding-period
// rules. Entry age comes from the brokerage's filled buy orders; a
// position whose entry cannot be dated is held rather than guessed at.
type ExitEngine struct {
	broker  contracts.Broker
	config  ExitConfig
	limiter *rate.Limiter
	now     func() time.Time
	logger  *logger.Logger
}

// NewExitEngine creates an exit engine.
func NewExitEngine(broker contracts.Broker, config ExitConfig, log *logger.Logger) *ExitEngine {
	return &ExitEngine{
		broker:  broker,
		config:  config,
		limiter: limiterFor(config.OrderDelayMS),
		now:     time.Now,
		logger:  log,
	}
}

// Run evaluates every open position and submits the exit orders the rules
// call for. Per-position failures are recorded on the verdict; the sweep
// always covers the full position list.
func (e *ExitEngine) Run(ctx context.Context) ([]ExitVerdict, error) {
	positions, err := e.broker.GetPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("positions read: %w", err)
	}
	if len(positions) == 0 {
		e.logger.Info("No open positions to evaluate")
		return nil, nil
	}

	entries, err := e.entryDates(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := e.pendingExits(ctx)
	if err != nil {
		return nil, err
	}

	verdicts := make([]ExitVerdict, 0, len(positions))
	for _, pos := range positions {
		verdict := e.evaluate(pos, entries, pending)

		if verdict.Action != ExitHold {
			if err := e.submitExit(ctx, pos, &verdict); err != nil {
				return verdicts, err
			}
		}

		e.logger.WithFields(map[string]interface{}{
			"symbol":    verdict.Symbol,
			"action":    verdict.Action,
			"reason":    verdict.Reason,
			"held_days": verdict.HeldDays,
			"gain_pct":  verdict.GainPct,
		}).Info("Position evaluated")

		verdicts = append(verdicts, verdict)
	}

	return verdicts, nil
}

// evaluate applies the exit rules to a single position.
func (e *ExitEngine) evaluate(pos contracts.Position, entries map[string]time.Time, pending map[string]bool) ExitVerdict {
	verdict := ExitVerdict{
		Symbol:  pos.Symbol,
		Action:  ExitHold,
		GainPct: pos.PercentGain(),
	}

	if pending[pos.Symbol] {
		verdict.Reason = "exit order already open"
		return verdict
	}

	entry, ok := entries[pos.Symbol]
	if !ok {
		verdict.Reason = "entry date unknown"
		return verdict
	}
	verdict.HeldDays = int(e.now().Sub(entry).Hours() / 24)

	switch {
	case verdict.HeldDays > e.config.MaxHoldDays:
		verdict.Action = ExitSell
		verdict.Reason = fmt.Sprintf("held %d days, over the %d day limit", verdict.HeldDays, e.config.MaxHoldDays)
	case verdict.HeldDays > e.config.MinHoldDays && verdict.GainPct >= e.config.MinGainPct:
		verdict.Action = ExitTrail
		verdict.Reason = fmt.Sprintf("up %.1f%% after %d days", verdict.GainPct, verdict.HeldDays)
	default:
		verdict.Reason = "within holding rules"
	}

	return verdict
}

// submitExit places the order the verdict calls for and attaches the
// outcome to the verdict.
func (e *ExitEngine) submitExit(ctx context.Context, pos contracts.Position, verdict *ExitVerdict) error {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req := contracts.OrderRequest{
		Symbol:      pos.Symbol,
		Qty:         pos.Qty,
		Side:        contracts.OrderSideSell,
		Type:        contracts.OrderTypeMarket,
		TimeInForce: contracts.TimeInForceDay,
	}
	if verdict.Action == ExitTrail {
		req.Type = contracts.OrderTypeTrailingStop
		req.TimeInForce = contracts.TimeInForceGTC
		req.TrailPercent = e.config.TrailPercent
	}

	placed := &contracts.PlacedOrder{
		Symbol:  pos.Symbol,
		Qty:     pos.Qty,
		Side:    contracts.OrderSideSell,
		Attempt: e.now(),
	}

	result, err := e.broker.SubmitOrder(ctx, req)
	if err != nil {
		placed.Err = err.Error()
		e.logger.WithFields(map[string]interface{}{
			"symbol": pos.Symbol,
			"action": verdict.Action,
			"error":  err.Error(),
		}).Error("Exit order rejected")
	} else {
		placed.Result = result
	}

	verdict.Order = placed
	return nil
}

// entryDates maps each symbol to its most recent filled buy, the
// position's effective entry date.
func (e *ExitEngine) entryDates(ctx context.Context) (map[string]time.Time, error) {
	orders, err := e.broker.GetOrders(ctx, "closed")
	if err != nil {
		return nil, fmt.Errorf("orders read: %w", err)
	}

	entries := make(map[string]time.Time)
	for _, o := range orders {
		if o.Side != contracts.OrderSideBuy || o.FilledAt.IsZero() {
			continue
		}
		if existing, ok := entries[o.Symbol]; !ok || o.FilledAt.After(existing) {
			entries[o.Symbol] = o.FilledAt
		}
	}

	return entries, nil
}

// pendingExits returns the symbols that already have an open sell order,
// so the sweep never stacks a second exit on them.
func (e *ExitEngine) pendingExits(ctx context.Context) (map[string]bool, error) {
	orders, err := e.broker.GetOrders(ctx, "open")
	if err != nil {
		return nil, fmt.Errorf("open orders read: %w", err)
	}

	pending := make(map[string]bool)
	for _, o := range orders {
		if o.Side == contracts.OrderSideSell {
			pending[o.Symbol] = true
		}
	}

	return pending, nil
}
