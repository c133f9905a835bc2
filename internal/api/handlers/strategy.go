package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stonjarli/backend/internal/strategy"
	"github.com/stonjarli/backend/pkg/logger"
)

// StrategyHandler triggers strategy runs and the exit sweep over HTTP.
type StrategyHandler struct {
	strategies map[string]*strategy.Orchestrator
	exitEngine *strategy.ExitEngine
	logger     *logger.Logger
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(strategies map[string]*strategy.Orchestrator, exitEngine *strategy.ExitEngine, log *logger.Logger) *StrategyHandler {
	return &StrategyHandler{
		strategies: strategies,
		exitEngine: exitEngine,
		logger:     log,
	}
}

// List returns the registered strategy IDs
// GET /api/strategies
func (h *StrategyHandler) List(w http.ResponseWriter, r *http.Request) {
	ids := make([]string, 0, len(h.strategies))
	for id := range h.strategies {
		ids = append(ids, id)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategies": ids,
		"count":      len(ids),
	})
}

// Run executes a strategy synchronously and returns its run summary.
// The summary is returned even when the run was cut short.
// POST /api/strategies/{strategy_id}/run
func (h *StrategyHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	strategyID := mux.Vars(r)["strategy_id"]

	orch, ok := h.strategies[strategyID]
	if !ok {
		respondError(w, http.StatusNotFound, "unknown strategy: "+strategyID)
		return
	}

	summary, err := orch.Run(ctx)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"strategy": strategyID,
		}).Warn("Strategy run interrupted")
	}

	respondJSON(w, http.StatusOK, summary)
}

// ExitSweep evaluates all open positions against the exit rules
// POST /api/strategies/exit-sweep
func (h *StrategyHandler) ExitSweep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.exitEngine == nil {
		respondError(w, http.StatusServiceUnavailable, "exit engine not configured")
		return
	}

	verdicts, err := h.exitEngine.Run(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Exit sweep failed")
		respondError(w, http.StatusInternalServerError, "Exit sweep failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"verdicts": verdicts,
		"count":    len(verdicts),
	})
}
