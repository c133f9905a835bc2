package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/pkg/logger"
)

// TradingHandler exposes read-only brokerage state.
type TradingHandler struct {
	broker contracts.Broker
	logger *logger.Logger
}

// NewTradingHandler creates a new trading handler
func NewTradingHandler(broker contracts.Broker, log *logger.Logger) *TradingHandler {
	return &TradingHandler{
		broker: broker,
		logger: log,
	}
}

// GetAccount returns the account snapshot
// GET /api/trading/account
func (h *TradingHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	account, err := h.broker.GetAccount(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get account")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve account")
		return
	}

	respondJSON(w, http.StatusOK, account)
}

// GetPositions returns open positions
// GET /api/trading/positions
func (h *TradingHandler) GetPositions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	positions, err := h.broker.GetPositions(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get positions")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve positions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"positions": positions,
		"count":     len(positions),
	})
}

// GetOrders returns orders filtered by status
// GET /api/trading/orders?status=open
func (h *TradingHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := r.URL.Query().Get("status")
	if status == "" {
		status = "all"
	}

	orders, err := h.broker.GetOrders(ctx, status)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get orders")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

// buyRequest is the manual order body
type buyRequest struct {
	Symbol string `json:"symbol"`
	Qty    int    `json:"qty"`
}

// SubmitBuy places a manual market buy, bypassing the pipeline.
// POST /api/trading/orders
func (h *TradingHandler) SubmitBuy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req buyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Symbol == "" || req.Qty < 1 {
		respondError(w, http.StatusBadRequest, "symbol and qty >= 1 are required")
		return
	}

	result, err := h.broker.SubmitOrder(ctx, contracts.OrderRequest{
		Symbol:      req.Symbol,
		Qty:         req.Qty,
		Side:        contracts.OrderSideBuy,
		Type:        contracts.OrderTypeMarket,
		TimeInForce: contracts.TimeInForceDay,
	})
	if err != nil {
		h.logger.WithError(err).WithField("symbol", req.Symbol).Error("Manual order rejected")
		respondError(w, http.StatusBadGateway, "Order rejected: "+err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, result)
}
