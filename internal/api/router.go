package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/stonjarli/backend/internal/api/handlers"
	"github.com/stonjarli/backend/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(strategyHandler *handlers.StrategyHandler, tradingHandler *handlers.TradingHandler, regimeHandler *handlers.RegimeHandler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Strategy endpoints
	api.HandleFunc("/strategies", strategyHandler.List).Methods("GET")
	api.HandleFunc("/strategies/{strategy_id}/run", strategyHandler.Run).Methods("POST")
	api.HandleFunc("/strategies/exit-sweep", strategyHandler.ExitSweep).Methods("POST")

	// Trading endpoints
	api.HandleFunc("/trading/account", tradingHandler.GetAccount).Methods("GET")
	api.HandleFunc("/trading/positions", tradingHandler.GetPositions).Methods("GET")
	api.HandleFunc("/trading/orders", tradingHandler.GetOrders).Methods("GET")
	api.HandleFunc("/trading/orders", tradingHandler.SubmitBuy).Methods("POST")

	// Regime endpoint
	api.HandleFunc("/regime", regimeHandler.GetRegime).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "stonjarli-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
