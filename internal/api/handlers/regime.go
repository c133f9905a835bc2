package handlers

import (
	"net/http"
	"time"

	"github.com/stonjarli/backend/internal/regime"
	"github.com/stonjarli/backend/pkg/logger"
)

// RegimeHandler exposes the current macro regime.
type RegimeHandler struct {
	classifier *regime.Classifier
	logger     *logger.Logger
}

// NewRegimeHandler creates a new regime handler
func NewRegimeHandler(classifier *regime.Classifier, log *logger.Logger) *RegimeHandler {
	return &RegimeHandler{
		classifier: classifier,
		logger:     log,
	}
}

// GetRegime returns the current regime classification
// GET /api/regime
func (h *RegimeHandler) GetRegime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	current := h.classifier.Classify(ctx)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"regime":        current,
		"classified_at": time.Now().UTC(),
	})
}
