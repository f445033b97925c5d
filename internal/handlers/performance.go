package handlers

import (
	"net/http"

	"github.com/alphapie/pieview/internal/common"
	"github.com/alphapie/pieview/internal/loader"
)

// PerformanceHandler serves the full portfolio view-model as JSON.
type PerformanceHandler struct {
	logger *common.Logger
	loader *loader.Loader
}

// NewPerformanceHandler creates a new performance handler.
func NewPerformanceHandler(logger *common.Logger, l *loader.Loader) *PerformanceHandler {
	return &PerformanceHandler{logger: logger, loader: l}
}

// ServeHTTP handles GET /api/performance.
func (h *PerformanceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	perf, err := h.loader.Load(r.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to load portfolio data")
		}
		WriteError(w, http.StatusServiceUnavailable, "portfolio data unavailable")
		return
	}

	WriteJSON(w, http.StatusOK, perf)
}
