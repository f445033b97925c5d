package handlers

import (
	"net/http"

	"github.com/alphapie/pieview/internal/common"
	"github.com/alphapie/pieview/internal/config"
)

// HealthHandler answers liveness probes. The portal has no backing
// services to check: if the process answers, it is healthy. Data-layer
// problems surface as 503s on the data endpoints instead.
type HealthHandler struct {
	logger *common.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(logger *common.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "pieview",
		"version": config.GetVersion(),
	})
}
