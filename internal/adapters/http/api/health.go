package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/pkg/metrics"
)

// HealthHandler handles liveness and metrics requests.
type HealthHandler struct {
	store   repository.Store
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store repository.Store) *HealthHandler {
	return &HealthHandler{
		store:   store,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	Published bool   `json:"published"`
}

// HandleHealth handles GET /healthz. The service is healthy before the first
// run is published; Published tells readers whether data is available.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_, err := h.store.Info(r.Context())
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Published: err == nil})
}

// HandleMetrics handles GET /metrics.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
