// Package api serves the published run over HTTP as read-only JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/pkg/logger"
)

// Server wires HTTP routes for the read API.
type Server struct {
	healthHandler  *HealthHandler
	runHandler     *RunHandler
	seasonHandler  *SeasonHandler
	allTimeHandler *AllTimeHandler
	logger         logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(store repository.Store, opts ...Option) *Server {
	s := &Server{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler(store)
	s.runHandler = NewRunHandler(store)
	s.seasonHandler = NewSeasonHandler(store)
	s.allTimeHandler = NewAllTimeHandler(store)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("GET /run", MetricsMiddleware(s.runHandler.HandleRun, "run"))
	mux.HandleFunc("GET /seasons", MetricsMiddleware(s.seasonHandler.HandleList, "seasons"))
	mux.HandleFunc("GET /seasons/{season}", MetricsMiddleware(s.seasonHandler.HandleSeason, "season"))
	mux.HandleFunc("GET /seasons/{season}/standings", MetricsMiddleware(s.seasonHandler.HandleStandings, "season_standings"))
	mux.HandleFunc("GET /seasons/{season}/weeks/{week}", MetricsMiddleware(s.seasonHandler.HandleWeek, "season_week"))
	mux.HandleFunc("GET /alltime/standings", MetricsMiddleware(s.allTimeHandler.HandleStandings, "alltime_standings"))
	mux.HandleFunc("GET /alltime/head-to-head", MetricsMiddleware(s.allTimeHandler.HandleHeadToHead, "alltime_h2h"))
	mux.HandleFunc("GET /alltime/managers/{id}", MetricsMiddleware(s.allTimeHandler.HandleManager, "alltime_manager"))
	mux.HandleFunc("GET /alltime/high-scores", MetricsMiddleware(s.allTimeHandler.HandleHighScores, "alltime_high_scores"))
	s.logger.Debug(ctx, "api routes registered")
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeStoreError maps read model errors to status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotPublished):
		writeError(w, http.StatusServiceUnavailable, "not_published", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
