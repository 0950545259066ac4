package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/domain/alltime"
)

// AllTimeHandler serves the cross-season statistics.
type AllTimeHandler struct {
	store repository.Store
}

// NewAllTimeHandler creates a new all-time handler.
func NewAllTimeHandler(store repository.Store) *AllTimeHandler {
	return &AllTimeHandler{store: store}
}

// HandleStandings handles GET /alltime/standings.
func (h *AllTimeHandler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.AllTime(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Managers)
}

type headToHeadResponse struct {
	Order      []string                          `json:"order"`
	Display    map[string]string                 `json:"display"`
	HeadToHead map[string]map[string]alltime.H2H `json:"head_to_head"`
}

// HandleHeadToHead handles GET /alltime/head-to-head.
func (h *AllTimeHandler) HandleHeadToHead(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.AllTime(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, headToHeadResponse{Order: res.Order, Display: res.Display, HeadToHead: res.HeadToHead})
}

// HandleManager handles GET /alltime/managers/{id}.
func (h *AllTimeHandler) HandleManager(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.Manager(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// HandleHighScores handles GET /alltime/high-scores?limit=N. Without a limit
// the full published tables are returned.
func (h *AllTimeHandler) HandleHighScores(w http.ResponseWriter, r *http.Request) {
	tables, err := h.store.HighScores(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("limit %q: %w", raw, ErrBadRequest))
			return
		}
		tables = alltime.HighScores(tables.Teams, tables.Players, n)
	}
	writeJSON(w, http.StatusOK, tables)
}
