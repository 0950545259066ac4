package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/gridiron/internal/adapters/repository"
)

// SeasonHandler serves per-season reports.
type SeasonHandler struct {
	store repository.Store
}

// NewSeasonHandler creates a new season handler.
func NewSeasonHandler(store repository.Store) *SeasonHandler {
	return &SeasonHandler{store: store}
}

type seasonList struct {
	Seasons []string          `json:"seasons"`
	Failed  map[string]string `json:"failed_seasons"`
}

// HandleList handles GET /seasons.
func (h *SeasonHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	info, err := h.store.Info(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seasonList{Seasons: info.Seasons, Failed: info.Failed})
}

// HandleSeason handles GET /seasons/{season}.
func (h *SeasonHandler) HandleSeason(w http.ResponseWriter, r *http.Request) {
	rep, err := h.store.Season(r.Context(), r.PathValue("season"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleStandings handles GET /seasons/{season}/standings.
func (h *SeasonHandler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.Standings(r.Context(), r.PathValue("season"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleWeek handles GET /seasons/{season}/weeks/{week}.
func (h *SeasonHandler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("week")
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("week %q: %w", raw, ErrBadRequest))
		return
	}
	recap, err := h.store.Week(r.Context(), r.PathValue("season"), week)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recap)
}
