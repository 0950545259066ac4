package api

import (
	"net/http"

	"github.com/okian/gridiron/internal/adapters/repository"
)

// RunHandler serves the published run description.
type RunHandler struct {
	store repository.Store
}

// NewRunHandler creates a new run handler.
func NewRunHandler(store repository.Store) *RunHandler {
	return &RunHandler{store: store}
}

// HandleRun handles GET /run.
func (h *RunHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	info, err := h.store.Info(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
