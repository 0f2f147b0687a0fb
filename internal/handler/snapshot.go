package handler

import (
	"net/http"

	"github.com/studiohub/api/internal/middleware"
	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/internal/service"
)

// SnapshotHandler handles domain store snapshot HTTP requests
type SnapshotHandler struct {
	svc *service.SnapshotService
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(svc *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{svc: svc}
}

// Get handles GET /v1/snapshot: the full domain store in one pass. Clients
// re-fetch this after every mutation rather than patching local state.
func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	snapshot, err := h.svc.Load(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, snapshot, nil)
}
