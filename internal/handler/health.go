package handler

import (
	"net/http"

	"github.com/studiohub/api/internal/service"
)

// HealthHandler reports process liveness and domain store reachability
type HealthHandler struct {
	snapshots *service.SnapshotService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(snapshots *service.SnapshotService) *HealthHandler {
	return &HealthHandler{snapshots: snapshots}
}

// Check handles GET /health. The process answers even when the store is
// unreachable; a degraded snapshot flag downgrades the reported status
// without failing the check.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if h.snapshots.Degraded() {
		status = "degraded"
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": status,
	})
}
