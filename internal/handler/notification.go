package handler

import (
	"net/http"

	"github.com/studiohub/api/internal/middleware"
	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/internal/service"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	svc *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List handles GET /v1/notifications: the caller's notifications plus the
// unread count.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	notifications, err := h.svc.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	unread, err := h.svc.UnreadCount(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"unread_count":  unread,
	}, nil)
}

// MarkRead handles POST /v1/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.svc.MarkRead(r.Context(), r.PathValue("id"), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, map[string]string{"status": "read"}, nil)
}

// MarkAllRead handles POST /v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.svc.MarkAllRead(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, map[string]string{"status": "read"}, nil)
}
