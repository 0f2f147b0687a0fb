package handler

import (
	"net/http"
	"time"

	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/internal/service"
)

// EventHandler handles studio event HTTP requests
type EventHandler struct {
	svc   *service.EventService
	users UserLoader
}

// NewEventHandler creates a new event handler
func NewEventHandler(svc *service.EventService, users UserLoader) *EventHandler {
	return &EventHandler{svc: svc, users: users}
}

// CreateEventRequest represents an event creation request
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"image_url,omitempty"`
	Capacity    int       `json:"capacity"`
}

// UpdateEventRequest represents a partial event update
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Location    *string    `json:"location,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
}

// Create handles POST /v1/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req CreateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	event, err := h.svc.CreateEvent(r.Context(), actor, service.CreateEventRequest{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Capacity:    req.Capacity,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, event, map[string]string{
		"self": "/v1/events/" + event.ID,
	})
}

// List handles GET /v1/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteCollection(w, http.StatusOK, events, nil, nil)
}

// GetByID handles GET /v1/events/{id}
func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, event, nil)
}

// Update handles PATCH /v1/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req UpdateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	event, err := h.svc.UpdateEvent(r.Context(), actor, r.PathValue("id"), service.UpdateEventRequest{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Capacity:    req.Capacity,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, event, nil)
}

// Register handles POST /v1/events/{id}/register
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	event, err := h.svc.Register(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, event, nil)
}

// Unregister handles DELETE /v1/events/{id}/register
func (h *EventHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	event, err := h.svc.Unregister(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, event, nil)
}

// Delete handles DELETE /v1/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	if err := h.svc.DeleteEvent(r.Context(), actor, r.PathValue("id")); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}
