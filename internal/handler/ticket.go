package handler

import (
	"net/http"

	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/internal/service"
)

// TicketHandler handles request ticket HTTP requests
type TicketHandler struct {
	svc   *service.TicketService
	users UserLoader
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(svc *service.TicketService, users UserLoader) *TicketHandler {
	return &TicketHandler{svc: svc, users: users}
}

// CreateTicketRequest represents a ticket creation request
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// SetTicketStatusRequest represents a ticket status change
type SetTicketStatusRequest struct {
	Status string `json:"status"`
}

// AssignTicketRequest represents a ticket assignment. A null assignee
// clears the assignment.
type AssignTicketRequest struct {
	AssignedTo *string `json:"assigned_to"`
}

// AddCommentRequest represents a comment on a ticket or wishlist item
type AddCommentRequest struct {
	Text     string `json:"text"`
	Official bool   `json:"official,omitempty"`
}

// Create handles POST /v1/tickets
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req CreateTicketRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	ticket, err := h.svc.CreateTicket(r.Context(), actor, service.CreateTicketRequest{
		Title:       req.Title,
		Description: req.Description,
		Category:    model.TicketCategory(req.Category),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, ticket, map[string]string{
		"self": "/v1/tickets/" + ticket.ID,
	})
}

// List handles GET /v1/tickets
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.svc.ListTickets(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteCollection(w, http.StatusOK, tickets, nil, nil)
}

// GetByID handles GET /v1/tickets/{id}
func (h *TicketHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.svc.GetTicket(r.Context(), r.PathValue("id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, ticket, nil)
}

// SetStatus handles PATCH /v1/tickets/{id}/status
func (h *TicketHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req SetTicketStatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	ticket, err := h.svc.SetStatus(r.Context(), actor, r.PathValue("id"), model.TicketStatus(req.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, ticket, nil)
}

// Assign handles PATCH /v1/tickets/{id}/assignee
func (h *TicketHandler) Assign(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req AssignTicketRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	ticket, err := h.svc.Assign(r.Context(), actor, r.PathValue("id"), req.AssignedTo)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, ticket, nil)
}

// AddComment handles POST /v1/tickets/{id}/comments
func (h *TicketHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req AddCommentRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	comment, err := h.svc.AddComment(r.Context(), actor, r.PathValue("id"), req.Text)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, comment, nil)
}

// Delete handles DELETE /v1/tickets/{id}
func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	if err := h.svc.DeleteTicket(r.Context(), actor, r.PathValue("id")); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}
