package handler

import (
	"net/http"

	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/internal/service"
)

// WishlistHandler handles wishlist HTTP requests
type WishlistHandler struct {
	svc   *service.WishlistService
	users UserLoader
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(svc *service.WishlistService, users UserLoader) *WishlistHandler {
	return &WishlistHandler{svc: svc, users: users}
}

// CreateWishlistRequest represents a wishlist proposal creation request
type CreateWishlistRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// SetWishlistStatusRequest represents a wishlist status change
type SetWishlistStatusRequest struct {
	Status string `json:"status"`
}

// Create handles POST /v1/wishlist
func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req CreateWishlistRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	item, err := h.svc.CreateItem(r.Context(), actor, service.CreateWishlistRequest{
		Title:       req.Title,
		Description: req.Description,
		Category:    model.WishlistCategory(req.Category),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, item, map[string]string{
		"self": "/v1/wishlist/" + item.ID,
	})
}

// List handles GET /v1/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteCollection(w, http.StatusOK, items, nil, nil)
}

// GetByID handles GET /v1/wishlist/{id}
func (h *WishlistHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, item, nil)
}

// ToggleVote handles POST /v1/wishlist/{id}/vote. Votes have set semantics:
// a second toggle from the same user removes the vote.
func (h *WishlistHandler) ToggleVote(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	item, err := h.svc.ToggleVote(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, item, nil)
}

// SetStatus handles PATCH /v1/wishlist/{id}/status
func (h *WishlistHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req SetWishlistStatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	item, err := h.svc.SetStatus(r.Context(), actor, r.PathValue("id"), model.WishlistStatus(req.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, item, nil)
}

// AddComment handles POST /v1/wishlist/{id}/comments
func (h *WishlistHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req AddCommentRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	comment, err := h.svc.AddComment(r.Context(), actor, r.PathValue("id"), req.Text, req.Official)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, comment, nil)
}

// Delete handles DELETE /v1/wishlist/{id}
func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	if err := h.svc.DeleteItem(r.Context(), actor, r.PathValue("id")); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}
