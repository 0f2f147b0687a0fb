package handler

import (
	"net/http"

	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/internal/service"
)

// AdminUsersHandler handles admin user management HTTP requests
type AdminUsersHandler struct {
	svc   *service.AdminUserService
	users UserLoader
}

// NewAdminUsersHandler creates a new admin users handler
func NewAdminUsersHandler(svc *service.AdminUserService, users UserLoader) *AdminUsersHandler {
	return &AdminUsersHandler{svc: svc, users: users}
}

// SetRoleRequest represents a role change request
type SetRoleRequest struct {
	Role string `json:"role"`
}

// SetVerifiedRequest represents a verification flag change
type SetVerifiedRequest struct {
	IsVerified bool `json:"is_verified"`
}

// List handles GET /v1/admin/users
func (h *AdminUsersHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	list, err := h.svc.ListUsers(r.Context(), actor)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]UserResponse, 0, len(list))
	for _, u := range list {
		responses = append(responses, toUserResponse(u))
	}

	WriteCollection(w, http.StatusOK, responses, nil, nil)
}

// GetByID handles GET /v1/admin/users/{id}
func (h *AdminUsersHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	user, err := h.svc.GetUser(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, toUserResponse(user), nil)
}

// SetRole handles PATCH /v1/admin/users/{id}/role
func (h *AdminUsersHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req SetRoleRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.svc.SetRole(r.Context(), actor, r.PathValue("id"), model.UserRole(req.Role))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, toUserResponse(user), nil)
}

// SetVerified handles PATCH /v1/admin/users/{id}/verify
func (h *AdminUsersHandler) SetVerified(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req SetVerifiedRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.svc.SetVerified(r.Context(), actor, r.PathValue("id"), req.IsVerified)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, toUserResponse(user), nil)
}

// Delete handles DELETE /v1/admin/users/{id}
func (h *AdminUsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	if err := h.svc.DeleteUser(r.Context(), actor, r.PathValue("id")); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}
