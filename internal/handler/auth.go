package handler

import (
	"net/http"

	"github.com/studiohub/api/internal/middleware"
	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/internal/service"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	regService  *service.RegistrationService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, regService *service.RegistrationService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		regService:  regService,
	}
}

// InitiateRequest represents the first registration step
type InitiateRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactHandle string `json:"contact_handle,omitempty"`
}

// ConfirmRequest carries the emailed confirmation code
type ConfirmRequest struct {
	Code string `json:"code"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Name          string  `json:"name"`
	AvatarURL     *string `json:"avatar_url,omitempty"`
	ContactHandle *string `json:"contact_handle,omitempty"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
	IsVerified      bool    `json:"is_verified"`
	IsEmailVerified bool    `json:"is_email_verified"`
	ContactHandle   *string `json:"contact_handle,omitempty"`
	CreatedOn       string  `json:"created_on"`
	UpdatedOn       string  `json:"updated_on"`
}

// TokenResponse represents issued tokens in API responses
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthResponse combines user info with tokens
type AuthResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}

// RegisterInitiate handles POST /v1/auth/register/initiate.
// The confirmation code travels over the side channel, never this response.
func (h *AuthHandler) RegisterInitiate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, model.NewMethodNotAllowedError("POST"))
		return
	}

	var req InitiateRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	_, err := h.regService.Initiate(r.Context(), service.InitiateRequest{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		ContactHandle: req.ContactHandle,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusAccepted, map[string]string{
		"status": "confirmation_pending",
	}, map[string]string{
		"confirm": "/v1/auth/register/confirm",
	})
}

// RegisterConfirm handles POST /v1/auth/register/confirm
func (h *AuthHandler) RegisterConfirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, model.NewMethodNotAllowedError("POST"))
		return
	}

	var req ConfirmRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.regService.Confirm(r.Context(), req.Code)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	response := AuthResponse{
		User:  toUserResponse(result.User),
		Token: toTokenResponse(result.TokenPair),
	}

	WriteData(w, http.StatusCreated, response, map[string]string{
		"self": "/v1/auth/me",
	})
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, model.NewMethodNotAllowedError("POST"))
		return
	}

	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	response := AuthResponse{
		User:  toUserResponse(result.User),
		Token: toTokenResponse(result.TokenPair),
	}

	WriteData(w, http.StatusOK, response, map[string]string{
		"self": "/v1/auth/me",
	})
}

// Refresh handles POST /v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, model.NewMethodNotAllowedError("POST"))
		return
	}

	var req RefreshRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if req.RefreshToken == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "refresh_token", Message: "refresh_token is required"},
		}))
		return
	}

	tokenPair, err := h.authService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, toTokenResponse(tokenPair), nil)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, model.NewMethodNotAllowedError("POST"))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, map[string]string{"status": "logged_out"}, nil)
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, model.NewMethodNotAllowedError("GET"))
		return
	}

	actor := actorFromRequest(w, r, h.authService)
	if actor == nil {
		return
	}

	WriteData(w, http.StatusOK, toUserResponse(actor), map[string]string{
		"self": "/v1/auth/me",
	})
}

// UpdateMe handles PATCH /v1/auth/me
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req UpdateProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), userID, service.UpdateProfileRequest{
		Name:          req.Name,
		AvatarURL:     req.AvatarURL,
		ContactHandle: req.ContactHandle,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, toUserResponse(user), nil)
}

// ChangePassword handles POST /v1/auth/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req ChangePasswordRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, map[string]string{"status": "password_changed"}, nil)
}

// Helper functions

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            string(user.Role),
		AvatarURL:       user.AvatarURL,
		IsVerified:      user.IsVerified,
		IsEmailVerified: user.IsEmailVerified,
		ContactHandle:   user.ContactHandle,
		CreatedOn:       user.CreatedOn.Format("2006-01-02T15:04:05Z"),
		UpdatedOn:       user.UpdatedOn.Format("2006-01-02T15:04:05Z"),
	}
}

func toTokenResponse(tokenPair *service.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    tokenPair.TokenType,
		ExpiresIn:    tokenPair.ExpiresIn,
	}
}
