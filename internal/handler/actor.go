package handler

import (
	"context"
	"net/http"

	"github.com/studiohub/api/internal/middleware"
	"github.com/studiohub/api/internal/model"
)

// UserLoader resolves the authenticated user record. Domain services take the
// full actor, not just the token claims, so handlers load it once per request.
type UserLoader interface {
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
}

// actorFromRequest loads the authenticated user for the request. On failure
// it writes the problem response and returns nil; callers must return
// immediately when they get nil back.
func actorFromRequest(w http.ResponseWriter, r *http.Request, users UserLoader) *model.User {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return nil
	}

	actor, err := users.GetUserByID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return nil
	}
	return actor
}
