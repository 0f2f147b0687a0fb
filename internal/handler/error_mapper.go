package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/internal/service"
)

// handleServiceError maps a service error to a problem response and writes
// it. Errors that fall through to a 500 are logged; mapped errors are the
// caller's fault and are not.
func handleServiceError(w http.ResponseWriter, err error) {
	problem := MapServiceError(err)
	if problem.Status == http.StatusInternalServerError {
		slog.Error("unhandled service error", "error", err)
	}
	WriteError(w, problem)
}

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// ===== Authentication Errors → 401 =====
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())
	case errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrRefreshTokenExpired),
		errors.Is(err, service.ErrRefreshTokenRevoked):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrCannotChangeOwnRole):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrBookingNotFound):
		return model.NewNotFoundError("booking")
	case errors.Is(err, service.ErrItemNotFound):
		return model.NewNotFoundError("inventory item")
	case errors.Is(err, service.ErrTicketNotFound):
		return model.NewNotFoundError("ticket")
	case errors.Is(err, service.ErrWishlistItemNotFound):
		return model.NewNotFoundError("wishlist item")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")
	case errors.Is(err, service.ErrTaskNotFound):
		return model.NewNotFoundError("task")
	case errors.Is(err, service.ErrNotificationNotFound):
		return model.NewNotFoundError("notification")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "credentials", Message: err.Error()}})

	case errors.Is(err, service.ErrNameRequired):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})

	case errors.Is(err, service.ErrNoPendingRegistration),
		errors.Is(err, service.ErrCodeMismatch):
		return model.NewValidationError([]model.FieldError{{Field: "code", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidRole):
		return model.NewValidationError([]model.FieldError{{Field: "role", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrResourceNameRequired),
		errors.Is(err, service.ErrInvalidBookingKind):
		return model.NewValidationError([]model.FieldError{{Field: "booking", Message: err.Error()}})

	case errors.Is(err, service.ErrItemNameRequired),
		errors.Is(err, service.ErrInvalidItemCategory),
		errors.Is(err, service.ErrInvalidItemStatus),
		errors.Is(err, service.ErrRenterRequired):
		return model.NewValidationError([]model.FieldError{{Field: "item", Message: err.Error()}})

	case errors.Is(err, service.ErrTicketTitleRequired),
		errors.Is(err, service.ErrInvalidTicketCategory),
		errors.Is(err, service.ErrInvalidTicketStatus):
		return model.NewValidationError([]model.FieldError{{Field: "ticket", Message: err.Error()}})

	case errors.Is(err, service.ErrWishlistTitleRequired),
		errors.Is(err, service.ErrInvalidWishlistCategory),
		errors.Is(err, service.ErrInvalidWishlistStatus):
		return model.NewValidationError([]model.FieldError{{Field: "wishlist", Message: err.Error()}})

	case errors.Is(err, service.ErrCommentTextRequired):
		return model.NewValidationError([]model.FieldError{{Field: "text", Message: err.Error()}})

	case errors.Is(err, service.ErrEventTitleRequired):
		return model.NewValidationError([]model.FieldError{{Field: "event", Message: err.Error()}})

	case errors.Is(err, service.ErrTaskTitleRequired),
		errors.Is(err, service.ErrInvalidTaskCategory),
		errors.Is(err, service.ErrInvalidTaskDate):
		return model.NewValidationError([]model.FieldError{{Field: "task", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidSeverity):
		return model.NewValidationError([]model.FieldError{{Field: "severity", Message: err.Error()}})

	// State errors → 422
	case errors.Is(err, service.ErrInvalidTransition):
		return model.NewValidationError([]model.FieldError{{Field: "status", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("an unexpected error occurred")
	}
}
