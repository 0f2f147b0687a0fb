package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
)

// ===== Token Errors =====
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
)

// ===== Registration Errors =====
var (
	ErrNameRequired          = errors.New("name is required")
	ErrNoPendingRegistration = errors.New("no pending registration")
	ErrCodeMismatch          = errors.New("confirmation code does not match")
)

// ===== Access Errors =====
var (
	ErrForbidden           = errors.New("not authorized to perform this action")
	ErrInvalidRole         = errors.New("invalid role")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
)

// ===== Booking Errors =====
var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidTimeRange     = errors.New("end time must be after start time")
	ErrResourceNameRequired = errors.New("resource name is required")
	ErrInvalidBookingKind   = errors.New("invalid booking kind")
	ErrInvalidTransition    = errors.New("invalid booking status transition")
)

// ===== Inventory Errors =====
var (
	ErrItemNotFound        = errors.New("inventory item not found")
	ErrItemNameRequired    = errors.New("item name is required")
	ErrInvalidItemCategory = errors.New("invalid item category")
	ErrInvalidItemStatus   = errors.New("invalid item status")
	ErrRenterRequired      = errors.New("renter info required for checked-out status")
)

// ===== Ticket Errors =====
var (
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrTicketTitleRequired   = errors.New("ticket title is required")
	ErrInvalidTicketCategory = errors.New("invalid ticket category")
	ErrInvalidTicketStatus   = errors.New("invalid ticket status")
)

// ===== Wishlist Errors =====
var (
	ErrWishlistItemNotFound    = errors.New("wishlist item not found")
	ErrWishlistTitleRequired   = errors.New("wishlist title is required")
	ErrInvalidWishlistCategory = errors.New("invalid wishlist category")
	ErrInvalidWishlistStatus   = errors.New("invalid wishlist status")
	ErrCommentTextRequired     = errors.New("comment text is required")
)

// ===== Event Errors =====
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventTitleRequired = errors.New("event title is required")
)

// ===== Task Errors =====
var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskTitleRequired   = errors.New("task title is required")
	ErrInvalidTaskCategory = errors.New("invalid task category")
	ErrInvalidTaskDate     = errors.New("invalid task date")
)

// ===== Notification Errors =====
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidSeverity      = errors.New("invalid notification severity")
)
