package model

import "time"

// UserRole represents the role of a user in the studio
type UserRole string

const (
	UserRoleBlogger       UserRole = "blogger"        // Default role for new accounts
	UserRoleStudioAdmin   UserRole = "studio_admin"   // Manages rooms, bookings, inventory
	UserRoleProducerAdmin UserRole = "producer_admin" // Manages producer-center resources and events
	UserRoleTechAdmin     UserRole = "tech_admin"     // Manages equipment and tickets
)

// ValidRole reports whether r is one of the fixed role enumeration values.
func ValidRole(r UserRole) bool {
	switch r {
	case UserRoleBlogger, UserRoleStudioAdmin, UserRoleProducerAdmin, UserRoleTechAdmin:
		return true
	}
	return false
}

// User represents a studio member account
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            UserRole  `json:"role"`
	Hash            *string   `json:"-"` // Never expose password hash
	AvatarURL       *string   `json:"avatar_url,omitempty"`
	IsVerified      bool      `json:"is_verified"`       // Admin approval; gates feature availability only
	IsEmailVerified bool      `json:"is_email_verified"` // Email confirmation via registration code
	ContactHandle   *string   `json:"contact_handle,omitempty"`
	CreatedOn       time.Time `json:"created_on"`
	UpdatedOn       time.Time `json:"updated_on"`
}

// IsPrivileged returns true if the user holds any administrative role.
func (u *User) IsPrivileged() bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case UserRoleStudioAdmin, UserRoleProducerAdmin, UserRoleTechAdmin:
		return true
	}
	return false
}

// TokenClaims represents extracted JWT claims
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
}
