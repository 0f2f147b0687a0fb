package service

import "github.com/studiohub/api/internal/model"

// AccessService is the authorization gate: pure role-derived predicates with
// no side effects. An absent user fails every check.
//
// Verification (User.IsVerified) is a feature-availability flag and is
// deliberately not consulted here; it never grants or removes authority.
type AccessService struct {
	superAdminEmail string
}

// NewAccessService creates a new access service.
// superAdminEmail identifies the one account allowed to change its own role.
func NewAccessService(superAdminEmail string) *AccessService {
	return &AccessService{superAdminEmail: superAdminEmail}
}

// IsPrivileged reports whether the user holds any administrative role.
// False for nil and for role blogger.
func (s *AccessService) IsPrivileged(u *model.User) bool {
	return u.IsPrivileged()
}

// CanModify reports whether the user may mutate a resource owned by ownerID:
// any privileged user, or the owner themselves.
func (s *AccessService) CanModify(u *model.User, ownerID string) bool {
	if u == nil {
		return false
	}
	return u.IsPrivileged() || u.ID == ownerID
}

// IsSuperAdmin reports whether the user is the fixed super-admin identity
func (s *AccessService) IsSuperAdmin(u *model.User) bool {
	if u == nil || s.superAdminEmail == "" {
		return false
	}
	return u.Email == s.superAdminEmail
}

// CanChangeRole reports whether actor may change target's role. Privileged
// actors may change other users' roles; only the super admin may change
// their own (no self-escalation path for ordinary admins).
func (s *AccessService) CanChangeRole(actor, target *model.User) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.ID == target.ID {
		return s.IsSuperAdmin(actor)
	}
	return actor.IsPrivileged()
}
