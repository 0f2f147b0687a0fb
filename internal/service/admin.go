package service

import (
	"context"

	"github.com/studiohub/api/internal/model"
)

// AdminUserService implements user administration: role and verification
// management plus account removal. All operations require a privileged
// actor; role changes additionally follow the super-admin rule.
type AdminUserService struct {
	userRepo UserRepository
	access   *AccessService
	tokens   *TokenService
}

// AdminUserServiceConfig holds configuration for the admin user service
type AdminUserServiceConfig struct {
	UserRepo UserRepository
	Access   *AccessService
	Tokens   *TokenService
}

// NewAdminUserService creates a new admin user service
func NewAdminUserService(cfg AdminUserServiceConfig) *AdminUserService {
	return &AdminUserService{
		userRepo: cfg.UserRepo,
		access:   cfg.Access,
		tokens:   cfg.Tokens,
	}
}

// ListUsers returns every account; privileged only
func (s *AdminUserService) ListUsers(ctx context.Context, actor *model.User) ([]*model.User, error) {
	if !s.access.IsPrivileged(actor) {
		return nil, ErrForbidden
	}
	return s.userRepo.List(ctx)
}

// GetUser returns one account; privileged only
func (s *AdminUserService) GetUser(ctx context.Context, actor *model.User, id string) (*model.User, error) {
	if !s.access.IsPrivileged(actor) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SetRole changes a user's role. Privileged actors may change others' roles;
// only the super admin may change their own.
func (s *AdminUserService) SetRole(ctx context.Context, actor *model.User, id string, role model.UserRole) (*model.User, error) {
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	if !s.access.CanChangeRole(actor, target) {
		if actor != nil && target != nil && actor.ID == target.ID {
			return nil, ErrCannotChangeOwnRole
		}
		return nil, ErrForbidden
	}

	if err := s.userRepo.SetRole(ctx, id, role); err != nil {
		return nil, err
	}
	target.Role = role
	return target, nil
}

// SetVerified toggles the admin-approval flag. This is feature availability
// only; it never changes what CanModify allows.
func (s *AdminUserService) SetVerified(ctx context.Context, actor *model.User, id string, verified bool) (*model.User, error) {
	if !s.access.IsPrivileged(actor) {
		return nil, ErrForbidden
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.SetVerified(ctx, id, verified); err != nil {
		return nil, err
	}
	target.IsVerified = verified
	return target, nil
}

// DeleteUser removes an account and revokes its sessions; privileged only
func (s *AdminUserService) DeleteUser(ctx context.Context, actor *model.User, id string) error {
	if !s.access.IsPrivileged(actor) {
		return ErrForbidden
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.tokens != nil {
		_ = s.tokens.RevokeAllUserTokens(ctx, id)
	}
	return nil
}
