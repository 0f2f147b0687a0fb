package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/studiohub/api/internal/model"
)

// CodeSender delivers a confirmation code over a side channel. Delivery is
// best-effort; the registration flow only needs the code to be matched, not
// the mechanism that carried it.
type CodeSender interface {
	SendCode(ctx context.Context, email, code string) error
}

// LogCodeSender writes codes to the structured log. Stands in for the real
// messaging side channel in development.
type LogCodeSender struct{}

// SendCode logs the code instead of delivering it
func (LogCodeSender) SendCode(_ context.Context, email, code string) error {
	slog.Info("registration code issued", "email", email, "code", code)
	return nil
}

// pendingRegistration is the staged, unconfirmed sign-up
type pendingRegistration struct {
	Name          string
	Email         string
	PasswordHash  string
	ContactHandle *string
	Code          string
}

// RegistrationService implements two-step email-code registration.
//
// Staging is a single slot: only one pending registration exists at a time,
// and a second Initiate overwrites the first. This is an accepted race; the
// flow is single-user-per-session.
type RegistrationService struct {
	userRepo     UserRepository
	tokenService *TokenService
	sender       CodeSender

	mu      sync.Mutex
	pending *pendingRegistration
}

// RegistrationServiceConfig holds configuration for the registration service
type RegistrationServiceConfig struct {
	UserRepo     UserRepository
	TokenService *TokenService
	Sender       CodeSender
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(cfg RegistrationServiceConfig) *RegistrationService {
	sender := cfg.Sender
	if sender == nil {
		sender = LogCodeSender{}
	}
	return &RegistrationService{
		userRepo:     cfg.UserRepo,
		tokenService: cfg.TokenService,
		sender:       sender,
	}
}

// InitiateRequest represents the first registration step
type InitiateRequest struct {
	Name          string
	Email         string
	Password      string
	ContactHandle string
}

// Initiate validates the sign-up fields, stages the registration and hands
// the generated code to the side channel. Returns the code so callers that
// own the delivery mechanism (tests, CLI) can use it directly.
func (s *RegistrationService) Initiate(ctx context.Context, req InitiateRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", ErrNameRequired
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !isValidEmail(email) {
		return "", ErrInvalidEmail
	}

	if err := validatePassword(req.Password); err != nil {
		return "", err
	}

	// Exactly one identity per email
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("registration lookup failed: %w", err)
	}
	if existing != nil {
		return "", ErrEmailAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return "", err
	}

	code := generateCode()

	s.mu.Lock()
	s.pending = &pendingRegistration{
		Name:          name,
		Email:         email,
		PasswordHash:  hash,
		ContactHandle: stringPtr(strings.TrimSpace(req.ContactHandle)),
		Code:          code,
	}
	s.mu.Unlock()

	if err := s.sender.SendCode(ctx, email, code); err != nil {
		// Delivery failure does not clear the slot; the code is still valid
		slog.Warn("registration code delivery failed", "email", email, "error", err)
	}

	return code, nil
}

// ConfirmResult represents a completed registration
type ConfirmResult struct {
	User      *model.User
	TokenPair *TokenPair
}

// Confirm completes registration when the submitted code matches the staged
// one. On success the durable identity is created with role blogger and the
// slot is cleared; a mismatch leaves the slot intact so the caller may retry.
func (s *RegistrationService) Confirm(ctx context.Context, submittedCode string) (*ConfirmResult, error) {
	s.mu.Lock()
	pending := s.pending
	s.mu.Unlock()

	if pending == nil {
		return nil, ErrNoPendingRegistration
	}
	if submittedCode != pending.Code {
		return nil, ErrCodeMismatch
	}

	user := &model.User{
		Name:            pending.Name,
		Email:           pending.Email,
		Role:            model.UserRoleBlogger,
		Hash:            &pending.PasswordHash,
		ContactHandle:   pending.ContactHandle,
		IsVerified:      false, // admin approval pending
		IsEmailVerified: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Slot clears only after the identity exists; a failed create keeps the
	// staged registration available for another attempt.
	s.mu.Lock()
	if s.pending == pending {
		s.pending = nil
	}
	s.mu.Unlock()

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &ConfirmResult{
		User:      user,
		TokenPair: tokenPair,
	}, nil
}

// HasPending reports whether a registration is currently staged
func (s *RegistrationService) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// generateCode produces a 4-digit numeric code uniform in [1000, 9999]
func generateCode() string {
	return fmt.Sprintf("%d", 1000+rand.Intn(9000))
}
