package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/studiohub/api/internal/model"
)

func setupRegistrationService(t *testing.T) (*RegistrationService, *mockUserRepo) {
	t.Helper()

	userRepo := newMockUserRepo()
	tokenService := newTestTokenService(t, newMockTokenRepo())

	regService := NewRegistrationService(RegistrationServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})

	return regService, userRepo
}

func TestRegistrationService_Initiate_GeneratesFourDigitCode(t *testing.T) {
	regService, _ := setupRegistrationService(t)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		code, err := regService.Initiate(ctx, InitiateRequest{
			Name:     "Anna",
			Email:    "anna@studio.test",
			Password: "password123",
		})
		if err != nil {
			t.Fatalf("Initiate failed: %v", err)
		}
		if len(code) != 4 {
			t.Fatalf("expected 4-digit code, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric", code)
		}
		if n < 1000 || n > 9999 {
			t.Fatalf("code %d out of range [1000, 9999]", n)
		}
	}
}

func TestRegistrationService_Initiate_DuplicateEmail_Fails(t *testing.T) {
	regService, userRepo := setupRegistrationService(t)
	ctx := context.Background()

	seedUser(t, userRepo, "anna@studio.test", "password123", model.UserRoleBlogger)

	_, err := regService.Initiate(ctx, InitiateRequest{
		Name:     "Another Anna",
		Email:    "anna@studio.test",
		Password: "password456",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
	if regService.HasPending() {
		t.Error("failed initiate must not stage a registration")
	}
}

func TestRegistrationService_Initiate_Validation(t *testing.T) {
	regService, _ := setupRegistrationService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     InitiateRequest
		wantErr error
	}{
		{"missing name", InitiateRequest{Email: "a@b.test", Password: "password123"}, ErrNameRequired},
		{"whitespace name", InitiateRequest{Name: "   ", Email: "a@b.test", Password: "password123"}, ErrNameRequired},
		{"bad email", InitiateRequest{Name: "Anna", Email: "not-an-email", Password: "password123"}, ErrInvalidEmail},
		{"short password", InitiateRequest{Name: "Anna", Email: "a@b.test", Password: "short"}, ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := regService.Initiate(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegistrationService_Confirm_Success(t *testing.T) {
	regService, userRepo := setupRegistrationService(t)
	ctx := context.Background()

	code, err := regService.Initiate(ctx, InitiateRequest{
		Name:          "Anna",
		Email:         "anna@studio.test",
		Password:      "password123",
		ContactHandle: "@anna",
	})
	if err != nil {
		t.Fatalf("Initiate failed: %v", err)
	}

	result, err := regService.Confirm(ctx, code)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	user := result.User
	if user.Role != model.UserRoleBlogger {
		t.Errorf("expected role blogger, got %s", user.Role)
	}
	if user.IsVerified {
		t.Error("new account must start unverified")
	}
	if !user.IsEmailVerified {
		t.Error("confirmed registration must mark email verified")
	}
	if result.TokenPair.AccessToken == "" {
		t.Error("expected tokens issued on confirm")
	}
	if userRepo.emailIndex["anna@studio.test"] == nil {
		t.Error("expected user persisted")
	}
	if regService.HasPending() {
		t.Error("expected slot cleared after successful confirm")
	}
}

func TestRegistrationService_Confirm_NoPending(t *testing.T) {
	regService, _ := setupRegistrationService(t)

	_, err := regService.Confirm(context.Background(), "1234")
	if !errors.Is(err, ErrNoPendingRegistration) {
		t.Errorf("expected ErrNoPendingRegistration, got %v", err)
	}
}

func TestRegistrationService_Confirm_Mismatch_RetainsSlot(t *testing.T) {
	regService, _ := setupRegistrationService(t)
	ctx := context.Background()

	code, err := regService.Initiate(ctx, InitiateRequest{
		Name:     "Anna",
		Email:    "anna@studio.test",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Initiate failed: %v", err)
	}

	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}
	if _, err := regService.Confirm(ctx, wrong); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}
	if !regService.HasPending() {
		t.Fatal("mismatch must leave the staged registration intact")
	}

	// Correct code still works after a failed attempt
	if _, err := regService.Confirm(ctx, code); err != nil {
		t.Fatalf("retry with correct code failed: %v", err)
	}
}

func TestRegistrationService_Confirm_SecondConfirmFails(t *testing.T) {
	regService, _ := setupRegistrationService(t)
	ctx := context.Background()

	code, err := regService.Initiate(ctx, InitiateRequest{
		Name:     "Anna",
		Email:    "anna@studio.test",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Initiate failed: %v", err)
	}

	if _, err := regService.Confirm(ctx, code); err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}

	_, err = regService.Confirm(ctx, code)
	if !errors.Is(err, ErrNoPendingRegistration) {
		t.Errorf("expected ErrNoPendingRegistration on second confirm, got %v", err)
	}
}

func TestRegistrationService_Initiate_OverwritesPrevious(t *testing.T) {
	regService, userRepo := setupRegistrationService(t)
	ctx := context.Background()

	firstCode, err := regService.Initiate(ctx, InitiateRequest{
		Name:     "Anna",
		Email:    "anna@studio.test",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("first Initiate failed: %v", err)
	}

	secondCode, err := regService.Initiate(ctx, InitiateRequest{
		Name:     "Boris",
		Email:    "boris@studio.test",
		Password: "password456",
	})
	if err != nil {
		t.Fatalf("second Initiate failed: %v", err)
	}

	// Only the second staged registration can be confirmed. The first code
	// can collide with the second by chance; skip that run.
	if firstCode == secondCode {
		t.Skip("codes collided")
	}
	if _, err := regService.Confirm(ctx, firstCode); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected ErrCodeMismatch for overwritten registration, got %v", err)
	}

	result, err := regService.Confirm(ctx, secondCode)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if result.User.Email != "boris@studio.test" {
		t.Errorf("expected second registration to win, got %s", result.User.Email)
	}
	if userRepo.emailIndex["anna@studio.test"] != nil {
		t.Error("overwritten registration must not create a user")
	}
}

func TestRegistrationService_Confirm_CreateFailure_KeepsSlot(t *testing.T) {
	regService, userRepo := setupRegistrationService(t)
	ctx := context.Background()

	code, err := regService.Initiate(ctx, InitiateRequest{
		Name:     "Anna",
		Email:    "anna@studio.test",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Initiate failed: %v", err)
	}

	userRepo.createErr = errors.New("store unavailable")
	if _, err := regService.Confirm(ctx, code); err == nil {
		t.Fatal("expected error when create fails")
	}
	if !regService.HasPending() {
		t.Fatal("failed create must keep the staged registration")
	}

	userRepo.createErr = nil
	if _, err := regService.Confirm(ctx, code); err != nil {
		t.Fatalf("retry after store recovery failed: %v", err)
	}
}
