package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/pkg/jwt"
)

// Mock implementations

type mockUserRepo struct {
	users      map[string]*model.User
	emailIndex map[string]*model.User
	createErr  error
	getErr     error
	updateErr  error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:      make(map[string]*model.User),
		emailIndex: make(map[string]*model.User),
	}
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "user:" + user.Email
	user.CreatedOn = time.Now()
	user.UpdatedOn = time.Now()
	m.users[user.ID] = user
	m.emailIndex[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.users[id], nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.emailIndex[email], nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	result := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.users[user.ID] = user
	m.emailIndex[user.Email] = user
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID, hash string) error {
	if user, ok := m.users[userID]; ok {
		user.Hash = &hash
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	if user, ok := m.users[id]; ok {
		delete(m.emailIndex, user.Email)
		delete(m.users, id)
	}
	return nil
}

func (m *mockUserRepo) SetEmailVerified(ctx context.Context, userID string, verified bool) error {
	if user, ok := m.users[userID]; ok {
		user.IsEmailVerified = verified
	}
	return nil
}

func (m *mockUserRepo) SetVerified(ctx context.Context, userID string, verified bool) error {
	if user, ok := m.users[userID]; ok {
		user.IsVerified = verified
	}
	return nil
}

func (m *mockUserRepo) SetRole(ctx context.Context, userID string, role model.UserRole) error {
	if user, ok := m.users[userID]; ok {
		user.Role = role
	}
	return nil
}

type mockTokenRepo struct {
	tokens map[string]*RefreshToken
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{
		tokens: make(map[string]*RefreshToken),
	}
}

func (m *mockTokenRepo) CreateRefreshToken(ctx context.Context, token *RefreshToken) error {
	m.tokens[token.TokenHash] = token
	return nil
}

func (m *mockTokenRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (*RefreshToken, error) {
	return m.tokens[hash], nil
}

func (m *mockTokenRepo) RevokeRefreshToken(ctx context.Context, hash string) error {
	if t, ok := m.tokens[hash]; ok {
		t.Revoked = true
	}
	return nil
}

func (m *mockTokenRepo) RevokeAllUserTokens(ctx context.Context, userID string) error {
	for _, t := range m.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (m *mockTokenRepo) DeleteExpiredTokens(ctx context.Context) error {
	now := time.Now()
	for hash, t := range m.tokens {
		if t.ExpiresAt.Before(now) {
			delete(m.tokens, hash)
		}
	}
	return nil
}

func newTestTokenService(t *testing.T, tokenRepo TokenRepository) *TokenService {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate test RSA key: %v", err)
	}

	jwtService := jwt.NewTestService(privateKey, "test-issuer", 15*time.Minute)

	return NewTokenService(TokenServiceConfig{
		JWTService:      jwtService,
		TokenRepo:       tokenRepo,
		RefreshDuration: 24 * time.Hour,
	})
}

// Test helper to create auth service with mocks
func setupAuthService(t *testing.T) (*AuthService, *mockUserRepo, *mockTokenRepo) {
	t.Helper()

	userRepo := newMockUserRepo()
	tokenRepo := newMockTokenRepo()
	tokenService := newTestTokenService(t, tokenRepo)

	authService := NewAuthService(AuthServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})

	return authService, userRepo, tokenRepo
}

func seedUser(t *testing.T, userRepo *mockUserRepo, email, password string, role model.UserRole) *model.User {
	t.Helper()

	hash, err := hashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &model.User{
		Name:  "Test User",
		Email: email,
		Role:  role,
		Hash:  &hash,
	}
	if err := userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// Tests

func TestAuthService_Login_Success(t *testing.T) {
	authService, userRepo, _ := setupAuthService(t)
	ctx := context.Background()

	seedUser(t, userRepo, "anna@studio.test", "password123", model.UserRoleBlogger)

	result, err := authService.Login(ctx, LoginRequest{
		Email:    "anna@studio.test",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.User.Email != "anna@studio.test" {
		t.Errorf("expected email anna@studio.test, got %s", result.User.Email)
	}
	if result.TokenPair.AccessToken == "" {
		t.Error("expected access token to be issued")
	}
	if result.TokenPair.RefreshToken == "" {
		t.Error("expected refresh token to be issued")
	}
}

func TestAuthService_Login_WrongPassword_ReturnsInvalidCredentials(t *testing.T) {
	authService, userRepo, _ := setupAuthService(t)
	ctx := context.Background()

	seedUser(t, userRepo, "anna@studio.test", "password123", model.UserRoleBlogger)

	_, err := authService.Login(ctx, LoginRequest{
		Email:    "anna@studio.test",
		Password: "wrong-password",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail_ReturnsInvalidCredentials(t *testing.T) {
	authService, _, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := authService.Login(ctx, LoginRequest{
		Email:    "nobody@studio.test",
		Password: "password123",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_GatewayError_NotInvalidCredentials(t *testing.T) {
	// A provider/gateway failure must stay distinguishable from bad credentials
	authService, userRepo, _ := setupAuthService(t)
	ctx := context.Background()

	gatewayErr := errors.New("connection refused")
	userRepo.getErr = gatewayErr

	_, err := authService.Login(ctx, LoginRequest{
		Email:    "anna@studio.test",
		Password: "password123",
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("gateway failure must not masquerade as invalid credentials")
	}
	if !errors.Is(err, gatewayErr) {
		t.Errorf("expected wrapped gateway error, got %v", err)
	}
}

func TestAuthService_Login_EmailNormalized(t *testing.T) {
	authService, userRepo, _ := setupAuthService(t)
	ctx := context.Background()

	seedUser(t, userRepo, "anna@studio.test", "password123", model.UserRoleBlogger)

	result, err := authService.Login(ctx, LoginRequest{
		Email:    "  ANNA@Studio.Test ",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.User.Email != "anna@studio.test" {
		t.Errorf("expected normalized email, got %s", result.User.Email)
	}
}

func TestAuthService_RefreshTokens_RotatesToken(t *testing.T) {
	authService, userRepo, tokenRepo := setupAuthService(t)
	ctx := context.Background()

	seedUser(t, userRepo, "anna@studio.test", "password123", model.UserRoleBlogger)
	result, err := authService.Login(ctx, LoginRequest{
		Email:    "anna@studio.test",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	newPair, err := authService.RefreshTokens(ctx, result.TokenPair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshTokens failed: %v", err)
	}
	if newPair.RefreshToken == result.TokenPair.RefreshToken {
		t.Error("expected a new refresh token after rotation")
	}

	// Old token is single-use
	oldHash := hashToken(result.TokenPair.RefreshToken)
	stored := tokenRepo.tokens[oldHash]
	if stored == nil || !stored.Revoked {
		t.Error("expected old refresh token to be revoked")
	}
}

func TestAuthService_RefreshTokens_ReusedToken_Fails(t *testing.T) {
	authService, userRepo, _ := setupAuthService(t)
	ctx := context.Background()

	seedUser(t, userRepo, "anna@studio.test", "password123", model.UserRoleBlogger)
	result, err := authService.Login(ctx, LoginRequest{
		Email:    "anna@studio.test",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := authService.RefreshTokens(ctx, result.TokenPair.RefreshToken); err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}

	_, err = authService.RefreshTokens(ctx, result.TokenPair.RefreshToken)
	if !errors.Is(err, ErrRefreshTokenRevoked) {
		t.Errorf("expected ErrRefreshTokenRevoked on reuse, got %v", err)
	}
}

func TestAuthService_Logout_RevokesAllTokens(t *testing.T) {
	authService, userRepo, tokenRepo := setupAuthService(t)
	ctx := context.Background()

	user := seedUser(t, userRepo, "anna@studio.test", "password123", model.UserRoleBlogger)
	if _, err := authService.Login(ctx, LoginRequest{Email: "anna@studio.test", Password: "password123"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := authService.Logout(ctx, user.ID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	for _, stored := range tokenRepo.tokens {
		if stored.UserID == user.ID && !stored.Revoked {
			t.Error("expected all user tokens revoked after logout")
		}
	}
}

func TestAuthService_ChangePassword_WrongOld_Fails(t *testing.T) {
	authService, userRepo, _ := setupAuthService(t)
	ctx := context.Background()

	user := seedUser(t, userRepo, "anna@studio.test", "password123", model.UserRoleBlogger)

	err := authService.ChangePassword(ctx, user.ID, "not-the-password", "newpassword456")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
