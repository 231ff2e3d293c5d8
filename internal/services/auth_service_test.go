package services

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillport_backend/internal/auth"
	"skillport_backend/internal/email"
	"skillport_backend/internal/models"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

type stubRefreshRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newStubRefreshRepo() *stubRefreshRepo {
	return &stubRefreshRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (r *stubRefreshRepo) Create(t *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *t
	r.tokens[t.Token] = &copied
	return nil
}

func (r *stubRefreshRepo) Find(token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.tokens[token]
	if !ok {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	copied := *rt
	return &copied, nil
}

func (r *stubRefreshRepo) Delete(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; !ok {
		return repositories.ErrRefreshTokenNotFound
	}
	delete(r.tokens, token)
	return nil
}

func (r *stubRefreshRepo) DeleteForUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, rt := range r.tokens {
		if rt.UserID == userID {
			delete(r.tokens, token)
		}
	}
	return nil
}

func (r *stubRefreshRepo) CleanExpired() error { return nil }

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo, *stubRefreshRepo) {
	t.Helper()
	auth.Init("test-secret", 15)

	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	userRepo := newStubUserRepo(&models.User{
		BaseModel:    models.BaseModel{ID: "user-1"},
		Email:        "talent@example.com",
		Name:         "Talent",
		PasswordHash: hash,
		Role:         models.UserRoleTalent,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	})
	refreshRepo := newStubRefreshRepo()

	svc := NewAuthService(userRepo, refreshRepo, &email.ConsoleProvider{}, 15, "https://skillport.example")
	return svc, userRepo, refreshRepo
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(&dto.RegisterRequest{
		Email: "talent@example.com", Password: "long enough pw", Name: "Dup", Role: "talent",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)
}

func TestLoginHappyPath(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	resp, err := svc.Login(&dto.LoginRequest{Email: "talent@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Equal(t, "user-1", resp.User.ID)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err1 := svc.Login(&dto.LoginRequest{Email: "talent@example.com", Password: "wrong"})
	_, err2 := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "wrong"})
	require.Error(t, err1)
	require.Error(t, err2)
	assert.Equal(t, err1.Error(), err2.Error())
}

func TestLoginRejectsUnverified(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)

	user, err := userRepo.FindByID("user-1")
	require.NoError(t, err)
	user.IsVerified = false
	require.NoError(t, userRepo.Update(user))

	_, err = svc.Login(&dto.LoginRequest{Email: "talent@example.com", Password: "correct horse"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, refreshRepo := newAuthFixture(t)

	resp, err := svc.Login(&dto.LoginRequest{Email: "talent@example.com", Password: "correct horse"})
	require.NoError(t, err)

	pair, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.Tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.Tokens.RefreshToken, pair.RefreshToken)

	// The consumed token is gone; replaying it fails.
	_, err = refreshRepo.Find(resp.Tokens.RefreshToken)
	require.Error(t, err)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.Tokens.RefreshToken})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)
}

func TestRefreshRejectsExpired(t *testing.T) {
	svc, _, refreshRepo := newAuthFixture(t)

	require.NoError(t, refreshRepo.Create(&models.RefreshToken{
		UserID:    "user-1",
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: "stale-token"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	svc, userRepo, refreshRepo := newAuthFixture(t)

	resp, err := svc.Login(&dto.LoginRequest{Email: "talent@example.com", Password: "correct horse"})
	require.NoError(t, err)

	exp := time.Now().Add(time.Hour)
	user, err := userRepo.FindByID("user-1")
	require.NoError(t, err)
	user.ResetToken = "reset-123"
	user.ResetTokenExp = &exp
	require.NoError(t, userRepo.Update(user))

	require.NoError(t, svc.ResetPassword(&dto.ResetPasswordRequest{
		Token: "reset-123", Password: "brand new password",
	}))

	_, err = refreshRepo.Find(resp.Tokens.RefreshToken)
	require.Error(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "talent@example.com", Password: "brand new password"})
	require.NoError(t, err)
}
