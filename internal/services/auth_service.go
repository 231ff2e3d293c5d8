package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"skillport_backend/internal/auth"
	"skillport_backend/internal/email"
	"skillport_backend/internal/logger"
	"skillport_backend/internal/models"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

const (
	refreshTokenTTL = 30 * 24 * time.Hour
	resetTokenTTL   = 2 * time.Hour
)

type AuthService struct {
	userRepo    repositories.UserRepository
	refreshRepo repositories.RefreshTokenRepository
	email       email.Provider
	accessTTL   time.Duration
	appBaseURL  string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	refreshRepo repositories.RefreshTokenRepository,
	emailProvider email.Provider,
	accessTTLMinutes int,
	appBaseURL string,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		email:       emailProvider,
		accessTTL:   time.Duration(accessTTLMinutes) * time.Minute,
		appBaseURL:  appBaseURL,
	}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:             req.Email,
		Name:              req.Name,
		PasswordHash:      hash,
		Role:              models.UserRole(req.Role),
		Status:            models.UserStatusPending,
		VerificationToken: uuid.NewString(),
	}

	if err := s.userRepo.Create(user); err != nil {
		if err == repositories.ErrUserAlreadyExists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// Side effects never fail the request.
	go s.sendVerificationEmail(user)

	resp := dto.ToUserResponse(user, true)
	return &resp, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, apperrors.ErrUserNotVerified
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.NewForbiddenError("Account is suspended")
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:   dto.ToUserResponse(user, true),
		Tokens: *tokens,
	}, nil
}

// Refresh rotates the refresh token: the presented token is consumed and
// a new pair is issued. A reused token is treated as invalid.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.TokenPair, error) {
	rt, err := s.refreshRepo.Find(req.RefreshToken)
	if err != nil {
		if err == repositories.ErrRefreshTokenNotFound {
			return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
		}
		return nil, apperrors.InternalError(err)
	}

	if time.Now().After(rt.ExpiresAt) {
		_ = s.refreshRepo.Delete(rt.Token)
		return nil, apperrors.NewUnauthorizedError("Refresh token expired")
	}

	user, err := s.userRepo.FindByID(rt.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}

	if err := s.refreshRepo.Delete(rt.Token); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	if err := s.refreshRepo.Delete(req.RefreshToken); err != nil &&
		err != repositories.ErrRefreshTokenNotFound {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthService) VerifyEmail(token string) error {
	user, err := s.userRepo.FindByVerificationToken(token)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.NewBadRequestError("Invalid verification token")
		}
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.VerifyUser(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ForgotPassword issues a reset token. An unknown email is not reported
// to the caller.
func (s *AuthService) ForgotPassword(req *dto.ForgotPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil
		}
		return apperrors.InternalError(err)
	}

	exp := time.Now().Add(resetTokenTTL)
	user.ResetToken = uuid.NewString()
	user.ResetTokenExp = &exp
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	go s.sendResetEmail(user)
	return nil
}

func (s *AuthService) ResetPassword(req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByResetToken(req.Token)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.NewBadRequestError("Invalid or expired reset token")
		}
		return apperrors.InternalError(err)
	}
	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.NewBadRequestError("Invalid or expired reset token")
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	// All sessions are revoked on a password reset.
	if err := s.refreshRepo.DeleteForUser(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthService) ChangePassword(userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(userID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthService) issueTokens(user *models.User) (*dto.TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.refreshRepo.Create(refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh.Token,
		ExpiresAt:    time.Now().Add(s.accessTTL),
	}, nil
}

func (s *AuthService) sendVerificationEmail(user *models.User) {
	link := fmt.Sprintf("%s/verify-email?token=%s", s.appBaseURL, user.VerificationToken)
	err := s.email.SendTemplate([]string{user.Email}, "Verify your email", "verification", email.TemplateData{
		"Name": user.Name,
		"Link": link,
	})
	if err != nil {
		logger.Error("failed to send verification email", "user_id", user.ID, "error", err)
	}
}

func (s *AuthService) sendResetEmail(user *models.User) {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.appBaseURL, user.ResetToken)
	err := s.email.SendTemplate([]string{user.Email}, "Reset your password", "password_reset", email.TemplateData{
		"Name": user.Name,
		"Link": link,
	})
	if err != nil {
		logger.Error("failed to send password reset email", "user_id", user.ID, "error", err)
	}
}
