package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/dto"
	"github.com/cinematik/backend/internal/helper"
	"github.com/cinematik/backend/internal/helper/utils"
	"github.com/cinematik/backend/internal/interfaces"
	"github.com/cinematik/backend/internal/repository"
	"go.uber.org/zap"
)

const resetTokenTTL = time.Hour

var (
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrSocialLoginFailed   = errors.New("unable to create user with social login")
	ErrResetPending        = errors.New("a reset link has already been sent")
	ErrResetTokenInvalid   = errors.New("invalid or expired reset token")
)

type AuthService interface {
	SignUp(input dto.SignUpRequest) (*dto.AuthData, error)
	SignIn(input dto.SignInRequest) (*dto.AuthData, error)
	SocialLogin(input dto.SocialLoginRequest) (*dto.AuthData, error)
	RefreshAccessToken(refreshToken string) (dto.TokensData, error)
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error
	CleanupExpiredTokens()
}

type authService struct {
	users      repository.UserRepository
	resetRepo  repository.PasswordResetRepository
	reviewRepo repository.ReviewRepository
	auth       helper.Auth
	producer   interfaces.ProducerHandler
}

func NewAuthService(
	users repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	reviewRepo repository.ReviewRepository,
	auth helper.Auth,
	producer interfaces.ProducerHandler,
) AuthService {
	return &authService{
		users:      users,
		resetRepo:  resetRepo,
		reviewRepo: reviewRepo,
		auth:       auth,
		producer:   producer,
	}
}

func (s *authService) SignUp(input dto.SignUpRequest) (*dto.AuthData, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if name == "" || email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.users.FindUserByEmail(email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(&domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
	})
	if err != nil {
		// Covers the insert race as well as a duplicate name.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return s.authData(user)
}

func (s *authService) SignIn(input dto.SignInRequest) (*dto.AuthData, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password

	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindUserByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	// Social-only accounts have no password to check against.
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.auth.VerifyPassword(password, *user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authData(user)
}

func (s *authService) SocialLogin(input dto.SocialLoginRequest) (*dto.AuthData, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if name == "" || email == "" {
		return nil, ErrSocialLoginFailed
	}

	user, err := s.users.FindUserByEmail(email)
	if errors.Is(err, repository.ErrNotFound) {
		newUser := &domain.User{Name: name, Email: email}
		if input.Picture != "" {
			picture := input.Picture
			newUser.Picture = &picture
		}
		user, err = s.users.CreateUser(newUser)
		if err != nil {
			return nil, ErrSocialLoginFailed
		}
	} else if err != nil {
		return nil, err
	}

	return s.authData(user)
}

func (s *authService) RefreshAccessToken(refreshToken string) (dto.TokensData, error) {
	claims, err := s.auth.VerifyToken(refreshToken)
	if err != nil {
		return dto.TokensData{}, ErrInvalidRefreshToken
	}
	return s.auth.GenerateAccessToken(claims.Name, claims.Email)
}

// ForgotPassword is enumeration-safe: an unknown email still reports
// success to the caller. Only a known account with a still-valid token
// surfaces a conflict.
func (s *authService) ForgotPassword(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindUserByEmail(email)
	if errors.Is(err, repository.ErrNotFound) {
		zap.S().Infow("forgot password for unknown email", "email", email)
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := s.resetRepo.FindActiveByUser(user.ID); err == nil {
		return ErrResetPending
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if err := s.resetRepo.PurgeStaleForUser(user.ID); err != nil {
		return err
	}

	token, err := utils.RandomToken(32)
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(resetTokenTTL)

	err = s.resetRepo.Create(&domain.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrResetPending
		}
		return err
	}

	s.publishResetEvent(user, token, expiresAt)
	return nil
}

func (s *authService) ResetPassword(token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" || strings.TrimSpace(newPassword) == "" {
		return ErrResetTokenInvalid
	}

	row, err := s.resetRepo.FindValid(token)
	if err != nil {
		return ErrResetTokenInvalid
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(row.UserID, hash); err != nil {
		return err
	}
	// Single-use even inside the expiry window.
	return s.resetRepo.MarkUsed(row.ID)
}

// CleanupExpiredTokens is best-effort housekeeping; failures are logged,
// never propagated.
func (s *authService) CleanupExpiredTokens() {
	n, err := s.resetRepo.DeleteExpired()
	if err != nil {
		zap.S().Errorw("reset token cleanup failed", "err", err)
		return
	}
	if n > 0 {
		zap.S().Infow("expired reset tokens removed", "count", n)
	}
}

func (s *authService) authData(user *domain.User) (*dto.AuthData, error) {
	tokens, err := s.auth.GenerateTokenPair(user.Name, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.AuthData{
		User:   formatUserData(s.reviewRepo, user),
		Tokens: tokens,
	}, nil
}

func (s *authService) publishResetEvent(user *domain.User, token string, expiresAt time.Time) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(dto.PasswordResetEvent{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
	if err != nil {
		zap.S().Errorw("marshal reset event failed", "err", err)
		return
	}
	if err := s.producer.PublishMessage([]byte("user.reset_password"), payload); err != nil {
		zap.S().Errorw("publish reset event failed", "user_id", user.ID, "err", err)
	}
}
