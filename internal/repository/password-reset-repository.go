package repository

import (
	"errors"
	"time"

	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/helper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PasswordResetRepository interface {
	Create(token *domain.PasswordResetToken) error
	FindValid(token string) (*domain.PasswordResetToken, error)
	FindActiveByUser(userID string) (*domain.PasswordResetToken, error)
	MarkUsed(tokenID string) error
	PurgeStaleForUser(userID string) error
	DeleteExpired() (int64, error)
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(token *domain.PasswordResetToken) error {
	if err := r.db.Create(token).Error; err != nil {
		// The partial unique index on (user_id) WHERE used = false makes
		// the insert the race arbiter between concurrent forgot-password
		// requests; the loser lands here.
		if helper.IsDuplicateKey(err) {
			return ErrConflict
		}
		zap.S().Errorw("create reset token failed", "user_id", token.UserID, "err", err)
		return ErrInternal
	}
	return nil
}

// FindValid returns the token row only if it is unconsumed and unexpired.
func (r *passwordResetRepository) FindValid(token string) (*domain.PasswordResetToken, error) {
	row := &domain.PasswordResetToken{}
	err := r.db.
		Where("token = ? AND used = false AND expires_at > ?", token, time.Now()).
		First(row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		zap.S().Errorw("find valid reset token failed", "err", err)
		return nil, ErrInternal
	}
	return row, nil
}

func (r *passwordResetRepository) FindActiveByUser(userID string) (*domain.PasswordResetToken, error) {
	row := &domain.PasswordResetToken{}
	err := r.db.
		Where("user_id = ? AND used = false AND expires_at > ?", userID, time.Now()).
		First(row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		zap.S().Errorw("find active reset token failed", "user_id", userID, "err", err)
		return nil, ErrInternal
	}
	return row, nil
}

func (r *passwordResetRepository) MarkUsed(tokenID string) error {
	res := r.db.Model(&domain.PasswordResetToken{}).
		Where("id = ?", tokenID).
		Update("used", true)
	if res.Error != nil {
		zap.S().Errorw("mark reset token used failed", "token_id", tokenID, "err", res.Error)
		return ErrInternal
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeStaleForUser clears consumed or expired rows for one user so a new
// token can be inserted without tripping the active-token index.
func (r *passwordResetRepository) PurgeStaleForUser(userID string) error {
	err := r.db.
		Where("user_id = ? AND (used = true OR expires_at <= ?)", userID, time.Now()).
		Delete(&domain.PasswordResetToken{}).Error
	if err != nil {
		zap.S().Errorw("purge stale reset tokens failed", "user_id", userID, "err", err)
		return ErrInternal
	}
	return nil
}

func (r *passwordResetRepository) DeleteExpired() (int64, error) {
	res := r.db.
		Where("expires_at < ?", time.Now()).
		Delete(&domain.PasswordResetToken{})
	if res.Error != nil {
		zap.S().Errorw("delete expired reset tokens failed", "err", res.Error)
		return 0, ErrInternal
	}
	return res.RowsAffected, nil
}
