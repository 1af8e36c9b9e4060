package repository

import (
	"errors"

	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/helper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByID(userID string) (*domain.User, error)
	SaveUser(user *domain.User) error
	UpdatePasswordHash(userID, passwordHash string) error
	DeleteUser(userID string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, ErrInternal
	}

	if err := r.db.Create(user).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, ErrConflict
		}
		zap.S().Errorw("create user failed", "email", user.Email, "err", err)
		return nil, ErrInternal
	}
	return user, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		zap.S().Errorw("find user by email failed", "err", err)
		return nil, ErrInternal
	}
	return user, nil
}

func (r *userRepository) FindUserByID(userID string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		zap.S().Errorw("find user by id failed", "user_id", userID, "err", err)
		return nil, ErrInternal
	}
	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return ErrInternal
	}
	if err := r.db.Save(user).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return ErrConflict
		}
		zap.S().Errorw("save user failed", "user_id", user.ID, "err", err)
		return ErrInternal
	}
	return nil
}

func (r *userRepository) UpdatePasswordHash(userID, passwordHash string) error {
	res := r.db.Model(&domain.User{}).Where("id = ?", userID).Update("password_hash", passwordHash)
	if res.Error != nil {
		zap.S().Errorw("update password hash failed", "user_id", userID, "err", res.Error)
		return ErrInternal
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) DeleteUser(userID string) error {
	res := r.db.Delete(&domain.User{}, "id = ?", userID)
	if res.Error != nil {
		zap.S().Errorw("delete user failed", "user_id", userID, "err", res.Error)
		return ErrInternal
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
