package repository

import (
	"errors"

	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/dto"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	CreateReview(review *domain.Review) (*domain.Review, error)
	FindReviewByID(id string) (*domain.Review, error)
	FindReviewByUser(userID string) (*dto.ReviewWithUser, error)
	ListReviews(offset, limit int) ([]dto.ReviewWithUser, error)
	ListReviewsExcludingUser(userID string, offset, limit int) ([]dto.ReviewWithUser, error)
	CountReviews() (int64, error)
	CountReviewsExcludingUser(userID string) (int64, error)
	SaveReview(review *domain.Review) error
	DeleteReview(id string) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// joined selects review rows together with the author's display fields.
// The LEFT JOIN keeps legacy ownerless reviews in the listing; their name
// and picture come back null. Insertion order is the stable listing order.
func (r *reviewRepository) joined() *gorm.DB {
	return r.db.
		Table("reviews").
		Select("reviews.id, reviews.user_id, reviews.text, reviews.rating, reviews.created_at, reviews.updated_at, users.name, users.picture").
		Joins("LEFT JOIN users ON users.id = reviews.user_id").
		Order("reviews.created_at ASC, reviews.id ASC")
}

func (r *reviewRepository) CreateReview(review *domain.Review) (*domain.Review, error) {
	if err := r.db.Create(review).Error; err != nil {
		zap.S().Errorw("create review failed", "user_id", review.UserID, "err", err)
		return nil, ErrInternal
	}
	return review, nil
}

func (r *reviewRepository) FindReviewByID(id string) (*domain.Review, error) {
	review := &domain.Review{}
	if err := r.db.First(review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		zap.S().Errorw("find review by id failed", "review_id", id, "err", err)
		return nil, ErrInternal
	}
	return review, nil
}

func (r *reviewRepository) FindReviewByUser(userID string) (*dto.ReviewWithUser, error) {
	row := &dto.ReviewWithUser{}
	err := r.joined().Where("reviews.user_id = ?", userID).Limit(1).Scan(row).Error
	if err != nil {
		zap.S().Errorw("find review by user failed", "user_id", userID, "err", err)
		return nil, ErrInternal
	}
	if row.ID == "" {
		return nil, ErrNotFound
	}
	return row, nil
}

func (r *reviewRepository) ListReviews(offset, limit int) ([]dto.ReviewWithUser, error) {
	var rows []dto.ReviewWithUser
	err := r.joined().Offset(offset).Limit(limit).Scan(&rows).Error
	if err != nil {
		zap.S().Errorw("list reviews failed", "offset", offset, "err", err)
		return nil, ErrInternal
	}
	return rows, nil
}

func (r *reviewRepository) ListReviewsExcludingUser(userID string, offset, limit int) ([]dto.ReviewWithUser, error) {
	var rows []dto.ReviewWithUser
	err := r.joined().
		Where("reviews.user_id IS NULL OR reviews.user_id <> ?", userID).
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		zap.S().Errorw("list reviews excluding user failed", "user_id", userID, "err", err)
		return nil, ErrInternal
	}
	return rows, nil
}

func (r *reviewRepository) CountReviews() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Review{}).Count(&count).Error; err != nil {
		zap.S().Errorw("count reviews failed", "err", err)
		return 0, ErrInternal
	}
	return count, nil
}

func (r *reviewRepository) CountReviewsExcludingUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Review{}).
		Where("user_id IS NULL OR user_id <> ?", userID).
		Count(&count).Error
	if err != nil {
		zap.S().Errorw("count reviews excluding user failed", "user_id", userID, "err", err)
		return 0, ErrInternal
	}
	return count, nil
}

func (r *reviewRepository) SaveReview(review *domain.Review) error {
	if err := r.db.Save(review).Error; err != nil {
		zap.S().Errorw("save review failed", "review_id", review.ID, "err", err)
		return ErrInternal
	}
	return nil
}

func (r *reviewRepository) DeleteReview(id string) error {
	res := r.db.Delete(&domain.Review{}, "id = ?", id)
	if res.Error != nil {
		zap.S().Errorw("delete review failed", "review_id", id, "err", res.Error)
		return ErrInternal
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
