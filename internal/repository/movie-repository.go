package repository

import (
	"errors"

	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/helper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MovieRepository interface {
	CreateMovie(movie *domain.Movie) (*domain.Movie, error)
	FindMovieByID(id string) (*domain.Movie, error)
	ListMovies(userID, category string, offset, limit int) ([]domain.Movie, error)
	CountMovies(userID, category string) (int64, error)
	ListMovieIdbIDs(userID string) ([]int, error)
	SaveMovie(movie *domain.Movie) error
	DeleteMovie(id string) error
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) CreateMovie(movie *domain.Movie) (*domain.Movie, error) {
	if err := r.db.Create(movie).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, ErrConflict
		}
		zap.S().Errorw("create movie failed", "user_id", movie.UserID, "idb_id", movie.IdbID, "err", err)
		return nil, ErrInternal
	}
	return movie, nil
}

func (r *movieRepository) FindMovieByID(id string) (*domain.Movie, error) {
	movie := &domain.Movie{}
	if err := r.db.First(movie, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		zap.S().Errorw("find movie by id failed", "movie_id", id, "err", err)
		return nil, ErrInternal
	}
	return movie, nil
}

func (r *movieRepository) ListMovies(userID, category string, offset, limit int) ([]domain.Movie, error) {
	var movies []domain.Movie
	err := r.db.
		Where("user_id = ? AND category = ?", userID, category).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&movies).Error
	if err != nil {
		zap.S().Errorw("list movies failed", "user_id", userID, "category", category, "err", err)
		return nil, ErrInternal
	}
	return movies, nil
}

func (r *movieRepository) CountMovies(userID, category string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Movie{}).
		Where("user_id = ? AND category = ?", userID, category).
		Count(&count).Error
	if err != nil {
		zap.S().Errorw("count movies failed", "user_id", userID, "err", err)
		return 0, ErrInternal
	}
	return count, nil
}

func (r *movieRepository) ListMovieIdbIDs(userID string) ([]int, error) {
	var ids []int
	err := r.db.Model(&domain.Movie{}).
		Where("user_id = ?", userID).
		Pluck("idb_id", &ids).Error
	if err != nil {
		zap.S().Errorw("list movie idb ids failed", "user_id", userID, "err", err)
		return nil, ErrInternal
	}
	return ids, nil
}

func (r *movieRepository) SaveMovie(movie *domain.Movie) error {
	if err := r.db.Save(movie).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return ErrConflict
		}
		zap.S().Errorw("save movie failed", "movie_id", movie.ID, "err", err)
		return ErrInternal
	}
	return nil
}

func (r *movieRepository) DeleteMovie(id string) error {
	res := r.db.Delete(&domain.Movie{}, "id = ?", id)
	if res.Error != nil {
		zap.S().Errorw("delete movie failed", "movie_id", id, "err", res.Error)
		return ErrInternal
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
