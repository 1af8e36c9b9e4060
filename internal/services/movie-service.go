package services

import (
	"errors"
	"strings"

	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/dto"
	"github.com/cinematik/backend/internal/repository"
	"gorm.io/datatypes"
)

const moviePageSize = 10

var ErrInvalidCategory = errors.New("category must be favorites or watched")

type MovieService interface {
	ListMovies(page int, category string, caller *domain.User) ([]domain.Movie, dto.PageMetaData, error)
	CreateMovie(input dto.CreateMovieRequest, caller *domain.User) (*domain.Movie, error)
	UpdateMovie(movieID string, input dto.UpdateMovieRequest, caller *domain.User) (*domain.Movie, error)
	DeleteMovie(movieID string, caller *domain.User) error
	GetUserMovieIDs(caller *domain.User) ([]int, error)
}

type movieService struct {
	repo repository.MovieRepository
}

func NewMovieService(repo repository.MovieRepository) MovieService {
	return &movieService{repo: repo}
}

func (s *movieService) ListMovies(page int, category string, caller *domain.User) ([]domain.Movie, dto.PageMetaData, error) {
	if page < 1 {
		page = 1
	}
	category = strings.TrimSpace(strings.ToLower(category))
	if !domain.ValidCategory(category) {
		return nil, dto.PageMetaData{}, ErrInvalidCategory
	}

	total, err := s.repo.CountMovies(caller.ID, category)
	if err != nil {
		return nil, dto.PageMetaData{}, err
	}
	movies, err := s.repo.ListMovies(caller.ID, category, (page-1)*moviePageSize, moviePageSize)
	if err != nil {
		return nil, dto.PageMetaData{}, err
	}

	totalPages := (total + moviePageSize - 1) / moviePageSize
	return movies, dto.PageMetaData{
		Total:      total,
		Page:       page,
		Limit:      moviePageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *movieService) CreateMovie(input dto.CreateMovieRequest, caller *domain.User) (*domain.Movie, error) {
	category := strings.TrimSpace(strings.ToLower(input.Category))
	if !domain.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	if input.IdbID == 0 || strings.TrimSpace(input.Title) == "" {
		return nil, errors.New("invalid movie input")
	}

	genres := datatypes.JSON(input.Genres)
	if len(genres) == 0 {
		genres = datatypes.JSON([]byte("[]"))
	}

	return s.repo.CreateMovie(&domain.Movie{
		UserID:      caller.ID,
		IdbID:       input.IdbID,
		Category:    category,
		Title:       strings.TrimSpace(input.Title),
		PosterPath:  input.PosterPath,
		VoteAverage: input.VoteAverage,
		Genres:      genres,
		ReleaseDate: input.ReleaseDate,
		Tagline:     input.Tagline,
		Runtime:     input.Runtime,
		Budget:      input.Budget,
		Overview:    input.Overview,
	})
}

func (s *movieService) UpdateMovie(movieID string, input dto.UpdateMovieRequest, caller *domain.User) (*domain.Movie, error) {
	category := strings.TrimSpace(strings.ToLower(input.Category))
	if !domain.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	movie, err := s.ownedMovie(movieID, caller)
	if err != nil {
		return nil, err
	}

	movie.Category = category
	if err := s.repo.SaveMovie(movie); err != nil {
		return nil, err
	}
	return movie, nil
}

func (s *movieService) DeleteMovie(movieID string, caller *domain.User) error {
	if _, err := s.ownedMovie(movieID, caller); err != nil {
		return err
	}
	return s.repo.DeleteMovie(movieID)
}

func (s *movieService) GetUserMovieIDs(caller *domain.User) ([]int, error) {
	return s.repo.ListMovieIdbIDs(caller.ID)
}

func (s *movieService) ownedMovie(movieID string, caller *domain.User) (*domain.Movie, error) {
	movie, err := s.repo.FindMovieByID(movieID)
	if err != nil {
		return nil, err
	}
	if movie.UserID != caller.ID {
		return nil, repository.ErrNotFound
	}
	return movie, nil
}
