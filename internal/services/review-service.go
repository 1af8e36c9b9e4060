package services

import (
	"errors"
	"strings"

	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/dto"
	"github.com/cinematik/backend/internal/repository"
)

const reviewPageSize = 10

type ReviewService interface {
	ListReviews(page int, caller *domain.User) ([]dto.ReviewWithUser, dto.PageMetaData, error)
	CreateReview(input dto.CreateReviewRequest, caller *domain.User) (*domain.Review, error)
	UpdateReview(reviewID string, input dto.UpdateReviewRequest, caller *domain.User) (*domain.Review, error)
	DeleteReview(reviewID string, caller *domain.User) error
}

type reviewService struct {
	repo repository.ReviewRepository
}

func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

// ListReviews returns one page of reviews. For an authenticated caller the
// first page leads with their own review; later pages shift the window by
// one so the promoted review is neither repeated nor swallows a row at a
// page boundary.
func (s *reviewService) ListReviews(page int, caller *domain.User) ([]dto.ReviewWithUser, dto.PageMetaData, error) {
	if page < 1 {
		page = 1
	}

	if caller == nil {
		total, err := s.repo.CountReviews()
		if err != nil {
			return nil, dto.PageMetaData{}, err
		}
		rows, err := s.repo.ListReviews((page-1)*reviewPageSize, reviewPageSize)
		if err != nil {
			return nil, dto.PageMetaData{}, err
		}
		return rows, pageMeta(total, page), nil
	}

	own, err := s.repo.FindReviewByUser(caller.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, dto.PageMetaData{}, err
	}

	totalOthers, err := s.repo.CountReviewsExcludingUser(caller.ID)
	if err != nil {
		return nil, dto.PageMetaData{}, err
	}

	if own == nil {
		rows, err := s.repo.ListReviewsExcludingUser(caller.ID, (page-1)*reviewPageSize, reviewPageSize)
		if err != nil {
			return nil, dto.PageMetaData{}, err
		}
		return rows, pageMeta(totalOthers, page), nil
	}

	total := totalOthers + 1

	if page == 1 {
		others, err := s.repo.ListReviewsExcludingUser(caller.ID, 0, reviewPageSize-1)
		if err != nil {
			return nil, dto.PageMetaData{}, err
		}
		rows := make([]dto.ReviewWithUser, 0, len(others)+1)
		rows = append(rows, *own)
		rows = append(rows, others...)
		return rows, pageMeta(total, page), nil
	}

	// The own review occupied one slot on page 1, so every later window
	// starts one position earlier in the "others" ordering.
	others, err := s.repo.ListReviewsExcludingUser(caller.ID, (page-1)*reviewPageSize-1, reviewPageSize)
	if err != nil {
		return nil, dto.PageMetaData{}, err
	}
	return others, pageMeta(total, page), nil
}

func (s *reviewService) CreateReview(input dto.CreateReviewRequest, caller *domain.User) (*domain.Review, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" || !validRating(input.Rating) {
		return nil, errors.New("invalid review input")
	}

	userID := caller.ID
	return s.repo.CreateReview(&domain.Review{
		UserID: &userID,
		Text:   text,
		Rating: input.Rating,
	})
}

func (s *reviewService) UpdateReview(reviewID string, input dto.UpdateReviewRequest, caller *domain.User) (*domain.Review, error) {
	review, err := s.ownedReview(reviewID, caller)
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		text := strings.TrimSpace(*input.Text)
		if text == "" {
			return nil, errors.New("text cannot be empty")
		}
		review.Text = text
	}
	if input.Rating != nil {
		if !validRating(*input.Rating) {
			return nil, errors.New("invalid rating")
		}
		review.Rating = *input.Rating
	}

	if err := s.repo.SaveReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) DeleteReview(reviewID string, caller *domain.User) error {
	if _, err := s.ownedReview(reviewID, caller); err != nil {
		return err
	}
	return s.repo.DeleteReview(reviewID)
}

// ownedReview loads a review and checks the caller owns it. A review owned
// by someone else reports not-found rather than leaking that the id exists.
func (s *reviewService) ownedReview(reviewID string, caller *domain.User) (*domain.Review, error) {
	review, err := s.repo.FindReviewByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID == nil || *review.UserID != caller.ID {
		return nil, repository.ErrNotFound
	}
	return review, nil
}

func validRating(r string) bool {
	switch r {
	case "1", "2", "3", "4", "5":
		return true
	}
	return false
}

func pageMeta(total int64, page int) dto.PageMetaData {
	totalPages := (total + reviewPageSize - 1) / reviewPageSize
	return dto.PageMetaData{
		Total:      total,
		Page:       page,
		Limit:      reviewPageSize,
		TotalPages: totalPages,
	}
}
