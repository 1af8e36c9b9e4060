package services

import (
	"fmt"
	"testing"

	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/dto"
	"github.com/cinematik/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memReviewRepo keeps reviews in insertion order, mirroring the stable
// ordering the SQL listing uses.
type memReviewRepo struct {
	rows   []*domain.Review
	nextID int
}

func (m *memReviewRepo) CreateReview(review *domain.Review) (*domain.Review, error) {
	m.nextID++
	review.ID = fmt.Sprintf("review-%d", m.nextID)
	m.rows = append(m.rows, review)
	return review, nil
}

func (m *memReviewRepo) FindReviewByID(id string) (*domain.Review, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memReviewRepo) FindReviewByUser(userID string) (*dto.ReviewWithUser, error) {
	for _, r := range m.rows {
		if r.UserID != nil && *r.UserID == userID {
			row := asListed(r)
			return &row, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memReviewRepo) ListReviews(offset, limit int) ([]dto.ReviewWithUser, error) {
	return window(m.rows, offset, limit), nil
}

func (m *memReviewRepo) ListReviewsExcludingUser(userID string, offset, limit int) ([]dto.ReviewWithUser, error) {
	return window(m.others(userID), offset, limit), nil
}

func (m *memReviewRepo) CountReviews() (int64, error) {
	return int64(len(m.rows)), nil
}

func (m *memReviewRepo) CountReviewsExcludingUser(userID string) (int64, error) {
	return int64(len(m.others(userID))), nil
}

func (m *memReviewRepo) SaveReview(review *domain.Review) error {
	for i, r := range m.rows {
		if r.ID == review.ID {
			m.rows[i] = review
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memReviewRepo) DeleteReview(id string) error {
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memReviewRepo) others(userID string) []*domain.Review {
	var out []*domain.Review
	for _, r := range m.rows {
		if r.UserID == nil || *r.UserID != userID {
			out = append(out, r)
		}
	}
	return out
}

func window(rows []*domain.Review, offset, limit int) []dto.ReviewWithUser {
	if offset >= len(rows) {
		return nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	out := make([]dto.ReviewWithUser, 0, end-offset)
	for _, r := range rows[offset:end] {
		out = append(out, asListed(r))
	}
	return out
}

func asListed(r *domain.Review) dto.ReviewWithUser {
	return dto.ReviewWithUser{
		ID:     r.ID,
		UserID: r.UserID,
		Text:   r.Text,
		Rating: r.Rating,
	}
}

func seedReviews(repo *memReviewRepo, n int, ownerPrefix string) {
	for i := 0; i < n; i++ {
		uid := fmt.Sprintf("%s-%d", ownerPrefix, i)
		_, _ = repo.CreateReview(&domain.Review{UserID: &uid, Text: fmt.Sprintf("review %d", i), Rating: "4"})
	}
}

func TestListReviewsAnonymous(t *testing.T) {
	repo := &memReviewRepo{}
	seedReviews(repo, 12, "visitor")
	svc := NewReviewService(repo)

	rows, meta, err := svc.ListReviews(1, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 10)
	assert.Equal(t, int64(12), meta.Total)
	assert.Equal(t, int64(2), meta.TotalPages)
	assert.Equal(t, "review-1", rows[0].ID)

	rows, _, err = svc.ListReviews(2, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "review-11", rows[0].ID)

	rows, _, err = svc.ListReviews(3, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListReviewsOwnFirst(t *testing.T) {
	repo := &memReviewRepo{}
	seedReviews(repo, 5, "early")
	me := "caller"
	own, err := repo.CreateReview(&domain.Review{UserID: &me, Text: "mine", Rating: "5"})
	require.NoError(t, err)
	seedReviews(repo, 6, "late")
	svc := NewReviewService(repo)
	caller := &domain.User{ID: me}

	// 12 reviews in total, one of them the caller's.
	rows, meta, err := svc.ListReviews(1, caller)
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, own.ID, rows[0].ID)
	assert.Equal(t, int64(12), meta.Total)
	assert.Equal(t, int64(2), meta.TotalPages)

	page2, _, err := svc.ListReviews(2, caller)
	require.NoError(t, err)
	assert.Len(t, page2, 2)

	// Across both pages every review appears exactly once.
	seen := map[string]int{}
	for _, r := range append(rows, page2...) {
		seen[r.ID]++
	}
	assert.Len(t, seen, 12)
	for id, n := range seen {
		assert.Equalf(t, 1, n, "review %s listed %d times", id, n)
	}
}

func TestListReviewsCallerWithoutReview(t *testing.T) {
	repo := &memReviewRepo{}
	seedReviews(repo, 12, "visitor")
	svc := NewReviewService(repo)
	caller := &domain.User{ID: "lurker"}

	rows, meta, err := svc.ListReviews(1, caller)
	require.NoError(t, err)
	assert.Len(t, rows, 10)
	assert.Equal(t, int64(12), meta.Total)
	assert.Equal(t, "review-1", rows[0].ID)
}

func TestListReviewsPageClamp(t *testing.T) {
	repo := &memReviewRepo{}
	seedReviews(repo, 3, "visitor")
	svc := NewReviewService(repo)

	rows, meta, err := svc.ListReviews(0, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, 1, meta.Page)
}

func TestCreateReviewValidation(t *testing.T) {
	repo := &memReviewRepo{}
	svc := NewReviewService(repo)
	caller := &domain.User{ID: "u1"}

	_, err := svc.CreateReview(dto.CreateReviewRequest{Text: "   ", Rating: "4"}, caller)
	assert.Error(t, err)
	_, err = svc.CreateReview(dto.CreateReviewRequest{Text: "fine", Rating: "6"}, caller)
	assert.Error(t, err)
	_, err = svc.CreateReview(dto.CreateReviewRequest{Text: "fine", Rating: ""}, caller)
	assert.Error(t, err)

	review, err := svc.CreateReview(dto.CreateReviewRequest{Text: " great app ", Rating: "5"}, caller)
	require.NoError(t, err)
	assert.Equal(t, "great app", review.Text)
	require.NotNil(t, review.UserID)
	assert.Equal(t, "u1", *review.UserID)
}

func TestUpdateReviewOwnership(t *testing.T) {
	repo := &memReviewRepo{}
	svc := NewReviewService(repo)
	owner := &domain.User{ID: "owner"}
	stranger := &domain.User{ID: "stranger"}

	review, err := svc.CreateReview(dto.CreateReviewRequest{Text: "original", Rating: "3"}, owner)
	require.NoError(t, err)

	_, err = svc.UpdateReview(review.ID, dto.UpdateReviewRequest{}, stranger)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	text := "edited"
	rating := "5"
	updated, err := svc.UpdateReview(review.ID, dto.UpdateReviewRequest{Text: &text, Rating: &rating}, owner)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, "5", updated.Rating)

	empty := "  "
	_, err = svc.UpdateReview(review.ID, dto.UpdateReviewRequest{Text: &empty}, owner)
	assert.Error(t, err)
}

func TestDeleteReviewOwnership(t *testing.T) {
	repo := &memReviewRepo{}
	svc := NewReviewService(repo)
	owner := &domain.User{ID: "owner"}
	stranger := &domain.User{ID: "stranger"}

	review, err := svc.CreateReview(dto.CreateReviewRequest{Text: "bye", Rating: "2"}, owner)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteReview(review.ID, stranger), repository.ErrNotFound)
	require.NoError(t, svc.DeleteReview(review.ID, owner))
	assert.ErrorIs(t, svc.DeleteReview(review.ID, owner), repository.ErrNotFound)

	// Ownerless legacy reviews cannot be touched by anyone.
	legacy, err := repo.CreateReview(&domain.Review{Text: "old", Rating: "4"})
	require.NoError(t, err)
	assert.ErrorIs(t, svc.DeleteReview(legacy.ID, owner), repository.ErrNotFound)
}
