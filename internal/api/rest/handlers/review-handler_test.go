package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/dto"
	"github.com/cinematik/backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReviewService struct {
	lastCaller *domain.User
	lastPage   int
	rows       []dto.ReviewWithUser
	meta       dto.PageMetaData
	deleteErr  error
}

func (s *stubReviewService) ListReviews(page int, caller *domain.User) ([]dto.ReviewWithUser, dto.PageMetaData, error) {
	s.lastPage = page
	s.lastCaller = caller
	return s.rows, s.meta, nil
}

func (s *stubReviewService) CreateReview(input dto.CreateReviewRequest, caller *domain.User) (*domain.Review, error) {
	userID := caller.ID
	return &domain.Review{ID: "review-1", UserID: &userID, Text: input.Text, Rating: input.Rating}, nil
}

func (s *stubReviewService) UpdateReview(reviewID string, input dto.UpdateReviewRequest, caller *domain.User) (*domain.Review, error) {
	return nil, repository.ErrNotFound
}

func (s *stubReviewService) DeleteReview(string, *domain.User) error { return s.deleteErr }

// testUser injects an authenticated user the way the auth middleware does.
func testUser(user *domain.User) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if user != nil {
			ctx.Locals("user", user)
		}
		return ctx.Next()
	}
}

func newReviewApp(svc *stubReviewService, user *domain.User) *fiber.App {
	app := fiber.New()
	NewReviewHandler(svc).SetupRoutes(app, testUser(user), testUser(user))
	return app
}

func TestGetReviewsHandler(t *testing.T) {
	name := "alice"
	svc := &stubReviewService{
		rows: []dto.ReviewWithUser{{ID: "review-1", Text: "great", Rating: "5", Name: &name}},
		meta: dto.PageMetaData{Total: 11, Page: 2, Limit: 10, TotalPages: 2},
	}
	app := newReviewApp(svc, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/reviews?page=2", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(raw, &envelope))

	assert.Equal(t, 2, svc.lastPage)
	assert.Nil(t, svc.lastCaller)

	meta := envelope["meta"].(map[string]any)
	assert.Equal(t, float64(11), meta["total"])
	assert.Equal(t, float64(2), meta["total_pages"])

	rows := envelope["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "great", rows[0].(map[string]any)["text"])
}

func TestGetReviewsHandlerPassesCaller(t *testing.T) {
	svc := &stubReviewService{}
	user := &domain.User{ID: "user-1", Name: "alice"}
	app := newReviewApp(svc, user)

	resp, err := app.Test(httptest.NewRequest("GET", "/reviews", nil))
	require.NoError(t, err)
	resp.Body.Close()

	require.NotNil(t, svc.lastCaller)
	assert.Equal(t, "user-1", svc.lastCaller.ID)
	assert.Equal(t, 1, svc.lastPage)
}

func TestCreateReviewHandlerRequiresAuth(t *testing.T) {
	app := newReviewApp(&stubReviewService{}, nil)

	status, envelope := postJSON(t, app, "/reviews", `{"text":"great","rating":"5"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "error", envelope["status"])
}

func TestCreateReviewHandler(t *testing.T) {
	user := &domain.User{ID: "user-1", Name: "alice"}
	app := newReviewApp(&stubReviewService{}, user)

	status, envelope := postJSON(t, app, "/reviews", `{"text":"great","rating":"5"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "great", data["text"])
	assert.Equal(t, "user-1", data["user_id"])
}

func TestUpdateReviewHandlerNotFound(t *testing.T) {
	user := &domain.User{ID: "user-1"}
	app := newReviewApp(&stubReviewService{}, user)

	req := httptest.NewRequest("PATCH", "/reviews/someone-elses", strings.NewReader(`{"text":"edited"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteReviewHandler(t *testing.T) {
	user := &domain.User{ID: "user-1"}
	app := newReviewApp(&stubReviewService{}, user)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/reviews/review-1", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
