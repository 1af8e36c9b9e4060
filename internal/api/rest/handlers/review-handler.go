package handlers

import (
	"github.com/cinematik/backend/internal/dto"
	"github.com/cinematik/backend/internal/helper/utils"
	"github.com/cinematik/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	svc services.ReviewService
}

func NewReviewHandler(svc services.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) SetupRoutes(app *fiber.App, optionalAuth, requireAuth fiber.Handler) {
	grp := app.Group("/reviews")
	grp.Get("/", optionalAuth, h.GetReviews)
	grp.Post("/", requireAuth, h.CreateReview)
	grp.Patch("/:id", requireAuth, h.UpdateReview)
	grp.Delete("/:id", requireAuth, h.DeleteReview)
}

// GetReviews godoc
// @Summary      List reviews, newest visitors last
// @Description  Pages are fixed at ten entries. When the caller is signed in and has a review, it leads the first page.
// @Tags         reviews
// @Produce      json
// @Param        page  query  int  false  "page number, starting at 1"
// @Success      200  {array}  dto.ReviewWithUser
// @Router       /reviews [get]
func (h *ReviewHandler) GetReviews(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	caller, _ := currentUser(ctx)

	rows, meta, err := h.svc.ListReviews(page, caller)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccessWithMeta(ctx, fiber.StatusOK, "Reviews fetched", rows, meta)
}

// CreateReview godoc
// @Summary      Leave a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReviewRequest  true  "review payload"
// @Success      201  {object}  domain.Review
// @Failure      401  {object}  map[string]any
// @Router       /reviews [post]
// @Security     BearerAuth
func (h *ReviewHandler) CreateReview(ctx *fiber.Ctx) error {
	caller, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var input dto.CreateReviewRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}

	review, err := h.svc.CreateReview(input, caller)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "Review created", review)
}

// UpdateReview godoc
// @Summary      Edit your review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "review id"
// @Param        body  body  dto.UpdateReviewRequest  true  "fields to change"
// @Success      200  {object}  domain.Review
// @Failure      404  {object}  map[string]any
// @Router       /reviews/{id} [patch]
// @Security     BearerAuth
func (h *ReviewHandler) UpdateReview(ctx *fiber.Ctx) error {
	caller, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var input dto.UpdateReviewRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}

	review, err := h.svc.UpdateReview(ctx.Params("id"), input, caller)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Review updated", review)
}

// DeleteReview godoc
// @Summary      Delete your review
// @Tags         reviews
// @Produce      json
// @Param        id  path  string  true  "review id"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  map[string]any
// @Router       /reviews/{id} [delete]
// @Security     BearerAuth
func (h *ReviewHandler) DeleteReview(ctx *fiber.Ctx) error {
	caller, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	if err := h.svc.DeleteReview(ctx.Params("id"), caller); err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Review deleted", dto.StatusResponse{
		Success: true,
		Message: "Review deleted.",
	})
}
