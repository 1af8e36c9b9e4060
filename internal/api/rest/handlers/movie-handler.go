package handlers

import (
	"github.com/cinematik/backend/internal/dto"
	"github.com/cinematik/backend/internal/helper/utils"
	"github.com/cinematik/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type MovieHandler struct {
	svc services.MovieService
}

func NewMovieHandler(svc services.MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

func (h *MovieHandler) SetupRoutes(app *fiber.App, requireAuth fiber.Handler) {
	grp := app.Group("/movies", requireAuth)
	grp.Get("/", h.GetMovies)
	grp.Get("/ids", h.GetMovieIDs)
	grp.Post("/", h.CreateMovie)
	grp.Patch("/:id", h.UpdateMovie)
	grp.Delete("/:id", h.DeleteMovie)
}

// GetMovies godoc
// @Summary      List your saved movies by category
// @Tags         movies
// @Produce      json
// @Param        category  query  string  true   "favorites or watched"
// @Param        page      query  int     false  "page number, starting at 1"
// @Success      200  {array}  domain.Movie
// @Router       /movies [get]
// @Security     BearerAuth
func (h *MovieHandler) GetMovies(ctx *fiber.Ctx) error {
	caller, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	page := ctx.QueryInt("page", 1)
	rows, meta, err := h.svc.ListMovies(page, ctx.Query("category"), caller)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccessWithMeta(ctx, fiber.StatusOK, "Movies fetched", rows, meta)
}

// GetMovieIDs godoc
// @Summary      List external ids of every movie you saved
// @Description  Lets the client mark already-saved titles while browsing the catalog.
// @Tags         movies
// @Produce      json
// @Success      200  {array}  int
// @Router       /movies/ids [get]
// @Security     BearerAuth
func (h *MovieHandler) GetMovieIDs(ctx *fiber.Ctx) error {
	caller, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	ids, err := h.svc.GetUserMovieIDs(caller)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Movie ids fetched", ids)
}

// CreateMovie godoc
// @Summary      Save a movie to favorites or watched
// @Tags         movies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovieRequest  true  "movie payload"
// @Success      201  {object}  domain.Movie
// @Failure      409  {object}  map[string]any
// @Router       /movies [post]
// @Security     BearerAuth
func (h *MovieHandler) CreateMovie(ctx *fiber.Ctx) error {
	caller, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var input dto.CreateMovieRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}

	movie, err := h.svc.CreateMovie(input, caller)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "Movie saved", movie)
}

// UpdateMovie godoc
// @Summary      Move a saved movie to another category
// @Tags         movies
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "movie id"
// @Param        body  body  dto.UpdateMovieRequest  true  "new category"
// @Success      200  {object}  domain.Movie
// @Failure      404  {object}  map[string]any
// @Router       /movies/{id} [patch]
// @Security     BearerAuth
func (h *MovieHandler) UpdateMovie(ctx *fiber.Ctx) error {
	caller, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var input dto.UpdateMovieRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}

	movie, err := h.svc.UpdateMovie(ctx.Params("id"), input, caller)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Movie updated", movie)
}

// DeleteMovie godoc
// @Summary      Remove a movie from your lists
// @Tags         movies
// @Produce      json
// @Param        id  path  string  true  "movie id"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  map[string]any
// @Router       /movies/{id} [delete]
// @Security     BearerAuth
func (h *MovieHandler) DeleteMovie(ctx *fiber.Ctx) error {
	caller, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	if err := h.svc.DeleteMovie(ctx.Params("id"), caller); err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Movie removed", dto.StatusResponse{
		Success: true,
		Message: "Movie removed.",
	})
}
