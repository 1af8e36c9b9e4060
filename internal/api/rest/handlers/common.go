package handlers

import (
	"errors"

	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/helper/utils"
	"github.com/cinematik/backend/internal/repository"
	"github.com/cinematik/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

func currentUser(ctx *fiber.Ctx) (*domain.User, bool) {
	user, ok := ctx.Locals("user").(*domain.User)
	return user, ok && user != nil
}

// respondError maps service and repository sentinels onto the error
// taxonomy. Anything the layers below did not classify is treated as bad
// input; storage internals already came back as ErrInternal.
func respondError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrResetTokenInvalid):
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return utils.ResponseError(ctx, fiber.StatusNotFound, "resource not found")
	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrResetPending),
		errors.Is(err, repository.ErrConflict):
		return utils.ResponseError(ctx, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidRefreshToken),
		errors.Is(err, services.ErrSocialLoginFailed):
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrInternal):
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "something went wrong")
	default:
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
}
