package utils

import (
	"github.com/cinematik/backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// Every response goes out in the same envelope so the frontend never has to
// guess the shape: {data, code, message, status, meta?}.

func ResponseSuccess(ctx *fiber.Ctx, status int, message string, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{
		"data":    data,
		"code":    status,
		"message": message,
		"status":  "success",
	})
}

func ResponseSuccessWithMeta(ctx *fiber.Ctx, status int, message string, data interface{}, meta dto.PageMetaData) error {
	return ctx.Status(status).JSON(fiber.Map{
		"data":    data,
		"code":    status,
		"message": message,
		"status":  "success",
		"meta":    meta,
	})
}

func ResponseError(ctx *fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"data":    nil,
		"code":    status,
		"message": message,
		"status":  "error",
	})
}
