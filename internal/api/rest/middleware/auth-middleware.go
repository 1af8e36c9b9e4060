package middleware

import (
	"strings"

	"github.com/cinematik/backend/internal/helper"
	"github.com/cinematik/backend/internal/helper/utils"
	"github.com/cinematik/backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware rejects requests without a valid access token. The claims
// carry {name, email}, so the current user row is resolved by email and
// stashed in locals as *domain.User.
func AuthMiddleware(auth helper.Auth, users repository.UserRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Get("Authorization"))

		claims, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
		}

		user, err := users.FindUserByEmail(claims.Email)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
		}

		ctx.Locals("user", user)
		return ctx.Next()
	}
}

// OptionalAuthMiddleware resolves the caller when a valid token is present
// and carries on anonymously otherwise, instead of rejecting.
func OptionalAuthMiddleware(auth helper.Auth, users repository.UserRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Get("Authorization"))
		if tokenStr == "" {
			return ctx.Next()
		}

		claims, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Next()
		}
		if user, err := users.FindUserByEmail(claims.Email); err == nil {
			ctx.Locals("user", user)
		}
		return ctx.Next()
	}
}
