package handlers

import (
	"strings"

	"github.com/cinematik/backend/internal/dto"
	"github.com/cinematik/backend/internal/helper/utils"
	"github.com/cinematik/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) SetupRoutes(app *fiber.App) {
	grp := app.Group("/auth")
	grp.Post("/signup", h.SignUp)
	grp.Post("/signin", h.SignIn)
	grp.Post("/social", h.SocialLogin)
	grp.Post("/refresh", h.Refresh)
	grp.Post("/forgot-password", h.ForgotPassword)
	grp.Post("/reset-password", h.ResetPassword)
}

// SignUp godoc
// @Summary      Register a new account
// @Description  Creates a user with a name, email and password and signs them in.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignUpRequest  true  "sign up payload"
// @Success      201  {object}  dto.AuthData
// @Failure      409  {object}  map[string]any
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(ctx *fiber.Ctx) error {
	var input dto.SignUpRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Name == "" || input.Email == "" || len(input.Password) < 6 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "name, email and a password of at least 6 characters are required")
	}

	data, err := h.svc.SignUp(input)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "User signed up", data)
}

// SignIn godoc
// @Summary      Sign in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignInRequest  true  "sign in payload"
// @Success      200  {object}  dto.AuthData
// @Failure      401  {object}  map[string]any
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(ctx *fiber.Ctx) error {
	var input dto.SignInRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || input.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	data, err := h.svc.SignIn(input)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "User signed in", data)
}

// SocialLogin godoc
// @Summary      Sign in through a social identity provider
// @Description  Creates the account on first login and returns tokens either way.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SocialLoginRequest  true  "provider profile"
// @Success      200  {object}  dto.AuthData
// @Router       /auth/social [post]
func (h *AuthHandler) SocialLogin(ctx *fiber.Ctx) error {
	var input dto.SocialLoginRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Name == "" || input.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "name and email are required")
	}

	data, err := h.svc.SocialLogin(input)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "User signed in", data)
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh token"
// @Success      200  {object}  dto.TokensData
// @Failure      401  {object}  map[string]any
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(ctx *fiber.Ctx) error {
	var input dto.RefreshRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	if input.RefreshToken == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "refresh_token is required")
	}

	tokens, err := h.svc.RefreshAccessToken(input.RefreshToken)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Access token refreshed", tokens)
}

// ForgotPassword godoc
// @Summary      Request a password reset link
// @Description  Always reports success for well-formed requests so account existence is not revealed.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "account email"
// @Success      200  {object}  dto.StatusResponse
// @Failure      409  {object}  map[string]any
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(ctx *fiber.Ctx) error {
	var input dto.ForgotPasswordRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email is required")
	}

	if err := h.svc.ForgotPassword(input.Email); err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Reset link requested", dto.StatusResponse{
		Success: true,
		Message: "If an account with that email exists, a password reset link has been sent.",
	})
}

// ResetPassword godoc
// @Summary      Set a new password using a reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "token and new password"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  map[string]any
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(ctx *fiber.Ctx) error {
	var input dto.ResetPasswordRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	if input.Token == "" || len(input.NewPassword) < 6 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "token and a password of at least 6 characters are required")
	}

	if err := h.svc.ResetPassword(input.Token, input.NewPassword); err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Password updated", dto.StatusResponse{
		Success: true,
		Message: "Password reset successfully.",
	})
}
