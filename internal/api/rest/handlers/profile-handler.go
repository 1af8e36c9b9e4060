package handlers

import (
	"path/filepath"
	"strings"

	"github.com/cinematik/backend/internal/dto"
	"github.com/cinematik/backend/internal/helper/utils"
	"github.com/cinematik/backend/internal/services"
	pkgutils "github.com/cinematik/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const maxAvatarBytes = 5 << 20

var allowedAvatarExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) SetupRoutes(app *fiber.App, requireAuth fiber.Handler) {
	grp := app.Group("/profile", requireAuth)
	grp.Get("/", h.GetProfile)
	grp.Patch("/", h.UpdateProfile)
	grp.Patch("/picture", h.UpdatePicture)
	grp.Delete("/", h.DeleteProfile)
}

// GetProfile godoc
// @Summary      Fetch the signed-in user's profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  dto.UserData
// @Failure      401  {object}  map[string]any
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetProfile(ctx *fiber.Ctx) error {
	caller, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	data, err := h.svc.GetProfile(caller)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Profile fetched", data)
}

// UpdateProfile godoc
// @Summary      Change name or email
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "fields to change"
// @Success      200  {object}  dto.UserData
// @Failure      409  {object}  map[string]any
// @Router       /profile [patch]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateProfile(ctx *fiber.Ctx) error {
	caller, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var input dto.UpdateProfileRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	if input.Name == nil && input.Email == nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "nothing to update")
	}

	data, err := h.svc.UpdateProfile(input, caller)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Profile updated", data)
}

// UpdatePicture godoc
// @Summary      Upload a new profile picture
// @Description  Accepts a jpg, jpeg, png or webp file up to 5 MB under the "picture" form field.
// @Tags         profile
// @Accept       mpfd
// @Produce      json
// @Param        picture  formData  file  true  "image file"
// @Success      200  {object}  dto.UserData
// @Failure      400  {object}  map[string]any
// @Router       /profile/picture [patch]
// @Security     BearerAuth
func (h *ProfileHandler) UpdatePicture(ctx *fiber.Ctx) error {
	caller, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	fileHeader, err := ctx.FormFile("picture")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "picture file is required")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedAvatarExt[ext] {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "only jpg, jpeg, png and webp files are accepted")
	}
	if fileHeader.Size > maxAvatarBytes {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file exceeds the 5 MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "could not read uploaded file")
	}
	defer file.Close()

	data, err := pkgutils.ReadAllLimit(file, maxAvatarBytes)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	profile, err := h.svc.UpdatePicture(ctx.UserContext(), fileHeader.Filename, data, caller)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Profile picture updated", profile)
}

// DeleteProfile godoc
// @Summary      Delete the account and everything attached to it
// @Tags         profile
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Failure      401  {object}  map[string]any
// @Router       /profile [delete]
// @Security     BearerAuth
func (h *ProfileHandler) DeleteProfile(ctx *fiber.Ctx) error {
	caller, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	if err := h.svc.DeleteProfile(caller); err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Account deleted", dto.StatusResponse{
		Success: true,
		Message: "Account deleted.",
	})
}
