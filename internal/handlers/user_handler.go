package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/wishlane/wishlane/internal/middleware"
	"github.com/wishlane/wishlane/internal/security"
	"github.com/wishlane/wishlane/internal/services"
	apperrors "github.com/wishlane/wishlane/pkg/errors"
)

// GetProfile returns the public profile of the named user.
func (h *HandlerManager) GetProfile(c *fiber.Ctx) error {
	profile, err := h.UserSvc.GetProfile(c.Params("username"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": profile,
	})
}

// UpdateProfile applies partial profile changes for the caller.
func (h *HandlerManager) UpdateProfile(c *fiber.Ctx) error {
	var update services.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.UserSvc.UpdateProfile(middleware.GetUserID(c), &update)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"user": toUserResponse(user),
	})
}

// UploadAvatar replaces the caller's avatar with the uploaded image.
func (h *HandlerManager) UploadAvatar(c *fiber.Ctx) error {
	data, contentType, err := h.readUpload(c, "avatar")
	if err != nil {
		return fail(c, err)
	}

	user, err := h.UserSvc.UploadAvatar(middleware.GetUserID(c), data, contentType)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"user": toUserResponse(user),
	})
}

// DeleteAvatar removes the caller's avatar.
func (h *HandlerManager) DeleteAvatar(c *fiber.Ctx) error {
	if err := h.UserSvc.DeleteAvatar(middleware.GetUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// readUpload pulls a single multipart file and checks its type and size
// before any byte reaches blob storage.
func (h *HandlerManager) readUpload(c *fiber.Ctx, field string) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", apperrors.New(apperrors.ErrCodeValidation, "missing file upload")
	}

	contentType := header.Header.Get("Content-Type")
	if !security.ValidateImageContentType(contentType) {
		return nil, "", apperrors.New(apperrors.ErrCodeValidation, "unsupported image type")
	}
	if !security.ValidateFileSize(header.Size, h.Config.UploadMaxSize) {
		return nil, "", apperrors.New(apperrors.ErrCodeValidation, "file too large")
	}

	file, err := header.Open()
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to read upload")
	}
	return data, contentType, nil
}
