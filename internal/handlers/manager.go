package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wishlane/wishlane/internal/config"
	"github.com/wishlane/wishlane/internal/services"
	apperrors "github.com/wishlane/wishlane/pkg/errors"
	"github.com/wishlane/wishlane/pkg/logger"
)

type HandlerManager struct {
	Config      *config.Config
	UserSvc     *services.UserService
	FriendSvc   *services.FriendService
	WishlistSvc *services.WishlistService
	ItemSvc     *services.ItemService
	ExportSvc   *services.ExportService
}

func NewHandlerManager(
	cfg *config.Config,
	userSvc *services.UserService,
	friendSvc *services.FriendService,
	wishlistSvc *services.WishlistService,
	itemSvc *services.ItemService,
	exportSvc *services.ExportService,
) *HandlerManager {
	return &HandlerManager{
		Config:      cfg,
		UserSvc:     userSvc,
		FriendSvc:   friendSvc,
		WishlistSvc: wishlistSvc,
		ItemSvc:     itemSvc,
		ExportSvc:   exportSvc,
	}
}

// fail converts a service error into the matching HTTP response. Codes
// outside the known set collapse to 500 without leaking detail.
func fail(c *fiber.Ctx, err error) error {
	status := statusFor(apperrors.Code(err))
	message := "internal error"
	if appErr, ok := err.(*apperrors.AppError); ok && status < fiber.StatusInternalServerError {
		message = appErr.Message
	}
	if status >= fiber.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func statusFor(code string) int {
	switch code {
	case apperrors.ErrCodeValidation:
		return fiber.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return fiber.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return fiber.StatusForbidden
	case apperrors.ErrCodeNotFound:
		return fiber.StatusNotFound
	case apperrors.ErrCodeAlreadyExists:
		return fiber.StatusConflict
	case apperrors.ErrCodeRateLimitExceeded:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value, err := c.ParamsInt(name)
	if err != nil || value <= 0 {
		return 0, apperrors.New(apperrors.ErrCodeValidation, "invalid "+name)
	}
	return uint(value), nil
}
