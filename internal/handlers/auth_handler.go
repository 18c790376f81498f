package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wishlane/wishlane/internal/middleware"
	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/internal/services"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName,omitempty"`
	LastName  string     `json:"lastName,omitempty"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Birthday:  user.Birthday,
		AvatarURL: user.AvatarURL,
	}
}

// Register creates a new account.
func (h *HandlerManager) Register(c *fiber.Ctx) error {
	var input services.RegistrationInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.UserSvc.Register(&input)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": toUserResponse(user),
	})
}

// Login exchanges credentials for a bearer token.
func (h *HandlerManager) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	token, err := h.UserSvc.Authenticate(req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}

// Me returns the authenticated caller's own account.
func (h *HandlerManager) Me(c *fiber.Ctx) error {
	user, err := h.UserSvc.GetByID(middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"user": toUserResponse(user),
	})
}
