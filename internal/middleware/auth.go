package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wishlane/wishlane/internal/security"
	"github.com/wishlane/wishlane/internal/services"
)

// RequireAuth validates the bearer token and stores the caller identity
// in the request context.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := claimsFromRequest(c, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)

		return c.Next()
	}
}

// OptionalAuth resolves the caller identity when a valid token is present
// and lets the request through as anonymous otherwise. Handlers behind it
// see the anonymous viewer ID when no token was supplied.
func OptionalAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := claimsFromRequest(c, secret)
		if err == nil {
			c.Locals("userID", claims.UserID)
			c.Locals("username", claims.Username)
		}
		return c.Next()
	}
}

func claimsFromRequest(c *fiber.Ctx, secret string) (*security.Claims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		return nil, fiber.ErrUnauthorized
	}
	return security.ValidateJWT(token, secret)
}

// GetUserID returns the authenticated user ID from the request context,
// or the anonymous viewer ID when the request carried no valid token.
func GetUserID(c *fiber.Ctx) uint {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return services.AnonymousID
	}
	return userID
}

// GetUsername returns the authenticated username from the request context.
func GetUsername(c *fiber.Ctx) string {
	username, ok := c.Locals("username").(string)
	if !ok {
		return ""
	}
	return username
}
