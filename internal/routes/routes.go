package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wishlane/wishlane/internal/handlers"
	"github.com/wishlane/wishlane/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, h *handlers.HandlerManager, limiter *middleware.RateLimiter) {
	secret := h.Config.JWTSecret
	auth := middleware.RequireAuth(secret)
	optional := middleware.OptionalAuth(secret)

	// API v1 group
	api := app.Group("/api/v1", optional, limiter.Handler())

	// Health check (public)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Register)
	authGroup.Post("/login", h.Login)
	authGroup.Get("/me", auth, h.Me)

	// User routes
	users := api.Group("/users")
	users.Get("/:username", h.GetProfile)
	users.Get("/:username/wishlists", h.ListUserWishlists)
	users.Put("/me/profile", auth, h.UpdateProfile)
	users.Post("/me/avatar", auth, h.UploadAvatar)
	users.Delete("/me/avatar", auth, h.DeleteAvatar)

	// Friend routes (protected)
	friends := api.Group("/friends", auth)
	friends.Get("/", h.ListFriends)
	friends.Delete("/:username", h.RemoveFriend)
	friends.Post("/requests", h.SendFriendRequest)
	friends.Get("/requests/incoming", h.IncomingFriendRequests)
	friends.Get("/requests/outgoing", h.OutgoingFriendRequests)
	friends.Post("/requests/:username/accept", h.AcceptFriendRequest)
	friends.Post("/requests/:username/reject", h.RejectFriendRequest)
	friends.Delete("/requests/:username", h.CancelFriendRequest)

	// Wishlist routes; reads stay open so shared links work for
	// anonymous viewers under the public policies.
	wishlists := api.Group("/wishlists")
	wishlists.Post("/", auth, h.CreateWishlist)
	wishlists.Get("/mine", auth, h.ListMyWishlists)
	wishlists.Get("/:id", h.GetWishlist)
	wishlists.Get("/:id/export", h.ExportWishlist)
	wishlists.Put("/:id", auth, h.UpdateWishlist)
	wishlists.Delete("/:id", auth, h.DeleteWishlist)

	// Item routes
	wishlists.Post("/:id/items", auth, h.CreateItem)
	wishlists.Put("/:id/items/:itemId", auth, h.UpdateItem)
	wishlists.Delete("/:id/items/:itemId", auth, h.DeleteItem)

	items := api.Group("/items", auth)
	items.Get("/reserved", h.ListReservedForMe)
	items.Post("/:itemId/reserve", h.ReserveItem)
	items.Delete("/:itemId/reserve", h.UnreserveItem)
	items.Post("/:itemId/complete", h.CompleteItem)
}
