package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/wishlane/wishlane/internal/middleware"
	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/internal/services"
)

type wishlistResponse struct {
	ID                          uint   `json:"id"`
	Name                        string `json:"name"`
	EndDate                     string `json:"endDate"`
	Owner                       string `json:"owner"`
	Count                       int    `json:"count"`
	VisibilityPolicy            string `json:"visibilityPolicy"`
	ReservationPolicy           string `json:"reservationPolicy"`
	ReservationVisibilityPolicy string `json:"reservationVisibilityPolicy"`
	CompletedGiftPolicy         string `json:"completedGiftPolicy"`
}

func toWishlistResponse(wishlist *models.Wishlist) wishlistResponse {
	return wishlistResponse{
		ID:                          wishlist.ID,
		Name:                        wishlist.Name,
		EndDate:                     wishlist.EndDate.Format("2006-01-02"),
		Owner:                       wishlist.Owner.Username,
		Count:                       wishlist.Count,
		VisibilityPolicy:            wishlist.VisibilityPolicy,
		ReservationPolicy:           wishlist.ReservationPolicy,
		ReservationVisibilityPolicy: wishlist.ReservationVisibilityPolicy,
		CompletedGiftPolicy:         wishlist.CompletedGiftPolicy,
	}
}

func toWishlistResponses(wishlists []models.Wishlist) []wishlistResponse {
	out := make([]wishlistResponse, 0, len(wishlists))
	for i := range wishlists {
		out = append(out, toWishlistResponse(&wishlists[i]))
	}
	return out
}

// CreateWishlist creates a wishlist owned by the caller.
func (h *HandlerManager) CreateWishlist(c *fiber.Ctx) error {
	var input services.WishlistInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	wishlist, err := h.WishlistSvc.Create(middleware.GetUserID(c), &input)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"wishlist": toWishlistResponse(wishlist),
	})
}

// UpdateWishlist replaces a wishlist's attributes and policies.
func (h *HandlerManager) UpdateWishlist(c *fiber.Ctx) error {
	wishlistID, err := parseUintParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var input services.WishlistInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	wishlist, err := h.WishlistSvc.Update(middleware.GetUserID(c), wishlistID, &input)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"wishlist": toWishlistResponse(wishlist),
	})
}

// DeleteWishlist removes a wishlist and its items.
func (h *HandlerManager) DeleteWishlist(c *fiber.Ctx) error {
	wishlistID, err := parseUintParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.WishlistSvc.Delete(middleware.GetUserID(c), wishlistID); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListMyWishlists returns all of the caller's own wishlists.
func (h *HandlerManager) ListMyWishlists(c *fiber.Ctx) error {
	wishlists, err := h.WishlistSvc.ListMine(middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"wishlists": toWishlistResponses(wishlists),
	})
}

// ListUserWishlists returns the named user's wishlists the viewer may see.
func (h *HandlerManager) ListUserWishlists(c *fiber.Ctx) error {
	wishlists, err := h.WishlistSvc.ListForUser(middleware.GetUserID(c), c.Params("username"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"wishlists": toWishlistResponses(wishlists),
	})
}

// GetWishlist returns a single wishlist with its items as the viewer may
// see them.
func (h *HandlerManager) GetWishlist(c *fiber.Ctx) error {
	wishlistID, err := parseUintParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	viewerID := middleware.GetUserID(c)
	wishlist, err := h.WishlistSvc.GetVisible(viewerID, wishlistID)
	if err != nil {
		return fail(c, err)
	}

	items, err := h.ItemSvc.ListForViewer(wishlist, viewerID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"wishlist": toWishlistResponse(wishlist),
		"items":    items,
	})
}

// ExportWishlist streams the wishlist as an XLSX workbook.
func (h *HandlerManager) ExportWishlist(c *fiber.Ctx) error {
	wishlistID, err := parseUintParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	data, filename, err := h.ExportSvc.ExportWishlist(middleware.GetUserID(c), wishlistID)
	if err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
