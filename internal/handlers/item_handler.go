package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wishlane/wishlane/internal/middleware"
	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/internal/services"
	apperrors "github.com/wishlane/wishlane/pkg/errors"
)

// itemResponse is the owner-facing shape returned by the mutating item
// endpoints. Viewer-facing reads go through the policy projection instead.
type itemResponse struct {
	ID          uint   `json:"id"`
	WishlistID  uint   `json:"wishlistId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ShopLink    string `json:"shopLink,omitempty"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Status      string `json:"status"`
}

func toItemResponse(item *models.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		WishlistID:  item.WishlistID,
		Name:        item.Name,
		Description: item.Description,
		ShopLink:    item.ShopLink,
		Price:       item.Price,
		Currency:    item.Currency,
		ImageURL:    item.ImageURL,
		Status:      item.Status,
	}
}

// itemInputFromRequest reads the item fields from either a JSON body or a
// multipart form. Only the multipart form may carry an image file.
func (h *HandlerManager) itemInputFromRequest(c *fiber.Ctx) (*services.ItemInput, []byte, string, error) {
	contentType := c.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		var input services.ItemInput
		if err := c.BodyParser(&input); err != nil {
			return nil, nil, "", apperrors.New(apperrors.ErrCodeValidation, "invalid request body")
		}
		return &input, nil, "", nil
	}

	price, _ := strconv.ParseInt(c.FormValue("price"), 10, 64)
	input := services.ItemInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		ShopLink:    c.FormValue("shopLink"),
		Price:       price,
		Currency:    c.FormValue("currency"),
		ImageLink:   c.FormValue("imageLink"),
	}

	if _, err := c.FormFile("image"); err != nil {
		return &input, nil, "", nil
	}
	data, imageType, err := h.readUpload(c, "image")
	if err != nil {
		return nil, nil, "", err
	}
	return &input, data, imageType, nil
}

// CreateItem adds an item to one of the caller's wishlists.
func (h *HandlerManager) CreateItem(c *fiber.Ctx) error {
	wishlistID, err := parseUintParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	input, image, imageType, err := h.itemInputFromRequest(c)
	if err != nil {
		return fail(c, err)
	}

	item, err := h.ItemSvc.Create(middleware.GetUserID(c), wishlistID, input, image, imageType)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"item": toItemResponse(item),
	})
}

// UpdateItem replaces an item's attributes.
func (h *HandlerManager) UpdateItem(c *fiber.Ctx) error {
	wishlistID, err := parseUintParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		return fail(c, err)
	}

	input, image, imageType, err := h.itemInputFromRequest(c)
	if err != nil {
		return fail(c, err)
	}

	item, err := h.ItemSvc.Update(middleware.GetUserID(c), wishlistID, itemID, input, image, imageType)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"item": toItemResponse(item),
	})
}

// DeleteItem removes an item from one of the caller's wishlists.
func (h *HandlerManager) DeleteItem(c *fiber.Ctx) error {
	wishlistID, err := parseUintParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		return fail(c, err)
	}

	if err := h.ItemSvc.Delete(middleware.GetUserID(c), wishlistID, itemID); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ReserveItem marks an item as reserved by the caller.
func (h *HandlerManager) ReserveItem(c *fiber.Ctx) error {
	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		return fail(c, err)
	}

	item, err := h.ItemSvc.Reserve(itemID, middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"status": item.Status,
	})
}

// UnreserveItem releases the caller's reservation, or any reservation
// when the caller owns the wishlist.
func (h *HandlerManager) UnreserveItem(c *fiber.Ctx) error {
	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		return fail(c, err)
	}

	item, err := h.ItemSvc.Unreserve(itemID, middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"status": item.Status,
	})
}

// CompleteItem records that the caller gifted the item they reserved.
func (h *HandlerManager) CompleteItem(c *fiber.Ctx) error {
	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		return fail(c, err)
	}

	if err := h.ItemSvc.Complete(itemID, middleware.GetUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "completed",
	})
}

// ListReservedForMe returns items the caller has reserved across all
// wishlists they can still see.
func (h *HandlerManager) ListReservedForMe(c *fiber.Ctx) error {
	items, err := h.ItemSvc.ListReservedBy(middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"items": items,
	})
}
