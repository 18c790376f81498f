package services

import (
	"strings"

	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/internal/security"
	"github.com/wishlane/wishlane/internal/storage"
	"github.com/wishlane/wishlane/pkg/errors"
	"github.com/wishlane/wishlane/pkg/logger"
)

// ItemInput carries the caller-supplied item fields. ImageLink takes
// precedence over an uploaded image.
type ItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ShopLink    string `json:"shopLink"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	ImageLink   string `json:"imageLink"`
}

// ItemView is an item as a particular viewer is allowed to see it. The
// stored reservation is projected through the wishlist's reservation
// visibility policy; storage always keeps the true identity.
type ItemView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ShopLink    string `json:"shopLink,omitempty"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Status      string `json:"status"`
	ReservedBy  string `json:"reservedBy,omitempty"`
}

type ItemService struct {
	items     ItemStore
	wishlists WishlistStore
	policy    *PolicyService
	blobs     storage.BlobStore
}

func NewItemService(items ItemStore, wishlists WishlistStore, policy *PolicyService, blobs storage.BlobStore) *ItemService {
	return &ItemService{
		items:     items,
		wishlists: wishlists,
		policy:    policy,
		blobs:     blobs,
	}
}

func validateItemInput(input *ItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.New(errors.ErrCodeValidation, "invalid item name")
	}
	if input.Price < 0 {
		return errors.New(errors.ErrCodeValidation, "price cannot be negative")
	}
	if input.Currency == "" {
		input.Currency = models.CurrencyUSD
	}
	if !models.ValidCurrency(input.Currency) {
		return errors.New(errors.ErrCodeValidation, "unknown currency")
	}
	return nil
}

func applyItemInput(item *models.Item, input *ItemInput) {
	item.Name = security.SanitizeHTML(security.SanitizeString(input.Name))
	item.Description = security.SanitizeHTML(security.SanitizeString(input.Description))
	item.ShopLink = security.SanitizeString(input.ShopLink)
	item.Price = input.Price
	item.Currency = input.Currency
}

// ownedWishlist resolves the wishlist and checks the caller owns it.
func (s *ItemService) ownedWishlist(userID, wishlistID uint) (*models.Wishlist, error) {
	wishlist, err := s.wishlists.GetByID(wishlistID)
	if err != nil {
		return nil, err
	}
	if wishlist.OwnerID != userID {
		return nil, errors.New(errors.ErrCodeForbidden, "only the owner can manage wishlist items")
	}
	return wishlist, nil
}

// Create adds an item. Owner only; the wishlist count moves in the same
// transaction as the insert. An uploaded image (raw bytes plus content
// type) is stored in the blob store unless an external link is given.
func (s *ItemService) Create(userID, wishlistID uint, input *ItemInput, image []byte, imageType string) (*models.Item, error) {
	if _, err := s.ownedWishlist(userID, wishlistID); err != nil {
		return nil, err
	}

	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	item := &models.Item{
		WishlistID: wishlistID,
		Status:     models.ItemStatusAvailable,
	}
	applyItemInput(item, input)

	url, key, err := s.resolveImage(input, image, imageType)
	if err != nil {
		return nil, err
	}
	item.ImageURL = url
	item.ImageKey = key

	if err := s.items.CreateWithCount(item); err != nil {
		return nil, err
	}

	return item, nil
}

// Update replaces the mutable fields of an item. Owner only. The
// reservation state is untouched.
func (s *ItemService) Update(userID, wishlistID, itemID uint, input *ItemInput, image []byte, imageType string) (*models.Item, error) {
	if _, err := s.ownedWishlist(userID, wishlistID); err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item.WishlistID != wishlistID {
		return nil, errors.New(errors.ErrCodeNotFound, "item not found")
	}

	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	applyItemInput(item, input)

	url, key, err := s.resolveImage(input, image, imageType)
	if err != nil {
		return nil, err
	}
	if url != "" {
		if item.ImageKey != "" && item.ImageKey != key {
			s.removeBlob(item.ImageKey)
		}
		item.ImageURL = url
		item.ImageKey = key
	}

	if err := s.items.Save(item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes an item, its stored image, and decrements the wishlist
// count in the same transaction as the row delete.
func (s *ItemService) Delete(userID, wishlistID, itemID uint) error {
	if _, err := s.ownedWishlist(userID, wishlistID); err != nil {
		return err
	}

	item, err := s.items.GetByID(itemID)
	if err != nil {
		return err
	}
	if item.WishlistID != wishlistID {
		return errors.New(errors.ErrCodeNotFound, "item not found")
	}

	if err := s.items.DeleteWithCount(item); err != nil {
		return err
	}

	if item.ImageKey != "" {
		s.removeBlob(item.ImageKey)
	}

	return nil
}

// Reserve marks an item reserved by the actor, gated by the wishlist's
// reservation policy. A denial is reported as forbidden without
// distinguishing why.
func (s *ItemService) Reserve(itemID, actorID uint) (*models.Item, error) {
	item, err := s.items.GetByID(itemID)
	if err != nil {
		return nil, err
	}

	wishlist, err := s.wishlists.GetByID(item.WishlistID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.policy.CanReserve(wishlist, actorID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errors.New(errors.ErrCodeForbidden, "you are not allowed to reserve this item")
	}

	reserved, err := s.items.Reserve(itemID, actorID)
	if err != nil {
		return nil, err
	}

	logger.Info("Item reserved", "item_id", itemID, "wishlist_id", wishlist.ID)
	return reserved, nil
}

// Unreserve clears a reservation. Only the current reserver, or the
// wishlist owner acting as moderator, may do so.
func (s *ItemService) Unreserve(itemID, actorID uint) (*models.Item, error) {
	item, err := s.items.GetByID(itemID)
	if err != nil {
		return nil, err
	}

	wishlist, err := s.wishlists.GetByID(item.WishlistID)
	if err != nil {
		return nil, err
	}

	isReserver := item.ReservedByID != nil && *item.ReservedByID == actorID
	isOwner := wishlist.OwnerID == actorID
	if !isReserver && !isOwner {
		return nil, errors.New(errors.ErrCodeForbidden, "you are not allowed to unreserve this item")
	}

	return s.items.Unreserve(itemID)
}

// Complete marks a reserved gift as purchased. Only the reserver may
// complete it. CompletedGiftPolicy decides whether the item is removed
// from the wishlist or kept as reserved.
func (s *ItemService) Complete(itemID, actorID uint) error {
	item, err := s.items.GetByID(itemID)
	if err != nil {
		return err
	}

	if item.Status != models.ItemStatusReserved || item.ReservedByID == nil || *item.ReservedByID != actorID {
		return errors.New(errors.ErrCodeForbidden, "only the reserver can complete a gift")
	}

	wishlist, err := s.wishlists.GetByID(item.WishlistID)
	if err != nil {
		return err
	}

	if !s.policy.ShouldRemoveOnCompletion(wishlist) {
		// Policy keeps completed gifts on the list as reserved.
		return nil
	}

	if err := s.items.DeleteWithCount(item); err != nil {
		return err
	}

	if item.ImageKey != "" {
		s.removeBlob(item.ImageKey)
	}

	logger.Info("Completed gift removed", "item_id", itemID, "wishlist_id", wishlist.ID)
	return nil
}

// ListForViewer returns the wishlist's items projected for the viewer.
// Visibility of the wishlist itself must already be checked.
func (s *ItemService) ListForViewer(wishlist *models.Wishlist, viewerID uint) ([]ItemView, error) {
	items, err := s.items.ListByWishlist(wishlist.ID)
	if err != nil {
		return nil, err
	}

	views := make([]ItemView, 0, len(items))
	for i := range items {
		views = append(views, s.projectItem(&items[i], wishlist, viewerID))
	}
	return views, nil
}

// ListReservedBy returns every item the caller currently holds.
func (s *ItemService) ListReservedBy(userID uint) ([]ItemView, error) {
	items, err := s.items.ListReservedBy(userID)
	if err != nil {
		return nil, err
	}

	views := make([]ItemView, 0, len(items))
	for i := range items {
		item := &items[i]
		views = append(views, ItemView{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			ShopLink:    item.ShopLink,
			Price:       item.Price,
			Currency:    item.Currency,
			ImageURL:    item.ImageURL,
			Status:      item.Status,
		})
	}
	return views, nil
}

// projectItem applies the reservation visibility rules. The owner's view
// depends on the policy axis: hidden makes reserved items look available,
// anon_visible shows the status without the identity. Other viewers see
// the status; the reserver identity is revealed only to the reserver
// themself and, under the visible policy, to the owner.
func (s *ItemService) projectItem(item *models.Item, wishlist *models.Wishlist, viewerID uint) ItemView {
	view := ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		ShopLink:    item.ShopLink,
		Price:       item.Price,
		Currency:    item.Currency,
		ImageURL:    item.ImageURL,
		Status:      item.Status,
	}

	if item.Status != models.ItemStatusReserved {
		return view
	}

	isOwner := viewerID != AnonymousID && viewerID == wishlist.OwnerID
	isReserver := item.ReservedByID != nil && viewerID != AnonymousID && viewerID == *item.ReservedByID

	if isOwner {
		if !s.policy.ReservationVisibleToOwner(wishlist) {
			view.Status = models.ItemStatusAvailable
			return view
		}
		if s.policy.OwnerSeesAnonymizedReservation(wishlist) {
			return view
		}
		if item.ReservedBy != nil {
			view.ReservedBy = item.ReservedBy.Username
		}
		return view
	}

	if isReserver && item.ReservedBy != nil {
		view.ReservedBy = item.ReservedBy.Username
	}

	return view
}

func (s *ItemService) resolveImage(input *ItemInput, image []byte, imageType string) (string, string, error) {
	if input.ImageLink != "" {
		return security.SanitizeString(input.ImageLink), "", nil
	}
	if len(image) == 0 {
		return "", "", nil
	}
	if !security.ValidateImageContentType(imageType) {
		return "", "", errors.New(errors.ErrCodeValidation, "only image files allowed")
	}
	return s.blobs.Upload(image, imageType, "items")
}

func (s *ItemService) removeBlob(key string) {
	if err := s.blobs.Remove(key); err != nil {
		logger.Warn("Failed to remove image blob", "key", key, "error", err)
	}
}
