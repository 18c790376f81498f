package services

import (
	"sort"
	"strings"
	"time"

	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/internal/security"
	"github.com/wishlane/wishlane/pkg/errors"
	"github.com/wishlane/wishlane/pkg/logger"
)

// WishlistInput carries the caller-supplied wishlist fields.
type WishlistInput struct {
	Name                        string    `json:"name"`
	EndDate                     time.Time `json:"endDate"`
	VisibilityPolicy            string    `json:"visibilityPolicy"`
	ReservationPolicy           string    `json:"reservationPolicy"`
	ReservationVisibilityPolicy string    `json:"reservationVisibilityPolicy"`
	CompletedGiftPolicy         string    `json:"completedGiftPolicy"`
}

type WishlistService struct {
	wishlists WishlistStore
	users     UserStore
	policy    *PolicyService
}

func NewWishlistService(wishlists WishlistStore, users UserStore, policy *PolicyService) *WishlistService {
	return &WishlistService{
		wishlists: wishlists,
		users:     users,
		policy:    policy,
	}
}

func validateWishlistInput(input *WishlistInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.New(errors.ErrCodeValidation, "invalid wishlist name")
	}
	if input.EndDate.IsZero() {
		return errors.New(errors.ErrCodeValidation, "invalid wishlist end date")
	}
	if input.EndDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return errors.New(errors.ErrCodeValidation, "end date cannot be in the past")
	}
	if !models.ValidVisibilityPolicy(input.VisibilityPolicy) ||
		!models.ValidReservationPolicy(input.ReservationPolicy) ||
		!models.ValidReservationVisibilityPolicy(input.ReservationVisibilityPolicy) ||
		!models.ValidCompletedGiftPolicy(input.CompletedGiftPolicy) {
		return errors.New(errors.ErrCodeValidation, "wishlist policies must be specified")
	}
	return nil
}

func applyInput(wishlist *models.Wishlist, input *WishlistInput) {
	wishlist.Name = security.SanitizeHTML(security.SanitizeString(input.Name))
	wishlist.EndDate = input.EndDate
	wishlist.VisibilityPolicy = input.VisibilityPolicy
	wishlist.ReservationPolicy = input.ReservationPolicy
	wishlist.ReservationVisibilityPolicy = input.ReservationVisibilityPolicy
	wishlist.CompletedGiftPolicy = input.CompletedGiftPolicy
}

// Create makes a new wishlist owned by the caller.
func (s *WishlistService) Create(ownerID uint, input *WishlistInput) (*models.Wishlist, error) {
	if err := validateWishlistInput(input); err != nil {
		return nil, err
	}

	wishlist := &models.Wishlist{OwnerID: ownerID}
	applyInput(wishlist, input)

	if err := s.wishlists.Create(wishlist); err != nil {
		return nil, err
	}

	logger.Info("Wishlist created", "wishlist_id", wishlist.ID, "owner_id", ownerID)
	return wishlist, nil
}

// Update replaces the mutable fields of a wishlist. Owner only.
func (s *WishlistService) Update(userID, wishlistID uint, input *WishlistInput) (*models.Wishlist, error) {
	wishlist, err := s.wishlists.GetByID(wishlistID)
	if err != nil {
		return nil, err
	}

	if wishlist.OwnerID != userID {
		return nil, errors.New(errors.ErrCodeForbidden, "only the owner can update a wishlist")
	}

	if err := validateWishlistInput(input); err != nil {
		return nil, err
	}

	applyInput(wishlist, input)
	if err := s.wishlists.Save(wishlist); err != nil {
		return nil, err
	}

	return wishlist, nil
}

// Delete removes a wishlist and its items. Owner only.
func (s *WishlistService) Delete(userID, wishlistID uint) error {
	wishlist, err := s.wishlists.GetByID(wishlistID)
	if err != nil {
		return err
	}

	if wishlist.OwnerID != userID {
		return errors.New(errors.ErrCodeForbidden, "only the owner can delete a wishlist")
	}

	logger.Info("Deleting wishlist", "wishlist_id", wishlistID, "owner_id", userID)
	return s.wishlists.DeleteWithItems(wishlistID)
}

// GetVisible fetches a wishlist the viewer is allowed to see. A wishlist
// that exists but is hidden from the viewer returns the same not-found
// error as a missing one, so strangers cannot probe for existence.
func (s *WishlistService) GetVisible(viewerID, wishlistID uint) (*models.Wishlist, error) {
	wishlist, err := s.wishlists.GetByID(wishlistID)
	if err != nil {
		return nil, err
	}

	visible, err := s.policy.IsVisible(wishlist, viewerID)
	if err != nil {
		return nil, err
	}
	if !visible {
		logger.Warn("Wishlist access denied", "wishlist_id", wishlistID, "viewer_id", viewerID)
		return nil, errors.New(errors.ErrCodeNotFound, "wishlist not found")
	}

	return wishlist, nil
}

// ListMine returns all of the caller's wishlists.
func (s *WishlistService) ListMine(userID uint) ([]models.Wishlist, error) {
	wishlists, err := s.wishlists.ListByOwner(userID)
	if err != nil {
		return nil, err
	}

	sortWishlists(wishlists)
	return wishlists, nil
}

// ListForUser returns the named user's wishlists filtered down to those
// the viewer may see.
func (s *WishlistService) ListForUser(viewerID uint, username string) ([]models.Wishlist, error) {
	target, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	wishlists, err := s.wishlists.ListByOwner(target.ID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Wishlist, 0, len(wishlists))
	for i := range wishlists {
		ok, err := s.policy.IsVisible(&wishlists[i], viewerID)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, wishlists[i])
		}
	}

	sortWishlists(visible)
	return visible, nil
}

// sortWishlists orders by end date, then name case-insensitively.
func sortWishlists(wishlists []models.Wishlist) {
	sort.SliceStable(wishlists, func(i, j int) bool {
		if !wishlists[i].EndDate.Equal(wishlists[j].EndDate) {
			return wishlists[i].EndDate.Before(wishlists[j].EndDate)
		}
		return strings.ToLower(wishlists[i].Name) < strings.ToLower(wishlists[j].Name)
	})
}
