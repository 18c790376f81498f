package services

import (
	"github.com/wishlane/wishlane/internal/models"
)

// AnonymousID is the principal id used for unauthenticated viewers.
// Database ids start at 1, so zero never collides with a real user.
const AnonymousID uint = 0

// FriendChecker answers friendship queries for policy decisions.
// *FriendService satisfies it.
type FriendChecker interface {
	AreFriends(userID, otherID uint) (bool, error)
}

// PolicyService evaluates the four wishlist policy axes against a viewer.
// Decisions are plain booleans; a "no" is never an error. Unrecognized
// policy values always deny.
type PolicyService struct {
	friends FriendChecker
}

func NewPolicyService(friends FriendChecker) *PolicyService {
	return &PolicyService{friends: friends}
}

// IsVisible decides whether the viewer may see the wishlist at all.
func (s *PolicyService) IsVisible(wishlist *models.Wishlist, viewerID uint) (bool, error) {
	if viewerID != AnonymousID && viewerID == wishlist.OwnerID {
		return true, nil
	}

	switch wishlist.VisibilityPolicy {
	case models.VisibilityPublic:
		return true, nil
	case models.VisibilityFriendsOnly:
		if viewerID == AnonymousID {
			return false, nil
		}
		return s.friends.AreFriends(wishlist.OwnerID, viewerID)
	case models.VisibilityPrivate:
		return false, nil
	default:
		return false, nil
	}
}

// CanReserve decides whether the viewer may reserve items on the
// wishlist. Owners never reserve their own gifts: reservation exists to
// hide intent from the owner.
func (s *PolicyService) CanReserve(wishlist *models.Wishlist, viewerID uint) (bool, error) {
	if viewerID == AnonymousID {
		return false, nil
	}
	if viewerID == wishlist.OwnerID {
		return false, nil
	}

	switch wishlist.ReservationPolicy {
	case models.ReservationPublic:
		return true, nil
	case models.ReservationFriendsOnly:
		return s.friends.AreFriends(wishlist.OwnerID, viewerID)
	case models.ReservationDisabled:
		return false, nil
	default:
		return false, nil
	}
}

// OwnerSeesAnonymizedReservation reports whether the owner is told that
// an item is reserved without learning by whom.
func (s *PolicyService) OwnerSeesAnonymizedReservation(wishlist *models.Wishlist) bool {
	return wishlist.ReservationVisibilityPolicy == models.ReservationAnonVisible
}

// ReservationVisibleToOwner reports whether the owner can tell an item is
// reserved at all.
func (s *PolicyService) ReservationVisibleToOwner(wishlist *models.Wishlist) bool {
	return wishlist.ReservationVisibilityPolicy != models.ReservationHidden
}

// ShouldRemoveOnCompletion reports whether a completed gift is deleted
// from the wishlist instead of kept as reserved.
func (s *PolicyService) ShouldRemoveOnCompletion(wishlist *models.Wishlist) bool {
	return wishlist.CompletedGiftPolicy == models.CompletedGiftRemove
}
