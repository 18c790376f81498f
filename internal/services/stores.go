package services

import (
	"github.com/wishlane/wishlane/internal/models"
)

// Store interfaces implemented by internal/repositories. Services accept
// these so the relationship state machine and policy logic can be
// exercised without a database.

type UserStore interface {
	CreateUser(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Save(user *models.User) error
	UsernameExists(username string) (bool, error)
	EmailExists(email string) (bool, error)
}

type FriendStore interface {
	LatestRequest(senderID, receiverID uint) (*models.FriendRequest, error)
	CreatePending(senderID, receiverID uint) (*models.FriendRequest, error)
	AcceptLatestPending(senderID, receiverID uint) error
	ResolveLatestPending(senderID, receiverID uint, status string) error
	PendingByReceiver(receiverID uint) ([]models.FriendRequest, error)
	PendingBySender(senderID uint) ([]models.FriendRequest, error)
	EdgePairExists(userID, friendID uint) (bool, error)
	DeleteEdgePair(userID, friendID uint) error
	ListEdges(userID uint) ([]models.FriendEdge, error)
}

type WishlistStore interface {
	Create(wishlist *models.Wishlist) error
	GetByID(id uint) (*models.Wishlist, error)
	ListByOwner(ownerID uint) ([]models.Wishlist, error)
	Save(wishlist *models.Wishlist) error
	DeleteWithItems(id uint) error
}

type ItemStore interface {
	GetByID(id uint) (*models.Item, error)
	ListByWishlist(wishlistID uint) ([]models.Item, error)
	ListReservedBy(userID uint) ([]models.Item, error)
	CreateWithCount(item *models.Item) error
	Save(item *models.Item) error
	DeleteWithCount(item *models.Item) error
	Reserve(itemID, actorID uint) (*models.Item, error)
	Unreserve(itemID uint) (*models.Item, error)
}
