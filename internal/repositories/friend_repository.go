package repositories

import (
	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/pkg/errors"
	"github.com/wishlane/wishlane/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// LatestRequest returns the most recent request for the ordered
// (sender, receiver) pair regardless of status, or nil if none exists.
// Ties on created_at break by id so the result is deterministic.
func (r *FriendRepository) LatestRequest(senderID, receiverID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	result := r.db.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Order("created_at DESC, id DESC").
		First(&req)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to look up friend request")
	}

	return &req, nil
}

// CreatePending inserts a new pending request row. A new cycle is always a
// new row; terminal rows are never reopened.
func (r *FriendRepository) CreatePending(senderID, receiverID uint) (*models.FriendRequest, error) {
	req := &models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.FriendRequestStatusPending,
	}

	if err := r.db.Create(req).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create friend request")
	}

	return req, nil
}

// AcceptLatestPending transitions the most recent pending request for
// (sender, receiver) to accepted and inserts both directions of the friend
// edge. The row is locked for the duration of the transaction so two
// concurrent accepts cannot both succeed.
func (r *FriendRepository) AcceptLatestPending(senderID, receiverID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var req models.FriendRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("sender_id = ? AND receiver_id = ? AND status = ?",
				senderID, receiverID, models.FriendRequestStatusPending).
			Order("created_at DESC, id DESC").
			First(&req).Error

		if err == gorm.ErrRecordNotFound {
			return errors.New(errors.ErrCodeNotFound, "friend request not found")
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to look up friend request")
		}

		result := tx.Model(&models.FriendRequest{}).
			Where("id = ? AND status = ?", req.ID, models.FriendRequestStatusPending).
			Update("status", models.FriendRequestStatusAccepted)
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to accept friend request")
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.ErrCodeNotFound, "friend request not found")
		}

		// When both directions were pending and the mirror request was
		// accepted first, the edge pair already exists. The second accept
		// still resolves its pending row; the inserts are no-ops.
		onConflict := clause.OnConflict{DoNothing: true}
		if err := tx.Clauses(onConflict).Create(&models.FriendEdge{UserID: senderID, FriendID: receiverID}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create friend edge")
		}
		if err := tx.Clauses(onConflict).Create(&models.FriendEdge{UserID: receiverID, FriendID: senderID}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create friend edge")
		}

		return nil
	})
}

// ResolveLatestPending transitions the most recent pending request for
// (sender, receiver) to the given terminal status (rejected or cancelled).
func (r *FriendRepository) ResolveLatestPending(senderID, receiverID uint, status string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var req models.FriendRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("sender_id = ? AND receiver_id = ? AND status = ?",
				senderID, receiverID, models.FriendRequestStatusPending).
			Order("created_at DESC, id DESC").
			First(&req).Error

		if err == gorm.ErrRecordNotFound {
			return errors.New(errors.ErrCodeNotFound, "friend request not found")
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to look up friend request")
		}

		result := tx.Model(&models.FriendRequest{}).
			Where("id = ? AND status = ?", req.ID, models.FriendRequestStatusPending).
			Update("status", status)
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update friend request")
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.ErrCodeNotFound, "friend request not found")
		}

		return nil
	})
}

// PendingByReceiver lists pending requests addressed to a user, sender
// profile preloaded.
func (r *FriendRepository) PendingByReceiver(receiverID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest

	err := r.db.Where("receiver_id = ? AND status = ?", receiverID, models.FriendRequestStatusPending).
		Preload("Sender").
		Order("created_at DESC, id DESC").
		Find(&requests).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get incoming requests")
	}

	return requests, nil
}

// PendingBySender lists pending requests a user has sent, receiver profile
// preloaded.
func (r *FriendRepository) PendingBySender(senderID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest

	err := r.db.Where("sender_id = ? AND status = ?", senderID, models.FriendRequestStatusPending).
		Preload("Receiver").
		Order("created_at DESC, id DESC").
		Find(&requests).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get outgoing requests")
	}

	return requests, nil
}

// EdgePairExists checks whether both directions of the friendship exist.
// A single orphaned direction means a prior transaction was torn; that is
// surfaced as a consistency violation, never silently repaired.
func (r *FriendRepository) EdgePairExists(userID, friendID uint) (bool, error) {
	var count int64
	result := r.db.Model(&models.FriendEdge{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID).
		Count(&count)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check friendship")
	}

	switch count {
	case 0:
		return false, nil
	case 2:
		return true, nil
	default:
		logger.Error("Friend edge pair is missing its inverse row",
			"user_id", userID, "friend_id", friendID)
		return false, errors.New(errors.ErrCodeConsistency, "friendship edge pair is incomplete")
	}
}

// DeleteEdgePair removes both directions of a friendship atomically.
func (r *FriendRepository) DeleteEdgePair(userID, friendID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where(
			"(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID,
		).Delete(&models.FriendEdge{})

		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to remove friend")
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.ErrCodeNotFound, "friendship not found")
		}

		return nil
	})
}

// ListEdges returns a user's outbound friendship edges.
func (r *FriendRepository) ListEdges(userID uint) ([]models.FriendEdge, error) {
	var edges []models.FriendEdge

	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&edges).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list friends")
	}

	return edges, nil
}
