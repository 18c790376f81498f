package repositories

import (
	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/pkg/errors"
	"gorm.io/gorm"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Create inserts a new wishlist
func (r *WishlistRepository) Create(wishlist *models.Wishlist) error {
	if err := r.db.Create(wishlist).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create wishlist")
	}
	return nil
}

// GetByID retrieves a wishlist with its owner loaded. Owner is needed by
// every policy decision, so it is fetched explicitly here rather than
// lazily somewhere downstream.
func (r *WishlistRepository) GetByID(id uint) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	result := r.db.Preload("Owner").First(&wishlist, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "wishlist not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get wishlist")
	}

	return &wishlist, nil
}

// ListByOwner returns all wishlists owned by a user
func (r *WishlistRepository) ListByOwner(ownerID uint) ([]models.Wishlist, error) {
	var wishlists []models.Wishlist

	err := r.db.Where("owner_id = ?", ownerID).Find(&wishlists).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list wishlists")
	}

	return wishlists, nil
}

// Save updates a wishlist
func (r *WishlistRepository) Save(wishlist *models.Wishlist) error {
	if err := r.db.Save(wishlist).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update wishlist")
	}
	return nil
}

// DeleteWithItems removes a wishlist and all of its items in one
// transaction. Cascade is explicit; nothing relies on database-side
// cascade behavior.
func (r *WishlistRepository) DeleteWithItems(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wishlist_id = ?", id).Delete(&models.Item{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete wishlist items")
		}

		result := tx.Delete(&models.Wishlist{}, id)
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete wishlist")
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.ErrCodeNotFound, "wishlist not found")
		}

		return nil
	})
}
