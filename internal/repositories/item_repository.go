package repositories

import (
	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// GetByID retrieves an item with the reserver profile loaded
func (r *ItemRepository) GetByID(id uint) (*models.Item, error) {
	var item models.Item
	result := r.db.Preload("ReservedBy").First(&item, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "item not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get item")
	}

	return &item, nil
}

// ListByWishlist returns all items in a wishlist
func (r *ItemRepository) ListByWishlist(wishlistID uint) ([]models.Item, error) {
	var items []models.Item

	err := r.db.Where("wishlist_id = ?", wishlistID).
		Preload("ReservedBy").
		Order("id ASC").
		Find(&items).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list items")
	}

	return items, nil
}

// ListReservedBy returns all items a user has reserved across wishlists
func (r *ItemRepository) ListReservedBy(userID uint) ([]models.Item, error) {
	var items []models.Item

	err := r.db.Where("reserved_by_id = ? AND status = ?", userID, models.ItemStatusReserved).
		Order("id ASC").
		Find(&items).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list reserved items")
	}

	return items, nil
}

// CreateWithCount inserts the item and bumps the wishlist count in the
// same transaction so the denormalized count never tears.
func (r *ItemRepository) CreateWithCount(item *models.Item) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create item")
		}

		// UpdateColumn: the column-only bump must not run the wishlist
		// validation hooks against the empty model value.
		err := tx.Model(&models.Wishlist{}).
			Where("id = ?", item.WishlistID).
			UpdateColumn("count", gorm.Expr("count + ?", 1)).Error
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update wishlist count")
		}

		return nil
	})
}

// Save updates an item
func (r *ItemRepository) Save(item *models.Item) error {
	if err := r.db.Save(item).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update item")
	}
	return nil
}

// DeleteWithCount removes the item and decrements the wishlist count in
// the same transaction.
func (r *ItemRepository) DeleteWithCount(item *models.Item) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Item{}, item.ID)
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete item")
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.ErrCodeNotFound, "item not found")
		}

		err := tx.Model(&models.Wishlist{}).
			Where("id = ?", item.WishlistID).
			UpdateColumn("count", gorm.Expr("count - ?", 1)).Error
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update wishlist count")
		}

		return nil
	})
}

// Reserve marks an item reserved by the actor. The row is locked so two
// concurrent reservations cannot both win. Re-reserving an item the actor
// already holds is a no-op; an item held by anyone else is a conflict.
func (r *ItemRepository) Reserve(itemID, actorID uint) (*models.Item, error) {
	var item models.Item

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, itemID).Error
		if err == gorm.ErrRecordNotFound {
			return errors.New(errors.ErrCodeNotFound, "item not found")
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get item")
		}

		if item.Status == models.ItemStatusReserved {
			if item.ReservedByID != nil && *item.ReservedByID == actorID {
				return nil
			}
			return errors.New(errors.ErrCodeAlreadyExists, "item is already reserved")
		}

		item.Status = models.ItemStatusReserved
		item.ReservedByID = &actorID
		if err := tx.Save(&item).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to reserve item")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Unreserve clears the reservation. Permission checks happen in the
// service; here the only guard is that the item is actually reserved.
func (r *ItemRepository) Unreserve(itemID uint) (*models.Item, error) {
	var item models.Item

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, itemID).Error
		if err == gorm.ErrRecordNotFound {
			return errors.New(errors.ErrCodeNotFound, "item not found")
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get item")
		}

		if item.Status != models.ItemStatusReserved {
			return errors.New(errors.ErrCodeAlreadyExists, "item is not reserved")
		}

		item.Status = models.ItemStatusAvailable
		item.ReservedByID = nil
		item.ReservedBy = nil
		if err := tx.Save(&item).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to unreserve item")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}
	return &item, nil
}
