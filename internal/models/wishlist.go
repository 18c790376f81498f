package models

import (
	"time"

	"gorm.io/gorm"
)

type Wishlist struct {
	ID      uint      `gorm:"primaryKey"`
	Name    string    `gorm:"type:varchar(255);not null"`
	EndDate time.Time `gorm:"type:date;not null"`
	OwnerID uint      `gorm:"not null;index"`
	Owner   User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`

	// Count is a denormalized item count, maintained in the same
	// transaction as item creation and deletion.
	Count int `gorm:"not null;default:0"`

	VisibilityPolicy            string `gorm:"type:varchar(20);not null"`
	ReservationPolicy           string `gorm:"type:varchar(20);not null"`
	ReservationVisibilityPolicy string `gorm:"type:varchar(20);not null"`
	CompletedGiftPolicy         string `gorm:"type:varchar(20);not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Visibility policy constants
const (
	VisibilityPublic      = "public"
	VisibilityFriendsOnly = "friends_only"
	VisibilityPrivate     = "private"
)

// Reservation policy constants
const (
	ReservationPublic      = "public"
	ReservationFriendsOnly = "friends_only"
	ReservationDisabled    = "disabled"
)

// Reservation visibility policy constants
const (
	ReservationVisible     = "visible"
	ReservationAnonVisible = "anon_visible"
	ReservationHidden      = "hidden"
)

// Completed gift policy constants
const (
	CompletedGiftKeep   = "keep"
	CompletedGiftRemove = "remove"
)

func ValidVisibilityPolicy(p string) bool {
	switch p {
	case VisibilityPublic, VisibilityFriendsOnly, VisibilityPrivate:
		return true
	}
	return false
}

func ValidReservationPolicy(p string) bool {
	switch p {
	case ReservationPublic, ReservationFriendsOnly, ReservationDisabled:
		return true
	}
	return false
}

func ValidReservationVisibilityPolicy(p string) bool {
	switch p {
	case ReservationVisible, ReservationAnonVisible, ReservationHidden:
		return true
	}
	return false
}

func ValidCompletedGiftPolicy(p string) bool {
	switch p {
	case CompletedGiftKeep, CompletedGiftRemove:
		return true
	}
	return false
}

// BeforeSave hook for validation
func (w *Wishlist) BeforeSave(tx *gorm.DB) error {
	if w.Name == "" {
		return gorm.ErrInvalidData
	}
	if !ValidVisibilityPolicy(w.VisibilityPolicy) ||
		!ValidReservationPolicy(w.ReservationPolicy) ||
		!ValidReservationVisibilityPolicy(w.ReservationVisibilityPolicy) ||
		!ValidCompletedGiftPolicy(w.CompletedGiftPolicy) {
		return gorm.ErrInvalidData
	}
	if w.Count < 0 {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Wishlist) TableName() string {
	return "wishlists"
}
