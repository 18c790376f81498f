package models

import (
	"time"

	"gorm.io/gorm"
)

type Item struct {
	ID          uint     `gorm:"primaryKey"`
	WishlistID  uint     `gorm:"not null;index"`
	Wishlist    Wishlist `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
	Name        string   `gorm:"type:varchar(255);not null"`
	Description string   `gorm:"type:text"`
	ShopLink    string   `gorm:"type:varchar(500)"`
	Price       int64    `gorm:"not null;default:0"`
	Currency    string   `gorm:"type:varchar(10);not null;default:'USD'"`
	ImageURL    string   `gorm:"type:varchar(500)"`
	ImageKey    string   `gorm:"type:varchar(255)"`

	// ReservedByID is set if and only if Status is reserved. The true
	// identity is always stored; anonymization happens at read time.
	Status       string    `gorm:"type:varchar(20);not null;default:'available'"`
	ReservedByID *uint     `gorm:"index"`
	ReservedBy   *User     `gorm:"foreignKey:ReservedByID"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Item status constants
const (
	ItemStatusAvailable = "available"
	ItemStatusReserved  = "reserved"
)

// Currency constants
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyRUB = "RUB"
	CurrencyBYN = "BYN"
	CurrencyKZT = "KZT"
)

var currencySymbols = map[string]string{
	CurrencyUSD: "$",
	CurrencyEUR: "€",
	CurrencyGBP: "£",
	CurrencyRUB: "₽",
	CurrencyBYN: "Br",
	CurrencyKZT: "₸",
}

func ValidCurrency(c string) bool {
	_, ok := currencySymbols[c]
	return ok
}

// CurrencySymbol returns the display symbol for a currency code.
func CurrencySymbol(c string) string {
	return currencySymbols[c]
}

// BeforeSave hook enforcing the reservation invariant
func (i *Item) BeforeSave(tx *gorm.DB) error {
	if i.Name == "" {
		return gorm.ErrInvalidData
	}
	if !ValidCurrency(i.Currency) {
		return gorm.ErrInvalidData
	}
	switch i.Status {
	case ItemStatusAvailable:
		if i.ReservedByID != nil {
			return gorm.ErrInvalidData
		}
	case ItemStatusReserved:
		if i.ReservedByID == nil {
			return gorm.ErrInvalidData
		}
	default:
		return gorm.ErrInvalidData
	}
	return nil
}

func (Item) TableName() string {
	return "items"
}
