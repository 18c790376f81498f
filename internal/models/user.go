package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint       `gorm:"primaryKey"`
	Username     string     `gorm:"uniqueIndex;type:varchar(64);not null"`
	Email        string     `gorm:"uniqueIndex;type:varchar(255);not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	FirstName    string     `gorm:"type:varchar(100)"`
	LastName     string     `gorm:"type:varchar(100)"`
	Birthday     *time.Time `gorm:"type:date"`
	AvatarURL    string     `gorm:"type:varchar(500)"`
	AvatarKey    string     `gorm:"type:varchar(255)"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

// BeforeSave hook for validation
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Username == "" {
		return gorm.ErrInvalidData
	}
	if u.Birthday != nil && u.Birthday.After(time.Now()) {
		return gorm.ErrInvalidData
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
