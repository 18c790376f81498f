package repositories

import (
	"os"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// openTestDB gives each test its own in-memory database with the full
// schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.FriendEdge{},
		&models.Wishlist{},
		&models.Item{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

func seedWishlist(t *testing.T, db *gorm.DB, ownerID uint) *models.Wishlist {
	t.Helper()

	wishlist := &models.Wishlist{
		Name:                        "Birthday",
		EndDate:                     time.Now().AddDate(0, 1, 0),
		OwnerID:                     ownerID,
		VisibilityPolicy:            models.VisibilityPublic,
		ReservationPolicy:           models.ReservationPublic,
		ReservationVisibilityPolicy: models.ReservationVisible,
		CompletedGiftPolicy:         models.CompletedGiftKeep,
	}
	if err := db.Create(wishlist).Error; err != nil {
		t.Fatalf("failed to seed wishlist: %v", err)
	}
	return wishlist
}
