package services

import (
	"bytes"
	"testing"

	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/pkg/errors"
	"github.com/xuri/excelize/v2"
)

func TestExportWishlist(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")
	wishlist := env.addWishlist(t, alice, "birthday", defaultPolicies)
	env.addItem(t, alice, wishlist.ID, "socks")
	item := env.addItem(t, alice, wishlist.ID, "mug")
	if _, err := env.itemSvc.Reserve(item.ID, bob.ID); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	exportSvc := NewExportService(env.wishlistSvc, env.itemSvc)

	data, filename, err := exportSvc.ExportWishlist(bob.ID, wishlist.ID)
	if err != nil {
		t.Fatalf("ExportWishlist: %v", err)
	}
	if filename == "" {
		t.Error("empty filename")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Wishlist")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// Header plus one row per item.
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "Name" {
		t.Errorf("header = %q, want Name", rows[0][0])
	}
	if rows[2][0] != "mug" || rows[2][5] != models.ItemStatusReserved {
		t.Errorf("item row = %v, want mug/reserved", rows[2])
	}
}

// The export respects wishlist visibility like any other read.
func TestExportWishlist_DeniedForInvisible(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")
	wishlist := env.addWishlist(t, alice, "secret", [4]string{
		models.VisibilityPrivate,
		models.ReservationDisabled,
		models.ReservationHidden,
		models.CompletedGiftKeep,
	})

	exportSvc := NewExportService(env.wishlistSvc, env.itemSvc)

	_, _, err := exportSvc.ExportWishlist(bob.ID, wishlist.ID)
	if errCode(err) != errors.ErrCodeNotFound {
		t.Fatalf("export of invisible wishlist: code = %q, want %q", errCode(err), errors.ErrCodeNotFound)
	}
}
