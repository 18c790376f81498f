package services

import (
	"testing"
	"time"

	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/pkg/errors"
)

var defaultPolicies = [4]string{
	models.VisibilityPublic,
	models.ReservationPublic,
	models.ReservationVisible,
	models.CompletedGiftKeep,
}

func TestCreateWishlist_Validation(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")

	tests := []struct {
		name  string
		input WishlistInput
	}{
		{
			name: "empty name",
			input: WishlistInput{
				Name:                        "   ",
				EndDate:                     futureDate(),
				VisibilityPolicy:            models.VisibilityPublic,
				ReservationPolicy:           models.ReservationPublic,
				ReservationVisibilityPolicy: models.ReservationVisible,
				CompletedGiftPolicy:         models.CompletedGiftKeep,
			},
		},
		{
			name: "missing end date",
			input: WishlistInput{
				Name:                        "birthday",
				VisibilityPolicy:            models.VisibilityPublic,
				ReservationPolicy:           models.ReservationPublic,
				ReservationVisibilityPolicy: models.ReservationVisible,
				CompletedGiftPolicy:         models.CompletedGiftKeep,
			},
		},
		{
			name: "end date in the past",
			input: WishlistInput{
				Name:                        "birthday",
				EndDate:                     time.Now().AddDate(0, 0, -7),
				VisibilityPolicy:            models.VisibilityPublic,
				ReservationPolicy:           models.ReservationPublic,
				ReservationVisibilityPolicy: models.ReservationVisible,
				CompletedGiftPolicy:         models.CompletedGiftKeep,
			},
		},
		{
			name: "unknown visibility policy",
			input: WishlistInput{
				Name:                        "birthday",
				EndDate:                     futureDate(),
				VisibilityPolicy:            "shared",
				ReservationPolicy:           models.ReservationPublic,
				ReservationVisibilityPolicy: models.ReservationVisible,
				CompletedGiftPolicy:         models.CompletedGiftKeep,
			},
		},
		{
			name: "missing policies",
			input: WishlistInput{
				Name:    "birthday",
				EndDate: futureDate(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.wishlistSvc.Create(alice.ID, &tt.input)
			if errCode(err) != errors.ErrCodeValidation {
				t.Errorf("Create: code = %q, want %q", errCode(err), errors.ErrCodeValidation)
			}
		})
	}
}

func TestUpdateWishlist_OwnerOnly(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")
	wishlist := env.addWishlist(t, alice, "birthday", defaultPolicies)

	input := &WishlistInput{
		Name:                        "renamed",
		EndDate:                     futureDate(),
		VisibilityPolicy:            models.VisibilityPrivate,
		ReservationPolicy:           models.ReservationDisabled,
		ReservationVisibilityPolicy: models.ReservationHidden,
		CompletedGiftPolicy:         models.CompletedGiftRemove,
	}

	if _, err := env.wishlistSvc.Update(bob.ID, wishlist.ID, input); errCode(err) != errors.ErrCodeForbidden {
		t.Fatalf("Update by non-owner: code = %q, want %q", errCode(err), errors.ErrCodeForbidden)
	}

	updated, err := env.wishlistSvc.Update(alice.ID, wishlist.ID, input)
	if err != nil {
		t.Fatalf("Update by owner: %v", err)
	}
	if updated.Name != "renamed" || updated.VisibilityPolicy != models.VisibilityPrivate {
		t.Errorf("Update result = %q/%q, want renamed/private", updated.Name, updated.VisibilityPolicy)
	}
}

func TestDeleteWishlist_OwnerOnly(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")
	wishlist := env.addWishlist(t, alice, "birthday", defaultPolicies)
	env.addItem(t, alice, wishlist.ID, "socks")

	if err := env.wishlistSvc.Delete(bob.ID, wishlist.ID); errCode(err) != errors.ErrCodeForbidden {
		t.Fatalf("Delete by non-owner: code = %q, want %q", errCode(err), errors.ErrCodeForbidden)
	}

	if err := env.wishlistSvc.Delete(alice.ID, wishlist.ID); err != nil {
		t.Fatalf("Delete by owner: %v", err)
	}
	if _, err := env.wishlists.GetByID(wishlist.ID); errCode(err) != errors.ErrCodeNotFound {
		t.Error("wishlist still present after delete")
	}
	if len(env.items.items) != 0 {
		t.Errorf("items remaining after wishlist delete = %d, want 0", len(env.items.items))
	}
}

// A wishlist hidden from the viewer answers exactly like a missing one.
func TestGetVisible_UniformDenial(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")
	hidden := env.addWishlist(t, alice, "secret", [4]string{
		models.VisibilityPrivate,
		models.ReservationDisabled,
		models.ReservationHidden,
		models.CompletedGiftKeep,
	})

	_, errHidden := env.wishlistSvc.GetVisible(bob.ID, hidden.ID)
	_, errMissing := env.wishlistSvc.GetVisible(bob.ID, 9999)

	if errCode(errHidden) != errors.ErrCodeNotFound {
		t.Fatalf("hidden wishlist: code = %q, want %q", errCode(errHidden), errors.ErrCodeNotFound)
	}
	if errHidden.Error() != errMissing.Error() {
		t.Errorf("denial leaks existence: %q vs %q", errHidden, errMissing)
	}

	// The owner still sees it.
	if _, err := env.wishlistSvc.GetVisible(alice.ID, hidden.ID); err != nil {
		t.Fatalf("GetVisible by owner: %v", err)
	}
}

func TestListForUser_FiltersByVisibility(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")
	stranger := env.addUser(t, "carol")
	env.befriend(t, alice, bob)

	env.addWishlist(t, alice, "public", defaultPolicies)
	env.addWishlist(t, alice, "friends", [4]string{
		models.VisibilityFriendsOnly,
		models.ReservationFriendsOnly,
		models.ReservationVisible,
		models.CompletedGiftKeep,
	})
	env.addWishlist(t, alice, "private", [4]string{
		models.VisibilityPrivate,
		models.ReservationDisabled,
		models.ReservationHidden,
		models.CompletedGiftKeep,
	})

	tests := []struct {
		name     string
		viewerID uint
		want     []string
	}{
		{"owner sees all", alice.ID, []string{"friends", "private", "public"}},
		{"friend sees public and friends_only", bob.ID, []string{"friends", "public"}},
		{"stranger sees public only", stranger.ID, []string{"public"}},
		{"anonymous sees public only", AnonymousID, []string{"public"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wishlists, err := env.wishlistSvc.ListForUser(tt.viewerID, "alice")
			if err != nil {
				t.Fatalf("ListForUser: %v", err)
			}
			var names []string
			for _, w := range wishlists {
				names = append(names, w.Name)
			}
			if len(names) != len(tt.want) {
				t.Fatalf("ListForUser = %v, want %v", names, tt.want)
			}
			for i := range names {
				if names[i] != tt.want[i] {
					t.Errorf("ListForUser = %v, want %v", names, tt.want)
					break
				}
			}
		})
	}
}

func TestSortWishlists(t *testing.T) {
	base := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	wishlists := []models.Wishlist{
		{Name: "zoo trip", EndDate: base.AddDate(0, 1, 0)},
		{Name: "Books", EndDate: base},
		{Name: "art supplies", EndDate: base},
	}

	sortWishlists(wishlists)

	want := []string{"art supplies", "Books", "zoo trip"}
	for i, w := range wishlists {
		if w.Name != want[i] {
			t.Fatalf("sorted[%d] = %q, want %q", i, w.Name, want[i])
		}
	}
}

// Full walkthrough: registration, friendship, a friends-only list with
// anonymous reservation visibility, reserve, and completion.
func TestGiftFlow(t *testing.T) {
	env := newTestEnv()

	owner, err := env.userSvc.Register(&RegistrationInput{
		Username: "owner", Email: "owner@example.com", Password: "correcthorse",
	})
	if err != nil {
		t.Fatalf("Register(owner): %v", err)
	}
	giver, err := env.userSvc.Register(&RegistrationInput{
		Username: "giver", Email: "giver@example.com", Password: "batterystaple",
	})
	if err != nil {
		t.Fatalf("Register(giver): %v", err)
	}

	env.befriend(t, giver, owner)

	wishlist := env.addWishlist(t, owner, "wedding", [4]string{
		models.VisibilityFriendsOnly,
		models.ReservationFriendsOnly,
		models.ReservationAnonVisible,
		models.CompletedGiftRemove,
	})
	item := env.addItem(t, owner, wishlist.ID, "toaster")

	// The giver can see the list and reserve the item.
	if _, err := env.wishlistSvc.GetVisible(giver.ID, wishlist.ID); err != nil {
		t.Fatalf("GetVisible by friend: %v", err)
	}
	if _, err := env.itemSvc.Reserve(item.ID, giver.ID); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	// The owner sees the reservation status but not the giver.
	ownerView, err := env.itemSvc.ListForViewer(wishlist, owner.ID)
	if err != nil {
		t.Fatalf("ListForViewer(owner): %v", err)
	}
	if ownerView[0].Status != models.ItemStatusReserved {
		t.Errorf("owner sees status %q, want reserved", ownerView[0].Status)
	}
	if ownerView[0].ReservedBy != "" {
		t.Errorf("owner sees reserver %q, want anonymized", ownerView[0].ReservedBy)
	}

	// Completion removes the gift from the list.
	if err := env.itemSvc.Complete(item.ID, giver.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	views, err := env.itemSvc.ListForViewer(wishlist, owner.ID)
	if err != nil {
		t.Fatalf("ListForViewer after completion: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("items after completion = %d, want 0", len(views))
	}
	if env.wishlists.wishlists[wishlist.ID].Count != 0 {
		t.Errorf("wishlist count = %d, want 0", env.wishlists.wishlists[wishlist.ID].Count)
	}
}
