package repositories

import (
	"testing"

	"github.com/wishlane/wishlane/pkg/errors"
)

// Two users can request each other before either responds. Accepting one
// side creates the edge pair; accepting the mirror request must still
// resolve its pending row instead of tripping the edge primary key.
func TestAcceptLatestPending_CrossDirectionRequests(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	repo := NewFriendRepository(db)

	if _, err := repo.CreatePending(alice.ID, bob.ID); err != nil {
		t.Fatalf("CreatePending alice→bob failed: %v", err)
	}
	if _, err := repo.CreatePending(bob.ID, alice.ID); err != nil {
		t.Fatalf("CreatePending bob→alice failed: %v", err)
	}

	if err := repo.AcceptLatestPending(alice.ID, bob.ID); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}
	if err := repo.AcceptLatestPending(bob.ID, alice.ID); err != nil {
		t.Fatalf("second accept failed: %v", err)
	}

	exists, err := repo.EdgePairExists(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("EdgePairExists failed: %v", err)
	}
	if !exists {
		t.Error("expected edge pair to exist after both accepts")
	}

	for _, id := range []uint{alice.ID, bob.ID} {
		pending, err := repo.PendingByReceiver(id)
		if err != nil {
			t.Fatalf("PendingByReceiver failed: %v", err)
		}
		if len(pending) != 0 {
			t.Errorf("expected no pending requests for user %d, got %d", id, len(pending))
		}
	}
}

func TestAcceptLatestPending_NoPendingRow(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	repo := NewFriendRepository(db)

	err := repo.AcceptLatestPending(alice.ID, bob.ID)
	if errors.Code(err) != errors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND without a pending request, got %v", err)
	}
}
