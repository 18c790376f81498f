package services

import (
	"testing"

	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/pkg/errors"
)

func TestSendRequest_Self(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")

	err := env.friendSvc.SendRequest(alice.ID, "alice")
	if errCode(err) != errors.ErrCodeValidation {
		t.Fatalf("SendRequest to self: code = %q, want %q", errCode(err), errors.ErrCodeValidation)
	}
}

func TestSendRequest_UnknownReceiver(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")

	err := env.friendSvc.SendRequest(alice.ID, "nobody")
	if errCode(err) != errors.ErrCodeNotFound {
		t.Fatalf("SendRequest to unknown user: code = %q, want %q", errCode(err), errors.ErrCodeNotFound)
	}
}

func TestSendRequest_DuplicatePending(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	env.addUser(t, "bob")

	if err := env.friendSvc.SendRequest(alice.ID, "bob"); err != nil {
		t.Fatalf("first SendRequest: %v", err)
	}

	err := env.friendSvc.SendRequest(alice.ID, "bob")
	if errCode(err) != errors.ErrCodeAlreadyExists {
		t.Fatalf("second SendRequest: code = %q, want %q", errCode(err), errors.ErrCodeAlreadyExists)
	}
}

func TestSendRequest_NewCycleAfterTerminal(t *testing.T) {
	tests := []struct {
		name    string
		resolve func(env *testEnv, senderID, receiverID uint) error
	}{
		{
			name: "after rejection",
			resolve: func(env *testEnv, senderID, receiverID uint) error {
				return env.friendSvc.Reject(receiverID, "alice")
			},
		},
		{
			name: "after cancellation",
			resolve: func(env *testEnv, senderID, receiverID uint) error {
				return env.friendSvc.Cancel(senderID, "bob")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			alice := env.addUser(t, "alice")
			bob := env.addUser(t, "bob")

			if err := env.friendSvc.SendRequest(alice.ID, "bob"); err != nil {
				t.Fatalf("SendRequest: %v", err)
			}
			if err := tt.resolve(env, alice.ID, bob.ID); err != nil {
				t.Fatalf("resolve: %v", err)
			}

			// Terminal state allows a fresh cycle.
			if err := env.friendSvc.SendRequest(alice.ID, "bob"); err != nil {
				t.Fatalf("SendRequest after terminal: %v", err)
			}

			outgoing, err := env.friendSvc.OutgoingRequests(alice.ID)
			if err != nil {
				t.Fatalf("OutgoingRequests: %v", err)
			}
			if len(outgoing) != 1 {
				t.Fatalf("outgoing = %d requests, want 1", len(outgoing))
			}
		})
	}
}

func TestAccept_CreatesSymmetricFriendship(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")

	env.befriend(t, alice, bob)

	for _, pair := range [][2]uint{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		ok, err := env.friendSvc.AreFriends(pair[0], pair[1])
		if err != nil {
			t.Fatalf("AreFriends(%d, %d): %v", pair[0], pair[1], err)
		}
		if !ok {
			t.Errorf("AreFriends(%d, %d) = false, want true", pair[0], pair[1])
		}
	}

	friends, err := env.friendSvc.ListFriends(alice.ID)
	if err != nil {
		t.Fatalf("ListFriends: %v", err)
	}
	if len(friends) != 1 || friends[0].Username != "bob" {
		t.Errorf("ListFriends(alice) = %+v, want [bob]", friends)
	}
}

func TestSendRequest_AlreadyFriends(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")
	env.befriend(t, alice, bob)

	err := env.friendSvc.SendRequest(alice.ID, "bob")
	if errCode(err) != errors.ErrCodeAlreadyExists {
		t.Fatalf("SendRequest while friends: code = %q, want %q", errCode(err), errors.ErrCodeAlreadyExists)
	}
}

func TestSendRequest_RefriendAfterUnfriend(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")
	env.befriend(t, alice, bob)

	if err := env.friendSvc.RemoveFriend(alice.ID, "bob"); err != nil {
		t.Fatalf("RemoveFriend: %v", err)
	}

	ok, err := env.friendSvc.AreFriends(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("AreFriends after unfriend: %v", err)
	}
	if ok {
		t.Fatal("AreFriends = true after unfriend, want false")
	}

	// The latest request is accepted but the edges are gone, so a new
	// cycle must be allowed.
	env.befriend(t, alice, bob)

	ok, err = env.friendSvc.AreFriends(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("AreFriends after re-friending: %v", err)
	}
	if !ok {
		t.Fatal("AreFriends = false after re-friending, want true")
	}
}

func TestTerminalRequestsAreImmutable(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")

	if err := env.friendSvc.SendRequest(alice.ID, "bob"); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if err := env.friendSvc.Cancel(alice.ID, "bob"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	// The cancelled row cannot be accepted, rejected, or re-cancelled.
	if err := env.friendSvc.Accept(bob.ID, "alice"); errCode(err) != errors.ErrCodeNotFound {
		t.Errorf("Accept after cancel: code = %q, want %q", errCode(err), errors.ErrCodeNotFound)
	}
	if err := env.friendSvc.Reject(bob.ID, "alice"); errCode(err) != errors.ErrCodeNotFound {
		t.Errorf("Reject after cancel: code = %q, want %q", errCode(err), errors.ErrCodeNotFound)
	}
	if err := env.friendSvc.Cancel(alice.ID, "bob"); errCode(err) != errors.ErrCodeNotFound {
		t.Errorf("Cancel after cancel: code = %q, want %q", errCode(err), errors.ErrCodeNotFound)
	}

	ok, err := env.friendSvc.AreFriends(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("AreFriends: %v", err)
	}
	if ok {
		t.Error("AreFriends = true after cancelled request, want false")
	}
}

func TestRemoveFriend_Self(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")

	err := env.friendSvc.RemoveFriend(alice.ID, "alice")
	if errCode(err) != errors.ErrCodeValidation {
		t.Fatalf("RemoveFriend(self): code = %q, want %q", errCode(err), errors.ErrCodeValidation)
	}
}

func TestRemoveFriend_NotFriends(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	env.addUser(t, "bob")

	err := env.friendSvc.RemoveFriend(alice.ID, "bob")
	if errCode(err) != errors.ErrCodeNotFound {
		t.Fatalf("RemoveFriend without friendship: code = %q, want %q", errCode(err), errors.ErrCodeNotFound)
	}
}

func TestAreFriends_SelfShortcut(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")

	ok, err := env.friendSvc.AreFriends(alice.ID, alice.ID)
	if err != nil {
		t.Fatalf("AreFriends(self): %v", err)
	}
	if !ok {
		t.Fatal("AreFriends(self) = false, want true")
	}
}

func TestPendingListings(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")
	carol := env.addUser(t, "carol")

	if err := env.friendSvc.SendRequest(alice.ID, "bob"); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if err := env.friendSvc.SendRequest(carol.ID, "bob"); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}

	incoming, err := env.friendSvc.IncomingRequests(bob.ID)
	if err != nil {
		t.Fatalf("IncomingRequests: %v", err)
	}
	if len(incoming) != 2 {
		t.Fatalf("incoming = %d requests, want 2", len(incoming))
	}
	for _, req := range incoming {
		if req.Username != "alice" && req.Username != "carol" {
			t.Errorf("incoming request from %q, want alice or carol", req.Username)
		}
	}

	outgoing, err := env.friendSvc.OutgoingRequests(alice.ID)
	if err != nil {
		t.Fatalf("OutgoingRequests: %v", err)
	}
	if len(outgoing) != 1 || outgoing[0].Username != "bob" {
		t.Fatalf("outgoing = %+v, want single request to bob", outgoing)
	}
}

func TestAccept_CrossDirectionRequests(t *testing.T) {
	env := newTestEnv()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")

	if err := env.friendSvc.SendRequest(alice.ID, "bob"); err != nil {
		t.Fatalf("SendRequest alice→bob: %v", err)
	}
	if err := env.friendSvc.SendRequest(bob.ID, "alice"); err != nil {
		t.Fatalf("SendRequest bob→alice: %v", err)
	}

	if err := env.friendSvc.Accept(bob.ID, "alice"); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	// The friendship already exists; accepting the mirror request still
	// resolves its pending row.
	if err := env.friendSvc.Accept(alice.ID, "bob"); err != nil {
		t.Fatalf("mirror accept: %v", err)
	}

	ok, err := env.friendSvc.AreFriends(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("AreFriends: %v", err)
	}
	if !ok {
		t.Error("AreFriends = false after both accepts, want true")
	}

	for _, user := range []*models.User{alice, bob} {
		incoming, err := env.friendSvc.IncomingRequests(user.ID)
		if err != nil {
			t.Fatalf("IncomingRequests(%s): %v", user.Username, err)
		}
		if len(incoming) != 0 {
			t.Errorf("incoming for %s = %+v, want none", user.Username, incoming)
		}
	}
}
