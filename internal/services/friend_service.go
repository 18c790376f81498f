package services

import (
	"time"

	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/pkg/errors"
	"github.com/wishlane/wishlane/pkg/logger"
)

// FriendProfile is the public slice of a user shown in friend and
// request listings.
type FriendProfile struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// RequestSummary describes a pending request from the caller's point of
// view: the counterpart's profile plus request metadata.
type RequestSummary struct {
	FriendProfile
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type FriendService struct {
	friends FriendStore
	users   UserStore
}

func NewFriendService(friends FriendStore, users UserStore) *FriendService {
	return &FriendService{
		friends: friends,
		users:   users,
	}
}

// SendRequest creates a new pending request from the sender to the named
// receiver. Legality depends on the most recent request for the ordered
// pair: none, rejected or cancelled allow a fresh row; pending is a
// conflict; accepted is a conflict unless the edge pair was removed by
// unfriending, in which case a new cycle starts.
func (s *FriendService) SendRequest(senderID uint, receiverUsername string) error {
	sender, err := s.users.GetByID(senderID)
	if err != nil {
		return err
	}
	receiver, err := s.users.GetByUsername(receiverUsername)
	if err != nil {
		return err
	}

	if sender.ID == receiver.ID {
		return errors.New(errors.ErrCodeValidation, "you cannot send a friend request to yourself")
	}

	last, err := s.friends.LatestRequest(sender.ID, receiver.ID)
	if err != nil {
		return err
	}

	if last == nil {
		_, err = s.friends.CreatePending(sender.ID, receiver.ID)
		return err
	}

	switch last.Status {
	case models.FriendRequestStatusRejected, models.FriendRequestStatusCancelled:
		_, err = s.friends.CreatePending(sender.ID, receiver.ID)
		return err

	case models.FriendRequestStatusPending:
		return errors.New(errors.ErrCodeAlreadyExists, "friend request is already in progress")

	case models.FriendRequestStatusAccepted:
		exists, err := s.friends.EdgePairExists(sender.ID, receiver.ID)
		if err != nil {
			return err
		}
		if exists {
			return errors.New(errors.ErrCodeAlreadyExists, "you are already friends")
		}
		// Edge removed by unfriending; a new request cycle is allowed.
		_, err = s.friends.CreatePending(sender.ID, receiver.ID)
		return err

	default:
		return errors.New(errors.ErrCodeInternalError, "unknown friend request status")
	}
}

// Accept is invoked by the receiver against the named sender. The status
// update and both edge inserts happen in one store transaction.
func (s *FriendService) Accept(receiverID uint, senderUsername string) error {
	sender, err := s.users.GetByUsername(senderUsername)
	if err != nil {
		return err
	}

	if err := s.friends.AcceptLatestPending(sender.ID, receiverID); err != nil {
		return err
	}

	logger.Info("Friend request accepted", "sender_id", sender.ID, "receiver_id", receiverID)
	return nil
}

// Reject is invoked by the receiver against the named sender.
func (s *FriendService) Reject(receiverID uint, senderUsername string) error {
	sender, err := s.users.GetByUsername(senderUsername)
	if err != nil {
		return err
	}

	return s.friends.ResolveLatestPending(sender.ID, receiverID, models.FriendRequestStatusRejected)
}

// Cancel is invoked by the sender against the named receiver.
func (s *FriendService) Cancel(senderID uint, receiverUsername string) error {
	receiver, err := s.users.GetByUsername(receiverUsername)
	if err != nil {
		return err
	}

	return s.friends.ResolveLatestPending(senderID, receiver.ID, models.FriendRequestStatusCancelled)
}

// RemoveFriend deletes both directions of the friendship.
func (s *FriendService) RemoveFriend(userID uint, friendUsername string) error {
	friend, err := s.users.GetByUsername(friendUsername)
	if err != nil {
		return err
	}

	if friend.ID == userID {
		return errors.New(errors.ErrCodeValidation, "you cannot unfriend yourself")
	}

	return s.friends.DeleteEdgePair(userID, friend.ID)
}

// AreFriends reports whether two users are friends. A user counts as
// friends with themself; that is an authorization shortcut for ownership
// checks, not a claim about the friendship graph.
func (s *FriendService) AreFriends(userID, otherID uint) (bool, error) {
	if userID == otherID {
		return true, nil
	}
	return s.friends.EdgePairExists(userID, otherID)
}

// ListFriends resolves a user's edges into counterpart profiles.
func (s *FriendService) ListFriends(userID uint) ([]FriendProfile, error) {
	edges, err := s.friends.ListEdges(userID)
	if err != nil {
		return nil, err
	}

	profiles := make([]FriendProfile, 0, len(edges))
	for _, edge := range edges {
		friend, err := s.users.GetByID(edge.FriendID)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profileOf(friend))
	}

	return profiles, nil
}

// IncomingRequests lists pending requests addressed to the user.
func (s *FriendService) IncomingRequests(userID uint) ([]RequestSummary, error) {
	requests, err := s.friends.PendingByReceiver(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]RequestSummary, 0, len(requests))
	for _, req := range requests {
		summaries = append(summaries, RequestSummary{
			FriendProfile: profileOf(&req.Sender),
			Status:        req.Status,
			CreatedAt:     req.CreatedAt,
		})
	}
	return summaries, nil
}

// OutgoingRequests lists pending requests the user has sent.
func (s *FriendService) OutgoingRequests(userID uint) ([]RequestSummary, error) {
	requests, err := s.friends.PendingBySender(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]RequestSummary, 0, len(requests))
	for _, req := range requests {
		summaries = append(summaries, RequestSummary{
			FriendProfile: profileOf(&req.Receiver),
			Status:        req.Status,
			CreatedAt:     req.CreatedAt,
		})
	}
	return summaries, nil
}

func profileOf(user *models.User) FriendProfile {
	return FriendProfile{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AvatarURL: user.AvatarURL,
	}
}
