package models

import (
	"time"
)

// FriendEdge is one direction of a friendship. Edges are only ever written
// in pairs: an accepted friendship between A and B is the two rows (A,B)
// and (B,A), created and deleted in the same transaction. A row without its
// inverse is a consistency violation.
type FriendEdge struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false"`
	FriendID  uint      `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (FriendEdge) TableName() string {
	return "friend_edges"
}

// FriendRequest is a directed proposal from sender to receiver. Rows are
// never deleted: terminal rows stay as history and a new send creates a new
// row. "Most recent" for a pair means created_at DESC with id DESC as the
// tie-break.
type FriendRequest struct {
	ID         uint      `gorm:"primaryKey"`
	SenderID   uint      `gorm:"not null;index:idx_request_pair"`
	Sender     User      `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	ReceiverID uint      `gorm:"not null;index:idx_request_pair"`
	Receiver   User      `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// Friend request status constants
const (
	FriendRequestStatusPending   = "pending"
	FriendRequestStatusAccepted  = "accepted"
	FriendRequestStatusRejected  = "rejected"
	FriendRequestStatusCancelled = "cancelled"
)

// IsTerminal reports whether the request can no longer transition.
func (r *FriendRequest) IsTerminal() bool {
	return r.Status != FriendRequestStatusPending
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}
