package social

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents friend request lifecycle state
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// FriendRequest represents a directed friend request. At most one
// pending request may exist per pair, in either direction.
type FriendRequest struct {
	ID          uuid.UUID     `db:"id"`
	RequesterID uuid.UUID     `db:"requester_id"`
	ReceiverID  uuid.UUID     `db:"receiver_id"`
	Status      RequestStatus `db:"status"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

// Friendship is the canonical undirected pair: user1_id < user2_id.
// Created only by accepting a friend request.
type Friendship struct {
	ID        uuid.UUID `db:"id"`
	User1ID   uuid.UUID `db:"user1_id"`
	User2ID   uuid.UUID `db:"user2_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Follow is an asymmetric follow edge
type Follow struct {
	ID         uuid.UUID `db:"id"`
	FollowerID uuid.UUID `db:"follower_id"`
	FolloweeID uuid.UUID `db:"followee_id"`
	CreatedAt  time.Time `db:"created_at"`
}

// FriendInfo is a friend projected relative to the viewer
type FriendInfo struct {
	UserID   uuid.UUID      `db:"user_id"`
	Pseudo   string         `db:"pseudo"`
	PhotoURL sql.NullString `db:"photo_url"`
	Since    time.Time      `db:"since"`
}

// PendingRequestInfo is an incoming pending request with requester details
type PendingRequestInfo struct {
	RequestID uuid.UUID      `db:"request_id"`
	UserID    uuid.UUID      `db:"user_id"`
	Pseudo    string         `db:"pseudo"`
	PhotoURL  sql.NullString `db:"photo_url"`
	CreatedAt time.Time      `db:"created_at"`
}

// DiscoverProfile is a candidate profile in discovery results
type DiscoverProfile struct {
	UserID         uuid.UUID      `db:"user_id"`
	Pseudo         string         `db:"pseudo"`
	PhotoURL       sql.NullString `db:"photo_url"`
	Bio            sql.NullString `db:"bio"`
	ReviewCount    int            `db:"review_count"`
	GroupCount     int            `db:"group_count"`
	FollowerCount  int            `db:"follower_count"`
	FollowingCount int            `db:"following_count"`
	// Set when the candidate already sent the viewer a pending request
	IncomingRequestID uuid.NullUUID `db:"incoming_request_id"`
}

// orderedPair returns the canonical (low, high) ordering of two user IDs
func orderedPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() < b.String() {
		return a, b
	}
	return b, a
}
