package social

import (
	"time"

	"github.com/google/uuid"
)

// FriendRequestResponse for API responses
type FriendRequestResponse struct {
	ID          uuid.UUID `json:"id"`
	RequesterID uuid.UUID `json:"requester_id"`
	ReceiverID  uuid.UUID `json:"receiver_id"`
	Status      string    `json:"status"`
	CreatedAt   string    `json:"created_at"`
}

// ToResponse converts entity to response
func (f *FriendRequest) ToResponse() *FriendRequestResponse {
	return &FriendRequestResponse{
		ID:          f.ID,
		RequesterID: f.RequesterID,
		ReceiverID:  f.ReceiverID,
		Status:      string(f.Status),
		CreatedAt:   f.CreatedAt.Format(time.RFC3339),
	}
}

// FriendResponse is a friend entry relative to the viewer
type FriendResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Pseudo   string    `json:"pseudo"`
	PhotoURL *string   `json:"photo_url"`
	Since    string    `json:"since"`
}

// ToResponse converts joined entity to response
func (f *FriendInfo) ToResponse() *FriendResponse {
	resp := &FriendResponse{
		UserID: f.UserID,
		Pseudo: f.Pseudo,
		Since:  f.Since.Format(time.RFC3339),
	}
	if f.PhotoURL.Valid {
		resp.PhotoURL = &f.PhotoURL.String
	}
	return resp
}

// PendingRequestResponse is an incoming pending request entry
type PendingRequestResponse struct {
	RequestID uuid.UUID `json:"request_id"`
	UserID    uuid.UUID `json:"user_id"`
	Pseudo    string    `json:"pseudo"`
	PhotoURL  *string   `json:"photo_url"`
	CreatedAt string    `json:"created_at"`
}

// ToResponse converts joined entity to response
func (p *PendingRequestInfo) ToResponse() *PendingRequestResponse {
	resp := &PendingRequestResponse{
		RequestID: p.RequestID,
		UserID:    p.UserID,
		Pseudo:    p.Pseudo,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	if p.PhotoURL.Valid {
		resp.PhotoURL = &p.PhotoURL.String
	}
	return resp
}

// DiscoverProfileResponse is a discovery candidate entry
type DiscoverProfileResponse struct {
	UserID         uuid.UUID  `json:"user_id"`
	Pseudo         string     `json:"pseudo"`
	PhotoURL       *string    `json:"photo_url"`
	Bio            *string    `json:"bio"`
	ReviewCount    int        `json:"review_count"`
	GroupCount     int        `json:"group_count"`
	FollowerCount  int        `json:"follower_count"`
	FollowingCount int        `json:"following_count"`
	CanAccept      bool       `json:"can_accept"`
	RequestID      *uuid.UUID `json:"request_id,omitempty"`
}

// ToResponse converts joined entity to response
func (d *DiscoverProfile) ToResponse() *DiscoverProfileResponse {
	resp := &DiscoverProfileResponse{
		UserID:         d.UserID,
		Pseudo:         d.Pseudo,
		ReviewCount:    d.ReviewCount,
		GroupCount:     d.GroupCount,
		FollowerCount:  d.FollowerCount,
		FollowingCount: d.FollowingCount,
	}
	if d.PhotoURL.Valid {
		resp.PhotoURL = &d.PhotoURL.String
	}
	if d.Bio.Valid {
		resp.Bio = &d.Bio.String
	}
	if d.IncomingRequestID.Valid {
		resp.CanAccept = true
		id := d.IncomingRequestID.UUID
		resp.RequestID = &id
	}
	return resp
}
