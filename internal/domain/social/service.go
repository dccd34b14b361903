package social

import (
	"context"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/user"
)

// Service handles social graph business logic
type Service struct {
	repo     Repository
	userRepo user.Repository
}

// NewService creates social service
func NewService(repo Repository, userRepo user.Repository) *Service {
	return &Service{repo: repo, userRepo: userRepo}
}

// SendFriendRequest creates a pending request from requester to receiver.
// Rejected pairs may try again; existing friendships and pending requests
// in either direction block the request.
func (s *Service) SendFriendRequest(ctx context.Context, requesterID, receiverID uuid.UUID) (*FriendRequest, error) {
	if requesterID == receiverID {
		return nil, ErrSelfReference
	}

	target, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	friends, err := s.repo.AreFriends(ctx, requesterID, receiverID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	if existing, err := s.repo.GetPendingRequest(ctx, requesterID, receiverID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrRequestAlreadySent
	}

	if reverse, err := s.repo.GetPendingRequest(ctx, receiverID, requesterID); err != nil {
		return nil, err
	} else if reverse != nil {
		return nil, ErrRequestAlreadyReceived
	}

	req := &FriendRequest{
		ID:          uuid.New(),
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      RequestPending,
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// AcceptFriendRequest accepts the pending request from requesterID to the
// caller and creates the canonical friendship. A concurrent double accept
// is safe: the friendship upsert is a no-op on conflict.
func (s *Service) AcceptFriendRequest(ctx context.Context, receiverID, requesterID uuid.UUID) error {
	req, err := s.repo.GetPendingRequest(ctx, requesterID, receiverID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrRequestNotFound
	}

	if err := s.repo.UpdateRequestStatus(ctx, req.ID, RequestAccepted); err != nil {
		return err
	}

	lo, hi := orderedPair(requesterID, receiverID)
	return s.repo.UpsertFriendship(ctx, &Friendship{
		ID:      uuid.New(),
		User1ID: lo,
		User2ID: hi,
	})
}

// RejectFriendRequest rejects the pending request from requesterID to the
// caller. The requester may send a new request afterwards.
func (s *Service) RejectFriendRequest(ctx context.Context, receiverID, requesterID uuid.UUID) error {
	req, err := s.repo.GetPendingRequest(ctx, requesterID, receiverID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrRequestNotFound
	}

	return s.repo.UpdateRequestStatus(ctx, req.ID, RequestRejected)
}

// ListFriends returns the caller's friends
func (s *Service) ListFriends(ctx context.Context, userID uuid.UUID) ([]*FriendInfo, error) {
	return s.repo.ListFriends(ctx, userID)
}

// ListPendingRequests returns incoming pending requests for the caller
func (s *Service) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]*PendingRequestInfo, error) {
	return s.repo.ListPendingForReceiver(ctx, userID)
}

// Discover returns candidate profiles for the viewer
func (s *Service) Discover(ctx context.Context, viewerID uuid.UUID, search string, limit, offset int) ([]*DiscoverProfile, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.Discover(ctx, viewerID, search, limit, offset)
}

// Follow creates an asymmetric follow edge
func (s *Service) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return ErrSelfReference
	}

	target, err := s.userRepo.GetByID(ctx, followeeID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	created, err := s.repo.CreateFollow(ctx, &Follow{
		ID:         uuid.New(),
		FollowerID: followerID,
		FolloweeID: followeeID,
	})
	if err != nil {
		return err
	}
	if !created {
		return ErrAlreadyFollowing
	}
	return nil
}

// Unfollow removes a follow edge
func (s *Service) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	deleted, err := s.repo.DeleteFollow(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFollowing
	}
	return nil
}

// IsFollowing reports whether follower follows followee
func (s *Service) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return s.repo.IsFollowing(ctx, followerID, followeeID)
}
