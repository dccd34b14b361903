package social

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines social graph data access interface
type Repository interface {
	// Friend requests
	CreateRequest(ctx context.Context, req *FriendRequest) error
	GetPendingRequest(ctx context.Context, requesterID, receiverID uuid.UUID) (*FriendRequest, error)
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, status RequestStatus) error
	ListPendingForReceiver(ctx context.Context, receiverID uuid.UUID) ([]*PendingRequestInfo, error)

	// Friendships
	UpsertFriendship(ctx context.Context, f *Friendship) error
	AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error)
	ListFriends(ctx context.Context, userID uuid.UUID) ([]*FriendInfo, error)

	// Follows
	CreateFollow(ctx context.Context, f *Follow) (bool, error)
	DeleteFollow(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)

	// Discovery
	Discover(ctx context.Context, viewerID uuid.UUID, search string, limit, offset int) ([]*DiscoverProfile, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new social repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRequest(ctx context.Context, req *FriendRequest) error {
	query := `
		INSERT INTO friend_requests (id, requester_id, receiver_id, status)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, req.ID, req.RequesterID, req.ReceiverID, req.Status)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrRequestAlreadySent
		}
		return fmt.Errorf("social repository create request: %w", err)
	}
	return nil
}

func (r *repository) GetPendingRequest(ctx context.Context, requesterID, receiverID uuid.UUID) (*FriendRequest, error) {
	query := `
		SELECT id, requester_id, receiver_id, status, created_at, updated_at
		FROM friend_requests
		WHERE requester_id = $1 AND receiver_id = $2 AND status = 'pending'
	`
	var req FriendRequest
	if err := r.db.GetContext(ctx, &req, query, requesterID, receiverID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("social repository get pending request: %w", err)
	}
	return &req, nil
}

func (r *repository) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status RequestStatus) error {
	query := `UPDATE friend_requests SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *repository) ListPendingForReceiver(ctx context.Context, receiverID uuid.UUID) ([]*PendingRequestInfo, error) {
	query := `
		SELECT fr.id AS request_id, u.id AS user_id, u.pseudo, u.photo_url, fr.created_at
		FROM friend_requests fr
		JOIN users u ON u.id = fr.requester_id
		WHERE fr.receiver_id = $1 AND fr.status = 'pending'
		ORDER BY fr.created_at DESC
	`
	var requests []*PendingRequestInfo
	if err := r.db.SelectContext(ctx, &requests, query, receiverID); err != nil {
		return nil, fmt.Errorf("social repository list pending: %w", err)
	}
	return requests, nil
}

// UpsertFriendship inserts the canonical pair; a concurrent duplicate
// accept is a no-op.
func (r *repository) UpsertFriendship(ctx context.Context, f *Friendship) error {
	query := `
		INSERT INTO friendships (id, user1_id, user2_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, f.ID, f.User1ID, f.User2ID)
	if err != nil {
		return fmt.Errorf("social repository upsert friendship: %w", err)
	}
	return nil
}

func (r *repository) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	lo, hi := orderedPair(a, b)
	query := `SELECT EXISTS(SELECT 1 FROM friendships WHERE user1_id = $1 AND user2_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, lo, hi)
	return exists, err
}

func (r *repository) ListFriends(ctx context.Context, userID uuid.UUID) ([]*FriendInfo, error) {
	query := `
		SELECT u.id AS user_id, u.pseudo, u.photo_url, f.created_at AS since
		FROM friendships f
		JOIN users u ON u.id = CASE WHEN f.user1_id = $1 THEN f.user2_id ELSE f.user1_id END
		WHERE f.user1_id = $1 OR f.user2_id = $1
		ORDER BY f.created_at DESC
	`
	var friends []*FriendInfo
	if err := r.db.SelectContext(ctx, &friends, query, userID); err != nil {
		return nil, fmt.Errorf("social repository list friends: %w", err)
	}
	return friends, nil
}

// CreateFollow inserts a follow edge; returns false if it already existed
func (r *repository) CreateFollow(ctx context.Context, f *Follow) (bool, error) {
	query := `
		INSERT INTO follows (id, follower_id, followee_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, f.ID, f.FollowerID, f.FolloweeID)
	if err != nil {
		return false, fmt.Errorf("social repository create follow: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repository) DeleteFollow(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("social repository delete follow: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repository) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, followerID, followeeID)
	return exists, err
}

// Discover returns candidate profiles for the viewer: not self, not an
// existing friend, not the target of one of the viewer's own pending
// requests. Candidates who sent the viewer a pending request are kept
// and carry that request's id.
func (r *repository) Discover(ctx context.Context, viewerID uuid.UUID, search string, limit, offset int) ([]*DiscoverProfile, error) {
	query := `
		SELECT u.id AS user_id, u.pseudo, u.photo_url, u.bio,
		       (SELECT COUNT(*) FROM reviews rv WHERE rv.user_id = u.id) AS review_count,
		       (SELECT COUNT(*) FROM group_members gm WHERE gm.user_id = u.id) AS group_count,
		       (SELECT COUNT(*) FROM follows fl WHERE fl.followee_id = u.id) AS follower_count,
		       (SELECT COUNT(*) FROM follows fl WHERE fl.follower_id = u.id) AS following_count,
		       (SELECT fr.id FROM friend_requests fr
		        WHERE fr.requester_id = u.id AND fr.receiver_id = $1 AND fr.status = 'pending') AS incoming_request_id
		FROM users u
		WHERE u.id <> $1
		  AND NOT EXISTS (
		      SELECT 1 FROM friendships f
		      WHERE (f.user1_id = $1 AND f.user2_id = u.id)
		         OR (f.user1_id = u.id AND f.user2_id = $1)
		  )
		  AND NOT EXISTS (
		      SELECT 1 FROM friend_requests fr
		      WHERE fr.requester_id = $1 AND fr.receiver_id = u.id AND fr.status = 'pending'
		  )
		  AND ($2 = '' OR u.pseudo ILIKE '%' || $2 || '%')
		ORDER BY u.created_at DESC
		LIMIT $3 OFFSET $4
	`
	var profiles []*DiscoverProfile
	if err := r.db.SelectContext(ctx, &profiles, query, viewerID, search, limit, offset); err != nil {
		return nil, fmt.Errorf("social repository discover: %w", err)
	}
	return profiles, nil
}
