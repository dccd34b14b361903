package feed

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines feed data access
type Repository interface {
	ListRecentCommented(ctx context.Context, limit int) ([]*ActivityReview, error)
	ListFriendActivity(ctx context.Context, viewerID uuid.UUID, limit int) ([]*ActivityReview, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates feed repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const activitySelect = `
	SELECT r.id AS review_id, r.user_id, u.pseudo AS author_pseudo,
	       u.photo_url AS author_photo_url,
	       f.id AS film_id, f.title AS film_title, f.tmdb_id AS film_tmdb_id,
	       f.poster_url AS film_poster_url,
	       r.rating, r.comment, r.created_at,
	       (SELECT COUNT(*) FROM review_likes rl WHERE rl.review_id = r.id) AS like_count
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	JOIN films f ON f.id = r.film_id`

func (r *repository) ListRecentCommented(ctx context.Context, limit int) ([]*ActivityReview, error) {
	query := activitySelect + `
		WHERE r.comment IS NOT NULL AND r.comment <> ''
		ORDER BY r.created_at DESC
		LIMIT $1`

	reviews := []*ActivityReview{}
	if err := r.db.SelectContext(ctx, &reviews, query, limit); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListFriendActivity returns recent reviews written by the viewer's
// friends and by the users they follow.
func (r *repository) ListFriendActivity(ctx context.Context, viewerID uuid.UUID, limit int) ([]*ActivityReview, error) {
	query := activitySelect + `
		WHERE r.user_id IN (
			SELECT CASE WHEN fr.user1_id = $1 THEN fr.user2_id ELSE fr.user1_id END
			FROM friendships fr
			WHERE fr.user1_id = $1 OR fr.user2_id = $1
			UNION
			SELECT fo.followee_id FROM follows fo WHERE fo.follower_id = $1
		)
		ORDER BY r.created_at DESC
		LIMIT $2`

	reviews := []*ActivityReview{}
	if err := r.db.SelectContext(ctx, &reviews, query, viewerID, limit); err != nil {
		return nil, err
	}
	return reviews, nil
}
