package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines review data access interface
type Repository interface {
	// UpsertTx inserts or updates the (user, film) review inside tx
	UpsertTx(ctx context.Context, tx *sqlx.Tx, rev *Review) (*Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ListByFilm(ctx context.Context, filmID uuid.UUID) ([]*ReviewWithAuthor, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReviewWithFilm, error)
	ListRecentCommented(ctx context.Context, limit int) ([]*ReviewWithAuthor, error)

	// Likes
	AddLike(ctx context.Context, like *ReviewLike) (bool, error)
	RemoveLike(ctx context.Context, reviewID, userID uuid.UUID) (bool, error)
	HasLiked(ctx context.Context, reviewID, userID uuid.UUID) (bool, error)
	CountLikes(ctx context.Context, reviewID uuid.UUID) (int, error)

	// Replies
	CreateReply(ctx context.Context, reply *CommentReply) error
	GetReplyByID(ctx context.Context, id uuid.UUID) (*CommentReply, error)
	DeleteReply(ctx context.Context, id uuid.UUID) error
	ListReplies(ctx context.Context, reviewID uuid.UUID) ([]*CommentReplyWithAuthor, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new review repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UpsertTx(ctx context.Context, tx *sqlx.Tx, rev *Review) (*Review, error) {
	query := `
		INSERT INTO reviews (id, user_id, film_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, film_id) DO UPDATE
		SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, updated_at = NOW()
		RETURNING id, user_id, film_id, rating, comment, created_at, updated_at
	`
	var out Review
	err := tx.GetContext(ctx, &out, query, rev.ID, rev.UserID, rev.FilmID, rev.Rating, rev.Comment)
	if err != nil {
		return nil, fmt.Errorf("review repository upsert: %w", err)
	}
	return &out, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	query := `SELECT id, user_id, film_id, rating, comment, created_at, updated_at FROM reviews WHERE id = $1`
	var rev Review
	if err := r.db.GetContext(ctx, &rev, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("review repository get by id: %w", err)
	}
	return &rev, nil
}

func (r *repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return err
}

func (r *repository) ListByFilm(ctx context.Context, filmID uuid.UUID) ([]*ReviewWithAuthor, error) {
	query := `
		SELECT r.id, r.user_id, r.film_id, r.rating, r.comment, r.created_at, r.updated_at,
		       u.pseudo AS author_pseudo, u.photo_url AS author_photo_url,
		       (SELECT COUNT(*) FROM review_likes rl WHERE rl.review_id = r.id) AS like_count
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.film_id = $1
		ORDER BY r.created_at DESC
	`
	var reviews []*ReviewWithAuthor
	if err := r.db.SelectContext(ctx, &reviews, query, filmID); err != nil {
		return nil, fmt.Errorf("review repository list by film: %w", err)
	}
	return reviews, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReviewWithFilm, error) {
	query := `
		SELECT r.id, r.user_id, r.film_id, r.rating, r.comment, r.created_at, r.updated_at,
		       f.title AS film_title, f.tmdb_id AS film_tmdb_id, f.poster_url AS film_poster_url
		FROM reviews r
		JOIN films f ON f.id = r.film_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`
	var reviews []*ReviewWithFilm
	if err := r.db.SelectContext(ctx, &reviews, query, userID); err != nil {
		return nil, fmt.Errorf("review repository list by user: %w", err)
	}
	return reviews, nil
}

func (r *repository) ListRecentCommented(ctx context.Context, limit int) ([]*ReviewWithAuthor, error) {
	query := `
		SELECT r.id, r.user_id, r.film_id, r.rating, r.comment, r.created_at, r.updated_at,
		       u.pseudo AS author_pseudo, u.photo_url AS author_photo_url,
		       (SELECT COUNT(*) FROM review_likes rl WHERE rl.review_id = r.id) AS like_count
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.comment IS NOT NULL AND r.comment <> ''
		ORDER BY r.created_at DESC
		LIMIT $1
	`
	var reviews []*ReviewWithAuthor
	if err := r.db.SelectContext(ctx, &reviews, query, limit); err != nil {
		return nil, fmt.Errorf("review repository list recent: %w", err)
	}
	return reviews, nil
}

// AddLike inserts a like; returns false if it already existed
func (r *repository) AddLike(ctx context.Context, like *ReviewLike) (bool, error) {
	query := `
		INSERT INTO review_likes (id, review_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (review_id, user_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, like.ID, like.ReviewID, like.UserID)
	if err != nil {
		return false, fmt.Errorf("review repository add like: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RemoveLike deletes a like; returns false if it did not exist
func (r *repository) RemoveLike(ctx context.Context, reviewID, userID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM review_likes WHERE review_id = $1 AND user_id = $2`, reviewID, userID)
	if err != nil {
		return false, fmt.Errorf("review repository remove like: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repository) HasLiked(ctx context.Context, reviewID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM review_likes WHERE review_id = $1 AND user_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, reviewID, userID)
	return exists, err
}

func (r *repository) CountLikes(ctx context.Context, reviewID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM review_likes WHERE review_id = $1`, reviewID)
	return count, err
}

func (r *repository) CreateReply(ctx context.Context, reply *CommentReply) error {
	query := `INSERT INTO comment_replies (id, review_id, user_id, message) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, reply.ID, reply.ReviewID, reply.UserID, reply.Message)
	if err != nil {
		return fmt.Errorf("review repository create reply: %w", err)
	}
	return nil
}

func (r *repository) GetReplyByID(ctx context.Context, id uuid.UUID) (*CommentReply, error) {
	query := `SELECT id, review_id, user_id, message, created_at FROM comment_replies WHERE id = $1`
	var reply CommentReply
	if err := r.db.GetContext(ctx, &reply, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("review repository get reply: %w", err)
	}
	return &reply, nil
}

func (r *repository) DeleteReply(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comment_replies WHERE id = $1`, id)
	return err
}

func (r *repository) ListReplies(ctx context.Context, reviewID uuid.UUID) ([]*CommentReplyWithAuthor, error) {
	query := `
		SELECT cr.id, cr.review_id, cr.user_id, cr.message, cr.created_at,
		       u.pseudo AS author_pseudo, u.photo_url AS author_photo_url
		FROM comment_replies cr
		JOIN users u ON u.id = cr.user_id
		WHERE cr.review_id = $1
		ORDER BY cr.created_at ASC
	`
	var replies []*CommentReplyWithAuthor
	if err := r.db.SelectContext(ctx, &replies, query, reviewID); err != nil {
		return nil, fmt.Errorf("review repository list replies: %w", err)
	}
	return replies, nil
}
