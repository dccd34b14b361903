package review

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cineconnect/cineconnect-api/internal/domain/film"
)

// FilmProvider resolves catalog films into persisted rows
type FilmProvider interface {
	EnsureFromCatalog(ctx context.Context, tmdbID int64) (*film.Film, error)
}

// RatingUpdater recomputes a film's aggregate rating inside a transaction
type RatingUpdater interface {
	UpdateRating(ctx context.Context, tx *sqlx.Tx, filmID uuid.UUID) error
}

// Service handles review business logic
type Service struct {
	db      *sqlx.DB
	repo    Repository
	films   FilmProvider
	ratings RatingUpdater
}

// NewService creates review service
func NewService(db *sqlx.DB, repo Repository, films FilmProvider, ratings RatingUpdater) *Service {
	return &Service{db: db, repo: repo, films: films, ratings: ratings}
}

// Upsert writes the caller's review for a film and recomputes the film's
// average rating in the same transaction. A second review for the same
// film replaces the first.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, tmdbID int64, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	f, err := s.films.EnsureFromCatalog(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	rev := &Review{
		ID:     uuid.New(),
		UserID: userID,
		FilmID: f.ID,
	}
	rev.Rating = rating
	comment = strings.TrimSpace(comment)
	if comment != "" {
		rev.Comment = sql.NullString{String: comment, Valid: true}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("review upsert begin tx: %w", err)
	}
	defer tx.Rollback()

	out, err := s.repo.UpsertTx(ctx, tx, rev)
	if err != nil {
		return nil, err
	}

	if err := s.ratings.UpdateRating(ctx, tx, f.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("review upsert commit: %w", err)
	}

	return out, nil
}

// DeleteReview removes a review and recomputes its film's rating.
// Used by moderation.
func (s *Service) DeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rev == nil {
		return ErrReviewNotFound
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("review delete begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID); err != nil {
		return fmt.Errorf("review delete: %w", err)
	}

	if err := s.ratings.UpdateRating(ctx, tx, rev.FilmID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("review delete commit: %w", err)
	}
	return nil
}

// GetByID returns a review or nil
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	return s.repo.GetByID(ctx, id)
}

// GetReply returns a reply or nil
func (s *Service) GetReply(ctx context.Context, id uuid.UUID) (*CommentReply, error) {
	return s.repo.GetReplyByID(ctx, id)
}

// ListMy returns the caller's reviews with film info
func (s *Service) ListMy(ctx context.Context, userID uuid.UUID) ([]*ReviewWithFilm, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListRecent returns latest reviews that carry a text comment
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*ReviewWithAuthor, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.repo.ListRecentCommented(ctx, limit)
}

// ListByFilm returns a film's reviews with authors and like counts
func (s *Service) ListByFilm(ctx context.Context, filmID uuid.UUID) ([]*ReviewWithAuthor, error) {
	return s.repo.ListByFilm(ctx, filmID)
}

// ToggleLike likes the review if not yet liked, otherwise removes the
// like. Returns the resulting state and count.
func (s *Service) ToggleLike(ctx context.Context, reviewID, userID uuid.UUID) (liked bool, count int, err error) {
	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return false, 0, err
	}
	if rev == nil {
		return false, 0, ErrReviewNotFound
	}

	inserted, err := s.repo.AddLike(ctx, &ReviewLike{ID: uuid.New(), ReviewID: reviewID, UserID: userID})
	if err != nil {
		return false, 0, err
	}

	if inserted {
		liked = true
	} else {
		// Already liked: toggle off
		if _, err := s.repo.RemoveLike(ctx, reviewID, userID); err != nil {
			return false, 0, err
		}
		liked = false
	}

	count, err = s.repo.CountLikes(ctx, reviewID)
	return liked, count, err
}

// LikeStatus reports whether the caller liked the review and the total count
func (s *Service) LikeStatus(ctx context.Context, reviewID, userID uuid.UUID) (liked bool, count int, err error) {
	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return false, 0, err
	}
	if rev == nil {
		return false, 0, ErrReviewNotFound
	}

	liked, err = s.repo.HasLiked(ctx, reviewID, userID)
	if err != nil {
		return false, 0, err
	}
	count, err = s.repo.CountLikes(ctx, reviewID)
	return liked, count, err
}

// CreateReply adds a reply under a review
func (s *Service) CreateReply(ctx context.Context, reviewID, userID uuid.UUID, message string) (*CommentReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, ErrReviewNotFound
	}

	reply := &CommentReply{
		ID:       uuid.New(),
		ReviewID: reviewID,
		UserID:   userID,
		Message:  message,
	}
	if err := s.repo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// ListReplies returns a review's replies, oldest first
func (s *Service) ListReplies(ctx context.Context, reviewID uuid.UUID) ([]*CommentReplyWithAuthor, error) {
	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, ErrReviewNotFound
	}
	return s.repo.ListReplies(ctx, reviewID)
}

// DeleteReply removes a reply. Allowed for the author or a user with a
// moderation role.
func (s *Service) DeleteReply(ctx context.Context, replyID, callerID uuid.UUID, callerRole string) error {
	reply, err := s.repo.GetReplyByID(ctx, replyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return ErrReplyNotFound
	}

	canModerate := callerRole == "moderator" || callerRole == "admin"
	if reply.UserID != callerID && !canModerate {
		return ErrNotReplyAuthor
	}

	return s.repo.DeleteReply(ctx, replyID)
}

// DeleteReplyByID removes a reply without an authorship check. Used by
// moderation resolution.
func (s *Service) DeleteReplyByID(ctx context.Context, replyID uuid.UUID) error {
	reply, err := s.repo.GetReplyByID(ctx, replyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return ErrReplyNotFound
	}
	return s.repo.DeleteReply(ctx, replyID)
}
