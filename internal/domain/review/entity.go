package review

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Review represents a user's review of a film. One review per (user, film):
// writing again updates the existing row.
type Review struct {
	ID        uuid.UUID      `db:"id"`
	UserID    uuid.UUID      `db:"user_id"`
	FilmID    uuid.UUID      `db:"film_id"`
	Rating    int            `db:"rating"`
	Comment   sql.NullString `db:"comment"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// ReviewWithAuthor is a review joined with its author and like count
type ReviewWithAuthor struct {
	Review
	AuthorPseudo   string         `db:"author_pseudo"`
	AuthorPhotoURL sql.NullString `db:"author_photo_url"`
	LikeCount      int            `db:"like_count"`
}

// ReviewWithFilm is a review joined with its film, for per-user listings
type ReviewWithFilm struct {
	Review
	FilmTitle     string         `db:"film_title"`
	FilmTMDBID    int64          `db:"film_tmdb_id"`
	FilmPosterURL sql.NullString `db:"film_poster_url"`
}

// ReviewLike represents a like on a review
type ReviewLike struct {
	ID        uuid.UUID `db:"id"`
	ReviewID  uuid.UUID `db:"review_id"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

// CommentReply represents a threaded reply under a review
type CommentReply struct {
	ID        uuid.UUID `db:"id"`
	ReviewID  uuid.UUID `db:"review_id"`
	UserID    uuid.UUID `db:"user_id"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

// CommentReplyWithAuthor is a reply joined with its author
type CommentReplyWithAuthor struct {
	CommentReply
	AuthorPseudo   string         `db:"author_pseudo"`
	AuthorPhotoURL sql.NullString `db:"author_photo_url"`
}
