package feed

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ActivityReview is a review projected for feed display, joined with its
// author and film.
type ActivityReview struct {
	ReviewID       uuid.UUID      `db:"review_id"`
	UserID         uuid.UUID      `db:"user_id"`
	AuthorPseudo   string         `db:"author_pseudo"`
	AuthorPhotoURL sql.NullString `db:"author_photo_url"`
	FilmID         uuid.UUID      `db:"film_id"`
	FilmTitle      string         `db:"film_title"`
	FilmTMDBID     int64          `db:"film_tmdb_id"`
	FilmPosterURL  sql.NullString `db:"film_poster_url"`
	Rating         int            `db:"rating"`
	Comment        sql.NullString `db:"comment"`
	LikeCount      int            `db:"like_count"`
	CreatedAt      time.Time      `db:"created_at"`
}
