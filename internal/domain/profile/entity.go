package profile

import (
	"database/sql"

	"github.com/google/uuid"
)

// MaxFavorites is the cap on a user's favorite films list
const MaxFavorites = 5

// Stats are the aggregate counts shown on a profile
type Stats struct {
	ReviewCount    int `db:"review_count"`
	GroupCount     int `db:"group_count"`
	FollowerCount  int `db:"follower_count"`
	FollowingCount int `db:"following_count"`
}

// FavoriteFilm is a positioned entry in a user's favorites showcase
type FavoriteFilm struct {
	FilmID    uuid.UUID      `db:"film_id"`
	TMDBID    int64          `db:"tmdb_id"`
	Title     string         `db:"title"`
	PosterURL sql.NullString `db:"poster_url"`
	Position  int            `db:"position"`
}
