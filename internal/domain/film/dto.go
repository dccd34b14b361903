package film

import (
	"time"

	"github.com/google/uuid"
)

// FilmResponse represents a film in API responses: the catalog entry
// merged with community rating data when the film has been persisted.
type FilmResponse struct {
	TMDBID      int64      `json:"tmdb_id"`
	ID          *uuid.UUID `json:"id,omitempty"`
	Title       string     `json:"title"`
	Synopsis    string     `json:"synopsis"`
	ReleaseDate string     `json:"release_date"`
	Runtime     int        `json:"runtime"`
	PosterURL   string     `json:"poster_url"`
	Genres      []string   `json:"genres"`
	Director    string     `json:"director"`
	Cast        []string   `json:"cast"`
	AvgRating   float64    `json:"avg_rating"`
	VoteCount   int        `json:"vote_count"`
}

// FromCatalogEntry builds a response from a catalog entry alone
func FromCatalogEntry(e CatalogEntry) FilmResponse {
	return FilmResponse{
		TMDBID:      e.TMDBID,
		Title:       e.Title,
		Synopsis:    e.Synopsis,
		ReleaseDate: e.ReleaseDate,
		Runtime:     e.Runtime,
		PosterURL:   e.PosterURL,
		Genres:      e.Genres,
		Director:    e.Director,
		Cast:        e.Cast,
	}
}

// FromEntity builds a response from a persisted film
func FromEntity(f *Film) FilmResponse {
	resp := FilmResponse{
		TMDBID:    f.TMDBID,
		ID:        &f.ID,
		Title:     f.Title,
		Genres:    f.Genres,
		Cast:      f.Cast,
		AvgRating: f.AvgRating,
		VoteCount: f.VoteCount,
	}
	if f.Synopsis.Valid {
		resp.Synopsis = f.Synopsis.String
	}
	if f.ReleaseDate.Valid {
		resp.ReleaseDate = f.ReleaseDate.Time.Format("2006-01-02")
	}
	if f.Runtime.Valid {
		resp.Runtime = int(f.Runtime.Int32)
	}
	if f.PosterURL.Valid {
		resp.PosterURL = f.PosterURL.String
	}
	if f.Director.Valid {
		resp.Director = f.Director.String
	}
	return resp
}

// merge overlays community data from a persisted film onto a catalog response
func merge(e CatalogEntry, f *Film) FilmResponse {
	resp := FromCatalogEntry(e)
	if f != nil {
		resp.ID = &f.ID
		resp.AvgRating = f.AvgRating
		resp.VoteCount = f.VoteCount
	}
	return resp
}

// parseReleaseDate parses a catalog date, zero time on failure
func parseReleaseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
