package feed

import (
	"time"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/film"
)

// ActivityResponse is one feed entry
type ActivityResponse struct {
	ReviewID       uuid.UUID `json:"review_id"`
	UserID         uuid.UUID `json:"user_id"`
	AuthorPseudo   string    `json:"author_pseudo"`
	AuthorPhotoURL *string   `json:"author_photo_url"`
	FilmID         uuid.UUID `json:"film_id"`
	FilmTitle      string    `json:"film_title"`
	FilmTMDBID     int64     `json:"film_tmdb_id"`
	FilmPosterURL  *string   `json:"film_poster_url"`
	Rating         int       `json:"rating"`
	Comment        *string   `json:"comment"`
	LikeCount      int       `json:"like_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToResponse converts entity to response
func (a *ActivityReview) ToResponse() *ActivityResponse {
	resp := &ActivityResponse{
		ReviewID:     a.ReviewID,
		UserID:       a.UserID,
		AuthorPseudo: a.AuthorPseudo,
		FilmID:       a.FilmID,
		FilmTitle:    a.FilmTitle,
		FilmTMDBID:   a.FilmTMDBID,
		Rating:       a.Rating,
		LikeCount:    a.LikeCount,
		CreatedAt:    a.CreatedAt,
	}
	if a.AuthorPhotoURL.Valid {
		resp.AuthorPhotoURL = &a.AuthorPhotoURL.String
	}
	if a.FilmPosterURL.Valid {
		resp.FilmPosterURL = &a.FilmPosterURL.String
	}
	if a.Comment.Valid {
		resp.Comment = &a.Comment.String
	}
	return resp
}

// GlobalFeedResponse for API responses
type GlobalFeedResponse struct {
	RecentReviews    []*ActivityResponse `json:"recent_reviews"`
	TopRated         []film.FilmResponse `json:"top_rated"`
	RecentlyReleased []film.FilmResponse `json:"recently_released"`
}

// ToResponse converts the assembled feed to a response
func (f *GlobalFeed) ToResponse() *GlobalFeedResponse {
	resp := &GlobalFeedResponse{
		RecentReviews:    make([]*ActivityResponse, 0, len(f.RecentReviews)),
		TopRated:         make([]film.FilmResponse, 0, len(f.TopRated)),
		RecentlyReleased: make([]film.FilmResponse, 0, len(f.RecentlyReleased)),
	}
	for _, rev := range f.RecentReviews {
		resp.RecentReviews = append(resp.RecentReviews, rev.ToResponse())
	}
	for _, top := range f.TopRated {
		resp.TopRated = append(resp.TopRated, film.FromEntity(top))
	}
	for _, rel := range f.RecentlyReleased {
		resp.RecentlyReleased = append(resp.RecentlyReleased, film.FromEntity(rel))
	}
	return resp
}
