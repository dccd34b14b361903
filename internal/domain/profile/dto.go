package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/review"
	"github.com/cineconnect/cineconnect-api/internal/domain/user"
)

// UpdateRequest for partial profile updates
type UpdateRequest struct {
	Pseudo           *string         `json:"pseudo" validate:"omitempty,min=3,max=30"`
	Bio              *string         `json:"bio" validate:"omitempty,max=1000"`
	GenrePreferences *user.GenreList `json:"genre_preferences" validate:"omitempty,max=20"`
}

// StatsResponse for API responses
type StatsResponse struct {
	ReviewCount    int `json:"review_count"`
	GroupCount     int `json:"group_count"`
	FollowerCount  int `json:"follower_count"`
	FollowingCount int `json:"following_count"`
}

// FavoriteResponse is one entry of the favorites showcase
type FavoriteResponse struct {
	FilmID    uuid.UUID `json:"film_id"`
	TMDBID    int64     `json:"tmdb_id"`
	Title     string    `json:"title"`
	PosterURL *string   `json:"poster_url"`
	Position  int       `json:"position"`
}

// ToResponse converts entity to response
func (f *FavoriteFilm) ToResponse() *FavoriteResponse {
	resp := &FavoriteResponse{
		FilmID:   f.FilmID,
		TMDBID:   f.TMDBID,
		Title:    f.Title,
		Position: f.Position,
	}
	if f.PosterURL.Valid {
		resp.PosterURL = &f.PosterURL.String
	}
	return resp
}

// ProfileResponse is the full profile page payload. Email is only set
// when the viewer owns the profile.
type ProfileResponse struct {
	ID               uuid.UUID                    `json:"id"`
	Pseudo           string                       `json:"pseudo"`
	Email            string                       `json:"email,omitempty"`
	PhotoURL         *string                      `json:"photo_url"`
	Bio              *string                      `json:"bio"`
	GenrePreferences user.GenreList               `json:"genre_preferences"`
	Stats            *StatsResponse               `json:"stats"`
	Favorites        []*FavoriteResponse          `json:"favorites"`
	RecentReviews    []*review.FilmReviewResponse `json:"recent_reviews"`
	IsFollowing      bool                         `json:"is_following"`
	CreatedAt        time.Time                    `json:"created_at"`
}

// ToResponse converts the assembled profile to a response
func (p *Profile) ToResponse() *ProfileResponse {
	resp := &ProfileResponse{
		ID:               p.User.ID,
		Pseudo:           p.User.Pseudo,
		GenrePreferences: p.User.GenrePreferences,
		Stats: &StatsResponse{
			ReviewCount:    p.Stats.ReviewCount,
			GroupCount:     p.Stats.GroupCount,
			FollowerCount:  p.Stats.FollowerCount,
			FollowingCount: p.Stats.FollowingCount,
		},
		Favorites:     make([]*FavoriteResponse, 0, len(p.Favorites)),
		RecentReviews: make([]*review.FilmReviewResponse, 0, len(p.RecentReviews)),
		IsFollowing:   p.IsFollowing,
		CreatedAt:     p.User.CreatedAt,
	}

	if p.IsOwner {
		resp.Email = p.User.Email
	}
	if p.User.PhotoURL.Valid {
		resp.PhotoURL = &p.User.PhotoURL.String
	}
	if p.User.Bio.Valid {
		resp.Bio = &p.User.Bio.String
	}
	for _, f := range p.Favorites {
		resp.Favorites = append(resp.Favorites, f.ToResponse())
	}
	for _, rev := range p.RecentReviews {
		resp.RecentReviews = append(resp.RecentReviews, rev.ToFilmResponse())
	}

	return resp
}
