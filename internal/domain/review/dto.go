package review

import (
	"time"

	"github.com/google/uuid"
)

// UpsertRequest for POST /reviews/films/{filmID}
type UpsertRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// ReplyRequest for POST /reviews/{id}/replies
type ReplyRequest struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

// ReviewResponse for API responses
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	FilmID    uuid.UUID `json:"film_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// ToResponse converts entity to response
func (r *Review) ToResponse() *ReviewResponse {
	resp := &ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		FilmID:    r.FilmID,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
	if r.Comment.Valid {
		resp.Comment = &r.Comment.String
	}
	return resp
}

// AuthoredReviewResponse is a review with author and like info
type AuthoredReviewResponse struct {
	ReviewResponse
	Author         string  `json:"author"`
	AuthorPhotoURL *string `json:"author_photo_url"`
	LikeCount      int     `json:"like_count"`
}

// ToAuthoredResponse converts joined entity to response
func (r *ReviewWithAuthor) ToAuthoredResponse() *AuthoredReviewResponse {
	resp := &AuthoredReviewResponse{
		ReviewResponse: *r.Review.ToResponse(),
		Author:         r.AuthorPseudo,
		LikeCount:      r.LikeCount,
	}
	if r.AuthorPhotoURL.Valid {
		resp.AuthorPhotoURL = &r.AuthorPhotoURL.String
	}
	return resp
}

// FilmReviewResponse is a review with film info, for per-user listings
type FilmReviewResponse struct {
	ReviewResponse
	FilmTitle     string  `json:"film_title"`
	FilmTMDBID    int64   `json:"film_tmdb_id"`
	FilmPosterURL *string `json:"film_poster_url"`
}

// ToFilmResponse converts joined entity to response
func (r *ReviewWithFilm) ToFilmResponse() *FilmReviewResponse {
	resp := &FilmReviewResponse{
		ReviewResponse: *r.Review.ToResponse(),
		FilmTitle:      r.FilmTitle,
		FilmTMDBID:     r.FilmTMDBID,
	}
	if r.FilmPosterURL.Valid {
		resp.FilmPosterURL = &r.FilmPosterURL.String
	}
	return resp
}

// ReplyResponse for API responses
type ReplyResponse struct {
	ID        uuid.UUID `json:"id"`
	ReviewID  uuid.UUID `json:"review_id"`
	UserID    uuid.UUID `json:"user_id"`
	Author    string    `json:"author,omitempty"`
	Message   string    `json:"message"`
	CreatedAt string    `json:"created_at"`
}

// ToResponse converts reply entity to response
func (c *CommentReply) ToResponse() *ReplyResponse {
	return &ReplyResponse{
		ID:        c.ID,
		ReviewID:  c.ReviewID,
		UserID:    c.UserID,
		Message:   c.Message,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

// ToAuthoredResponse converts joined reply entity to response
func (c *CommentReplyWithAuthor) ToAuthoredResponse() *ReplyResponse {
	resp := c.CommentReply.ToResponse()
	resp.Author = c.AuthorPseudo
	return resp
}

// LikeResponse reports the like state after a toggle or status check
type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
