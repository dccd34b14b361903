package group

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest for POST /groups
type CreateRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	CoverURL    string `json:"cover_url" validate:"omitempty,url"`
	Theme       string `json:"theme" validate:"omitempty,max=50"`
	IsPublic    *bool  `json:"is_public"`
}

// UpdateRequest for PUT /groups/{id}
type UpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	CoverURL    *string `json:"cover_url" validate:"omitempty,url"`
	Theme       *string `json:"theme" validate:"omitempty,max=50"`
	IsPublic    *bool   `json:"is_public"`
}

// InviteRequest for POST /groups/{id}/invite
type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AddFilmRequest for POST /groups/{id}/films
type AddFilmRequest struct {
	TMDBID int64 `json:"tmdb_id" validate:"required,gt=0"`
}

// GroupResponse for API responses
type GroupResponse struct {
	ID          uuid.UUID `json:"id"`
	CreatorID   uuid.UUID `json:"creator_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CoverURL    *string   `json:"cover_url"`
	Theme       *string   `json:"theme"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   string    `json:"created_at"`
}

// ToResponse converts entity to response
func (g *Group) ToResponse() *GroupResponse {
	resp := &GroupResponse{
		ID:        g.ID,
		CreatorID: g.CreatorID,
		Title:     g.Title,
		IsPublic:  g.IsPublic,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
	}
	if g.Description.Valid {
		resp.Description = &g.Description.String
	}
	if g.CoverURL.Valid {
		resp.CoverURL = &g.CoverURL.String
	}
	if g.Theme.Valid {
		resp.Theme = &g.Theme.String
	}
	return resp
}

// GroupSummaryResponse is a group with counts and the viewer's role
type GroupSummaryResponse struct {
	GroupResponse
	MemberCount int     `json:"member_count"`
	FilmCount   int     `json:"film_count"`
	ViewerRole  *string `json:"viewer_role"`
}

// ToSummaryResponse converts joined entity to response
func (g *GroupSummary) ToSummaryResponse() *GroupSummaryResponse {
	resp := &GroupSummaryResponse{
		GroupResponse: *g.Group.ToResponse(),
		MemberCount:   g.MemberCount,
		FilmCount:     g.FilmCount,
	}
	if g.ViewerRole.Valid {
		resp.ViewerRole = &g.ViewerRole.String
	}
	return resp
}

// MemberResponse is a group member entry
type MemberResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Pseudo   string    `json:"pseudo"`
	PhotoURL *string   `json:"photo_url"`
	Role     string    `json:"role"`
	JoinedAt string    `json:"joined_at"`
}

// ToResponse converts joined entity to response
func (m *MemberInfo) ToResponse() *MemberResponse {
	resp := &MemberResponse{
		UserID:   m.UserID,
		Pseudo:   m.Pseudo,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt.Format(time.RFC3339),
	}
	if m.PhotoURL.Valid {
		resp.PhotoURL = &m.PhotoURL.String
	}
	return resp
}

// GroupFilmResponse is a film on a group's shared list
type GroupFilmResponse struct {
	FilmID    uuid.UUID `json:"film_id"`
	TMDBID    int64     `json:"tmdb_id"`
	Title     string    `json:"title"`
	PosterURL *string   `json:"poster_url"`
	AvgRating float64   `json:"avg_rating"`
	AddedBy   uuid.UUID `json:"added_by"`
	AddedAt   string    `json:"added_at"`
}

// ToResponse converts joined entity to response
func (f *GroupFilmInfo) ToResponse() *GroupFilmResponse {
	resp := &GroupFilmResponse{
		FilmID:    f.FilmID,
		TMDBID:    f.TMDBID,
		Title:     f.Title,
		AvgRating: f.AvgRating,
		AddedBy:   f.AddedBy,
		AddedAt:   f.AddedAt.Format(time.RFC3339),
	}
	if f.PosterURL.Valid {
		resp.PosterURL = &f.PosterURL.String
	}
	return resp
}

// GroupDetailsResponse is a group with members and films
type GroupDetailsResponse struct {
	Group      *GroupResponse       `json:"group"`
	Members    []*MemberResponse    `json:"members"`
	Films      []*GroupFilmResponse `json:"films"`
	ViewerRole *string              `json:"viewer_role"`
}

// InvitationResponse for API responses
type InvitationResponse struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	InviteeID uuid.UUID `json:"invitee_id"`
	Status    string    `json:"status"`
}

// ToResponse converts entity to response
func (i *GroupInvitation) ToResponse() *InvitationResponse {
	return &InvitationResponse{
		ID:        i.ID,
		GroupID:   i.GroupID,
		InviteeID: i.InviteeID,
		Status:    string(i.Status),
	}
}
