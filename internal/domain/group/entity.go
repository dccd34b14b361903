package group

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// MemberRole represents a member's role within a group
type MemberRole string

const (
	RoleAdmin     MemberRole = "admin"
	RoleModerator MemberRole = "moderator"
	RoleMember    MemberRole = "member"
)

// InvitationStatus represents invitation lifecycle state
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Group represents a thematic film group
type Group struct {
	ID          uuid.UUID      `db:"id"`
	CreatorID   uuid.UUID      `db:"creator_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	CoverURL    sql.NullString `db:"cover_url"`
	Theme       sql.NullString `db:"theme"`
	IsPublic    bool           `db:"is_public"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// GroupMember represents a user's membership in a group
type GroupMember struct {
	ID       uuid.UUID  `db:"id"`
	GroupID  uuid.UUID  `db:"group_id"`
	UserID   uuid.UUID  `db:"user_id"`
	Role     MemberRole `db:"role"`
	JoinedAt time.Time  `db:"joined_at"`
}

// GroupInvitation represents an invitation to join a group
type GroupInvitation struct {
	ID        uuid.UUID        `db:"id"`
	GroupID   uuid.UUID        `db:"group_id"`
	InviterID uuid.UUID        `db:"inviter_id"`
	InviteeID uuid.UUID        `db:"invitee_id"`
	Status    InvitationStatus `db:"status"`
	CreatedAt time.Time        `db:"created_at"`
}

// GroupFilm links a film to a group's shared list
type GroupFilm struct {
	ID      uuid.UUID `db:"id"`
	GroupID uuid.UUID `db:"group_id"`
	FilmID  uuid.UUID `db:"film_id"`
	AddedBy uuid.UUID `db:"added_by"`
	AddedAt time.Time `db:"added_at"`
}

// GroupSummary is a group with aggregate counts and the viewer's role
type GroupSummary struct {
	Group
	MemberCount int            `db:"member_count"`
	FilmCount   int            `db:"film_count"`
	ViewerRole  sql.NullString `db:"viewer_role"`
}

// MemberInfo is a member joined with user details
type MemberInfo struct {
	UserID   uuid.UUID      `db:"user_id"`
	Pseudo   string         `db:"pseudo"`
	PhotoURL sql.NullString `db:"photo_url"`
	Role     MemberRole     `db:"role"`
	JoinedAt time.Time      `db:"joined_at"`
}

// GroupFilmInfo is a group film joined with film details
type GroupFilmInfo struct {
	FilmID    uuid.UUID      `db:"film_id"`
	TMDBID    int64          `db:"tmdb_id"`
	Title     string         `db:"title"`
	PosterURL sql.NullString `db:"poster_url"`
	AvgRating float64        `db:"avg_rating"`
	AddedBy   uuid.UUID      `db:"added_by"`
	AddedAt   time.Time      `db:"added_at"`
}
