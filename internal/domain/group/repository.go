package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines group data access interface
type Repository interface {
	// CreateWithAdmin inserts the group and its creator's admin membership
	// in one transaction.
	CreateWithAdmin(ctx context.Context, g *Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*Group, error)
	Update(ctx context.Context, g *Group) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListVisible(ctx context.Context, viewerID uuid.UUID) ([]*GroupSummary, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*GroupSummary, error)

	// Membership
	AddMember(ctx context.Context, m *GroupMember) error
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	GetMember(ctx context.Context, groupID, userID uuid.UUID) (*GroupMember, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]*MemberInfo, error)

	// Invitations
	CreateInvitation(ctx context.Context, inv *GroupInvitation) error
	GetPendingInvitation(ctx context.Context, groupID, inviteeID uuid.UUID) (*GroupInvitation, error)
	UpdateInvitationStatus(ctx context.Context, id uuid.UUID, status InvitationStatus) error

	// Films
	AddFilm(ctx context.Context, gf *GroupFilm) error
	ListFilms(ctx context.Context, groupID uuid.UUID) ([]*GroupFilmInfo, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new group repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithAdmin(ctx context.Context, g *Group) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("group repository begin tx: %w", err)
	}
	defer tx.Rollback()

	groupQuery := `
		INSERT INTO groups (id, creator_id, title, description, cover_url, theme, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := tx.ExecContext(ctx, groupQuery,
		g.ID, g.CreatorID, g.Title, g.Description, g.CoverURL, g.Theme, g.IsPublic,
	); err != nil {
		return fmt.Errorf("group repository create: %w", err)
	}

	memberQuery := `
		INSERT INTO group_members (id, group_id, user_id, role)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, memberQuery,
		uuid.New(), g.ID, g.CreatorID, RoleAdmin,
	); err != nil {
		return fmt.Errorf("group repository create admin member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("group repository commit: %w", err)
	}
	return nil
}

const groupColumns = `id, creator_id, title, description, cover_url, theme, is_public, created_at, updated_at`

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`
	var g Group
	if err := r.db.GetContext(ctx, &g, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("group repository get by id: %w", err)
	}
	return &g, nil
}

func (r *repository) Update(ctx context.Context, g *Group) error {
	query := `
		UPDATE groups
		SET title = $2, description = $3, cover_url = $4, theme = $5, is_public = $6, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, g.ID, g.Title, g.Description, g.CoverURL, g.Theme, g.IsPublic)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	return err
}

const groupSummarySelect = `
	SELECT g.id, g.creator_id, g.title, g.description, g.cover_url, g.theme, g.is_public, g.created_at, g.updated_at,
	       (SELECT COUNT(*) FROM group_members gm WHERE gm.group_id = g.id) AS member_count,
	       (SELECT COUNT(*) FROM group_films gf WHERE gf.group_id = g.id) AS film_count,
	       (SELECT gm.role FROM group_members gm WHERE gm.group_id = g.id AND gm.user_id = $1) AS viewer_role
	FROM groups g
`

// ListVisible returns public groups plus the viewer's private groups
func (r *repository) ListVisible(ctx context.Context, viewerID uuid.UUID) ([]*GroupSummary, error) {
	query := groupSummarySelect + `
		WHERE g.is_public = TRUE
		   OR EXISTS (SELECT 1 FROM group_members gm WHERE gm.group_id = g.id AND gm.user_id = $1)
		ORDER BY g.created_at DESC
	`
	var groups []*GroupSummary
	if err := r.db.SelectContext(ctx, &groups, query, viewerID); err != nil {
		return nil, fmt.Errorf("group repository list visible: %w", err)
	}
	return groups, nil
}

// ListForUser returns the groups a user belongs to
func (r *repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*GroupSummary, error) {
	query := groupSummarySelect + `
		WHERE EXISTS (SELECT 1 FROM group_members gm WHERE gm.group_id = g.id AND gm.user_id = $1)
		ORDER BY g.created_at DESC
	`
	var groups []*GroupSummary
	if err := r.db.SelectContext(ctx, &groups, query, userID); err != nil {
		return nil, fmt.Errorf("group repository list for user: %w", err)
	}
	return groups, nil
}

func (r *repository) AddMember(ctx context.Context, m *GroupMember) error {
	query := `INSERT INTO group_members (id, group_id, user_id, role) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.GroupID, m.UserID, m.Role)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyMember
		}
		return fmt.Errorf("group repository add member: %w", err)
	}
	return nil
}

func (r *repository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return false, fmt.Errorf("group repository remove member: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repository) GetMember(ctx context.Context, groupID, userID uuid.UUID) (*GroupMember, error) {
	query := `SELECT id, group_id, user_id, role, joined_at FROM group_members WHERE group_id = $1 AND user_id = $2`
	var m GroupMember
	if err := r.db.GetContext(ctx, &m, query, groupID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("group repository get member: %w", err)
	}
	return &m, nil
}

func (r *repository) ListMembers(ctx context.Context, groupID uuid.UUID) ([]*MemberInfo, error) {
	query := `
		SELECT u.id AS user_id, u.pseudo, u.photo_url, gm.role, gm.joined_at
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY CASE gm.role WHEN 'admin' THEN 0 WHEN 'moderator' THEN 1 ELSE 2 END, gm.joined_at ASC
	`
	var members []*MemberInfo
	if err := r.db.SelectContext(ctx, &members, query, groupID); err != nil {
		return nil, fmt.Errorf("group repository list members: %w", err)
	}
	return members, nil
}

func (r *repository) CreateInvitation(ctx context.Context, inv *GroupInvitation) error {
	query := `
		INSERT INTO group_invitations (id, group_id, inviter_id, invitee_id, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, inv.ID, inv.GroupID, inv.InviterID, inv.InviteeID, inv.Status)
	if err != nil {
		return fmt.Errorf("group repository create invitation: %w", err)
	}
	return nil
}

func (r *repository) GetPendingInvitation(ctx context.Context, groupID, inviteeID uuid.UUID) (*GroupInvitation, error) {
	query := `
		SELECT id, group_id, inviter_id, invitee_id, status, created_at
		FROM group_invitations
		WHERE group_id = $1 AND invitee_id = $2 AND status = 'pending'
	`
	var inv GroupInvitation
	if err := r.db.GetContext(ctx, &inv, query, groupID, inviteeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("group repository get pending invitation: %w", err)
	}
	return &inv, nil
}

func (r *repository) UpdateInvitationStatus(ctx context.Context, id uuid.UUID, status InvitationStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE group_invitations SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("group repository update invitation: %w", err)
	}
	return nil
}

func (r *repository) AddFilm(ctx context.Context, gf *GroupFilm) error {
	query := `INSERT INTO group_films (id, group_id, film_id, added_by) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, gf.ID, gf.GroupID, gf.FilmID, gf.AddedBy)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrFilmAlreadyInGroup
		}
		return fmt.Errorf("group repository add film: %w", err)
	}
	return nil
}

func (r *repository) ListFilms(ctx context.Context, groupID uuid.UUID) ([]*GroupFilmInfo, error) {
	query := `
		SELECT f.id AS film_id, f.tmdb_id, f.title, f.poster_url, f.avg_rating, gf.added_by, gf.added_at
		FROM group_films gf
		JOIN films f ON f.id = gf.film_id
		WHERE gf.group_id = $1
		ORDER BY gf.added_at DESC
	`
	var films []*GroupFilmInfo
	if err := r.db.SelectContext(ctx, &films, query, groupID); err != nil {
		return nil, fmt.Errorf("group repository list films: %w", err)
	}
	return films, nil
}
