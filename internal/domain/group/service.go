package group

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/film"
	"github.com/cineconnect/cineconnect-api/internal/domain/user"
)

// Notifier delivers group-related notifications
type Notifier interface {
	NotifyGroupInvitation(ctx context.Context, inviteeID uuid.UUID, groupID uuid.UUID, groupTitle, inviterPseudo string)
}

// FilmProvider resolves catalog films into persisted rows
type FilmProvider interface {
	EnsureFromCatalog(ctx context.Context, tmdbID int64) (*film.Film, error)
}

// Service handles group business logic
type Service struct {
	repo     Repository
	userRepo user.Repository
	films    FilmProvider
	notifier Notifier
}

// NewService creates group service
func NewService(repo Repository, userRepo user.Repository, films FilmProvider, notifier Notifier) *Service {
	return &Service{repo: repo, userRepo: userRepo, films: films, notifier: notifier}
}

// Create creates a group; the creator becomes its admin atomically
func (s *Service) Create(ctx context.Context, creatorID uuid.UUID, req *CreateRequest) (*Group, error) {
	g := &Group{
		ID:        uuid.New(),
		CreatorID: creatorID,
		Title:     strings.TrimSpace(req.Title),
		IsPublic:  req.IsPublic == nil || *req.IsPublic,
	}
	if req.Description != "" {
		g.Description = sql.NullString{String: req.Description, Valid: true}
	}
	if req.CoverURL != "" {
		g.CoverURL = sql.NullString{String: req.CoverURL, Valid: true}
	}
	if req.Theme != "" {
		g.Theme = sql.NullString{String: req.Theme, Valid: true}
	}

	if err := s.repo.CreateWithAdmin(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// List returns groups visible to the viewer
func (s *Service) List(ctx context.Context, viewerID uuid.UUID) ([]*GroupSummary, error) {
	return s.repo.ListVisible(ctx, viewerID)
}

// ListForUser returns the groups a user belongs to
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*GroupSummary, error) {
	return s.repo.ListForUser(ctx, userID)
}

// GetDetails returns a group with members and films. Private groups are
// only visible to members.
func (s *Service) GetDetails(ctx context.Context, groupID, viewerID uuid.UUID) (*Group, []*MemberInfo, []*GroupFilmInfo, *GroupMember, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if g == nil {
		return nil, nil, nil, nil, ErrGroupNotFound
	}

	viewer, err := s.repo.GetMember(ctx, groupID, viewerID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	if !g.IsPublic && viewer == nil {
		return nil, nil, nil, nil, ErrPrivateGroup
	}

	members, err := s.repo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	films, err := s.repo.ListFilms(ctx, groupID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return g, members, films, viewer, nil
}

// Update modifies group settings. Requires admin or moderator role.
func (s *Service) Update(ctx context.Context, groupID, callerID uuid.UUID, req *UpdateRequest) (*Group, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	member, err := s.repo.GetMember(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}
	if member == nil || (member.Role != RoleAdmin && member.Role != RoleModerator) {
		return nil, ErrInsufficientRole
	}

	if req.Title != nil {
		g.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		g.Description = sql.NullString{String: *req.Description, Valid: *req.Description != ""}
	}
	if req.CoverURL != nil {
		g.CoverURL = sql.NullString{String: *req.CoverURL, Valid: *req.CoverURL != ""}
	}
	if req.Theme != nil {
		g.Theme = sql.NullString{String: *req.Theme, Valid: *req.Theme != ""}
	}
	if req.IsPublic != nil {
		g.IsPublic = *req.IsPublic
	}

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Delete removes a group and all dependent rows. Admin only.
func (s *Service) Delete(ctx context.Context, groupID, callerID uuid.UUID) error {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}

	member, err := s.repo.GetMember(ctx, groupID, callerID)
	if err != nil {
		return err
	}
	if member == nil || member.Role != RoleAdmin {
		return ErrInsufficientRole
	}

	return s.repo.Delete(ctx, groupID)
}

// Join adds the caller to a public group as a member
func (s *Service) Join(ctx context.Context, groupID, userID uuid.UUID) error {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}
	if !g.IsPublic {
		return ErrPrivateGroup
	}

	return s.repo.AddMember(ctx, &GroupMember{
		ID:      uuid.New(),
		GroupID: groupID,
		UserID:  userID,
		Role:    RoleMember,
	})
}

// Leave removes the caller from a group. The admin cannot leave; role
// transfer is not supported.
func (s *Service) Leave(ctx context.Context, groupID, userID uuid.UUID) error {
	member, err := s.repo.GetMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotMember
	}
	if member.Role == RoleAdmin {
		return ErrAdminCannotLeave
	}

	_, err = s.repo.RemoveMember(ctx, groupID, userID)
	return err
}

// AcceptInvitation consumes the caller's pending invitation and joins
// the group. This is the only way into a private group.
func (s *Service) AcceptInvitation(ctx context.Context, groupID, userID uuid.UUID) error {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}

	inv, err := s.repo.GetPendingInvitation(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if inv == nil {
		return ErrInvitationNotFound
	}

	if err := s.repo.AddMember(ctx, &GroupMember{
		ID:      uuid.New(),
		GroupID: groupID,
		UserID:  userID,
		Role:    RoleMember,
	}); err != nil {
		return err
	}

	return s.repo.UpdateInvitationStatus(ctx, inv.ID, InvitationAccepted)
}

// DeclineInvitation marks the caller's pending invitation declined
func (s *Service) DeclineInvitation(ctx context.Context, groupID, userID uuid.UUID) error {
	inv, err := s.repo.GetPendingInvitation(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if inv == nil {
		return ErrInvitationNotFound
	}
	return s.repo.UpdateInvitationStatus(ctx, inv.ID, InvitationDeclined)
}

// Invite invites a user (by email) to the group. Requires admin or
// moderator role. Emits a notification for the invitee.
func (s *Service) Invite(ctx context.Context, groupID, inviterID uuid.UUID, inviteeEmail string) (*GroupInvitation, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	inviter, err := s.repo.GetMember(ctx, groupID, inviterID)
	if err != nil {
		return nil, err
	}
	if inviter == nil || (inviter.Role != RoleAdmin && inviter.Role != RoleModerator) {
		return nil, ErrInsufficientRole
	}

	invitee, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(inviteeEmail)))
	if err != nil {
		return nil, err
	}
	if invitee == nil {
		return nil, ErrInviteeNotFound
	}

	if existing, err := s.repo.GetMember(ctx, groupID, invitee.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrAlreadyMember
	}

	if pending, err := s.repo.GetPendingInvitation(ctx, groupID, invitee.ID); err != nil {
		return nil, err
	} else if pending != nil {
		return nil, ErrAlreadyInvited
	}

	inv := &GroupInvitation{
		ID:        uuid.New(),
		GroupID:   groupID,
		InviterID: inviterID,
		InviteeID: invitee.ID,
		Status:    InvitationPending,
	}
	if err := s.repo.CreateInvitation(ctx, inv); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		inviterUser, _ := s.userRepo.GetByID(ctx, inviterID)
		inviterPseudo := ""
		if inviterUser != nil {
			inviterPseudo = inviterUser.Pseudo
		}
		s.notifier.NotifyGroupInvitation(ctx, invitee.ID, groupID, g.Title, inviterPseudo)
	}

	return inv, nil
}

// AddFilm adds a catalog film to the group's shared list. Any member.
func (s *Service) AddFilm(ctx context.Context, groupID, callerID uuid.UUID, tmdbID int64) (*GroupFilm, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	member, err := s.repo.GetMember(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	f, err := s.films.EnsureFromCatalog(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	gf := &GroupFilm{
		ID:      uuid.New(),
		GroupID: groupID,
		FilmID:  f.ID,
		AddedBy: callerID,
	}
	if err := s.repo.AddFilm(ctx, gf); err != nil {
		return nil, err
	}
	return gf, nil
}

// GetMember exposes membership lookups to other domains (chat access checks)
func (s *Service) GetMember(ctx context.Context, groupID, userID uuid.UUID) (*GroupMember, error) {
	return s.repo.GetMember(ctx, groupID, userID)
}

// GetByID exposes group lookups to other domains
func (s *Service) GetByID(ctx context.Context, groupID uuid.UUID) (*Group, error) {
	return s.repo.GetByID(ctx, groupID)
}
