package group

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/film"
	"github.com/cineconnect/cineconnect-api/internal/domain/user"
)

type memberKey struct{ groupID, userID uuid.UUID }

type groupRepoStub struct {
	groups      map[uuid.UUID]*Group
	members     map[memberKey]*GroupMember
	invitations []*GroupInvitation
	films       []*GroupFilm
}

func newGroupRepoStub() *groupRepoStub {
	return &groupRepoStub{
		groups:  map[uuid.UUID]*Group{},
		members: map[memberKey]*GroupMember{},
	}
}

func (r *groupRepoStub) CreateWithAdmin(_ context.Context, g *Group) error {
	r.groups[g.ID] = g
	r.members[memberKey{g.ID, g.CreatorID}] = &GroupMember{
		ID:      uuid.New(),
		GroupID: g.ID,
		UserID:  g.CreatorID,
		Role:    RoleAdmin,
	}
	return nil
}

func (r *groupRepoStub) GetByID(_ context.Context, id uuid.UUID) (*Group, error) {
	return r.groups[id], nil
}

func (r *groupRepoStub) Update(_ context.Context, g *Group) error {
	r.groups[g.ID] = g
	return nil
}

func (r *groupRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.groups, id)
	return nil
}

func (r *groupRepoStub) ListVisible(context.Context, uuid.UUID) ([]*GroupSummary, error) {
	return nil, nil
}

func (r *groupRepoStub) ListForUser(context.Context, uuid.UUID) ([]*GroupSummary, error) {
	return nil, nil
}

func (r *groupRepoStub) AddMember(_ context.Context, m *GroupMember) error {
	key := memberKey{m.GroupID, m.UserID}
	if _, ok := r.members[key]; ok {
		return ErrAlreadyMember
	}
	r.members[key] = m
	return nil
}

func (r *groupRepoStub) RemoveMember(_ context.Context, groupID, userID uuid.UUID) (bool, error) {
	key := memberKey{groupID, userID}
	if _, ok := r.members[key]; !ok {
		return false, nil
	}
	delete(r.members, key)
	return true, nil
}

func (r *groupRepoStub) GetMember(_ context.Context, groupID, userID uuid.UUID) (*GroupMember, error) {
	return r.members[memberKey{groupID, userID}], nil
}

func (r *groupRepoStub) ListMembers(context.Context, uuid.UUID) ([]*MemberInfo, error) {
	return nil, nil
}

func (r *groupRepoStub) CreateInvitation(_ context.Context, inv *GroupInvitation) error {
	r.invitations = append(r.invitations, inv)
	return nil
}

func (r *groupRepoStub) GetPendingInvitation(_ context.Context, groupID, inviteeID uuid.UUID) (*GroupInvitation, error) {
	for _, inv := range r.invitations {
		if inv.GroupID == groupID && inv.InviteeID == inviteeID && inv.Status == InvitationPending {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *groupRepoStub) UpdateInvitationStatus(_ context.Context, id uuid.UUID, status InvitationStatus) error {
	for _, inv := range r.invitations {
		if inv.ID == id {
			inv.Status = status
		}
	}
	return nil
}

func (r *groupRepoStub) AddFilm(_ context.Context, gf *GroupFilm) error {
	for _, existing := range r.films {
		if existing.GroupID == gf.GroupID && existing.FilmID == gf.FilmID {
			return ErrFilmAlreadyInGroup
		}
	}
	r.films = append(r.films, gf)
	return nil
}

func (r *groupRepoStub) ListFilms(context.Context, uuid.UUID) ([]*GroupFilmInfo, error) {
	return nil, nil
}

type userRepoStub struct {
	users map[uuid.UUID]*user.User
}

func (r *userRepoStub) Create(context.Context, *user.User) error { return nil }
func (r *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return r.users[id], nil
}
func (r *userRepoStub) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *userRepoStub) GetByPseudo(context.Context, string) (*user.User, error) { return nil, nil }
func (r *userRepoStub) Update(context.Context, *user.User) error                { return nil }
func (r *userRepoStub) UpdatePassword(context.Context, uuid.UUID, string) error { return nil }
func (r *userRepoStub) UpdatePhotoURL(context.Context, uuid.UUID, string) error { return nil }
func (r *userRepoStub) SetResetToken(context.Context, uuid.UUID, string, time.Time) error {
	return nil
}
func (r *userRepoStub) GetByResetTokenHash(context.Context, string) (*user.User, error) {
	return nil, nil
}
func (r *userRepoStub) ClearResetToken(context.Context, uuid.UUID) error { return nil }

type filmProviderStub struct {
	film *film.Film
}

func (f *filmProviderStub) EnsureFromCatalog(context.Context, int64) (*film.Film, error) {
	if f.film == nil {
		return nil, film.ErrFilmNotFound
	}
	return f.film, nil
}

type notifierStub struct {
	invitations int
	lastInvitee uuid.UUID
}

func (n *notifierStub) NotifyGroupInvitation(_ context.Context, inviteeID uuid.UUID, _ uuid.UUID, _, _ string) {
	n.invitations++
	n.lastInvitee = inviteeID
}

func boolPtr(b bool) *bool { return &b }

func TestCreateDefaultsToPublic(t *testing.T) {
	repo := newGroupRepoStub()
	svc := NewService(repo, &userRepoStub{}, &filmProviderStub{}, nil)
	creator := uuid.New()

	g, err := svc.Create(context.Background(), creator, &CreateRequest{Title: "  Noir Nights  "})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !g.IsPublic {
		t.Fatal("expected group to default to public")
	}
	if g.Title != "Noir Nights" {
		t.Fatalf("expected trimmed title, got %q", g.Title)
	}

	member, err := repo.GetMember(context.Background(), g.ID, creator)
	if err != nil {
		t.Fatalf("get member failed: %v", err)
	}
	if member == nil || member.Role != RoleAdmin {
		t.Fatalf("expected creator to be admin, got %+v", member)
	}
}

func TestCreatePrivate(t *testing.T) {
	repo := newGroupRepoStub()
	svc := NewService(repo, &userRepoStub{}, &filmProviderStub{}, nil)

	g, err := svc.Create(context.Background(), uuid.New(), &CreateRequest{Title: "Secret Screenings", IsPublic: boolPtr(false)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if g.IsPublic {
		t.Fatal("expected private group")
	}
}

func TestJoinPrivateGroup(t *testing.T) {
	repo := newGroupRepoStub()
	svc := NewService(repo, &userRepoStub{}, &filmProviderStub{}, nil)

	g, _ := svc.Create(context.Background(), uuid.New(), &CreateRequest{Title: "Secret", IsPublic: boolPtr(false)})

	err := svc.Join(context.Background(), g.ID, uuid.New())
	if !errors.Is(err, ErrPrivateGroup) {
		t.Fatalf("expected ErrPrivateGroup, got %v", err)
	}
}

func TestJoinUnknownGroup(t *testing.T) {
	svc := NewService(newGroupRepoStub(), &userRepoStub{}, &filmProviderStub{}, nil)

	err := svc.Join(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestAdminCannotLeave(t *testing.T) {
	repo := newGroupRepoStub()
	svc := NewService(repo, &userRepoStub{}, &filmProviderStub{}, nil)
	creator := uuid.New()

	g, _ := svc.Create(context.Background(), creator, &CreateRequest{Title: "Stuck"})

	err := svc.Leave(context.Background(), g.ID, creator)
	if !errors.Is(err, ErrAdminCannotLeave) {
		t.Fatalf("expected ErrAdminCannotLeave, got %v", err)
	}
}

func TestMemberLeaves(t *testing.T) {
	repo := newGroupRepoStub()
	svc := NewService(repo, &userRepoStub{}, &filmProviderStub{}, nil)

	g, _ := svc.Create(context.Background(), uuid.New(), &CreateRequest{Title: "Open"})
	member := uuid.New()
	if err := svc.Join(context.Background(), g.ID, member); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	if err := svc.Leave(context.Background(), g.ID, member); err != nil {
		t.Fatalf("leave failed: %v", err)
	}

	err := svc.Leave(context.Background(), g.ID, member)
	if !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember on second leave, got %v", err)
	}
}

func TestPrivateGroupDetailsHiddenFromNonMember(t *testing.T) {
	repo := newGroupRepoStub()
	svc := NewService(repo, &userRepoStub{}, &filmProviderStub{}, nil)

	g, _ := svc.Create(context.Background(), uuid.New(), &CreateRequest{Title: "Hidden", IsPublic: boolPtr(false)})

	_, _, _, _, err := svc.GetDetails(context.Background(), g.ID, uuid.New())
	if !errors.Is(err, ErrPrivateGroup) {
		t.Fatalf("expected ErrPrivateGroup, got %v", err)
	}
}

func TestUpdateRequiresModeratorRole(t *testing.T) {
	repo := newGroupRepoStub()
	svc := NewService(repo, &userRepoStub{}, &filmProviderStub{}, nil)

	g, _ := svc.Create(context.Background(), uuid.New(), &CreateRequest{Title: "Managed"})
	member := uuid.New()
	if err := svc.Join(context.Background(), g.ID, member); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	title := "Renamed"
	_, err := svc.Update(context.Background(), g.ID, member, &UpdateRequest{Title: &title})
	if !errors.Is(err, ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
}

func TestDeleteRequiresAdmin(t *testing.T) {
	repo := newGroupRepoStub()
	svc := NewService(repo, &userRepoStub{}, &filmProviderStub{}, nil)

	g, _ := svc.Create(context.Background(), uuid.New(), &CreateRequest{Title: "Doomed"})
	moderator := uuid.New()
	repo.members[memberKey{g.ID, moderator}] = &GroupMember{
		ID: uuid.New(), GroupID: g.ID, UserID: moderator, Role: RoleModerator,
	}

	err := svc.Delete(context.Background(), g.ID, moderator)
	if !errors.Is(err, ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
}

func TestInviteFlow(t *testing.T) {
	repo := newGroupRepoStub()
	admin := uuid.New()
	invitee := uuid.New()
	users := &userRepoStub{users: map[uuid.UUID]*user.User{
		admin:   {ID: admin, Email: "admin@example.com", Pseudo: "cinephile"},
		invitee: {ID: invitee, Email: "newcomer@example.com", Pseudo: "newcomer"},
	}}
	notifier := &notifierStub{}
	svc := NewService(repo, users, &filmProviderStub{}, notifier)

	g, _ := svc.Create(context.Background(), admin, &CreateRequest{Title: "Club"})

	inv, err := svc.Invite(context.Background(), g.ID, admin, "newcomer@example.com")
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	if inv.InviteeID != invitee {
		t.Fatalf("expected invitee %s, got %s", invitee, inv.InviteeID)
	}
	if notifier.invitations != 1 || notifier.lastInvitee != invitee {
		t.Fatalf("expected one notification for invitee, got %d for %s", notifier.invitations, notifier.lastInvitee)
	}

	_, err = svc.Invite(context.Background(), g.ID, admin, "newcomer@example.com")
	if !errors.Is(err, ErrAlreadyInvited) {
		t.Fatalf("expected ErrAlreadyInvited, got %v", err)
	}
}

func TestAcceptInvitationJoinsPrivateGroup(t *testing.T) {
	repo := newGroupRepoStub()
	admin := uuid.New()
	invitee := uuid.New()
	users := &userRepoStub{users: map[uuid.UUID]*user.User{
		admin:   {ID: admin, Email: "admin@example.com", Pseudo: "cinephile"},
		invitee: {ID: invitee, Email: "newcomer@example.com", Pseudo: "newcomer"},
	}}
	svc := NewService(repo, users, &filmProviderStub{}, nil)

	g, _ := svc.Create(context.Background(), admin, &CreateRequest{Title: "Secret", IsPublic: boolPtr(false)})
	if _, err := svc.Invite(context.Background(), g.ID, admin, "newcomer@example.com"); err != nil {
		t.Fatalf("invite failed: %v", err)
	}

	if err := svc.AcceptInvitation(context.Background(), g.ID, invitee); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	member, err := repo.GetMember(context.Background(), g.ID, invitee)
	if err != nil {
		t.Fatalf("get member failed: %v", err)
	}
	if member == nil || member.Role != RoleMember {
		t.Fatalf("expected invitee to become member, got %+v", member)
	}

	// The invitation is consumed
	err = svc.AcceptInvitation(context.Background(), g.ID, invitee)
	if !errors.Is(err, ErrInvitationNotFound) {
		t.Fatalf("expected ErrInvitationNotFound on second accept, got %v", err)
	}
}

func TestAcceptInvitationWithoutInvitation(t *testing.T) {
	repo := newGroupRepoStub()
	svc := NewService(repo, &userRepoStub{}, &filmProviderStub{}, nil)

	g, _ := svc.Create(context.Background(), uuid.New(), &CreateRequest{Title: "Secret", IsPublic: boolPtr(false)})

	err := svc.AcceptInvitation(context.Background(), g.ID, uuid.New())
	if !errors.Is(err, ErrInvitationNotFound) {
		t.Fatalf("expected ErrInvitationNotFound, got %v", err)
	}
}

func TestDeclineInvitation(t *testing.T) {
	repo := newGroupRepoStub()
	admin := uuid.New()
	invitee := uuid.New()
	users := &userRepoStub{users: map[uuid.UUID]*user.User{
		admin:   {ID: admin, Email: "admin@example.com", Pseudo: "cinephile"},
		invitee: {ID: invitee, Email: "newcomer@example.com", Pseudo: "newcomer"},
	}}
	svc := NewService(repo, users, &filmProviderStub{}, nil)

	g, _ := svc.Create(context.Background(), admin, &CreateRequest{Title: "Secret", IsPublic: boolPtr(false)})
	if _, err := svc.Invite(context.Background(), g.ID, admin, "newcomer@example.com"); err != nil {
		t.Fatalf("invite failed: %v", err)
	}

	if err := svc.DeclineInvitation(context.Background(), g.ID, invitee); err != nil {
		t.Fatalf("decline failed: %v", err)
	}

	member, _ := repo.GetMember(context.Background(), g.ID, invitee)
	if member != nil {
		t.Fatal("declined invitee must not become a member")
	}

	err := svc.AcceptInvitation(context.Background(), g.ID, invitee)
	if !errors.Is(err, ErrInvitationNotFound) {
		t.Fatalf("expected ErrInvitationNotFound after decline, got %v", err)
	}
}

func TestInviteExistingMember(t *testing.T) {
	repo := newGroupRepoStub()
	admin := uuid.New()
	other := uuid.New()
	users := &userRepoStub{users: map[uuid.UUID]*user.User{
		admin: {ID: admin, Email: "admin@example.com"},
		other: {ID: other, Email: "member@example.com"},
	}}
	svc := NewService(repo, users, &filmProviderStub{}, nil)

	g, _ := svc.Create(context.Background(), admin, &CreateRequest{Title: "Club"})
	if err := svc.Join(context.Background(), g.ID, other); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	_, err := svc.Invite(context.Background(), g.ID, admin, "member@example.com")
	if !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestInviteRequiresRole(t *testing.T) {
	repo := newGroupRepoStub()
	admin := uuid.New()
	member := uuid.New()
	users := &userRepoStub{users: map[uuid.UUID]*user.User{
		admin:  {ID: admin, Email: "admin@example.com"},
		member: {ID: member, Email: "member@example.com"},
	}}
	svc := NewService(repo, users, &filmProviderStub{}, nil)

	g, _ := svc.Create(context.Background(), admin, &CreateRequest{Title: "Club"})
	if err := svc.Join(context.Background(), g.ID, member); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	_, err := svc.Invite(context.Background(), g.ID, member, "anyone@example.com")
	if !errors.Is(err, ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
}

func TestAddFilmRequiresMembership(t *testing.T) {
	repo := newGroupRepoStub()
	svc := NewService(repo, &userRepoStub{}, &filmProviderStub{film: &film.Film{ID: uuid.New(), TMDBID: 603}}, nil)

	g, _ := svc.Create(context.Background(), uuid.New(), &CreateRequest{Title: "Watchlist"})

	_, err := svc.AddFilm(context.Background(), g.ID, uuid.New(), 603)
	if !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestAddFilmDuplicate(t *testing.T) {
	repo := newGroupRepoStub()
	creator := uuid.New()
	svc := NewService(repo, &userRepoStub{}, &filmProviderStub{film: &film.Film{ID: uuid.New(), TMDBID: 603}}, nil)

	g, _ := svc.Create(context.Background(), creator, &CreateRequest{Title: "Watchlist"})

	if _, err := svc.AddFilm(context.Background(), g.ID, creator, 603); err != nil {
		t.Fatalf("add film failed: %v", err)
	}

	_, err := svc.AddFilm(context.Background(), g.ID, creator, 603)
	if !errors.Is(err, ErrFilmAlreadyInGroup) {
		t.Fatalf("expected ErrFilmAlreadyInGroup, got %v", err)
	}
}
