package profile

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/film"
	"github.com/cineconnect/cineconnect-api/internal/domain/group"
	"github.com/cineconnect/cineconnect-api/internal/domain/review"
	"github.com/cineconnect/cineconnect-api/internal/domain/user"
)

type favorite struct {
	filmID   uuid.UUID
	position int
}

type profileRepoStub struct {
	favorites map[uuid.UUID][]favorite
}

func newProfileRepoStub() *profileRepoStub {
	return &profileRepoStub{favorites: map[uuid.UUID][]favorite{}}
}

func (r *profileRepoStub) GetStats(context.Context, uuid.UUID) (*Stats, error) {
	return &Stats{}, nil
}

func (r *profileRepoStub) ListFavorites(_ context.Context, userID uuid.UUID) ([]*FavoriteFilm, error) {
	favs := append([]favorite(nil), r.favorites[userID]...)
	sort.Slice(favs, func(i, j int) bool { return favs[i].position < favs[j].position })
	out := make([]*FavoriteFilm, 0, len(favs))
	for _, f := range favs {
		out = append(out, &FavoriteFilm{FilmID: f.filmID, Position: f.position})
	}
	return out, nil
}

func (r *profileRepoStub) CountFavorites(_ context.Context, userID uuid.UUID) (int, error) {
	return len(r.favorites[userID]), nil
}

func (r *profileRepoStub) AddFavorite(_ context.Context, userID, filmID uuid.UUID, position int) error {
	for _, f := range r.favorites[userID] {
		if f.filmID == filmID {
			return ErrAlreadyFavorite
		}
	}
	r.favorites[userID] = append(r.favorites[userID], favorite{filmID: filmID, position: position})
	return nil
}

func (r *profileRepoStub) RemoveFavorite(_ context.Context, userID, filmID uuid.UUID) error {
	favs := r.favorites[userID]
	idx := -1
	for i, f := range favs {
		if f.filmID == filmID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrFavoriteNotFound
	}
	favs = append(favs[:idx], favs[idx+1:]...)
	sort.Slice(favs, func(i, j int) bool { return favs[i].position < favs[j].position })
	for i := range favs {
		favs[i].position = i
	}
	r.favorites[userID] = favs
	return nil
}

type userRepoStub struct {
	users map[uuid.UUID]*user.User
}

func (r *userRepoStub) Create(context.Context, *user.User) error { return nil }
func (r *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return r.users[id], nil
}
func (r *userRepoStub) GetByEmail(context.Context, string) (*user.User, error) { return nil, nil }
func (r *userRepoStub) GetByPseudo(_ context.Context, pseudo string) (*user.User, error) {
	for _, u := range r.users {
		if u.Pseudo == pseudo {
			return u, nil
		}
	}
	return nil, nil
}
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

type reviewListerStub struct {
	reviews []*review.ReviewWithFilm
}

func (s *reviewListerStub) ListMy(context.Context, uuid.UUID) ([]*review.ReviewWithFilm, error) {
	return s.reviews, nil
}

type groupListerStub struct{}

func (groupListerStub) ListForUser(context.Context, uuid.UUID) ([]*group.GroupSummary, error) {
	return nil, nil
}

type followCheckerStub struct {
	following bool
}

func (s *followCheckerStub) IsFollowing(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return s.following, nil
}

type filmProviderStub struct {
	films map[int64]*film.Film
}

func (s *filmProviderStub) EnsureFromCatalog(_ context.Context, tmdbID int64) (*film.Film, error) {
	f, ok := s.films[tmdbID]
	if !ok {
		return nil, film.ErrFilmNotFound
	}
	return f, nil
}

type profileFixture struct {
	svc   *Service
	repo  *profileRepoStub
	users *userRepoStub
	films *filmProviderStub
}

func newProfileFixture() *profileFixture {
	repo := newProfileRepoStub()
	users := &userRepoStub{users: map[uuid.UUID]*user.User{}}
	films := &filmProviderStub{films: map[int64]*film.Film{}}
	svc := NewService(repo, users, &reviewListerStub{}, groupListerStub{}, &followCheckerStub{}, films, nil)
	return &profileFixture{svc: svc, repo: repo, users: users, films: films}
}

func (f *profileFixture) seedFilm(tmdbID int64) *film.Film {
	fl := &film.Film{ID: uuid.New(), TMDBID: tmdbID}
	f.films.films[tmdbID] = fl
	return fl
}

func TestAddFavoriteAssignsPositions(t *testing.T) {
	f := newProfileFixture()
	userID := uuid.New()

	for i := int64(1); i <= 3; i++ {
		f.seedFilm(i)
		if _, err := f.svc.AddFavorite(context.Background(), userID, i); err != nil {
			t.Fatalf("add favorite %d failed: %v", i, err)
		}
	}

	favs, err := f.repo.ListFavorites(context.Background(), userID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i, fav := range favs {
		if fav.Position != i {
			t.Fatalf("expected position %d, got %d", i, fav.Position)
		}
	}
}

func TestAddFavoriteLimit(t *testing.T) {
	f := newProfileFixture()
	userID := uuid.New()

	for i := int64(1); i <= int64(MaxFavorites); i++ {
		f.seedFilm(i)
		if _, err := f.svc.AddFavorite(context.Background(), userID, i); err != nil {
			t.Fatalf("add favorite %d failed: %v", i, err)
		}
	}

	f.seedFilm(99)
	_, err := f.svc.AddFavorite(context.Background(), userID, 99)
	if !errors.Is(err, ErrFavoriteLimit) {
		t.Fatalf("expected ErrFavoriteLimit, got %v", err)
	}
}

func TestAddFavoriteDuplicate(t *testing.T) {
	f := newProfileFixture()
	userID := uuid.New()
	f.seedFilm(603)

	if _, err := f.svc.AddFavorite(context.Background(), userID, 603); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	_, err := f.svc.AddFavorite(context.Background(), userID, 603)
	if !errors.Is(err, ErrAlreadyFavorite) {
		t.Fatalf("expected ErrAlreadyFavorite, got %v", err)
	}
}

func TestAddFavoriteUnknownFilm(t *testing.T) {
	f := newProfileFixture()

	_, err := f.svc.AddFavorite(context.Background(), uuid.New(), 404)
	if !errors.Is(err, film.ErrFilmNotFound) {
		t.Fatalf("expected ErrFilmNotFound, got %v", err)
	}
}

func TestRemoveFavoriteCompactsPositions(t *testing.T) {
	f := newProfileFixture()
	userID := uuid.New()

	for i := int64(1); i <= 4; i++ {
		f.seedFilm(i)
		if _, err := f.svc.AddFavorite(context.Background(), userID, i); err != nil {
			t.Fatalf("add favorite %d failed: %v", i, err)
		}
	}

	favs, err := f.svc.RemoveFavorite(context.Background(), userID, 2)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(favs) != 3 {
		t.Fatalf("expected 3 favorites, got %d", len(favs))
	}
	for i, fav := range favs {
		if fav.Position != i {
			t.Fatalf("expected compacted position %d, got %d", i, fav.Position)
		}
	}

	if _, err := f.svc.AddFavorite(context.Background(), userID, 2); err != nil {
		t.Fatalf("re-add after remove failed: %v", err)
	}
}

func TestRemoveFavoriteMissing(t *testing.T) {
	f := newProfileFixture()
	f.seedFilm(603)

	_, err := f.svc.RemoveFavorite(context.Background(), uuid.New(), 603)
	if !errors.Is(err, ErrFavoriteNotFound) {
		t.Fatalf("expected ErrFavoriteNotFound, got %v", err)
	}
}

func TestGetProfileOwnerAndViewer(t *testing.T) {
	f := newProfileFixture()
	owner := uuid.New()
	f.users.users[owner] = &user.User{ID: owner, Email: "owner@example.com", Pseudo: "owner"}

	p, err := f.svc.GetProfile(context.Background(), owner, owner)
	if err != nil {
		t.Fatalf("owner view failed: %v", err)
	}
	if !p.IsOwner {
		t.Fatal("expected IsOwner for self view")
	}

	p, err = f.svc.GetProfile(context.Background(), owner, uuid.New())
	if err != nil {
		t.Fatalf("viewer view failed: %v", err)
	}
	if p.IsOwner {
		t.Fatal("expected IsOwner false for stranger view")
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	f := newProfileFixture()

	_, err := f.svc.GetProfile(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetProfileTruncatesRecentReviews(t *testing.T) {
	f := newProfileFixture()
	owner := uuid.New()
	f.users.users[owner] = &user.User{ID: owner, Pseudo: "prolific"}

	var reviews []*review.ReviewWithFilm
	for i := 0; i < 10; i++ {
		reviews = append(reviews, &review.ReviewWithFilm{})
	}
	svc := NewService(f.repo, f.users, &reviewListerStub{reviews: reviews}, groupListerStub{}, &followCheckerStub{}, f.films, nil)

	p, err := svc.GetProfile(context.Background(), owner, owner)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if len(p.RecentReviews) != recentReviewsShown {
		t.Fatalf("expected %d recent reviews, got %d", recentReviewsShown, len(p.RecentReviews))
	}
}

func TestUpdateProfilePseudoTaken(t *testing.T) {
	f := newProfileFixture()
	a := uuid.New()
	b := uuid.New()
	f.users.users[a] = &user.User{ID: a, Pseudo: "original"}
	f.users.users[b] = &user.User{ID: b, Pseudo: "taken"}

	pseudo := "taken"
	_, err := f.svc.UpdateProfile(context.Background(), a, &UpdateRequest{Pseudo: &pseudo})
	if !errors.Is(err, ErrPseudoTaken) {
		t.Fatalf("expected ErrPseudoTaken, got %v", err)
	}
}

func TestUpdateProfileKeepOwnPseudo(t *testing.T) {
	f := newProfileFixture()
	a := uuid.New()
	f.users.users[a] = &user.User{ID: a, Pseudo: "same"}

	pseudo := "same"
	bio := "films over everything"
	u, err := f.svc.UpdateProfile(context.Background(), a, &UpdateRequest{Pseudo: &pseudo, Bio: &bio})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if u.Bio.String != bio || !u.Bio.Valid {
		t.Fatalf("expected bio set, got %+v", u.Bio)
	}
}
