package profile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/film"
	"github.com/cineconnect/cineconnect-api/internal/domain/group"
	"github.com/cineconnect/cineconnect-api/internal/domain/review"
	"github.com/cineconnect/cineconnect-api/internal/domain/user"
	"github.com/cineconnect/cineconnect-api/internal/pkg/imaging"
	"github.com/cineconnect/cineconnect-api/internal/pkg/storage"
)

const recentReviewsShown = 3

// ReviewLister is what profiles need from the review domain
type ReviewLister interface {
	ListMy(ctx context.Context, userID uuid.UUID) ([]*review.ReviewWithFilm, error)
}

// GroupLister is what profiles need from the group domain
type GroupLister interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*group.GroupSummary, error)
}

// FollowChecker is what profiles need from the social domain
type FollowChecker interface {
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
}

// FilmProvider resolves catalog films into persisted rows
type FilmProvider interface {
	EnsureFromCatalog(ctx context.Context, tmdbID int64) (*film.Film, error)
}

// Service handles profile business logic
type Service struct {
	repo      Repository
	userRepo  user.Repository
	reviews   ReviewLister
	groups    GroupLister
	follows   FollowChecker
	films     FilmProvider
	store     storage.Storage
	processor *imaging.Processor
}

// NewService creates profile service
func NewService(repo Repository, userRepo user.Repository, reviews ReviewLister, groups GroupLister, follows FollowChecker, films FilmProvider, store storage.Storage) *Service {
	return &Service{
		repo:      repo,
		userRepo:  userRepo,
		reviews:   reviews,
		groups:    groups,
		follows:   follows,
		films:     films,
		store:     store,
		processor: imaging.NewProcessor(imaging.AvatarConfig()),
	}
}

// Profile aggregates everything a profile page shows
type Profile struct {
	User          *user.User
	Stats         *Stats
	Favorites     []*FavoriteFilm
	RecentReviews []*review.ReviewWithFilm
	IsFollowing   bool
	IsOwner       bool
}

// GetProfile assembles a user's profile. Email is included only when the
// viewer is the owner.
func (s *Service) GetProfile(ctx context.Context, targetID, viewerID uuid.UUID) (*Profile, error) {
	u, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	stats, err := s.repo.GetStats(ctx, targetID)
	if err != nil {
		return nil, err
	}

	favorites, err := s.repo.ListFavorites(ctx, targetID)
	if err != nil {
		return nil, err
	}

	recent, err := s.reviews.ListMy(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if len(recent) > recentReviewsShown {
		recent = recent[:recentReviewsShown]
	}

	p := &Profile{
		User:          u,
		Stats:         stats,
		Favorites:     favorites,
		RecentReviews: recent,
		IsOwner:       targetID == viewerID,
	}

	if !p.IsOwner {
		following, err := s.follows.IsFollowing(ctx, viewerID, targetID)
		if err != nil {
			return nil, err
		}
		p.IsFollowing = following
	}

	return p, nil
}

// UpdateProfile applies a partial update to the caller's own profile
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateRequest) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if req.Pseudo != nil {
		pseudo := strings.TrimSpace(*req.Pseudo)
		if pseudo != u.Pseudo {
			existing, err := s.userRepo.GetByPseudo(ctx, pseudo)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != userID {
				return nil, ErrPseudoTaken
			}
			u.Pseudo = pseudo
		}
	}
	if req.Bio != nil {
		u.Bio.String = strings.TrimSpace(*req.Bio)
		u.Bio.Valid = u.Bio.String != ""
	}
	if req.GenrePreferences != nil {
		u.GenrePreferences = *req.GenrePreferences
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// AddFavorite appends a film to the showcase. Position is the current
// count; the list caps at MaxFavorites.
func (s *Service) AddFavorite(ctx context.Context, userID uuid.UUID, tmdbID int64) ([]*FavoriteFilm, error) {
	f, err := s.films.EnsureFromCatalog(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= MaxFavorites {
		return nil, ErrFavoriteLimit
	}

	if err := s.repo.AddFavorite(ctx, userID, f.ID, count); err != nil {
		return nil, err
	}
	return s.repo.ListFavorites(ctx, userID)
}

// RemoveFavorite drops a film from the showcase and compacts positions
func (s *Service) RemoveFavorite(ctx context.Context, userID uuid.UUID, tmdbID int64) ([]*FavoriteFilm, error) {
	f, err := s.films.EnsureFromCatalog(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RemoveFavorite(ctx, userID, f.ID); err != nil {
		return nil, err
	}
	return s.repo.ListFavorites(ctx, userID)
}

// ListGroups returns the groups a user belongs to
func (s *Service) ListGroups(ctx context.Context, userID uuid.UUID) ([]*group.GroupSummary, error) {
	return s.groups.ListForUser(ctx, userID)
}

// UploadPhoto validates, resizes and stores an avatar, then updates the
// user's photo URL.
func (s *Service) UploadPhoto(ctx context.Context, userID uuid.UUID, file io.Reader) (string, error) {
	buf, _, err := storage.ValidateAndBuffer(file, "avatar")
	if err != nil {
		return "", err
	}

	processed, err := s.processor.Process(buf)
	if err != nil {
		return "", err
	}

	ext := storage.GetExtensionForMime(processed.ContentType)
	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New(), ext)

	if err := s.store.Put(ctx, key, bytes.NewReader(processed.Full), processed.ContentType); err != nil {
		return "", err
	}

	url := s.store.GetURL(key)
	if err := s.userRepo.UpdatePhotoURL(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}
