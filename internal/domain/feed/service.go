package feed

import (
	"context"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/film"
)

const (
	reviewFeedLimit = 50
	filmFeedLimit   = 5
)

// FilmRanker is what the feed needs from the film domain
type FilmRanker interface {
	TopRated(ctx context.Context, limit int) ([]*film.Film, error)
	RecentlyReleased(ctx context.Context, limit int) ([]*film.Film, error)
}

// Service assembles activity feeds
type Service struct {
	repo  Repository
	films FilmRanker
}

// NewService creates feed service
func NewService(repo Repository, films FilmRanker) *Service {
	return &Service{repo: repo, films: films}
}

// GlobalFeed is the landing page payload: community review activity plus
// film highlights.
type GlobalFeed struct {
	RecentReviews    []*ActivityReview
	TopRated         []*film.Film
	RecentlyReleased []*film.Film
}

// Global returns the site-wide feed
func (s *Service) Global(ctx context.Context) (*GlobalFeed, error) {
	reviews, err := s.repo.ListRecentCommented(ctx, reviewFeedLimit)
	if err != nil {
		return nil, err
	}

	top, err := s.films.TopRated(ctx, filmFeedLimit)
	if err != nil {
		return nil, err
	}

	recent, err := s.films.RecentlyReleased(ctx, filmFeedLimit)
	if err != nil {
		return nil, err
	}

	return &GlobalFeed{
		RecentReviews:    reviews,
		TopRated:         top,
		RecentlyReleased: recent,
	}, nil
}

// Personal returns recent reviews by the viewer's friends and followed users
func (s *Service) Personal(ctx context.Context, viewerID uuid.UUID) ([]*ActivityReview, error) {
	return s.repo.ListFriendActivity(ctx, viewerID, reviewFeedLimit)
}
