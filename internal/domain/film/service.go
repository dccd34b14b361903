package film

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Service handles film business logic
type Service struct {
	repo Repository
}

// NewService creates film service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListCatalog returns the public catalog with community ratings merged in
func (s *Service) ListCatalog(ctx context.Context) ([]FilmResponse, error) {
	out := make([]FilmResponse, 0, len(catalog))
	for _, e := range catalog {
		persisted, err := s.repo.GetByTMDBID(ctx, e.TMDBID)
		if err != nil {
			return nil, err
		}
		out = append(out, merge(e, persisted))
	}
	return out, nil
}

// GetByTMDBID returns a single film, catalog-first
func (s *Service) GetByTMDBID(ctx context.Context, tmdbID int64) (*FilmResponse, error) {
	persisted, err := s.repo.GetByTMDBID(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	if e, ok := CatalogEntryByTMDBID(tmdbID); ok {
		resp := merge(e, persisted)
		return &resp, nil
	}

	if persisted == nil {
		return nil, ErrFilmNotFound
	}
	resp := FromEntity(persisted)
	return &resp, nil
}

// Search combines catalog matches with locally persisted films that are
// not in the catalog (deduplicated by tmdb_id).
func (s *Service) Search(ctx context.Context, query string, limit int) ([]FilmResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	seen := make(map[int64]bool)
	var out []FilmResponse

	for _, e := range SearchCatalog(query) {
		persisted, err := s.repo.GetByTMDBID(ctx, e.TMDBID)
		if err != nil {
			return nil, err
		}
		out = append(out, merge(e, persisted))
		seen[e.TMDBID] = true
		if len(out) >= limit {
			return out, nil
		}
	}

	stored, err := s.repo.SearchByTitle(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	for _, f := range stored {
		if seen[f.TMDBID] {
			continue
		}
		out = append(out, FromEntity(f))
		if len(out) >= limit {
			break
		}
	}

	return out, nil
}

// EnsureFromCatalog persists a catalog entry into the films table and
// returns the row. Idempotent: an existing row is returned untouched.
func (s *Service) EnsureFromCatalog(ctx context.Context, tmdbID int64) (*Film, error) {
	e, ok := CatalogEntryByTMDBID(tmdbID)
	if !ok {
		// Allow films already persisted from earlier catalog versions
		existing, err := s.repo.GetByTMDBID(ctx, tmdbID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrFilmNotFound
		}
		return existing, nil
	}

	f := &Film{
		ID:       uuid.New(),
		TMDBID:   e.TMDBID,
		Title:    e.Title,
		Synopsis: sql.NullString{String: e.Synopsis, Valid: e.Synopsis != ""},
		Runtime:  sql.NullInt32{Int32: int32(e.Runtime), Valid: e.Runtime > 0},
		PosterURL: sql.NullString{
			String: e.PosterURL, Valid: e.PosterURL != "",
		},
		Genres:   e.Genres,
		Director: sql.NullString{String: e.Director, Valid: e.Director != ""},
		Cast:     e.Cast,
	}
	if t, ok := parseReleaseDate(e.ReleaseDate); ok {
		f.ReleaseDate = sql.NullTime{Time: t, Valid: true}
	}

	return s.repo.Upsert(ctx, f)
}

// GetByID returns a persisted film by row id
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Film, error) {
	return s.repo.GetByID(ctx, id)
}

// TopRated returns the highest community-rated persisted films
func (s *Service) TopRated(ctx context.Context, limit int) ([]*Film, error) {
	return s.repo.TopRated(ctx, limit)
}

// RecentlyReleased returns persisted films by most recent release date
func (s *Service) RecentlyReleased(ctx context.Context, limit int) ([]*Film, error) {
	return s.repo.RecentlyReleased(ctx, limit)
}
