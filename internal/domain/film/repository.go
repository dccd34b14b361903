package film

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines film data access interface
type Repository interface {
	Upsert(ctx context.Context, f *Film) (*Film, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Film, error)
	GetByTMDBID(ctx context.Context, tmdbID int64) (*Film, error)
	SearchByTitle(ctx context.Context, query string, limit int) ([]*Film, error)
	TopRated(ctx context.Context, limit int) ([]*Film, error)
	RecentlyReleased(ctx context.Context, limit int) ([]*Film, error)
	UpdateRating(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new film repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const filmColumns = `id, tmdb_id, title, original_title, synopsis, release_date, runtime,
       poster_url, avg_rating, vote_count, genres, director, cast_list, created_at, updated_at`

// Upsert inserts the film or returns the existing row for its tmdb_id.
// Safe under concurrent first-review races.
func (r *repository) Upsert(ctx context.Context, f *Film) (*Film, error) {
	query := `
		INSERT INTO films (id, tmdb_id, title, original_title, synopsis, release_date, runtime,
		                   poster_url, genres, director, cast_list)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (tmdb_id) DO UPDATE SET updated_at = NOW()
		RETURNING ` + filmColumns
	var out Film
	err := r.db.GetContext(ctx, &out, query,
		f.ID, f.TMDBID, f.Title, f.OriginalTitle, f.Synopsis, f.ReleaseDate, f.Runtime,
		f.PosterURL, f.Genres, f.Director, f.Cast,
	)
	if err != nil {
		return nil, fmt.Errorf("film repository upsert: %w", err)
	}
	return &out, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Film, error) {
	query := `SELECT ` + filmColumns + ` FROM films WHERE id = $1`
	var f Film
	if err := r.db.GetContext(ctx, &f, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("film repository get by id: %w", err)
	}
	return &f, nil
}

func (r *repository) GetByTMDBID(ctx context.Context, tmdbID int64) (*Film, error) {
	query := `SELECT ` + filmColumns + ` FROM films WHERE tmdb_id = $1`
	var f Film
	if err := r.db.GetContext(ctx, &f, query, tmdbID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("film repository get by tmdb id: %w", err)
	}
	return &f, nil
}

func (r *repository) SearchByTitle(ctx context.Context, query string, limit int) ([]*Film, error) {
	q := `SELECT ` + filmColumns + ` FROM films WHERE title ILIKE '%' || $1 || '%' ORDER BY vote_count DESC LIMIT $2`
	var films []*Film
	if err := r.db.SelectContext(ctx, &films, q, query, limit); err != nil {
		return nil, fmt.Errorf("film repository search: %w", err)
	}
	return films, nil
}

func (r *repository) TopRated(ctx context.Context, limit int) ([]*Film, error) {
	query := `SELECT ` + filmColumns + ` FROM films WHERE vote_count > 0 ORDER BY avg_rating DESC, vote_count DESC LIMIT $1`
	var films []*Film
	if err := r.db.SelectContext(ctx, &films, query, limit); err != nil {
		return nil, fmt.Errorf("film repository top rated: %w", err)
	}
	return films, nil
}

func (r *repository) RecentlyReleased(ctx context.Context, limit int) ([]*Film, error) {
	query := `SELECT ` + filmColumns + ` FROM films WHERE release_date IS NOT NULL ORDER BY release_date DESC LIMIT $1`
	var films []*Film
	if err := r.db.SelectContext(ctx, &films, query, limit); err != nil {
		return nil, fmt.Errorf("film repository recently released: %w", err)
	}
	return films, nil
}

// UpdateRating recomputes avg_rating and vote_count from reviews.
// Runs inside the caller's transaction so the review write and the
// aggregate stay consistent.
func (r *repository) UpdateRating(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	query := `
		UPDATE films SET
			avg_rating = COALESCE((SELECT AVG(rating)::numeric(3,2) FROM reviews WHERE film_id = $1), 0),
			vote_count = (SELECT COUNT(*) FROM reviews WHERE film_id = $1),
			updated_at = NOW()
		WHERE id = $1
	`
	_, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("film repository update rating: %w", err)
	}
	return nil
}
