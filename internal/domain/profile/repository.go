package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines profile-specific data access: aggregate stats and
// the favorite films showcase.
type Repository interface {
	GetStats(ctx context.Context, userID uuid.UUID) (*Stats, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*FavoriteFilm, error)
	CountFavorites(ctx context.Context, userID uuid.UUID) (int, error)
	AddFavorite(ctx context.Context, userID, filmID uuid.UUID, position int) error
	RemoveFavorite(ctx context.Context, userID, filmID uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates profile repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetStats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM reviews WHERE user_id = $1) AS review_count,
			(SELECT COUNT(*) FROM group_members WHERE user_id = $1) AS group_count,
			(SELECT COUNT(*) FROM follows WHERE followee_id = $1) AS follower_count,
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1) AS following_count`

	var s Stats
	if err := r.db.GetContext(ctx, &s, query, userID); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*FavoriteFilm, error) {
	query := `
		SELECT f.id AS film_id, f.tmdb_id, f.title, f.poster_url, uf.position
		FROM user_favorite_films uf
		JOIN films f ON f.id = uf.film_id
		WHERE uf.user_id = $1
		ORDER BY uf.position ASC`

	favorites := []*FavoriteFilm{}
	if err := r.db.SelectContext(ctx, &favorites, query, userID); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *repository) CountFavorites(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM user_favorite_films WHERE user_id = $1`, userID)
	return count, err
}

func (r *repository) AddFavorite(ctx context.Context, userID, filmID uuid.UUID, position int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_favorite_films (id, user_id, film_id, position)
		VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, filmID, position)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrAlreadyFavorite
		}
		return err
	}
	return nil
}

// RemoveFavorite deletes the entry and compacts the remaining positions
// so they stay contiguous from zero.
func (r *repository) RemoveFavorite(ctx context.Context, userID, filmID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM user_favorite_films WHERE user_id = $1 AND film_id = $2`,
		userID, filmID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE user_favorite_films uf
		SET position = ranked.new_position
		FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY position) - 1 AS new_position
			FROM user_favorite_films
			WHERE user_id = $1
		) ranked
		WHERE uf.id = ranked.id`, userID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("favorite remove commit: %w", err)
	}
	return nil
}
