package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines user data access interface
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByPseudo(ctx context.Context, pseudo string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*User, error)
	ClearResetToken(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, password_hash, pseudo, role, photo_url, bio, genre_preferences,
       reset_token_hash, reset_token_exp, created_at, updated_at`

func (r *repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, pseudo, role, photo_url, bio, genre_preferences)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Pseudo, u.Role, u.PhotoURL, u.Bio, u.GenrePreferences,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case "users_pseudo_key":
				return ErrPseudoAlreadyTaken
			default:
				return ErrEmailAlreadyExists
			}
		}
		return fmt.Errorf("user repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var u User
	if err := r.db.GetContext(ctx, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("user repository get by id: %w", err)
	}
	return &u, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	var u User
	if err := r.db.GetContext(ctx, &u, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("user repository get by email: %w", err)
	}
	return &u, nil
}

func (r *repository) GetByPseudo(ctx context.Context, pseudo string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE pseudo = $1`
	var u User
	if err := r.db.GetContext(ctx, &u, query, pseudo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("user repository get by pseudo: %w", err)
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET pseudo = $2, photo_url = $3, bio = $4, genre_preferences = $5, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Pseudo, u.PhotoURL, u.Bio, u.GenrePreferences)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrPseudoAlreadyTaken
		}
		return fmt.Errorf("user repository update: %w", err)
	}
	return nil
}

func (r *repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, passwordHash)
	return err
}

func (r *repository) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	query := `UPDATE users SET photo_url = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, photoURL)
	return err
}

func (r *repository) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error {
	query := `UPDATE users SET reset_token_hash = $2, reset_token_exp = $3, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, tokenHash, expiresAt)
	return err
}

func (r *repository) GetByResetTokenHash(ctx context.Context, tokenHash string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token_hash = $1`
	var u User
	if err := r.db.GetContext(ctx, &u, query, tokenHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("user repository get by reset token: %w", err)
	}
	return &u, nil
}

func (r *repository) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET reset_token_hash = NULL, reset_token_exp = NULL, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
