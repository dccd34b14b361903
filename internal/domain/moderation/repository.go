package moderation

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines report data access
type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	ListByStatus(ctx context.Context, status ReportStatus) ([]*Report, error)
	Resolve(ctx context.Context, id, moderatorID uuid.UUID, status ReportStatus, action Action, notes string) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates moderation repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rep *Report) error {
	query := `
		INSERT INTO reported_content (id, content_type, content_id, reporter_id, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		rep.ID, rep.ContentType, rep.ContentID, rep.ReporterID, rep.Reason,
	).Scan(&rep.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrAlreadyReported
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	var rep Report
	err := r.db.GetContext(ctx, &rep, `SELECT * FROM reported_content WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rep, nil
}

func (r *repository) ListByStatus(ctx context.Context, status ReportStatus) ([]*Report, error) {
	reports := []*Report{}
	err := r.db.SelectContext(ctx, &reports,
		`SELECT * FROM reported_content WHERE status = $1 ORDER BY created_at ASC`, status)
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *repository) Resolve(ctx context.Context, id, moderatorID uuid.UUID, status ReportStatus, action Action, notes string) error {
	query := `
		UPDATE reported_content
		SET status = $2, moderator_id = $3, moderator_action = $4,
		    moderator_notes = NULLIF($5, ''), resolved_at = NOW()
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, status, moderatorID, action, notes)
	return err
}
