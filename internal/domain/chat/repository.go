package chat

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines group message data access
type Repository interface {
	Insert(ctx context.Context, msg *Message) error
	GetWithAuthor(ctx context.Context, id uuid.UUID) (*MessageWithAuthor, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*MessageWithAuthor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates chat repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const messageWithAuthorSelect = `
	SELECT m.id, m.group_id, m.user_id, m.message, m.created_at,
	       u.pseudo AS author_pseudo, u.photo_url AS author_photo_url
	FROM group_messages m
	JOIN users u ON u.id = m.user_id`

func (r *repository) Insert(ctx context.Context, msg *Message) error {
	query := `
		INSERT INTO group_messages (id, group_id, user_id, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		msg.ID, msg.GroupID, msg.UserID, msg.Message,
	).Scan(&msg.CreatedAt)
}

func (r *repository) GetWithAuthor(ctx context.Context, id uuid.UUID) (*MessageWithAuthor, error) {
	var m MessageWithAuthor
	err := r.db.GetContext(ctx, &m, messageWithAuthorSelect+` WHERE m.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*MessageWithAuthor, error) {
	messages := []*MessageWithAuthor{}
	err := r.db.SelectContext(ctx, &messages,
		messageWithAuthorSelect+` WHERE m.group_id = $1 ORDER BY m.created_at ASC`, groupID)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM group_messages WHERE id = $1`, id)
	return err
}
