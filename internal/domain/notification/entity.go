package notification

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Type represents notification type
type Type string

const (
	TypeGroupInvitation Type = "group_invitation"
)

// Notification represents a user notification
type Notification struct {
	ID        uuid.UUID      `db:"id"`
	UserID    uuid.UUID      `db:"user_id"`
	Type      Type           `db:"type"`
	Title     string         `db:"title"`
	Message   sql.NullString `db:"message"`
	Link      sql.NullString `db:"link"`
	IsRead    bool           `db:"is_read"`
	CreatedAt time.Time      `db:"created_at"`
}
