package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is a persisted group chat message. Append-only.
type Message struct {
	ID        uuid.UUID `db:"id"`
	GroupID   uuid.UUID `db:"group_id"`
	UserID    uuid.UUID `db:"user_id"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

// MessageWithAuthor carries the denormalized author projection used by
// history responses and broadcast events.
type MessageWithAuthor struct {
	Message
	AuthorPseudo   string  `db:"author_pseudo"`
	AuthorPhotoURL *string `db:"author_photo_url"`
}
