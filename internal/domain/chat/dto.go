package chat

import (
	"time"

	"github.com/google/uuid"
)

// SendMessageRequest for posting a group message
type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// MessageResponse is a message with its author projection
type MessageResponse struct {
	ID             uuid.UUID `json:"id"`
	GroupID        uuid.UUID `json:"group_id"`
	UserID         uuid.UUID `json:"user_id"`
	Message        string    `json:"message"`
	AuthorPseudo   string    `json:"author_pseudo"`
	AuthorPhotoURL *string   `json:"author_photo_url"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToResponse converts entity to response
func (m *MessageWithAuthor) ToResponse() *MessageResponse {
	return &MessageResponse{
		ID:             m.ID,
		GroupID:        m.GroupID,
		UserID:         m.UserID,
		Message:        m.Message.Message,
		AuthorPseudo:   m.AuthorPseudo,
		AuthorPhotoURL: m.AuthorPhotoURL,
		CreatedAt:      m.CreatedAt,
	}
}
