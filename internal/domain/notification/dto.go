package notification

import (
	"time"

	"github.com/google/uuid"
)

// NotificationResponse for API responses
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   *string   `json:"message"`
	Link      *string   `json:"link"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts entity to response
func (n *Notification) ToResponse() *NotificationResponse {
	resp := &NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.Message.Valid {
		resp.Message = &n.Message.String
	}
	if n.Link.Valid {
		resp.Link = &n.Link.String
	}
	return resp
}
