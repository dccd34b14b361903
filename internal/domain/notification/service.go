package notification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const listLimit = 50

// Service handles notification business logic
type Service struct {
	repo Repository
}

// NewService creates notification service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the user's most recent notifications, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Notification, error) {
	return s.repo.ListByUser(ctx, userID, listLimit)
}

// UnreadCount returns the number of unread notifications
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnreadByUser(ctx, userID)
}

// MarkAsRead marks one notification as read. Scoped to the owner.
func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	n, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n == nil || n.UserID != userID {
		return ErrNotificationNotFound
	}
	return s.repo.MarkAsRead(ctx, notificationID)
}

// NotifyGroupInvitation records an invitation notification for the invitee.
// Best effort: failures are logged, never surfaced to the inviter.
func (s *Service) NotifyGroupInvitation(ctx context.Context, inviteeID uuid.UUID, groupID uuid.UUID, groupTitle, inviterPseudo string) {
	n := &Notification{
		ID:     uuid.New(),
		UserID: inviteeID,
		Type:   TypeGroupInvitation,
		Title:  fmt.Sprintf("%s invited you to join %s", inviterPseudo, groupTitle),
		Link:   sql.NullString{String: fmt.Sprintf("/groups/%s", groupID), Valid: true},
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Error().Err(err).
			Str("invitee_id", inviteeID.String()).
			Str("group_id", groupID.String()).
			Msg("Failed to create invitation notification")
	}
}
