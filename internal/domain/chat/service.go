package chat

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/group"
)

// GroupGate answers group existence and membership questions
type GroupGate interface {
	GetByID(ctx context.Context, groupID uuid.UUID) (*group.Group, error)
	GetMember(ctx context.Context, groupID, userID uuid.UUID) (*group.GroupMember, error)
}

// Service handles chat business logic
type Service struct {
	repo   Repository
	groups GroupGate
	hub    *Hub
}

// NewService creates chat service
func NewService(repo Repository, groups GroupGate, hub *Hub) *Service {
	return &Service{repo: repo, groups: groups, hub: hub}
}

// CheckAccess verifies the user may read and post in the group's channel.
// Public groups are open to everyone; private groups require membership.
func (s *Service) CheckAccess(ctx context.Context, groupID, userID uuid.UUID) error {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}

	if !g.IsPublic {
		member, err := s.groups.GetMember(ctx, groupID, userID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrNotMember
		}
	}

	return nil
}

// PostMessage persists a message and broadcasts it to the group's channel
// with the author projection attached.
func (s *Service) PostMessage(ctx context.Context, groupID, userID uuid.UUID, text string) (*MessageWithAuthor, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	if err := s.CheckAccess(ctx, groupID, userID); err != nil {
		return nil, err
	}

	msg := &Message{
		ID:      uuid.New(),
		GroupID: groupID,
		UserID:  userID,
		Message: text,
	}
	if err := s.repo.Insert(ctx, msg); err != nil {
		return nil, err
	}

	full, err := s.repo.GetWithAuthor(ctx, msg.ID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		return nil, sql.ErrNoRows
	}

	s.hub.BroadcastToGroup(groupID, &WSEvent{
		Type:    EventNewMessage,
		GroupID: groupID,
		Message: full.ToResponse(),
	})

	return full, nil
}

// GetMessages returns the group's full message history, oldest first
func (s *Service) GetMessages(ctx context.Context, groupID, userID uuid.UUID) ([]*MessageWithAuthor, error) {
	if err := s.CheckAccess(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByGroup(ctx, groupID)
}

// GetMessage looks up a single message. Used by content moderation.
func (s *Service) GetMessage(ctx context.Context, id uuid.UUID) (*MessageWithAuthor, error) {
	return s.repo.GetWithAuthor(ctx, id)
}

// DeleteMessage removes a message. Used by content moderation.
func (s *Service) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
