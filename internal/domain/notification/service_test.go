package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type notificationRepoStub struct {
	notifications map[uuid.UUID]*Notification
}

func newNotificationRepoStub() *notificationRepoStub {
	return &notificationRepoStub{notifications: map[uuid.UUID]*Notification{}}
}

func (r *notificationRepoStub) Create(_ context.Context, n *Notification) error {
	r.notifications[n.ID] = n
	return nil
}

func (r *notificationRepoStub) GetByID(_ context.Context, id uuid.UUID) (*Notification, error) {
	return r.notifications[id], nil
}

func (r *notificationRepoStub) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*Notification, error) {
	var out []*Notification
	for _, n := range r.notifications {
		if n.UserID == userID && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *notificationRepoStub) CountUnreadByUser(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepoStub) MarkAsRead(_ context.Context, id uuid.UUID) error {
	n, ok := r.notifications[id]
	if !ok {
		return errors.New("notification not found")
	}
	n.IsRead = true
	return nil
}

func TestMarkAsReadOwnerScoped(t *testing.T) {
	repo := newNotificationRepoStub()
	svc := NewService(repo)
	owner := uuid.New()

	svc.NotifyGroupInvitation(context.Background(), owner, uuid.New(), "Noir Nights", "cinephile")

	items, err := svc.List(context.Background(), owner)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(items))
	}

	err = svc.MarkAsRead(context.Background(), items[0].ID, uuid.New())
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound for stranger, got %v", err)
	}

	if err := svc.MarkAsRead(context.Background(), items[0].ID, owner); err != nil {
		t.Fatalf("owner mark failed: %v", err)
	}

	unread, err := svc.UnreadCount(context.Background(), owner)
	if err != nil {
		t.Fatalf("unread count failed: %v", err)
	}
	if unread != 0 {
		t.Fatalf("expected 0 unread, got %d", unread)
	}
}

func TestMarkAsReadUnknownNotification(t *testing.T) {
	svc := NewService(newNotificationRepoStub())

	err := svc.MarkAsRead(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
}

func TestNotifyGroupInvitationContent(t *testing.T) {
	repo := newNotificationRepoStub()
	svc := NewService(repo)
	invitee := uuid.New()
	groupID := uuid.New()

	svc.NotifyGroupInvitation(context.Background(), invitee, groupID, "Giallo Club", "argento_fan")

	items, _ := svc.List(context.Background(), invitee)
	if len(items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(items))
	}
	n := items[0]
	if n.Type != TypeGroupInvitation {
		t.Fatalf("expected invitation type, got %s", n.Type)
	}
	if n.Title != "argento_fan invited you to join Giallo Club" {
		t.Fatalf("unexpected title %q", n.Title)
	}
	if !n.Link.Valid || !strings.HasSuffix(n.Link.String, groupID.String()) {
		t.Fatalf("expected group link, got %+v", n.Link)
	}
}
