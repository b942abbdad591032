package notificationstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	notificationstore "github.com/ohenegyan12/church-management/internal/app/store/notifications"
	"github.com/ohenegyan12/church-management/internal/domain/models"
)

func seeded(t *testing.T) *notificationstore.Store {
	t.Helper()
	set := collections.Open(memstore.New())
	ctx := context.Background()
	at := time.Now().Add(-time.Hour)
	set.Notifications.Insert(ctx, models.Notification{Meta: models.Meta{ID: 1, CreatedAt: at}, Title: "one"})
	set.Notifications.Insert(ctx, models.Notification{Meta: models.Meta{ID: 2, CreatedAt: at}, Title: "two"})
	set.Notifications.Insert(ctx, models.Notification{Meta: models.Meta{ID: 3, CreatedAt: at}, Title: "three", Read: true})
	return notificationstore.New(set.Notifications)
}

func TestUnreadAndMarkRead(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	n, _ := s.Unread(ctx)
	if n != 2 {
		t.Fatalf("Unread = %d, want 2", n)
	}
	if err := s.MarkRead(ctx, 1); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	n, _ = s.Unread(ctx)
	if n != 1 {
		t.Errorf("Unread = %d, want 1", n)
	}
	if err := s.MarkRead(ctx, 99); !errors.Is(err, memstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	changed, err := s.MarkAllRead(ctx)
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if changed != 2 {
		t.Errorf("changed = %d, want 2", changed)
	}
	n, _ := s.Unread(ctx)
	if n != 0 {
		t.Errorf("Unread = %d, want 0", n)
	}
}

func TestPush_ListsNewestFirst(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	if _, err := s.Push(ctx, "finance", "Payment recorded", "PAY-2024-006"); err != nil {
		t.Fatalf("Push: %v", err)
	}
	rows, _ := s.List(ctx)
	if len(rows) != 4 || rows[0].Title != "Payment recorded" || rows[1].Title != "one" {
		t.Errorf("unexpected order: %+v", rows)
	}
	n, _ := s.Unread(ctx)
	if n != 3 {
		t.Errorf("Unread = %d, want 3", n)
	}
}
