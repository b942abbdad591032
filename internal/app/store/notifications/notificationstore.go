// internal/app/store/notifications/notificationstore.go
package notificationstore

import (
	"context"
	"sort"

	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/domain/models"
)

// Store wraps the notifications collection shown in the header bell.
type Store struct {
	c *memstore.Collection[models.Notification]
}

// New creates a notification store.
func New(c *memstore.Collection[models.Notification]) *Store {
	return &Store{c: c}
}

// List returns notifications newest first.
func (s *Store) List(ctx context.Context) ([]models.Notification, error) {
	rows, err := s.c.List(ctx)
	if err != nil {
		return nil, err
	}
	// Seeded rows share a creation time and are already newest first.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

// Unread returns the number of unread notifications.
func (s *Store) Unread(ctx context.Context) (int, error) {
	rows, err := s.c.Find(ctx, func(n models.Notification) bool { return !n.Read })
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// MarkRead marks one notification read.
func (s *Store) MarkRead(ctx context.Context, id int64) error {
	_, err := s.c.Update(ctx, id, func(n *models.Notification) error {
		n.Read = true
		return nil
	})
	return err
}

// MarkAllRead marks every notification read and returns how many changed.
func (s *Store) MarkAllRead(ctx context.Context) (int, error) {
	return s.c.UpdateAll(ctx, func(n *models.Notification) bool {
		if n.Read {
			return false
		}
		n.Read = true
		return true
	})
}

// Push records a new unread notification.
func (s *Store) Push(ctx context.Context, kind, title, message string) (models.Notification, error) {
	return s.c.Insert(ctx, models.Notification{
		Title:   title,
		Message: message,
		Type:    kind,
		Time:    "just now",
	})
}
