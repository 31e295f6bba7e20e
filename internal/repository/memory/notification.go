package memory

import (
	"context"
	"fmt"

	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/repository"
	"github.com/leadtrackhq/leadtrack-api/pkg/event"
)

const entityNotification = "notification"

type NotificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

func (r *NotificationRepository) Create(_ context.Context, n *model.Notification) error {
	r.store.mu.Lock()
	r.store.notifications = append([]*model.Notification{copyNotification(n)}, r.store.notifications...)
	ch := r.store.commit(entityNotification, event.OpCreate, n.ID, copyNotification(n))
	r.store.mu.Unlock()

	r.store.notify(ch)
	return nil
}

func (r *NotificationRepository) List(_ context.Context) ([]*model.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*model.Notification, 0, len(r.store.notifications))
	for _, n := range r.store.notifications {
		out = append(out, copyNotification(n))
	}
	return out, nil
}

// MarkAsRead flips the read flag on a stored notification. Derived
// notification IDs never appear in the store, so they fall through to
// not-found and nothing changes.
func (r *NotificationRepository) MarkAsRead(_ context.Context, id string) error {
	r.store.mu.Lock()
	for _, n := range r.store.notifications {
		if n.ID == id {
			n.Read = true
			ch := r.store.commit(entityNotification, event.OpUpdate, id, copyNotification(n))
			r.store.mu.Unlock()
			r.store.notify(ch)
			return nil
		}
	}
	r.store.mu.Unlock()
	return fmt.Errorf("notification %s: %w", id, repository.ErrNotFound)
}

func (r *NotificationRepository) Clear(_ context.Context) error {
	r.store.mu.Lock()
	r.store.notifications = nil
	ch := r.store.commit(entityNotification, event.OpDelete, "", nil)
	r.store.mu.Unlock()

	r.store.notify(ch)
	return nil
}
