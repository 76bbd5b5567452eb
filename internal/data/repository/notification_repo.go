package repository

import (
	"context"
	"fmt"
	"sync"

	"art-booking/internal/data/entity"
	"art-booking/pkg/database"

	"go.uber.org/zap"
)

type NotificationRepository interface {
	Append(ctx context.Context, n *entity.Notification) error
	FindFor(ctx context.Context, kind entity.RecipientType, recipientID string) ([]entity.Notification, error)
	// MarkRead flips every unread notification addressed to the recipient
	// and returns how many changed.
	MarkRead(ctx context.Context, kind entity.RecipientType, recipientID string) (int, error)
}

type notificationRepository struct {
	store database.DocumentStore
	mu    sync.Mutex
	log   *zap.Logger
}

func NewNotificationRepository(store database.DocumentStore, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		store: store,
		log:   log.With(zap.String("repository", "notifications")),
	}
}

func (r *notificationRepository) load(ctx context.Context) ([]entity.Notification, error) {
	var list []entity.Notification
	if _, err := r.store.Load(ctx, database.DocNotifications, &list); err != nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}
	return list, nil
}

func (r *notificationRepository) Append(ctx context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	list = append(list, *n)

	if err := r.store.Save(ctx, database.DocNotifications, list); err != nil {
		r.log.Error("Failed to append notification",
			zap.Error(err),
			zap.String("notification_id", n.NotificationID),
		)
		return fmt.Errorf("append notification %s: %w", n.NotificationID, err)
	}
	return nil
}

func (r *notificationRepository) FindFor(ctx context.Context, kind entity.RecipientType, recipientID string) ([]entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]entity.Notification, 0)
	for _, n := range list {
		if n.AddressedTo(kind, recipientID) {
			result = append(result, n)
		}
	}
	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, kind entity.RecipientType, recipientID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range list {
		if list[i].Status == entity.NotificationStatusUnread && list[i].AddressedTo(kind, recipientID) {
			list[i].Status = entity.NotificationStatusRead
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}

	if err := r.store.Save(ctx, database.DocNotifications, list); err != nil {
		r.log.Error("Failed to mark notifications read",
			zap.Error(err),
			zap.String("recipient_id", recipientID),
		)
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return changed, nil
}
