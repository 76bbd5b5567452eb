package usecase

import (
	"context"
	"fmt"
	"time"

	"art-booking/internal/data/entity"
	"art-booking/internal/data/repository"
	"art-booking/pkg/broker"
	"art-booking/pkg/utils"

	"go.uber.org/zap"
)

type NotificationService interface {
	// Notify appends a notification and hands it to the publisher. Publish
	// failures are logged only.
	Notify(ctx context.Context, content string, kind entity.NotificationType, recipient entity.RecipientType, recipientIDs ...string) (*entity.Notification, error)
	ForUser(ctx context.Context, userID string) ([]entity.Notification, error)
	ForAdmin(ctx context.Context, adminID string) ([]entity.Notification, error)
	UnreadCount(ctx context.Context, recipient entity.RecipientType, id string) (int, error)
	MarkAllRead(ctx context.Context, recipient entity.RecipientType, id string) (int, error)
}

type notificationService struct {
	repo      repository.NotificationRepository
	publisher broker.Publisher
	now       func() time.Time
	log       *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, publisher broker.Publisher, now func() time.Time, log *zap.Logger) NotificationService {
	return &notificationService{
		repo:      repo,
		publisher: publisher,
		now:       now,
		log:       log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) Notify(ctx context.Context, content string, kind entity.NotificationType, recipient entity.RecipientType, recipientIDs ...string) (*entity.Notification, error) {
	if content == "" {
		return nil, fmt.Errorf("notification content is empty: %w", ErrValidation)
	}
	if recipient == entity.RecipientUser && len(recipientIDs) == 0 {
		return nil, fmt.Errorf("user notification needs at least one recipient: %w", ErrValidation)
	}

	now := entity.NewDateTime(s.now())
	n := &entity.Notification{
		NotificationID: utils.GenerateID(),
		Type:           kind,
		Status:         entity.NotificationStatusUnread,
		Content:        content,
		CreatedTime:    now,
		PublishedTime:  now,
		RecipientType:  recipient,
		RecipientIDs:   recipientIDs,
	}

	if err := s.repo.Append(ctx, n); err != nil {
		return nil, storageError("create notification", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, *n); err != nil {
			s.log.Warn("Notification stored but not published",
				zap.Error(err),
				zap.String("notification_id", n.NotificationID),
			)
		}
	}

	s.log.Debug("Notification created",
		zap.String("notification_id", n.NotificationID),
		zap.String("type", string(kind)),
		zap.String("recipient_type", string(recipient)),
		zap.Int("recipients", len(recipientIDs)),
	)
	return n, nil
}

func (s *notificationService) ForUser(ctx context.Context, userID string) ([]entity.Notification, error) {
	list, err := s.repo.FindFor(ctx, entity.RecipientUser, userID)
	if err != nil {
		return nil, storageError("list user notifications", err)
	}
	return list, nil
}

func (s *notificationService) ForAdmin(ctx context.Context, adminID string) ([]entity.Notification, error) {
	list, err := s.repo.FindFor(ctx, entity.RecipientAdmin, adminID)
	if err != nil {
		return nil, storageError("list admin notifications", err)
	}
	return list, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, recipient entity.RecipientType, id string) (int, error) {
	list, err := s.repo.FindFor(ctx, recipient, id)
	if err != nil {
		return 0, storageError("count unread notifications", err)
	}
	unread := 0
	for _, n := range list {
		if n.Status == entity.NotificationStatusUnread {
			unread++
		}
	}
	return unread, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipient entity.RecipientType, id string) (int, error) {
	changed, err := s.repo.MarkRead(ctx, recipient, id)
	if err != nil {
		return 0, storageError("mark notifications read", err)
	}
	return changed, nil
}
