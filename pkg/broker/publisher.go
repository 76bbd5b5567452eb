package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"art-booking/internal/data/entity"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Publisher fans a stored notification out to live consumers. Delivery is
// best effort; the notifications document stays the source of truth.
type Publisher interface {
	Publish(ctx context.Context, n entity.Notification) error
	Close() error
}

// Metadata keys set on every notification message.
const (
	MetadataType          = "notification_type"
	MetadataRecipientType = "recipient_type"
)

// MessagePublisher publishes notifications as JSON messages on one topic of
// a watermill publisher.
type MessagePublisher struct {
	pub   message.Publisher
	topic string
	log   *zap.Logger
}

func NewMessagePublisher(pub message.Publisher, topic string, log *zap.Logger) *MessagePublisher {
	return &MessagePublisher{
		pub:   pub,
		topic: topic,
		log:   log.With(zap.String("publisher", topic)),
	}
}

func (p *MessagePublisher) Publish(ctx context.Context, n entity.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification %s: %w", n.NotificationID, err)
	}

	msg := message.NewMessage(n.NotificationID, payload)
	msg.Metadata.Set(MetadataType, string(n.Type))
	msg.Metadata.Set(MetadataRecipientType, string(n.RecipientType))
	msg.SetContext(ctx)

	if err := p.pub.Publish(p.topic, msg); err != nil {
		p.log.Warn("Failed to publish notification",
			zap.Error(err),
			zap.String("notification_id", n.NotificationID),
		)
		return fmt.Errorf("publish notification %s: %w", n.NotificationID, err)
	}
	return nil
}

func (p *MessagePublisher) Close() error {
	return p.pub.Close()
}

// LogPublisher only records the notification in the application log.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log.With(zap.String("publisher", "log"))}
}

func (p *LogPublisher) Publish(ctx context.Context, n entity.Notification) error {
	p.log.Info("Notification published",
		zap.String("notification_id", n.NotificationID),
		zap.String("type", string(n.Type)),
		zap.String("recipient_type", string(n.RecipientType)),
		zap.Strings("recipient_ids", n.RecipientIDs),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
