package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"art-booking/internal/data/entity"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMessagePublisher_Publish(t *testing.T) {
	log := zap.NewNop()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, NewWatermillLogger(log))
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "notifications")
	require.NoError(t, err)

	pub := NewMessagePublisher(pubSub, "notifications", log)

	n := entity.Notification{
		NotificationID: "n-1",
		Type:           entity.NotificationTypeSystemAlert,
		Status:         entity.NotificationStatusUnread,
		Content:        "Trip RED_0800_S1 has been cancelled",
		RecipientType:  entity.RecipientAdmin,
	}
	require.NoError(t, pub.Publish(ctx, n))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, "n-1", msg.UUID)
		assert.Equal(t, string(entity.NotificationTypeSystemAlert), msg.Metadata.Get(MetadataType))
		assert.Equal(t, string(entity.RecipientAdmin), msg.Metadata.Get(MetadataRecipientType))

		var got entity.Notification
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, n.Content, got.Content)
	case <-ctx.Done():
		t.Fatal("notification was not delivered")
	}
}

func TestLogPublisher_NeverFails(t *testing.T) {
	pub := NewLogPublisher(zap.NewNop())
	assert.NoError(t, pub.Publish(context.Background(), entity.Notification{NotificationID: "x"}))
	assert.NoError(t, pub.Close())
}
