package broker

import (
	"context"
	"fmt"

	"art-booking/pkg/utils"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisStreamPublisher owns the redis client next to the stream publisher
// so both are released on Close.
type redisStreamPublisher struct {
	*MessagePublisher
	client *redis.Client
}

// NewRedisStreamPublisher appends notifications to a Redis stream (XADD)
// through watermill's redisstream publisher.
func NewRedisStreamPublisher(client *redis.Client, stream string, log *zap.Logger) (Publisher, error) {
	pub, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: client,
	}, NewWatermillLogger(log))
	if err != nil {
		return nil, fmt.Errorf("create redis stream publisher: %w", err)
	}

	return &redisStreamPublisher{
		MessagePublisher: NewMessagePublisher(pub, stream, log),
		client:           client,
	}, nil
}

func (p *redisStreamPublisher) Close() error {
	if err := p.MessagePublisher.Close(); err != nil {
		return err
	}
	return p.client.Close()
}

// NewPublisher picks the Redis stream publisher when an address is configured
// and falls back to the log publisher otherwise.
func NewPublisher(ctx context.Context, cfg utils.RedisConfig, log *zap.Logger) (Publisher, error) {
	if cfg.Addr == "" {
		return NewLogPublisher(log), nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}

	log.Info("Redis notification stream enabled",
		zap.String("addr", cfg.Addr),
		zap.String("stream", cfg.Stream),
	)
	return NewRedisStreamPublisher(client, cfg.Stream, log)
}
