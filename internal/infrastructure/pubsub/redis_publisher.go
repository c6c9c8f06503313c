package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"shopify-template-sync/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisPublisher publishes sync events as JSON on a Redis channel
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
	logger  zerolog.Logger
}

// NewRedisPublisher creates a publisher for channel
func NewRedisPublisher(client redis.UniversalClient, channel string, logger zerolog.Logger) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// NewRedisClient connects to the Redis server at url and pings it
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, event *domain.SyncEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.channel, err)
	}
	p.logger.Debug().
		Str("channel", p.channel).
		Str("type", string(event.Type)).
		Int64("receivers", receivers).
		Msg("Sync event published to redis")
	return nil
}
