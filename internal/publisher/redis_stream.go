package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/courtside/internal/draft"
)

// RedisStreamPublisher publishes draft events to Redis streams
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a new Redis stream publisher from existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// NewRedisPublisher creates a new Redis stream publisher with its own connection
func NewRedisPublisher(redisURL string) (*RedisStreamPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStreamPublisher{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rsp *RedisStreamPublisher) Close() error {
	return rsp.client.Close()
}

func streamName(sessionID int) string {
	return fmt.Sprintf("draft.events.%d", sessionID)
}

// PublishDraftEvent publishes a draft room event to the session stream
func (rsp *RedisStreamPublisher) PublishDraftEvent(ctx context.Context, sessionID int, event draft.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName(sessionID),
		MaxLen: 1000,
		Approx: true,
		Values: map[string]interface{}{
			"type":      event.Type,
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}

// PublishProjectionsRefreshed announces that a new projection snapshot is live
func (rsp *RedisStreamPublisher) PublishProjectionsRefreshed(ctx context.Context, snapshotID int, playerCount int) error {
	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: "projections.refreshed",
		MaxLen: 100,
		Approx: true,
		Values: map[string]interface{}{
			"snapshot_id":  snapshotID,
			"player_count": playerCount,
			"timestamp":    time.Now().Unix(),
		},
	}).Err()
}
