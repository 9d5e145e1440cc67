package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Valuation snapshots are recomputed after every pick, so they stay fresh
// for at most a few minutes even without invalidation.
const valuationTTL = 5 * time.Minute

// RedisCache handles caching and fast state storage
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
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

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// Set stores a key-value pair with TTL
func (rc *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return rc.client.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a value by key
func (rc *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return rc.client.Get(ctx, key).Result()
}

// Delete removes a key
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}

func valuationKey(sessionID int) string {
	return fmt.Sprintf("draft:%d:valuations", sessionID)
}

func recommendationKey(sessionID int) string {
	return fmt.Sprintf("draft:%d:recommendations", sessionID)
}

// SetValuations caches the computed auction values for a session
func (rc *RedisCache) SetValuations(ctx context.Context, sessionID int, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return rc.client.Set(ctx, valuationKey(sessionID), data, valuationTTL).Err()
}

// GetValuations retrieves cached auction values into dest, returning
// redis.Nil when the cache is cold
func (rc *RedisCache) GetValuations(ctx context.Context, sessionID int, dest interface{}) error {
	data, err := rc.client.Get(ctx, valuationKey(sessionID)).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// InvalidateSession drops all cached draft state for a session. Called
// after every pick, edit, or removal so stale prices never surface.
func (rc *RedisCache) InvalidateSession(ctx context.Context, sessionID int) error {
	return rc.client.Del(ctx, valuationKey(sessionID), recommendationKey(sessionID)).Err()
}

// SetRecommendations caches ranked pick recommendations for a session
func (rc *RedisCache) SetRecommendations(ctx context.Context, sessionID int, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return rc.client.Set(ctx, recommendationKey(sessionID), data, valuationTTL).Err()
}

// GetRecommendations retrieves cached recommendations into dest
func (rc *RedisCache) GetRecommendations(ctx context.Context, sessionID int, dest interface{}) error {
	data, err := rc.client.Get(ctx, recommendationKey(sessionID)).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}
