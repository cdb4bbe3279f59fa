package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// RedisStore is a Redis-backed key-value store with expiration. Failures
// are swallowed: a broken cache degrades to misses, never to errors.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis store and verifies connectivity
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Set stores a key-value pair with expiration
func (rs *RedisStore) Set(ctx context.Context, key, value string, expiration time.Duration) {
	rs.client.Set(ctx, key, value, expiration)
}

// Get retrieves a value by key; any Redis error reports a miss
func (rs *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	val, err := rs.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Close closes the underlying connection
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
