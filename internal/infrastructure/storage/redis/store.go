// internal/infrastructure/storage/redis/store.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/pharmacy-storefront/internal/config"
	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage"
)

// NewConnection creates a new Redis client from config
func NewConnection(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

// Store keeps one serialized cart record per session in Redis. Records
// expire after the configured TTL; an expired cart simply hydrates
// empty on the next visit.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a Redis-backed cart store
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Load retrieves the serialized cart record for a session
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, cartKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart record: %w", err)
	}
	return data, nil
}

// Save writes the serialized cart record, refreshing its TTL
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, cartKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart record: %w", err)
	}
	return nil
}

// Delete removes the cart record for a session
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, cartKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart record: %w", err)
	}
	return nil
}

// Health checks the Redis connection
func (s *Store) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
