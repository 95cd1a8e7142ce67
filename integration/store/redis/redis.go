package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cbcbeauty/storefront/core/store"
)

// Config contains the Redis connection settings.
type Config struct {
	ConnectionURL string        `env:"STOREFRONT_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts int           `env:"STOREFRONT_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"STOREFRONT_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	KeyPrefix     string        `env:"STOREFRONT_REDIS_KEY_PREFIX" envDefault:"storefront:"`
}

// Connect creates a Redis client and verifies connectivity with a ping,
// retrying on a fixed interval. The caller owns the returned client.
func Connect(ctx context.Context, cfg Config) (*goredis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts, err := goredis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToParseConnString, err)
	}

	client := goredis.NewClient(opts)

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				_ = client.Close()
				return nil, fmt.Errorf("%w: %w", ErrNotReady, ctx.Err())
			case <-time.After(cfg.RetryInterval):
			}
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("%w: %w", ErrNotReady, lastErr)
}

// Compile-time check that Store implements the store.Store interface.
var _ store.Store = (*Store)(nil)

// Store persists the storefront's client state in Redis.
type Store struct {
	client *goredis.Client
	prefix string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeyPrefix namespaces the store's keys. Default "storefront:".
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// NewStore creates a Redis-backed store over an established client.
func NewStore(client *goredis.Client, opts ...StoreOption) *Store {
	s := &Store{
		client: client,
		prefix: "storefront:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the value stored under key, or store.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, store.ErrEmptyKey
	}

	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, store.ErrKeyNotFound
		}
		return nil, fmt.Errorf("redis: get %q: %w", key, err)
	}
	return data, nil
}

// Set stores value under key without expiration; the client state lives
// until explicitly deleted, like its file-backed counterpart.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return store.ErrEmptyKey
	}

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrPersistFailed, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return store.ErrEmptyKey
	}

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis: delete %q: %w", key, err)
	}
	return nil
}
