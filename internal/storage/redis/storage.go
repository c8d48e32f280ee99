// Package redis provides a Redis-backed storage.KeyValue so several
// servers can share one best score.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/t2048/internal/storage"
)

// setMaxScript raises KEYS[1] to ARGV[1] and returns the stored value.
// ARGV[2] is the TTL in milliseconds; 0 keeps the key forever.
var setMaxScript = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]))
local value = tonumber(ARGV[1])
if cur ~= nil and cur >= value then
	return cur
end
local ttl = tonumber(ARGV[2])
if ttl > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ttl)
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return value
`)

// Storage is a Redis-backed implementation of storage.KeyValue
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: cannot connect: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.KeyValue = (*Storage)(nil)

func (s *Storage) GetInt(ctx context.Context, key string) (int, bool, error) {
	v, err := s.client.Get(ctx, kvKey(key)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis: cannot read key %q: %w", key, err)
	}
	return v, true, nil
}

func (s *Storage) SetInt(ctx context.Context, key string, value int) error {
	if err := s.client.Set(ctx, kvKey(key), value, s.cfg.KeyTTL).Err(); err != nil {
		return fmt.Errorf("redis: cannot write key %q: %w", key, err)
	}
	return nil
}

func (s *Storage) SetMaxInt(ctx context.Context, key string, value int) (int, error) {
	v, err := setMaxScript.Run(ctx, s.client, []string{kvKey(key)}, value, s.cfg.KeyTTL.Milliseconds()).Int()
	if err != nil {
		return 0, fmt.Errorf("redis: cannot raise key %q: %w", key, err)
	}
	return v, nil
}
