package middlewares

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// redisCommands is the part of *redis.Client the limiter storage uses.
type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Close() error
}

// RedisStorage implements fiber.Storage so limiter counters are shared by
// every instance behind the load balancer. Keys are namespaced by prefix.
type RedisStorage struct {
	client  redisCommands
	prefix  string
	timeout time.Duration
}

// NewRedisStorage accepts a redis:// or rediss:// URL or a bare host:port.
// A non-empty password or a non-zero db overrides what the URL carries.
func NewRedisStorage(rawURL, password string, db int) (*RedisStorage, error) {
	opts, err := redisOptions(rawURL, password, db)
	if err != nil {
		return nil, err
	}
	return &RedisStorage{
		client:  redis.NewClient(opts),
		prefix:  "kntista:limiter:",
		timeout: time.Second,
	}, nil
}

func redisOptions(rawURL, password string, db int) (*redis.Options, error) {
	rawURL = strings.TrimSpace(rawURL)
	opts := &redis.Options{Addr: rawURL}
	if strings.Contains(rawURL, "://") {
		parsed, err := redis.ParseURL(rawURL)
		if err != nil {
			return nil, fmt.Errorf("REDIS_URL: %w", err)
		}
		opts = parsed
	}
	if password != "" {
		opts.Password = password
	}
	if db > 0 {
		opts.DB = db
	}
	return opts, nil
}

func (s *RedisStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get returns nil, nil for a missing key, as fiber.Storage requires.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, val, exp).Err()
}

func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Reset removes only keys under this storage's prefix.
func (s *RedisStorage) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
