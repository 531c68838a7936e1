package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON values in redis. A nil *Cache is a valid, always-empty cache.
type Cache struct {
	redisClient *redis.Client
	prefix      string
}

type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// New connects to redis and verifies the connection with a ping
func New(ctx context.Context, opts Options) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
		ReadTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "awaaz-admin:"
	}
	return &Cache{redisClient: client, prefix: prefix}, nil
}

// SetJSON caches v as JSON under key
func (c *Cache) SetJSON(ctx context.Context, key string, v any, expiration time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.redisClient.Set(ctx, c.prefix+key, data, expiration).Err()
}

// GetJSON loads key into dst. ok is false on a cache miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil {
		return false, nil
	}
	data, err := c.redisClient.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	return c.redisClient.Del(ctx, c.prefix+key).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.redisClient.Close()
}
