package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prudhvinik1/boxfleet/internal/models"
	"github.com/redis/go-redis/v9"
)

const boxCachePrefix = "box:"

// ErrCacheMiss is returned by BoxCache.Get when the box is not cached.
var ErrCacheMiss = errors.New("cache miss")

type RedisBoxCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBoxCache(client *redis.Client, ttl time.Duration) *RedisBoxCache {
	return &RedisBoxCache{client: client, ttl: ttl}
}

func (c *RedisBoxCache) Get(ctx context.Context, id string) (*models.Box, error) {
	data, err := c.client.Get(ctx, boxKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached box: %w", err)
	}

	var box models.Box
	if err := json.Unmarshal(data, &box); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached box: %w", err)
	}
	return &box, nil
}

func (c *RedisBoxCache) Set(ctx context.Context, box *models.Box) error {
	data, err := json.Marshal(box)
	if err != nil {
		return fmt.Errorf("failed to marshal box: %w", err)
	}

	if err := c.client.Set(ctx, boxKey(box.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache box: %w", err)
	}
	return nil
}

func (c *RedisBoxCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, boxKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate box: %w", err)
	}
	return nil
}

func boxKey(id string) string {
	return boxCachePrefix + id
}
