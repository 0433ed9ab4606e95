package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Karthikk7293/social-media-handler/domain/repository"
)

type DashboardCache struct {
	client *redis.Client
	prefix string
}

// NewDashboardCache wraps a redis client. Keys are namespaced with prefix when set.
func NewDashboardCache(client *redis.Client, prefix string) repository.IDashboardCache {
	return &DashboardCache{client: client, prefix: prefix}
}

func (c *DashboardCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

func (c *DashboardCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	return raw, nil
}

func (c *DashboardCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", key, err)
	}
	return nil
}
