package repository

import (
	"context"
	"time"
)

// IDashboardCache stores derived dashboard views. A miss returns (nil, nil).
type IDashboardCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
