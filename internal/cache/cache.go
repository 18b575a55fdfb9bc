package cache

import (
	"context"
	"errors"
	"time"
)

// Cache is a read-through cache for serialized values. It sits entirely
// outside transaction boundaries: services consult it on reads and evict on
// writes, never inside a unit of work.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")
