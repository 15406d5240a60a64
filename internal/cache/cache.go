// Package cache holds the byte-oriented response caches shared by the
// feed decorators.
package cache

import (
	"context"
	"time"
)

// Store is a TTL key/value cache. Get reports false on a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear drops every entry the store owns.
	Clear(ctx context.Context) error
	Close() error
}
