package cache

import (
	"context"
	"time"
)

// Store represents a shared cache interface used across the gateway. It backs
// the per-session notification cache and the login rate limiter.
type Store interface {
	IncrementWithTTL(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// Sweeper is implemented by stores that hold expired entries until an
// explicit sweep (memory and database backends; Redis expires on its own).
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int64, error)
}
