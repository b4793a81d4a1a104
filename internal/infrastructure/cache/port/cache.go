package port

import (
	"context"
	"time"
)

// Cache is the minimal key-value contract used by the application.
// Implementations must be safe for concurrent use. Values are strings to keep
// the port free of serialization concerns.
type Cache interface {
	// Get fetches the value for key; misses return ErrMiss.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key. Zero or negative TTL means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes keys and returns the number removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Ping verifies connectivity with the backend.
	Ping(ctx context.Context) error

	Close() error
}

// ErrMiss signals a cache miss in a typed way so callers can tell misses from
// transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (errMiss) Error() string { return "cache: miss" }
