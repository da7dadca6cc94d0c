package throttle

import (
	"context"
	"time"
)

// Store defines the interface for throttle storage backends.
type Store interface {
	// Attempt applies one attempt for key in keyspace at now, then removes
	// every record in both keyspaces idle for longer than cfg.Window.
	// The whole operation is atomic with respect to other calls.
	Attempt(ctx context.Context, keyspace Keyspace, key string, now time.Time, cfg Config) (allowed bool, err error)

	// Clear removes each key from both keyspaces.
	Clear(ctx context.Context, keys ...string) error

	// Size returns the approximate number of records in keyspace. It must
	// not block on in-flight attempts.
	Size(keyspace Keyspace) int
}
