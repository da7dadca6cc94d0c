package throttle

import (
	"context"
	"time"
)

// Slowdown returns the delay per Check pair for the given number of tracked
// identities. Legitimate traffic keeps the identity keyspace small, so only a
// guessing campaign pays the delay. Check sleeps for half of it, once for the
// identity keyspace and once for the origin keyspace.
func Slowdown(identities int) time.Duration {
	switch {
	case identities <= 100:
		return 0
	case identities <= 1000:
		return 256 * time.Millisecond
	case identities <= 3000:
		return 1024 * time.Millisecond
	case identities <= 6000:
		return 2048 * time.Millisecond
	case identities <= 8000:
		return 3072 * time.Millisecond
	default:
		return 4096 * time.Millisecond
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
