package throttle

import (
	"fmt"
	"time"
)

// Keyspace separates attempts tracked per user identity from attempts
// tracked per network origin. The two never share records.
type Keyspace string

const (
	KeyspaceIdentity Keyspace = "identity"
	KeyspaceOrigin   Keyspace = "origin"
)

func (k Keyspace) valid() bool {
	return k == KeyspaceIdentity || k == KeyspaceOrigin
}

// Config bounds the number of attempts per key within a window.
type Config struct {
	MaxTries int           // attempts allowed before the key is locked
	Window   time.Duration // lock duration, measured from the last attempt
}

func (c Config) validate() error {
	if c.MaxTries <= 0 {
		return fmt.Errorf("%w: max tries must be positive, got %d", ErrInvalidConfig, c.MaxTries)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}

// Record is the tracked state of one key.
type Record struct {
	Count int       // attempts since the last reset; MaxTries+1 once denied
	Last  time.Time // time of the latest attempt, allowed or not
}

// Stats is a point-in-time view of the tracked keys.
type Stats struct {
	Identities int
	Origins    int
	Slowdown   time.Duration // delay applied to each Check at the current size
}

// next applies one attempt at now to rec and reports whether it is allowed.
// A nil rec means the key is not tracked.
func next(rec *Record, now time.Time, cfg Config) (Record, bool) {
	switch {
	case rec == nil:
		return Record{Count: 1, Last: now}, true
	case rec.Count < cfg.MaxTries:
		return Record{Count: rec.Count + 1, Last: now}, true
	case now.Sub(rec.Last) >= cfg.Window:
		return Record{Count: 1, Last: now}, true
	default:
		// Denied attempts re-arm the window.
		return Record{Count: cfg.MaxTries + 1, Last: now}, false
	}
}

// expired reports whether rec has been idle for longer than window.
func expired(rec Record, now time.Time, window time.Duration) bool {
	return rec.Last.Add(window).Before(now)
}
