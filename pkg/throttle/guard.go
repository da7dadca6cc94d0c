package throttle

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/totpgate/pkg/logger"
)

// Guard rate-limits verification attempts per identity and per origin.
type Guard struct {
	cfg    Config
	store  Store
	now    func() time.Time
	sleep  func(context.Context, time.Duration) error
	logger *slog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithStore replaces the default MemoryStore.
func WithStore(s Store) Option {
	return func(g *Guard) {
		if s != nil {
			g.store = s
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

// WithSleep replaces the function used to apply the slowdown delay.
// A returned error denies the attempt.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(g *Guard) {
		if sleep != nil {
			g.sleep = sleep
		}
	}
}

// WithLogger sets the logger for denied attempts and store failures.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a Guard. Without WithStore the state lives in a MemoryStore.
func New(cfg Config, opts ...Option) (*Guard, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	g := &Guard{
		cfg:    cfg,
		now:    time.Now,
		sleep:  sleepContext,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.store == nil {
		g.store = NewMemoryStore()
	}
	g.logger = g.logger.With(logger.Component("throttle"))

	return g, nil
}

// Check records an attempt for key in keyspace and reports whether it may
// proceed. Before touching any state it sleeps for half the current
// Slowdown. Store failures deny the attempt.
func (g *Guard) Check(ctx context.Context, key string, keyspace Keyspace) bool {
	if !keyspace.valid() {
		g.logger.ErrorContext(ctx, "throttle check rejected", logger.Keyspace(string(keyspace)), logger.Error(ErrUnknownKeyspace))
		return false
	}

	if d := Slowdown(g.store.Size(KeyspaceIdentity)) / 2; d > 0 {
		if err := g.sleep(ctx, d); err != nil {
			g.logger.WarnContext(ctx, "throttle slowdown interrupted", keyAttr(keyspace, key), logger.Error(err))
			return false
		}
	}

	allowed, err := g.store.Attempt(ctx, keyspace, key, g.now(), g.cfg)
	if err != nil {
		g.logger.ErrorContext(ctx, "throttle store failed", logger.Keyspace(string(keyspace)), keyAttr(keyspace, key), logger.Error(err))
		return false
	}
	if !allowed {
		g.logger.WarnContext(ctx, "attempt throttled", logger.Keyspace(string(keyspace)), keyAttr(keyspace, key))
	}
	return allowed
}

// Clear forgets every key in both keyspaces, typically the identity and
// origin of a successful login.
func (g *Guard) Clear(ctx context.Context, keys ...string) error {
	if err := g.store.Clear(ctx, keys...); err != nil {
		g.logger.ErrorContext(ctx, "throttle clear failed", logger.Error(err))
		return err
	}
	return nil
}

// Stats reports the tracked sizes and the resulting slowdown.
func (g *Guard) Stats() Stats {
	identities := g.store.Size(KeyspaceIdentity)
	return Stats{
		Identities: identities,
		Origins:    g.store.Size(KeyspaceOrigin),
		Slowdown:   Slowdown(identities),
	}
}

func keyAttr(keyspace Keyspace, key string) slog.Attr {
	if keyspace == KeyspaceOrigin {
		return logger.Origin(key)
	}
	return logger.Identity(key)
}
