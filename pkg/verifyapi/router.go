package verifyapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/totpgate/pkg/authenticator"
	"github.com/dmitrymomot/totpgate/pkg/clientip"
	"github.com/dmitrymomot/totpgate/pkg/logger"
	"github.com/dmitrymomot/totpgate/pkg/requestid"
	"github.com/dmitrymomot/totpgate/pkg/throttle"
)

// Authenticator runs one login attempt. *authenticator.Service satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, req authenticator.Request) error
}

// StatsProvider reports throttle occupancy. *throttle.Guard satisfies it.
type StatsProvider interface {
	Stats() throttle.Stats
}

// Check is a named readiness probe, such as a Redis ping.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

type api struct {
	auth     Authenticator
	stats    StatsProvider
	checks   []Check
	resolver *clientip.Resolver
	logger   *slog.Logger
}

// Option configures the router.
type Option func(*api)

// WithLogger sets the logger for access and error logs.
func WithLogger(l *slog.Logger) Option {
	return func(a *api) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClientIP sets how the client address is resolved. The default trusts
// no forwarding headers.
func WithClientIP(res *clientip.Resolver) Option {
	return func(a *api) {
		if res != nil {
			a.resolver = res
		}
	}
}

// WithStats exposes throttle occupancy on the readiness endpoint.
func WithStats(s StatsProvider) Option {
	return func(a *api) { a.stats = s }
}

// WithReadinessCheck adds a probe run by GET /health/ready.
func WithReadinessCheck(name string, fn func(context.Context) error) Option {
	return func(a *api) {
		if fn != nil {
			a.checks = append(a.checks, Check{Name: name, Fn: fn})
		}
	}
}

// NewRouter returns the HTTP surface of the gateway:
//
//	POST /v1/verify
//	GET  /health/live
//	GET  /health/ready
func NewRouter(auth Authenticator, opts ...Option) chi.Router {
	a := &api{
		auth:     auth,
		resolver: clientip.NewResolver(),
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(a.resolver.Middleware)
	r.Use(a.accessLog)
	r.Use(middleware.Recoverer)

	r.Post("/v1/verify", a.verify)
	r.Route("/health", func(h chi.Router) {
		h.Get("/live", a.live)
		h.Get("/ready", a.ready)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

func (a *api) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		a.logger.InfoContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			logger.Origin(clientip.FromContext(r.Context())),
			logger.Duration(time.Since(start)),
		)
	})
}
