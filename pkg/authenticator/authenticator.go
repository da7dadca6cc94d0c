package authenticator

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/totpgate/pkg/attribute"
	"github.com/dmitrymomot/totpgate/pkg/logger"
	"github.com/dmitrymomot/totpgate/pkg/throttle"
	"github.com/dmitrymomot/totpgate/pkg/totp"
)

// Decrypter recovers the plaintext shared secret of an identity.
// *secretcodec.Codec satisfies it.
type Decrypter interface {
	Decrypt(identity, ciphertext, salt, iv string) (string, error)
}

// Limiter gates attempts per key and keyspace. *throttle.Guard satisfies it.
type Limiter interface {
	Check(ctx context.Context, key string, keyspace throttle.Keyspace) bool
	Clear(ctx context.Context, keys ...string) error
}

// Request is a single login attempt.
type Request struct {
	Identity  string // directory user name
	Code      string // submitted one-time code
	Origin    string // client network address, empty when unknown
	Attribute string // raw directory attribute text holding the secret records
}

// Service runs the login flow.
type Service struct {
	codec  Decrypter
	guard  Limiter
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for code verification.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New composes a Service from its collaborators.
func New(codec Decrypter, guard Limiter, opts ...Option) (*Service, error) {
	if codec == nil || guard == nil {
		return nil, ErrMissingDependency
	}
	s := &Service{
		codec:  codec,
		guard:  guard,
		now:    time.Now,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Authenticate verifies req.Code against the newest secret record in
// req.Attribute. It returns nil on success, ErrThrottled when either the
// origin or the identity is rate limited, and ErrVerificationFailed for
// every other rejection.
//
// Codes that are not exactly totp.Digits long are rejected before the
// throttle is consulted. Any other failure has already consumed an attempt.
// On success both the identity and the origin are cleared.
func (s *Service) Authenticate(ctx context.Context, req Request) error {
	identity := strings.TrimSpace(req.Identity)
	if identity == "" {
		return ErrMissingIdentity
	}
	log := s.logger.With(logger.Identity(identity), logger.Origin(req.Origin))

	if len(req.Code) != totp.Digits {
		log.InfoContext(ctx, "verification failed", logger.Event("malformed_code"))
		return ErrVerificationFailed
	}

	if req.Origin != "" && !s.guard.Check(ctx, req.Origin, throttle.KeyspaceOrigin) {
		return ErrThrottled
	}
	if !s.guard.Check(ctx, identity, throttle.KeyspaceIdentity) {
		return ErrThrottled
	}

	snap := attribute.Parse(req.Attribute)
	record, ok := snap.Current()
	if !ok {
		log.InfoContext(ctx, "verification failed", logger.Event("no_secret_record"))
		return ErrVerificationFailed
	}
	if !snap.Aligned() {
		log.WarnContext(ctx, "latest secret, salt and iv serials differ", logger.Serial(record.Serial))
	}

	secret, err := s.codec.Decrypt(identity, record.Secret, record.Salt, record.IV)
	if err != nil || !totp.Verify(secret, req.Code, s.now()) {
		// Decryption and code mismatches share one message.
		log.InfoContext(ctx, "verification failed", logger.Serial(record.Serial))
		return ErrVerificationFailed
	}

	keys := []string{identity}
	if req.Origin != "" {
		keys = append(keys, req.Origin)
	}
	if err := s.guard.Clear(ctx, keys...); err != nil {
		log.WarnContext(ctx, "failed to clear throttle after login", logger.Error(err))
	}

	log.InfoContext(ctx, "verification succeeded", logger.Serial(record.Serial))
	return nil
}
