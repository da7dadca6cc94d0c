// Package throttle limits online guessing of one-time codes.
//
// Attempts are counted independently in two keyspaces: per user identity,
// so a directory account is never hammered into lockout, and per network
// origin, so one client cannot spray many identities. Each key allows
// Config.MaxTries attempts; the next attempt inside Config.Window is denied
// and re-arms the window. Once the window has passed since the last attempt
// the count starts over.
//
// # Architecture
//
// Guard owns the policy and delegates state to a Store:
//
//   - MemoryStore keeps both keyspaces in two maps behind one mutex.
//     Records idle for longer than the window are swept on every attempt,
//     so memory stays bounded without a background goroutine.
//   - RedisStore keeps each keyspace in a Redis hash and runs every
//     transition plus sweep as one Lua script, letting several gateway
//     instances share state.
//
// When the identity keyspace grows (see Slowdown) every Check sleeps before
// taking the lock, which caps the guessing rate during a campaign while
// leaving normal traffic untouched.
//
// # Usage
//
//	guard, err := throttle.New(throttle.Config{MaxTries: 3, Window: 20 * time.Minute})
//	if err != nil {
//		return err
//	}
//
//	if !guard.Check(ctx, origin, throttle.KeyspaceOrigin) ||
//		!guard.Check(ctx, identity, throttle.KeyspaceIdentity) {
//		return ErrThrottled
//	}
//	// ...verify...
//	_ = guard.Clear(ctx, identity, origin)
//
// # Error Handling
//
// Check never returns an error. Store failures, an unknown keyspace and a
// cancelled context during the slowdown all deny the attempt and are
// logged. New fails with ErrInvalidConfig for non-positive limits.
package throttle
