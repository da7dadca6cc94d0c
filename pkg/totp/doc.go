// Package totp implements RFC 6238 time-based one-time codes as used by the
// gateway: HMAC-SHA1, 6 digits, 30-second steps and a tolerance of one step
// on either side of the current one.
//
// The package is stateless. Callers supply the clock, which keeps
// verification deterministic under test.
//
// # Usage
//
//	if totp.Verify(base32Secret, submitted, time.Now()) {
//		// accepted
//	}
//
// Enrollment helpers produce a fresh secret and the otpauth URI that
// authenticator apps import, usually through a QR code:
//
//	secret, _ := totp.GenerateSecret()
//	uri, _ := totp.URI(totp.Params{Secret: secret, AccountName: "testuser", Issuer: "Acme"})
//
// # Error Handling
//
// Verify never fails: malformed secrets and codes are simply rejected.
// DecodeSecret, GenerateCode and URI return sentinels such as
// ErrInvalidSecret and ErrMissingIssuer, possibly wrapped with errors.Join.
//
// # See Also
//
//   - RFC 4226, HMAC-Based One-Time Password (HOTP) Algorithm
//   - RFC 6238, Time-Based One-Time Password (TOTP) Algorithm
package totp
