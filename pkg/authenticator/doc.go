// Package authenticator composes the secret codec, the attribute parser, the
// one-time code verifier and the throttle guard into the login check.
//
// The order of operations is fixed:
//
//  1. reject an empty identity or a code of the wrong length;
//  2. consult the throttle for the origin, then for the identity;
//  3. pick the highest-serial record from the directory attribute;
//  4. decrypt the shared secret with the identity-derived key;
//  5. verify the code within one time step of the clock;
//  6. on success, clear the identity and origin from the throttle.
//
// Usage:
//
//	svc, err := authenticator.New(codec, guard, authenticator.WithLogger(log))
//	err = svc.Authenticate(ctx, authenticator.Request{
//		Identity:  "testuser",
//		Code:      "123456",
//		Origin:    "203.0.113.7",
//		Attribute: attrText,
//	})
//	switch {
//	case errors.Is(err, authenticator.ErrThrottled):
//	case errors.Is(err, authenticator.ErrVerificationFailed):
//	}
//
// A missing record, a decryption failure and a wrong code all return
// ErrVerificationFailed and log the same message.
package authenticator
