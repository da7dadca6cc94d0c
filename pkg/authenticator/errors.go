package authenticator

import "errors"

var (
	ErrMissingIdentity    = errors.New("authenticator: identity is required")
	ErrVerificationFailed = errors.New("authenticator: verification failed")
	ErrThrottled          = errors.New("authenticator: too many attempts")
	ErrMissingDependency  = errors.New("authenticator: codec and throttle guard are required")
)
