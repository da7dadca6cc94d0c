package totp

import "errors"

var (
	ErrMissingSecret             = errors.New("missing secret")
	ErrInvalidSecret             = errors.New("invalid secret")
	ErrMissingAccountName        = errors.New("missing account name")
	ErrMissingIssuer             = errors.New("missing issuer")
	ErrFailedToGenerateSecretKey = errors.New("failed to generate TOTP secret key")
)
