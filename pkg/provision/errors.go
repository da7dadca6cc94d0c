package provision

import "errors"

var (
	ErrMissingIdentity = errors.New("provision: identity is required")
	ErrMissingIssuer   = errors.New("provision: issuer is required")
	ErrMissingCodec    = errors.New("provision: codec is required")
	ErrInvalidSecret   = errors.New("provision: shared secret is not valid base32")
	ErrProvisionFailed = errors.New("provision: failed to seal secret")
	ErrEnrollFailed    = errors.New("provision: failed to generate enrollment key")
)
