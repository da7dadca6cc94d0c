package verifyapi

import "errors"

var (
	ErrMissingContentType   = errors.New("missing content type, expected application/json")
	ErrUnsupportedMediaType = errors.New("unsupported media type, expected application/json")
	ErrInvalidBody          = errors.New("invalid request body")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrMissingField         = errors.New("identity, code and attribute are required")
)
