package secretcodec

import "errors"

var (
	ErrMissingKeyPart   = errors.New("secretcodec: key part is not configured")
	ErrMissingInput     = errors.New("secretcodec: plaintext, salt and iv are required")
	ErrInvalidIV        = errors.New("secretcodec: iv must be 16 base64-encoded bytes")
	ErrEncryptionFailed = errors.New("secretcodec: encryption failed")
	ErrDecryptionFailed = errors.New("secretcodec: decryption failed")
	ErrRandomSource     = errors.New("secretcodec: random source failed")
)
