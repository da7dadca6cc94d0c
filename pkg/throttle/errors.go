package throttle

import "errors"

var (
	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("throttle: invalid configuration")

	// ErrUnknownKeyspace indicates a keyspace other than KeyspaceIdentity or KeyspaceOrigin.
	ErrUnknownKeyspace = errors.New("throttle: unknown keyspace")

	// ErrStoreUnavailable indicates that the store backend could not be reached.
	ErrStoreUnavailable = errors.New("throttle: store unavailable")

	// ErrCorruptRecord indicates a stored record that cannot be decoded.
	ErrCorruptRecord = errors.New("throttle: corrupt record")
)
