package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrConfigMissing is returned when a required setting is absent from every source.
	ErrConfigMissing = errors.New("required setting is missing")

	// ErrInvalidSetting is returned when a setting is present but unusable.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrReadingSource is returned when a source cannot be read or decoded.
	ErrReadingSource = errors.New("failed to read configuration source")
)
