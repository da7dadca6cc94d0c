// Package config loads process configuration from the environment and
// resolves the gateway's core settings from pluggable sources.
//
// # Environment
//
// Load parses `env`-tagged structs with github.com/caarlos0/env, after
// reading an optional .env file through github.com/joho/godotenv. Parsed
// values are cached per type.
//
// # Core settings
//
// The cryptographic key parts and throttle limits are looked up by name
// through a Source:
//
//	FirstPartOfTOTPAESKey   first key part wrapped around the identity
//	SecondPartOfTOTPAESKey  second key part
//	TOTPMaxTries            attempts allowed per window
//	TOTPThrottleTime        window length in seconds
//
// Sources can be combined with Chain:
//
//	file, err := config.OpenSource("/etc/totpgate/totp-configfile")
//	if err != nil {
//		return err
//	}
//	settings, err := config.Resolve(config.Chain{config.EnvSource{Prefix: "TOTPGATE_"}, file})
//
// The key file format is one "name:base64value" per line with '#'
// comments. YAML files hold a flat mapping of the same names to plain
// values.
//
// # Error Handling
//
// Resolve reports every missing setting at once, each wrapped with
// ErrConfigMissing; malformed numbers wrap ErrInvalidSetting. Binaries treat
// both as fatal.
package config
