package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Setting names understood by Resolve.
const (
	NameKeyPartA     = "FirstPartOfTOTPAESKey"
	NameKeyPartB     = "SecondPartOfTOTPAESKey"
	NameMaxTries     = "TOTPMaxTries"
	NameThrottleTime = "TOTPThrottleTime"
)

// Settings is the resolved core configuration. It is immutable once returned.
type Settings struct {
	KeyPartA       string
	KeyPartB       string
	MaxTries       int
	ThrottleWindow time.Duration
}

// Resolve reads every required setting from src. All problems are reported
// together; each missing name is wrapped with ErrConfigMissing.
func Resolve(src Source) (Settings, error) {
	if src == nil {
		return Settings{}, fmt.Errorf("%w: no source", ErrConfigMissing)
	}

	var (
		s    Settings
		errs []error
	)

	s.KeyPartA = required(src, NameKeyPartA, &errs)
	s.KeyPartB = required(src, NameKeyPartB, &errs)

	if raw := required(src, NameMaxTries, &errs); raw != "" {
		s.MaxTries = positive(NameMaxTries, raw, &errs)
	}
	if raw := required(src, NameThrottleTime, &errs); raw != "" {
		s.ThrottleWindow = time.Duration(positive(NameThrottleTime, raw, &errs)) * time.Second
	}

	if len(errs) > 0 {
		return Settings{}, errors.Join(errs...)
	}
	return s, nil
}

// ResolveKeyParts reads only the two key parts, for tools that seal or open
// secrets without throttling attempts.
func ResolveKeyParts(src Source) (partA, partB string, err error) {
	if src == nil {
		return "", "", fmt.Errorf("%w: no source", ErrConfigMissing)
	}

	var errs []error
	partA = required(src, NameKeyPartA, &errs)
	partB = required(src, NameKeyPartB, &errs)
	if len(errs) > 0 {
		return "", "", errors.Join(errs...)
	}
	return partA, partB, nil
}

func required(src Source, name string, errs *[]error) string {
	v, ok := src.Lookup(name)
	if !ok || v == "" {
		*errs = append(*errs, fmt.Errorf("%w: %s", ErrConfigMissing, name))
		return ""
	}
	return v
}

func positive(name, raw string, errs *[]error) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		*errs = append(*errs, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidSetting, name, raw))
		return 0
	}
	return n
}
