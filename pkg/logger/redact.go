package logger

import (
	"log/slog"
	"strings"
)

// Redacted replaces the value of any attribute whose key is sensitive.
const Redacted = "[REDACTED]"

// DefaultRedactedKeys are masked by every logger built with New.
var DefaultRedactedKeys = []string{
	"secret",
	"salt",
	"iv",
	"code",
	"key_part",
	"plaintext",
	"password",
}

// redactor returns a ReplaceAttr function masking keys, case-insensitively.
func redactor(keys []string) func([]string, slog.Attr) slog.Attr {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[strings.ToLower(k)] = struct{}{}
	}

	return func(_ []string, a slog.Attr) slog.Attr {
		if a.Value.Kind() == slog.KindGroup {
			return a
		}
		if _, ok := set[strings.ToLower(a.Key)]; ok {
			return slog.String(a.Key, Redacted)
		}
		return a
	}
}
