package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/totpgate/pkg/logger"
)

func TestRedaction(t *testing.T) {
	t.Run("default keys", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("attempt",
			slog.String("secret", "JBSWY3DPEHPK3PXP"),
			slog.String("Code", "123456"),
			logger.Group("record", slog.String("salt", "c2FsdA=="), slog.String("iv", "aXY=")),
			logger.Identity("testuser"),
		)

		entry := decode(t, buf)
		assert.Equal(t, logger.Redacted, entry["secret"])
		assert.Equal(t, logger.Redacted, entry["Code"])
		record := entry["record"].(map[string]any)
		assert.Equal(t, logger.Redacted, record["salt"])
		assert.Equal(t, logger.Redacted, record["iv"])
		assert.Equal(t, "testuser", entry["identity"])
		assert.NotContains(t, buf.String(), "JBSWY3DPEHPK3PXP")
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("key_part", "abc")))
		log.Info("msg")
		assert.Equal(t, logger.Redacted, decode(t, buf)["key_part"])
	})

	t.Run("extra keys", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithRedactedKeys("attribute"))
		log.Info("msg", slog.String("attribute", "Secret0: x"))
		assert.Equal(t, logger.Redacted, decode(t, buf)["attribute"])
	})
}
