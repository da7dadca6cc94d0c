package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpgate/pkg/config"
)

type listenConfig struct {
	Addr    string `env:"TEST_LISTEN_ADDR" envDefault:":8080"`
	Workers int    `env:"TEST_LISTEN_WORKERS" envDefault:"4"`
	Debug   bool   `env:"TEST_LISTEN_DEBUG" envDefault:"true"`
}

type defaultsConfig struct {
	Addr string `env:"TEST_DEFAULTS_ADDR" envDefault:":9090"`
}

type cachedConfig struct {
	Value string `env:"TEST_CACHED_VALUE"`
}

type resetConfig struct {
	Value string `env:"TEST_RESET_VALUE"`
}

type requiredConfig struct {
	Required string `env:"TEST_REQUIRED_VALUE,required"`
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("TEST_LISTEN_WORKERS", "16")
	t.Setenv("TEST_LISTEN_DEBUG", "false")

	var cfg listenConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 16, cfg.Workers)
	assert.False(t, cfg.Debug)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("TEST_DEFAULTS_ADDR")

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":9090", cfg.Addr)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_VALUE")

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_CachesPerType(t *testing.T) {
	t.Setenv("TEST_CACHED_VALUE", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_CACHED_VALUE", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestReset(t *testing.T) {
	t.Setenv("TEST_RESET_VALUE", "first")

	var cfg resetConfig
	require.NoError(t, config.Load(&cfg))

	t.Setenv("TEST_RESET_VALUE", "second")
	config.Reset()

	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "second", cfg.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *listenConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad_Panics(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_VALUE")

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
