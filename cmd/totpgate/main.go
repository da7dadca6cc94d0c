// Command totpgate serves the one-time code check over HTTP.
//
// Process settings come from the environment (and an optional .env file):
//
//	APP_ENV                   development | staging | production
//	TOTPGATE_SETTINGS_FILE    key file ("name:base64value" lines) or .yaml with the key parts and throttle limits
//	TOTPGATE_TRUSTED_HEADERS  comma separated proxy headers to take the client IP from
//	TOTPGATE_HTTP_*           listener, see pkg/httpserver
//	REDIS_URL                 share throttle state between instances, see pkg/redis
//
// Key parts and throttle limits are read from TOTPGATE_<name> variables first
// and then from the settings file.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/totpgate/pkg/authenticator"
	"github.com/dmitrymomot/totpgate/pkg/clientip"
	"github.com/dmitrymomot/totpgate/pkg/config"
	"github.com/dmitrymomot/totpgate/pkg/environment"
	"github.com/dmitrymomot/totpgate/pkg/httpserver"
	"github.com/dmitrymomot/totpgate/pkg/logger"
	"github.com/dmitrymomot/totpgate/pkg/redis"
	"github.com/dmitrymomot/totpgate/pkg/requestid"
	"github.com/dmitrymomot/totpgate/pkg/secretcodec"
	"github.com/dmitrymomot/totpgate/pkg/throttle"
	"github.com/dmitrymomot/totpgate/pkg/verifyapi"
)

const serviceName = "totpgate"

type appConfig struct {
	Env            string   `env:"APP_ENV" envDefault:"development"`
	SettingsFile   string   `env:"TOTPGATE_SETTINGS_FILE"`
	SettingsPrefix string   `env:"TOTPGATE_SETTINGS_ENV_PREFIX" envDefault:"TOTPGATE_"`
	TrustedHeaders []string `env:"TOTPGATE_TRUSTED_HEADERS" envSeparator:","`

	HTTP  httpserver.Config
	Redis redis.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	env := environment.Parse(cfg.Env)
	log := logger.New(
		logger.WithEnvironment(env, serviceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("totpgate stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	src, err := settingsSource(cfg)
	if err != nil {
		return err
	}
	settings, err := config.Resolve(src)
	if err != nil {
		return err
	}

	codec, err := secretcodec.New(secretcodec.Config{KeyPartA: settings.KeyPartA, KeyPartB: settings.KeyPartB})
	if err != nil {
		return err
	}

	guardOpts := []throttle.Option{throttle.WithLogger(log.With(logger.Component("throttle")))}
	routerOpts := []verifyapi.Option{
		verifyapi.WithLogger(log.With(logger.Component("http"))),
		verifyapi.WithClientIP(clientip.NewResolver(cfg.TrustedHeaders...)),
	}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Warn("failed to close redis client", logger.Error(err))
			}
		}()
		guardOpts = append(guardOpts, throttle.WithStore(throttle.NewRedisStore(client, cfg.Redis.KeyPrefix)))
		routerOpts = append(routerOpts, verifyapi.WithReadinessCheck("redis", redis.Healthcheck(client)))
		log.Info("throttle state shared through redis", slog.String("prefix", cfg.Redis.KeyPrefix))
	}

	guard, err := throttle.New(throttle.Config{MaxTries: settings.MaxTries, Window: settings.ThrottleWindow}, guardOpts...)
	if err != nil {
		return err
	}
	routerOpts = append(routerOpts, verifyapi.WithStats(guard))

	svc, err := authenticator.New(codec, guard, authenticator.WithLogger(log.With(logger.Component("authenticator"))))
	if err != nil {
		return err
	}

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, verifyapi.NewRouter(svc, routerOpts...))
}

func settingsSource(cfg appConfig) (config.Source, error) {
	chain := config.Chain{config.EnvSource{Prefix: cfg.SettingsPrefix}}
	if cfg.SettingsFile == "" {
		return chain, nil
	}
	file, err := config.OpenSource(cfg.SettingsFile)
	if err != nil {
		return nil, err
	}
	return append(chain, file), nil
}
