package httpserver

import "time"

type Config struct {
	Addr            string        `env:"TOTPGATE_HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"TOTPGATE_HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"TOTPGATE_HTTP_WRITE_TIMEOUT" envDefault:"15s"` // must exceed the worst-case throttle slowdown
	IdleTimeout     time.Duration `env:"TOTPGATE_HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"TOTPGATE_HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}
