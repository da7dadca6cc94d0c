// Package httpserver runs the gateway's HTTP surface with graceful shutdown.
//
//	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run returns once ctx is cancelled or the process receives SIGINT/SIGTERM,
// after in-flight requests finish or Config.ShutdownTimeout elapses. Listen
// failures are wrapped with ErrStart, drain failures with ErrShutdown.
//
// Config.WriteTimeout bounds a whole verification request, including the
// throttle slowdown, so keep it above the slowest tier.
package httpserver
