// Package httpserver provides a lightweight wrapper around net/http that adds
// graceful shutdown, configurable server timeouts, health-check handlers, and
// structured logging via slog.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal is
// received, then drains in-flight requests within the configured shutdown
// deadline. Stop hooks registered with WithStopHook fire after the drain,
// which is where the tenant pool registry gets closed.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(log *slog.Logger) {
//			db.Close()
//			log.Info("tenant pools closed")
//		}),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", "error", err)
//	}
//
// Run wraps listen errors with ErrStart; Shutdown wraps shutdown errors with
// ErrShutdown. Use errors.Is to distinguish them.
package httpserver
