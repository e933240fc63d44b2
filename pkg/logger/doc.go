// Package logger builds slog loggers with functional options and automatic
// context attribute injection. The decorator pattern keeps extraction in the
// logging hot path only: every record passing through the handler picks up
// attributes from the request context, such as the tenant ID registered via
// tenant.LoggerExtractor.
//
//	log := logger.New(
//		logger.WithEnvironment(appEnv, "facturio-api"),
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
package logger
