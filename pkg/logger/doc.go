// Package logger builds the slog loggers used by the server.
//
// Production logs are JSON on stdout; development logs go through
// charmbracelet/log for readable console output. Either can be teed into
// Sentry by setting SentryConfig.DSN:
//
//	log := logger.Build(logger.Options{
//		Level:  logger.ParseLevel(cfg.LogLevel),
//		Format: logger.FormatConsole,
//		Sentry: cfg.Sentry,
//	}, middlewares.RequestIDExtractor())
//
// ContextExtractors run on every call and add request-scoped attributes such
// as request_id. Without a DSN, or when the Sentry SDK fails to start, logging
// continues to the base handler only.
package logger
