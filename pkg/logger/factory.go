package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects how records are written.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Options configures Build.
type Options struct {
	Level  slog.Level
	Format Format
	Output io.Writer
	Sentry SentryConfig
}

// New creates a JSON-formatted logger with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(jsonHandler(os.Stdout, slog.LevelInfo), extractors...))
}

// Build returns a logger for opts: JSON or console output, teed into Sentry
// when a DSN is configured.
func Build(opts Options, extractors ...ContextExtractor) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var base slog.Handler
	switch opts.Format {
	case FormatConsole:
		base = consoleHandler(out, opts.Level)
	default:
		base = jsonHandler(out, opts.Level)
	}

	return slog.New(NewLogHandlerDecorator(withSentry(base, opts.Sentry), extractors...))
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func jsonHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}
