package logger

import (
	"io"
	"log/slog"
	"time"

	clog "github.com/charmbracelet/log"
)

// NewConsole creates a human-readable logger for local development.
func NewConsole(w io.Writer, level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(consoleHandler(w, level), extractors...))
}

func consoleHandler(w io.Writer, level slog.Level) slog.Handler {
	return clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           clog.Level(level),
	})
}
