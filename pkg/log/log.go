// Package log configures the process-wide slog default and hands out
// module-scoped loggers for the API and its services.
package log

import (
	"log/slog"
	"os"
	"strings"
)

const service = "flowforge"

// ParseLevel maps a config string to a slog level, defaulting to info
// for anything it does not recognize.
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a text handler on stderr as the default logger. Every
// record carries the service name so aggregated logs stay attributable.
func Setup(logLevel string) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(logLevel),
	})
	slog.SetDefault(slog.New(handler).With("service", service))
}

// WithModule returns the default logger scoped to one module.
func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}
