// Package telemetry sets up structured logging, adapted from
// zurustar-son-et's pkg/logger to take an explicit writer instead of
// always targeting os.Stdout.
package telemetry

import (
	"fmt"
	"io"
	"log/slog"
)

var globalLogger *slog.Logger

// Init configures slog at the given level ("debug", "info", "warn",
// "error") writing to w, sets it as the process default, and returns it.
func Init(level string, w io.Writer) (*slog.Logger, error) {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("telemetry: invalid log level: %s", level)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel})
	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
	return globalLogger, nil
}

// Logger returns the configured logger, or slog.Default() if Init has
// not been called yet.
func Logger() *slog.Logger {
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}
