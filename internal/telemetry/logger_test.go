package telemetry

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestInitValidLevels(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"error", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := Init(tt.level, &buf)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatal("Init returned a nil logger")
			}
		})
	}
}

func TestInitInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	_, err := Init("invalid", &buf)
	if err == nil {
		t.Error("expected error for invalid log level, got nil")
	}
}

func TestLoggerBeforeInit(t *testing.T) {
	globalLogger = nil
	if got := Logger(); got != slog.Default() {
		t.Error("Logger() should return slog.Default() when Init has not been called")
	}
}

func TestLoggerAfterInit(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Init("info", &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Logger() != globalLogger {
		t.Error("Logger() should return the logger Init configured")
	}
}
