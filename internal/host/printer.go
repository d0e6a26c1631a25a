package host

import (
	"fmt"
	"log/slog"
)

// SlogPrinter implements Printer over a log/slog.Logger, the
// ambient logging approach carried from the teacher's pkg/logger.
type SlogPrinter struct {
	Logger *slog.Logger
}

// NewSlogPrinter wraps logger (or slog.Default() if nil) as a Printer.
func NewSlogPrinter(logger *slog.Logger) SlogPrinter {
	if logger == nil {
		logger = slog.Default()
	}
	return SlogPrinter{Logger: logger}
}

func (p SlogPrinter) Info(format string, args ...any) {
	p.Logger.Info(fmt.Sprintf(format, args...))
}

func (p SlogPrinter) Success(format string, args ...any) {
	p.Logger.Info("OK: " + fmt.Sprintf(format, args...))
}

func (p SlogPrinter) Warning(format string, args ...any) {
	p.Logger.Warn(fmt.Sprintf(format, args...))
}

func (p SlogPrinter) Error(format string, args ...any) {
	p.Logger.Error(fmt.Sprintf(format, args...))
}
