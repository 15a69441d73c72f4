package logger

import (
	"log/slog"
	"os"
)

// New returns a structured JSON logger using slog. Every line carries the
// service name so consent events are attributable in shared log streams.
func New() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler).With("service", "consentgate")
}
