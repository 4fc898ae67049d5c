package logger

import (
	"io"
	"log/slog"
	"os"
)

const serviceName = "orderflow"

// New creates a preconfigured JSON slog.Logger writing to stdout.
func New() *slog.Logger {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter creates the service logger writing to w.
func NewWithWriter(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", serviceName))
}
