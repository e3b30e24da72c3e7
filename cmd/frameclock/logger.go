package main

import (
	"io"
	"log/slog"
)

// InitLogger configures the global slog logger to output structured JSON.
// Call this once before creating any timer.
func InitLogger(w io.Writer, level slog.Level) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
