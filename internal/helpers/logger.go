// Package helpers provides small utilities shared by the commands and the internal packages.
package helpers

import (
	"io"
	"log/slog"
)

// NewNoopLogger returns a logger discarding every record.
func NewNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewLogger returns a JSON logger writing to w. The level is Warn, lowered by 4 for every verbosity step.
func NewLogger(w io.Writer, verbosity int, callerTrace bool) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: callerTrace,
		Level:     LogLevel(verbosity),
	}))
}

// LogLevel maps a verbosity count to a slog level: 0 is Warn, 1 is Info, 2 and above Debug.
func LogLevel(verbosity int) slog.Level {
	return slog.LevelWarn - slog.Level(verbosity*4)
}
