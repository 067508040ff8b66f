package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger at the level named by POLICR_LOG_LEVEL.
// Unknown or empty values fall back to info.
func New() *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv("POLICR_LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
