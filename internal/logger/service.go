package logger

import (
	"io"
	"log/slog"
	"os"
)

// Initialize installs a JSON logger on stderr as the process default.
func Initialize(level slog.Level) {
	InitializeWithWriter(os.Stderr, level)
}

func InitializeWithWriter(w io.Writer, level slog.Level) {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))

	slog.SetDefault(logger)
}

func Named(name string) *slog.Logger {
	logger := slog.Default()
	if logger == nil {
		return nil
	}

	return logger.With("name", name)
}
