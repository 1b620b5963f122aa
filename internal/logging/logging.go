package logging

import (
	"log/slog"
	"os"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Init initializes the logging system, writing structured JSON to stdout.
func Init(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}
