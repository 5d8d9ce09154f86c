package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// NewLogger creates a new structured logger with JSON output
func NewLogger(level string) *slog.Logger {
	// Convert level string to slog.Level
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	// Create JSON handler with specified level
	opts := &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Customize attribute formatting
			if a.Key == slog.TimeKey {
				// Use RFC3339 format with milliseconds
				t := a.Value.Time()
				a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
			}
			if a.Key == slog.SourceKey {
				// Simplify source location
				source := a.Value.Any().(*slog.Source)
				source.File = shortFile(source.File)
			}
			return a
		},
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler).With(
		slog.String("service", "walkcore-client"),
		slog.String("version", "1.0.0"),
	)

	return logger
}

func shortFile(file string) string {
	short := file
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			break
		}
	}
	return short
}
