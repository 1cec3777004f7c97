package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds a diagnostics logger on w. JSON is used when the audit stream
// is also structured, so the two can be told apart by a log shipper;
// otherwise text.
func New(w io.Writer, json bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Init sets the default slog logger on stderr, leaving stdout to the audit
// lines.
func Init(json bool, level slog.Level) {
	slog.SetDefault(New(os.Stderr, json, level))
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
