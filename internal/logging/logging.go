// Package logging builds the structured logger shared by the CLI and the
// simulation loop.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel names the environment variable consulted when no level is given.
const EnvLevel = "SIMCORE_LOG_LEVEL"

// New returns a text logger writing to w at the named level. An empty level
// falls back to SIMCORE_LOG_LEVEL, then INFO.
func New(w io.Writer, level string) *slog.Logger {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps DEBUG, INFO, WARN (or WARNING) and ERROR, in any case, to
// a slog level. Anything else is INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OpenFile returns a logger appending to path and a function closing the
// file. The terminal UI logs here because it owns the screen.
func OpenFile(path, level string) (*slog.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, level), f.Close, nil
}
