// Package logging configures the process-wide slog logger used by the dashboard.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs the default logger for the dashboard process. Records below
// level are dropped; format selects slog's text or JSON handler. A nil w logs
// to stderr, which is where the CLI points it unless a command overrides it.
func Init(level slog.Level, format string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(slog.New(newHandler(w, format, level)))
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// New returns the default logger tagged with the dashboard component emitting
// the record ("server", "http" or "charts").
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}

// ParseLevel accepts the slog level names (debug, info, warn, error),
// case-insensitively, with optional offsets such as "info+2".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return l, nil
}

// ValidFormat reports whether format is one Init understands.
func ValidFormat(format string) bool {
	return format == "text" || format == "json"
}
