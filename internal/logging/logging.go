// Package logging builds the process logger from configuration.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/LegacyCodeHQ/modgraph/internal/mcplogdlog"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	// ErrInvalidLevel indicates an unknown log level name.
	ErrInvalidLevel = errors.New("log level must be one of debug, info, warn, error")
	// ErrInvalidFormat indicates an unknown log format name.
	ErrInvalidFormat = errors.New("log format must be text or json")
)

// ParseLevel converts a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
}

// New creates a logger writing to w in the given format at the given level.
// Dev builds also mirror records to the local mcplogd socket.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case FormatText, "":
		handler = slog.NewTextHandler(w, opts)
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}

	if sink := mcplogdlog.Handler(lvl); sink != nil {
		handler = NewTeeHandler(handler, sink)
	}

	return slog.New(handler), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
