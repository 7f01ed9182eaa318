//go:build dev

package mcplogdlog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"time"
)

const defaultSocket = "/tmp/mcplogd.sock"
const appName = "modgraph"

type entry struct {
	App       string         `json:"app"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// socketHandler forwards records to a local mcplogd daemon. Records are
// dropped when the daemon is not listening.
type socketHandler struct {
	level  slog.Leveler
	socket string
	attrs  []slog.Attr
	group  string
}

// Handler returns a handler that mirrors records at or above level to mcplogd.
func Handler(level slog.Leveler) slog.Handler {
	return &socketHandler{level: level, socket: defaultSocket}
}

func (h *socketHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *socketHandler) Handle(_ context.Context, record slog.Record) error {
	conn, err := net.Dial("unix", h.socket)
	if err != nil {
		return nil
	}
	defer conn.Close()

	metadata := make(map[string]any, len(h.attrs)+record.NumAttrs())
	for _, attr := range h.attrs {
		metadata[attr.Key] = attr.Value.Any()
	}
	record.Attrs(func(attr slog.Attr) bool {
		metadata[h.key(attr.Key)] = attr.Value.Any()
		return true
	})

	e := entry{
		App:       appName,
		Level:     record.Level.String(),
		Message:   record.Message,
		Timestamp: record.Time.UTC().Format(time.RFC3339Nano),
		Metadata:  metadata,
	}
	data, _ := json.Marshal(e)
	fmt.Fprintf(conn, "%s\n", data)
	return nil
}

func (h *socketHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), prefixed(h.group, attrs)...)
	return &next
}

func (h *socketHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.group = h.key(name)
	return &next
}

func (h *socketHandler) key(name string) string {
	if h.group == "" {
		return name
	}
	return h.group + "." + name
}

func prefixed(group string, attrs []slog.Attr) []slog.Attr {
	if group == "" {
		return attrs
	}
	out := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, slog.Attr{Key: group + "." + attr.Key, Value: attr.Value})
	}
	return out
}
