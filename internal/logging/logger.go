// Package logging provides the component-tagged slog loggers of the uf2conv
// command. Library packages never log.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Component names used as log source tags.
const (
	CompConvert = "convert"
	CompInfo    = "info"
	CompConfig  = "config"
)

var (
	defaultLogger *slog.Logger
	once          sync.Once
)

// Init sets up the global logger writing to stderr at the given level.
// Only the first call has an effect.
func Init(level slog.Level) {
	once.Do(func() {
		defaultLogger = New(os.Stderr, level)
		slog.SetDefault(defaultLogger)
	})
}

// New creates a logger writing plain aligned lines to w:
//
//	INF [convert] wrote output  path=app.uf2 blocks=24
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(&lineHandler{out: w, level: level, mu: &sync.Mutex{}})
}

// NewComponentLogger returns a logger tagged with a component name.
func NewComponentLogger(component string) *slog.Logger {
	if defaultLogger == nil {
		Init(slog.LevelInfo)
	}

	return defaultLogger.With(slog.String("comp", component))
}

// ParseLevel parses debug, info, warn or error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}

	return level, nil
}

// lineHandler is a slog.Handler producing one short line per record, with the
// component tag in brackets and attributes appended as key=value pairs.
type lineHandler struct {
	out   io.Writer
	level slog.Level
	attrs []slog.Attr
	group string
	mu    *sync.Mutex
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	switch {
	case r.Level >= slog.LevelError:
		sb.WriteString("ERR")
	case r.Level >= slog.LevelWarn:
		sb.WriteString("WRN")
	case r.Level >= slog.LevelInfo:
		sb.WriteString("INF")
	default:
		sb.WriteString("DBG")
	}

	var rest []slog.Attr
	for _, a := range h.attrs {
		if a.Key == "comp" {
			fmt.Fprintf(&sb, " [%s]", a.Value.String())
		} else {
			rest = append(rest, a)
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	for _, a := range rest {
		fmt.Fprintf(&sb, "  %s=%s", a.Key, a.Value.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&sb, "  %s=%s", h.qualify(a.Key), a.Value.String())
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())

	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, a := range attrs {
		a.Key = h.qualify(a.Key)
		newAttrs = append(newAttrs, a)
	}

	return &lineHandler{out: h.out, level: h.level, attrs: newAttrs, group: h.group, mu: h.mu}
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &lineHandler{out: h.out, level: h.level, attrs: h.attrs, group: h.qualify(name), mu: h.mu}
}

func (h *lineHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}

	return h.group + "." + key
}
