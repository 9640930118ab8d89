// Package logger configures the process-wide slog logger.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// Config selects the level and output format
type Config struct {
	Level  string
	Format string // "console", "text" or "json"
	Output io.Writer
}

var (
	mu    sync.Mutex
	lg    *slog.Logger
	level = new(slog.LevelVar)
)

// Init builds the logger from cfg and installs it as the slog default.
// Calling it again replaces the previous logger.
func Init(cfg Config) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	lg = New(cfg, level)
	slog.SetDefault(lg)
	return lg
}

// L returns the configured logger, creating a console logger on first use
func L() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if lg == nil {
		lg = New(Config{Level: "info"}, level)
	}
	return lg
}

// SetLevel changes the level of the installed logger without rebuilding it
func SetLevel(name string) {
	level.Set(ParseLevel(name))
}

// New builds a logger writing to cfg.Output (stderr when nil)
func New(cfg Config, lv *slog.LevelVar) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if lv == nil {
		lv = new(slog.LevelVar)
	}
	lv.Set(ParseLevel(cfg.Level))

	opts := &slog.HandlerOptions{Level: lv}
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(cfg.Output, opts)
	case "text":
		handler = slog.NewTextHandler(cfg.Output, opts)
	default:
		handler = &consoleHandler{
			out:   termenv.NewOutput(cfg.Output),
			level: lv,
			mu:    &sync.Mutex{},
		}
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to its slog level; unknown names mean info
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
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

// consoleHandler writes one human-readable line per record:
//
//	15:04:05 INFO  pointer locked  x=0 z=0
type consoleHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
	mu    *sync.Mutex
}

func (h *consoleHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format(time.TimeOnly))
	b.WriteByte(' ')
	b.WriteString(h.colorTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, h.group, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group != "" {
		clone.group = h.group + "." + name
	} else {
		clone.group = name
	}
	clone.attrs = append([]slog.Attr{}, h.attrs...)
	return &clone
}

func (h *consoleHandler) colorTag(l slog.Level) string {
	tag := levelTag(l)
	var color string
	switch {
	case l >= slog.LevelError:
		color = "9"
	case l >= slog.LevelWarn:
		color = "11"
	case l >= slog.LevelInfo:
		color = "10"
	default:
		color = "8"
	}
	return h.out.String(tag).Foreground(h.out.Color(color)).String()
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN "
	case l >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	fmt.Fprintf(b, "  %s=%v", key, a.Value.Resolve())
}
