package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

type Config struct {
	Level  string
	Format string // "text", "json", "console"
	Output io.Writer
}

var (
	once sync.Once
	lg   *slog.Logger
)

func Init(cfg Config) {
	once.Do(func() {
		if cfg.Output == nil {
			cfg.Output = os.Stderr
		}
		lg = slog.New(newHandler(cfg))
		slog.SetDefault(lg)
	})
}

func L() *slog.Logger {
	if lg == nil {
		Init(Config{Level: "debug", Format: "console"})
	}
	return lg
}

func newHandler(cfg Config) slog.Handler {
	level := parseLevel(cfg.Level)
	switch cfg.Format {
	case "json":
		return slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	case "text":
		return slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	default:
		return &consoleHandler{w: cfg.Output, level: level, colored: isTerminal(cfg.Output)}
	}
}

func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// isTerminal 判断输出是否为终端, NO_COLOR 环境变量会关闭颜色
func isTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// consoleHandler outputs human-friendly log lines:
//
//	12:00:00 INFO  decoded component  file=chat.nbt type=text
type consoleHandler struct {
	w       io.Writer
	level   slog.Level
	colored bool
	attrs   []slog.Attr
	group   string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.Format(time.TimeOnly) // "15:04:05"
	lvl := levelTag(r.Level, h.colored)

	line := fmt.Sprintf("%s %s %s", ts, lvl, r.Message)

	// pre-attached attrs (from WithAttrs)
	for _, a := range h.attrs {
		line += formatAttr(h.group, a)
	}
	// per-record attrs
	r.Attrs(func(a slog.Attr) bool {
		line += formatAttr(h.group, a)
		return true
	})

	line += "\n"
	_, err := fmt.Fprint(h.w, line)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{
		w:       h.w,
		level:   h.level,
		colored: h.colored,
		attrs:   append(append([]slog.Attr{}, h.attrs...), attrs...),
		group:   h.group,
	}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	prefix := name
	if h.group != "" {
		prefix = h.group + "." + name
	}
	return &consoleHandler{
		w:       h.w,
		level:   h.level,
		colored: h.colored,
		attrs:   append([]slog.Attr{}, h.attrs...),
		group:   prefix,
	}
}

var levelColors = map[string]*color.Color{
	"ERROR": forced(color.New(color.FgRed, color.Bold)),
	"WARN ": forced(color.New(color.FgYellow)),
	"INFO ": forced(color.New(color.FgGreen)),
	"DEBUG": forced(color.New(color.FgHiBlack)),
}

// forced 让颜色不受 color.NoColor 全局开关影响, 是否着色由 handler 决定
func forced(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

func levelTag(l slog.Level, colored bool) string {
	var tag string
	switch {
	case l >= slog.LevelError:
		tag = "ERROR"
	case l >= slog.LevelWarn:
		tag = "WARN "
	case l >= slog.LevelInfo:
		tag = "INFO "
	default:
		tag = "DEBUG"
	}
	if !colored {
		return tag
	}
	return levelColors[tag].Sprint(tag)
}

func formatAttr(group string, a slog.Attr) string {
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	return fmt.Sprintf("  %s=%v", key, a.Value)
}
