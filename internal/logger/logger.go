// Package logger configures structured logging.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	reset     = "\033[0m"
	red       = "\033[31m"
	green     = "\033[32m"
	yellow    = "\033[33m"
	magenta   = "\033[35m"
	cyan      = "\033[36m"
	white     = "\033[37m"
	boldBlue  = "\033[1;34m"
	boldWhite = "\033[1;37m"
)

var levelColors = map[slog.Level]string{
	slog.LevelDebug: cyan,
	slog.LevelInfo:  green,
	slog.LevelWarn:  yellow,
	slog.LevelError: red,
}

type contextKey string

const requestIDKey contextKey = "requestID"

// ColoredHandler writes one colored line per record. The request_id
// attribute, when present, is printed before the message.
type ColoredHandler struct {
	h     slog.Handler
	out   io.Writer
	color bool
	attrs []slog.Attr
}

// NewColoredHandler creates a handler writing to w. With color false the
// line layout is kept but escape codes are omitted.
func NewColoredHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *ColoredHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	return &ColoredHandler{
		h:     slog.NewTextHandler(w, opts),
		out:   w,
		color: color,
	}
}

func (h *ColoredHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *ColoredHandler) paint(color, s string) string {
	if !h.color {
		return s
	}
	return color + s + reset
}

func (h *ColoredHandler) Handle(ctx context.Context, r slog.Record) error {
	levelColor, ok := levelColors[r.Level]
	if !ok {
		levelColor = white
	}

	var line strings.Builder
	line.WriteString(h.paint(magenta, r.Time.Format("15:04:05.000")))
	line.WriteString(" ")
	line.WriteString(h.paint(levelColor, fmt.Sprintf("%-6s", strings.ToUpper(r.Level.String()))))
	line.WriteString(" ")

	attrs := append([]slog.Attr(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	if id := GetRequestID(ctx); id != "" {
		line.WriteString(h.paint(boldBlue, "["+id+"]"))
		line.WriteString(" ")
	}

	line.WriteString(h.paint(boldWhite, r.Message))

	for _, a := range attrs {
		val := a.Value.String()
		if a.Value.Kind() == slog.KindString {
			val = fmt.Sprintf("%q", val)
		}
		line.WriteString(" ")
		line.WriteString(h.paint(yellow, a.Key))
		line.WriteString("=")
		line.WriteString(val)
	}

	_, err := fmt.Fprintln(h.out, line.String())
	return err
}

func (h *ColoredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ColoredHandler{
		h:     h.h.WithAttrs(attrs),
		out:   h.out,
		color: h.color,
		attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *ColoredHandler) WithGroup(name string) slog.Handler {
	return &ColoredHandler{
		h:     h.h.WithGroup(name),
		out:   h.out,
		color: h.color,
		attrs: h.attrs,
	}
}

// ParseLevel maps a config level name to a slog level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a colored handler as the default logger and returns it
func Setup(w io.Writer, level string, color bool) *slog.Logger {
	l := slog.New(NewColoredHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}, color))
	slog.SetDefault(l)
	return l
}

// GetRequestID returns the request ID stored in ctx, if any
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID returns a copy of ctx carrying requestID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
