// Package logging builds the application's slog logger and owns the context
// keys that let request-scoped IDs flow into every log record.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	userIDKey
)

// Config controls the logger built by NewLogger.
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json or text
	Output      io.Writer
	AddSource   bool
	ServiceName string
	Environment string
}

// NewLogger builds a structured logger. Every record carries the service
// name and environment; records logged with a context also carry the
// request and user IDs stored there.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var inner slog.Handler
	if cfg.Format == "text" {
		inner = slog.NewTextHandler(out, opts)
	} else {
		inner = slog.NewJSONHandler(out, opts)
	}

	return slog.New(&contextHandler{
		Handler: inner,
		service: cfg.ServiceName,
		env:     cfg.Environment,
	})
}

func parseLevel(level string) slog.Level {
	switch level {
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

// contextHandler decorates every record with service metadata and with the
// request-scoped IDs carried by the context, then delegates to the wrapped
// handler.
type contextHandler struct {
	slog.Handler
	service string
	env     string
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(
		slog.String("service", h.service),
		slog.String("environment", h.env),
	)
	if id := GetRequestID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if id, ok := ctx.Value(userIDKey).(string); ok && id != "" {
		r.AddAttrs(slog.String("user_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs and WithGroup must rewrap, otherwise slog.With would unwrap the
// decoration.
func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), service: h.service, env: h.env}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), service: h.service, env: h.env}
}

// WithRequestID stores a request ID in the context for later log records.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithUserID stores the authenticated user's ID in the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetRequestID returns the request ID stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// LogPanic records a recovered panic with the goroutine's stack trace.
func LogPanic(ctx context.Context, logger *slog.Logger, panicValue any) {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	logger.ErrorContext(ctx, "panic recovered",
		"panic", panicValue,
		"stack_trace", string(buf[:n]),
	)
}
