// Package logger provides the storefront's structured logger on log/slog.
//
// In production (APP_ENV=production) records are emitted as JSON; in
// development as human-readable text. Handlers can be stacked: when
// LOG_MONGO_URI is configured, EnableMongo fans records out to an async
// MongoDB sink as well.
//
// Request-scoped logging: the HTTP logging middleware stores a logger
// pre-tagged with request_id in the request context, and WithCtx
// retrieves it, so handler code logs correlated lines without threading
// the ID by hand:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("product created", "id", p.ID)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/storefront/config"
)

// L is the process-wide base logger.
var L *slog.Logger

var baseHandler slog.Handler

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	baseHandler = handler
	L = slog.New(handler)
	slog.SetDefault(L)
}

// EnableMongo attaches an async MongoDB sink alongside the stdout handler.
// Returns the handler so the caller can Close it on shutdown.
func EnableMongo(uri string) (*MongoHandler, error) {
	mh, err := NewMongoHandler(uri, "storefront", "logs")
	if err != nil {
		return nil, err
	}
	L = slog.New(NewMultiHandler(baseHandler, mh))
	slog.SetDefault(L)
	return mh, nil
}

// ctxKey stores a per-request *slog.Logger in a context.
type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or the base
// logger when none has been injected.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// Inject stores a pre-tagged logger into ctx. Called by the request
// logging middleware; application code rarely needs it.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
