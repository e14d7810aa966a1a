package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Setup builds the process logger at the requested level. Unknown level
// names fall back to info.
func Setup(level string) *slog.Logger {
	var leveler slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		leveler = slog.LevelDebug
	case "warn", "warning":
		leveler = slog.LevelWarn
	case "error":
		leveler = slog.LevelError
	default:
		leveler = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: leveler}))
}

type contextKey struct{}

// ContextWithLogger returns a derived context that carries the provided logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts a logger previously attached to the context.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(contextKey{}).(*slog.Logger)
	return logger
}
