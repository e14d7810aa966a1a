package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tahasaad555/pfe2-sub001/internal/logging"
	"github.com/tahasaad555/pfe2-sub001/internal/remote"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := []any{"service", serviceName}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}

// ErrorKind maps sentinel, transport, and validation errors to a stable
// logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNotFound) {
		return "not_found"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}

	if remote.IsExhausted(err) {
		return "exhausted"
	}
	var transportErr *remote.TransportError
	if errors.As(err, &transportErr) {
		return "transport"
	}
	var statusErr *remote.StatusError
	if errors.As(err, &statusErr) {
		return "server"
	}

	return "unexpected"
}
