package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultAttemptTimeout = 10 * time.Second

// Executor performs strategy chains over HTTP. The zero value is not usable;
// construct instances with NewExecutor.
type Executor struct {
	baseURL        string
	client         *http.Client
	attemptTimeout time.Duration
	token          func() string
	logger         *slog.Logger
}

// ExecutorConfig carries the knobs for NewExecutor.
type ExecutorConfig struct {
	// BaseURL is prepended to every strategy path.
	BaseURL string
	// AttemptTimeout bounds each individual strategy attempt. Defaults to
	// ten seconds when zero.
	AttemptTimeout time.Duration
	// Token supplies the bearer token attached to requests. May be nil.
	Token func() string
	// Client overrides the HTTP client, mainly for tests. A default client
	// is used when nil.
	Client *http.Client
}

// NewExecutor wires an Executor from configuration.
func NewExecutor(cfg ExecutorConfig, logger *slog.Logger) *Executor {
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = defaultAttemptTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.AttemptTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		client:         client,
		attemptTimeout: cfg.AttemptTimeout,
		token:          cfg.Token,
		logger:         logger,
	}
}

// Execute runs the strategies strictly in order and returns the first result
// whose status is in the 2xx range. A transport failure, timeout, or
// non-success status advances to the next strategy; a later strategy is never
// started before the earlier one's outcome is known. When every strategy
// fails the returned error is an ExhaustedError joining the per-attempt
// failures.
func (e *Executor) Execute(ctx context.Context, strategies []Strategy, vars map[string]string, body any) (Result, error) {
	if e == nil {
		return Result{}, fmt.Errorf("remote: executor is nil")
	}
	if len(strategies) == 0 {
		return Result{}, &ExhaustedError{}
	}

	attempts := make([]error, 0, len(strategies))
	for _, strategy := range strategies {
		result, err := e.attempt(ctx, strategy, vars, body)
		if err == nil {
			e.logger.Debug("strategy succeeded", "strategy", strategy.Name, "status", result.Status)
			return result, nil
		}
		e.logger.Warn("strategy failed, advancing", "strategy", strategy.Name, "error", err)
		attempts = append(attempts, err)
	}

	return Result{}, &ExhaustedError{Attempts: attempts}
}

func (e *Executor) attempt(ctx context.Context, strategy Strategy, vars map[string]string, body any) (Result, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.attemptTimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return Result{}, &TransportError{Strategy: strategy.Name, Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	method := strategy.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, e.baseURL+strategy.ExpandPath(vars), reader)
	if err != nil {
		return Result{}, &TransportError{Strategy: strategy.Name, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if e.token != nil {
		if token := e.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return Result{}, &TransportError{Strategy: strategy.Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return Result{}, &StatusError{Strategy: strategy.Name, Status: resp.StatusCode}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, &TransportError{Strategy: strategy.Name, Err: err}
	}

	return Result{Strategy: strategy.Name, Status: resp.StatusCode, Body: payload}, nil
}
