package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestExecuteFallbackOrdering(t *testing.T) {
	var mu sync.Mutex
	var hits []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits = append(hits, r.URL.Path)
		mu.Unlock()

		switch r.URL.Path {
		case "/api/professor/reservations":
			w.WriteHeader(http.StatusNotFound)
		case "/api/professor/my-reservations":
			w.WriteHeader(http.StatusInternalServerError)
		case "/api/reservations":
			w.Write([]byte(`[{"id":"r1"}]`))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer server.Close()

	executor := NewExecutor(ExecutorConfig{BaseURL: server.URL}, nil)

	strategies := []Strategy{
		{Name: "primary", Method: http.MethodGet, Path: "/api/professor/reservations"},
		{Name: "alternative", Method: http.MethodGet, Path: "/api/professor/my-reservations"},
		{Name: "direct", Method: http.MethodGet, Path: "/api/reservations"},
		{Name: "never", Method: http.MethodGet, Path: "/api/never"},
	}

	result, err := executor.Execute(context.Background(), strategies, nil, nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.Strategy != "direct" {
		t.Errorf("result.Strategy = %q, want %q", result.Strategy, "direct")
	}
	if string(result.Body) != `[{"id":"r1"}]` {
		t.Errorf("result.Body = %q", result.Body)
	}

	want := []string{"/api/professor/reservations", "/api/professor/my-reservations", "/api/reservations"}
	mu.Lock()
	defer mu.Unlock()
	if len(hits) != len(want) {
		t.Fatalf("attempted paths = %v, want %v", hits, want)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Errorf("attempt %d hit %q, want %q", i, hits[i], want[i])
		}
	}
}

func TestExecuteExhaustion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	executor := NewExecutor(ExecutorConfig{BaseURL: server.URL}, nil)

	strategies := []Strategy{
		{Name: "a", Path: "/a"},
		{Name: "b", Path: "/b"},
	}

	_, err := executor.Execute(context.Background(), strategies, nil, nil)
	if !IsExhausted(err) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("errors.As failed on %v", err)
	}
	if len(exhausted.Attempts) != 2 {
		t.Errorf("len(Attempts) = %d, want 2", len(exhausted.Attempts))
	}

	var statusErr *StatusError
	if !errors.As(exhausted.Attempts[0], &statusErr) {
		t.Fatalf("first attempt is %T, want StatusError", exhausted.Attempts[0])
	}
	if statusErr.Status != http.StatusBadGateway {
		t.Errorf("statusErr.Status = %d, want %d", statusErr.Status, http.StatusBadGateway)
	}
}

func TestExecuteTimeoutAdvancesToNextStrategy(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer slow.Close()

	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer fast.Close()

	executor := NewExecutor(ExecutorConfig{AttemptTimeout: 50 * time.Millisecond}, nil)

	strategies := []Strategy{
		{Name: "slow", Path: slow.URL},
		{Name: "fast", Path: fast.URL},
	}

	result, err := executor.Execute(context.Background(), strategies, nil, nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.Strategy != "fast" {
		t.Errorf("result.Strategy = %q, want %q", result.Strategy, "fast")
	}
}

func TestExecuteExpandsPathPlaceholders(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	executor := NewExecutor(ExecutorConfig{
		BaseURL: server.URL,
		Token:   func() string { return "tok-1" },
	}, nil)

	strategies := []Strategy{
		{Name: "cancel", Method: http.MethodPut, Path: "/api/reservations/{id}/cancel"},
	}

	_, err := executor.Execute(context.Background(), strategies, map[string]string{"id": "res-42"}, struct{}{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if gotPath != "/api/reservations/res-42/cancel" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("authorization = %q", gotAuth)
	}
}

func TestExecuteEmptyStrategyList(t *testing.T) {
	executor := NewExecutor(ExecutorConfig{}, nil)
	_, err := executor.Execute(context.Background(), nil, nil, nil)
	if !IsExhausted(err) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
}
