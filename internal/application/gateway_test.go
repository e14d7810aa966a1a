package application_test

import (
	"context"
	"sync"

	"github.com/tahasaad555/pfe2-sub001/internal/remote"
)

// gatewayCall records one Execute invocation for assertion.
type gatewayCall struct {
	strategies []remote.Strategy
	vars       map[string]string
	body       any
}

// stubGateway scripts Execute outcomes in order; once the script is
// consumed, the last outcome repeats. An empty script reports exhaustion.
type stubGateway struct {
	mu      sync.Mutex
	results []remote.Result
	errs    []error
	calls   []gatewayCall
}

func (g *stubGateway) push(result remote.Result, err error) {
	g.mu.Lock()
	g.results = append(g.results, result)
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}

func (g *stubGateway) Execute(_ context.Context, strategies []remote.Strategy, vars map[string]string, body any) (remote.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, gatewayCall{strategies: strategies, vars: vars, body: body})
	if len(g.results) == 0 {
		return remote.Result{}, &remote.ExhaustedError{}
	}
	idx := len(g.calls) - 1
	if idx >= len(g.results) {
		idx = len(g.results) - 1
	}
	return g.results[idx], g.errs[idx]
}

func (g *stubGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *stubGateway) call(i int) gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[i]
}
