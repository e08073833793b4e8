package remote

import (
	"context"
	"sync"

	"github.com/sdnfabric/sdnctl/internal/credentials"
)

// Call records one operation issued through a MockRunner.
type Call struct {
	Host string
	Op   Operation
	Args map[string]string
}

// MockRunner is a mock implementation of Runner for tests. Every call is
// recorded; RunFunc, when set, controls the response.
type MockRunner struct {
	RunFunc func(ctx context.Context, host string, cred credentials.Credential, op Operation, args map[string]string) (string, error)

	mu    sync.Mutex
	calls []Call
}

var _ Runner = (*MockRunner)(nil)

// Run implements Runner.
func (m *MockRunner) Run(ctx context.Context, host string, cred credentials.Credential, op Operation, args map[string]string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Host: host, Op: op, Args: args})
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, host, cred, op, args)
	}
	if op == OpProbe {
		return "ok", nil
	}
	return "", nil
}

// Calls returns a copy of every recorded call in issue order.
func (m *MockRunner) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsFor returns recorded calls matching the operation.
func (m *MockRunner) CallsFor(op Operation) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}
