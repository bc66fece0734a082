package llm

import (
	"context"
	"sync"

	"github.com/powderlabs/skitutor/domain"
)

// MockGateway is a scripted Gateway implementation for tests. It records
// every call together with the exact message list it was given.
type MockGateway struct {
	mu    sync.Mutex
	calls [][]domain.Message

	// Reply is returned on success. Err, when set, is returned wrapped in a
	// GenerationError. GenerateFunc, when set, overrides both.
	Reply        string
	Err          error
	GenerateFunc func(ctx context.Context, messages []domain.Message) (string, error)
}

// NewMockGateway creates a mock gateway that replies with the given text.
func NewMockGateway(reply string) *MockGateway {
	return &MockGateway{Reply: reply}
}

var _ Gateway = (*MockGateway)(nil)

// Generate records the call and returns the scripted result.
func (m *MockGateway) Generate(ctx context.Context, messages []domain.Message) (string, error) {
	m.mu.Lock()
	recorded := make([]domain.Message, len(messages))
	copy(recorded, messages)
	m.calls = append(m.calls, recorded)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, messages)
	}
	if m.Err != nil {
		return "", &GenerationError{Err: m.Err}
	}
	return m.Reply, nil
}

// Calls returns a copy of the recorded calls in order.
func (m *MockGateway) Calls() [][]domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([][]domain.Message, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns how many times Generate was invoked.
func (m *MockGateway) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
