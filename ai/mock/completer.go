package mock

import (
	"context"
	"sync"
)

// Call records one completion request received by the mock.
type Call struct {
	Instruction string
	Input       string
}

// MockCompleter is a test double for ai.Completer. Responses are served from
// a scripted queue; once the queue is exhausted the last response repeats.
// It is safe for concurrent use.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set, bypassing the queue.
	CompleteFunc func(ctx context.Context, instruction, input string) (string, error)

	mu        sync.Mutex
	responses []string
	err       error
	calls     []Call
}

// NewMockCompleter creates a mock completer that answers every request with
// the given responses in order.
// Note: returns the concrete type to allow test assertions.
func NewMockCompleter(responses ...string) *MockCompleter {
	return &MockCompleter{responses: responses}
}

// FailWith makes every subsequent call return err instead of a response.
func (m *MockCompleter) FailWith(err error) *MockCompleter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Enqueue appends responses to the scripted queue.
func (m *MockCompleter) Enqueue(responses ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
}

// Complete serves the next scripted response and records the call.
func (m *MockCompleter) Complete(ctx context.Context, instruction, input string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Instruction: instruction, Input: input})
	fn := m.CompleteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, instruction, input)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "{}", nil
	}

	response := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return response, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the recorded calls in order.
func (m *MockCompleter) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]Call, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Reset clears the recorded calls, the queue and any scripted error.
func (m *MockCompleter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.responses = nil
	m.err = nil
	m.CompleteFunc = nil
}
