package llm

import (
	"context"
	"sync"
)

// MockClient lets tests run without calling a real model.
type MockClient struct {
	Response string
	Err      error

	mu       sync.Mutex
	Requests []ChatRequest
}

func (m *MockClient) Complete(_ context.Context, req ChatRequest) (string, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()
	return m.Response, m.Err
}

// Calls returns how many completions were requested.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
