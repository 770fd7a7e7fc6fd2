package services

import (
	"context"
	"sync"
)

// MockGateway is a DialogueSender for testing.
type MockGateway struct {
	SendFunc func(ctx context.Context, prompt string) (string, error)

	// Track calls for testing
	SendCalls []string

	mu sync.Mutex
}

// NewMockGateway creates a mock that replies "Mock response" by default.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		SendCalls: make([]string, 0),
	}
}

// Send records the prompt and delegates to SendFunc when set.
func (m *MockGateway) Send(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.SendCalls = append(m.SendCalls, prompt)
	fn := m.SendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	return "Mock response", nil
}

// SetError sets up the mock to fail every Send with err.
func (m *MockGateway) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", err
	}
}

// SetReply sets up the mock to return a fixed reply.
func (m *MockGateway) SetReply(reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendFunc = func(ctx context.Context, prompt string) (string, error) {
		return reply, nil
	}
}

// Calls returns a copy of recorded prompts.
func (m *MockGateway) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.SendCalls))
	copy(out, m.SendCalls)
	return out
}
