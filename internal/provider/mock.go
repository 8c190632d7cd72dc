package provider

import (
	"context"
	"sync"
)

// Mock is a deterministic Provider for testing.
type Mock struct {
	// Response is the fixed text returned by Generate.
	// If empty, the instruction is echoed back.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	mu    sync.Mutex
	last  GenerateRequest
	calls int
}

// NewMock creates a mock provider with the given fixed response.
func NewMock(response string) *Mock {
	return &Mock{Response: response}
}

// NewMockWithError creates a mock provider that always fails with err.
func NewMockWithError(err error) *Mock {
	return &Mock{Error: err}
}

// Generate records the request and returns the configured outcome.
func (m *Mock) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	m.mu.Lock()
	m.last = req
	m.calls++
	m.mu.Unlock()

	if m.Error != nil {
		return "", m.Error
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return req.Instruction, nil
}

// LastRequest returns the most recent request passed to Generate.
func (m *Mock) LastRequest() GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Calls returns how many times Generate was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
