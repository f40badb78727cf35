package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content string
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for tests and offline runs.
// It returns canned responses in FIFO order and records all requests.
// With Repeat set, the last response is served again once the queue drains.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	last      *MockResponse
	Repeat    bool
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewMockProviderFromFile serves the contents of path for every request.
// It lets a saved model response be replayed through the full pipeline.
func NewMockProviderFromFile(path string) (*MockProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mock response: %w", err)
	}
	m := NewMockProvider(MockResponse{Content: string(data)})
	m.Repeat = true
	return m, nil
}

// Generate returns the next canned response or ErrProviderUnavailable if
// nothing is left to serve.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
		m.last = &resp
	case m.Repeat && m.last != nil:
		resp = *m.last
	default:
		return nil, &ErrProviderUnavailable{Err: errors.New("mock response queue is empty")}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
