package llm

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
)

// MockResponse is one scripted reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order and records every request.
// Replies with content go through the same schema check as a real provider,
// so a script can exercise invalid-response handling.
//
// When the script runs out, Respond is used if set; otherwise Generate
// returns an *UnavailableError.
type MockProvider struct {
	Respond func(Request) MockResponse

	mu     sync.Mutex
	script []MockResponse
	calls  []Request
}

// NewMockProvider returns a provider that replays responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{script: responses}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.calls = append(m.calls, req)
	var (
		next MockResponse
		ok   bool
	)
	if len(m.script) > 0 {
		next, m.script, ok = m.script[0], m.script[1:], true
	} else if m.Respond != nil {
		next, ok = m.Respond(req), true
	}
	m.mu.Unlock()

	if !ok {
		return nil, &UnavailableError{}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	if req.Schema != nil {
		if err := schemas.validate(req.Schema, next.Content); err != nil {
			return nil, err
		}
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// Push appends replies to the script.
func (m *MockProvider) Push(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, responses...)
}

// Calls returns the requests seen so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}
