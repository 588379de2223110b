package mock

import "context"

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via a function field.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, Complete returns an empty string.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	// Prompts records every prompt the mock has received.
	Prompts []string
}

// NewMockCompleter creates a mock completer.
// Note: Returns concrete type to allow test assertions via function fields.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete records the prompt and returns the injected response.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "", nil
}
