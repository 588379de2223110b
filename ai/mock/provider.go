package mock

import "github.com/poiesic/doctrina/ai"

// MockProvider is a test double for ai.AIProvider.
type MockProvider struct {
	MockEmbedder  *MockEmbedder
	MockCompleter *MockCompleter
}

var _ ai.AIProvider = (*MockProvider)(nil)

// NewMockProvider creates a provider with default deterministic mocks.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		MockEmbedder:  NewMockEmbedder(),
		MockCompleter: NewMockCompleter(),
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.MockEmbedder
}

// Completer returns the mock completion service.
func (p *MockProvider) Completer() ai.Completer {
	return p.MockCompleter
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}
