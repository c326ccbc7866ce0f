package llm

import (
	"context"
)

// MockClient is a configurable TextGenerator for tests.
// Set the function fields to control behavior.
type MockClient struct {
	// GenerateTextFunc is called when GenerateText is invoked.
	// If nil, returns empty string and nil error.
	GenerateTextFunc func(ctx context.Context, system, prompt string, temperature float32) (string, error)

	// GenerateJSONFunc is called when GenerateJSON is invoked.
	// If nil, returns empty string and nil error.
	GenerateJSONFunc func(ctx context.Context, system, prompt string, temperature float32) (string, error)

	// Call tracking for verification
	GenerateTextCalls int
	GenerateJSONCalls int
}

// NewMockClient creates a new mock client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// GenerateText implements TextGenerator.
func (m *MockClient) GenerateText(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	m.GenerateTextCalls++
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, system, prompt, temperature)
	}
	return "", nil
}

// GenerateJSON implements TextGenerator.
func (m *MockClient) GenerateJSON(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	m.GenerateJSONCalls++
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, system, prompt, temperature)
	}
	return "", nil
}

// Reset clears call tracking counters.
func (m *MockClient) Reset() {
	m.GenerateTextCalls = 0
	m.GenerateJSONCalls = 0
}

// Ensure MockClient implements TextGenerator at compile time.
var _ TextGenerator = (*MockClient)(nil)
