// Package testutil provides a scripted mock provider for agent tests.
package testutil

import (
	"context"
	"sync"

	"courtside/model"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// MockProvider implements model.Provider for testing. Responses are scripted
// in order: each Complete or Stream call consumes the next entry. When the
// script runs out, the last entry repeats.
type MockProvider struct {
	mu sync.Mutex

	// Script is the ordered list of rounds to play back. An entry with a
	// non-nil Err fails the call instead.
	Script []ScriptedRound

	// Calls records every request for assertions.
	Calls []RecordedCall

	currentModel string
	PingErr      error
}

// ScriptedRound is one playback entry.
type ScriptedRound struct {
	Completion *model.Completion
	Err        error

	// Chunks overrides how Stream feeds onDelta; when empty, the whole
	// Completion.Content is sent as a single chunk.
	Chunks []string
}

// RecordedCall captures one request the mock received.
type RecordedCall struct {
	Streamed bool
	Messages []model.Message
	Tools    []mcptypes.Tool
}

// NewMockProvider creates a mock with the given script.
func NewMockProvider(modelName string, script ...ScriptedRound) *MockProvider {
	return &MockProvider{
		Script:       script,
		currentModel: modelName,
	}
}

func (m *MockProvider) next(streamed bool, messages []model.Message, tools []mcptypes.Tool) ScriptedRound {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, RecordedCall{
		Streamed: streamed,
		Messages: model.CloneHistory(messages),
		Tools:    tools,
	})

	if len(m.Script) == 0 {
		return ScriptedRound{Completion: &model.Completion{}}
	}
	idx := len(m.Calls) - 1
	if idx >= len(m.Script) {
		idx = len(m.Script) - 1
	}
	return m.Script[idx]
}

// CallCount returns how many rounds the mock has served.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Complete implements model.Provider.
func (m *MockProvider) Complete(ctx context.Context, messages []model.Message, tools []mcptypes.Tool) (*model.Completion, error) {
	round := m.next(false, messages, tools)
	if round.Err != nil {
		return nil, round.Err
	}
	return round.Completion, nil
}

// Stream implements model.Provider.
func (m *MockProvider) Stream(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, onDelta model.StreamCallback) (*model.Completion, error) {
	round := m.next(true, messages, tools)

	if onDelta != nil {
		chunks := round.Chunks
		if len(chunks) == 0 && round.Completion != nil && round.Completion.Content != "" {
			chunks = []string{round.Completion.Content}
		}
		for _, chunk := range chunks {
			if err := onDelta(chunk); err != nil {
				return nil, err
			}
		}
	}

	// A round can stream partial chunks before failing.
	if round.Err != nil {
		return nil, round.Err
	}
	return round.Completion, nil
}

// GetModel implements model.Provider.
func (m *MockProvider) GetModel() string {
	return m.currentModel
}

// SetModel implements model.Provider.
func (m *MockProvider) SetModel(model string) {
	m.currentModel = model
}

// Ping implements model.Provider.
func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingErr
}
