package testutil

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"nanoagent/model"
)

// MockProvider implements the model.Provider interface for testing
type MockProvider struct {
	// Configurable responses
	ChatFunc       func(ctx context.Context, messages []model.Message, tools []mcptypes.Tool) (*model.ChatResponse, error)
	ListModelsFunc func(ctx context.Context) ([]model.ModelInfo, error)
	PingFunc       func(ctx context.Context) error

	// Recorded calls
	ChatCalls [][]model.Message

	// State
	currentModel string
}

// NewMockProvider creates a mock provider with default implementations
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{
		currentModel: modelName,
	}
	mock.ChatFunc = mock.defaultChat
	mock.ListModelsFunc = mock.defaultListModels
	mock.PingFunc = mock.defaultPing
	return mock
}

// NewScriptedProvider creates a mock provider that returns the given
// responses in order, one per Chat call. Calls past the end of the
// script repeat the last response.
func NewScriptedProvider(modelName string, responses ...*model.ChatResponse) *MockProvider {
	mock := NewMockProvider(modelName)
	i := 0
	mock.ChatFunc = func(ctx context.Context, messages []model.Message, tools []mcptypes.Tool) (*model.ChatResponse, error) {
		resp := responses[i]
		if i < len(responses)-1 {
			i++
		}
		return resp, nil
	}
	return mock
}

func (m *MockProvider) defaultChat(ctx context.Context, messages []model.Message, tools []mcptypes.Tool) (*model.ChatResponse, error) {
	return &model.ChatResponse{
		Text:  "Mock response",
		Usage: model.Usage{InputTokens: 10, OutputTokens: 5},
	}, nil
}

func (m *MockProvider) defaultListModels(ctx context.Context) ([]model.ModelInfo, error) {
	return []model.ModelInfo{
		{Name: "mock-model-1", Provider: "mock", Size: 1000},
		{Name: "mock-model-2", Provider: "mock", Size: 2000},
	}, nil
}

func (m *MockProvider) defaultPing(ctx context.Context) error {
	return nil
}

func (m *MockProvider) Chat(ctx context.Context, messages []model.Message, tools []mcptypes.Tool) (*model.ChatResponse, error) {
	m.ChatCalls = append(m.ChatCalls, messages)
	return m.ChatFunc(ctx, messages, tools)
}

func (m *MockProvider) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	return m.ListModelsFunc(ctx)
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

func (m *MockProvider) SetModel(model string) {
	m.currentModel = model
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}
