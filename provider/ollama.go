package provider

import (
	"context"
	"fmt"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"nanoagent/model"
	"nanoagent/ollama"
)

// OllamaProvider wraps the ollama.Client to implement the Provider
// interface, converting between the transcript types and Ollama's API
// types.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a new Ollama provider instance. baseURL
// defaults to "http://localhost:11434"; no API key is needed.
func NewOllamaProvider(baseURL, modelName string) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{client: client}, nil
}

// Chat implements Provider.Chat with a single non-streaming chat request.
// Token counts come from Ollama's eval metrics.
func (p *OllamaProvider) Chat(ctx context.Context, messages []model.Message, tools []mcptypes.Tool) (*model.ChatResponse, error) {
	// Tool-incapable models get no tool definitions; sending them anyway
	// makes several Ollama model families error out or hallucinate calls.
	if len(tools) > 0 && !p.client.SupportsToolCalling() {
		tools = nil
	}

	messagesWithInstructions := messages
	if len(tools) > 0 {
		toolInstruction := model.SystemMessage(buildAnthropicToolInstructions(tools))
		messagesWithInstructions = append([]model.Message{toolInstruction}, messages...)
	}

	apiResp, err := p.client.ChatOnce(ctx,
		ConvertToOllamaMessages(messagesWithInstructions),
		ConvertMCPToolsToOllama(tools))
	if err != nil {
		return nil, fmt.Errorf("Ollama chat request failed: %w", err)
	}

	resp := &model.ChatResponse{
		Text: apiResp.Message.Content,
		Usage: model.Usage{
			InputTokens:  apiResp.Metrics.PromptEvalCount,
			OutputTokens: apiResp.Metrics.EvalCount,
		},
	}
	resp.ToolCalls = ConvertFromOllamaToolCalls(apiResp.Message.ToolCalls, func(i int) string {
		return fmt.Sprintf("ollama-call-%d", i)
	})

	return resp, nil
}

// ListModels implements Provider.ListModels.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	return p.client.ListModels(ctx)
}

// GetModel implements Provider.GetModel.
func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}

// SetModel implements Provider.SetModel.
func (p *OllamaProvider) SetModel(modelName string) {
	p.client.SetModel(modelName)
}

// Ping implements Provider.Ping.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}
