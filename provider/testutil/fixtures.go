package testutil

import (
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"nanoagent/model"
)

// SingleUserMessage returns a single user message for simple tests
func SingleUserMessage(content string) []model.Message {
	return []model.Message{
		{
			Role:      model.RoleUser,
			Content:   content,
			Timestamp: time.Now(),
		},
	}
}

// TestMCPTools returns sample MCP tools for testing
func TestMCPTools() []mcptypes.Tool {
	return []mcptypes.Tool{
		{
			Name:        "read_file",
			Description: "Read the contents of a file",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"path": map[string]any{
						"type":        "string",
						"description": "Path to the file, relative to the working directory",
					},
				},
				Required: []string{"path"},
			},
		},
		{
			Name:        "list_directory",
			Description: "List the entries of a directory",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"path": map[string]any{
						"type":        "string",
						"description": "Path to the directory, relative to the working directory",
					},
				},
			},
		},
	}
}

// TextResponse returns a final assistant response with the given text
func TextResponse(text string) *model.ChatResponse {
	return &model.ChatResponse{
		Text:  text,
		Usage: model.Usage{InputTokens: 20, OutputTokens: 10},
	}
}

// ToolCallResponse returns an assistant response requesting one tool call
func ToolCallResponse(id, name string, args map[string]any) *model.ChatResponse {
	return &model.ChatResponse{
		ToolCalls: []model.ToolCall{
			{ID: id, Name: name, Arguments: args},
		},
		Usage: model.Usage{InputTokens: 20, OutputTokens: 10},
	}
}
