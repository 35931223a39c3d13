package provider

import (
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// buildOpenAIToolInstructions creates tool instructions for OpenAI models.
// GPT models prefer brief, direct guidance.
func buildOpenAIToolInstructions(tools []mcptypes.Tool) string {
	toolNames := []string{}
	for _, tool := range tools {
		toolNames = append(toolNames, tool.Name)
	}

	return strings.Join([]string{
		"TOOLS: " + strings.Join(toolNames, ", "),
		"",
		"You are completing a task autonomously. When a step requires a tool:",
		"1. Determine which tool is needed",
		"2. Check that you have all required parameters",
		"3. Execute the tool IMMEDIATELY without narration",
		"",
		"All file paths are relative to the working directory.",
		"When the task is complete, respond with the final answer and no tool calls.",
	}, "\n")
}

// buildAnthropicToolInstructions creates tool instructions for Claude
// models. Also reused for Ollama, whose local models need the most
// explicit guidance. Kept separate from the OpenAI variant so the two
// can be tuned independently.
func buildAnthropicToolInstructions(tools []mcptypes.Tool) string {
	toolNames := []string{}
	for _, tool := range tools {
		toolNames = append(toolNames, tool.Name)
	}

	return strings.Join([]string{
		"TOOLS: " + strings.Join(toolNames, ", "),
		"",
		"You are completing a task autonomously. When a step requires a tool:",
		"1. Determine which tool is needed",
		"2. Check that you have all required parameters",
		"3. Execute the tool IMMEDIATELY without narration",
		"",
		"DO NOT:",
		"- List available tools",
		"- Ask the user questions; there is no user to answer them",
		"",
		"All file paths are relative to the working directory.",
		"When the task is complete, respond with the final answer and no tool calls.",
	}, "\n")
}
