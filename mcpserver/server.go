// Package mcpserver exposes the agent over the Model Context Protocol.
//
// This is the composition root for MCP hosts: it wires configuration,
// provider construction and the agent loop behind a single tool,
// prompt_nano_agent, served over stdio. Execution failures come back as
// success=false results in the tool payload, not as protocol errors, so
// hosts always get the partial token and cost accounting.
package mcpserver

import (
	"context"
	"encoding/json"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"nanoagent/agent"
	"nanoagent/config"
	"nanoagent/model"
	"nanoagent/provider"
)

// Version is set at build time via ldflags.
var Version = "dev"

// PromptToolName is the single tool exposed to MCP hosts.
const PromptToolName = "prompt_nano_agent"

// Server wraps the MCP server with the resolved configuration.
type Server struct {
	cfg *config.Config
	mcp *server.MCPServer
}

// New creates the MCP server and registers the prompt tool.
func New(cfg *config.Config) *Server {
	s := &Server{cfg: cfg}

	s.mcp = server.NewMCPServer(
		"nano-agent",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(
			"Executes a natural-language prompt with an autonomous file-system "+
				"agent. The agent runs in the server's working directory and can "+
				"read, write, edit and list files there."),
	)

	s.mcp.AddTool(promptToolDefinition(), s.handlePrompt)

	return s
}

// ServeStdio blocks serving MCP over stdin/stdout until the host closes
// the stream.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func promptToolDefinition() mcp.Tool {
	return mcp.NewTool(PromptToolName,
		mcp.WithDescription(
			"Execute a prompt with an autonomous agent that can read, write, "+
				"edit and list files in its working directory. Returns the final "+
				"answer plus token and cost accounting."),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The task for the agent to perform"),
		),
		mcp.WithString("provider",
			mcp.Description("Provider to use: openai (default), anthropic or ollama"),
		),
		mcp.WithString("model",
			mcp.Description("Model to use; defaults to the provider's default model"),
		),
	)
}

// handlePrompt resolves configuration, runs the agent loop and returns
// the ExecutionResult as JSON. Only a missing prompt argument is a
// protocol-level error; everything downstream reports through the
// result's success flag.
func (s *Server) handlePrompt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := req.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	providerID := req.GetString("provider", "")
	modelID := req.GetString("model", "")

	result := s.run(ctx, prompt, providerID, modelID)
	return resultText(result), nil
}

// run executes one agent invocation, converting every failure into a
// terminal ExecutionResult.
func (s *Server) run(ctx context.Context, prompt, providerID, modelID string) *model.ExecutionResult {
	profile, err := s.cfg.Resolve(providerID, modelID)
	if err != nil {
		return failedResult(err)
	}

	p, err := provider.NewProvider(provider.ConfigFromProfile(profile))
	if err != nil {
		return failedResult(err)
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return failedResult(model.NewConfigError("cannot determine working directory: %v", err))
	}

	executor := agent.NewExecutor(s.cfg, p, profile.ID)
	return executor.Execute(ctx, model.AgentRequest{
		Prompt:     prompt,
		Provider:   profile.ID,
		Model:      profile.Model,
		MaxTurns:   s.cfg.MaxTurns,
		WorkingDir: workingDir,
	})
}

func failedResult(err error) *model.ExecutionResult {
	return &model.ExecutionResult{
		Success:   false,
		Error:     err.Error(),
		ErrorKind: model.ErrorKind(err),
	}
}

func resultText(result *model.ExecutionResult) *mcp.CallToolResult {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error())
	}
	return mcp.NewToolResultText(string(data))
}
