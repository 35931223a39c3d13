package agent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"nanoagent/model"
	"nanoagent/provider"
	"nanoagent/provider/testutil"
)

func newTestExecutor(p model.Provider) *Executor {
	return &Executor{
		Provider:       p,
		ProviderID:     "openai",
		RequestTimeout: 5 * time.Second,
	}
}

func TestExecuteDirectAnswer(t *testing.T) {
	mock := testutil.NewScriptedProvider("gpt-5-mini",
		testutil.TextResponse("The answer is 42."),
	)
	e := newTestExecutor(mock)

	result := e.Execute(context.Background(), model.AgentRequest{
		Prompt:     "What is six times seven?",
		WorkingDir: t.TempDir(),
	})

	if !result.Success {
		t.Fatalf("expected success, got error %q (%s)", result.Error, result.ErrorKind)
	}
	if result.FinalText != "The answer is 42." {
		t.Errorf("final text: got %q", result.FinalText)
	}
	if result.TurnsUsed != 1 {
		t.Errorf("turns used: got %d, want 1", result.TurnsUsed)
	}
	if result.TotalTokens != 30 {
		t.Errorf("total tokens: got %d, want 30", result.TotalTokens)
	}
	if len(result.ToolCallsMade) != 0 {
		t.Errorf("tool calls made: got %d, want 0", len(result.ToolCallsMade))
	}
}

func TestExecuteWriteThenConfirm(t *testing.T) {
	dir := t.TempDir()
	mock := testutil.NewScriptedProvider("gpt-5-mini",
		testutil.ToolCallResponse("call-1", "write_file", map[string]any{
			"path":     "notes/hello.txt",
			"contents": "hello world",
		}),
		testutil.TextResponse("Created notes/hello.txt."),
	)
	e := newTestExecutor(mock)

	result := e.Execute(context.Background(), model.AgentRequest{
		Prompt:     "Create notes/hello.txt containing hello world",
		WorkingDir: dir,
	})

	if !result.Success {
		t.Fatalf("expected success, got error %q (%s)", result.Error, result.ErrorKind)
	}
	if result.TurnsUsed != 2 {
		t.Errorf("turns used: got %d, want 2", result.TurnsUsed)
	}
	if len(result.ToolCallsMade) != 1 || result.ToolCallsMade[0].Name != "write_file" {
		t.Fatalf("tool calls made: got %+v", result.ToolCallsMade)
	}

	data, err := os.ReadFile(filepath.Join(dir, "notes", "hello.txt"))
	if err != nil {
		t.Fatalf("written file missing: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("file contents: got %q", data)
	}

	// The second provider call must see the assistant tool call and its
	// result in the transcript.
	if len(mock.ChatCalls) != 2 {
		t.Fatalf("provider called %d times, want 2", len(mock.ChatCalls))
	}
	second := mock.ChatCalls[1]
	last := second[len(second)-1]
	if last.Role != model.RoleTool || last.ToolCallID != "call-1" {
		t.Errorf("last transcript message = %+v, want tool result for call-1", last)
	}
}

func TestExecuteToolErrorFedBack(t *testing.T) {
	mock := testutil.NewScriptedProvider("gpt-5-mini",
		testutil.ToolCallResponse("call-1", "read_file", map[string]any{"path": "missing.txt"}),
		testutil.TextResponse("The file does not exist."),
	)
	e := newTestExecutor(mock)

	result := e.Execute(context.Background(), model.AgentRequest{
		Prompt:     "Read missing.txt",
		WorkingDir: t.TempDir(),
	})

	if !result.Success {
		t.Fatalf("tool errors must be recoverable, got error %q (%s)", result.Error, result.ErrorKind)
	}

	second := mock.ChatCalls[1]
	last := second[len(second)-1]
	if last.Role != model.RoleTool {
		t.Fatalf("expected tool result message, got role %q", last.Role)
	}
	if !strings.HasPrefix(last.Content, "ERROR:") {
		t.Errorf("tool result should carry the error text, got %q", last.Content)
	}
}

func TestExecuteTurnLimit(t *testing.T) {
	// A model that never stops calling tools must hit the cap.
	mock := testutil.NewScriptedProvider("gpt-5-mini",
		testutil.ToolCallResponse("call-1", "list_directory", map[string]any{}),
	)
	e := newTestExecutor(mock)

	result := e.Execute(context.Background(), model.AgentRequest{
		Prompt:     "Loop forever",
		MaxTurns:   3,
		WorkingDir: t.TempDir(),
	})

	if result.Success {
		t.Fatal("expected failure at the turn limit")
	}
	if result.ErrorKind != "turn_limit_exceeded" {
		t.Errorf("error kind: got %q, want turn_limit_exceeded", result.ErrorKind)
	}
	if result.TurnsUsed != 3 {
		t.Errorf("turns used: got %d, want 3", result.TurnsUsed)
	}
	// Partial results survive the failure.
	if len(result.ToolCallsMade) != 3 {
		t.Errorf("tool calls made: got %d, want 3", len(result.ToolCallsMade))
	}
	if result.TotalTokens == 0 {
		t.Error("expected accumulated token counts in the partial result")
	}
}

func TestExecuteProviderErrorTerminal(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedKind string
	}{
		{
			name:         "http error",
			err:          fmt.Errorf("POST /chat/completions: 500 Internal Server Error"),
			expectedKind: "provider_error:http_error",
		},
		{
			name:         "malformed response",
			err:          fmt.Errorf("%w: no choices", provider.ErrMalformedResponse),
			expectedKind: "provider_error:malformed_response",
		},
		{
			name:         "timeout",
			err:          fmt.Errorf("request failed: %w", context.DeadlineExceeded),
			expectedKind: "provider_error:timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockProvider("gpt-5-mini")
			calls := 0
			mock.ChatFunc = func(ctx context.Context, messages []model.Message, tools []mcptypes.Tool) (*model.ChatResponse, error) {
				calls++
				return nil, tt.err
			}
			e := newTestExecutor(mock)

			result := e.Execute(context.Background(), model.AgentRequest{
				Prompt:     "Hello",
				WorkingDir: t.TempDir(),
			})

			if result.Success {
				t.Fatal("expected failure")
			}
			if result.ErrorKind != tt.expectedKind {
				t.Errorf("error kind: got %q, want %q", result.ErrorKind, tt.expectedKind)
			}
			if calls != 1 {
				t.Errorf("provider called %d times, want 1 (no retry)", calls)
			}
		})
	}
}

func TestExecuteInvalidWorkingDir(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-5-mini")
	e := newTestExecutor(mock)

	result := e.Execute(context.Background(), model.AgentRequest{
		Prompt:     "Hello",
		WorkingDir: filepath.Join(t.TempDir(), "does-not-exist"),
	})

	if result.Success {
		t.Fatal("expected failure for missing working directory")
	}
	if result.ErrorKind != "configuration_error" {
		t.Errorf("error kind: got %q, want configuration_error", result.ErrorKind)
	}
	if len(mock.ChatCalls) != 0 {
		t.Error("provider must not be called when the working directory is invalid")
	}
}

func TestClampMaxTurns(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"zero uses default", 0, model.DefaultMaxTurns},
		{"negative uses default", -5, model.DefaultMaxTurns},
		{"in range passes through", 7, 7},
		{"above ceiling clamps", 100, model.MaxTurnsCeiling},
		{"ceiling passes through", model.MaxTurnsCeiling, model.MaxTurnsCeiling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampMaxTurns(tt.input); got != tt.expected {
				t.Errorf("clampMaxTurns(%d) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}
