package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "config error",
			err:      NewConfigError("unknown provider %q", "mistral"),
			expected: "configuration_error",
		},
		{
			name:     "provider timeout",
			err:      &ProviderError{Kind: ProviderTimeout, Provider: "openai", Err: errors.New("deadline")},
			expected: "provider_error:timeout",
		},
		{
			name:     "provider http error",
			err:      &ProviderError{Kind: ProviderHTTPError, Provider: "openai", Err: errors.New("500")},
			expected: "provider_error:http_error",
		},
		{
			name:     "malformed response",
			err:      &ProviderError{Kind: ProviderMalformedResponse, Provider: "anthropic", Err: errors.New("empty")},
			expected: "provider_error:malformed_response",
		},
		{
			name:     "tool path escape",
			err:      &ToolError{Kind: ToolPathEscape, Tool: "read_file", Msg: "escapes"},
			expected: "tool_error:path_escape",
		},
		{
			name:     "tool io failure",
			err:      &ToolError{Kind: ToolIOError, Tool: "read_file", Msg: "permission denied"},
			expected: "tool_error:io_error",
		},
		{
			name:     "turn limit",
			err:      &TurnLimitError{MaxTurns: 10},
			expected: "turn_limit_exceeded",
		},
		{
			name:     "wrapped provider error",
			err:      fmt.Errorf("run failed: %w", &ProviderError{Kind: ProviderTimeout, Provider: "ollama", Err: errors.New("slow")}),
			expected: "provider_error:timeout",
		},
		{
			name:     "unrecognized error",
			err:      errors.New("something else"),
			expected: "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorKind(tt.err); got != tt.expected {
				t.Errorf("ErrorKind() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &ProviderError{Kind: ProviderHTTPError, Provider: "openai", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("ProviderError must unwrap to its cause")
	}
}

func TestUsageAccumulation(t *testing.T) {
	var total Usage
	total.Add(Usage{InputTokens: 100, OutputTokens: 50})
	total.Add(Usage{InputTokens: 200, OutputTokens: 75})

	if total.InputTokens != 300 || total.OutputTokens != 125 {
		t.Errorf("accumulated usage: %+v", total)
	}
	if total.Total() != 425 {
		t.Errorf("total: got %d", total.Total())
	}
}
