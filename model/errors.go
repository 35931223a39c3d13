package model

import (
	"errors"
	"fmt"
)

// Error taxonomy for the prompt execution core.
//
// ConfigError and TurnLimitError always surface as terminal failures.
// ProviderError is terminal for the current execution (no automatic retry).
// ToolError is the one recoverable kind: the agent loop feeds it back into
// the transcript so the model can react, and it only becomes terminal if
// the turn limit is hit afterwards.

// ConfigError reports an unresolvable provider, model, or missing API key.
// It is raised before any network call is made.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Msg
}

// NewConfigError builds a ConfigError with a formatted message.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// ProviderErrorKind classifies failures of a provider call.
type ProviderErrorKind string

const (
	ProviderTimeout           ProviderErrorKind = "timeout"
	ProviderHTTPError         ProviderErrorKind = "http_error"
	ProviderMalformedResponse ProviderErrorKind = "malformed_response"
)

// ProviderError wraps a failure that occurred during a provider call.
type ProviderError struct {
	Kind     ProviderErrorKind
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (%s, %s): %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ToolErrorKind classifies failures of a tool call.
type ToolErrorKind string

const (
	ToolNotFound       ToolErrorKind = "not_found"
	ToolPathEscape     ToolErrorKind = "path_escape"
	ToolNoMatch        ToolErrorKind = "no_match"
	ToolAmbiguousMatch ToolErrorKind = "ambiguous_match"
	ToolUnknown        ToolErrorKind = "unknown_tool"
	ToolBadArguments   ToolErrorKind = "bad_arguments"
	ToolIOError        ToolErrorKind = "io_error"
)

// ToolError reports a failed tool call. Tool is the requested tool name.
type ToolError struct {
	Kind ToolErrorKind
	Tool string
	Msg  string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool error (%s, %s): %s", e.Tool, e.Kind, e.Msg)
}

// TurnLimitError is the loop safety valve: the model never produced a
// final textual answer within the allowed number of turns.
type TurnLimitError struct {
	MaxTurns int
}

func (e *TurnLimitError) Error() string {
	return fmt.Sprintf("turn limit exceeded: no final answer after %d turns", e.MaxTurns)
}

// ErrorKind returns the short machine-readable kind for err, used in
// ExecutionResult.ErrorKind and in CLI output. Unrecognized errors map to
// "internal".
func ErrorKind(err error) string {
	var (
		configErr   *ConfigError
		providerErr *ProviderError
		toolErr     *ToolError
		turnErr     *TurnLimitError
	)
	switch {
	case errors.As(err, &configErr):
		return "configuration_error"
	case errors.As(err, &providerErr):
		return "provider_error:" + string(providerErr.Kind)
	case errors.As(err, &toolErr):
		return "tool_error:" + string(toolErr.Kind)
	case errors.As(err, &turnErr):
		return "turn_limit_exceeded"
	default:
		return "internal"
	}
}
