package model

import "time"

// Conversation roles used in the transcript.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents a single turn in the conversation transcript.
//
// An assistant message may carry tool calls requested by the model.
// A tool message carries the result of one tool call back to the model;
// ToolCallID correlates it with the originating call for providers that
// require the pairing (OpenAI, Anthropic).
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Timestamp  time.Time
}

// ToolCall is a structured request from the model to invoke one of the
// registered tools. Arguments is the decoded JSON object from the provider.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content, Timestamp: time.Now()}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content, Timestamp: time.Now()}
}

// ToolResultMessage builds a tool-role message carrying the result (or
// error text) of the tool call identified by callID.
func ToolResultMessage(callID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID, Timestamp: time.Now()}
}
