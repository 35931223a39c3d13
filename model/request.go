package model

// Agent loop bounds. MaxTurnsCeiling is a hard cap applied regardless of
// what the caller asks for, so the loop terminates even against a
// misbehaving model or caller.
const (
	DefaultMaxTurns = 10
	MaxTurnsCeiling = 20
)

// AgentRequest carries everything one invocation of the agent loop needs.
// It is built once per invocation and not mutated afterwards.
type AgentRequest struct {
	Prompt     string
	Provider   string // resolved provider id: "openai", "anthropic", "ollama"
	Model      string
	MaxTurns   int
	WorkingDir string
}

// ExecutionResult is the complete, terminal outcome of one invocation.
type ExecutionResult struct {
	FinalText     string  `json:"final_text"`
	TurnsUsed     int     `json:"turns_used"`
	InputTokens   int     `json:"input_tokens"`
	OutputTokens  int     `json:"output_tokens"`
	TotalTokens   int     `json:"total_tokens"`
	EstimatedCost float64 `json:"estimated_cost"`
	// PricingUnknown is set when any response was priced with the zero-cost
	// fallback because the model has no pricing table entry.
	PricingUnknown bool       `json:"pricing_unknown,omitempty"`
	ToolCallsMade  []ToolCall `json:"tool_calls_made,omitempty"`
	Success        bool       `json:"success"`
	Error          string     `json:"error,omitempty"`
	ErrorKind      string     `json:"error_kind,omitempty"`
}
