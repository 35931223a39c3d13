// Package agent implements the bounded agent loop at the core of the
// module: send the transcript to the provider, dispatch any requested
// tool calls, feed results back, repeat until the model produces a
// final text answer or the turn cap is hit.
//
// One execution moves through Idle -> AwaitingModel -> DispatchingTools
// -> AwaitingModel -> ... and ends in Done or Failed. There is no
// resumption and no retry; every invocation is a fresh run.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"nanoagent/config"
	"nanoagent/cost"
	"nanoagent/model"
	"nanoagent/provider"
	"nanoagent/toolbox"
)

// Executor drives the agent loop for one provider. It is safe to reuse
// across invocations with distinct working directories; each Execute
// call builds its own transcript and toolbox.
type Executor struct {
	Provider model.Provider
	// ProviderID is the resolved provider id ("openai", "anthropic",
	// "ollama"), used for cost attribution and error reporting.
	ProviderID string
	// RequestTimeout bounds each individual provider call, not the whole
	// run. Zero means the config default.
	RequestTimeout time.Duration
	// Tracker records usage per provider response. Optional; a fresh
	// tracker is created per run when nil.
	Tracker *cost.Tracker
}

// NewExecutor builds an Executor from a resolved configuration and a
// constructed provider.
func NewExecutor(cfg *config.Config, p model.Provider, providerID string) *Executor {
	return &Executor{
		Provider:       p,
		ProviderID:     providerID,
		RequestTimeout: cfg.RequestTimeout,
	}
}

// Execute runs the agent loop for one request and always returns a
// terminal result: failures are reported through Success/Error/ErrorKind,
// never as a Go error, so facades (CLI, MCP) render partial results
// uniformly.
func (e *Executor) Execute(ctx context.Context, req model.AgentRequest) *model.ExecutionResult {
	result := &model.ExecutionResult{}

	tracker := e.Tracker
	if tracker == nil {
		tracker = cost.NewTracker("")
	}

	tools, err := toolbox.New(req.WorkingDir)
	if err != nil {
		return e.fail(result, tracker, model.NewConfigError("working directory: %v", err))
	}

	maxTurns := clampMaxTurns(req.MaxTurns)
	timeout := e.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultTimeoutSeconds * time.Second
	}

	transcript := []model.Message{
		model.SystemMessage(systemPrompt(tools.Root())),
		model.UserMessage(req.Prompt),
	}
	definitions := tools.Definitions()

	for turn := 1; turn <= maxTurns; turn++ {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Agent] turn %d/%d, transcript %d messages", turn, maxTurns, len(transcript))
		}

		resp, err := e.chatOnce(ctx, timeout, transcript, definitions)
		result.TurnsUsed = turn
		if err != nil {
			return e.fail(result, tracker, err)
		}

		increment := tracker.Record(e.ProviderID, e.Provider.GetModel(), resp.Usage)
		if increment.PricingUnknown {
			result.PricingUnknown = true
		}

		if len(resp.ToolCalls) == 0 {
			result.FinalText = resp.Text
			result.Success = true
			return e.finish(result, tracker)
		}

		transcript = append(transcript, model.Message{
			Role:      model.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: resp.ToolCalls,
			Timestamp: time.Now(),
		})

		// Sequential dispatch in the order the provider returned the
		// calls; two calls touching the same file in one turn must not
		// race.
		for _, call := range resp.ToolCalls {
			result.ToolCallsMade = append(result.ToolCallsMade, call)
			output, toolErr := tools.Dispatch(call)
			if toolErr != nil {
				// Tool failures are recoverable: the model sees the error
				// text and may try again within the remaining turns.
				if config.DebugLog != nil {
					config.DebugLog.Printf("[Agent] tool %s failed: %v", call.Name, toolErr)
				}
				output = "ERROR: " + toolErr.Error()
			}
			transcript = append(transcript, model.ToolResultMessage(call.ID, output))
		}
	}

	return e.fail(result, tracker, &model.TurnLimitError{MaxTurns: maxTurns})
}

// chatOnce performs a single provider call under the per-call timeout and
// classifies any failure into the provider error taxonomy.
func (e *Executor) chatOnce(ctx context.Context, timeout time.Duration, transcript []model.Message, definitions []mcptypes.Tool) (*model.ChatResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := e.Provider.Chat(callCtx, transcript, definitions)
	if err != nil {
		return nil, &model.ProviderError{
			Kind:     classifyProviderError(callCtx, err),
			Provider: e.ProviderID,
			Err:      err,
		}
	}
	return resp, nil
}

// classifyProviderError maps a raw provider failure onto the error
// taxonomy: deadline expiry is a timeout, a response that arrived but
// could not be interpreted is malformed, everything else counts as an
// HTTP-level failure.
func classifyProviderError(callCtx context.Context, err error) model.ProviderErrorKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded:
		return model.ProviderTimeout
	case errors.Is(err, provider.ErrMalformedResponse):
		return model.ProviderMalformedResponse
	default:
		return model.ProviderHTTPError
	}
}

func (e *Executor) finish(result *model.ExecutionResult, tracker *cost.Tracker) *model.ExecutionResult {
	usage := tracker.Usage()
	result.InputTokens = usage.InputTokens
	result.OutputTokens = usage.OutputTokens
	result.TotalTokens = usage.Total()
	result.EstimatedCost = tracker.TotalCost()
	if tracker.PricingUnknown() {
		result.PricingUnknown = true
	}
	return result
}

func (e *Executor) fail(result *model.ExecutionResult, tracker *cost.Tracker, err error) *model.ExecutionResult {
	result.Success = false
	result.Error = err.Error()
	result.ErrorKind = model.ErrorKind(err)
	return e.finish(result, tracker)
}

// clampMaxTurns applies the default and the hard ceiling. The ceiling
// guarantees termination even against a misbehaving caller.
func clampMaxTurns(maxTurns int) int {
	if maxTurns <= 0 {
		return model.DefaultMaxTurns
	}
	if maxTurns > model.MaxTurnsCeiling {
		return model.MaxTurnsCeiling
	}
	return maxTurns
}

// systemPrompt describes the working environment to the model. Tool
// usage rules ride separately in per-provider instruction blocks.
func systemPrompt(workingDir string) string {
	return fmt.Sprintf(
		"You are an autonomous file-system agent. You complete the user's task "+
			"using the provided file tools, then answer with a concise summary of "+
			"what you did and found. All paths are relative to the working "+
			"directory: %s. Never ask questions; there is no interactive user.",
		workingDir)
}
