// Package cost accumulates token usage and estimated spend across the
// provider calls of an agent run, and renders usage records as CSV.
//
// Cost figures are estimates derived from a static price table, never
// billing authority. Each increment is rounded to the nearest micro-USD
// before it is reported, and the running total is the sum of those
// reported increments, so the total always matches what a caller adding
// up the increments would see.
package cost

import "sort"

// ModelPricing holds pricing information per 1K tokens in USD.
type ModelPricing struct {
	InputPer1K  float64
	OutputPer1K float64
}

// Pricing as of 2025. One entry per known cloud model; Ollama models run
// locally and are priced at zero without being flagged unknown.
var pricingTable = map[string]ModelPricing{
	// OpenAI
	"gpt-5":       {InputPer1K: 0.00125, OutputPer1K: 0.01},
	"gpt-5-mini":  {InputPer1K: 0.00025, OutputPer1K: 0.002},
	"gpt-5-nano":  {InputPer1K: 0.00005, OutputPer1K: 0.0004},
	"gpt-4o":      {InputPer1K: 0.005, OutputPer1K: 0.015},
	"gpt-4o-mini": {InputPer1K: 0.00015, OutputPer1K: 0.0006},

	// Anthropic
	"claude-sonnet-4-5-20250929": {InputPer1K: 0.003, OutputPer1K: 0.015},
	"claude-3-5-haiku-20241022":  {InputPer1K: 0.0008, OutputPer1K: 0.004},
	"claude-3-opus-20240229":     {InputPer1K: 0.015, OutputPer1K: 0.075},
	"claude-3-haiku-20240307":    {InputPer1K: 0.00025, OutputPer1K: 0.00125},
}

// GetModelPricing returns pricing for a model and whether the model is in
// the table. Callers use the second return to flag estimates made with
// the zero-cost fallback.
func GetModelPricing(modelID string) (ModelPricing, bool) {
	p, ok := pricingTable[modelID]
	return p, ok
}

// KnownModels returns the ids of all models in the pricing table, sorted.
func KnownModels() []string {
	models := make([]string, 0, len(pricingTable))
	for id := range pricingTable {
		models = append(models, id)
	}
	sort.Strings(models)
	return models
}
