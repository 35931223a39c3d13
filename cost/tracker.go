package cost

import (
	"math"
	"time"

	"github.com/google/uuid"

	"nanoagent/model"
)

// UsageRecord represents a single provider response's usage.
type UsageRecord struct {
	ID             string    `json:"id"`
	InvocationID   string    `json:"invocation_id"`
	Provider       string    `json:"provider"`
	Model          string    `json:"model"`
	InputTokens    int       `json:"input_tokens"`
	OutputTokens   int       `json:"output_tokens"`
	TotalTokens    int       `json:"total_tokens"`
	InputCost      float64   `json:"input_cost"`
	OutputCost     float64   `json:"output_cost"`
	TotalCost      float64   `json:"total_cost"`
	PricingUnknown bool      `json:"pricing_unknown,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Increment is the outcome of recording one response.
type Increment struct {
	Cost           float64
	PricingUnknown bool
}

// Tracker accumulates usage and estimated cost for one invocation.
// Not safe for concurrent use; an agent run is single-threaded.
type Tracker struct {
	invocationID string
	records      []UsageRecord
	usage        model.Usage
	totalCost    float64
	unknown      bool
}

// NewTracker creates a Tracker for one invocation. invocationID ties the
// usage records of a run together; pass "" to have one generated.
func NewTracker(invocationID string) *Tracker {
	if invocationID == "" {
		invocationID = uuid.New().String()
	}
	return &Tracker{invocationID: invocationID}
}

// InvocationID returns the id shared by this tracker's records.
func (t *Tracker) InvocationID() string {
	return t.invocationID
}

// Record accounts for one provider response and returns the incremental
// cost. A model missing from the price table is priced at zero and the
// increment (and the tracker) is flagged PricingUnknown instead of
// failing: cost estimation is best-effort telemetry, not a blocking
// concern. Local Ollama models are zero-cost by definition and are not
// flagged.
func (t *Tracker) Record(provider, modelID string, usage model.Usage) Increment {
	pricing, known := GetModelPricing(modelID)
	if provider == "ollama" {
		pricing, known = ModelPricing{}, true
	}

	inputMicro := roundMicro(float64(usage.InputTokens) / 1000.0 * pricing.InputPer1K)
	outputMicro := roundMicro(float64(usage.OutputTokens) / 1000.0 * pricing.OutputPer1K)
	totalMicro := inputMicro + outputMicro

	rec := UsageRecord{
		ID:             uuid.New().String(),
		InvocationID:   t.invocationID,
		Provider:       provider,
		Model:          modelID,
		InputTokens:    usage.InputTokens,
		OutputTokens:   usage.OutputTokens,
		TotalTokens:    usage.Total(),
		InputCost:      microToUSD(inputMicro),
		OutputCost:     microToUSD(outputMicro),
		TotalCost:      microToUSD(totalMicro),
		PricingUnknown: !known,
		Timestamp:      time.Now(),
	}

	t.records = append(t.records, rec)
	t.usage.Add(usage)
	t.totalCost += rec.TotalCost
	if !known {
		t.unknown = true
	}

	return Increment{Cost: rec.TotalCost, PricingUnknown: !known}
}

// Usage returns the accumulated token counts.
func (t *Tracker) Usage() model.Usage {
	return t.usage
}

// TotalCost returns the accumulated estimated cost in USD. The total is
// the running sum of the per-record costs, so it equals what a caller
// summing the returned increments in order would compute.
func (t *Tracker) TotalCost() float64 {
	return t.totalCost
}

// PricingUnknown reports whether any recorded response used the fallback
// rate.
func (t *Tracker) PricingUnknown() bool {
	return t.unknown
}

// Records returns the usage records in recording order.
func (t *Tracker) Records() []UsageRecord {
	return t.records
}

// roundMicro converts USD to the nearest micro-USD.
func roundMicro(usd float64) int64 {
	return int64(math.Round(usd * 1e6))
}

func microToUSD(micro int64) float64 {
	return float64(micro) / 1e6
}
