package cost

import (
	"math"
	"testing"

	"nanoagent/model"
)

func TestRecordKnownModel(t *testing.T) {
	tr := NewTracker("")

	inc := tr.Record("openai", "gpt-5-mini", model.Usage{InputTokens: 1000, OutputTokens: 500})

	if inc.PricingUnknown {
		t.Error("gpt-5-mini is a known model")
	}
	// 1000 in @ 0.00025/1K + 500 out @ 0.002/1K
	want := 0.00025 + 0.001
	if math.Abs(inc.Cost-want) > 1e-9 {
		t.Errorf("incremental cost: got %v, want %v", inc.Cost, want)
	}
	if tr.PricingUnknown() {
		t.Error("tracker flagged unknown for a known model")
	}
}

func TestRecordUnknownModel(t *testing.T) {
	tr := NewTracker("")

	inc := tr.Record("openai", "gpt-99-experimental", model.Usage{InputTokens: 1000, OutputTokens: 1000})

	if !inc.PricingUnknown {
		t.Error("unknown model must be flagged")
	}
	if inc.Cost != 0 {
		t.Errorf("unknown model must use the zero-cost fallback, got %v", inc.Cost)
	}
	if !tr.PricingUnknown() {
		t.Error("tracker must carry the unknown flag")
	}
}

func TestRecordOllamaZeroCostKnown(t *testing.T) {
	tr := NewTracker("")

	inc := tr.Record("ollama", "llama3.1:latest", model.Usage{InputTokens: 5000, OutputTokens: 5000})

	if inc.Cost != 0 {
		t.Errorf("local models are free, got %v", inc.Cost)
	}
	if inc.PricingUnknown {
		t.Error("local models must not be flagged unknown")
	}
}

func TestTotalsExact(t *testing.T) {
	tr := NewTracker("")

	var sum float64
	for i := 0; i < 100; i++ {
		inc := tr.Record("anthropic", "claude-sonnet-4-5-20250929", model.Usage{InputTokens: 333, OutputTokens: 77})
		sum += inc.Cost
	}

	// Increments are integer micro-USD, so the float total must equal the
	// exact sum of the returned increments.
	if tr.TotalCost() != sum {
		t.Errorf("total %v != sum of increments %v", tr.TotalCost(), sum)
	}

	usage := tr.Usage()
	if usage.InputTokens != 33300 || usage.OutputTokens != 7700 {
		t.Errorf("usage totals: got %+v", usage)
	}
	if usage.Total() != 41000 {
		t.Errorf("total tokens: got %d", usage.Total())
	}
}

func TestRecordsShareInvocationID(t *testing.T) {
	tr := NewTracker("run-42")

	tr.Record("openai", "gpt-5-mini", model.Usage{InputTokens: 10, OutputTokens: 5})
	tr.Record("openai", "gpt-5-mini", model.Usage{InputTokens: 20, OutputTokens: 10})

	records := tr.Records()
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for i, rec := range records {
		if rec.InvocationID != "run-42" {
			t.Errorf("record %d invocation id: got %q", i, rec.InvocationID)
		}
		if rec.ID == "" {
			t.Errorf("record %d has no id", i)
		}
	}
	if records[0].ID == records[1].ID {
		t.Error("record ids must be unique")
	}
}

func TestNewTrackerGeneratesID(t *testing.T) {
	a := NewTracker("")
	b := NewTracker("")

	if a.InvocationID() == "" {
		t.Fatal("expected a generated invocation id")
	}
	if a.InvocationID() == b.InvocationID() {
		t.Error("generated invocation ids must differ")
	}
}

func TestGetModelPricing(t *testing.T) {
	tests := []struct {
		modelID string
		known   bool
	}{
		{"gpt-5", true},
		{"gpt-5-mini", true},
		{"claude-3-5-haiku-20241022", true},
		{"made-up-model", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.modelID, func(t *testing.T) {
			p, ok := GetModelPricing(tt.modelID)
			if ok != tt.known {
				t.Errorf("known: got %v, want %v", ok, tt.known)
			}
			if tt.known && p.InputPer1K <= 0 {
				t.Errorf("known model has no input price: %+v", p)
			}
		})
	}
}

func TestKnownModelsSorted(t *testing.T) {
	models := KnownModels()
	if len(models) == 0 {
		t.Fatal("pricing table is empty")
	}
	for i := 1; i < len(models); i++ {
		if models[i-1] >= models[i] {
			t.Errorf("not sorted at %d: %q >= %q", i, models[i-1], models[i])
		}
	}
}
