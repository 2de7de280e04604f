package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model     string
		wantFound bool
		wantIn    float64
	}{
		{"gpt-4o-mini", true, 0.15},
		{"openai/gpt-4o-mini", true, 0.15},
		{"anthropic/claude-haiku-4-5", true, 1},
		{"google/gemini-2.0-flash", true, 0.1},
		{"meta-llama/llama-3-8b", false, 0},
		{"mock", false, 0},
	}
	for _, tt := range tests {
		c := LookupCost(tt.model)
		if (c != nil) != tt.wantFound {
			t.Errorf("LookupCost(%q) found = %v, want %v", tt.model, c != nil, tt.wantFound)
			continue
		}
		if c != nil && c.InputPerMTok != tt.wantIn {
			t.Errorf("LookupCost(%q).InputPerMTok = %v, want %v", tt.model, c.InputPerMTok, tt.wantIn)
		}
	}
}

func TestDefaultModelsArePriced(t *testing.T) {
	cfg := DefaultConfig()
	models := []string{
		resolveModel(cfg.Anthropic.Model, anthropicModels),
		resolveModel(cfg.OpenAI.Model, openaiModels),
		resolveModel(cfg.Gemini.Model, geminiModels),
		cfg.OpenRouter.Model,
	}
	for _, m := range models {
		if LookupCost(m) == nil {
			t.Errorf("default model %q has no price", m)
		}
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 0.15, OutputPerMTok: 0.6}
	got := c.Cost(1_000_000, 500_000)
	if math.Abs(got-0.45) > 1e-9 {
		t.Errorf("Cost = %v, want 0.45", got)
	}
}
