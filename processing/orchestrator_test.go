package processing

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/AraMammo/demodrop-sub000/scrape"
)

func siteFixture() scrape.WebsiteData {
	return scrape.FallbackWebsiteData("https://acme-tools.io")
}

func TestNormalizeEnhancedPrompt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"plain string", `"A cinematic demo video"`, "A cinematic demo video", true},
		{"nested under prompt", `{"prompt": "Nested prompt text"}`, "Nested prompt text", true},
		{"nested under text", `{"text": "Other nesting"}`, "Other nesting", true},
		{"nested under enhanced_prompt", `{"enhanced_prompt": "Deep text"}`, "Deep text", true},
		{"empty string", `""`, "", false},
		{"empty object", `{}`, "", false},
		{"null", `null`, "", false},
		{"unknown object reserialized", `{"scenes": ["a", "b"]}`, `{"scenes": ["a", "b"]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeEnhancedPrompt(json.RawMessage(tt.raw))
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeEnhancedPromptEmptyRaw(t *testing.T) {
	if _, ok := normalizeEnhancedPrompt(nil); ok {
		t.Error("nil raw message should be unusable")
	}
}

func TestGeneratePromptFallsBackToTemplate(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	req := demoRequest()
	result := GeneratePrompt(context.Background(), req)

	if result.Source != SourceTemplate {
		t.Fatalf("Source = %q, want template fallback without an API key", result.Source)
	}
	if result.Prompt != BuildBasicPrompt(req) {
		t.Error("fallback prompt should be the basic builder's output")
	}
}

func TestAnalyzeProductFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	site := siteFixture()
	product := AnalyzeProduct(context.Background(), site, site.Parsed)

	if product.WhatItDoes == "" || product.ProblemSolved == "" {
		t.Errorf("fallback understanding has empty core fields: %+v", product)
	}
	if len(product.Workflow) < 3 || len(product.Workflow) > 4 {
		t.Errorf("workflow should have 3-4 steps, got %d", len(product.Workflow))
	}
	if len(product.Features) > 3 {
		t.Errorf("features capped at 3, got %d", len(product.Features))
	}
	if len(product.Examples) > 2 {
		t.Errorf("examples capped at 2, got %d", len(product.Examples))
	}
}

func TestBackfillUnderstandingFieldByField(t *testing.T) {
	fallback := fallbackUnderstanding(siteFixture(), siteFixture().Parsed)
	partial := ProductUnderstanding{WhatItDoes: "From the model"}

	merged := backfillUnderstanding(partial, fallback)
	if merged.WhatItDoes != "From the model" {
		t.Error("model-provided field overwritten")
	}
	if merged.ProblemSolved != fallback.ProblemSolved {
		t.Error("missing field not backfilled")
	}
}
