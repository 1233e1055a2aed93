package processing

import (
	"strings"
	"testing"
)

func demoRequest() PromptRequest {
	preset, _ := LookupPreset("product-demo")
	return PromptRequest{
		Title:       "Acme Tools",
		Description: "Acme Tools keeps small workshops organized.",
		Industry:    "Technology",
		Audience:    "small workshop owners",
		Features:    []string{"Inventory tracking", "Job scheduling", "Invoicing"},
		Colors:      []string{"#1E40AF", "#3B82F6", "#F9FAFB"},
		Tone:        "confident",
		VisualStyle: "modern",
		KeyMessage:  "Run your workshop, not your paperwork.",
		Product: ProductUnderstanding{
			WhatItDoes:    "Tracks tools, jobs and invoices in one place.",
			ProblemSolved: "Workshop owners lose hours to paper records.",
			Workflow:      []string{"Scan a tool", "Assign it to a job", "Invoice the customer"},
			Features:      []string{"Inventory tracking", "Job scheduling", "Invoicing"},
		},
		Preset:   preset,
		Duration: preset.Duration,
	}
}

func TestBuildBasicPromptIdempotent(t *testing.T) {
	req := demoRequest()
	first := BuildBasicPrompt(req)
	for i := 0; i < 5; i++ {
		if got := BuildBasicPrompt(req); got != first {
			t.Fatal("BuildBasicPrompt is not deterministic for identical inputs")
		}
	}
}

func TestBuildBasicPromptContents(t *testing.T) {
	req := demoRequest()
	prompt := BuildBasicPrompt(req)

	for _, want := range []string{
		"Acme Tools",
		"#1E40AF, #3B82F6, #F9FAFB",
		"Tone: confident",
		"at most 48 words", // WordBudget(24)
		"0-3s Hook",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildBasicPromptCustomInstructions(t *testing.T) {
	req := demoRequest()
	req.CustomInstructions = "Avoid showing faces."
	prompt := BuildBasicPrompt(req)
	if !strings.Contains(prompt, "Avoid showing faces.") {
		t.Error("custom instructions not carried into the prompt")
	}
}

func TestBuildBasicPromptAestheticOverride(t *testing.T) {
	req := demoRequest()
	req.Aesthetic = "retro VHS grain"
	prompt := BuildBasicPrompt(req)
	if !strings.Contains(prompt, "retro VHS grain") {
		t.Error("explicit aesthetic should override the preset default")
	}

	req.Aesthetic = ""
	prompt = BuildBasicPrompt(req)
	if !strings.Contains(prompt, req.Preset.Aesthetic) {
		t.Error("preset aesthetic should apply when none is chosen")
	}
}
