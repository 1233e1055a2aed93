package processing

import (
	"fmt"
	"strings"
)

// PromptRequest is the shared input for the prompt builder, orchestrator
// and splitter.
type PromptRequest struct {
	Title              string
	Description        string
	Industry           string
	Audience           string
	Features           []string
	Colors             []string
	Tone               string
	VisualStyle        string
	KeyMessage         string
	Product            ProductUnderstanding
	Preset             Preset
	CustomInstructions string
	Aesthetic          string
	// Duration is the resolved total length in seconds.
	Duration int
}

// PromptSource records which path produced a prompt.
const (
	SourceTemplate = "template"
	SourceAI       = "ai"
)

// PromptResult is the two-variant result shape shared by the basic
// builder and the orchestrator: the downstream pipeline treats both
// identically.
type PromptResult struct {
	Prompt string `json:"prompt"`
	Source string `json:"source"`
}

// BuildBasicPrompt assembles the deterministic template prompt. Identical
// inputs yield byte-identical output; there is no hidden randomness.
func BuildBasicPrompt(req PromptRequest) string {
	aesthetic := req.Aesthetic
	if aesthetic == "" {
		aesthetic = req.Preset.Aesthetic
	}

	var b strings.Builder

	fmt.Fprintf(&b, "A %d-second %s marketing demo video for %s, a %s product for %s.\n\n",
		req.Duration, req.Preset.Name, req.Title, strings.ToLower(req.Industry), req.Audience)

	fmt.Fprintf(&b, "What it does: %s\n", req.Product.WhatItDoes)
	fmt.Fprintf(&b, "Problem it solves: %s\n", req.Product.ProblemSolved)

	if len(req.Product.Features) > 0 {
		fmt.Fprintf(&b, "Show these features:\n%s\n", bulletList(req.Product.Features))
	}
	if len(req.Product.Workflow) > 0 {
		fmt.Fprintf(&b, "Workflow to illustrate:\n%s\n", bulletList(req.Product.Workflow))
	}

	fmt.Fprintf(&b, "\nScene structure:\n%s\n", formatSceneStructure(SceneStructure(req.Duration)))

	fmt.Fprintf(&b, "\nBrand colors: %s\n", strings.Join(req.Colors, ", "))
	fmt.Fprintf(&b, "Tone: %s. Visual style: %s. Pacing: %s.\n", req.Tone, req.VisualStyle, req.Preset.Pacing)
	fmt.Fprintf(&b, "Aesthetic: %s\n", aesthetic)

	if req.KeyMessage != "" {
		fmt.Fprintf(&b, "Key message: %s\n", req.KeyMessage)
	}

	fmt.Fprintf(&b, "Voiceover: at most %d words total, conversational, ending with a clear call to action.\n",
		WordBudget(req.Duration))

	if req.CustomInstructions != "" {
		fmt.Fprintf(&b, "\nAdditional instructions: %s\n", req.CustomInstructions)
	}

	return b.String()
}
