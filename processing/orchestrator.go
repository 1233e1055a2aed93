package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// orchestratorSystemPrompt frames the model as a film director so the
// enhanced prompt reads like direction, not ad copy.
const orchestratorSystemPrompt = `You are an award-winning commercial film director. You turn business facts into vivid, shootable text-to-video prompts: concrete imagery, explicit camera movements, lighting, and pacing. You respect the requested scene structure and never exceed the voiceover word budget.`

// orchestratorResponse is the structured output of the orchestration
// call. EnhancedPrompt is kept raw because models occasionally return a
// nested object where a plain string was requested.
type orchestratorResponse struct {
	EnhancedPrompt json.RawMessage `json:"enhanced_prompt" jsonschema_description:"The full enhanced text-to-video prompt as one plain string."`
	StyleKeywords  []string        `json:"style_keywords" jsonschema_description:"5-8 cinematic style keywords."`
	CameraNotes    []string        `json:"camera_notes" jsonschema_description:"Camera movements used, one per scene."`
	Scenes         []struct {
		Label       string `json:"label" jsonschema_description:"Short scene label."`
		Seconds     int    `json:"seconds" jsonschema_description:"Scene length in whole seconds."`
		Description string `json:"description" jsonschema_description:"What happens on screen."`
	} `json:"scenes" jsonschema_description:"The scene breakdown matching the requested structure."`
}

var orchestratorSchema = GenerateSchema[orchestratorResponse]()

// GeneratePrompt produces the final video prompt: the AI-enhanced path
// when the chat call succeeds and yields a usable prompt, otherwise the
// deterministic template. Consumers never see which path ran except
// through the Source field.
func GeneratePrompt(ctx context.Context, req PromptRequest) PromptResult {
	prompt, err := enhancePrompt(ctx, req)
	if err != nil {
		log.Printf("Prompt orchestration failed: %v (using template prompt)", err)
		return PromptResult{Prompt: BuildBasicPrompt(req), Source: SourceTemplate}
	}
	return PromptResult{Prompt: prompt, Source: SourceAI}
}

func enhancePrompt(ctx context.Context, req PromptRequest) (string, error) {
	client, err := newOpenAIClient()
	if err != nil {
		return "", err
	}

	userPrompt := buildOrchestratorPrompt(req)
	response, err := getStructuredResponse[orchestratorResponse](ctx, client, orchestratorSystemPrompt, userPrompt, "enhanced_video_prompt", orchestratorSchema)
	if err != nil {
		return "", err
	}

	enhanced, ok := normalizeEnhancedPrompt(response.EnhancedPrompt)
	if !ok {
		return "", fmt.Errorf("enhanced prompt field is unusable")
	}
	return enhanced, nil
}

func buildOrchestratorPrompt(req PromptRequest) string {
	aesthetic := req.Aesthetic
	if aesthetic == "" {
		aesthetic = req.Preset.Aesthetic
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write one enhanced text-to-video prompt for a %d-second marketing demo.\n\n", req.Duration)
	fmt.Fprintf(&b, "Business: %s (%s, for %s)\n", req.Title, req.Industry, req.Audience)
	fmt.Fprintf(&b, "What it does: %s\n", req.Product.WhatItDoes)
	fmt.Fprintf(&b, "Problem solved: %s\n", req.Product.ProblemSolved)
	if len(req.Product.Features) > 0 {
		fmt.Fprintf(&b, "Features to show:\n%s\n", bulletList(req.Product.Features))
	}
	if req.Product.VideoGuidance != "" {
		fmt.Fprintf(&b, "Visual guidance: %s\n", req.Product.VideoGuidance)
	}

	fmt.Fprintf(&b, "\nRequired scene structure:\n%s\n", formatSceneStructure(SceneStructure(req.Duration)))
	fmt.Fprintf(&b, "\nBrand colors (repeat these verbatim in the prompt): %s\n", strings.Join(req.Colors, ", "))
	fmt.Fprintf(&b, "Tone: %s. Visual style: %s. Pacing: %s. Aesthetic: %s\n",
		req.Tone, req.VisualStyle, req.Preset.Pacing, aesthetic)
	fmt.Fprintf(&b, "Voiceover budget: at most %d words; the final second stays voice-free.\n",
		WordBudgetReserved(req.Duration))

	if req.CustomInstructions != "" {
		fmt.Fprintf(&b, "\nClient instructions: %s\n", req.CustomInstructions)
	}

	return b.String()
}

// normalizeEnhancedPrompt coerces the enhanced-prompt field into a plain
// string. Models sometimes nest the prompt one level deep inside an
// object; we unwrap a single level (common key names), then fall back to
// re-serializing the raw value. An empty result is unusable.
func normalizeEnhancedPrompt(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		asString = strings.TrimSpace(asString)
		return asString, asString != ""
	}

	var asObject map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asObject); err == nil {
		for _, key := range []string{"prompt", "text", "enhanced_prompt", "value"} {
			if nested, ok := asObject[key]; ok {
				var nestedString string
				if err := json.Unmarshal(nested, &nestedString); err == nil {
					nestedString = strings.TrimSpace(nestedString)
					if nestedString != "" {
						return nestedString, true
					}
				}
			}
		}
	}

	// Last resort: re-serialize whatever came back.
	reserialized := strings.TrimSpace(string(raw))
	if reserialized == "" || reserialized == "{}" || reserialized == "null" {
		return "", false
	}
	return reserialized, true
}
