package processing

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// ClipPrompt is one half of a split generation request.
type ClipPrompt struct {
	Prompt   string `json:"prompt"`
	Duration int    `json:"duration"`
}

// SplitResult is the two-part contract for the two-clip flow: part 1
// covers problem/setup, part 2 covers solution/result, each exactly half
// the total duration, tied together by a continuity hint.
type SplitResult struct {
	Part1          ClipPrompt `json:"part1"`
	Part2          ClipPrompt `json:"part2"`
	ContinuityHint string     `json:"continuity_hint"`
	Source         string     `json:"source"`
}

type splitterResponse struct {
	Part1Prompt    string `json:"part1_prompt" jsonschema_description:"Full prompt for the first clip: the problem and setup."`
	Part2Prompt    string `json:"part2_prompt" jsonschema_description:"Full prompt for the second clip: the solution and result."`
	ContinuityHint string `json:"continuity_hint" jsonschema_description:"How part 1's final visual connects to part 2's opening visual."`
}

var splitterSchema = GenerateSchema[splitterResponse]()

// SplitPrompt divides one full-duration prompt into two timed halves with
// explicit continuity instructions. The chat path and the template
// fallback share the same half-duration math and both repeat brand
// color/tone/style verbatim in each half to force consistency.
func SplitPrompt(ctx context.Context, fullPrompt string, req PromptRequest) SplitResult {
	half := req.Duration / 2

	result, err := splitWithAI(ctx, fullPrompt, req, half)
	if err != nil {
		log.Printf("Prompt split failed: %v (using template split)", err)
		return fallbackSplit(req, half)
	}
	return result
}

func splitWithAI(ctx context.Context, fullPrompt string, req PromptRequest, half int) (SplitResult, error) {
	client, err := newOpenAIClient()
	if err != nil {
		return SplitResult{}, err
	}

	userPrompt := fmt.Sprintf(`Split this %d-second video prompt into two %d-second clips.

Part 1 covers the problem and setup. Part 2 covers the solution and result.
Each part must be a complete standalone prompt under %d voiceover words.
Both parts must repeat these brand settings verbatim so the clips match:
Brand colors: %s
Tone: %s. Visual style: %s.

Also describe, in one sentence, how part 1's final visual connects to part 2's opening visual.

Original prompt:
%s`,
		req.Duration, half, WordBudgetReserved(half),
		strings.Join(req.Colors, ", "), req.Tone, req.VisualStyle,
		fullPrompt)

	response, err := getStructuredResponse[splitterResponse](ctx, client, "", userPrompt, "split_video_prompt", splitterSchema)
	if err != nil {
		return SplitResult{}, err
	}

	part1 := strings.TrimSpace(response.Part1Prompt)
	part2 := strings.TrimSpace(response.Part2Prompt)
	hint := strings.TrimSpace(response.ContinuityHint)
	if part1 == "" || part2 == "" || hint == "" {
		return SplitResult{}, fmt.Errorf("split response missing a required part")
	}

	// Brand consistency is non-negotiable: append the settings if the
	// model dropped them.
	part1 = ensureBrandLine(part1, req)
	part2 = ensureBrandLine(part2, req)

	return SplitResult{
		Part1:          ClipPrompt{Prompt: part1, Duration: half},
		Part2:          ClipPrompt{Prompt: part2, Duration: half},
		ContinuityHint: hint,
		Source:         SourceAI,
	}, nil
}

// fallbackSplit is the fixed problem-to-solution template split, built
// from the structured facts rather than the long-form prompt text.
func fallbackSplit(req PromptRequest, half int) SplitResult {
	brand := brandLine(req)
	hint := fmt.Sprintf("Part 1 ends on a close-up of %s's interface; part 2 opens on the same interface as results appear.", req.Title)

	part1 := fmt.Sprintf(`Part 1 of 2 (%d seconds): the problem and setup.
Show %s struggling with the problem: %s
Build tension toward the moment %s appears on screen.
Voiceover: at most %d words.
%s`,
		half, req.Audience, req.Product.ProblemSolved, req.Title, WordBudgetReserved(half), brand)

	part2 := fmt.Sprintf(`Part 2 of 2 (%d seconds): the solution and result.
Continue directly from part 1: %s
Show %s in action solving the problem, ending on the results and a call to action.
Voiceover: at most %d words.
%s`,
		half, hint, req.Title, WordBudgetReserved(half), brand)

	return SplitResult{
		Part1:          ClipPrompt{Prompt: part1, Duration: half},
		Part2:          ClipPrompt{Prompt: part2, Duration: half},
		ContinuityHint: hint,
		Source:         SourceTemplate,
	}
}

func brandLine(req PromptRequest) string {
	return fmt.Sprintf("Brand colors: %s. Tone: %s. Visual style: %s.",
		strings.Join(req.Colors, ", "), req.Tone, req.VisualStyle)
}

func ensureBrandLine(prompt string, req PromptRequest) string {
	if strings.Contains(prompt, strings.Join(req.Colors, ", ")) {
		return prompt
	}
	return prompt + "\n" + brandLine(req)
}
