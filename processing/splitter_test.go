package processing

import (
	"context"
	"strings"
	"testing"
)

func TestSplitPromptFallbackInvariants(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	req := demoRequest()
	full := BuildBasicPrompt(req)
	result := SplitPrompt(context.Background(), full, req)

	if result.Source != SourceTemplate {
		t.Fatalf("Source = %q, want template fallback without an API key", result.Source)
	}

	if result.Part1.Duration+result.Part2.Duration != req.Duration {
		t.Errorf("part durations %d + %d != total %d",
			result.Part1.Duration, result.Part2.Duration, req.Duration)
	}
	if result.Part1.Duration != result.Part2.Duration {
		t.Errorf("parts should be equal halves, got %d and %d",
			result.Part1.Duration, result.Part2.Duration)
	}

	// Brand colors repeated verbatim in both halves.
	colorList := strings.Join(req.Colors, ", ")
	if !strings.Contains(result.Part1.Prompt, colorList) {
		t.Errorf("part 1 missing brand colors:\n%s", result.Part1.Prompt)
	}
	if !strings.Contains(result.Part2.Prompt, colorList) {
		t.Errorf("part 2 missing brand colors:\n%s", result.Part2.Prompt)
	}

	if result.ContinuityHint == "" {
		t.Error("continuity hint is required")
	}
	if !strings.Contains(result.Part2.Prompt, result.ContinuityHint) {
		t.Error("part 2 should open from the continuity hint")
	}
}

func TestFallbackSplitRoles(t *testing.T) {
	req := demoRequest()
	result := fallbackSplit(req, req.Duration/2)

	if !strings.Contains(result.Part1.Prompt, "problem and setup") {
		t.Errorf("part 1 should cover problem/setup:\n%s", result.Part1.Prompt)
	}
	if !strings.Contains(result.Part2.Prompt, "solution and result") {
		t.Errorf("part 2 should cover solution/result:\n%s", result.Part2.Prompt)
	}
}

func TestEnsureBrandLine(t *testing.T) {
	req := demoRequest()

	bare := "A prompt with no brand settings."
	withLine := ensureBrandLine(bare, req)
	if !strings.Contains(withLine, strings.Join(req.Colors, ", ")) {
		t.Errorf("brand line not appended: %q", withLine)
	}

	// Already present: must not duplicate.
	again := ensureBrandLine(withLine, req)
	if again != withLine {
		t.Error("brand line appended twice")
	}
}
