package processing

import (
	"fmt"
	"math"
	"strings"
)

// Voiceover pacing policy: 2.5 spoken words per second at a comfortable
// pace, with an 80% speaking-time allowance for pauses.
const (
	wordsPerSecond   = 2.5
	speakingFraction = 0.8
)

// WordBudget returns the spoken-word budget for a voiceover of the given
// duration in seconds.
func WordBudget(durationSeconds int) int {
	return int(math.Floor(float64(durationSeconds) * wordsPerSecond * speakingFraction))
}

// WordBudgetReserved is the revised budget used by the orchestrator: the
// final second of the clip is reserved as voice-free, so the budget is
// computed against one second less.
func WordBudgetReserved(durationSeconds int) int {
	if durationSeconds <= 1 {
		return 0
	}
	return WordBudget(durationSeconds - 1)
}

// SceneBeat is one labeled, time-boxed segment of a scene structure.
type SceneBeat struct {
	Label   string
	Seconds int
}

// SceneStructure selects the fixed beat template for a duration bucket.
func SceneStructure(durationSeconds int) []SceneBeat {
	switch {
	case durationSeconds <= 4:
		return []SceneBeat{
			{"Hook", 2},
			{"Payoff", durationSeconds - 2},
		}
	case durationSeconds <= 8:
		return []SceneBeat{
			{"Hook", 2},
			{"Product moment", durationSeconds - 4},
			{"Call to action", 2},
		}
	case durationSeconds <= 12:
		return []SceneBeat{
			{"Hook", 2},
			{"Problem", 3},
			{"Product in action", durationSeconds - 8},
			{"Call to action", 3},
		}
	case durationSeconds <= 20:
		return []SceneBeat{
			{"Hook", 3},
			{"Problem", 4},
			{"Product in action", durationSeconds - 13},
			{"Benefit payoff", 3},
			{"Call to action", 3},
		}
	default:
		return []SceneBeat{
			{"Hook", 3},
			{"Problem", 5},
			{"Product walkthrough", durationSeconds - 16},
			{"Use case", 4},
			{"Benefit payoff", 2},
			{"Call to action", 2},
		}
	}
}

// formatSceneStructure renders beats as prompt lines with running
// time boxes, e.g. "0-2s Hook".
func formatSceneStructure(beats []SceneBeat) string {
	var lines []string
	elapsed := 0
	for _, beat := range beats {
		lines = append(lines, fmt.Sprintf("%d-%ds %s", elapsed, elapsed+beat.Seconds, beat.Label))
		elapsed += beat.Seconds
	}
	return strings.Join(lines, "\n")
}
