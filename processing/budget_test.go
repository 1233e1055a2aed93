package processing

import "testing"

func TestWordBudgetExactValues(t *testing.T) {
	// floor(D * 2.5 * 0.8) for the durations the presets actually use.
	tests := []struct {
		duration int
		want     int
	}{
		{4, 8},
		{8, 16},
		{12, 24},
		{24, 48},
		{30, 60},
		{45, 90},
	}
	for _, tt := range tests {
		if got := WordBudget(tt.duration); got != tt.want {
			t.Errorf("WordBudget(%d) = %d, want %d", tt.duration, got, tt.want)
		}
	}
}

func TestWordBudgetReservedExactValues(t *testing.T) {
	// Revised policy: the final second of the clip is voice-free, so the
	// budget is floor((D-1) * 2.5 * 0.8).
	tests := []struct {
		duration int
		want     int
	}{
		{4, 6},
		{8, 14},
		{12, 22},
		{24, 46},
		{30, 58},
		{45, 88},
	}
	for _, tt := range tests {
		if got := WordBudgetReserved(tt.duration); got != tt.want {
			t.Errorf("WordBudgetReserved(%d) = %d, want %d", tt.duration, got, tt.want)
		}
	}
}

func TestWordBudgetReservedTinyDurations(t *testing.T) {
	if got := WordBudgetReserved(1); got != 0 {
		t.Errorf("WordBudgetReserved(1) = %d, want 0", got)
	}
	if got := WordBudgetReserved(0); got != 0 {
		t.Errorf("WordBudgetReserved(0) = %d, want 0", got)
	}
}

func TestSceneStructureCoversFullDuration(t *testing.T) {
	for _, duration := range []int{4, 8, 12, 20, 24, 30, 45} {
		beats := SceneStructure(duration)
		total := 0
		for _, beat := range beats {
			if beat.Seconds <= 0 {
				t.Errorf("duration %d: beat %q has %d seconds", duration, beat.Label, beat.Seconds)
			}
			total += beat.Seconds
		}
		if total != duration {
			t.Errorf("duration %d: beats sum to %d", duration, total)
		}
	}
}

func TestSceneStructureBucketSizes(t *testing.T) {
	tests := []struct {
		duration int
		beats    int
	}{
		{4, 2},
		{8, 3},
		{12, 4},
		{20, 5},
		{45, 6},
	}
	for _, tt := range tests {
		if got := len(SceneStructure(tt.duration)); got != tt.beats {
			t.Errorf("SceneStructure(%d) has %d beats, want %d", tt.duration, got, tt.beats)
		}
	}
}
