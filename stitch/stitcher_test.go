package stitch

import (
	"strings"
	"testing"
)

func TestCutArgsStreamCopies(t *testing.T) {
	args := cutArgs("/tmp/concat.txt", "/tmp/out.mp4")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-f concat") {
		t.Errorf("cut transition should use the concat demuxer, got %q", joined)
	}
	if !strings.Contains(joined, "-c copy") {
		t.Errorf("cut transition should stream copy, got %q", joined)
	}
}

func TestFadeArgsOffset(t *testing.T) {
	args := fadeArgs("/tmp/a.mp4", "/tmp/b.mp4", 12, "/tmp/out.mp4")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "xfade=transition=fade:duration=0.5:offset=11.5") {
		t.Errorf("fade should start 0.5s before clip 1 ends, got %q", joined)
	}
	if !strings.Contains(joined, "libx264") {
		t.Errorf("fade requires a re-encode, got %q", joined)
	}
}

func TestFadeArgsShortClipClampsOffset(t *testing.T) {
	args := fadeArgs("/tmp/a.mp4", "/tmp/b.mp4", 0, "/tmp/out.mp4")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "offset=0.0") {
		t.Errorf("offset should clamp at zero, got %q", joined)
	}
}
