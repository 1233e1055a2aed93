package stitch

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Transition names accepted by Stitch.
const (
	TransitionCut  = "cut"
	TransitionFade = "fade"
)

// fadeDuration is the xfade crossfade length in seconds.
const fadeDuration = 0.5

// Stitcher joins two generated clips into one video. There is no
// template fallback here: if stitching fails the run fails.
type Stitcher interface {
	Stitch(ctx context.Context, clip1, clip2 []byte, clip1Seconds int, transition string) ([]byte, error)
}

// FFmpegStitcher shells out to ffmpeg. NewFFmpegStitcher fails hard when
// the binary is missing so the worker refuses to start rather than
// failing mid-run.
type FFmpegStitcher struct {
	ffmpegPath string
}

func NewFFmpegStitcher() (*FFmpegStitcher, error) {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	return &FFmpegStitcher{ffmpegPath: path}, nil
}

func (s *FFmpegStitcher) Stitch(ctx context.Context, clip1, clip2 []byte, clip1Seconds int, transition string) ([]byte, error) {
	workDir, err := os.MkdirTemp("", "stitch-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create stitch workspace: %w", err)
	}
	defer os.RemoveAll(workDir)

	in1 := filepath.Join(workDir, "clip1.mp4")
	in2 := filepath.Join(workDir, "clip2.mp4")
	out := filepath.Join(workDir, "output.mp4")

	if err := os.WriteFile(in1, clip1, 0644); err != nil {
		return nil, fmt.Errorf("failed to write clip 1: %w", err)
	}
	if err := os.WriteFile(in2, clip2, 0644); err != nil {
		return nil, fmt.Errorf("failed to write clip 2: %w", err)
	}

	var args []string
	switch transition {
	case TransitionFade:
		args = fadeArgs(in1, in2, clip1Seconds, out)
	case TransitionCut, "":
		manifest := filepath.Join(workDir, "concat.txt")
		if err := writeConcatManifest(manifest, in1, in2); err != nil {
			return nil, err
		}
		args = cutArgs(manifest, out)
	default:
		return nil, fmt.Errorf("unknown transition %q", transition)
	}

	log.Printf("Stitching clips with %s transition: ffmpeg %s", transitionOrCut(transition), strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stitch failed: %w: %s", err, truncate(string(output), 500))
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("failed to read stitched video: %w", err)
	}
	return data, nil
}

// cutArgs uses the concat demuxer with stream copy: no re-encode, near
// instant, requires both clips to share codec parameters (they do, the
// same upstream model produced both).
func cutArgs(manifest, out string) []string {
	return []string{
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
		"-y",
		out,
	}
}

// fadeArgs crossfades with the xfade filter, which forces a re-encode.
// The fade starts fadeDuration seconds before the first clip ends.
func fadeArgs(in1, in2 string, clip1Seconds int, out string) []string {
	offset := float64(clip1Seconds) - fadeDuration
	if offset < 0 {
		offset = 0
	}
	filter := fmt.Sprintf("xfade=transition=fade:duration=%.1f:offset=%.1f", fadeDuration, offset)
	return []string{
		"-i", in1,
		"-i", in2,
		"-filter_complex", filter,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-preset", "fast",
		"-y",
		out,
	}
}

func writeConcatManifest(path, in1, in2 string) error {
	content := fmt.Sprintf("file '%s'\nfile '%s'\n", in1, in2)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write concat manifest: %w", err)
	}
	return nil
}

func transitionOrCut(transition string) string {
	if transition == "" {
		return TransitionCut
	}
	return transition
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
