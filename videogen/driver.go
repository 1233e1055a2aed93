package videogen

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Polling policy: fixed 5-second interval, 60 status checks per clip
// (about five minutes). The iteration budget, not elapsed time, bounds
// the loop.
const (
	DefaultPollInterval = 5 * time.Second
	DefaultMaxAttempts  = 60
)

// Driver submits a prompt to the video API and polls the job to a
// terminal state.
type Driver struct {
	Client       Client
	PollInterval time.Duration
	MaxAttempts  int

	// OnSubmit, when set, receives the external job id as soon as
	// submission succeeds, before polling starts.
	OnSubmit func(jobID string)
}

// NewDriver wires a driver with the default polling policy.
func NewDriver(client Client) *Driver {
	return &Driver{
		Client:       client,
		PollInterval: DefaultPollInterval,
		MaxAttempts:  DefaultMaxAttempts,
	}
}

// Result is a finished clip.
type Result struct {
	JobID string
	Data  []byte
}

// MapProgress maps the external API's raw 0-100 progress onto the caller's
// [start, end] sub-range. This is how multi-clip runs present one
// continuous progress bar across several underlying jobs.
func MapProgress(start, end, raw int) int {
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}
	mapped := start + raw*(end-start)/100
	if mapped > end {
		return end
	}
	return mapped
}

// Run submits the prompt once, then polls on a fixed interval, reporting
// mapped progress through onProgress after each successful status read.
// Transient status-read errors are swallowed and the loop continues; the
// only bound is the attempt budget. On completion the artifact is
// downloaded once and progress is clamped to end. Failures and timeouts
// return an error whose text is suitable for the project's error field.
func (d *Driver) Run(ctx context.Context, prompt string, durationSeconds, startPct, endPct int, onProgress func(int)) (Result, error) {
	jobID, err := d.Client.Submit(ctx, prompt, durationSeconds)
	if err != nil {
		return Result{}, fmt.Errorf("video job submission failed: %w", err)
	}
	log.Printf("Submitted video job %s (%ds clip)", jobID, durationSeconds)
	if d.OnSubmit != nil {
		d.OnSubmit(jobID)
	}

	for attempt := 0; attempt < d.MaxAttempts; attempt++ {
		time.Sleep(d.PollInterval)

		status, err := d.Client.Status(ctx, jobID)
		if err != nil {
			// Network blip: keep polling, the attempt still counts.
			log.Printf("Poll error for job %s (attempt %d/%d): %v", jobID, attempt+1, d.MaxAttempts, err)
			continue
		}

		switch status.Status {
		case JobStatusCompleted:
			if status.VideoURL == "" {
				return Result{JobID: jobID}, fmt.Errorf("video job %s completed without a video URL", jobID)
			}
			data, err := d.Client.Download(ctx, status.VideoURL)
			if err != nil {
				return Result{JobID: jobID}, fmt.Errorf("video download failed: %w", err)
			}
			onProgress(endPct)
			return Result{JobID: jobID, Data: data}, nil

		case JobStatusFailed:
			message := status.Error
			if message == "" {
				message = "video generation failed"
			}
			return Result{JobID: jobID}, fmt.Errorf("%s", message)

		default:
			onProgress(MapProgress(startPct, endPct, status.Progress))
		}
	}

	return Result{JobID: jobID}, fmt.Errorf("video generation timed out after %d status checks", d.MaxAttempts)
}
