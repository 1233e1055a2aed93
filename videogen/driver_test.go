package videogen

import (
	"context"
	"errors"
	"testing"
)

type fakeClient struct {
	submitCalls int
	statuses    []JobStatus
	statusErrs  []error
	statusIdx   int
	downloaded  string
	data        []byte
	downloadErr error
}

func (f *fakeClient) Submit(ctx context.Context, prompt string, durationSeconds int) (string, error) {
	f.submitCalls++
	return "job-1", nil
}

func (f *fakeClient) Status(ctx context.Context, jobID string) (JobStatus, error) {
	i := f.statusIdx
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	f.statusIdx++
	var err error
	if i < len(f.statusErrs) {
		err = f.statusErrs[i]
	}
	return f.statuses[i], err
}

func (f *fakeClient) Download(ctx context.Context, url string) ([]byte, error) {
	f.downloaded = url
	return f.data, f.downloadErr
}

func TestMapProgress(t *testing.T) {
	tests := []struct {
		start, end, raw, want int
	}{
		{30, 90, 0, 30},
		{30, 90, 50, 60},
		{30, 90, 100, 90},
		{30, 90, 150, 90},
		{30, 90, -10, 30},
		{0, 100, 37, 37},
		{30, 60, 50, 45},
	}
	for _, tt := range tests {
		if got := MapProgress(tt.start, tt.end, tt.raw); got != tt.want {
			t.Errorf("MapProgress(%d, %d, %d) = %d, want %d", tt.start, tt.end, tt.raw, got, tt.want)
		}
	}
}

func TestMapProgressMonotone(t *testing.T) {
	prev := -1
	for raw := 0; raw <= 100; raw++ {
		got := MapProgress(30, 90, raw)
		if got < prev {
			t.Fatalf("MapProgress not monotone: raw=%d mapped=%d prev=%d", raw, got, prev)
		}
		if got > 90 {
			t.Fatalf("MapProgress exceeded end: raw=%d mapped=%d", raw, got)
		}
		prev = got
	}
}

func TestRunCompletes(t *testing.T) {
	client := &fakeClient{
		statuses: []JobStatus{
			{JobID: "job-1", Status: JobStatusProcessing, Progress: 40},
			{JobID: "job-1", Status: JobStatusCompleted, Progress: 100, VideoURL: "https://videos.example/out.mp4"},
		},
		data: []byte("mp4-bytes"),
	}
	driver := &Driver{Client: client, PollInterval: 0, MaxAttempts: 10}

	var reported []int
	result, err := driver.Run(context.Background(), "a prompt", 12, 30, 90, func(p int) {
		reported = append(reported, p)
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.JobID != "job-1" {
		t.Errorf("JobID = %q, want %q", result.JobID, "job-1")
	}
	if string(result.Data) != "mp4-bytes" {
		t.Errorf("Data = %q, want downloaded bytes", result.Data)
	}
	if client.submitCalls != 1 {
		t.Errorf("Submit called %d times, want 1", client.submitCalls)
	}
	if client.downloaded != "https://videos.example/out.mp4" {
		t.Errorf("downloaded %q, want the job's video URL", client.downloaded)
	}
	// 40% of [30,90] then the clamp to end on completion.
	want := []int{54, 90}
	if len(reported) != len(want) {
		t.Fatalf("progress reports = %v, want %v", reported, want)
	}
	for i := range want {
		if reported[i] != want[i] {
			t.Fatalf("progress reports = %v, want %v", reported, want)
		}
	}
}

func TestRunFailedJobReturnsExternalError(t *testing.T) {
	client := &fakeClient{
		statuses: []JobStatus{
			{JobID: "job-1", Status: JobStatusFailed, Error: "content policy rejection"},
		},
	}
	driver := &Driver{Client: client, PollInterval: 0, MaxAttempts: 10}

	_, err := driver.Run(context.Background(), "a prompt", 12, 0, 100, func(int) {})
	if err == nil {
		t.Fatal("expected an error for a failed job")
	}
	if err.Error() != "content policy rejection" {
		t.Errorf("error = %q, want the external error verbatim", err.Error())
	}
	if client.statusIdx != 1 {
		t.Errorf("polled %d times after failure, want no retry", client.statusIdx)
	}
}

func TestRunSwallowsTransientErrors(t *testing.T) {
	client := &fakeClient{
		statuses: []JobStatus{
			{},
			{},
			{JobID: "job-1", Status: JobStatusCompleted, VideoURL: "https://videos.example/out.mp4"},
		},
		statusErrs: []error{
			errors.New("connection reset"),
			errors.New("status 502"),
			nil,
		},
		data: []byte("ok"),
	}
	driver := &Driver{Client: client, PollInterval: 0, MaxAttempts: 10}

	_, err := driver.Run(context.Background(), "a prompt", 8, 0, 100, func(int) {})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestRunTimesOutOnAttemptBudget(t *testing.T) {
	client := &fakeClient{
		statuses: []JobStatus{
			{JobID: "job-1", Status: JobStatusProcessing, Progress: 10},
		},
	}
	driver := &Driver{Client: client, PollInterval: 0, MaxAttempts: 5}

	_, err := driver.Run(context.Background(), "a prompt", 8, 0, 100, func(int) {})
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if client.statusIdx != 5 {
		t.Errorf("polled %d times, want exactly the attempt budget", client.statusIdx)
	}
}
