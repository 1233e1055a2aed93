package videogen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Job statuses reported by the text-to-video service.
const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// JobStatus is one poll's view of an external generation job.
type JobStatus struct {
	JobID    string `json:"job_id"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	VideoURL string `json:"video_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Client is the external text-to-video API. Tests substitute a double.
type Client interface {
	Submit(ctx context.Context, prompt string, durationSeconds int) (jobID string, err error)
	Status(ctx context.Context, jobID string) (JobStatus, error)
	Download(ctx context.Context, videoURL string) ([]byte, error)
}

// HTTPClient talks to the hosted text-to-video service.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

const defaultVideoAPIURL = "https://api.videogen.example.com/v1"

// NewHTTPClient builds a client from the environment.
func NewHTTPClient() *HTTPClient {
	baseURL := os.Getenv("VIDEO_API_URL")
	if baseURL == "" {
		baseURL = defaultVideoAPIURL
	}
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  os.Getenv("VIDEO_API_KEY"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *HTTPClient) Submit(ctx context.Context, prompt string, durationSeconds int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("VIDEO_API_KEY environment variable not set")
	}

	body, err := json.Marshal(map[string]interface{}{
		"prompt":   prompt,
		"duration": durationSeconds,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generations", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("video API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("video API status %d: %s", resp.StatusCode, string(raw))
	}

	var payload struct {
		JobID string `json:"job_id"`
		ID    string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode submit response: %w", err)
	}
	if payload.JobID != "" {
		return payload.JobID, nil
	}
	if payload.ID != "" {
		return payload.ID, nil
	}
	return "", fmt.Errorf("submit response missing job id")
}

func (c *HTTPClient) Status(ctx context.Context, jobID string) (JobStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/generations/"+jobID, nil)
	if err != nil {
		return JobStatus{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return JobStatus{}, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return JobStatus{}, fmt.Errorf("video API status %d", resp.StatusCode)
	}

	var status JobStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return JobStatus{}, fmt.Errorf("decode status response: %w", err)
	}
	if status.JobID == "" {
		status.JobID = jobID
	}
	return status, nil
}

func (c *HTTPClient) Download(ctx context.Context, videoURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
