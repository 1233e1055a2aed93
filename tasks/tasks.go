package tasks

import (
	"encoding/json"

	"github.com/AraMammo/demodrop-sub000/enrich"
)

// Queue names. The submit endpoint LPushes onto these; the worker BRPops.
const (
	// QueueGenerate runs the full generation pipeline for one project.
	QueueGenerate = "q_generate_video"
)

// GenerateTaskPayload is the payload for QueueGenerate. It carries the
// full submission so the worker does not need to re-read the request.
type GenerateTaskPayload struct {
	ProjectID          string         `json:"project_id"`
	WebsiteURL         string         `json:"website_url"`
	StylePreset        string         `json:"style_preset"`
	CustomInstructions string         `json:"custom_instructions,omitempty"`
	Aesthetic          string         `json:"aesthetic,omitempty"`
	Enrichment         enrich.Sources `json:"enrichment,omitempty"`
}

// Marshal creates a JSON payload for a task.
func Marshal(payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
