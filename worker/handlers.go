package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/AraMammo/demodrop-sub000/models"
	"github.com/AraMammo/demodrop-sub000/pipeline"
	"github.com/AraMammo/demodrop-sub000/tasks"
)

// HandleGenerate processes tasks from QueueGenerate: one task is one
// project's full pipeline run. The runner persists every phase
// transition itself; this handler only guards the entry conditions.
func (p *Processor) HandleGenerate(ctx context.Context, payload string) error {
	var task tasks.GenerateTaskPayload
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		return fmt.Errorf("bad generate payload: %w", err)
	}

	log.Printf("Processing generation for project %s (%s)", task.ProjectID, task.WebsiteURL)

	var project models.Project
	if err := p.DB.First(&project, "id = ?", task.ProjectID).Error; err != nil {
		return fmt.Errorf("project %s not found: %w", task.ProjectID, err)
	}
	if project.IsTerminal() {
		// Redelivered task for a finished run; lifecycle is strictly
		// linear, so never restart it.
		log.Printf("Project %s already %s, skipping", project.ID, project.Status)
		return nil
	}

	_, err := p.Runner.Run(ctx, pipeline.Request{
		ProjectID:          task.ProjectID,
		WebsiteURL:         task.WebsiteURL,
		StylePreset:        task.StylePreset,
		CustomInstructions: task.CustomInstructions,
		Aesthetic:          task.Aesthetic,
		Enrichment:         task.Enrichment,
	})
	// The runner already wrote the failure to the project; surface it
	// for the worker log only.
	return err
}
