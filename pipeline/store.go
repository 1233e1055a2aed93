package pipeline

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/AraMammo/demodrop-sub000/models"
)

// ProjectStore is the persistence surface the pipeline writes through.
// Every phase transition goes through here before the run continues.
type ProjectStore interface {
	SetPhase(ctx context.Context, projectID, status string, progress int) error
	SetProgress(ctx context.Context, projectID string, progress int) error
	SetPrompt(ctx context.Context, projectID, prompt string) error
	SetVideoJobID(ctx context.Context, projectID, jobID string) error
	Complete(ctx context.Context, projectID, videoURL string) error
	Fail(ctx context.Context, projectID, message string) error
}

// GormProjectStore writes run state to the projects table. Progress uses
// GREATEST so a stale write can never move the bar backwards.
type GormProjectStore struct {
	db *gorm.DB
}

func NewGormProjectStore(db *gorm.DB) *GormProjectStore {
	return &GormProjectStore{db: db}
}

func (s *GormProjectStore) SetPhase(ctx context.Context, projectID, status string, progress int) error {
	err := s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]interface{}{
			"status":   status,
			"progress": gorm.Expr("GREATEST(progress, ?)", progress),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update project %s to %s: %w", projectID, status, err)
	}
	return nil
}

func (s *GormProjectStore) SetProgress(ctx context.Context, projectID string, progress int) error {
	return s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("progress", gorm.Expr("GREATEST(progress, ?)", progress)).Error
}

func (s *GormProjectStore) SetPrompt(ctx context.Context, projectID, prompt string) error {
	return s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("prompt", prompt).Error
}

func (s *GormProjectStore) SetVideoJobID(ctx context.Context, projectID, jobID string) error {
	return s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("video_job_id", jobID).Error
}

func (s *GormProjectStore) Complete(ctx context.Context, projectID, videoURL string) error {
	now := time.Now()
	err := s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]interface{}{
			"status":       models.StatusCompleted,
			"progress":     100,
			"video_url":    videoURL,
			"completed_at": &now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to complete project %s: %w", projectID, err)
	}
	return nil
}

func (s *GormProjectStore) Fail(ctx context.Context, projectID, message string) error {
	err := s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]interface{}{
			"status": models.StatusFailed,
			"error":  message,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark project %s failed: %w", projectID, err)
	}
	return nil
}
