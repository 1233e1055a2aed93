package models

import (
	"time"
)

// Project lifecycle statuses. The lifecycle is strictly linear: a project
// never revisits an earlier phase, and a new submission always creates a
// fresh project row.
const (
	StatusQueued        = "queued"
	StatusScraping      = "scraping"
	StatusOrchestrating = "orchestrating"
	StatusGenerating    = "generating"
	StatusCompleted     = "completed"
	StatusFailed        = "failed"
)

// Project is the unit of work: one row per generation request.
type Project struct {
	ID     string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	// Input parameters
	WebsiteURL         string `gorm:"not null" json:"website_url"`
	StylePreset        string `gorm:"not null" json:"style_preset"`
	CustomInstructions string `gorm:"type:text" json:"custom_instructions,omitempty"`
	Aesthetic          string `json:"aesthetic,omitempty"`

	// Run state
	Status   string `gorm:"default:'queued';index" json:"status"`
	Progress int    `gorm:"default:0" json:"progress"`

	// Prompt is the final text sent to the video API, persisted for auditability.
	Prompt     string `gorm:"type:text" json:"prompt,omitempty"`
	VideoJobID string `json:"video_job_id,omitempty"`
	VideoURL   string `json:"video_url,omitempty"`

	// Error is set only when Status is failed.
	Error string `gorm:"type:text" json:"error,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// IsTerminal reports whether the project has reached a final state.
func (p *Project) IsTerminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusFailed
}
