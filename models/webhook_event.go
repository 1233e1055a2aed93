package models

import "time"

// WebhookEvent records every billing webhook event we have already
// processed. The unique index on EventID is what makes dedup durable
// across restarts and multiple instances, instead of a process-local set.
type WebhookEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   string    `gorm:"uniqueIndex;not null" json:"event_id"`
	EventType string    `json:"event_type"`
	CreatedAt time.Time `json:"created_at"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}
