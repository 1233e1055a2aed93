package main

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/AraMammo/demodrop-sub000/internal/platform"
	"github.com/AraMammo/demodrop-sub000/models"
)

const projectCreatedChannel = "project_created"

// staleRunAge is how long a run may sit in a non-terminal state before
// the janitor declares it dead. The pipeline's own poll budget is about
// five minutes per clip, so anything past this never comes back.
const staleRunAge = 30 * time.Minute

func main() {
	platform.ValidateEnv()

	// Use the shared initializers
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()
	ctx := context.Background()

	// Create a new cron scheduler
	c := cron.New()

	if _, err := c.AddFunc("@every 10m", func() { sweepStaleRuns(db) }); err != nil {
		log.Fatalf("Failed to schedule stale-run sweep: %v", err)
	}
	if _, err := c.AddFunc("@hourly", func() { sweepExpiredSessions(db) }); err != nil {
		log.Fatalf("Failed to schedule session sweep: %v", err)
	}

	c.Start()
	defer c.Stop()

	// Watch run starts so the log shows what the sweeps are guarding.
	go listenForNewProjects(ctx, rdb)

	log.Println("Scheduler started, sweeps registered...")
	// Keep the main thread alive
	select {}
}

// sweepStaleRuns fails projects stuck in a non-terminal state. A worker
// crash mid-run leaves the row in scraping/orchestrating/generating
// forever; clients polling it would otherwise never see a terminal state.
func sweepStaleRuns(db *gorm.DB) {
	cutoff := time.Now().Add(-staleRunAge)

	result := db.Model(&models.Project{}).
		Where("status NOT IN ?", []string{models.StatusCompleted, models.StatusFailed}).
		Where("created_at < ?", cutoff).
		Updates(map[string]interface{}{
			"status": models.StatusFailed,
			"error":  "generation did not finish; the run was abandoned",
		})
	if result.Error != nil {
		log.Printf("Error sweeping stale runs: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Failed %d stale runs older than %s", result.RowsAffected, staleRunAge)
	}
}

func sweepExpiredSessions(db *gorm.DB) {
	deleted, err := models.DeleteExpiredSessions(db)
	if err != nil {
		log.Printf("Error sweeping expired sessions: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Deleted %d expired sessions", deleted)
	}
}

// listenForNewProjects subscribes to project_created. Pub/Sub delivery is
// at-most-once, so this is informational only; the sweeps read the
// database directly.
func listenForNewProjects(ctx context.Context, rdb *redis.Client) {
	pubsub := rdb.Subscribe(ctx, projectCreatedChannel)
	defer pubsub.Close()
	ch := pubsub.Channel()

	log.Println("Scheduler listening for new projects...")

	for msg := range ch {
		log.Printf("Run started for project %s", msg.Payload)
	}
}
