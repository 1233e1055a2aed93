package main

import (
	"context"
	"log"

	"github.com/AraMammo/demodrop-sub000/internal/platform"
	"github.com/AraMammo/demodrop-sub000/pipeline"
	"github.com/AraMammo/demodrop-sub000/stitch"
	"github.com/AraMammo/demodrop-sub000/storage"
	"github.com/AraMammo/demodrop-sub000/tasks"
	"github.com/AraMammo/demodrop-sub000/videogen"
	"github.com/AraMammo/demodrop-sub000/worker"
)

func main() {
	platform.ValidateEnv()

	// Use the shared initializers
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()
	ctx := context.Background()

	artifacts, err := storage.NewMinioStore()
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// The worker runs two-clip presets, so ffmpeg is mandatory here.
	stitcher, err := stitch.NewFFmpegStitcher()
	if err != nil {
		log.Fatalf("Failed to initialize stitcher: %v", err)
	}

	runner := pipeline.NewRunner(
		pipeline.NewGormProjectStore(db),
		videogen.NewDriver(videogen.NewHTTPClient()),
		stitcher,
		artifacts,
	)

	processor := worker.NewProcessor(db, rdb, runner)
	processor.Register(tasks.QueueGenerate, processor.HandleGenerate)

	log.Println("Worker started, waiting for queue tasks...")
	processor.Listen(ctx, tasks.QueueGenerate)
}
