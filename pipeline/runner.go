package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/AraMammo/demodrop-sub000/enrich"
	"github.com/AraMammo/demodrop-sub000/models"
	"github.com/AraMammo/demodrop-sub000/processing"
	"github.com/AraMammo/demodrop-sub000/scrape"
	"github.com/AraMammo/demodrop-sub000/stitch"
	"github.com/AraMammo/demodrop-sub000/storage"
	"github.com/AraMammo/demodrop-sub000/videogen"
)

// Progress checkpoints. Generation owns the bulk of the bar since it is
// the slow part; the sub-ranges below are what the job driver maps raw
// external progress into.
const (
	progressScraping      = 5
	progressOrchestrating = 15
	progressGenerating    = 25
	progressClip1End      = 55
	progressClip2End      = 85
	progressStitching     = 90
	progressUploading     = 95
)

// Request is one generation run. The worker and the internal process
// endpoint both hand the pipeline this shape.
type Request struct {
	ProjectID          string
	WebsiteURL         string
	StylePreset        string
	CustomInstructions string
	Aesthetic          string
	Enrichment         enrich.Sources
}

// Runner drives one project through the full chain:
// scrape → analyze → prompt → generate (→ split/stitch) → upload.
// Every phase transition is persisted before the run continues, so a
// client polling the project sees each step land.
type Runner struct {
	Store     ProjectStore
	Driver    *videogen.Driver
	Stitcher  stitch.Stitcher
	Artifacts storage.ArtifactStore

	// ScrapeFn and CollectFn default to the real implementations;
	// tests swap them for deterministic doubles.
	ScrapeFn  func(ctx context.Context, url string) scrape.WebsiteData
	CollectFn func(ctx context.Context, sources enrich.Sources) enrich.Extras
}

func NewRunner(store ProjectStore, driver *videogen.Driver, stitcher stitch.Stitcher, artifacts storage.ArtifactStore) *Runner {
	return &Runner{
		Store:     store,
		Driver:    driver,
		Stitcher:  stitcher,
		Artifacts: artifacts,
		ScrapeFn:  scrape.ScrapeWebsite,
		CollectFn: enrich.Collect,
	}
}

// Run executes the pipeline to a terminal state. The returned error is
// also persisted to the project before Run returns, so callers only use
// it for logging and HTTP responses.
func (r *Runner) Run(ctx context.Context, req Request) (string, error) {
	preset, ok := processing.LookupPreset(req.StylePreset)
	if !ok {
		return "", r.fail(ctx, req.ProjectID, fmt.Errorf("unknown style preset %q", req.StylePreset))
	}

	// Scraping never fails; the fallback site data keeps the run alive.
	r.setPhase(ctx, req.ProjectID, models.StatusScraping, progressScraping)
	site := r.ScrapeFn(ctx, req.WebsiteURL)
	extras := r.CollectFn(ctx, req.Enrichment)

	r.setPhase(ctx, req.ProjectID, models.StatusOrchestrating, progressOrchestrating)
	product := processing.AnalyzeProduct(ctx, site, site.Parsed)

	promptReq := processing.PromptRequest{
		Title:              site.Title,
		Description:        site.Description,
		Industry:           site.Industry,
		Audience:           site.Audience,
		Features:           site.Features,
		Colors:             site.Brand.Colors,
		Tone:               site.Brand.Tone,
		VisualStyle:        site.Brand.VisualStyle,
		KeyMessage:         site.Brand.KeyMessage,
		Product:            product,
		Preset:             preset,
		CustomInstructions: mergeInstructions(req.CustomInstructions, extras),
		Aesthetic:          req.Aesthetic,
		Duration:           preset.Duration,
	}

	result := processing.GeneratePrompt(ctx, promptReq)
	if err := r.Store.SetPrompt(ctx, req.ProjectID, result.Prompt); err != nil {
		log.Printf("Failed to persist prompt for project %s: %v", req.ProjectID, err)
	}
	log.Printf("Prompt ready for project %s (source=%s)", req.ProjectID, result.Source)

	r.setPhase(ctx, req.ProjectID, models.StatusGenerating, progressGenerating)

	var videoData []byte
	var err error
	if preset.TwoClip && preset.Duration > 12 {
		videoData, err = r.generateTwoClips(ctx, req.ProjectID, result.Prompt, promptReq)
	} else {
		videoData, err = r.generateSingleClip(ctx, req.ProjectID, result.Prompt, preset.Duration)
	}
	if err != nil {
		return "", r.fail(ctx, req.ProjectID, err)
	}

	r.progress(ctx, req.ProjectID, progressUploading)
	videoURL, err := r.Artifacts.UploadVideo(ctx, req.ProjectID, videoData)
	if err != nil {
		return "", r.fail(ctx, req.ProjectID, fmt.Errorf("video upload failed: %w", err))
	}

	if err := r.Store.Complete(ctx, req.ProjectID, videoURL); err != nil {
		return "", err
	}
	log.Printf("Project %s completed: %s", req.ProjectID, videoURL)
	return videoURL, nil
}

func (r *Runner) generateSingleClip(ctx context.Context, projectID, prompt string, duration int) ([]byte, error) {
	result, err := r.runClip(ctx, projectID, prompt, duration, progressGenerating, progressClip2End)
	if err != nil {
		return nil, err
	}
	return result.Data, nil
}

// generateTwoClips runs the split flow: two sequential half-duration
// jobs, then an ffmpeg stitch. Clip 2 is not submitted until clip 1's
// poll loop returns.
func (r *Runner) generateTwoClips(ctx context.Context, projectID, fullPrompt string, promptReq processing.PromptRequest) ([]byte, error) {
	if r.Stitcher == nil {
		return nil, fmt.Errorf("two-clip preset requires a stitcher")
	}

	split := processing.SplitPrompt(ctx, fullPrompt, promptReq)
	log.Printf("Split prompt for project %s (source=%s, continuity: %s)", projectID, split.Source, split.ContinuityHint)

	clip1, err := r.runClip(ctx, projectID, split.Part1.Prompt, split.Part1.Duration, progressGenerating, progressClip1End)
	if err != nil {
		return nil, err
	}

	clip2, err := r.runClip(ctx, projectID, split.Part2.Prompt, split.Part2.Duration, progressClip1End, progressClip2End)
	if err != nil {
		return nil, err
	}

	r.progress(ctx, projectID, progressStitching)
	stitched, err := r.Stitcher.Stitch(ctx, clip1.Data, clip2.Data, split.Part1.Duration, stitch.TransitionFade)
	if err != nil {
		return nil, fmt.Errorf("stitching failed: %w", err)
	}
	return stitched, nil
}

func (r *Runner) runClip(ctx context.Context, projectID, prompt string, duration, startPct, endPct int) (videogen.Result, error) {
	driver := *r.Driver
	driver.OnSubmit = func(jobID string) {
		if err := r.Store.SetVideoJobID(ctx, projectID, jobID); err != nil {
			log.Printf("Failed to persist job id for project %s: %v", projectID, err)
		}
	}
	return driver.Run(ctx, prompt, duration, startPct, endPct, func(p int) {
		r.progress(ctx, projectID, p)
	})
}

func (r *Runner) setPhase(ctx context.Context, projectID, status string, progress int) {
	if err := r.Store.SetPhase(ctx, projectID, status, progress); err != nil {
		log.Printf("Failed to update project %s phase to %s: %v", projectID, status, err)
	}
}

func (r *Runner) progress(ctx context.Context, projectID string, progress int) {
	if err := r.Store.SetProgress(ctx, projectID, progress); err != nil {
		log.Printf("Failed to update project %s progress: %v", projectID, err)
	}
}

func (r *Runner) fail(ctx context.Context, projectID string, err error) error {
	if storeErr := r.Store.Fail(ctx, projectID, err.Error()); storeErr != nil {
		log.Printf("Failed to mark project %s failed: %v", projectID, storeErr)
	}
	log.Printf("Project %s failed: %v", projectID, err)
	return err
}

// mergeInstructions folds enrichment findings into the free-text
// instruction block so every prompt path sees them.
func mergeInstructions(custom string, extras enrich.Extras) string {
	parts := []string{}
	if custom != "" {
		parts = append(parts, custom)
	}
	if extras.VideoTranscript != "" {
		parts = append(parts, "Existing video transcript for reference: "+extras.VideoTranscript)
	}
	if extras.SocialBio != "" {
		parts = append(parts, "Brand social bio: "+extras.SocialBio)
	}
	if extras.VoiceTranscript != "" {
		parts = append(parts, "Founder voice note: "+extras.VoiceTranscript)
	}
	return strings.Join(parts, "\n")
}
