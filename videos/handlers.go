package videos

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AraMammo/demodrop-sub000/enrich"
	"github.com/AraMammo/demodrop-sub000/models"
	"github.com/AraMammo/demodrop-sub000/pipeline"
	"github.com/AraMammo/demodrop-sub000/processing"
	"github.com/AraMammo/demodrop-sub000/quota"
	"github.com/AraMammo/demodrop-sub000/storage"
	"github.com/AraMammo/demodrop-sub000/tasks"
)

type Handler struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Quota     quota.Store
	Runner    *pipeline.Runner
	Artifacts storage.ArtifactStore
}

func NewHandler(db *gorm.DB, rdb *redis.Client, quotaStore quota.Store, runner *pipeline.Runner, artifacts storage.ArtifactStore) *Handler {
	return &Handler{DB: db, Redis: rdb, Quota: quotaStore, Runner: runner, Artifacts: artifacts}
}

type SubmitRequest struct {
	WebsiteURL         string         `json:"websiteUrl"`
	StylePreset        string         `json:"stylePreset"`
	CustomInstructions string         `json:"customInstructions"`
	Aesthetic          string         `json:"aesthetic"`
	Enrichment         enrich.Sources `json:"enrichment"`
}

// SubmitVideo validates the request, reserves quota, creates the project
// row and enqueues the generation task. The pipeline itself runs in the
// worker; this returns immediately.
func (h *Handler) SubmitVideo(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.WebsiteURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "websiteUrl is required"})
		return
	}
	if _, ok := processing.LookupPreset(req.StylePreset); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   fmt.Sprintf("unknown style preset %q", req.StylePreset),
			"presets": processing.PresetNames(),
		})
		return
	}

	if err := h.Quota.Consume(c.Request.Context(), userID); err != nil {
		if errors.Is(err, quota.ErrExhausted) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Video limit reached for your plan. Upgrade to generate more videos."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check quota"})
		return
	}

	project := models.Project{
		ID:                 uuid.NewString(),
		UserID:             userID,
		WebsiteURL:         req.WebsiteURL,
		StylePreset:        req.StylePreset,
		CustomInstructions: req.CustomInstructions,
		Aesthetic:          req.Aesthetic,
		Status:             models.StatusQueued,
	}
	if err := h.DB.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	payload := tasks.GenerateTaskPayload{
		ProjectID:          project.ID,
		WebsiteURL:         req.WebsiteURL,
		StylePreset:        req.StylePreset,
		CustomInstructions: req.CustomInstructions,
		Aesthetic:          req.Aesthetic,
		Enrichment:         req.Enrichment,
	}
	payloadStr, err := tasks.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue project"})
		return
	}
	if err := h.Redis.LPush(c.Request.Context(), tasks.QueueGenerate, payloadStr).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue project"})
		return
	}

	// Notify the scheduler's stale-run sweep that a new run started.
	if err := h.Redis.Publish(c.Request.Context(), "project_created", project.ID).Err(); err != nil {
		log.Printf("Error publishing project_created for %s: %v", project.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"projectId": project.ID, "status": models.StatusQueued})
}

type ProcessRequest struct {
	ProjectID          string         `json:"projectId"`
	WebsiteURL         string         `json:"websiteUrl"`
	StylePreset        string         `json:"stylePreset"`
	CustomInstructions string         `json:"customInstructions"`
	Aesthetic          string         `json:"aesthetic"`
	Enrichment         enrich.Sources `json:"enrichment"`
}

// ProcessVideo drives the full pipeline synchronously within the request
// lifetime. Internal-only; guarded by the shared-token middleware.
func (h *Handler) ProcessVideo(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ProjectID == "" || req.WebsiteURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId and websiteUrl are required"})
		return
	}

	videoURL, err := h.Runner.Run(c.Request.Context(), pipeline.Request{
		ProjectID:          req.ProjectID,
		WebsiteURL:         req.WebsiteURL,
		StylePreset:        req.StylePreset,
		CustomInstructions: req.CustomInstructions,
		Aesthetic:          req.Aesthetic,
		Enrichment:         req.Enrichment,
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": models.StatusFailed, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.StatusCompleted, "videoUrl": videoURL})
}

// GetVideo returns the full project record for status polling.
func (h *Handler) GetVideo(c *gin.Context) {
	userID := c.GetUint("user_id")
	projectID := c.Param("id")

	var project models.Project
	if err := h.DB.First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}
	if project.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListVideos returns the user's projects, optionally filtered by status
// and a website-URL search term.
func (h *Handler) ListVideos(c *gin.Context) {
	userID := c.GetUint("user_id")

	query := h.DB.Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("website_url ILIKE ?", "%"+search+"%")
	}

	var projects []models.Project
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	c.JSON(http.StatusOK, projects)
}

// DeleteVideo removes the stored artifact and the project row.
func (h *Handler) DeleteVideo(c *gin.Context) {
	userID := c.GetUint("user_id")
	projectID := c.Param("id")

	var project models.Project
	if err := h.DB.First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}
	if project.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your project"})
		return
	}

	if err := h.Artifacts.DeleteVideo(c.Request.Context(), project.ID); err != nil {
		log.Printf("Failed to delete artifact for project %s: %v", project.ID, err)
	}
	if err := h.DB.Delete(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
