// main.go
package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/AraMammo/demodrop-sub000/auth"
	"github.com/AraMammo/demodrop-sub000/billing"
	"github.com/AraMammo/demodrop-sub000/internal/platform"
	"github.com/AraMammo/demodrop-sub000/pipeline"
	"github.com/AraMammo/demodrop-sub000/quota"
	"github.com/AraMammo/demodrop-sub000/stitch"
	"github.com/AraMammo/demodrop-sub000/storage"
	"github.com/AraMammo/demodrop-sub000/videogen"
	"github.com/AraMammo/demodrop-sub000/videos"
	"github.com/AraMammo/demodrop-sub000/webhooks"
)

type Server struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine
}

func NewServer() (*Server, error) {
	platform.ValidateEnv()

	// Use the shared connection initializers
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create Gin router with CORS middleware
	router := gin.Default()

	// Add database to context middleware
	router.Use(func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	})

	// Add CORS middleware for your frontend
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", os.Getenv("FRONTEND_URL"))
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Internal-Token")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	server := &Server{
		DB:     db,
		Redis:  rdb,
		Router: router,
	}

	// Setup routes
	server.setupRoutes()

	return server, nil
}

func (s *Server) setupRoutes() {
	// Health check (no auth required)
	s.Router.GET("/health", func(c *gin.Context) {
		// Check database connection
		sqlDB, err := s.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}

		if err := sqlDB.Ping(); err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"status":   "healthy",
			"database": "connected",
		})
	})

	artifacts, err := storage.NewMinioStore()
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// The internal process endpoint runs the pipeline in-request, so the
	// API server needs the full runner. The stitcher is optional here:
	// without ffmpeg only two-clip presets fail, and only on that path.
	var stitcher stitch.Stitcher
	if ff, err := stitch.NewFFmpegStitcher(); err != nil {
		log.Printf("Warning: %v (two-clip presets unavailable on this instance)", err)
	} else {
		stitcher = ff
	}

	runner := pipeline.NewRunner(
		pipeline.NewGormProjectStore(s.DB),
		videogen.NewDriver(videogen.NewHTTPClient()),
		stitcher,
		artifacts,
	)

	// Create handlers
	authHandler := auth.NewHandler(s.DB)
	videoHandler := videos.NewHandler(s.DB, s.Redis, quota.NewGormStore(s.DB), runner, artifacts)
	billingHandler := billing.NewHandler(s.DB)
	webhookHandler := webhooks.NewHandler(s.DB)

	// Public routes
	// Root route - no auth needed
	s.Router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "DemoDrop API v1"})
	})

	// Webhook routes (public - no auth, but signature verified in handler)
	webhookRoutes := s.Router.Group("/webhooks")
	{
		webhookRoutes.POST("/stripe", webhookHandler.HandleStripeWebhook)
	}

	// Auth routes (public - no auth middleware)
	authRoutes := s.Router.Group("/auth")
	{
		authRoutes.GET("/google", authHandler.InitiateGoogleLogin)
		authRoutes.GET("/google/callback", authHandler.GoogleCallback)
		authRoutes.POST("/logout", authHandler.Logout)

		// Protected auth route - requires auth middleware
		authRoutes.GET("/me", auth.AuthMiddleware(), authHandler.GetCurrentUser)
	}

	// Internal service-to-service routes (shared-token guarded)
	internalRoutes := s.Router.Group("/internal", auth.InternalMiddleware())
	{
		internalRoutes.POST("/videos/process", videoHandler.ProcessVideo)
	}

	// Protected routes that require authentication
	protected := s.Router.Group("")
	protected.Use(auth.AuthMiddleware())
	{
		videoRoutes := protected.Group("/videos")
		{
			videoRoutes.POST("", videoHandler.SubmitVideo)
			videoRoutes.GET("", videoHandler.ListVideos)
			videoRoutes.GET("/:id", videoHandler.GetVideo)
			videoRoutes.DELETE("/:id", videoHandler.DeleteVideo)
		}

		billingRoutes := protected.Group("/billing")
		{
			billingRoutes.POST("/checkout", billingHandler.CreateCheckout)
			billingRoutes.POST("/portal", billingHandler.CreatePortal)
			billingRoutes.GET("/plans", billingHandler.GetPlans)
		}
	}
}

func (s *Server) Run() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on port %s", port)
	return s.Router.Run(":" + port)
}

func main() {
	server, err := NewServer()
	if err != nil {
		log.Fatal("Failed to create server:", err)
	}

	if err := server.Run(); err != nil {
		log.Fatal("Failed to run server:", err)
	}
}
