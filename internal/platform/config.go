package platform

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables the services recognize. Validation is warn-only:
// a missing or placeholder value logs a warning at startup but does not
// halt the process. Code paths that strictly need a key return an error
// at call time instead.
var recognizedKeys = []string{
	"DATABASE_URL",
	"REDIS_URL",
	"OPENAI_API_KEY",
	"VIDEO_API_KEY",
	"VIDEO_API_URL",
	"SCRAPER_API_KEY",
	"SCRAPER_API_URL",
	"STRIPE_SECRET_KEY",
	"STRIPE_WEBHOOK_SECRET",
	"MINIO_ENDPOINT",
	"MINIO_ACCESS_KEY",
	"MINIO_SECRET_KEY",
	"MINIO_BUCKET",
	"APP_BASE_URL",
	"FRONTEND_URL",
	"JWT_SECRET",
	"INTERNAL_API_TOKEN",
	"GOOGLE_CLIENT_ID",
	"GOOGLE_CLIENT_SECRET",
	"STRIPE_PRICE_PRO",
	"STRIPE_PRICE_ENTERPRISE",
}

// ValidateEnv loads .env and warns about missing or placeholder values.
func ValidateEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	for _, key := range recognizedKeys {
		value := os.Getenv(key)
		if value == "" {
			log.Printf("Warning: %s is not set", key)
			continue
		}
		if isPlaceholder(value) {
			log.Printf("Warning: %s looks like a placeholder value", key)
		}
	}
}

func isPlaceholder(value string) bool {
	lower := strings.ToLower(value)
	for _, marker := range []string{"your-", "changeme", "replace-me", "xxx", "todo"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Getenv returns an env var or a default when unset.
func Getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
