package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Brand is the inferred brand identity for a scraped business. Colors
// always holds exactly three hex values; they are inserted verbatim into
// generation prompts.
type Brand struct {
	Colors      []string `json:"colors"`
	Tone        string   `json:"tone"`
	VisualStyle string   `json:"visual_style"`
	KeyMessage  string   `json:"key_message"`
	LogoURL     string   `json:"logo_url,omitempty"`
}

// WebsiteData is the derived understanding of a target site. It is
// regenerated on every run and never persisted on its own.
type WebsiteData struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Industry    string   `json:"industry"`
	Audience    string   `json:"audience"`
	Brand       Brand    `json:"brand"`

	// Parsed carries the sectioned page content for downstream analysis.
	// Empty when the fallback path produced this record.
	Parsed ParsedContent `json:"-"`
}

// scrapeResponse is the payload shape of the content-extraction service.
type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string `json:"markdown"`
		Metadata struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OGImage     string `json:"ogImage"`
		} `json:"metadata"`
	} `json:"data"`
}

const defaultScraperURL = "https://api.firecrawl.dev/v1/scrape"

var scraperClient = &http.Client{Timeout: 30 * time.Second}

// ScrapeWebsite fetches and interprets a target site. It never returns an
// error: on any failure (missing credentials, non-2xx response, malformed
// payload) it returns a deterministic fallback derived from the URL's
// hostname.
func ScrapeWebsite(ctx context.Context, websiteURL string) WebsiteData {
	apiKey := os.Getenv("SCRAPER_API_KEY")
	if apiKey == "" {
		log.Printf("SCRAPER_API_KEY not set, using fallback data for %s", websiteURL)
		return FallbackWebsiteData(websiteURL)
	}

	markdown, metaTitle, metaDescription, err := fetchMarkdown(ctx, apiKey, websiteURL)
	if err != nil {
		log.Printf("Scrape failed for %s: %v (using fallback)", websiteURL, err)
		return FallbackWebsiteData(websiteURL)
	}

	parsed := ParseContent(markdown)

	title := strings.TrimSpace(metaTitle)
	if title == "" {
		title = firstTopHeading(markdown)
	}
	if title == "" {
		title = hostnameTitle(websiteURL)
	}

	hero := parsed.Hero
	if hero == "" {
		hero = strings.TrimSpace(metaDescription)
	}

	features := ExtractFeatures(markdown)

	industry := InferIndustry(markdown)
	visualStyle := InferVisualStyle(markdown)

	return WebsiteData{
		Title:       title,
		Description: hero,
		Features:    features,
		Industry:    industry,
		Audience:    InferAudience(markdown),
		Brand: Brand{
			Colors:      PaletteFor(industry, visualStyle),
			Tone:        InferTone(markdown),
			VisualStyle: visualStyle,
			KeyMessage:  hero,
		},
		Parsed: parsed,
	}
}

// fetchMarkdown requests rendered, cleaned markdown from the
// content-extraction service.
func fetchMarkdown(ctx context.Context, apiKey, websiteURL string) (markdown, title, description string, err error) {
	endpoint := os.Getenv("SCRAPER_API_URL")
	if endpoint == "" {
		endpoint = defaultScraperURL
	}

	body, err := json.Marshal(map[string]interface{}{
		"url":             websiteURL,
		"formats":         []string{"markdown"},
		"onlyMainContent": true,
	})
	if err != nil {
		return "", "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := scraperClient.Do(req)
	if err != nil {
		return "", "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", "", "", fmt.Errorf("scraper status %d: %s", resp.StatusCode, string(raw))
	}

	var payload scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", "", fmt.Errorf("decode scrape response: %w", err)
	}
	if !payload.Success || payload.Data.Markdown == "" {
		return "", "", "", fmt.Errorf("scraper returned no content")
	}

	return payload.Data.Markdown, payload.Data.Metadata.Title, payload.Data.Metadata.Description, nil
}

// FallbackWebsiteData builds deterministic site data from nothing but the
// URL's hostname.
func FallbackWebsiteData(websiteURL string) WebsiteData {
	name := hostnameTitle(websiteURL)

	return WebsiteData{
		Title:       name,
		Description: fmt.Sprintf("%s helps modern businesses work smarter.", name),
		Features: []string{
			"Simple setup in minutes",
			"Built for growing teams",
			"Reliable and secure",
		},
		Industry: defaultIndustry,
		Audience: defaultAudience,
		Brand: Brand{
			Colors:      defaultPalette(),
			Tone:        defaultTone,
			VisualStyle: defaultVisualStyle,
			KeyMessage:  fmt.Sprintf("%s helps modern businesses work smarter.", name),
		},
	}
}

// hostnameTitle turns a URL's hostname into a display name: the first
// label, capitalized, with hyphens replaced by spaces. "acme-tools.io"
// becomes "Acme Tools".
func hostnameTitle(websiteURL string) string {
	host := websiteURL
	if parsed, err := url.Parse(websiteURL); err == nil && parsed.Hostname() != "" {
		host = parsed.Hostname()
	}
	host = strings.TrimPrefix(host, "www.")
	if idx := strings.Index(host, "."); idx > 0 {
		host = host[:idx]
	}

	words := strings.Split(strings.ReplaceAll(host, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

// firstTopHeading returns the text of the first "# " heading, if any.
func firstTopHeading(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") && !strings.HasPrefix(trimmed, "## ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}
	return ""
}
