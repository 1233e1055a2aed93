package scrape

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHostnameTitle(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://acme-tools.io", "Acme Tools"},
		{"https://www.example.com/pricing", "Example"},
		{"http://my-cool-startup.dev", "My Cool Startup"},
		{"stripe.com", "Stripe"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, hostnameTitle(tt.url), "url: %q", tt.url)
	}
}

func TestFirstTopHeading(t *testing.T) {
	require.Equal(t, "Acme Tools", firstTopHeading("intro\n# Acme Tools\n## Sub"))
	require.Empty(t, firstTopHeading("## Only second level\ntext"))
}

func TestFallbackWebsiteData(t *testing.T) {
	data := FallbackWebsiteData("https://acme-tools.io")

	require.Equal(t, "Acme Tools", data.Title)
	require.Len(t, data.Features, 3)
	require.Equal(t, []string{"#1E40AF", "#3B82F6", "#F9FAFB"}, data.Brand.Colors)
	require.Equal(t, "professional", data.Brand.Tone)
	require.NotEmpty(t, data.Description)
	require.Equal(t, data.Description, data.Brand.KeyMessage)
	require.Empty(t, data.Parsed.Features, "fallback data carries no parsed sections")
}

func TestScrapeWebsiteWithoutCredentialsUsesFallback(t *testing.T) {
	t.Setenv("SCRAPER_API_KEY", "")

	data := ScrapeWebsite(context.Background(), "https://acme-tools.io")
	require.Equal(t, FallbackWebsiteData("https://acme-tools.io"), data)
}

func TestScrapeWebsiteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "https://acme-tools.io", req["url"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"markdown": samplePage,
				"metadata": map[string]string{
					"title":       "Acme Tools | Ship Faster",
					"description": "Release automation for teams",
				},
			},
		})
	}))
	defer srv.Close()

	t.Setenv("SCRAPER_API_KEY", "test-key")
	t.Setenv("SCRAPER_API_URL", srv.URL)

	data := ScrapeWebsite(context.Background(), "https://acme-tools.io")

	require.Equal(t, "Acme Tools | Ship Faster", data.Title)
	require.Equal(t, "Ship faster with Acme", data.Description, "hero wins over metadata description")
	require.Len(t, data.Features, 3)
	require.Equal(t, "Technology", data.Industry)
	require.Len(t, data.Brand.Colors, 3)
	require.NotEmpty(t, data.Parsed.Features, "success path carries parsed sections")
}

func TestScrapeWebsiteServerErrorUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer srv.Close()

	t.Setenv("SCRAPER_API_KEY", "test-key")
	t.Setenv("SCRAPER_API_URL", srv.URL)

	data := ScrapeWebsite(context.Background(), "https://acme-tools.io")
	require.Equal(t, FallbackWebsiteData("https://acme-tools.io"), data)
}

func TestScrapeWebsiteEmptyPayloadUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": map[string]string{"markdown": ""}})
	}))
	defer srv.Close()

	t.Setenv("SCRAPER_API_KEY", "test-key")
	t.Setenv("SCRAPER_API_URL", srv.URL)

	data := ScrapeWebsite(context.Background(), "https://acme-tools.io")
	require.Equal(t, "Acme Tools", data.Title)
	require.Equal(t, "Business", data.Industry)
}
