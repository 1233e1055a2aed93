package scrape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInferIndustry(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"We build a SaaS platform for invoicing", "Technology"},
		{"Add items to your cart and checkout in seconds", "E-commerce"},
		{"Smarter investment tools for your portfolio", "Finance"},
		{"Book a session with a licensed therapy provider", "Healthcare"},
		{"Online courses for busy professionals", "Education"},
		{"Fresh meal kits delivered weekly", "Food & Beverage"},
		{"A creative studio for ambitious brands", "Creative"},
		{"Find the best flight deals", "Travel"},
		{"We sell artisanal candles", "Business"},
		{"", "Business"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, InferIndustry(tt.text), "text: %q", tt.text)
	}
}

func TestInferIndustryFirstRuleWins(t *testing.T) {
	// Text that matches both Technology and Finance rules; the table is
	// ordered, so Technology wins.
	got := InferIndustry("An AI platform for payments")
	require.Equal(t, "Technology", got)
}

func TestInferAudience(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"An SDK and API for developers", "developers"},
		{"Built for enterprise teams", "business teams"},
		{"Tools every creator needs", "creators"},
		{"For founders who move fast", "startup founders"},
		{"Loved by shoppers everywhere", "everyday consumers"},
		{"Helping students learn faster", "students"},
		{"General purpose widgets", "modern businesses"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, InferAudience(tt.text), "text: %q", tt.text)
	}
}

func TestInferTone(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"A fearless take on project management", "bold"},
		{"Refined, premium materials", "elegant"},
		{"Simple, delightful budgeting", "friendly"},
		{"Secure and compliance ready", "professional"},
		{"Plain text with no signals", "professional"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, InferTone(tt.text), "text: %q", tt.text)
	}
}

func TestInferVisualStyle(t *testing.T) {
	require.Equal(t, "minimalist", InferVisualStyle("A clean, minimal interface"))
	require.Equal(t, "bold", InferVisualStyle("Vibrant colors, dynamic motion"))
	require.Equal(t, "elegant", InferVisualStyle("Sophisticated design for luxury brands"))
	require.Equal(t, "playful", InferVisualStyle("A quirky little app"))
	require.Equal(t, "modern", InferVisualStyle("nothing notable here"))
}

func TestPaletteForStyleOverridesIndustry(t *testing.T) {
	// Style palettes win over the industry default.
	require.Equal(t, []string{"#FF3D00", "#2979FF", "#FFEA00"}, PaletteFor("Technology", "bold"))
	require.Equal(t, []string{"#111111", "#555555", "#FAFAFA"}, PaletteFor("Finance", "minimalist"))
	require.Equal(t, []string{"#2B2B2B", "#8A8A8A", "#E5E5E5"}, PaletteFor("Travel", "elegant"))
}

func TestPaletteForIndustryDefaults(t *testing.T) {
	require.Equal(t, []string{"#2563EB", "#0EA5E9", "#F8FAFC"}, PaletteFor("Technology", "modern"))
	require.Equal(t, []string{"#DC2626", "#F97316", "#FFF7ED"}, PaletteFor("Food & Beverage", "modern"))

	// Unknown industry and style falls back to the default palette.
	require.Equal(t, []string{"#1E40AF", "#3B82F6", "#F9FAFB"}, PaletteFor("Unknown", "modern"))
}

func TestPaletteForAlwaysThreeColors(t *testing.T) {
	for _, industry := range []string{"Technology", "E-commerce", "Finance", "Healthcare", "Education", "Food & Beverage", "Creative", "Travel", "Business"} {
		for _, style := range []string{"modern", "bold", "minimalist", "elegant", "playful"} {
			require.Len(t, PaletteFor(industry, style), 3, "industry %q style %q", industry, style)
		}
	}
}

func TestPaletteForReturnsCopy(t *testing.T) {
	first := PaletteFor("Technology", "bold")
	first[0] = "#000000"
	second := PaletteFor("Technology", "bold")
	require.Equal(t, "#FF3D00", second[0], "callers must not be able to mutate the shared palette")
}
