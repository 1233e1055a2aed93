package scrape

import "regexp"

// Brand inference is rule tables, not ML: each attribute is assigned by
// the first matching pattern in a fixed ordered table, with a named
// default when nothing matches.

const (
	defaultIndustry    = "Business"
	defaultAudience    = "modern businesses"
	defaultTone        = "professional"
	defaultVisualStyle = "modern"
)

type keywordRule struct {
	pattern *regexp.Regexp
	value   string
}

var industryRules = []keywordRule{
	{regexp.MustCompile(`(?i)\b(saas|software|platform|api|developer|cloud|automation|ai|machine learning)\b`), "Technology"},
	{regexp.MustCompile(`(?i)\b(shop|store|ecommerce|e-commerce|cart|checkout|retail|marketplace)\b`), "E-commerce"},
	{regexp.MustCompile(`(?i)\b(bank|finance|financial|invest|investment|payment|payments|fintech|insurance)\b`), "Finance"},
	{regexp.MustCompile(`(?i)\b(health|healthcare|medical|clinic|wellness|therapy|fitness)\b`), "Healthcare"},
	{regexp.MustCompile(`(?i)\b(learn|learning|course|courses|education|school|training|tutor)\b`), "Education"},
	{regexp.MustCompile(`(?i)\b(food|restaurant|recipe|meal|coffee|kitchen|delivery)\b`), "Food & Beverage"},
	{regexp.MustCompile(`(?i)\b(design|creative|studio|agency|brand|marketing|media)\b`), "Creative"},
	{regexp.MustCompile(`(?i)\b(travel|hotel|booking|flight|vacation|tour)\b`), "Travel"},
}

var audienceRules = []keywordRule{
	{regexp.MustCompile(`(?i)\b(developer|developers|api|sdk|engineering|devops)\b`), "developers"},
	{regexp.MustCompile(`(?i)\b(enterprise|enterprises|teams|organizations|b2b)\b`), "business teams"},
	{regexp.MustCompile(`(?i)\b(creator|creators|influencer|artist|designer)\b`), "creators"},
	{regexp.MustCompile(`(?i)\b(startup|startups|founder|founders|entrepreneur)\b`), "startup founders"},
	{regexp.MustCompile(`(?i)\b(shopper|shoppers|customer|customers|consumer)\b`), "everyday consumers"},
	{regexp.MustCompile(`(?i)\b(student|students|learner|learners)\b`), "students"},
}

var toneRules = []keywordRule{
	{regexp.MustCompile(`(?i)\b(bold|powerful|fearless|disrupt|revolutionary)\b`), "bold"},
	{regexp.MustCompile(`(?i)\b(elegant|luxury|premium|refined|exclusive)\b`), "elegant"},
	{regexp.MustCompile(`(?i)\b(friendly|easy|simple|fun|delightful|playful)\b`), "friendly"},
	{regexp.MustCompile(`(?i)\b(trusted|secure|reliable|professional|compliance)\b`), "professional"},
}

var visualStyleRules = []keywordRule{
	{regexp.MustCompile(`(?i)\b(minimal|minimalist|clean|simple|essential)\b`), "minimalist"},
	{regexp.MustCompile(`(?i)\b(bold|vibrant|colorful|dynamic|energetic)\b`), "bold"},
	{regexp.MustCompile(`(?i)\b(elegant|luxury|premium|sophisticated)\b`), "elegant"},
	{regexp.MustCompile(`(?i)\b(playful|fun|quirky|whimsical)\b`), "playful"},
}

func matchRules(rules []keywordRule, text, fallback string) string {
	for _, rule := range rules {
		if rule.pattern.MatchString(text) {
			return rule.value
		}
	}
	return fallback
}

// InferIndustry assigns an industry label from scraped text.
func InferIndustry(text string) string {
	return matchRules(industryRules, text, defaultIndustry)
}

// InferAudience assigns a target-audience label from scraped text.
func InferAudience(text string) string {
	return matchRules(audienceRules, text, defaultAudience)
}

// InferTone assigns a tone label from scraped text.
func InferTone(text string) string {
	return matchRules(toneRules, text, defaultTone)
}

// InferVisualStyle assigns a visual-style label from scraped text.
func InferVisualStyle(text string) string {
	return matchRules(visualStyleRules, text, defaultVisualStyle)
}

// Industry base palettes, three hex values each.
var industryPalettes = map[string][]string{
	"Technology":      {"#2563EB", "#0EA5E9", "#F8FAFC"},
	"E-commerce":      {"#F59E0B", "#EF4444", "#FFFFFF"},
	"Finance":         {"#1E3A5F", "#10B981", "#F1F5F9"},
	"Healthcare":      {"#0D9488", "#38BDF8", "#F0FDFA"},
	"Education":       {"#7C3AED", "#F59E0B", "#FAFAFA"},
	"Food & Beverage": {"#DC2626", "#F97316", "#FFF7ED"},
	"Creative":        {"#EC4899", "#8B5CF6", "#FDF4FF"},
	"Travel":          {"#0284C7", "#FBBF24", "#F0F9FF"},
}

// Style overrides layered on top of the industry default.
var stylePalettes = map[string][]string{
	"bold":       {"#FF3D00", "#2979FF", "#FFEA00"},
	"minimalist": {"#111111", "#555555", "#FAFAFA"},
	"elegant":    {"#2B2B2B", "#8A8A8A", "#E5E5E5"},
}

// PaletteFor returns the 3-color brand palette for an (industry, visual
// style) pair. Style overrides win over the industry default: bold maps
// to saturated primaries, minimalist to monochrome, elegant to
// desaturated grays.
func PaletteFor(industry, visualStyle string) []string {
	if palette, ok := stylePalettes[visualStyle]; ok {
		return cloneColors(palette)
	}
	if palette, ok := industryPalettes[industry]; ok {
		return cloneColors(palette)
	}
	return defaultPalette()
}

func defaultPalette() []string {
	return []string{"#1E40AF", "#3B82F6", "#F9FAFB"}
}

func cloneColors(palette []string) []string {
	out := make([]string, len(palette))
	copy(out, palette)
	return out
}
