package scrape

import (
	"regexp"
	"strings"
)

// ParsedContent holds the semantic sections of a scraped page. Sections
// that are not found stay empty; parsing has no failure mode.
type ParsedContent struct {
	Hero        string   `json:"hero"`
	Features    []string `json:"features"`
	HowItWorks  []string `json:"how_it_works"`
	UseCases    []string `json:"use_cases"`
	Benefits    []string `json:"benefits"`
	SocialProof []string `json:"social_proof"`
}

// Section title classifiers, matched against second-level headings.
var (
	featuresTitleRe    = regexp.MustCompile(`(?i)features|capabilities|what (we|you) (do|get)`)
	howItWorksTitleRe  = regexp.MustCompile(`(?i)how (it|this) works|getting started|steps`)
	useCasesTitleRe    = regexp.MustCompile(`(?i)use cases|solutions|who (it'?s| is it) for`)
	benefitsTitleRe    = regexp.MustCompile(`(?i)benefits|why (choose|use)|advantages`)
	socialProofTitleRe = regexp.MustCompile(`(?i)testimonials|customers|trusted by|reviews|loved by`)
)

// ParseContent splits markdown into semantic sections. Pure function,
// no I/O.
func ParseContent(markdown string) ParsedContent {
	parsed := ParsedContent{}
	parsed.Hero = extractHero(markdown)

	for _, section := range splitSections(markdown) {
		items := sectionItems(section.body)
		switch {
		case featuresTitleRe.MatchString(section.title):
			parsed.Features = append(parsed.Features, items...)
		case howItWorksTitleRe.MatchString(section.title):
			parsed.HowItWorks = append(parsed.HowItWorks, items...)
		case useCasesTitleRe.MatchString(section.title):
			parsed.UseCases = append(parsed.UseCases, items...)
		case benefitsTitleRe.MatchString(section.title):
			parsed.Benefits = append(parsed.Benefits, items...)
		case socialProofTitleRe.MatchString(section.title):
			parsed.SocialProof = append(parsed.SocialProof, items...)
		}
	}

	return parsed
}

type mdSection struct {
	title string
	body  string
}

// splitSections breaks markdown on second-level headings.
func splitSections(markdown string) []mdSection {
	var sections []mdSection
	var current *mdSection

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") && !strings.HasPrefix(trimmed, "### ") {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &mdSection{title: strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))}
			continue
		}
		if current != nil {
			current.body += line + "\n"
		}
	}
	if current != nil {
		sections = append(sections, *current)
	}
	return sections
}

// sectionItems pulls bullet lines, or falls back to non-empty paragraph
// lines, from a section body.
func sectionItems(body string) []string {
	var items []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			item := strings.TrimSpace(trimmed[2:])
			if item != "" {
				items = append(items, stripEmphasis(item))
			}
		}
	}
	if len(items) > 0 {
		return items
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			items = append(items, stripEmphasis(trimmed))
		}
	}
	return items
}

// extractHero finds the page's hero text: the first second-level heading,
// or failing that the first paragraph between 30 and 200 characters.
func extractHero(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") && !strings.HasPrefix(trimmed, "### ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))
		}
	}
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
			continue
		}
		clean := stripEmphasis(trimmed)
		if len(clean) >= 30 && len(clean) <= 200 {
			return clean
		}
	}
	return ""
}

var (
	navKeywordRe = regexp.MustCompile(`(?i)^(home|about|about us|contact|contact us|login|log in|sign up|sign in|pricing|blog|careers|privacy|privacy policy|terms|faq|support|menu|search|docs|documentation)\b`)
	boldSpanRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

const maxFeatures = 3

// ExtractFeatures builds the short feature list from markdown. Bullet
// lines are tried first, then third-level headings, then bolded spans,
// stopping as soon as three candidates are found. The result is
// deduplicated and capped at three entries.
func ExtractFeatures(markdown string) []string {
	var candidates []string

	// Strategy A: bullet lines of reasonable length, skipping obvious nav.
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "- ") && !strings.HasPrefix(trimmed, "* ") {
			continue
		}
		item := stripEmphasis(strings.TrimSpace(trimmed[2:]))
		if len(item) < 15 || len(item) > 120 {
			continue
		}
		if navKeywordRe.MatchString(item) {
			continue
		}
		candidates = append(candidates, item)
	}

	// Strategy B: third-level headings.
	if len(candidates) < 3 {
		for _, line := range strings.Split(markdown, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "### ") {
				heading := stripEmphasis(strings.TrimSpace(strings.TrimPrefix(trimmed, "### ")))
				if heading != "" && !navKeywordRe.MatchString(heading) {
					candidates = append(candidates, heading)
				}
			}
		}
	}

	// Strategy C: bolded spans.
	if len(candidates) < 3 {
		for _, match := range boldSpanRe.FindAllStringSubmatch(markdown, -1) {
			span := strings.TrimSpace(match[1])
			if len(span) >= 15 && len(span) <= 120 && !navKeywordRe.MatchString(span) {
				candidates = append(candidates, span)
			}
		}
	}

	return dedupeStrings(candidates, maxFeatures)
}

func dedupeStrings(items []string, limit int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
		if len(out) >= limit {
			break
		}
	}
	return out
}

var emphasisRe = regexp.MustCompile(`[*_` + "`" + `]+`)

func stripEmphasis(s string) string {
	return strings.TrimSpace(emphasisRe.ReplaceAllString(s, ""))
}
