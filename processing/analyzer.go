package processing

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/AraMammo/demodrop-sub000/scrape"
)

// ProductUnderstanding is the structured result of the product-analysis
// stage: what the product does and how to show it on screen.
type ProductUnderstanding struct {
	WhatItDoes    string   `json:"what_it_does" jsonschema_description:"One plain-language sentence describing what the product does."`
	ProblemSolved string   `json:"problem_solved" jsonschema_description:"The concrete problem this product removes for its users."`
	Workflow      []string `json:"workflow" jsonschema_description:"3 to 4 short steps describing how a user goes from start to result."`
	Features      []string `json:"features" jsonschema_description:"Up to 3 features, each enriched with the benefit it delivers."`
	Examples      []string `json:"examples" jsonschema_description:"Up to 2 concrete before/after examples of using the product."`
	VideoGuidance string   `json:"video_guidance" jsonschema_description:"A short note on what the demo video should emphasize visually."`
}

var productUnderstandingSchema = GenerateSchema[ProductUnderstanding]()

// AnalyzeProduct turns parsed website content into a product
// understanding. One chat call; on any error or missing key it falls back
// to a deterministic mapping off the parsed content, with no retry.
// Partially valid responses are accepted and backfilled field by field.
func AnalyzeProduct(ctx context.Context, site scrape.WebsiteData, parsed scrape.ParsedContent) ProductUnderstanding {
	fallback := fallbackUnderstanding(site, parsed)

	client, err := newOpenAIClient()
	if err != nil {
		log.Printf("Product analysis unavailable: %v (using content-derived summary)", err)
		return fallback
	}

	prompt := buildAnalysisPrompt(site, parsed)
	response, err := getStructuredResponse[ProductUnderstanding](ctx, client, "", prompt, "product_understanding", productUnderstandingSchema)
	if err != nil {
		log.Printf("Product analysis failed: %v (using content-derived summary)", err)
		return fallback
	}

	return backfillUnderstanding(*response, fallback)
}

func buildAnalysisPrompt(site scrape.WebsiteData, parsed scrape.ParsedContent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are analyzing a business website to prepare a marketing demo video.\n\n")
	fmt.Fprintf(&b, "Business: %s\n", site.Title)
	fmt.Fprintf(&b, "Industry: %s\n", site.Industry)
	fmt.Fprintf(&b, "Audience: %s\n", site.Audience)
	if site.Description != "" {
		fmt.Fprintf(&b, "Marketing copy: %s\n", site.Description)
	}
	if len(site.Features) > 0 {
		fmt.Fprintf(&b, "Listed features:\n%s\n", bulletList(site.Features))
	}
	if len(parsed.HowItWorks) > 0 {
		fmt.Fprintf(&b, "How it works:\n%s\n", bulletList(parsed.HowItWorks))
	}
	if len(parsed.Benefits) > 0 {
		fmt.Fprintf(&b, "Benefits:\n%s\n", bulletList(parsed.Benefits))
	}
	if len(parsed.UseCases) > 0 {
		fmt.Fprintf(&b, "Use cases:\n%s\n", bulletList(parsed.UseCases))
	}
	b.WriteString("\nDescribe what this product does, the problem it solves, a 3-4 step user workflow, ")
	b.WriteString("up to 3 benefit-enriched features, up to 2 concrete before/after examples, ")
	b.WriteString("and what the demo video should emphasize visually.")
	return b.String()
}

// fallbackUnderstanding derives a usable product understanding from
// parsed content alone.
func fallbackUnderstanding(site scrape.WebsiteData, parsed scrape.ParsedContent) ProductUnderstanding {
	what := site.Description
	if what == "" {
		what = fmt.Sprintf("%s is a %s product for %s.", site.Title, strings.ToLower(site.Industry), site.Audience)
	}

	workflow := parsed.HowItWorks
	if len(workflow) == 0 {
		workflow = []string{
			fmt.Sprintf("Visit %s and sign up", site.Title),
			"Set up in a few clicks",
			"See results right away",
		}
	}
	if len(workflow) > 4 {
		workflow = workflow[:4]
	}

	features := site.Features
	if len(features) == 0 {
		features = []string{fmt.Sprintf("Everything %s need in one place", site.Audience)}
	}
	if len(features) > 3 {
		features = features[:3]
	}

	examples := parsed.UseCases
	if len(examples) > 2 {
		examples = examples[:2]
	}

	return ProductUnderstanding{
		WhatItDoes:    what,
		ProblemSolved: fmt.Sprintf("Saves %s time and effort on what %s handles for them.", site.Audience, site.Title),
		Workflow:      workflow,
		Features:      features,
		Examples:      examples,
		VideoGuidance: fmt.Sprintf("Show %s in action with a %s feel.", site.Title, site.Brand.Tone),
	}
}

// backfillUnderstanding keeps whatever fields the model returned and
// fills gaps from the deterministic fallback rather than rejecting the
// response wholesale.
func backfillUnderstanding(got, fallback ProductUnderstanding) ProductUnderstanding {
	if strings.TrimSpace(got.WhatItDoes) == "" {
		got.WhatItDoes = fallback.WhatItDoes
	}
	if strings.TrimSpace(got.ProblemSolved) == "" {
		got.ProblemSolved = fallback.ProblemSolved
	}
	if len(got.Workflow) == 0 {
		got.Workflow = fallback.Workflow
	}
	if len(got.Workflow) > 4 {
		got.Workflow = got.Workflow[:4]
	}
	if len(got.Features) == 0 {
		got.Features = fallback.Features
	}
	if len(got.Features) > 3 {
		got.Features = got.Features[:3]
	}
	if len(got.Examples) > 2 {
		got.Examples = got.Examples[:2]
	}
	if strings.TrimSpace(got.VideoGuidance) == "" {
		got.VideoGuidance = fallback.VideoGuidance
	}
	return got
}

func bulletList(items []string) string {
	var formatted []string
	for _, item := range items {
		if item != "" {
			formatted = append(formatted, fmt.Sprintf("- %s", item))
		}
	}
	return strings.Join(formatted, "\n")
}
