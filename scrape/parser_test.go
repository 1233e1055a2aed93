package scrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePage = `# Acme Tools

## Ship faster with Acme

Acme Tools automates your release pipeline end to end.

## Features

- **Automated deployments** with one click rollback
- Real-time monitoring across all environments
- Built-in secrets management for your whole team

## How It Works

1. Connect your repository
- Connect your repository in one click
- Configure your pipeline with our visual editor
- Ship with confidence

## Who is it for

- Platform engineering teams
- Fast-moving startups

## Trusted By

- "Acme cut our deploy time in half" - Jane, CTO
`

func TestParseContentSections(t *testing.T) {
	parsed := ParseContent(samplePage)

	require.Equal(t, "Ship faster with Acme", parsed.Hero)
	require.Equal(t, []string{
		"Automated deployments with one click rollback",
		"Real-time monitoring across all environments",
		"Built-in secrets management for your whole team",
	}, parsed.Features)
	require.Len(t, parsed.HowItWorks, 3)
	require.Equal(t, []string{"Platform engineering teams", "Fast-moving startups"}, parsed.UseCases)
	require.Len(t, parsed.SocialProof, 1)
	require.Empty(t, parsed.Benefits)
}

func TestParseContentEmptyInput(t *testing.T) {
	parsed := ParseContent("")
	require.Empty(t, parsed.Hero)
	require.Empty(t, parsed.Features)
	require.Empty(t, parsed.HowItWorks)
}

func TestExtractHeroFallsBackToParagraph(t *testing.T) {
	markdown := "# Title\n\nAcme Tools automates your release pipeline end to end.\n"
	parsed := ParseContent(markdown)
	require.Equal(t, "Acme Tools automates your release pipeline end to end.", parsed.Hero)
}

func TestExtractHeroSkipsShortParagraphs(t *testing.T) {
	markdown := "# Title\n\nHi.\n\nA proper hero sentence that is long enough to qualify here.\n"
	parsed := ParseContent(markdown)
	require.Equal(t, "A proper hero sentence that is long enough to qualify here.", parsed.Hero)
}

func TestExtractFeaturesFromBullets(t *testing.T) {
	features := ExtractFeatures(samplePage)

	require.Len(t, features, 3)
	require.Equal(t, "Automated deployments with one click rollback", features[0])
}

func TestExtractFeaturesSkipsNavBullets(t *testing.T) {
	markdown := strings.Join([]string{
		"- Home page of our site",
		"- Pricing for every plan tier",
		"- About us and our mission",
		"- Real-time collaboration for your team",
		"- Version history with instant restore",
	}, "\n")

	features := ExtractFeatures(markdown)
	require.Equal(t, []string{
		"Real-time collaboration for your team",
		"Version history with instant restore",
	}, features)
}

func TestExtractFeaturesLengthBounds(t *testing.T) {
	markdown := strings.Join([]string{
		"- short",
		"- " + strings.Repeat("x", 130),
		"- A feature description of acceptable length",
	}, "\n")

	features := ExtractFeatures(markdown)
	require.Equal(t, []string{"A feature description of acceptable length"}, features)
}

func TestExtractFeaturesHeadingFallback(t *testing.T) {
	markdown := "### Instant Deploys\n\n### Team Permissions\n\n### Audit Logs\n"
	features := ExtractFeatures(markdown)
	require.Equal(t, []string{"Instant Deploys", "Team Permissions", "Audit Logs"}, features)
}

func TestExtractFeaturesBoldFallback(t *testing.T) {
	markdown := "We offer **automatic nightly backups always** and **fine grained access control** for teams."
	features := ExtractFeatures(markdown)
	require.Equal(t, []string{"automatic nightly backups always", "fine grained access control"}, features)
}

func TestExtractFeaturesDedupedAndCapped(t *testing.T) {
	markdown := strings.Join([]string{
		"- Real-time collaboration for everyone",
		"- real-time collaboration for everyone",
		"- Version history with instant restore",
		"- Granular permissions for large teams",
		"- Offline mode that syncs when you return",
	}, "\n")

	features := ExtractFeatures(markdown)
	require.Len(t, features, 3)
	require.Equal(t, "Real-time collaboration for everyone", features[0])
}

func TestExtractFeaturesEmptyMarkdown(t *testing.T) {
	require.Empty(t, ExtractFeatures(""))
}

func TestStripEmphasis(t *testing.T) {
	require.Equal(t, "bold and italic", stripEmphasis("**bold** and _italic_"))
	require.Equal(t, "code span", stripEmphasis("`code span`"))
}
