package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"profilelens/internal/domain/models"
	"profilelens/pkg/logger"
)

// CompletionClient is the slice of the LLM client the extractor needs
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Extractor turns scraped page content into a structured profile record by
// way of an external completion service. It never returns an error: when the
// call or the parse fails it falls back to a fixed default instance, so the
// pipeline always hands the normalizer a complete, well-formed object.
type Extractor struct {
	llm             CompletionClient
	maxContentChars int
	logger          *logger.Logger
}

// NewExtractor creates a new extractor. maxContentChars bounds how much
// scraped markdown is embedded in the prompt, to respect request-size limits.
func NewExtractor(llm CompletionClient, maxContentChars int, log *logger.Logger) *Extractor {
	if maxContentChars <= 0 {
		maxContentChars = 12000
	}
	return &Extractor{
		llm:             llm,
		maxContentChars: maxContentChars,
		logger:          log.WithComponent("extractor"),
	}
}

// defaultProfile is the degraded-default record substituted whenever the
// completion service fails or returns unusable output. It is complete on
// purpose: a partially filled object must never flow downstream.
func defaultProfile(urlUsername string, platform models.Platform) models.ExtractedProfile {
	return models.ExtractedProfile{
		Username:      urlUsername,
		HasProfilePic: true,
		Platform:      string(platform),
		Confidence:    models.ConfidenceLow,
		Notes:         "Automated extraction was unavailable; metrics default to zero and are derived from the URL only.",
	}
}

// Extract builds the extraction prompt from the scrape result, submits it to
// the completion service and parses the returned text as a strict JSON
// profile record.
func (e *Extractor) Extract(ctx context.Context, scraped models.ScrapeResult, classification models.PlatformClassification, targetURL string) models.ExtractedProfile {
	fallback := defaultProfile(classification.InferredUsername, classification.Platform)

	prompt := e.buildPrompt(scraped, classification.Platform, targetURL)

	raw, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		e.logger.Warn().Err(err).Str("url", targetURL).Msg("completion call failed, using default profile")
		return fallback
	}

	cleaned := stripCodeFences(raw)

	// Unmarshal over a copy of the default so that fields the model omitted
	// keep their default values (shallow merge).
	merged := fallback
	if err := json.Unmarshal([]byte(cleaned), &merged); err != nil {
		e.logger.Warn().
			Err(err).
			Str("url", targetURL).
			Str("response_prefix", prefix(raw, 200)).
			Msg("completion output is not valid JSON, using default profile")
		return fallback
	}

	return merged
}

// buildPrompt fills the fixed extraction instruction template. The template
// pins down the output shape, the numeric-suffix rules and the prohibition on
// fabricating data the page does not show.
func (e *Extractor) buildPrompt(scraped models.ScrapeResult, platform models.Platform, targetURL string) string {
	content := scraped.MarkdownContent
	if len(content) > e.maxContentChars {
		content = content[:e.maxContentChars]
	}

	var sb strings.Builder

	sb.WriteString("You are analyzing the scraped content of a social media profile page.\n\n")
	sb.WriteString(fmt.Sprintf("**Platform:** %s\n", platform))
	sb.WriteString(fmt.Sprintf("**Profile URL:** %s\n", targetURL))
	sb.WriteString(fmt.Sprintf("**Outbound links found on the page:** %d\n", len(scraped.OutboundLinks)))

	sb.WriteString("\n**Page content (markdown):**\n```\n")
	sb.WriteString(content)
	sb.WriteString("\n```\n")

	sb.WriteString(`
Extract the profile metrics into a JSON object with exactly this structure:
{
  "username": string,
  "followers_count": integer >= 0,
  "following_count": integer >= 0,
  "posts_count": integer >= 0,
  "bio_length": integer >= 0,
  "account_age": integer >= 0 (days, 0 if unknown),
  "has_profile_pic": boolean,
  "username_flags": {
    "numbers_heavy": boolean,
    "random_characters": boolean,
    "very_short": boolean
  },
  "platform": string,
  "confidence": "high" | "medium" | "low",
  "notes": string
}

Rules:
- Convert suffixed counts to integers: "1.2M" means 1200000, "15.3K" means 15300.
- Convert thousands-separated literals such as "12,345" to the integer 12345.
- Do not invent data. Any metric not visible in the content defaults to 0, any flag to false.
- bio_length is the character length of the profile bio text.
- Set confidence to reflect how much of the record you could actually read from the content.
- Respond with the JSON object only. No explanation, no markdown code fences.`)

	return sb.String()
}

// stripCodeFences removes markdown code-fence wrappers (labeled or bare) and
// narrows the text to the outermost JSON object, tolerating stray prose
// around it.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end != -1 && end > start {
		content = content[start : end+1]
	}

	return content
}

func prefix(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
