package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"profilelens/internal/config"
	"profilelens/internal/domain/models"
	"profilelens/pkg/logger"
)

// ScraperClient calls the external page-scraping service. It never returns
// an error: every failure mode degrades to an empty ScrapeResult so the
// pipeline can continue with whatever it has.
type ScraperClient struct {
	httpClient *http.Client
	config     config.ScraperConfig
	logger     *logger.Logger
}

// NewScraperClient creates a new scraper client
func NewScraperClient(cfg config.ScraperConfig, log *logger.Logger) *ScraperClient {
	return &ScraperClient{
		httpClient: &http.Client{},
		config:     cfg,
		logger:     log.WithComponent("scraper"),
	}
}

// scrapeRequest is the wire format of the scraping service
type scrapeRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
	WaitFor         int64    `json:"waitFor"`
}

// scrapeResponse tolerates both the enveloped and the flat payload shape
type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string   `json:"markdown"`
		Links    []string `json:"links"`
	} `json:"data"`
	Markdown string   `json:"markdown"`
	Links    []string `json:"links"`
}

// Scrape requests a markdown rendering plus outbound links for the target
// URL. Full-page content is wanted, so main-content filtering is off, and a
// fixed render wait lets client-side content load before capture.
func (c *ScraperClient) Scrape(ctx context.Context, targetURL string) models.ScrapeResult {
	failed := models.ScrapeResult{Succeeded: false}

	body, err := json.Marshal(scrapeRequest{
		URL:             targetURL,
		Formats:         []string{"markdown", "links"},
		OnlyMainContent: false,
		WaitFor:         c.config.WaitFor.Milliseconds(),
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to encode scrape request")
		return failed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn().Err(err).Str("url", targetURL).Msg("failed to build scrape request")
		return failed
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", targetURL).Msg("scrape request failed, continuing with empty content")
		return failed
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", targetURL).Msg("failed to read scrape response")
		return failed
	}

	var payload scrapeResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.logger.Warn().Err(err).Int("status", resp.StatusCode).Msg("scrape response is not JSON")
		return failed
	}

	markdown := payload.Data.Markdown
	if markdown == "" {
		markdown = payload.Markdown
	}
	links := payload.Data.Links
	if len(links) == 0 {
		links = payload.Links
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !payload.Success {
		// Salvage whatever content came back rather than discarding everything
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Bool("service_success", payload.Success).
			Int("salvaged_chars", len(markdown)).
			Str("url", targetURL).
			Msg("scrape service reported failure")
		return models.ScrapeResult{MarkdownContent: markdown, Succeeded: false}
	}

	c.logger.Debug().
		Int("content_chars", len(markdown)).
		Int("links", len(links)).
		Str("url", targetURL).
		Msg("scrape succeeded")

	return models.ScrapeResult{
		MarkdownContent: markdown,
		OutboundLinks:   links,
		Succeeded:       true,
	}
}
