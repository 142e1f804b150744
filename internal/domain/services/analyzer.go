package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"profilelens/internal/domain/models"
	"profilelens/internal/infrastructure/cache"
	"profilelens/pkg/logger"
)

// AnalysisStore persists finished analyses for the history and admin views.
// Persistence is a collaborator concern: the pipeline works without it and a
// store failure never fails a request.
type AnalysisStore interface {
	Save(ctx context.Context, rec *models.AnalysisRecord) error
}

// Analyzer runs the profile signal extraction pipeline: classify the URL,
// scrape the page, extract structured metrics, normalize the result. The
// stages run strictly sequentially with a single attempt each; every stage
// degrades on failure instead of aborting, so Analyze is total.
type Analyzer struct {
	scraper   *ScraperClient
	extractor *Extractor
	store     AnalysisStore
	cache     *cache.RedisCache
	logger    *logger.Logger
}

// NewAnalyzer creates a new analyzer. store and statsCache may be nil; both
// are best-effort collaborators.
func NewAnalyzer(scraper *ScraperClient, extractor *Extractor, store AnalysisStore, statsCache *cache.RedisCache, log *logger.Logger) *Analyzer {
	return &Analyzer{
		scraper:   scraper,
		extractor: extractor,
		store:     store,
		cache:     statsCache,
		logger:    log.WithComponent("analyzer"),
	}
}

// Analyze runs the full pipeline for one profile URL
func (a *Analyzer) Analyze(ctx context.Context, targetURL string) models.AnalyzeResponse {
	start := time.Now()

	classification := ClassifyPlatform(targetURL)

	scraped := a.scraper.Scrape(ctx, targetURL)

	// The extractor runs even on a failed scrape: empty content still yields
	// a well-formed (default) record.
	extracted := a.extractor.Extract(ctx, scraped, classification, targetURL)

	response := NormalizeProfile(extracted, classification.InferredUsername)

	a.logger.Info().
		Str("url", targetURL).
		Str("platform", string(classification.Platform)).
		Str("username", response.Profile.Username).
		Str("confidence", string(response.Confidence)).
		Bool("scrape_succeeded", scraped.Succeeded).
		Dur("duration", time.Since(start)).
		Msg("profile analyzed")

	a.record(ctx, targetURL, classification, response)

	return response
}

// record persists the analysis and bumps the stats counters, best-effort
func (a *Analyzer) record(ctx context.Context, targetURL string, classification models.PlatformClassification, response models.AnalyzeResponse) {
	if a.store != nil {
		rec := &models.AnalysisRecord{
			ID:         uuid.New(),
			URL:        targetURL,
			Platform:   classification.Platform,
			Username:   response.Profile.Username,
			Confidence: response.Confidence,
			Response:   response,
			CreatedAt:  time.Now().UTC(),
		}
		if err := a.store.Save(ctx, rec); err != nil {
			a.logger.Warn().Err(err).Str("url", targetURL).Msg("failed to persist analysis record")
		}
	}

	if a.cache != nil {
		if err := a.cache.IncrAnalysisStats(ctx, string(classification.Platform), string(response.Confidence)); err != nil {
			a.logger.Warn().Err(err).Msg("failed to update analysis counters")
		}
	}
}
