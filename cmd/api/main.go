package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"profilelens/internal/api"
	"profilelens/internal/api/handlers"
	"profilelens/internal/config"
	"profilelens/internal/domain/services"
	"profilelens/internal/domain/services/ai"
	"profilelens/internal/infrastructure/cache"
	"profilelens/internal/infrastructure/database"
	"profilelens/internal/infrastructure/database/repository"
	"profilelens/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting ProfileLens")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize infrastructure. Both stores are optional: without postgres
	// the service runs with history disabled, without redis with rate
	// limiting and stats disabled.
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to PostgreSQL, analysis history disabled")
		db = nil
	}
	defer func() {
		if db != nil {
			db.Close()
		}
	}()

	redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, rate limiting and stats disabled")
		redisCache = nil
	}
	defer func() {
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Initialize repository
	var repo *repository.AnalysisRepository
	if db != nil {
		repo = repository.NewAnalysisRepository(db.Pool())
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure analysis schema, analysis history disabled")
			repo = nil
		} else {
			log.Info().Msg("analysis repository initialized")
		}
	}

	// Initialize pipeline services
	scraper := services.NewScraperClient(cfg.Scraper, log)
	llmClient := ai.NewLLMClient(cfg.LLM, log)
	extractor := services.NewExtractor(llmClient, cfg.LLM.MaxContentChars, log)

	var store services.AnalysisStore
	if repo != nil {
		store = repo
	}
	analyzer := services.NewAnalyzer(scraper, extractor, store, redisCache, log)
	log.Info().
		Bool("history_enabled", repo != nil).
		Bool("stats_enabled", redisCache != nil).
		Msg("profile analyzer initialized")

	if cfg.Scraper.APIKey == "" {
		log.Warn().Msg("scraper API key is not configured, analysis requests will be rejected")
	}
	if cfg.LLM.APIKey == "" {
		log.Warn().Msg("LLM API key is not configured, analysis requests will be rejected")
	}

	// Initialize handlers
	deps := handlers.Dependencies{
		Config:   cfg,
		Analyzer: analyzer,
		Repo:     repo,
		Cache:    redisCache,
		Logger:   log,
	}
	if db != nil {
		deps.DB = db
	}
	h := handlers.NewHandlers(deps)

	// Create router
	router := api.NewRouter(*cfg, h, redisCache, log)
	httpHandler := router.Setup()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
