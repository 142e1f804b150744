package handlers

import (
	"profilelens/internal/config"
	"profilelens/internal/domain/services"
	"profilelens/internal/infrastructure/cache"
	"profilelens/internal/infrastructure/database/repository"
	"profilelens/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health  *HealthHandler
	Profile *ProfileHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Config   *config.Config
	Analyzer *services.Analyzer
	Repo     *repository.AnalysisRepository
	Cache    *cache.RedisCache
	DB       Pinger
	Logger   *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(deps.DB, deps.Cache, deps.Config.App.Version, deps.Logger),
		Profile: NewProfileHandler(deps.Config, deps.Analyzer, deps.Repo, deps.Cache, deps.Logger),
	}
}
