package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"profilelens/internal/config"
	"profilelens/internal/domain/models"
	"profilelens/internal/domain/services"
	"profilelens/internal/infrastructure/cache"
	"profilelens/internal/infrastructure/database/repository"
	"profilelens/pkg/logger"
)

// ProfileHandler handles profile analysis API requests
type ProfileHandler struct {
	config   *config.Config
	analyzer *services.Analyzer
	repo     *repository.AnalysisRepository
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(cfg *config.Config, analyzer *services.Analyzer, repo *repository.AnalysisRepository, c *cache.RedisCache, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		config:   cfg,
		analyzer: analyzer,
		repo:     repo,
		cache:    c,
		logger:   log.WithComponent("profile-handler"),
	}
}

// Analyze handles POST /api/v1/profile/analyze.
// Only precondition failures produce an error response; once the pipeline
// runs it always answers with the optimistic success envelope, signalling
// degradation through the confidence field and notes.
func (h *ProfileHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	if h.config.Scraper.APIKey == "" || h.config.LLM.APIKey == "" {
		h.logger.Error().Msg("external service credentials are not configured")
		h.respondError(w, http.StatusServiceUnavailable, "analysis services are not configured")
		return
	}

	result := h.analyzer.Analyze(r.Context(), req.URL)

	h.respondJSON(w, http.StatusOK, result)
}

// History handles GET /api/v1/profile/history
func (h *ProfileHandler) History(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		h.respondError(w, http.StatusServiceUnavailable, "analysis history is unavailable")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	records, err := h.repo.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list analysis records")
		h.respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// HistoryItem handles GET /api/v1/profile/history/{id}
func (h *ProfileHandler) HistoryItem(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		h.respondError(w, http.StatusServiceUnavailable, "analysis history is unavailable")
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	rec, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("id", idStr).Msg("failed to load analysis record")
		h.respondError(w, http.StatusInternalServerError, "failed to load record")
		return
	}
	if rec == nil {
		h.respondError(w, http.StatusNotFound, "record not found")
		return
	}

	h.respondJSON(w, http.StatusOK, rec)
}

// Stats handles GET /api/v1/profile/stats
func (h *ProfileHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.respondError(w, http.StatusServiceUnavailable, "stats are unavailable")
		return
	}

	stats, err := h.cache.GetAnalysisStats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load analysis stats")
		h.respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}

func (h *ProfileHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *ProfileHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
