package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRecord is one persisted analysis, kept for history and audit views
type AnalysisRecord struct {
	ID         uuid.UUID       `json:"id"`
	URL        string          `json:"url"`
	Platform   Platform        `json:"platform"`
	Username   string          `json:"username"`
	Confidence Confidence      `json:"confidence"`
	Response   AnalyzeResponse `json:"response"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AnalysisStats holds aggregate counters over recorded analyses
type AnalysisStats struct {
	TotalAnalyses int64            `json:"total_analyses"`
	ByPlatform    map[string]int64 `json:"by_platform"`
	ByConfidence  map[string]int64 `json:"by_confidence"`
}
