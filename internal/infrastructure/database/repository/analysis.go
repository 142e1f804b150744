package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"profilelens/internal/domain/models"
)

const analysisSchema = `
CREATE TABLE IF NOT EXISTS analysis_records (
	id          UUID PRIMARY KEY,
	url         TEXT NOT NULL,
	platform    TEXT NOT NULL,
	username    TEXT NOT NULL,
	confidence  TEXT NOT NULL,
	response    JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_analysis_records_created_at ON analysis_records (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_analysis_records_platform ON analysis_records (platform);
`

// AnalysisRepository persists analysis records for history and admin views
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

// EnsureSchema creates the analysis tables if they do not exist
func (r *AnalysisRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, analysisSchema); err != nil {
		return fmt.Errorf("failed to ensure analysis schema: %w", err)
	}
	return nil
}

// Save inserts a new analysis record
func (r *AnalysisRepository) Save(ctx context.Context, rec *models.AnalysisRecord) error {
	payload, err := json.Marshal(rec.Response)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis response: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO analysis_records (id, url, platform, username, confidence, response, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.URL, string(rec.Platform), rec.Username, string(rec.Confidence), payload, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis record: %w", err)
	}
	return nil
}

// List returns the most recent analysis records, newest first
func (r *AnalysisRepository) List(ctx context.Context, limit, offset int) ([]models.AnalysisRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, url, platform, username, confidence, response, created_at
		 FROM analysis_records
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis records: %w", err)
	}
	defer rows.Close()

	var records []models.AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysisRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Get returns a single analysis record, or nil if it does not exist
func (r *AnalysisRepository) Get(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, url, platform, username, confidence, response, created_at
		 FROM analysis_records
		 WHERE id = $1`,
		id,
	)

	rec, err := scanAnalysisRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func scanAnalysisRecord(row pgx.Row) (*models.AnalysisRecord, error) {
	var (
		rec        models.AnalysisRecord
		platform   string
		confidence string
		payload    []byte
	)

	if err := row.Scan(&rec.ID, &rec.URL, &platform, &rec.Username, &confidence, &payload, &rec.CreatedAt); err != nil {
		return nil, err
	}

	rec.Platform = models.Platform(platform)
	rec.Confidence = models.Confidence(confidence)

	if err := json.Unmarshal(payload, &rec.Response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis response: %w", err)
	}

	return &rec, nil
}
