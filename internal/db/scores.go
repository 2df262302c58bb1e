package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alanranger/seo-audit-agent/internal/types"
)

// SavePillarScores upserts the pillar scores for one (property, audit date).
// The composite breakdown is stored as a JSON document; recomputing for the
// same key overwrites.
func (db *DB) SavePillarScores(ctx context.Context, propertyURL, auditDate string, scores *types.PillarScores) error {
	doc, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("failed to marshal pillar scores: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO pillar_scores (property_url, audit_date, visibility, authority,
		     content_schema, local_entity, service_area, brand_overlay, scores)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (property_url, audit_date) DO UPDATE SET
		     visibility = $3, authority = $4, content_schema = $5,
		     local_entity = $6, service_area = $7, brand_overlay = $8,
		     scores = $9, updated_at = NOW()`,
		propertyURL, auditDate,
		scores.Visibility, scores.Authority.Score, scores.ContentSchema,
		scores.LocalEntity, scores.ServiceArea, scores.BrandOverlay.Score,
		doc,
	)
	if err != nil {
		return fmt.Errorf("failed to save pillar scores: %w", err)
	}
	return nil
}

// GetPillarScores retrieves the pillar scores for one (property, audit date),
// or nil when no audit ran that day.
func (db *DB) GetPillarScores(ctx context.Context, propertyURL, auditDate string) (*types.PillarScores, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT scores FROM pillar_scores
		 WHERE property_url = $1 AND audit_date = $2`,
		propertyURL, auditDate,
	).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pillar scores: %w", err)
	}

	var scores types.PillarScores
	if err := json.Unmarshal(doc, &scores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pillar scores: %w", err)
	}
	return &scores, nil
}

// GetLatestPillarScores retrieves the most recent pillar scores for a
// property, or nil when it has never been audited.
func (db *DB) GetLatestPillarScores(ctx context.Context, propertyURL string) (*types.PillarScores, string, error) {
	var (
		doc       []byte
		auditDate string
	)
	err := db.pool.QueryRow(ctx,
		`SELECT scores, audit_date FROM pillar_scores
		 WHERE property_url = $1
		 ORDER BY audit_date DESC LIMIT 1`,
		propertyURL,
	).Scan(&doc, &auditDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to get latest pillar scores: %w", err)
	}

	var scores types.PillarScores
	if err := json.Unmarshal(doc, &scores); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal pillar scores: %w", err)
	}
	return &scores, auditDate, nil
}
