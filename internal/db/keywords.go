package db

import (
	"context"
	"fmt"

	"github.com/alanranger/seo-audit-agent/internal/types"
)

// UpsertKeywords writes classified keyword rows for one run, keyed by
// (run_id, keyword).
func (db *DB) UpsertKeywords(ctx context.Context, runID string, rows []types.KeywordRow) error {
	for _, row := range rows {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO audit_keywords
			     (run_id, keyword, segment, segment_confidence, segment_reason,
			      segment_source, best_rank_group, best_url, has_ai_overview,
			      ai_alan_citations_count, cited_urls)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT (run_id, keyword) DO UPDATE SET
			     segment = $3, segment_confidence = $4, segment_reason = $5,
			     segment_source = $6, best_rank_group = $7, best_url = $8,
			     has_ai_overview = $9, ai_alan_citations_count = $10,
			     cited_urls = $11, updated_at = NOW()`,
			runID, row.Keyword, row.Segment, row.SegmentConfidence, row.SegmentReason,
			row.SegmentSource, row.BestRankGroup, row.BestURL, row.HasAIOverview,
			row.AIAlanCitationsCount, row.CitedURLs,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert keyword %q: %w", row.Keyword, err)
		}
	}
	return nil
}

// ListKeywords retrieves the classified keywords for one run.
func (db *DB) ListKeywords(ctx context.Context, runID string) ([]types.KeywordRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT keyword, segment, segment_confidence, segment_reason, segment_source,
		        best_rank_group, best_url, has_ai_overview, ai_alan_citations_count, cited_urls
		 FROM audit_keywords WHERE run_id = $1 ORDER BY keyword`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list keywords: %w", err)
	}
	defer rows.Close()

	var out []types.KeywordRow
	for rows.Next() {
		var r types.KeywordRow
		if err := rows.Scan(&r.Keyword, &r.Segment, &r.SegmentConfidence, &r.SegmentReason,
			&r.SegmentSource, &r.BestRankGroup, &r.BestURL, &r.HasAIOverview,
			&r.AIAlanCitationsCount, &r.CitedURLs); err != nil {
			return nil, fmt.Errorf("failed to scan keyword: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}
