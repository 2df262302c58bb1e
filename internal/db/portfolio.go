package db

import (
	"context"
	"fmt"

	"github.com/alanranger/seo-audit-agent/internal/types"
)

// UpsertSegmentMetrics writes portfolio segment rollups on their natural
// composite key. Recomputing the same key overwrites wholesale, so a
// re-run after a partial failure is safe.
func (db *DB) UpsertSegmentMetrics(ctx context.Context, rows []types.PortfolioSegmentMetricsRow) error {
	for _, row := range rows {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO portfolio_segment_metrics
			     (run_id, site_url, segment, scope, window_days, pages_count,
			      clicks, impressions, ctr, avg_position, ai_citations, ai_overview_count)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 ON CONFLICT (run_id, site_url, segment, scope, window_days) DO UPDATE SET
			     pages_count = $6, clicks = $7, impressions = $8, ctr = $9,
			     avg_position = $10, ai_citations = $11, ai_overview_count = $12,
			     updated_at = NOW()`,
			row.RunID, row.SiteURL, row.Segment, row.Scope, row.WindowDays,
			row.PagesCount, row.Clicks, row.Impressions, row.CTR,
			row.AvgPosition, row.AICitations, row.AIOverviewCount,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert segment metrics %s/%s/%s: %w",
				row.RunID, row.Segment, row.Scope, err)
		}
	}
	return nil
}

// ListSegmentMetrics retrieves the rollups for one site and scope, most
// recent run first.
func (db *DB) ListSegmentMetrics(ctx context.Context, siteURL, scope string) ([]types.PortfolioSegmentMetricsRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT run_id, site_url, segment, scope, window_days, pages_count,
		        clicks, impressions, ctr, avg_position, ai_citations, ai_overview_count
		 FROM portfolio_segment_metrics
		 WHERE site_url = $1 AND scope = $2
		 ORDER BY run_id DESC, window_days, segment`,
		siteURL, scope,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list segment metrics: %w", err)
	}
	defer rows.Close()

	var out []types.PortfolioSegmentMetricsRow
	for rows.Next() {
		var r types.PortfolioSegmentMetricsRow
		if err := rows.Scan(&r.RunID, &r.SiteURL, &r.Segment, &r.Scope, &r.WindowDays,
			&r.PagesCount, &r.Clicks, &r.Impressions, &r.CTR, &r.AvgPosition,
			&r.AICitations, &r.AIOverviewCount); err != nil {
			return nil, fmt.Errorf("failed to scan segment metrics: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}
