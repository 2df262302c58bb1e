// Package gsc wraps the Google Search Console Search Analytics API for the
// audit pipeline. It exposes paginated page-level and query-level pulls for
// one property over a date window.
package gsc

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/searchconsole/v1"

	"github.com/alanranger/seo-audit-agent/internal/types"
)

// pageSize is the Search Analytics API maximum rows per request. Pulls
// paginate with StartRow until a short (or empty) page returns.
const pageSize = 25000

// dateLayout is the date format the Search Analytics API accepts.
const dateLayout = "2006-01-02"

// Client queries one Search Console property.
type Client struct {
	svc         *searchconsole.Service
	propertyURL string
	verbose     bool
}

// NewClient creates a Search Console client for the given property.
// credentialsFile takes precedence over apiKey when both are set.
func NewClient(ctx context.Context, propertyURL, credentialsFile, apiKey string, verbose bool) (*Client, error) {
	var opt option.ClientOption
	switch {
	case credentialsFile != "":
		opt = option.WithCredentialsFile(credentialsFile)
	case apiKey != "":
		opt = option.WithAPIKey(apiKey)
	default:
		return nil, fmt.Errorf("no Search Console credentials configured")
	}

	svc, err := searchconsole.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create searchconsole service: %w", err)
	}
	return &Client{svc: svc, propertyURL: propertyURL, verbose: verbose}, nil
}

// Window is a closed date range in Search Console's reporting calendar.
type Window struct {
	StartDate string
	EndDate   string
}

// AuditWindow returns the window covering the last `days` days of finalized
// Search Console data. The series typically lags by about two days, so the
// window ends two days before today.
func AuditWindow(days int, now time.Time) Window {
	end := now.AddDate(0, 0, -2)
	start := end.AddDate(0, 0, -(days - 1))
	return Window{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
	}
}

// QueryPages returns per-URL performance rows for the window, fully
// paginated.
func (c *Client) QueryPages(ctx context.Context, w Window) ([]types.PageRow, error) {
	raw, err := c.queryAll(ctx, w, []string{"page"})
	if err != nil {
		return nil, fmt.Errorf("page query failed: %w", err)
	}

	rows := make([]types.PageRow, 0, len(raw))
	for _, r := range raw {
		if len(r.Keys) == 0 {
			continue
		}
		pos := r.Position
		rows = append(rows, types.PageRow{
			URL:         r.Keys[0],
			Clicks:      int(r.Clicks),
			Impressions: int(r.Impressions),
			CTR:         r.Ctr,
			AvgPosition: &pos,
		})
	}
	return rows, nil
}

// QueryQueries returns per-(query, page) performance rows for the window,
// fully paginated.
func (c *Client) QueryQueries(ctx context.Context, w Window) ([]types.QueryRow, error) {
	raw, err := c.queryAll(ctx, w, []string{"query", "page"})
	if err != nil {
		return nil, fmt.Errorf("query query failed: %w", err)
	}

	rows := make([]types.QueryRow, 0, len(raw))
	for _, r := range raw {
		if len(r.Keys) < 2 {
			continue
		}
		pos := r.Position
		rows = append(rows, types.QueryRow{
			Query:       r.Keys[0],
			Page:        r.Keys[1],
			Clicks:      int(r.Clicks),
			Impressions: int(r.Impressions),
			CTR:         r.Ctr,
			AvgPosition: &pos,
		})
	}
	return rows, nil
}

// QueryDailyOverview returns the site-wide daily clicks/impressions series
// for the window. This series is the trusted baseline for portfolio
// calibration.
func (c *Client) QueryDailyOverview(ctx context.Context, w Window) ([]types.DailyOverviewPoint, error) {
	raw, err := c.queryAll(ctx, w, []string{"date"})
	if err != nil {
		return nil, fmt.Errorf("daily overview query failed: %w", err)
	}

	points := make([]types.DailyOverviewPoint, 0, len(raw))
	for _, r := range raw {
		if len(r.Keys) == 0 {
			continue
		}
		points = append(points, types.DailyOverviewPoint{
			Date:        r.Keys[0],
			Clicks:      r.Clicks,
			Impressions: r.Impressions,
		})
	}
	return points, nil
}

// Fetch pulls pages and queries for the window and bundles them.
func (c *Client) Fetch(ctx context.Context, w Window) (*types.SearchData, error) {
	pages, err := c.QueryPages(ctx, w)
	if err != nil {
		return nil, err
	}
	queries, err := c.QueryQueries(ctx, w)
	if err != nil {
		return nil, err
	}
	return &types.SearchData{
		PropertyURL: c.propertyURL,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		Pages:       pages,
		Queries:     queries,
	}, nil
}

// queryAll pages through the Search Analytics API until a short page
// signals the end of the result set.
func (c *Client) queryAll(ctx context.Context, w Window, dimensions []string) ([]*searchconsole.ApiDataRow, error) {
	var all []*searchconsole.ApiDataRow
	startRow := int64(0)

	for {
		req := &searchconsole.SearchAnalyticsQueryRequest{
			StartDate:  w.StartDate,
			EndDate:    w.EndDate,
			Dimensions: dimensions,
			RowLimit:   pageSize,
			StartRow:   startRow,
		}

		resp, err := c.svc.Searchanalytics.Query(c.propertyURL, req).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("searchanalytics query (start row %d): %w", startRow, err)
		}

		all = append(all, resp.Rows...)
		if c.verbose {
			log.Printf("[gsc] %v %s..%s: fetched %d rows (total %d)",
				dimensions, w.StartDate, w.EndDate, len(resp.Rows), len(all))
		}

		if len(resp.Rows) < pageSize {
			return all, nil
		}
		startRow += pageSize
	}
}
