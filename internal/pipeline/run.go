// Package pipeline provides the high-level orchestration of one audit run:
// collect search data, audit schema, enrich keywords, score, persist.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alanranger/seo-audit-agent/internal/config"
	"github.com/alanranger/seo-audit-agent/internal/dataforseo"
	"github.com/alanranger/seo-audit-agent/internal/db"
	"github.com/alanranger/seo-audit-agent/internal/gsc"
	"github.com/alanranger/seo-audit-agent/internal/money"
	"github.com/alanranger/seo-audit-agent/internal/observability"
	"github.com/alanranger/seo-audit-agent/internal/pillars"
	"github.com/alanranger/seo-audit-agent/internal/portfolio"
	"github.com/alanranger/seo-audit-agent/internal/schedule"
	"github.com/alanranger/seo-audit-agent/internal/schemaaudit"
	"github.com/alanranger/seo-audit-agent/internal/schemas"
	"github.com/alanranger/seo-audit-agent/internal/segment"
	"github.com/alanranger/seo-audit-agent/internal/types"
)

const (
	// auditWindowDays is the primary scoring window.
	auditWindowDays = 28

	// schemaAuditPageLimit bounds how many top pages the schema audit
	// fetches per run.
	schemaAuditPageLimit = 25

	// keywordLookupLimit bounds how many top queries go to DataForSEO.
	keywordLookupLimit = 100
)

// backfillWindows are the trailing windows the portfolio rollup covers.
var backfillWindows = []int{1, 7, 28}

// RunOptions holds configuration for one audit run.
type RunOptions struct {
	Config config.Config

	// LocalSignalsPath points at an optional local-signals JSON document.
	// When set it is schema-validated before use; when absent the local
	// scorers fall back to their documented heuristics.
	LocalSignalsPath string

	// Trigger records what initiated the run ("cli", "api", "cron").
	Trigger string

	// TrackedURLs is the active-cycles URL subset for portfolio rollups.
	TrackedURLs []string

	// Now overrides the clock in tests; zero means time.Now.
	Now time.Time
}

func (o *RunOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now().UTC()
	}
	return o.Now
}

// Result is everything one audit run produced.
type Result struct {
	RunID      string              `json:"run_id"`
	AuditDate  string              `json:"audit_date"`
	Scores     types.PillarScores  `json:"scores"`
	MoneyPages []money.PageMetrics `json:"money_pages"`
	Keywords   []types.KeywordRow  `json:"keywords"`
}

// RunAudit executes the full audit for the configured property: pulls
// search data, fans out schema audit and keyword enrichment, computes
// pillar scores and money-page triage, and persists everything.
func RunAudit(ctx context.Context, opts RunOptions) (*Result, error) {
	cfg := opts.Config
	printer := observability.NewPrinter(os.Stdout)

	database, runID, err := connectAndRecord(ctx, cfg, opts.Trigger)
	if err != nil {
		return nil, err
	}
	if database != nil {
		defer database.Close()
	}

	client, err := gsc.NewClient(ctx, cfg.PropertyURL, cfg.GoogleCredentialsFile, cfg.GoogleAPIKey, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("search console client: %w", err)
	}

	window := gsc.AuditWindow(auditWindowDays, opts.now())
	log.Printf("[pipeline] auditing %s over %s..%s", cfg.PropertyURL, window.StartDate, window.EndDate)

	search, err := client.Fetch(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("search data collection failed: %w", err)
	}
	log.Printf("[pipeline] collected %d page rows, %d query rows", len(search.Pages), len(search.Queries))

	// Fan out the independent collection branches.
	g, gCtx := errgroup.WithContext(ctx)

	var audit *types.SchemaAudit
	g.Go(func() error {
		collector := schemaaudit.NewCollector(cfg.UseBrowser, cfg.Verbose)
		audit = collector.Collect(gCtx, topPageURLs(search.Pages, schemaAuditPageLimit))
		return nil
	})

	var ranked []dataforseo.RankedItem
	g.Go(func() error {
		if cfg.DataForSEOLogin == "" {
			log.Printf("[pipeline] DataForSEO credentials absent; skipping keyword enrichment")
			return nil
		}
		pool := dataforseo.NewPool(dataforseo.NewClient(cfg.DataForSEOLogin, cfg.DataForSEOPassword))
		ranked = pool.Lookup(gCtx, siteDomain(resolveSiteURL(cfg)), topQueryKeywords(search.Queries, keywordLookupLimit))
		return nil
	})

	var localSignals *types.LocalSignals
	g.Go(func() error {
		if opts.LocalSignalsPath == "" {
			return nil
		}
		signals, err := loadLocalSignals(opts.LocalSignalsPath)
		if err != nil {
			return fmt.Errorf("local signals: %w", err)
		}
		localSignals = signals
		return nil
	})

	if err := g.Wait(); err != nil {
		failRun(ctx, database, runID)
		return nil, err
	}

	keywords := BuildKeywordRows(search.Queries, ranked, resolveSiteURL(cfg))

	reviews := siteReviewsFromSnapshot(cfg.Trustpilot)
	scores := pillars.Calculate(pillars.Inputs{
		Search:       search,
		SchemaAudit:  audit,
		LocalSignals: localSignals,
		SiteReviews:  reviews,
		Backlinks:    backlinksFromSnapshot(cfg.Backlinks),
	})
	moneyPages := money.BuildMoneyPageMetrics(search.Pages, audit)

	if cfg.Verbose {
		printer.PrintPillarScores(&scores)
		printer.PrintMoneyPages(moneyPages)
		printer.PrintKeywords(keywords)
	}

	auditDate := opts.now().Format("2006-01-02")
	result := &Result{
		AuditDate:  auditDate,
		Scores:     scores,
		MoneyPages: moneyPages,
		Keywords:   keywords,
	}

	if database != nil && runID != uuid.Nil {
		result.RunID = runID.String()
		if err := database.SavePillarScores(ctx, cfg.PropertyURL, auditDate, &scores); err != nil {
			failRun(ctx, database, runID)
			return nil, err
		}
		if err := database.UpsertKeywords(ctx, runID.String(), keywords); err != nil {
			failRun(ctx, database, runID)
			return nil, err
		}
		if err := database.CompleteAuditRun(ctx, runID, "completed"); err != nil {
			log.Printf("[pipeline] failed to mark run completed: %v", err)
		}
	}

	log.Printf("[pipeline] audit complete for %s (%s)", cfg.PropertyURL, auditDate)
	return result, nil
}

// RunBackfill recomputes portfolio segment rollups for every trailing
// window. Rollups are upserted on their natural keys, so a rerun after a
// partial failure recomputes wholesale.
func RunBackfill(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config

	var database *db.DB
	if cfg.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("backfill requires the database: %w", err)
		}
		defer database.Close()
	}

	client, err := gsc.NewClient(ctx, cfg.PropertyURL, cfg.GoogleCredentialsFile, cfg.GoogleAPIKey, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("search console client: %w", err)
	}

	// Keyword AI signals come from one enrichment pass over the widest
	// window and are reused for every window's rollup.
	widest := gsc.AuditWindow(auditWindowDays, opts.now())
	queries, err := client.QueryQueries(ctx, widest)
	if err != nil {
		return fmt.Errorf("query collection failed: %w", err)
	}

	siteURL := resolveSiteURL(cfg)

	var ranked []dataforseo.RankedItem
	if cfg.DataForSEOLogin != "" {
		pool := dataforseo.NewPool(dataforseo.NewClient(cfg.DataForSEOLogin, cfg.DataForSEOPassword))
		ranked = pool.Lookup(ctx, siteDomain(siteURL), topQueryKeywords(queries, keywordLookupLimit))
	}
	keywords := BuildKeywordRows(queries, ranked, siteURL)

	runID := schedule.RunID(schedule.Daily, opts.now())
	tracked := trackedSet(opts.TrackedURLs)

	printer := observability.NewPrinter(os.Stdout)

	for _, days := range backfillWindows {
		window := gsc.AuditWindow(days, opts.now())

		pages, err := client.QueryPages(ctx, window)
		if err != nil {
			return fmt.Errorf("page collection for %dd window failed: %w", days, err)
		}
		overview, err := client.QueryDailyOverview(ctx, window)
		if err != nil {
			return fmt.Errorf("overview collection for %dd window failed: %w", days, err)
		}

		rows := AggregateWindow(runID, siteURL, days, pages, overview, keywords, tracked)
		log.Printf("[pipeline] %dd window: %d pages → %d segment rows", days, len(pages), len(rows))
		if cfg.Verbose {
			printer.PrintSegmentRollups(types.ScopeAllPages, rows)
		}

		if database != nil {
			if err := database.UpsertSegmentMetrics(ctx, rows); err != nil {
				return err
			}
		}
	}
	return nil
}

// connectAndRecord opens the database when configured and records the run
// start. A connection failure degrades to an unpersisted run, matching the
// CLI contract that scoring still completes without storage.
func connectAndRecord(ctx context.Context, cfg config.Config, trigger string) (*db.DB, uuid.UUID, error) {
	if cfg.DatabaseURL == "" {
		return nil, uuid.Nil, nil
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("[pipeline] database unavailable, continuing without persistence: %v", err)
		return nil, uuid.Nil, nil
	}

	runID, err := database.CreateAuditRun(ctx, cfg.PropertyURL, trigger)
	if err != nil {
		log.Printf("[pipeline] failed to record run start: %v", err)
		return database, uuid.Nil, nil
	}
	return database, runID, nil
}

func failRun(ctx context.Context, database *db.DB, runID uuid.UUID) {
	if database == nil || runID == uuid.Nil {
		return
	}
	if err := database.CompleteAuditRun(ctx, runID, "failed"); err != nil {
		log.Printf("[pipeline] failed to mark run failed: %v", err)
	}
}

// loadLocalSignals validates and parses a local-signals document.
func loadLocalSignals(path string) (*types.LocalSignals, error) {
	if err := schemas.ValidateLocalSignalsFile(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var signals types.LocalSignals
	if err := json.Unmarshal(data, &signals); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &signals, nil
}

// BuildKeywordRows classifies every query keyword and merges in DataForSEO
// enrichment. Queries sharing a keyword collapse to one row; the best (lowest)
// ranking position wins. Rows that fail to enrich still classify — per-row
// fault isolation, one bad keyword never aborts the pass.
func BuildKeywordRows(queries []types.QueryRow, ranked []dataforseo.RankedItem, siteURL string) []types.KeywordRow {
	byKeyword := map[string]*types.KeywordRow{}
	var order []string

	for _, q := range queries {
		kw := strings.ToLower(strings.TrimSpace(q.Query))
		if kw == "" {
			continue
		}
		if _, ok := byKeyword[kw]; ok {
			continue
		}

		res := segment.ClassifyKeyword(segment.KeywordInput{Keyword: kw, RankingURL: q.Page})
		byKeyword[kw] = &types.KeywordRow{
			Keyword:           kw,
			Segment:           string(res.Segment),
			SegmentConfidence: res.Confidence,
			SegmentReason:     res.Reason,
			SegmentSource:     "rules",
		}
		order = append(order, kw)
	}

	for _, item := range ranked {
		kw := strings.ToLower(strings.TrimSpace(item.Keyword))
		row, ok := byKeyword[kw]
		if !ok {
			continue
		}
		if row.BestRankGroup == 0 || (item.RankGroup > 0 && item.RankGroup < row.BestRankGroup) {
			row.BestRankGroup = item.RankGroup
			row.BestURL = item.URL
		}
		if item.HasAIOverview {
			row.HasAIOverview = true
		}
		row.AIAlanCitationsCount += item.AICitationsCount
		for _, cited := range item.CitedURLs {
			if siteURL == "" || strings.HasPrefix(cited, strings.TrimSuffix(siteURL, "/")) {
				row.CitedURLs = append(row.CitedURLs, cited)
			}
		}
	}

	rows := make([]types.KeywordRow, 0, len(order))
	for _, kw := range order {
		rows = append(rows, *byKeyword[kw])
	}
	return rows
}

// AggregateWindow builds the portfolio rollup input for one window and runs
// the aggregation.
func AggregateWindow(runID, siteURL string, windowDays int, pages []types.PageRow,
	overview []types.DailyOverviewPoint, keywords []types.KeywordRow, tracked map[string]bool) []types.PortfolioSegmentMetricsRow {

	inputs := make([]portfolio.PageInput, 0, len(pages))
	for _, p := range pages {
		inputs = append(inputs, portfolio.PageInput{
			URL:         p.URL,
			Clicks:      float64(p.Clicks),
			Impressions: float64(p.Impressions),
			AvgPosition: p.AvgPosition,
			Tracked:     tracked[segment.NormalizePath(p.URL)],
		})
	}
	return portfolio.Aggregate(portfolio.RunInput{
		RunID:      runID,
		SiteURL:    siteURL,
		WindowDays: windowDays,
		Pages:      inputs,
		Keywords:   keywords,
		Overview:   overview,
	})
}

// topPageURLs returns the highest-impression page URLs, capped.
func topPageURLs(pages []types.PageRow, limit int) []string {
	sorted := make([]types.PageRow, len(pages))
	copy(sorted, pages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Impressions > sorted[j].Impressions
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	urls := make([]string, len(sorted))
	for i, p := range sorted {
		urls[i] = p.URL
	}
	return urls
}

// topQueryKeywords returns the highest-impression distinct keywords, capped.
func topQueryKeywords(queries []types.QueryRow, limit int) []string {
	totals := map[string]int{}
	for _, q := range queries {
		kw := strings.ToLower(strings.TrimSpace(q.Query))
		if kw != "" {
			totals[kw] += q.Impressions
		}
	}

	keywords := make([]string, 0, len(totals))
	for kw := range totals {
		keywords = append(keywords, kw)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if totals[keywords[i]] != totals[keywords[j]] {
			return totals[keywords[i]] > totals[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})

	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}

// trackedSet normalizes the tracked-URL list to a path set.
func trackedSet(urls []string) map[string]bool {
	set := make(map[string]bool, len(urls))
	for _, u := range urls {
		set[segment.NormalizePath(u)] = true
	}
	return set
}

// siteReviewsFromSnapshot converts the configured Trustpilot snapshot into
// reviewer input; invalid snapshots yield nil so scorers use their neutral
// default.
func siteReviewsFromSnapshot(snap config.TrustpilotSnapshot) *types.SiteReviews {
	if !snap.Valid() {
		return nil
	}
	return &types.SiteReviews{
		SiteRating:      snap.Rating,
		SiteReviewCount: snap.ReviewCount,
		LastUpdated:     snap.CapturedAt,
		Notes:           "trustpilot snapshot " + snap.CapturedAt,
	}
}

// backlinksFromSnapshot converts the configured backlink snapshot into
// scorer input; invalid snapshots yield nil so the authority backlink
// component stays at zero.
func backlinksFromSnapshot(snap config.BacklinkSnapshot) *types.BacklinkMetrics {
	if !snap.Valid() {
		return nil
	}
	return &types.BacklinkMetrics{
		ReferringDomains: snap.ReferringDomains,
		TotalBacklinks:   snap.TotalBacklinks,
		FollowRatio:      snap.FollowRatio,
	}
}

// resolveSiteURL picks the URL keying portfolio rows and keyword
// attribution. SiteURL wins when configured; otherwise the audited property
// URL stands in, so rows are never keyed by an empty string.
func resolveSiteURL(cfg config.Config) string {
	if cfg.SiteURL != "" {
		return cfg.SiteURL
	}
	return cfg.PropertyURL
}

// siteDomain strips scheme and path from the site URL for DataForSEO's
// target parameter.
func siteDomain(siteURL string) string {
	s := strings.TrimPrefix(siteURL, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}
