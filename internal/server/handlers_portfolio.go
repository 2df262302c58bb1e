package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/alanranger/seo-audit-agent/internal/pipeline"
	"github.com/alanranger/seo-audit-agent/internal/types"
)

// BackfillRequest represents the request body for POST /portfolio/backfill
type BackfillRequest struct {
	SiteURL     string   `json:"site_url,omitempty"`
	TrackedURLs []string `json:"tracked_urls,omitempty"`
	Wait        bool     `json:"wait,omitempty"`
}

// handleBackfill computes portfolio segment rollups for the 1/7/28-day
// windows and persists them. Backfill needs the database, so it is rejected
// outright when none is configured.
func (s *Server) handleBackfill(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	var req BackfillRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	cfg := s.cfg
	if req.SiteURL != "" {
		// Rollup rows key on the site URL, so an override must move both
		// the property being queried and the row key together.
		cfg.PropertyURL = req.SiteURL
		cfg.SiteURL = req.SiteURL
	}
	if cfg.PropertyURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "site_url is required")
		return
	}

	opts := pipeline.RunOptions{
		Config:      cfg,
		Trigger:     "api",
		TrackedURLs: req.TrackedURLs,
	}

	if req.Wait {
		if err := s.runBackfill(r.Context(), opts); err != nil {
			s.errorResponse(w, http.StatusBadGateway, "Backfill failed: "+err.Error())
			return
		}
		s.jsonResponse(w, http.StatusOK, map[string]string{"status": "completed"})
		return
	}

	go func() {
		if err := s.runBackfill(context.Background(), opts); err != nil {
			log.Printf("Backfill failed: %v", err)
		}
	}()
	s.jsonResponse(w, http.StatusAccepted, map[string]string{"status": "started"})
}

// SegmentsResponse represents the response for GET /portfolio/{site}/segments
type SegmentsResponse struct {
	SiteURL  string                             `json:"site_url"`
	Scope    string                             `json:"scope"`
	Segments []types.PortfolioSegmentMetricsRow `json:"segments"`
}

// handleListSegments returns the stored segment rollups for a site, one
// scope at a time (?scope=all_pages by default).
func (s *Server) handleListSegments(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = types.ScopeAllPages
	}
	if scope != types.ScopeAllPages && scope != types.ScopeActiveCycles {
		s.errorResponse(w, http.StatusBadRequest, "scope must be all_pages or active_cycles_only")
		return
	}

	site := canonicalProperty(r.PathValue("site"))
	rows, err := s.db.ListSegmentMetrics(r.Context(), site, scope)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if len(rows) == 0 {
		s.errorResponse(w, http.StatusNotFound, "No segment metrics for site")
		return
	}

	s.jsonResponse(w, http.StatusOK, SegmentsResponse{SiteURL: site, Scope: scope, Segments: rows})
}
