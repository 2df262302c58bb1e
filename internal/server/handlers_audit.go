package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/alanranger/seo-audit-agent/internal/pipeline"
	"github.com/alanranger/seo-audit-agent/internal/schedule"
)

// AuditRunRequest represents the request body for POST /audit/run
type AuditRunRequest struct {
	PropertyURL      string `json:"property_url,omitempty"`
	LocalSignalsPath string `json:"local_signals_path,omitempty"`
	Wait             bool   `json:"wait,omitempty"`
}

// AuditRunResponse represents the response for POST /audit/run
type AuditRunResponse struct {
	Status string           `json:"status"`
	Result *pipeline.Result `json:"result,omitempty"`
}

// handleRunAudit triggers an audit for the configured property. By default
// the run happens in the background; wait=true runs it synchronously and
// returns the full result.
func (s *Server) handleRunAudit(w http.ResponseWriter, r *http.Request) {
	var req AuditRunRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	cfg := s.cfg
	if req.PropertyURL != "" {
		cfg.PropertyURL = req.PropertyURL
	}
	if cfg.PropertyURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "property_url is required")
		return
	}

	opts := pipeline.RunOptions{
		Config:           cfg,
		LocalSignalsPath: req.LocalSignalsPath,
		Trigger:          "api",
	}

	if req.Wait {
		result, err := s.runAudit(r.Context(), opts)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "Audit failed: "+err.Error())
			return
		}
		s.jsonResponse(w, http.StatusOK, AuditRunResponse{Status: "completed", Result: result})
		return
	}

	go func() {
		if _, err := s.runAudit(context.Background(), opts); err != nil {
			log.Printf("Audit run failed: %v", err)
		}
	}()
	s.jsonResponse(w, http.StatusAccepted, AuditRunResponse{Status: "started"})
}

// handleListAudits returns the recent audit runs for a property.
func (s *Server) handleListAudits(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	property := canonicalProperty(r.PathValue("property"))
	runs, err := s.db.ListAuditRuns(r.Context(), property, 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if len(runs) == 0 {
		s.errorResponse(w, http.StatusNotFound, "No audit runs for property")
		return
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

// PillarsResponse represents the response for GET /audit/{property}/pillars
type PillarsResponse struct {
	PropertyURL string `json:"property_url"`
	AuditDate   string `json:"audit_date"`
	Scores      any    `json:"scores"`
}

// handleGetPillars returns the latest pillar scores for a property, or the
// scores for ?date=YYYY-MM-DD when given.
func (s *Server) handleGetPillars(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	property := canonicalProperty(r.PathValue("property"))

	if date := r.URL.Query().Get("date"); date != "" {
		scores, err := s.db.GetPillarScores(r.Context(), property, date)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		if scores == nil {
			s.errorResponse(w, http.StatusNotFound, "No audit for that date")
			return
		}
		s.jsonResponse(w, http.StatusOK, PillarsResponse{PropertyURL: property, AuditDate: date, Scores: scores})
		return
	}

	scores, auditDate, err := s.db.GetLatestPillarScores(r.Context(), property)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if scores == nil {
		s.errorResponse(w, http.StatusNotFound, "Property has never been audited")
		return
	}
	s.jsonResponse(w, http.StatusOK, PillarsResponse{PropertyURL: property, AuditDate: auditDate, Scores: scores})
}

// CronDueResponse represents the response for GET /cron/due
type CronDueResponse struct {
	PropertyURL string `json:"property_url"`
	Frequency   string `json:"frequency"`
	Due         bool   `json:"due"`
	LastRunAt   string `json:"last_run_at,omitempty"`
	NextRunAt   string `json:"next_run_at"`
}

// handleCronDue reports whether the configured property is due for another
// audit at the requested frequency (default daily).
func (s *Server) handleCronDue(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	freq := schedule.Frequency(r.URL.Query().Get("freq"))
	if freq == "" {
		freq = schedule.Daily
	}

	lastRun, err := s.db.LastCompletedRunAt(r.Context(), s.cfg.PropertyURL)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	now := time.Now().UTC()
	due, err := schedule.ShouldRunNow(freq, lastRun, now)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := CronDueResponse{
		PropertyURL: s.cfg.PropertyURL,
		Frequency:   string(freq),
		Due:         due,
	}
	if lastRun != nil {
		resp.LastRunAt = lastRun.Format(time.RFC3339)
		if next, err := schedule.NextRunAt(freq, *lastRun); err == nil {
			resp.NextRunAt = next.Format(time.RFC3339)
		}
	} else if next, err := schedule.NextRunAt(freq, now); err == nil {
		resp.NextRunAt = next.Format(time.RFC3339)
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// canonicalProperty converts a path parameter like "www.alanranger.com"
// into the property URL form audits are stored under. Parameters already
// carrying a scheme pass through unchanged.
func canonicalProperty(param string) string {
	if strings.Contains(param, "://") {
		return param
	}
	return "https://" + strings.TrimSuffix(param, "/") + "/"
}
