package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/alanranger/seo-audit-agent/internal/segment"
)

// ClassifyKeywordRequest represents the request body for POST /classify/keyword
type ClassifyKeywordRequest struct {
	Keyword    string `json:"keyword" validate:"required"`
	PageType   string `json:"page_type,omitempty"`
	RankingURL string `json:"ranking_url,omitempty"`
}

// handleClassifyKeyword classifies a single keyword into its search segment.
func (s *Server) handleClassifyKeyword(w http.ResponseWriter, r *http.Request) {
	var req ClassifyKeywordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	result := segment.ClassifyKeyword(segment.KeywordInput{
		Keyword:    req.Keyword,
		PageType:   req.PageType,
		RankingURL: req.RankingURL,
	})
	s.jsonResponse(w, http.StatusOK, result)
}

// ClassifyPageRequest represents the request body for POST /classify/page
type ClassifyPageRequest struct {
	URL          string `json:"url" validate:"required"`
	Title        string `json:"title,omitempty"`
	KindOverride string `json:"kind_override,omitempty"`
}

// ClassifyPageResponse represents the response for POST /classify/page
type ClassifyPageResponse struct {
	URL        string `json:"url"`
	Path       string `json:"path"`
	Segment    string `json:"segment"`
	SubSegment string `json:"sub_segment,omitempty"`
}

// handleClassifyPage classifies a page URL into its content segment, with
// the money sub-segment attached when applicable.
func (s *Server) handleClassifyPage(w http.ResponseWriter, r *http.Request) {
	var req ClassifyPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	seg := segment.ClassifyPage(req.URL, req.Title, req.KindOverride)
	resp := ClassifyPageResponse{
		URL:     req.URL,
		Path:    segment.NormalizePath(req.URL),
		Segment: string(seg),
	}
	if seg == segment.PageMoney {
		resp.SubSegment = string(segment.ClassifyMoneySubSegment(req.URL))
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
