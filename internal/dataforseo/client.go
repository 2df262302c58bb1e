// Package dataforseo provides a client for the DataForSEO ranked-keywords
// endpoint, plus a bounded worker pool for batched lookups.
package dataforseo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.dataforseo.com/v3"
	requestTimeout = 60 * time.Second

	// ukLocationCode is DataForSEO's location code for the United Kingdom.
	ukLocationCode = 2826
	languageCode   = "en"
)

// Error represents a DataForSEO request failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dataforseo: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("dataforseo: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ShapeError reports a response body whose result element matched none of
// the known shapes. The raw fragment is kept for diagnosis.
type ShapeError struct {
	Fragment string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("dataforseo: unrecognized result shape: %s", e.Fragment)
}

// RankedItem is one keyword's best SERP placement with AI-overview signals.
type RankedItem struct {
	Keyword          string   `json:"keyword"`
	RankGroup        int      `json:"rank_group"`
	URL              string   `json:"url"`
	HasAIOverview    bool     `json:"has_ai_overview"`
	AICitationsCount int      `json:"ai_citations_count"`
	CitedURLs        []string `json:"cited_urls,omitempty"`
}

// Client posts ranked-keywords tasks over basic auth.
type Client struct {
	login    string
	password string
	baseURL  string
	httpc    *http.Client
}

// NewClient creates a client with the given basic-auth credentials.
func NewClient(login, password string) *Client {
	return &Client{
		login:    login,
		password: password,
		baseURL:  defaultBaseURL,
		httpc:    &http.Client{Timeout: requestTimeout},
	}
}

type taskRequest struct {
	Target       string   `json:"target"`
	Keywords     []string `json:"keywords"`
	LocationCode int      `json:"location_code"`
	LanguageCode string   `json:"language_code"`
}

type apiResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Tasks         []struct {
		StatusCode    int             `json:"status_code"`
		StatusMessage string          `json:"status_message"`
		Result        json.RawMessage `json:"result"`
	} `json:"tasks"`
}

// RankedKeywords looks up SERP placements for the given keywords against
// the target site. Keywords beyond one batch should go through Pool.
func (c *Client) RankedKeywords(ctx context.Context, target string, keywords []string) ([]RankedItem, error) {
	body, err := json.Marshal([]taskRequest{{
		Target:       target,
		Keywords:     keywords,
		LocationCode: ukLocationCode,
		LanguageCode: languageCode,
	}})
	if err != nil {
		return nil, &Error{Message: "failed to encode request", Cause: err}
	}

	url := c.baseURL + "/dataforseo_labs/google/ranked_keywords/live"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Message: "failed to build request", Cause: err}
	}
	req.SetBasicAuth(c.login, c.password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &Error{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: "failed to read response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Message: fmt.Sprintf("status %d: %s", resp.StatusCode, truncate(string(raw), 200))}
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &Error{Message: "failed to decode response", Cause: err}
	}
	if parsed.StatusCode != 20000 {
		return nil, &Error{Message: fmt.Sprintf("api status %d: %s", parsed.StatusCode, parsed.StatusMessage)}
	}

	var items []RankedItem
	for _, task := range parsed.Tasks {
		if task.StatusCode != 20000 {
			return nil, &Error{Message: fmt.Sprintf("task status %d: %s", task.StatusCode, task.StatusMessage)}
		}
		taskItems, err := parseResult(task.Result)
		if err != nil {
			return nil, err
		}
		items = append(items, taskItems...)
	}
	return items, nil
}

// resultObject is one element of the result payload carrying an items list.
type resultObject struct {
	Items []RankedItem `json:"items"`
}

// parseResult decodes the task result. The API returns one of three shapes:
// an array of result objects each with an items list, a single bare result
// object with an items list, or null/empty for no data. Anything else is a
// ShapeError.
func parseResult(raw json.RawMessage) ([]RankedItem, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var objs []resultObject
		if err := json.Unmarshal(trimmed, &objs); err != nil {
			return nil, &ShapeError{Fragment: truncate(string(trimmed), 200)}
		}
		var items []RankedItem
		for _, o := range objs {
			items = append(items, o.Items...)
		}
		return items, nil
	case '{':
		var obj resultObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, &ShapeError{Fragment: truncate(string(trimmed), 200)}
		}
		return obj.Items, nil
	default:
		return nil, &ShapeError{Fragment: truncate(string(trimmed), 200)}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
