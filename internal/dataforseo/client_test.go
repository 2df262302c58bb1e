package dataforseo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResult_ArrayShape(t *testing.T) {
	raw := json.RawMessage(`[{"items":[
		{"keyword":"photography workshop","rank_group":3,"url":"https://www.alanranger.com/photography-workshops"},
		{"keyword":"camera course","rank_group":7,"url":"https://www.alanranger.com/camera-courses"}
	]}]`)

	items, err := parseResult(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "photography workshop", items[0].Keyword)
	assert.Equal(t, 3, items[0].RankGroup)
}

func TestParseResult_BareObjectShape(t *testing.T) {
	raw := json.RawMessage(`{"items":[{"keyword":"bluebell woods","rank_group":1,"has_ai_overview":true,"ai_citations_count":2}]}`)

	items, err := parseResult(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].HasAIOverview)
	assert.Equal(t, 2, items[0].AICitationsCount)
}

func TestParseResult_EmptyAndNull(t *testing.T) {
	for _, raw := range []string{"", "null", "  "} {
		items, err := parseResult(json.RawMessage(raw))
		require.NoError(t, err)
		assert.Empty(t, items)
	}
}

func TestParseResult_UnrecognizedShape(t *testing.T) {
	_, err := parseResult(json.RawMessage(`"just a string"`))
	require.Error(t, err)

	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Contains(t, shapeErr.Fragment, "just a string")
}

func TestParseResult_MalformedArray(t *testing.T) {
	_, err := parseResult(json.RawMessage(`[{"items": "not a list"}]`))
	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
}

func TestRankedKeywords_PostsBasicAuthAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "login", user)
		assert.Equal(t, "secret", pass)

		var tasks []taskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&tasks))
		require.Len(t, tasks, 1)
		assert.Equal(t, "alanranger.com", tasks[0].Target)
		assert.Equal(t, ukLocationCode, tasks[0].LocationCode)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status_code":20000,"tasks":[{"status_code":20000,
			"result":[{"items":[{"keyword":"photography workshop","rank_group":4}]}]}]}`))
	}))
	defer srv.Close()

	c := NewClient("login", "secret")
	c.baseURL = srv.URL

	items, err := c.RankedKeywords(context.Background(), "alanranger.com", []string{"photography workshop"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].RankGroup)
}

func TestRankedKeywords_APIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status_code":40101,"status_message":"Authentication failed"}`))
	}))
	defer srv.Close()

	c := NewClient("login", "wrong")
	c.baseURL = srv.URL

	_, err := c.RankedKeywords(context.Background(), "alanranger.com", []string{"kw"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "40101")
}

func TestRankedKeywords_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient("login", "secret")
	c.baseURL = srv.URL

	_, err := c.RankedKeywords(context.Background(), "alanranger.com", []string{"kw"})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Message, "status 502")
}
