package schemaaudit

import (
	"context"
	"log"
	"time"

	"github.com/alanranger/seo-audit-agent/internal/fetch"
	"github.com/alanranger/seo-audit-agent/internal/types"
)

// browserTimeout bounds one headless-browser render.
const browserTimeout = 45 * time.Second

// Collector fetches audited pages and builds the schema audit document.
type Collector struct {
	// UseBrowser renders pages in a headless browser so schema blocks
	// injected client-side are seen.
	UseBrowser bool
	Verbose    bool

	// fetchPage is swappable in tests.
	fetchPage func(ctx context.Context, url string) (string, error)
}

// NewCollector creates a collector using the package's HTTP (or browser)
// fetching.
func NewCollector(useBrowser, verbose bool) *Collector {
	c := &Collector{UseBrowser: useBrowser, Verbose: verbose}
	c.fetchPage = c.defaultFetch
	return c
}

func (c *Collector) defaultFetch(ctx context.Context, url string) (string, error) {
	if c.UseBrowser {
		return fetch.WithBrowser(ctx, url, browserTimeout, c.Verbose)
	}
	result, err := fetch.URL(ctx, url, nil)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// Collect audits the given URLs and assembles the schema audit document.
//
// Faults are isolated per page: a page that fails to fetch is recorded with
// no schema rather than aborting the audit. The returned audit carries
// status "ok" whenever at least the walk itself completed.
func (c *Collector) Collect(ctx context.Context, urls []string) *types.SchemaAudit {
	data := &types.SchemaAuditData{
		Foundation:   map[string]bool{},
		RichEligible: map[string]bool{},
	}

	seenTypes := map[string]bool{}
	var orderedTypes []string

	for _, url := range urls {
		page := types.SchemaAuditPage{URL: url}

		html, err := c.fetchPage(ctx, url)
		if err != nil {
			log.Printf("[schemaaudit] %s: %v", url, err)
			data.Pages = append(data.Pages, page)
			data.TotalPages++
			continue
		}

		schemaTypes, err := ExtractSchemaTypes(html)
		if err != nil {
			log.Printf("[schemaaudit] %s: parse failed: %v", url, err)
		}
		page.SchemaTypes = schemaTypes
		page.HasSchema = len(schemaTypes) > 0

		for _, name := range schemaTypes {
			if !seenTypes[name] {
				seenTypes[name] = true
				orderedTypes = append(orderedTypes, name)
			}
		}

		data.Pages = append(data.Pages, page)
		data.TotalPages++
		if page.HasSchema {
			data.PagesWithSchema++
		}
	}

	if data.TotalPages > 0 {
		data.Coverage = float64(data.PagesWithSchema) / float64(data.TotalPages)
	}
	data.AllDetectedTypes = orderedTypes

	for _, name := range types.FoundationTypes {
		data.Foundation[name] = seenTypes[name]
	}
	for _, name := range types.RichResultTypes {
		data.RichEligible[name] = seenTypes[name]
	}

	return &types.SchemaAudit{Status: types.StatusOK, Data: data}
}
