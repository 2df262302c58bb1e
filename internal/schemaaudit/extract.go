// Package schemaaudit collects structured-data signals from audited pages.
package schemaaudit

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractSchemaTypes parses the page HTML and returns the schema.org types
// declared in its JSON-LD blocks, deduplicated in first-seen order. Invalid
// JSON-LD blocks are skipped; extraction never fails on malformed markup.
func ExtractSchemaTypes(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var ordered []string
	seen := map[string]bool{}
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		ordered = append(ordered, name)
	}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}
		collectTypes(payload, add)
	})

	return ordered, nil
}

// collectTypes walks a decoded JSON-LD document and reports every @type it
// finds, descending into @graph, arrays, and every nested entity value
// (e.g. an "author" object carrying its own @type).
func collectTypes(node any, add func(string)) {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			collectTypes(item, add)
		}
	case map[string]any:
		switch typed := v["@type"].(type) {
		case string:
			add(typed)
		case []any:
			for _, item := range typed {
				if name, ok := item.(string); ok {
					add(name)
				}
			}
		}
		// Sorted key walk keeps first-seen type order deterministic.
		keys := make([]string, 0, len(v))
		for key := range v {
			if key != "@type" {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			collectTypes(v[key], add)
		}
	}
}
