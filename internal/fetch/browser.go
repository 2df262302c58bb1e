// Package fetch - browser.go provides headless browser rendering for pages
// that build their markup (including JSON-LD blocks) client-side.
package fetch

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// WithBrowser renders a page in a headless browser and returns the rendered
// HTML. Schema blocks injected by tag managers only exist after rendering,
// so the schema audit uses this path when configured. Requires
// Chrome/Chromium on the system.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if verbose {
		log.Printf("[browser] rendering %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give tag managers a beat to inject structured data.
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	if verbose {
		log.Printf("[browser] rendered %s (%d bytes)", url, len(html))
	}
	return html, nil
}
