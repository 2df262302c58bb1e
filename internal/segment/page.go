// Package segment classifies pages and keywords into business segments.
package segment

import (
	"net/url"
	"strings"
)

// PageSegment is the business segment a page belongs to.
type PageSegment string

// Page segments, from most to least editorially maintained.
const (
	PageEducation PageSegment = "education"
	PageMoney     PageSegment = "money"
	PageSupport   PageSegment = "support"
	PageSystem    PageSegment = "system"
)

// MoneySubSegment refines a money page into its commercial shape.
type MoneySubSegment string

// Money sub-segments. Landing is the default for money pages that are
// neither event nor product pages.
const (
	MoneyLanding MoneySubSegment = "landing"
	MoneyEvent   MoneySubSegment = "event"
	MoneyProduct MoneySubSegment = "product"
)

// placeholderBase resolves bare paths during normalization. The host never
// appears in output; .invalid is reserved and cannot collide with a real site.
const placeholderBase = "https://site.invalid"

// overrideVocabulary maps explicit page-kind override strings to segments.
var overrideVocabulary = map[string]PageSegment{
	"education":   PageEducation,
	"educational": PageEducation,
	"money":       PageMoney,
	"commercial":  PageMoney,
	"support":     PageSupport,
	"system":      PageSystem,
}

// educationPrefixes match whole sections of editorial content.
var educationPrefixes = []string{
	"/blog-on-photography",
}

// educationExactPages are standalone editorial pages outside the blog tree.
var educationExactPages = map[string]bool{
	"/photography-academy":             true,
	"/free-photography-course":         true,
	"/photography-tips":                true,
	"/photography-tutorials":           true,
	"/what-is-aperture-in-photography": true,
}

// moneyExactPages is the hand-maintained allowlist of commercial URLs.
// Keep entries sorted so behaviour changes show up as clean diffs.
var moneyExactPages = map[string]bool{
	"/121-photography-lessons":             true,
	"/autumn-photography-workshops":        true,
	"/batsford-arboretum-photography":      true,
	"/beginners-photography-classes":       true,
	"/beginners-photography-course":        true,
	"/bluebell-woods-photography-workshop": true,
	"/camera-courses-for-beginners":        true,
	"/christmas-gift-vouchers":             true,
	"/coventry-photography-courses":        true,
	"/garden-photography-workshop":         true,
	"/intermediate-photography-course":     true,
	"/landscape-photography-workshops":     true,
	"/lightroom-courses-for-beginners":     true,
	"/macro-photography-workshop":          true,
	"/mentoring-for-photographers":         true,
	"/photographic-workshops-near-me":      true,
	"/photography-classes-near-me":         true,
	"/photography-courses-near-me":         true,
	"/photography-gift-vouchers":           true,
	"/photography-prints":                  true,
	"/photography-services":                true,
	"/photography-workshops-uk":            true,
	"/private-photography-lessons":         true,
	"/sunset-photography-workshop":         true,
	"/woodland-photography-workshops":      true,
}

// moneyKeywords catch commercial pages not on the allowlist.
var moneyKeywords = []string{
	"workshop",
	"course",
	"courses",
	"class",
	"classes",
	"lesson",
	"lessons",
	"voucher",
	"vouchers",
	"gift",
	"prints",
	"print-shop",
	"shop",
	"buy",
	"booking",
	"book-now",
	"tuition",
	"mentoring",
	"services",
	"hire",
}

// supportExactPages are customer-support and policy pages.
var supportExactPages = map[string]bool{
	"/contact-us":           true,
	"/about-us":             true,
	"/faqs":                 true,
	"/terms-and-conditions": true,
	"/privacy-policy":       true,
	"/cookie-policy":        true,
	"/delivery-returns":     true,
	"/accessibility":        true,
	"/customer-reviews":     true,
	"/site-map":             true,
}

// Substring rules for money sub-segments.
var (
	eventSubstrings   = []string{"/photographic-workshops-near-me", "-event"}
	productSubstrings = []string{"/photography-gift-vouchers", "/product"}
)

// NormalizePath reduces a URL or bare path to a lower-cased path with no
// query, fragment, or trailing slash (the root keeps its slash). Unparsable
// input degrades to "/" so classification can proceed on defaults.
func NormalizePath(urlOrPath string) string {
	raw := strings.TrimSpace(urlOrPath)
	if raw == "" {
		return "/"
	}
	if !strings.Contains(raw, "://") {
		if !strings.HasPrefix(raw, "/") {
			raw = "/" + raw
		}
		raw = placeholderBase + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "/"
	}
	path := strings.ToLower(parsed.Path)
	if path == "" {
		return "/"
	}
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "" {
		path = "/"
	}
	return path
}

// ClassifyPage maps a URL (or bare path) to its business segment.
//
// Resolution order, first match wins: explicit kind override, education
// prefix/exact tables, money exact allowlist, money keyword substrings,
// support exact table, then the default "system". The function is pure and
// total: malformed input classifies via the default rules on path "/".
func ClassifyPage(urlOrPath string, title string, kindOverride string) PageSegment {
	if kindOverride != "" {
		if seg, ok := overrideVocabulary[strings.ToLower(strings.TrimSpace(kindOverride))]; ok {
			return seg
		}
	}

	path := NormalizePath(urlOrPath)

	for _, prefix := range educationPrefixes {
		if strings.HasPrefix(path, prefix) {
			return PageEducation
		}
	}
	if educationExactPages[path] {
		return PageEducation
	}

	if moneyExactPages[path] {
		return PageMoney
	}
	for _, kw := range moneyKeywords {
		if strings.Contains(path, kw) {
			return PageMoney
		}
	}

	if supportExactPages[path] {
		return PageSupport
	}

	return PageSystem
}

// ClassifyMoneySubSegment refines a money page's URL into event, product, or
// landing. Only meaningful for URLs ClassifyPage labels money; callers must
// check the main segment first.
func ClassifyMoneySubSegment(urlOrPath string) MoneySubSegment {
	path := NormalizePath(urlOrPath)
	for _, s := range eventSubstrings {
		if strings.Contains(path, s) {
			return MoneyEvent
		}
	}
	for _, s := range productSubstrings {
		if strings.Contains(path, s) {
			return MoneyProduct
		}
	}
	return MoneyLanding
}
