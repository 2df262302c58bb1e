package segment

import (
	"fmt"
	"regexp"
	"strings"
)

// KeywordSegment is the business segment a search keyword belongs to.
type KeywordSegment string

// Keyword segments in fixed priority order: brand beats money beats
// education beats other.
const (
	KeywordBrand     KeywordSegment = "brand"
	KeywordMoney     KeywordSegment = "money"
	KeywordEducation KeywordSegment = "education"
	KeywordOther     KeywordSegment = "other"
)

// KeywordInput is the input to keyword classification. PageType is a weak
// hint that only boosts confidence, never changes the segment. RankingURL is
// accepted for forward compatibility but is not consulted by the current
// rules.
type KeywordInput struct {
	Keyword    string
	PageType   string
	RankingURL string
}

// KeywordResult is a keyword classification with its confidence and a
// human-readable trace of the rule that fired.
type KeywordResult struct {
	Segment    KeywordSegment `json:"segment"`
	Confidence float64        `json:"confidence"`
	Reason     string         `json:"reason"`
}

// brandTerms always win, regardless of any other match or hint.
var brandTerms = []string{
	"alan ranger",
	"alanranger",
	"alan ranger photography",
	"ranger photography",
	"alan ranger workshops",
}

// moneyTerms are transactional words signalling purchase or booking intent.
var moneyTerms = []string{
	"workshop", "workshops",
	"course", "courses",
	"class", "classes",
	"lesson", "lessons",
	"tuition", "training",
	"book", "booking",
	"buy", "price", "prices", "cost",
	"voucher", "vouchers", "gift",
	"hire", "mentoring", "mentor",
	"print", "prints", "near me",
}

// localModifiers are UK localities served by the business; a locality plus
// any topic is treated as commercial local intent.
var localModifiers = []string{
	"coventry",
	"warwickshire",
	"birmingham",
	"solihull",
	"leamington",
	"kenilworth",
	"west midlands",
}

// ukPostcodePattern matches UK postcode outcodes and full postcodes.
var ukPostcodePattern = regexp.MustCompile(`(?i)\b[A-Z]{1,2}\d{1,2}\s?\d?[A-Z]{0,2}\b`)

// educationTerms are informational phrasings.
var educationTerms = []string{
	"how to", "what is", "why do", "when to",
	"guide", "tutorial", "tips", "ideas",
	"examples", "explained", "learn", "beginner",
	"settings", "best way",
}

// techniqueTopics are photography jargon that implies a learning query even
// without an informational phrasing.
var techniqueTopics = []string{
	"aperture", "shutter speed", "iso", "exposure",
	"depth of field", "composition", "white balance",
	"focal length", "long exposure", "metering",
	"histogram", "bracketing", "hyperfocal",
}

// Confidence levels per rule tier.
const (
	brandConfidence         = 0.95
	moneyConfidence         = 0.85
	moneyConfidenceGBP      = 0.90
	educationConfidence     = 0.80
	educationConfidenceBlog = 0.85
	otherConfidence         = 0.50
)

// ClassifyKeyword maps a keyword to its segment with a confidence and a
// reason naming the matched term or pattern.
//
// The function fails soft: a missing or empty keyword classifies as other
// with zero confidence. It never panics on any string input.
func ClassifyKeyword(in KeywordInput) KeywordResult {
	keyword := strings.ToLower(strings.TrimSpace(in.Keyword))
	if keyword == "" {
		return KeywordResult{
			Segment:    KeywordOther,
			Confidence: 0,
			Reason:     "Invalid or missing keyword",
		}
	}

	for _, term := range brandTerms {
		if strings.Contains(keyword, term) {
			return KeywordResult{
				Segment:    KeywordBrand,
				Confidence: brandConfidence,
				Reason:     fmt.Sprintf("brand: contains '%s'", term),
			}
		}
	}

	if res, ok := classifyMoneyKeyword(keyword, in.PageType); ok {
		return res
	}

	if res, ok := classifyEducationKeyword(keyword, in.PageType); ok {
		return res
	}

	return KeywordResult{
		Segment:    KeywordOther,
		Confidence: otherConfidence,
		Reason:     "no brand, money, or education rule matched",
	}
}

// classifyMoneyKeyword tests the transactional, local-modifier, and postcode
// rules. The GBP page-type hint boosts confidence only.
func classifyMoneyKeyword(keyword, pageType string) (KeywordResult, bool) {
	confidence := moneyConfidence
	if pageType == "GBP" {
		confidence = moneyConfidenceGBP
	}

	for _, term := range moneyTerms {
		if strings.Contains(keyword, term) {
			return KeywordResult{
				Segment:    KeywordMoney,
				Confidence: confidence,
				Reason:     fmt.Sprintf("money: contains '%s'", term),
			}, true
		}
	}
	for _, loc := range localModifiers {
		if strings.Contains(keyword, loc) {
			return KeywordResult{
				Segment:    KeywordMoney,
				Confidence: confidence,
				Reason:     fmt.Sprintf("money: local modifier '%s'", loc),
			}, true
		}
	}
	if match := ukPostcodePattern.FindString(keyword); match != "" {
		return KeywordResult{
			Segment:    KeywordMoney,
			Confidence: confidence,
			Reason:     fmt.Sprintf("money: UK postcode pattern '%s'", match),
		}, true
	}
	return KeywordResult{}, false
}

// classifyEducationKeyword tests informational phrasings and technique
// topics. The Blog page-type hint boosts confidence only.
func classifyEducationKeyword(keyword, pageType string) (KeywordResult, bool) {
	confidence := educationConfidence
	if pageType == "Blog" {
		confidence = educationConfidenceBlog
	}

	for _, term := range educationTerms {
		if strings.Contains(keyword, term) {
			return KeywordResult{
				Segment:    KeywordEducation,
				Confidence: confidence,
				Reason:     fmt.Sprintf("education: contains '%s'", term),
			}, true
		}
	}
	for _, topic := range techniqueTopics {
		if strings.Contains(keyword, topic) {
			return KeywordResult{
				Segment:    KeywordEducation,
				Confidence: confidence,
				Reason:     fmt.Sprintf("education: technique topic '%s'", topic),
			}, true
		}
	}
	return KeywordResult{}, false
}
