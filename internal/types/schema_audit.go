package types

// SchemaAuditPage holds the structured-data signals detected on one page.
type SchemaAuditPage struct {
	URL                string   `json:"url"`
	HasSchema          bool     `json:"has_schema"`
	HasInheritedSchema bool     `json:"has_inherited_schema"`
	SchemaTypes        []string `json:"schema_types"`
}

// SchemaAuditData is the payload of a completed schema audit.
type SchemaAuditData struct {
	Pages            []SchemaAuditPage `json:"pages"`
	TotalPages       int               `json:"total_pages"`
	PagesWithSchema  int               `json:"pages_with_schema"`
	Coverage         float64           `json:"coverage"`
	Foundation       map[string]bool   `json:"foundation"`
	RichEligible     map[string]bool   `json:"rich_eligible"`
	AllDetectedTypes []string          `json:"all_detected_types,omitempty"`
}

// SchemaAudit wraps the schema audit result with a status so scorers can
// distinguish "audit ran" from "audit absent or failed".
type SchemaAudit struct {
	Status string           `json:"status"`
	Data   *SchemaAuditData `json:"data,omitempty"`
}

// OK reports whether the audit completed and produced data.
func (a *SchemaAudit) OK() bool {
	return a != nil && a.Status == StatusOK && a.Data != nil
}

// StatusOK marks a collector payload that completed successfully.
const StatusOK = "ok"

// FoundationTypes are the schema.org types every page set is expected to
// carry site-wide. The foundation score is the fraction of these present.
var FoundationTypes = []string{"Organization", "Person", "WebSite", "BreadcrumbList"}

// RichResultTypes are the schema.org types that make pages eligible for
// rich results. The rich-result score is the fraction marked eligible.
var RichResultTypes = []string{
	"Product", "Event", "FAQPage", "Article", "Course",
	"LocalBusiness", "Review", "AggregateRating", "ImageObject",
	"VideoObject", "HowTo",
}

// PageSchemaTypes returns the set of schema types detected for the given URL,
// or nil when the audit has no record of the page.
func (a *SchemaAudit) PageSchemaTypes(url string) []string {
	if !a.OK() {
		return nil
	}
	for i := range a.Data.Pages {
		if a.Data.Pages[i].URL == url {
			return a.Data.Pages[i].SchemaTypes
		}
	}
	return nil
}
