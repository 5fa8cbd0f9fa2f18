package domain

import "strings"

// WebsiteSourceType groups every form-originated lead in reports.
const WebsiteSourceType = "Website"

// formSourceNames are the canonical website form names, keyed by their
// folded spelling for case-insensitive matching.
var formSourceNames = map[string]string{
	"brochure download":        "Brochure Download",
	"product profile download": "Product Profile Download",
	"talk to sales":            "Talk to Sales",
	"general inquiry":          "General Inquiry",
	"request a demo":           "Request a Demo",
}

func canonicalFormSource(s string) (string, bool) {
	name, ok := formSourceNames[strings.ToLower(strings.TrimSpace(s))]
	return name, ok
}

// NormalizeSource rewrites a lead's source fields so every form-based
// lead is grouped under the "Website" source type with the form name
// preserved in Source. It handles both current data (form name in
// Source) and legacy rows (form name in SourceType), and is idempotent:
// applying it twice changes nothing.
func NormalizeSource(l *Lead) {
	if l.Source != nil {
		if name, ok := canonicalFormSource(*l.Source); ok {
			l.Source = &name
			l.SourceType = WebsiteSourceType
			return
		}
	}
	if name, ok := canonicalFormSource(l.SourceType); ok {
		l.SourceType = WebsiteSourceType
		if l.Source == nil || *l.Source == WebsiteSourceType || *l.Source == "" {
			l.Source = &name
		}
	}
}
