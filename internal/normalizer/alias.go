package normalizer

import (
	"strings"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
)

// Canonical field names. The alias table maps each of these to the source
// column names accepted for it.
const (
	FieldURL               = "url"
	FieldTitle             = "title"
	FieldTitleLength       = "title_length"
	FieldMetaDescription   = "meta_description"
	FieldDescriptionLength = "description_length"
	FieldH1                = "h1"
	FieldH1Secondary       = "h1_secondary"
	FieldWordCount         = "word_count"
	FieldInternalLinks     = "internal_link_count"
	FieldStatusCode        = "status_code"
	FieldIndexability      = "indexability"
	FieldRobotsDirective   = "robots_directive"
	FieldCanonicalURL      = "canonical_url"
	FieldResponseTimeSec   = "response_time_sec"
	FieldResponseTimeMs    = "response_time_ms"
	FieldMobileFriendly    = "mobile_friendly"
	FieldMobileAlternate   = "mobile_alternate"
	FieldLCPMs             = "lcp_ms"
	FieldCLS               = "cls"
	FieldINPMs             = "inp_ms"
)

// DefaultAliases returns the built-in alias table: canonical field name →
// accepted source column names, first match wins. The defaults cover
// Screaming Frog export headers plus common generic spellings. Matching is
// case-insensitive and ignores spaces, hyphens and underscores.
func DefaultAliases() map[string][]string {
	return map[string][]string{
		FieldURL:               {"Address", "URL", "Page URL"},
		FieldTitle:             {"Title 1", "Title", "Page Title"},
		FieldTitleLength:       {"Title 1 Length", "Title Length"},
		FieldMetaDescription:   {"Meta Description 1", "Meta Description"},
		FieldDescriptionLength: {"Meta Description 1 Length", "Meta Description Length"},
		FieldH1:                {"H1-1", "H1"},
		FieldH1Secondary:       {"H1-2"},
		FieldWordCount:         {"Word Count"},
		FieldInternalLinks:     {"Inlinks", "Unique Inlinks", "Internal Links"},
		FieldStatusCode:        {"Status Code", "HTTP Status Code"},
		FieldIndexability:      {"Indexability"},
		FieldRobotsDirective:   {"Indexability Status", "Meta Robots 1"},
		FieldCanonicalURL:      {"Canonical Link Element 1", "Canonical Link Element", "Canonical URL"},
		FieldResponseTimeSec:   {"Response Time"},
		FieldResponseTimeMs:    {"Response Time (ms)"},
		FieldMobileFriendly:    {"Mobile Friendly", "Is Mobile Friendly"},
		FieldMobileAlternate:   {"Mobile Alternate Link"},
		FieldLCPMs:             {"Largest Contentful Paint Time (ms)", "LCP (ms)"},
		FieldCLS:               {"Cumulative Layout Shift", "CLS"},
		FieldINPMs:             {"Interaction to Next Paint Time (ms)", "INP (ms)"},
	}
}

// Resolver maps canonical fields to the source columns actually present in
// one dataset's header. It is built once per dataset so row processing
// does no alias scanning.
type Resolver struct {
	columns map[string]string
}

// NewResolver resolves the alias table against a header. Caller-supplied
// aliases are tried before the defaults for their field.
func NewResolver(header []string, overrides map[string][]string) *Resolver {
	aliases := DefaultAliases()
	for field, names := range overrides {
		merged := make([]string, 0, len(names)+len(aliases[field]))
		merged = append(merged, names...)
		merged = append(merged, aliases[field]...)
		aliases[field] = merged
	}

	byKey := make(map[string]string, len(header))
	for _, name := range header {
		key := normalizeKey(name)
		if _, exists := byKey[key]; !exists {
			byKey[key] = name
		}
	}

	columns := make(map[string]string)

	for field, names := range aliases {
		for _, name := range names {
			if source, ok := byKey[normalizeKey(name)]; ok {
				columns[field] = source
				break
			}
		}
	}

	return &Resolver{columns: columns}
}

// Resolved returns the source column chosen for a canonical field.
func (r *Resolver) Resolved(field string) (string, bool) {
	source, ok := r.columns[field]

	return source, ok
}

// Lookup returns the trimmed value of a canonical field in one row. ok is
// false when the field resolved to no column, or the cell is empty or
// whitespace: empty never means zero, it means absent.
func (r *Resolver) Lookup(row models.RawRow, field string) (string, bool) {
	source, ok := r.columns[field]
	if !ok {
		return "", false
	}

	value := strings.TrimSpace(row[source])
	if value == "" {
		return "", false
	}

	return value, true
}

// normalizeKey folds a column name for matching: lowercase, with spaces,
// hyphens and underscores removed.
func normalizeKey(name string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '\t', '-', '_':
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
