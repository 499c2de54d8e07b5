// Package normalizer maps raw crawl-export rows onto canonical page
// records, applying the column alias table, type coercion and the
// missing-value policy.
package normalizer

import (
	"fmt"
	"strings"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
	"github.com/boopin/bulk-seo-competitor-seo-scores/pkg/textutil"
)

// MalformedRowError marks a row without a usable URL. The row is skipped
// and recorded as a warning; it never aborts the batch.
type MalformedRowError struct {
	Row    int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d is malformed: %s", e.Row, e.Reason)
}

// Normalizer converts raw rows of one dataset into page records. It holds
// the alias resolution for that dataset's header, so construct one per
// dataset.
type Normalizer struct {
	resolver *Resolver
}

// NewNormalizer builds a normalizer for a dataset with the given header.
// aliases may extend or override the default alias table per field; nil
// keeps the defaults.
func NewNormalizer(header []string, aliases map[string][]string) *Normalizer {
	return &Normalizer{resolver: NewResolver(header, aliases)}
}

// Resolver exposes the alias resolution, mainly for logging which source
// columns were picked.
func (n *Normalizer) Resolver() *Resolver {
	return n.resolver
}

// NormalizeRow converts one raw row into a PageRecord. Coercion failures
// make the field absent and add a warning; only an unusable URL fails the
// row, with a MalformedRowError.
func (n *Normalizer) NormalizeRow(row models.RawRow, rowNum int) (*models.PageRecord, []models.RowWarning, error) {
	url, ok := n.resolver.Lookup(row, FieldURL)
	if !ok {
		reason := "url value is empty"
		if _, resolved := n.resolver.Resolved(FieldURL); !resolved {
			reason = "no url column found in header"
		}

		return nil, nil, &MalformedRowError{Row: rowNum, Reason: reason}
	}

	var warnings []models.RowWarning

	warn := func(field, message string) {
		warnings = append(warnings, models.RowWarning{Row: rowNum, URL: url, Field: field, Message: message})
	}

	rec := &models.PageRecord{URL: url}

	if title, ok := n.resolver.Lookup(row, FieldTitle); ok {
		clean := textutil.CollapseWhitespace(title)
		rec.Title = &clean
		rec.TitleLength = n.textLength(row, FieldTitleLength, clean, warn)
	}

	if desc, ok := n.resolver.Lookup(row, FieldMetaDescription); ok {
		clean := textutil.CollapseWhitespace(desc)
		rec.MetaDescription = &clean
		rec.DescriptionLength = n.textLength(row, FieldDescriptionLength, clean, warn)
	}

	primary, hasPrimary := n.resolver.Lookup(row, FieldH1)
	secondary, hasSecondary := n.resolver.Lookup(row, FieldH1Secondary)

	if hasPrimary {
		clean := textutil.CollapseWhitespace(primary)
		rec.H1 = &clean
	} else if hasSecondary {
		clean := textutil.CollapseWhitespace(secondary)
		rec.H1 = &clean
	}

	if hasPrimary {
		rec.H1Count++
	}

	if hasSecondary {
		rec.H1Count++
	}

	rec.WordCount = n.intField(row, FieldWordCount, warn)
	rec.InternalLinkCount = n.intField(row, FieldInternalLinks, warn)
	rec.StatusCode = n.intField(row, FieldStatusCode, warn)

	if canonical, ok := n.resolver.Lookup(row, FieldCanonicalURL); ok {
		rec.CanonicalURL = &canonical
	}

	// Prefer an explicit milliseconds column; Screaming Frog's plain
	// "Response Time" is in seconds.
	if ms := n.floatField(row, FieldResponseTimeMs, warn); ms != nil {
		rec.ResponseTimeMs = ms
	} else if sec := n.floatField(row, FieldResponseTimeSec, warn); sec != nil {
		v := *sec * 1000
		rec.ResponseTimeMs = &v
	}

	rec.Indexable = n.indexable(row, rec.StatusCode, warn)

	if raw, ok := n.resolver.Lookup(row, FieldMobileFriendly); ok {
		if v, recognized := parseBoolToken(raw); recognized {
			rec.MobileFriendly = &v
		} else {
			warn(FieldMobileFriendly, fmt.Sprintf("unrecognized mobile-friendly value %q, treating as unknown", raw))
		}
	} else if _, ok := n.resolver.Lookup(row, FieldMobileAlternate); ok {
		// A mobile alternate link only proves a mobile variant exists.
		// Its absence proves nothing, so that stays unknown.
		v := true
		rec.MobileFriendly = &v
	}

	if lcpMs := n.floatField(row, FieldLCPMs, warn); lcpMs != nil {
		v := *lcpMs / 1000
		rec.LCPSeconds = &v
	}

	rec.CLS = n.floatField(row, FieldCLS, warn)
	rec.INPMs = n.floatField(row, FieldINPMs, warn)

	return rec, warnings, nil
}

// NormalizeAll converts a dataset's rows into page records, preserving row
// order. Row numbers in warnings are file line numbers: the header is line
// 1, the first data row line 2. Malformed rows are skipped with a warning;
// the batch never fails.
func (n *Normalizer) NormalizeAll(rows []models.RawRow) ([]models.PageRecord, models.NormalizationSummary) {
	records := make([]models.PageRecord, 0, len(rows))
	summary := models.NormalizationSummary{RowsRead: len(rows)}

	for i, row := range rows {
		rowNum := i + 2

		rec, warnings, err := n.NormalizeRow(row, rowNum)
		summary.Warnings = append(summary.Warnings, warnings...)

		if err != nil {
			summary.RowsSkipped++
			summary.Warnings = append(summary.Warnings, models.RowWarning{Row: rowNum, Message: err.Error()})

			continue
		}

		records = append(records, *rec)
	}

	summary.PagesScored = len(records)

	return records, summary
}

// textLength returns the explicit length column when present and sane,
// otherwise the user-perceived character count of the text itself.
func (n *Normalizer) textLength(row models.RawRow, field, text string, warn func(field, message string)) *int {
	if raw, ok := n.resolver.Lookup(row, field); ok {
		length, err := parseIntValue(raw)
		if err == nil && length >= 0 {
			return &length
		}

		warn(field, fmt.Sprintf("unparseable length %q, deriving from text", raw))
	}

	count := textutil.CharCount(text)

	return &count
}

// intField parses a non-negative integer field; parse failures and
// negative values become absent with a warning.
func (n *Normalizer) intField(row models.RawRow, field string, warn func(field, message string)) *int {
	raw, ok := n.resolver.Lookup(row, field)
	if !ok {
		return nil
	}

	v, err := parseIntValue(raw)
	if err != nil {
		warn(field, fmt.Sprintf("unparseable integer %q, treating as absent", raw))

		return nil
	}

	if v < 0 {
		warn(field, fmt.Sprintf("negative value %d, treating as absent", v))

		return nil
	}

	return &v
}

// floatField parses a non-negative numeric field; parse failures and
// negative values become absent with a warning.
func (n *Normalizer) floatField(row models.RawRow, field string, warn func(field, message string)) *float64 {
	raw, ok := n.resolver.Lookup(row, field)
	if !ok {
		return nil
	}

	v, err := parseFloatValue(raw)
	if err != nil {
		warn(field, fmt.Sprintf("unparseable number %q, treating as absent", raw))

		return nil
	}

	if v < 0 {
		warn(field, fmt.Sprintf("negative value %v, treating as absent", v))

		return nil
	}

	return &v
}

// indexable materializes the indexability flag. An explicit indexability
// column wins; otherwise a page is indexable when its status code is 2xx
// and no robots directive says noindex.
func (n *Normalizer) indexable(row models.RawRow, status *int, warn func(field, message string)) bool {
	if raw, ok := n.resolver.Lookup(row, FieldIndexability); ok {
		switch classifyIndexability(raw) {
		case indexabilityYes:
			return true
		case indexabilityNo:
			return false
		}

		warn(FieldIndexability, fmt.Sprintf("unrecognized indexability %q, falling back to status rule", raw))
	}

	if directive, ok := n.resolver.Lookup(row, FieldRobotsDirective); ok {
		if strings.Contains(strings.ToLower(directive), "noindex") {
			return false
		}
	}

	return status != nil && *status >= 200 && *status < 300
}
