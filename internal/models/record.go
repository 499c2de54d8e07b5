// Package models defines the data structures shared by the normalizer,
// the metric evaluators, the aggregator and the comparison engine.
package models

// RawRow is one row of a crawl export as delivered by the ingestion layer:
// source column name → raw cell value, both untrimmed. Column names vary by
// exporter and version; the normalizer's alias table maps them onto
// PageRecord fields.
type RawRow map[string]string

// PageRecord is the canonical, normalized view of one crawled URL.
//
// Optional fields are pointers so that "absent" stays distinct from a zero
// or empty value: evaluators penalize missing data differently from data
// that is present but poor. Only URL is guaranteed non-empty; Indexable is
// always materialized by the normalizer (from the export's indexability
// column, or from the status-code default rule when that column is absent).
type PageRecord struct {
	URL string `json:"url"`

	Title             *string `json:"title,omitempty"`
	TitleLength       *int    `json:"titleLength,omitempty"`
	MetaDescription   *string `json:"metaDescription,omitempty"`
	DescriptionLength *int    `json:"descriptionLength,omitempty"`
	H1                *string `json:"h1,omitempty"`
	H1Count           int     `json:"h1Count"`

	WordCount         *int `json:"wordCount,omitempty"`
	InternalLinkCount *int `json:"internalLinkCount,omitempty"`

	StatusCode     *int     `json:"statusCode,omitempty"`
	Indexable      bool     `json:"indexable"`
	CanonicalURL   *string  `json:"canonicalUrl,omitempty"`
	ResponseTimeMs *float64 `json:"responseTimeMs,omitempty"`

	MobileFriendly *bool    `json:"mobileFriendly,omitempty"`
	LCPSeconds     *float64 `json:"lcpSeconds,omitempty"`
	CLS            *float64 `json:"cls,omitempty"`
	INPMs          *float64 `json:"inpMs,omitempty"`
}

// RowWarning records a non-fatal problem found while normalizing one row.
// Warnings never abort a batch; they are surfaced on the site score set so
// callers and reports can show them.
type RowWarning struct {
	Row     int    `json:"row"`
	URL     string `json:"url,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NormalizationSummary describes how a raw dataset became page records.
type NormalizationSummary struct {
	RowsRead    int          `json:"rowsRead"`
	PagesScored int          `json:"pagesScored"`
	RowsSkipped int          `json:"rowsSkipped"`
	Warnings    []RowWarning `json:"warnings,omitempty"`
}
