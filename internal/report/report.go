// Package report renders finished analyses as markdown, CSV or JSON.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/advisor"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
)

// Format selects an output renderer.
type Format string

// Supported output formats.
const (
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
)

// Report errors.
var (
	ErrUnknownFormat = errors.New("unknown report format")
)

// ParseFormat maps a user-supplied format name onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// SiteReport is one site's scores plus the advice derived from them.
type SiteReport struct {
	Scores          *models.SiteScoreSet     `json:"scores"`
	Summary         advisor.Summary          `json:"summary"`
	Recommendations []advisor.Recommendation `json:"recommendations,omitempty"`
}

// Report bundles everything the renderers need. Comparison is nil when a
// single site was analyzed on its own.
type Report struct {
	Tool        string                   `json:"tool"`
	GeneratedAt time.Time                `json:"generatedAt"`
	Comparison  *models.ComparisonResult `json:"comparison,omitempty"`
	Sites       []*SiteReport            `json:"sites"`
}

// Build assembles a report from finished score sets, running the advisor
// over each site. Sites keep the order given; pass them ranked when a
// comparison exists.
func Build(tool string, sets []*models.SiteScoreSet, comparison *models.ComparisonResult) *Report {
	r := &Report{
		Tool:        tool,
		GeneratedAt: time.Now().UTC(),
		Comparison:  comparison,
	}

	if comparison != nil {
		r.GeneratedAt = comparison.GeneratedAt
	}

	for _, set := range sets {
		recs := advisor.Advise(set)

		r.Sites = append(r.Sites, &SiteReport{
			Scores:          set,
			Summary:         advisor.Summarize(set, recs),
			Recommendations: recs,
		})
	}

	return r
}

// Site returns the section for the given label, or nil.
func (r *Report) Site(label string) *SiteReport {
	for _, s := range r.Sites {
		if s.Scores.SiteLabel == label {
			return s
		}
	}

	return nil
}

// Render produces the report in the requested format.
func (r *Report) Render(format Format) (string, error) {
	switch format {
	case FormatMarkdown:
		return r.renderMarkdown(), nil
	case FormatCSV:
		return r.renderCSV()
	case FormatJSON:
		return r.renderJSON()
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
