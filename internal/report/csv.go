package report

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
)

// csvHeader is the column order of the summary CSV, one row per site.
var csvHeader = []string{
	"site",
	"overall_rank",
	"composite",
	"composite_delta",
	"content",
	"technical",
	"ux",
	"pages_scored",
	"rows_skipped",
	"health",
	"critical_recommendations",
	"quick_wins",
	"top_recommendation",
}

// renderCSV produces one summary row per site. Cells that have no value
// for a site (rank without a comparison, scores without data) stay empty
// rather than carrying a placeholder zero.
func (r *Report) renderCSV() (string, error) {
	var b strings.Builder

	w := csv.NewWriter(&b)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, site := range r.Sites {
		if err := w.Write(r.csvRow(site)); err != nil {
			return "", fmt.Errorf("failed to write csv row for %s: %w", site.Scores.SiteLabel, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}

	return b.String(), nil
}

func (r *Report) csvRow(site *SiteReport) []string {
	set := site.Scores

	var rank, delta string

	if r.Comparison != nil {
		if cmp := r.Comparison.Site(set.SiteLabel); cmp != nil {
			rank = strconv.Itoa(cmp.OverallRank)

			if standing := cmp.Standings[models.MetricComposite]; standing.DeltaDefined {
				delta = fmt.Sprintf("%+.1f", standing.Delta)
			}
		}
	}

	var composite, content, technical, ux string

	if !set.NoData {
		composite = formatScore(set.AggregateComposite)
		content = formatScore(set.AggregateContent)
		technical = formatScore(set.AggregateTechnical)
		ux = formatScore(set.AggregateUX)
	}

	return []string{
		set.SiteLabel,
		rank,
		composite,
		delta,
		content,
		technical,
		ux,
		strconv.Itoa(set.Normalization.PagesScored),
		strconv.Itoa(set.Normalization.RowsSkipped),
		site.Summary.Health,
		strconv.Itoa(site.Summary.CriticalCount),
		strconv.Itoa(site.Summary.QuickWins),
		site.Summary.TopRecommendation,
	}
}
