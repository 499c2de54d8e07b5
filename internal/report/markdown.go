package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
	"github.com/boopin/bulk-seo-competitor-seo-scores/pkg/stamp"
)

// metricTitles maps metrics onto their report headings.
var metricTitles = map[models.Metric]string{
	models.MetricContent:   "Content",
	models.MetricTechnical: "Technical",
	models.MetricUX:        "User Experience",
	models.MetricComposite: "Composite",
}

// maxIssueRows caps the per-site top-issues table.
const maxIssueRows = 10

// maxWarningLines caps the per-site crawl warnings list.
const maxWarningLines = 5

// renderMarkdown produces the markdown report and signs it so later edits
// can be detected.
func (r *Report) renderMarkdown() string {
	var b strings.Builder

	b.WriteString("# SEO Readiness Report\n")

	if r.Comparison != nil {
		fmt.Fprintf(&b, "\nBaseline site: **%s**.\n", r.Comparison.BaselineLabel)
		r.writeStandings(&b)
		r.writeRankings(&b)
	}

	for _, site := range r.Sites {
		r.writeSite(&b, site)
	}

	return stamp.Sign(b.String(), r.Tool)
}

func (r *Report) writeStandings(b *strings.Builder) {
	b.WriteString("\n## Standings\n\n")

	t := newTable("Rank", "Site", "Composite", "Delta", "Content", "Technical", "UX")

	for _, site := range r.Comparison.Sites {
		label := site.SiteLabel
		if site.IsBaseline {
			label += " (baseline)"
		}

		composite := site.Standings[models.MetricComposite]

		if site.NoData {
			t.add(fmt.Sprintf("%d", site.OverallRank), label, "no data", "n/a", "n/a", "n/a", "n/a")

			continue
		}

		t.add(
			fmt.Sprintf("%d", site.OverallRank),
			label,
			formatScore(composite.Aggregate),
			formatDelta(composite),
			formatScore(site.Standings[models.MetricContent].Aggregate),
			formatScore(site.Standings[models.MetricTechnical].Aggregate),
			formatScore(site.Standings[models.MetricUX].Aggregate),
		)
	}

	t.write(b)
}

func (r *Report) writeRankings(b *strings.Builder) {
	b.WriteString("\n## Rankings by metric\n\n")

	t := newTable("Metric", "Sites, best first")

	for _, metric := range models.Metrics {
		t.add(metricTitles[metric], strings.Join(r.Comparison.Rankings[metric], ", "))
	}

	t.write(b)
}

func (r *Report) writeSite(b *strings.Builder, site *SiteReport) {
	set := site.Scores

	fmt.Fprintf(b, "\n## Site: %s\n\n", set.SiteLabel)

	if set.NoData {
		b.WriteString("No rows produced scores; the dataset was empty or every row was skipped.\n")
		r.writeCrawlQuality(b, set)

		return
	}

	summary := site.Summary
	fmt.Fprintf(b, "Health: **%s** (composite %s). ", summary.Health, formatScore(set.AggregateComposite))
	fmt.Fprintf(b, "%d critical and %d high priority recommendations, %d quick wins. ",
		summary.CriticalCount, summary.HighCount, summary.QuickWins)
	fmt.Fprintf(b, "Estimated improvement potential: %d%%.\n", summary.EstimatedImprovement)

	b.WriteString("\n### Scores\n\n")

	scores := newTable("Metric", "Score")
	for _, metric := range models.Metrics {
		scores.add(metricTitles[metric], formatScore(set.Aggregate(metric)))
	}
	scores.write(b)

	if len(set.TopIssues) > 0 {
		b.WriteString("\n### Top issues\n\n")

		issues := newTable("Issue", "Pages affected")

		for i, issue := range set.TopIssues {
			if i == maxIssueRows {
				break
			}

			issues.add(issue.Code, fmt.Sprintf("%d", issue.Pages))
		}

		issues.write(b)
	}

	if len(site.Recommendations) > 0 {
		b.WriteString("\n### Recommendations\n\n")

		for i, rec := range site.Recommendations {
			fmt.Fprintf(b, "%d. **%s** (%s priority, %s effort) affecting %d of %d pages.\n",
				i+1, rec.Issue, rec.PriorityLabel, rec.Effort, rec.PagesAffected, len(set.Pages))
			fmt.Fprintf(b, "   %s\n", rec.Recommendation)

			if rec.ExpectedImpact != "" {
				fmt.Fprintf(b, "   Expected impact: %s\n", rec.ExpectedImpact)
			}
		}
	}

	r.writeCrawlQuality(b, set)
}

func (r *Report) writeCrawlQuality(b *strings.Builder, set *models.SiteScoreSet) {
	norm := set.Normalization

	fmt.Fprintf(b, "\n### Crawl quality\n\nScored %d of %d rows (%d skipped, %d warnings).\n",
		norm.PagesScored, norm.RowsRead, norm.RowsSkipped, len(norm.Warnings))

	if len(norm.Warnings) == 0 {
		return
	}

	b.WriteString("\n")

	for i, w := range norm.Warnings {
		if i == maxWarningLines {
			fmt.Fprintf(b, "- and %d more\n", len(norm.Warnings)-maxWarningLines)

			break
		}

		fmt.Fprintf(b, "- row %d: %s\n", w.Row, w.Message)
	}
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func formatDelta(s models.MetricStanding) string {
	if !s.DeltaDefined {
		return "n/a"
	}

	return fmt.Sprintf("%+.1f", s.Delta)
}

// table builds an aligned markdown table. Column widths use display
// width, not byte length, so multi-width characters keep cells aligned.
type table struct {
	header []string
	rows   [][]string
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) write(b *strings.Builder) {
	widths := make([]int, len(t.header))

	for i, cell := range t.header {
		widths[i] = runewidth.StringWidth(cell)
	}

	for _, row := range t.rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Separator rows need at least three dashes.
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	writeRow := func(cells []string) {
		b.WriteString("|")

		for i, width := range widths {
			content := ""
			if i < len(cells) {
				content = cells[i]
			}

			b.WriteString(" ")
			b.WriteString(content)

			if padding := width - runewidth.StringWidth(content); padding > 0 {
				b.WriteString(strings.Repeat(" ", padding))
			}

			b.WriteString(" |")
		}

		b.WriteString("\n")
	}

	writeRow(t.header)

	b.WriteString("|")

	for _, width := range widths {
		b.WriteString(" " + strings.Repeat("-", width) + " |")
	}

	b.WriteString("\n")

	for _, row := range t.rows {
		writeRow(row)
	}
}
