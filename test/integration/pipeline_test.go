package integration

import (
	"context"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/analyzer"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/compare"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/report"
	"github.com/boopin/bulk-seo-competitor-seo-scores/pkg/stamp"
)

const baselineSite = "acme-store"

func TestPipeline_CompareAndReport(t *testing.T) {
	// Paths to fixtures
	paths := []string{
		filepath.Join("..", "fixtures", "acme-store.csv"),
		filepath.Join("..", "fixtures", "rival-shop.csv"),
		filepath.Join("..", "fixtures", "budget-mart.csv"),
	}

	// 1. Ingestion and scoring (simulating 'analyze' over several exports)
	a, err := analyzer.New(nil, analyzer.WithWorkers(2))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	sets, err := a.AnalyzeFiles(context.Background(), paths)
	if err != nil {
		t.Fatalf("AnalyzeFiles failed: %v", err)
	}

	if len(sets) != 3 {
		t.Fatalf("Expected 3 score sets, got %d", len(sets))
	}

	// 2. Comparison
	result, err := compare.Compare(sets, baselineSite)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	ranking := result.Rankings[models.MetricComposite]
	want := []string{"rival-shop", "acme-store", "budget-mart"}

	if len(ranking) != len(want) {
		t.Fatalf("Expected %d ranked sites, got %v", len(want), ranking)
	}

	for i := range want {
		if ranking[i] != want[i] {
			t.Errorf("Expected composite rank %d to be %s, got %s", i+1, want[i], ranking[i])
		}
	}

	rival := result.Site("rival-shop")
	if rival == nil {
		t.Fatal("rival-shop missing from comparison")
	}

	if rival.OverallRank != 1 {
		t.Errorf("Expected rival-shop overall rank 1, got %d", rival.OverallRank)
	}

	standing := rival.Standings[models.MetricComposite]
	if !standing.DeltaDefined || standing.Delta != 6 {
		t.Errorf("Expected rival-shop composite delta +6, got %+v", standing)
	}

	baseline := result.Site(baselineSite)
	if baseline == nil || !baseline.IsBaseline {
		t.Fatalf("Expected %s to be the baseline, got %+v", baselineSite, baseline)
	}

	// 3. Report
	rep := report.Build("seopulse/test", sets, result)

	markdown, err := rep.Render(report.FormatMarkdown)
	if err != nil {
		t.Fatalf("Render markdown failed: %v", err)
	}

	for _, fragment := range []string{
		"# SEO Readiness Report",
		"Baseline site: **acme-store**",
		"rival-shop",
		"budget-mart",
	} {
		if !strings.Contains(markdown, fragment) {
			t.Errorf("Markdown report missing %q", fragment)
		}
	}

	// The report must verify against its own stamp.
	ok, err := stamp.Verify(markdown)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if !ok {
		t.Error("Expected the rendered report to carry a valid stamp")
	}

	// The CSV summary carries one row per site.
	out, err := rep.Render(report.FormatCSV)
	if err != nil {
		t.Fatalf("Render csv failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("Parsing csv output failed: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("Expected header plus 3 site rows, got %d rows", len(records))
	}

	rivalRow := findSiteRow(t, records, "rival-shop")

	if rivalRow[1] != "1" || rivalRow[2] != "100.0" || rivalRow[3] != "+6.0" {
		t.Errorf("Unexpected rival-shop summary row: %v", rivalRow)
	}

	budgetRow := findSiteRow(t, records, "budget-mart")

	if budgetRow[1] != "3" || budgetRow[2] != "66.0" || budgetRow[3] != "-28.0" {
		t.Errorf("Unexpected budget-mart summary row: %v", budgetRow)
	}
}

func findSiteRow(t *testing.T, records [][]string, site string) []string {
	t.Helper()

	for _, row := range records[1:] {
		if len(row) > 0 && row[0] == site {
			return row
		}
	}

	t.Fatalf("No csv row for site %s", site)

	return nil
}
