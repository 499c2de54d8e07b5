package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/config"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/ingest"
)

const exportHeader = "Address,Title 1,Meta Description 1,H1-1,Word Count,Inlinks," +
	"Status Code,Indexability,Canonical Link Element 1,Response Time (ms)," +
	"Mobile Friendly,Largest Contentful Paint Time (ms),Cumulative Layout Shift," +
	"Interaction to Next Paint Time (ms)"

// healthyCSVRow builds a row that trips no scoring rule.
func healthyCSVRow(url string) string {
	return strings.Join([]string{
		url,
		"Premium Widgets and Industrial Supplies Co",
		"Shop our catalog of industrial widgets with fast shipping and dependable support.",
		"Welcome",
		"800",
		"12",
		"200",
		"Indexable",
		url,
		"300",
		"Yes",
		"1800",
		"0.05",
		"150",
	}, ",")
}

func newAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()

	a, err := New(config.Default(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return a
}

func readDataset(t *testing.T, label, content string) *ingest.Dataset {
	t.Helper()

	ds, err := ingest.Read(strings.NewReader(content), label)
	if err != nil {
		t.Fatalf("ingest.Read() error = %v", err)
	}

	return ds
}

func writeExport(t *testing.T, dir, name string, rows ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	content := exportHeader + "\n" + strings.Join(rows, "\n") + "\n"

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}

	return path
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	if _, err := New(nil); err != nil {
		t.Fatalf("New(nil) error = %v", err)
	}
}

func TestNew_InvalidWeights(t *testing.T) {
	cfg := config.Default()
	cfg.Scoring.Weights.Content = 0.9

	var werr *config.InvalidWeightsError

	if _, err := New(cfg); !errors.As(err, &werr) {
		t.Fatalf("New() error = %v, want InvalidWeightsError", err)
	}
}

func TestAnalyzeDataset_HealthyPages(t *testing.T) {
	content := exportHeader + "\n" +
		healthyCSVRow("https://example.com/") + "\n" +
		healthyCSVRow("https://example.com/about") + "\n"

	set, err := newAnalyzer(t).AnalyzeDataset(context.Background(), readDataset(t, "mine", content))
	if err != nil {
		t.Fatalf("AnalyzeDataset() error = %v", err)
	}

	if set.SiteLabel != "mine" {
		t.Errorf("SiteLabel = %q, want %q", set.SiteLabel, "mine")
	}
	if len(set.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(set.Pages))
	}

	for _, page := range set.Pages {
		if page.CompositeScore != 100 {
			t.Errorf("page %s composite = %v, want 100 (deductions: %+v)",
				page.URL, page.CompositeScore, page.Deductions)
		}
	}

	if set.AggregateComposite != 100 {
		t.Errorf("AggregateComposite = %v, want 100", set.AggregateComposite)
	}
	if set.Normalization.PagesScored != 2 || set.Normalization.RowsSkipped != 0 {
		t.Errorf("Normalization = %+v", set.Normalization)
	}
}

func TestAnalyzeDataset_PageOrderSurvivesConcurrency(t *testing.T) {
	var rows []string
	for i := 0; i < 40; i++ {
		url := fmt.Sprintf("https://example.com/page-%02d", i)
		if i%2 == 0 {
			rows = append(rows, healthyCSVRow(url))
		} else {
			// Sparse rows score differently, which would expose shuffling.
			rows = append(rows, url+",,,,,,,,,,,,,")
		}
	}

	content := exportHeader + "\n" + strings.Join(rows, "\n") + "\n"

	set, err := newAnalyzer(t, WithWorkers(8)).AnalyzeDataset(context.Background(), readDataset(t, "big", content))
	if err != nil {
		t.Fatalf("AnalyzeDataset() error = %v", err)
	}

	if len(set.Pages) != 40 {
		t.Fatalf("got %d pages, want 40", len(set.Pages))
	}

	for i, page := range set.Pages {
		want := fmt.Sprintf("https://example.com/page-%02d", i)
		if page.URL != want {
			t.Fatalf("Pages[%d].URL = %q, want %q", i, page.URL, want)
		}
	}
}

func TestAnalyzeDataset_MergesIngestWarningsFirst(t *testing.T) {
	// Row 2 has extra cells (ingest warning); row 3 has no URL
	// (normalizer warning).
	content := exportHeader + "\n" +
		healthyCSVRow("https://example.com/") + ",surplus\n" +
		",,,,,,,,,,,,,\n"

	set, err := newAnalyzer(t).AnalyzeDataset(context.Background(), readDataset(t, "mine", content))
	if err != nil {
		t.Fatalf("AnalyzeDataset() error = %v", err)
	}

	warnings := set.Normalization.Warnings
	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2: %+v", len(warnings), warnings)
	}

	if warnings[0].Row != 2 || !strings.Contains(warnings[0].Message, "extra cells dropped") {
		t.Errorf("warnings[0] = %+v, want the ingest warning first", warnings[0])
	}
	if warnings[1].Row != 3 || !strings.Contains(warnings[1].Message, "url value is empty") {
		t.Errorf("warnings[1] = %+v, want the malformed-row warning", warnings[1])
	}

	if set.Normalization.RowsSkipped != 1 {
		t.Errorf("RowsSkipped = %d, want 1", set.Normalization.RowsSkipped)
	}
}

func TestAnalyzeDataset_EmptyDataset(t *testing.T) {
	set, err := newAnalyzer(t).AnalyzeDataset(context.Background(), readDataset(t, "bare", exportHeader+"\n"))
	if err != nil {
		t.Fatalf("AnalyzeDataset() error = %v", err)
	}

	if !set.NoData {
		t.Error("NoData = false, want true for a header-only dataset")
	}
}

func TestAnalyzeDataset_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	content := exportHeader + "\n" + healthyCSVRow("https://example.com/") + "\n"

	_, err := newAnalyzer(t).AnalyzeDataset(ctx, readDataset(t, "mine", content))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("AnalyzeDataset() error = %v, want context.Canceled", err)
	}
}

func TestAnalyzeFiles(t *testing.T) {
	dir := t.TempDir()

	alpha := writeExport(t, dir, "alpha.csv", healthyCSVRow("https://alpha.test/"))
	beta := writeExport(t, dir, "beta.csv", healthyCSVRow("https://beta.test/"), healthyCSVRow("https://beta.test/b"))

	var (
		mu     sync.Mutex
		stages = make(map[string][]Stage)
	)

	a := newAnalyzer(t,
		WithWorkers(2),
		WithProgress(func(site string, stage Stage) {
			mu.Lock()
			defer mu.Unlock()
			stages[site] = append(stages[site], stage)
		}),
	)

	sets, err := a.AnalyzeFiles(context.Background(), []string{alpha, beta})
	if err != nil {
		t.Fatalf("AnalyzeFiles() error = %v", err)
	}

	if len(sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(sets))
	}
	if sets[0].SiteLabel != "alpha" || sets[1].SiteLabel != "beta" {
		t.Errorf("labels = %q, %q; want alpha, beta", sets[0].SiteLabel, sets[1].SiteLabel)
	}
	if len(sets[1].Pages) != 2 {
		t.Errorf("beta has %d pages, want 2", len(sets[1].Pages))
	}

	want := []Stage{StageIngest, StageNormalize, StageScore, StageAggregate}

	for _, site := range []string{"alpha", "beta"} {
		got := stages[site]
		if len(got) != len(want) {
			t.Errorf("%s stages = %v, want %v", site, got, want)

			continue
		}

		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s stages = %v, want %v", site, got, want)

				break
			}
		}
	}
}

func TestAnalyzeFiles_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.csv")

	_, err := newAnalyzer(t).AnalyzeFiles(context.Background(), []string{missing})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), "absent.csv") {
		t.Errorf("error %q should name the file", err)
	}
}

func TestAnalyzeSources_ExplicitLabel(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "export-2026-01.csv", healthyCSVRow("https://branded.test/"))

	sets, err := newAnalyzer(t).AnalyzeSources(context.Background(), []Source{{File: path, Label: "branded"}})
	if err != nil {
		t.Fatalf("AnalyzeSources() error = %v", err)
	}

	if sets[0].SiteLabel != "branded" {
		t.Errorf("SiteLabel = %q, want %q", sets[0].SiteLabel, "branded")
	}
}

func TestAnalyzeConfigured(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "mine.csv", healthyCSVRow("https://mine.test/"))

	cfg := config.Default()
	cfg.Datasets = []config.DatasetConfig{{File: path, Baseline: true}}

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sets, err := a.AnalyzeConfigured(context.Background())
	if err != nil {
		t.Fatalf("AnalyzeConfigured() error = %v", err)
	}

	if len(sets) != 1 || sets[0].SiteLabel != "mine" {
		t.Errorf("sets = %+v, want one set labeled mine", sets)
	}
}

func TestSource_EffectiveLabel(t *testing.T) {
	tests := []struct {
		name   string
		source Source
		want   string
	}{
		{"explicit label wins", Source{File: "data/export.csv", Label: "branded"}, "branded"},
		{"derived from file", Source{File: "data/competitor-a.csv"}, "competitor-a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.source.EffectiveLabel(); got != tt.want {
				t.Errorf("EffectiveLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
