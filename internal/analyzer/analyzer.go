// Package analyzer wires ingestion, normalization, scoring and aggregation
// into one pipeline. Datasets run concurrently and pages within a dataset
// are scored by a worker pool; output order always matches input order.
package analyzer

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/aggregate"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/config"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/ingest"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/normalizer"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/scoring"
)

// Source names one dataset to analyze. Label is optional; when empty the
// file name decides the site label.
type Source struct {
	File  string
	Label string
}

// SourceFromConfig converts a configured dataset into a Source.
func SourceFromConfig(ds config.DatasetConfig) Source {
	return Source{File: ds.File, Label: ds.Label}
}

// EffectiveLabel returns the explicit label, or one derived from the
// file name.
func (s Source) EffectiveLabel() string {
	if s.Label != "" {
		return s.Label
	}

	return ingest.LabelFromPath(s.File)
}

// Analyzer runs the scoring pipeline with fixed configuration. It is safe
// for concurrent use.
type Analyzer struct {
	cfg        *config.Config
	opts       options
	evaluator  *scoring.Evaluator
	aggregator *aggregate.Aggregator
}

// New builds an Analyzer from a validated configuration. A nil cfg uses
// the defaults.
func New(cfg *config.Config, opts ...Option) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}

	aggregator, err := aggregate.NewAggregator(cfg.Scoring.Weights, cfg.Aggregation.Method)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		cfg:        cfg,
		opts:       o,
		evaluator:  scoring.NewEvaluator(cfg.Scoring),
		aggregator: aggregator,
	}, nil
}

// AnalyzeSources analyzes every source, up to the worker limit at a time.
// The result keeps source order. The first failure cancels the rest.
func (a *Analyzer) AnalyzeSources(ctx context.Context, sources []Source) ([]*models.SiteScoreSet, error) {
	sets := make([]*models.SiteScoreSet, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.workers)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			set, err := a.analyzeSource(ctx, src)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", src.File, err)
			}

			sets[i] = set

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return sets, nil
}

// AnalyzeFiles analyzes the given export files, labeling each site from
// its file name.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, paths []string) ([]*models.SiteScoreSet, error) {
	sources := make([]Source, len(paths))
	for i, path := range paths {
		sources[i] = Source{File: path}
	}

	return a.AnalyzeSources(ctx, sources)
}

// AnalyzeConfigured analyzes the datasets named in the configuration.
func (a *Analyzer) AnalyzeConfigured(ctx context.Context) ([]*models.SiteScoreSet, error) {
	sources := make([]Source, len(a.cfg.Datasets))
	for i, ds := range a.cfg.Datasets {
		sources[i] = SourceFromConfig(ds)
	}

	return a.AnalyzeSources(ctx, sources)
}

func (a *Analyzer) analyzeSource(ctx context.Context, src Source) (*models.SiteScoreSet, error) {
	label := src.EffectiveLabel()

	a.progress(label, StageIngest)

	ds, err := ingest.ReadFile(src.File)
	if err != nil {
		return nil, err
	}

	ds.Label = label

	return a.AnalyzeDataset(ctx, ds)
}

// AnalyzeDataset runs an already-read dataset through normalization,
// scoring and aggregation.
func (a *Analyzer) AnalyzeDataset(ctx context.Context, ds *ingest.Dataset) (*models.SiteScoreSet, error) {
	log := a.opts.logger.With("site", ds.Label)

	a.progress(ds.Label, StageNormalize)

	norm := normalizer.NewNormalizer(ds.Header, a.opts.aliases)
	records, summary := norm.NormalizeAll(ds.Rows)

	// Structural warnings from ingestion come before row-level ones.
	if len(ds.Warnings) > 0 {
		merged := make([]models.RowWarning, 0, len(ds.Warnings)+len(summary.Warnings))
		merged = append(merged, ds.Warnings...)
		merged = append(merged, summary.Warnings...)
		summary.Warnings = merged
	}

	log.Debug("rows normalized",
		"read", summary.RowsRead,
		"scored", summary.PagesScored,
		"skipped", summary.RowsSkipped,
		"warnings", len(summary.Warnings))

	a.progress(ds.Label, StageScore)

	pages, err := a.scorePages(ctx, records)
	if err != nil {
		return nil, err
	}

	a.progress(ds.Label, StageAggregate)

	set := a.aggregator.BuildSiteScoreSet(ds.Label, pages, summary)

	log.Info("site analyzed",
		"pages", len(pages),
		"composite", set.AggregateComposite,
		"content", set.AggregateContent,
		"technical", set.AggregateTechnical,
		"ux", set.AggregateUX)

	return set, nil
}

// scorePages evaluates records on a worker pool. Workers write to disjoint
// indices of the result slice, so page order survives concurrency.
func (a *Analyzer) scorePages(ctx context.Context, records []models.PageRecord) ([]models.PageScore, error) {
	if len(records) == 0 {
		return nil, nil
	}

	workers := a.opts.workers
	if workers > len(records) {
		workers = len(records)
	}

	type job struct {
		index  int
		record models.PageRecord
	}

	jobs := make(chan job)
	scores := make([]models.PageScore, len(records))

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range jobs {
				content := a.evaluator.Content(&j.record)
				technical := a.evaluator.Technical(&j.record)
				ux := a.evaluator.UX(&j.record)

				scores[j.index] = a.aggregator.ScorePage(j.record.URL, content, technical, ux)
			}
		}()
	}

feed:
	for i := range records {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{index: i, record: records[i]}:
		}
	}

	close(jobs)
	wg.Wait()

	// A cancellation wins even when the select above raced past it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return scores, nil
}

func (a *Analyzer) progress(site string, stage Stage) {
	if a.opts.progress != nil {
		a.opts.progress(site, stage)
	}
}
