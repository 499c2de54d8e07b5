package analyzer

import (
	"runtime"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/logger"
)

// Stage names a pipeline phase, reported through WithProgress.
type Stage string

// Pipeline stages in execution order.
const (
	StageIngest    Stage = "ingest"
	StageNormalize Stage = "normalize"
	StageScore     Stage = "score"
	StageAggregate Stage = "aggregate"
)

// Progress receives a callback when a site enters a pipeline stage.
// Calls may arrive from concurrent goroutines, one site each.
type Progress func(site string, stage Stage)

// Option configures an Analyzer.
type Option func(opts *options)

type options struct {
	logger   *logger.Logger
	workers  int
	aliases  map[string][]string
	progress Progress
}

var defaultOptions = options{
	logger:  logger.NewNop(),
	workers: runtime.NumCPU(),
}

// WithLogger routes pipeline logging to l.
func WithLogger(l *logger.Logger) Option {
	return func(opts *options) {
		opts.logger = l
	}
}

// WithWorkers bounds both dataset-level and page-level concurrency.
// Values below one keep the default.
func WithWorkers(n int) Option {
	return func(opts *options) {
		if n >= 1 {
			opts.workers = n
		}
	}
}

// WithAliases prepends caller column aliases to the built-in table; they
// take precedence over it. Keys are canonical field names.
func WithAliases(aliases map[string][]string) Option {
	return func(opts *options) {
		opts.aliases = aliases
	}
}

// WithProgress registers a stage callback.
func WithProgress(p Progress) Option {
	return func(opts *options) {
		opts.progress = p
	}
}
