// Package aggregate combines per-page sub-scores into composite page
// scores and rolls page scores up to site level.
package aggregate

import (
	"math"
	"sort"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/config"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
)

// Aggregator weights sub-scores into composites and computes site-level
// aggregates. Stateless after construction, safe to share.
type Aggregator struct {
	weights config.Weights
	median  bool
}

// NewAggregator validates the weights and rollup method. Weights that do
// not sum to 1.0 fail with InvalidWeightsError rather than being silently
// renormalized. An empty method means mean.
func NewAggregator(weights config.Weights, method string) (*Aggregator, error) {
	if math.Abs(weights.Sum()-1.0) > config.WeightSumEpsilon {
		return nil, &config.InvalidWeightsError{Sum: weights.Sum()}
	}

	if weights.Content < 0 || weights.Technical < 0 || weights.UX < 0 {
		return nil, &config.InvalidWeightsError{Sum: weights.Sum()}
	}

	switch method {
	case "", "mean", "median":
	default:
		return nil, config.ErrInvalidAggregation
	}

	return &Aggregator{weights: weights, median: method == "median"}, nil
}

// Composite combines the three sub-scores into the rounded weighted page
// score.
func (a *Aggregator) Composite(content, technical, ux float64) float64 {
	v := a.weights.Content*content + a.weights.Technical*technical + a.weights.UX*ux

	return clamp(math.Round(v))
}

// ScorePage assembles a PageScore from the three evaluator results.
func (a *Aggregator) ScorePage(url string, content, technical, ux models.MetricScore) models.PageScore {
	deductions := make([]models.Deduction, 0, len(content.Deductions)+len(technical.Deductions)+len(ux.Deductions))
	deductions = append(deductions, content.Deductions...)
	deductions = append(deductions, technical.Deductions...)
	deductions = append(deductions, ux.Deductions...)

	return models.PageScore{
		URL:            url,
		ContentScore:   content.Score,
		TechnicalScore: technical.Score,
		UXScore:        ux.Score,
		CompositeScore: a.Composite(content.Score, technical.Score, ux.Score),
		Deductions:     deductions,
	}
}

// BuildSiteScoreSet rolls page scores into a finished site score set. The
// page order is kept as given; an empty page list produces zero aggregates
// with NoData set instead of a division error.
func (a *Aggregator) BuildSiteScoreSet(label string, pages []models.PageScore, norm models.NormalizationSummary) *models.SiteScoreSet {
	set := &models.SiteScoreSet{
		SiteLabel:     label,
		Pages:         pages,
		Normalization: norm,
	}

	if len(pages) == 0 {
		set.NoData = true

		return set
	}

	set.AggregateContent = a.rollup(pages, models.MetricContent)
	set.AggregateTechnical = a.rollup(pages, models.MetricTechnical)
	set.AggregateUX = a.rollup(pages, models.MetricUX)
	set.AggregateComposite = a.rollup(pages, models.MetricComposite)
	set.TopIssues = topIssues(pages)

	return set
}

func (a *Aggregator) rollup(pages []models.PageScore, m models.Metric) float64 {
	values := make([]float64, len(pages))
	for i, p := range pages {
		values[i] = p.Score(m)
	}

	if a.median {
		return median(values)
	}

	return mean(values)
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}

	return sorted[mid]
}

// topIssues counts, per deduction code, how many pages were hit at least
// once, most frequent first. Ties resolve by code for determinism.
func topIssues(pages []models.PageScore) []models.IssueCount {
	counts := make(map[string]int)

	for _, p := range pages {
		seen := make(map[string]bool, len(p.Deductions))

		for _, d := range p.Deductions {
			if seen[d.Code] {
				continue
			}

			seen[d.Code] = true
			counts[d.Code]++
		}
	}

	issues := make([]models.IssueCount, 0, len(counts))
	for code, pages := range counts {
		issues = append(issues, models.IssueCount{Code: code, Pages: pages})
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Pages != issues[j].Pages {
			return issues[i].Pages > issues[j].Pages
		}

		return issues[i].Code < issues[j].Code
	})

	return issues
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 100 {
		return 100
	}

	return v
}
