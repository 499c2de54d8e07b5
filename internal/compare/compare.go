// Package compare ranks finished site score sets against a baseline. A
// comparison is an all-at-once batch over immutable inputs; the result is
// never updated in place.
package compare

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
)

// ErrDuplicateSiteLabel is returned when two inputs share a label; every
// ranking and delta is keyed by label, so duplicates would be ambiguous.
var ErrDuplicateSiteLabel = errors.New("duplicate site label")

// BaselineNotFoundError reports a comparison against a label that is not
// among the inputs. Known carries the labels that were, so the caller can
// re-specify.
type BaselineNotFoundError struct {
	Label string
	Known []string
}

func (e *BaselineNotFoundError) Error() string {
	return fmt.Sprintf("baseline site %q not found (known sites: %s)", e.Label, strings.Join(e.Known, ", "))
}

// Compare ranks the given sites on every metric and computes signed deltas
// against the baseline (positive = better than baseline). Ranking is a
// total order: descending by aggregate, sites without data below all sites
// with data, remaining ties broken by label ascending. Deltas involving a
// side without data are flagged undefined instead of being computed from
// placeholder zeros.
func Compare(sets []*models.SiteScoreSet, baselineLabel string) (*models.ComparisonResult, error) {
	var baseline *models.SiteScoreSet

	known := make([]string, 0, len(sets))
	comparisons := make(map[string]*models.SiteComparison, len(sets))

	for _, s := range sets {
		if _, exists := comparisons[s.SiteLabel]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSiteLabel, s.SiteLabel)
		}

		known = append(known, s.SiteLabel)

		if s.SiteLabel == baselineLabel {
			baseline = s
		}

		comparisons[s.SiteLabel] = &models.SiteComparison{
			SiteLabel:  s.SiteLabel,
			IsBaseline: s.SiteLabel == baselineLabel,
			NoData:     s.NoData,
			Standings:  make(map[models.Metric]models.MetricStanding, len(models.Metrics)),
		}
	}

	if baseline == nil {
		return nil, &BaselineNotFoundError{Label: baselineLabel, Known: known}
	}

	result := &models.ComparisonResult{
		BaselineLabel: baselineLabel,
		GeneratedAt:   time.Now().UTC(),
		Rankings:      make(map[models.Metric][]string, len(models.Metrics)),
	}

	for _, metric := range models.Metrics {
		ranked := rankByMetric(sets, metric)
		labels := make([]string, len(ranked))

		for i, s := range ranked {
			labels[i] = s.SiteLabel

			standing := models.MetricStanding{
				Rank:      i + 1,
				Aggregate: s.Aggregate(metric),
			}

			if !s.NoData && !baseline.NoData {
				standing.Delta = s.Aggregate(metric) - baseline.Aggregate(metric)
				standing.DeltaDefined = true
			}

			comparisons[s.SiteLabel].Standings[metric] = standing
		}

		result.Rankings[metric] = labels
	}

	// The overall order is the composite order.
	overall := result.Rankings[models.MetricComposite]
	result.Sites = make([]models.SiteComparison, 0, len(overall))

	for i, label := range overall {
		comparisons[label].OverallRank = i + 1
		result.Sites = append(result.Sites, *comparisons[label])
	}

	return result, nil
}

func rankByMetric(sets []*models.SiteScoreSet, m models.Metric) []*models.SiteScoreSet {
	ranked := make([]*models.SiteScoreSet, len(sets))
	copy(ranked, sets)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if a.NoData != b.NoData {
			return !a.NoData
		}

		if a.Aggregate(m) != b.Aggregate(m) {
			return a.Aggregate(m) > b.Aggregate(m)
		}

		return a.SiteLabel < b.SiteLabel
	})

	return ranked
}
