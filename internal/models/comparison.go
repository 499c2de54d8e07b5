package models

import "time"

// MetricStanding is one site's position on one metric within a comparison.
// Delta is signed (positive = better than the baseline) and only meaningful
// while DeltaDefined is true: a site or baseline without data gets ranked
// but never gets a delta computed from its placeholder zero.
type MetricStanding struct {
	Rank         int     `json:"rank"`
	Aggregate    float64 `json:"aggregate"`
	Delta        float64 `json:"delta"`
	DeltaDefined bool    `json:"deltaDefined"`
}

// SiteComparison collects one site's standings across all metrics.
type SiteComparison struct {
	SiteLabel   string                    `json:"siteLabel"`
	IsBaseline  bool                      `json:"isBaseline"`
	NoData      bool                      `json:"noData"`
	Standings   map[Metric]MetricStanding `json:"standings"`
	OverallRank int                       `json:"overallRank"`
}

// ComparisonResult is the terminal artifact of a comparison run: per-metric
// rankings over all sites plus per-site standings against the baseline.
// It is built once from finalized SiteScoreSets and not mutated afterwards.
type ComparisonResult struct {
	BaselineLabel string    `json:"baselineLabel"`
	GeneratedAt   time.Time `json:"generatedAt"`

	// Sites is ordered by overall rank. Rankings maps each metric to
	// site labels in rank order (best first).
	Sites    []SiteComparison    `json:"sites"`
	Rankings map[Metric][]string `json:"rankings"`
}

// Site returns the comparison entry for the given label, or nil.
func (r *ComparisonResult) Site(label string) *SiteComparison {
	for i := range r.Sites {
		if r.Sites[i].SiteLabel == label {
			return &r.Sites[i]
		}
	}
	return nil
}
