// Package advisor turns a site's deduction patterns into prioritized,
// human-actionable recommendations and a short executive summary.
package advisor

import (
	"sort"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
)

// Impact describes how much fixing an issue is expected to move results.
type Impact string

// Impact levels, strongest first.
const (
	ImpactCritical      Impact = "critical"
	ImpactHigh          Impact = "high"
	ImpactMedium        Impact = "medium"
	ImpactLow           Impact = "low"
	ImpactInformational Impact = "informational"
)

// Weight maps an impact level onto 5..1.
func (i Impact) Weight() int {
	switch i {
	case ImpactCritical:
		return 5
	case ImpactHigh:
		return 4
	case ImpactMedium:
		return 3
	case ImpactLow:
		return 2
	default:
		return 1
	}
}

// Effort describes how expensive a fix is.
type Effort string

// Effort levels, cheapest first.
const (
	EffortQuickWin Effort = "quick-win"
	EffortEasy     Effort = "easy"
	EffortModerate Effort = "moderate"
	EffortComplex  Effort = "complex"
	EffortMajor    Effort = "major"
)

// Cost maps an effort level onto 1..5.
func (e Effort) Cost() int {
	switch e {
	case EffortQuickWin:
		return 1
	case EffortEasy:
		return 2
	case EffortModerate:
		return 3
	case EffortComplex:
		return 4
	default:
		return 5
	}
}

// Rule ties a set of deduction codes to a recommendation. It fires when
// the fraction of pages carrying any of the codes reaches Threshold.
type Rule struct {
	Codes          []string
	Threshold      float64
	Category       string
	Issue          string
	Recommendation string
	Impact         Impact
	Effort         Effort
	ExpectedImpact string
}

// Recommendation is one fired rule with its computed priority and reach.
type Recommendation struct {
	Category       string  `json:"category"`
	Issue          string  `json:"issue"`
	Recommendation string  `json:"recommendation"`
	Impact         Impact  `json:"impact"`
	Effort         Effort  `json:"effort"`
	ExpectedImpact string  `json:"expectedImpact"`
	Priority       float64 `json:"priority"`
	PriorityLabel  string  `json:"priorityLabel"`
	PagesAffected  int     `json:"pagesAffected"`
	Rate           float64 `json:"rate"`
}

// Summary is the executive summary for one site.
type Summary struct {
	SiteLabel            string `json:"siteLabel"`
	Health               string `json:"health"`
	CriticalCount        int    `json:"criticalCount"`
	HighCount            int    `json:"highCount"`
	QuickWins            int    `json:"quickWins"`
	EstimatedImprovement int    `json:"estimatedImprovement"`
	TopRecommendation    string `json:"topRecommendation,omitempty"`
}

// Priority computes impact*2/effort, the ranking key for
// recommendations: high-impact cheap fixes first.
func Priority(impact Impact, effort Effort) float64 {
	return float64(impact.Weight()) * 2 / float64(effort.Cost())
}

// PriorityLabel buckets a priority value for display.
func PriorityLabel(priority float64) string {
	switch {
	case priority >= 4:
		return "critical"
	case priority >= 3:
		return "high"
	case priority >= 2:
		return "medium"
	default:
		return "low"
	}
}

// Advise applies the default rule table to a site and returns the fired
// recommendations, highest priority first (ties by issue name). A site
// without data gets none.
func Advise(set *models.SiteScoreSet) []Recommendation {
	return AdviseWith(set, DefaultRules())
}

// AdviseWith applies a custom rule table.
func AdviseWith(set *models.SiteScoreSet, rules []Rule) []Recommendation {
	if set.NoData || len(set.Pages) == 0 {
		return nil
	}

	var recs []Recommendation

	for _, rule := range rules {
		affected := pagesWithAny(set.Pages, rule.Codes)
		rate := float64(affected) / float64(len(set.Pages))

		if rate < rule.Threshold {
			continue
		}

		priority := Priority(rule.Impact, rule.Effort)

		recs = append(recs, Recommendation{
			Category:       rule.Category,
			Issue:          rule.Issue,
			Recommendation: rule.Recommendation,
			Impact:         rule.Impact,
			Effort:         rule.Effort,
			ExpectedImpact: rule.ExpectedImpact,
			Priority:       priority,
			PriorityLabel:  PriorityLabel(priority),
			PagesAffected:  affected,
			Rate:           rate,
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority > recs[j].Priority
		}

		return recs[i].Issue < recs[j].Issue
	})

	return recs
}

// Summarize condenses a site's score and recommendations into the
// executive summary.
func Summarize(set *models.SiteScoreSet, recs []Recommendation) Summary {
	s := Summary{SiteLabel: set.SiteLabel}

	if set.NoData {
		s.Health = "No Data"

		return s
	}

	switch {
	case set.AggregateComposite >= 70:
		s.Health = "Good"
	case set.AggregateComposite >= 50:
		s.Health = "Needs Improvement"
	default:
		s.Health = "Poor"
	}

	for _, rec := range recs {
		switch rec.PriorityLabel {
		case "critical":
			s.CriticalCount++
		case "high":
			s.HighCount++
		}

		if rec.Effort == EffortQuickWin || rec.Effort == EffortEasy {
			s.QuickWins++
		}
	}

	s.EstimatedImprovement = 3 * len(recs)
	if s.EstimatedImprovement > 30 {
		s.EstimatedImprovement = 30
	}

	if len(recs) > 0 {
		s.TopRecommendation = recs[0].Issue
	}

	return s
}

// pagesWithAny counts pages carrying at least one of the codes.
func pagesWithAny(pages []models.PageScore, codes []string) int {
	want := make(map[string]bool, len(codes))
	for _, code := range codes {
		want[code] = true
	}

	count := 0

	for _, p := range pages {
		for _, d := range p.Deductions {
			if want[d.Code] {
				count++

				break
			}
		}
	}

	return count
}
