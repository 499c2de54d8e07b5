package models

// Metric identifies one scoring dimension.
type Metric string

// Scoring dimensions. Composite is the weighted combination of the other
// three and drives the overall ranking.
const (
	MetricContent   Metric = "content"
	MetricTechnical Metric = "technical"
	MetricUX        Metric = "ux"
	MetricComposite Metric = "composite"
)

// Metrics lists all dimensions in report order.
var Metrics = []Metric{MetricContent, MetricTechnical, MetricUX, MetricComposite}

// Deduction is one rule hit while evaluating a page. Code is a stable
// machine identifier (e.g. "title.missing"); Reason is the human wording
// that makes the score auditable.
type Deduction struct {
	Code   string  `json:"code"`
	Reason string  `json:"reason"`
	Points float64 `json:"points"`
}

// MetricScore is the outcome of one evaluator for one page.
type MetricScore struct {
	Score      float64     `json:"score"`
	Deductions []Deduction `json:"deductions,omitempty"`
}

// PageScore holds the three sub-scores and the weighted composite for one
// page. All values lie in [0,100]. Deductions carry every rule hit across
// the three evaluators.
type PageScore struct {
	URL            string      `json:"url"`
	ContentScore   float64     `json:"contentScore"`
	TechnicalScore float64     `json:"technicalScore"`
	UXScore        float64     `json:"uxScore"`
	CompositeScore float64     `json:"compositeScore"`
	Deductions     []Deduction `json:"deductions,omitempty"`
}

// Score returns the page's value for the given metric.
func (p PageScore) Score(m Metric) float64 {
	switch m {
	case MetricContent:
		return p.ContentScore
	case MetricTechnical:
		return p.TechnicalScore
	case MetricUX:
		return p.UXScore
	default:
		return p.CompositeScore
	}
}

// IssueCount is one deduction code with the number of pages it hit.
type IssueCount struct {
	Code  string `json:"code"`
	Pages int    `json:"pages"`
}

// SiteScoreSet is the finished analysis of one dataset (one site). Pages
// keeps the input row order; aggregates are arithmetic means over pages
// (or medians when so configured). A set with zero pages has all
// aggregates at 0 and NoData set instead of failing.
type SiteScoreSet struct {
	SiteLabel string      `json:"siteLabel"`
	Pages     []PageScore `json:"pages"`

	AggregateContent   float64 `json:"aggregateContent"`
	AggregateTechnical float64 `json:"aggregateTechnical"`
	AggregateUX        float64 `json:"aggregateUx"`
	AggregateComposite float64 `json:"aggregateComposite"`
	NoData             bool    `json:"noData"`

	// TopIssues lists deduction codes by how many pages they hit,
	// most frequent first.
	TopIssues []IssueCount `json:"topIssues,omitempty"`

	Normalization NormalizationSummary `json:"normalization"`
}

// Aggregate returns the site-level value for the given metric.
func (s *SiteScoreSet) Aggregate(m Metric) float64 {
	switch m {
	case MetricContent:
		return s.AggregateContent
	case MetricTechnical:
		return s.AggregateTechnical
	case MetricUX:
		return s.AggregateUX
	default:
		return s.AggregateComposite
	}
}
