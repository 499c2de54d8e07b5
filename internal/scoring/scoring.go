// Package scoring implements the per-page metric evaluators. Each
// evaluator is a pure function from a page record to a bounded score:
// start at 100, subtract the configured amount for every rule the page
// trips, floor at 0. Every subtraction is recorded as a deduction with a
// stable code, so no score change is ever unexplained.
package scoring

import (
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/config"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
)

// Deduction codes. Reports and the recommendations engine key on these,
// so they are part of the package's contract.
const (
	CodeTitleMissing       = "title.missing"
	CodeTitleLength        = "title.length"
	CodeDescriptionMissing = "description.missing"
	CodeDescriptionLength  = "description.length"
	CodeH1Missing          = "h1.missing"
	CodeH1Multiple         = "h1.multiple"
	CodeWordCountLow       = "wordcount.low"
	CodeWordCountCritical  = "wordcount.critical"
	CodeWordCountUnknown   = "wordcount.unknown"
	CodeLinksFew           = "links.few"
	CodeLinksUnknown       = "links.unknown"

	CodeStatusError       = "status.error"
	CodeStatusRedirect    = "status.redirect"
	CodeStatusUnexpected  = "status.unexpected"
	CodeStatusUnknown     = "status.unknown"
	CodeNotIndexable      = "indexability.blocked"
	CodeResponseSlow      = "response.slow"
	CodeResponseUnknown   = "response.unknown"
	CodeCanonicalMissing  = "canonical.missing"
	CodeCanonicalMismatch = "canonical.mismatch"

	CodeMobileUnfriendly = "mobile.unfriendly"
	CodeMobileUnknown    = "mobile.unknown"
	CodeLCPSlow          = "lcp.slow"
	CodeLCPPoor          = "lcp.poor"
	CodeCLSHigh          = "cls.high"
	CodeCLSPoor          = "cls.poor"
	CodeINPSlow          = "inp.slow"
	CodeINPPoor          = "inp.poor"
	CodeVitalsMissing    = "vitals.missing"
)

// Evaluator scores pages against one set of rules. It holds the rules by
// value and keeps no other state, so a single instance is safe to share
// across goroutines.
type Evaluator struct {
	rules config.ScoringConfig
}

// NewEvaluator creates an evaluator with the given rules.
func NewEvaluator(rules config.ScoringConfig) *Evaluator {
	return &Evaluator{rules: rules}
}

// tally accumulates deductions from a 100-point start.
type tally struct {
	score      float64
	deductions []models.Deduction
}

func newTally() *tally {
	return &tally{score: 100}
}

// deduct records one rule hit. Rules configured to 0 points are disabled
// and leave no trace.
func (t *tally) deduct(code, reason string, points float64) {
	if points <= 0 {
		return
	}

	t.deductions = append(t.deductions, models.Deduction{Code: code, Reason: reason, Points: points})
	t.score -= points
}

// result clamps the running score into [0,100].
func (t *tally) result() models.MetricScore {
	score := t.score
	if score < 0 {
		score = 0
	}

	if score > 100 {
		score = 100
	}

	return models.MetricScore{Score: score, Deductions: t.deductions}
}
