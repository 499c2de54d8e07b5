package scoring

import (
	"fmt"
	"strings"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
)

// Technical scores a page's crawlability signals: status code,
// indexability, response time and canonicalization.
func (e *Evaluator) Technical(rec *models.PageRecord) models.MetricScore {
	rules := e.rules.Technical
	t := newTally()

	switch {
	case rec.StatusCode == nil:
		t.deduct(CodeStatusUnknown, "status code unavailable", rules.MissingStatus)
	case *rec.StatusCode >= 400:
		t.deduct(CodeStatusError, fmt.Sprintf("error status %d", *rec.StatusCode), rules.ErrorStatus)
	case *rec.StatusCode >= 300:
		t.deduct(CodeStatusRedirect, fmt.Sprintf("redirect status %d", *rec.StatusCode), rules.RedirectStatus)
	case *rec.StatusCode < 200:
		t.deduct(CodeStatusUnexpected, fmt.Sprintf("unexpected status %d", *rec.StatusCode), rules.RedirectStatus)
	}

	if !rec.Indexable {
		t.deduct(CodeNotIndexable, "page is not indexable", rules.NotIndexable)
	}

	if rec.ResponseTimeMs == nil {
		t.deduct(CodeResponseUnknown, "response time unavailable", rules.MissingResponseTime)
	} else {
		for _, tier := range rules.ResponseTimeTiersMs {
			if *rec.ResponseTimeMs > tier {
				t.deduct(CodeResponseSlow,
					fmt.Sprintf("response time %.0fms above %.0fms", *rec.ResponseTimeMs, tier),
					rules.SlowResponse)
			}
		}
	}

	switch {
	case rec.CanonicalURL == nil:
		t.deduct(CodeCanonicalMissing, "no canonical link element", rules.BadCanonical)
	case !canonicalMatches(rec.URL, *rec.CanonicalURL):
		t.deduct(CodeCanonicalMismatch,
			fmt.Sprintf("canonical points to %s", *rec.CanonicalURL),
			rules.BadCanonical)
	}

	return t.result()
}

// canonicalMatches reports whether the canonical link self-references the
// page. A single trailing slash difference is not a mismatch.
func canonicalMatches(pageURL, canonical string) bool {
	if pageURL == canonical {
		return true
	}

	return strings.TrimSuffix(pageURL, "/") == strings.TrimSuffix(canonical, "/")
}
