package scoring

import (
	"fmt"
	"math"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
)

// UX scores a page's experience signals: mobile-friendliness and the Core
// Web Vitals. For each vital the worse band replaces the milder one, it
// never stacks; vitals absent from the export take a small flat deduction
// with a cap so a dataset without vitals data is not wiped out.
func (e *Evaluator) UX(rec *models.PageRecord) models.MetricScore {
	rules := e.rules.UX
	t := newTally()

	switch {
	case rec.MobileFriendly == nil:
		t.deduct(CodeMobileUnknown, "mobile-friendliness unknown", rules.UnknownMobileFriendly)
	case !*rec.MobileFriendly:
		t.deduct(CodeMobileUnfriendly, "page is not mobile-friendly", rules.NotMobileFriendly)
	}

	missing := 0

	switch {
	case rec.LCPSeconds == nil:
		missing++
	case *rec.LCPSeconds > rules.LCPPoorSeconds:
		t.deduct(CodeLCPPoor,
			fmt.Sprintf("LCP %.2fs above %.1fs", *rec.LCPSeconds, rules.LCPPoorSeconds),
			rules.VerySlowLCP)
	case *rec.LCPSeconds >= rules.LCPGoodSeconds:
		t.deduct(CodeLCPSlow,
			fmt.Sprintf("LCP %.2fs at or above %.1fs", *rec.LCPSeconds, rules.LCPGoodSeconds),
			rules.SlowLCP)
	}

	switch {
	case rec.CLS == nil:
		missing++
	case *rec.CLS > rules.CLSPoor:
		t.deduct(CodeCLSPoor,
			fmt.Sprintf("CLS %.3f above %.2f", *rec.CLS, rules.CLSPoor),
			rules.VeryHighCLS)
	case *rec.CLS > rules.CLSGood:
		t.deduct(CodeCLSHigh,
			fmt.Sprintf("CLS %.3f above %.2f", *rec.CLS, rules.CLSGood),
			rules.HighCLS)
	}

	switch {
	case rec.INPMs == nil:
		missing++
	case *rec.INPMs > rules.INPPoorMs:
		t.deduct(CodeINPPoor,
			fmt.Sprintf("INP %.0fms above %.0fms", *rec.INPMs, rules.INPPoorMs),
			rules.VerySlowINP)
	case *rec.INPMs > rules.INPGoodMs:
		t.deduct(CodeINPSlow,
			fmt.Sprintf("INP %.0fms above %.0fms", *rec.INPMs, rules.INPGoodMs),
			rules.SlowINP)
	}

	if missing > 0 {
		points := math.Min(float64(missing)*rules.MissingVital, rules.MissingVitalCap)
		t.deduct(CodeVitalsMissing,
			fmt.Sprintf("%d of 3 Core Web Vitals unavailable", missing),
			points)
	}

	return t.result()
}
