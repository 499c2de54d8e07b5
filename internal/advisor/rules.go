package advisor

import "github.com/boopin/bulk-seo-competitor-seo-scores/internal/scoring"

// Rule categories, matching the three scoring dimensions.
const (
	CategoryContent   = "Content"
	CategoryTechnical = "Technical"
	CategoryUX        = "User Experience"
)

// DefaultRules returns the built-in rule table. Thresholds are fractions
// of the site's scored pages; error-class problems fire at lower rates
// than polish-class ones.
func DefaultRules() []Rule {
	return []Rule{
		{
			Codes:          []string{scoring.CodeTitleMissing},
			Threshold:      0.10,
			Category:       CategoryContent,
			Issue:          "Missing page titles",
			Recommendation: "Write a unique, descriptive title tag for every page that lacks one.",
			Impact:         ImpactCritical,
			Effort:         EffortEasy,
			ExpectedImpact: "Better rankings and higher click-through from search results.",
		},
		{
			Codes:          []string{scoring.CodeTitleLength},
			Threshold:      0.30,
			Category:       CategoryContent,
			Issue:          "Title lengths outside the optimal band",
			Recommendation: "Rewrite titles to fit the recommended length so they display fully in results.",
			Impact:         ImpactMedium,
			Effort:         EffortEasy,
			ExpectedImpact: "Fewer truncated or padded titles in search listings.",
		},
		{
			Codes:          []string{scoring.CodeDescriptionMissing},
			Threshold:      0.20,
			Category:       CategoryContent,
			Issue:          "Missing meta descriptions",
			Recommendation: "Add a compelling meta description to every page that lacks one.",
			Impact:         ImpactHigh,
			Effort:         EffortEasy,
			ExpectedImpact: "Higher click-through rates on search snippets.",
		},
		{
			Codes:          []string{scoring.CodeDescriptionLength},
			Threshold:      0.30,
			Category:       CategoryContent,
			Issue:          "Meta description lengths outside the optimal band",
			Recommendation: "Rewrite descriptions to fit the recommended length.",
			Impact:         ImpactLow,
			Effort:         EffortEasy,
			ExpectedImpact: "Snippets that read well instead of being cut off.",
		},
		{
			Codes:          []string{scoring.CodeH1Missing, scoring.CodeH1Multiple},
			Threshold:      0.20,
			Category:       CategoryContent,
			Issue:          "Heading structure problems",
			Recommendation: "Give every page exactly one H1 that states its topic.",
			Impact:         ImpactMedium,
			Effort:         EffortModerate,
			ExpectedImpact: "Clearer page structure for crawlers and assistive tech.",
		},
		{
			Codes:          []string{scoring.CodeWordCountLow, scoring.CodeWordCountCritical},
			Threshold:      0.25,
			Category:       CategoryContent,
			Issue:          "Thin content",
			Recommendation: "Expand thin pages with substantive copy, or consolidate them into stronger ones.",
			Impact:         ImpactHigh,
			Effort:         EffortComplex,
			ExpectedImpact: "More pages able to rank for their target queries.",
		},
		{
			Codes:          []string{scoring.CodeLinksFew},
			Threshold:      0.30,
			Category:       CategoryContent,
			Issue:          "Weak internal linking",
			Recommendation: "Link to under-linked pages from related content and navigation.",
			Impact:         ImpactMedium,
			Effort:         EffortModerate,
			ExpectedImpact: "Better crawl discovery and authority flow to deep pages.",
		},
		{
			Codes:          []string{scoring.CodeStatusError},
			Threshold:      0.05,
			Category:       CategoryTechnical,
			Issue:          "Pages returning error status codes",
			Recommendation: "Fix or redirect URLs that return 4xx or 5xx responses.",
			Impact:         ImpactCritical,
			Effort:         EffortModerate,
			ExpectedImpact: "Recovered rankings and link equity from broken URLs.",
		},
		{
			Codes:          []string{scoring.CodeStatusRedirect},
			Threshold:      0.20,
			Category:       CategoryTechnical,
			Issue:          "Crawled URLs resolving through redirects",
			Recommendation: "Point internal links at final destinations instead of redirecting URLs.",
			Impact:         ImpactMedium,
			Effort:         EffortEasy,
			ExpectedImpact: "Faster crawling and no equity lost across redirect hops.",
		},
		{
			Codes:          []string{scoring.CodeNotIndexable},
			Threshold:      0.10,
			Category:       CategoryTechnical,
			Issue:          "Pages excluded from the index",
			Recommendation: "Review robots directives and canonical tags on pages that should be indexable.",
			Impact:         ImpactCritical,
			Effort:         EffortModerate,
			ExpectedImpact: "Previously hidden pages become eligible to rank.",
		},
		{
			Codes:          []string{scoring.CodeResponseSlow},
			Threshold:      0.25,
			Category:       CategoryTechnical,
			Issue:          "Slow server responses",
			Recommendation: "Profile slow endpoints and add caching or faster rendering paths.",
			Impact:         ImpactHigh,
			Effort:         EffortComplex,
			ExpectedImpact: "Deeper crawling per visit and better user experience.",
		},
		{
			Codes:          []string{scoring.CodeCanonicalMissing, scoring.CodeCanonicalMismatch},
			Threshold:      0.20,
			Category:       CategoryTechnical,
			Issue:          "Canonicalization problems",
			Recommendation: "Add self-referencing canonical tags and fix ones pointing at other URLs.",
			Impact:         ImpactMedium,
			Effort:         EffortEasy,
			ExpectedImpact: "Consolidated ranking signals on the canonical URL.",
		},
		{
			Codes:          []string{scoring.CodeMobileUnfriendly},
			Threshold:      0.10,
			Category:       CategoryUX,
			Issue:          "Pages not mobile-friendly",
			Recommendation: "Make failing templates responsive; mobile rendering drives indexing.",
			Impact:         ImpactCritical,
			Effort:         EffortMajor,
			ExpectedImpact: "Eligibility for mobile-first indexing across the site.",
		},
		{
			Codes:          []string{scoring.CodeLCPSlow, scoring.CodeLCPPoor},
			Threshold:      0.25,
			Category:       CategoryUX,
			Issue:          "Slow largest contentful paint",
			Recommendation: "Optimize hero media, preload critical assets, and cut render-blocking scripts.",
			Impact:         ImpactHigh,
			Effort:         EffortComplex,
			ExpectedImpact: "Passing the loading component of Core Web Vitals.",
		},
		{
			Codes:          []string{scoring.CodeCLSHigh, scoring.CodeCLSPoor},
			Threshold:      0.25,
			Category:       CategoryUX,
			Issue:          "Layout instability",
			Recommendation: "Reserve space for images, ads, and embeds so content does not shift while loading.",
			Impact:         ImpactMedium,
			Effort:         EffortModerate,
			ExpectedImpact: "Stable pages and a passing layout-shift vital.",
		},
		{
			Codes:          []string{scoring.CodeINPSlow, scoring.CodeINPPoor},
			Threshold:      0.25,
			Category:       CategoryUX,
			Issue:          "Slow interaction response",
			Recommendation: "Break up long main-thread tasks and defer non-critical JavaScript.",
			Impact:         ImpactMedium,
			Effort:         EffortComplex,
			ExpectedImpact: "Pages that respond promptly to taps and clicks.",
		},
	}
}
