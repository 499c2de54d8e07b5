package scoring

import (
	"fmt"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
	"github.com/boopin/bulk-seo-competitor-seo-scores/pkg/textutil"
)

// Content scores a page's on-page content signals: title, meta
// description, headings, body length and internal linking.
func (e *Evaluator) Content(rec *models.PageRecord) models.MetricScore {
	rules := e.rules.Content
	t := newTally()

	if rec.Title == nil {
		t.deduct(CodeTitleMissing, "page has no title tag", rules.MissingTitle)
	} else if length := textLength(rec.TitleLength, *rec.Title); length < rules.TitleMinLength || length > rules.TitleMaxLength {
		t.deduct(CodeTitleLength,
			fmt.Sprintf("title length %d outside %d-%d characters", length, rules.TitleMinLength, rules.TitleMaxLength),
			rules.TitleLengthOutOfRange)
	}

	if rec.MetaDescription == nil {
		t.deduct(CodeDescriptionMissing, "page has no meta description", rules.MissingDescription)
	} else if length := textLength(rec.DescriptionLength, *rec.MetaDescription); length < rules.DescriptionMinLength || length > rules.DescriptionMaxLength {
		t.deduct(CodeDescriptionLength,
			fmt.Sprintf("meta description length %d outside %d-%d characters", length, rules.DescriptionMinLength, rules.DescriptionMaxLength),
			rules.DescriptionLengthOutOfRange)
	}

	h1Count := rec.H1Count
	if h1Count == 0 && rec.H1 != nil {
		h1Count = 1
	}

	switch {
	case h1Count == 0:
		t.deduct(CodeH1Missing, "page has no H1 heading", rules.MissingH1)
	case h1Count > 1:
		t.deduct(CodeH1Multiple, fmt.Sprintf("page has %d H1 headings", h1Count), rules.MultipleH1)
	}

	if rec.WordCount == nil {
		t.deduct(CodeWordCountUnknown, "word count unavailable", rules.MissingWordCount)
	} else {
		if *rec.WordCount < rules.WordCountLow {
			t.deduct(CodeWordCountLow,
				fmt.Sprintf("thin content: %d words (below %d)", *rec.WordCount, rules.WordCountLow),
				rules.LowWordCount)
		}

		if *rec.WordCount < rules.WordCountCritical {
			t.deduct(CodeWordCountCritical,
				fmt.Sprintf("critically thin content: %d words (below %d)", *rec.WordCount, rules.WordCountCritical),
				rules.LowWordCount)
		}
	}

	if rec.InternalLinkCount == nil {
		t.deduct(CodeLinksUnknown, "internal link count unavailable", rules.MissingInternalLinks)
	} else if *rec.InternalLinkCount < rules.MinInternalLinks {
		t.deduct(CodeLinksFew,
			fmt.Sprintf("only %d internal links (below %d)", *rec.InternalLinkCount, rules.MinInternalLinks),
			rules.FewInternalLinks)
	}

	return t.result()
}

// textLength prefers the normalizer's recorded length and falls back to
// counting the text itself for records built without one.
func textLength(recorded *int, text string) int {
	if recorded != nil {
		return *recorded
	}

	return textutil.CharCount(text)
}
