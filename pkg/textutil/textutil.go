// Package textutil provides text measurement helpers for SEO length checks.
package textutil

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// CharCount returns the number of user-perceived characters (grapheme
// clusters) in s. Search engines truncate titles and descriptions by what
// a reader sees, not by bytes, so an emoji with modifiers counts as one.
func CharCount(s string) int {
	count := 0

	tokens := graphemes.FromString(s)
	for tokens.Next() {
		count++
	}

	return count
}

// CollapseWhitespace trims s and replaces internal whitespace runs with a
// single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens s to at most maxChars user-perceived characters,
// appending "..." when anything was cut.
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}

	if CharCount(s) <= maxChars {
		return s
	}

	var b strings.Builder

	count := 0

	tokens := graphemes.FromString(s)
	for tokens.Next() && count < maxChars {
		b.WriteString(tokens.Value())
		count++
	}

	return b.String() + "..."
}
