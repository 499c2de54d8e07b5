package normalizer

import (
	"math"
	"strconv"
	"strings"
)

// indexability classification of a raw cell value.
const (
	indexabilityUnknown = iota
	indexabilityYes
	indexabilityNo
)

// Token sets for boolean-ish columns. Matching is case-insensitive on the
// trimmed cell value.
var (
	truthyTokens = map[string]bool{
		"true": true, "yes": true, "y": true, "1": true,
	}
	falsyTokens = map[string]bool{
		"false": true, "no": true, "n": true, "0": true,
	}
	indexableTokens = map[string]bool{
		"indexable": true,
	}
	nonIndexableTokens = map[string]bool{
		"non-indexable": true, "nonindexable": true, "not indexable": true, "noindex": true,
	}
)

// parseIntValue parses an integer cell. Exports written through dataframe
// tooling often render integers as "350.0", so an integral float is
// accepted and rounded.
func parseIntValue(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return int(math.Round(f)), nil
}

// parseFloatValue parses a numeric cell.
func parseFloatValue(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// parseBoolToken maps a cell onto true/false. recognized is false for
// values outside both token sets.
func parseBoolToken(s string) (value, recognized bool) {
	token := strings.ToLower(strings.TrimSpace(s))

	if truthyTokens[token] {
		return true, true
	}

	if falsyTokens[token] {
		return false, true
	}

	return false, false
}

// classifyIndexability maps an indexability cell onto yes/no/unknown. The
// boolean token sets are accepted alongside the crawler's own wording.
func classifyIndexability(s string) int {
	token := strings.ToLower(strings.TrimSpace(s))

	if indexableTokens[token] || truthyTokens[token] {
		return indexabilityYes
	}

	if nonIndexableTokens[token] || falsyTokens[token] {
		return indexabilityNo
	}

	return indexabilityUnknown
}
