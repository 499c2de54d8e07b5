package report

import (
	"encoding/json"
	"fmt"
)

// renderJSON produces the full report structure, indented for humans and
// diff tools alike.
func (r *Report) renderJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	return string(data) + "\n", nil
}
