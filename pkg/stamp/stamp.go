// Package stamp provides provenance stamps for generated reports. A stamp
// is an HTML comment block carrying the generating tool, a timestamp and a
// SHA-256 hash of the report body, so a report can later be checked for
// manual edits.
package stamp

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// TagStart is the start of the stamp block.
	TagStart = "<!-- REPORT_STAMP_START"
	// TagEnd is the end of the stamp block.
	TagEnd = "REPORT_STAMP_END -->"
)

// Stamp verification errors.
var (
	ErrNoStampBlock = errors.New("no stamp block found")
	ErrNoHashFound  = errors.New("no hash found in stamp")
	ErrHashMismatch = errors.New("hash mismatch")
)

// Stamp carries the provenance of a generated report.
type Stamp struct {
	GeneratedAt time.Time
	Tool        string
	Hash        string
}

// stampRegex matches the entire stamp block including tags.
var stampRegex = regexp.MustCompile(`(?s)<!--\s*REPORT_STAMP_START\s*\n(.*?)\n\s*REPORT_STAMP_END\s*-->`)

// Extract removes the stamp block from content and returns both the stamp
// and the cleaned content. The cleaned content is what should be hashed.
func Extract(content string) (*Stamp, string) {
	match := stampRegex.FindStringSubmatch(content)
	cleanContent := stampRegex.ReplaceAllString(content, "")
	// Trim trailing newlines from cleaned content for consistent hashing
	cleanContent = strings.TrimRight(cleanContent, "\n")

	if len(match) < 2 {
		return nil, cleanContent
	}

	s := &Stamp{}

	lines := strings.Split(match[1], "\n")
	for _, line := range lines {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		switch key {
		case "TOOL":
			s.Tool = val
		case "GENERATED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				s.GeneratedAt = t
			}
		case "HASH":
			s.Hash = val
		}
	}

	return s, cleanContent
}

// CalculateHash computes the SHA-256 hash of the content (excluding any
// stamp block).
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign appends or updates the stamp block with a fresh hash and timestamp.
func Sign(content, tool string) string {
	_, clean := Extract(content)

	hash := CalculateHash(clean)

	now := time.Now().UTC().Format(time.RFC3339)

	newBlock := fmt.Sprintf("\n\n%s\nTOOL: %s\nGENERATED_AT: %s\nHASH: %s\n%s",
		TagStart, tool, now, hash, TagEnd)

	return clean + newBlock
}

// Verify checks if the content matches the hash in its stamp.
func Verify(content string) (bool, error) {
	s, clean := Extract(content)
	if s == nil {
		return false, ErrNoStampBlock
	}

	if s.Hash == "" {
		return false, ErrNoHashFound
	}

	calculated := CalculateHash(clean)
	if calculated != s.Hash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, s.Hash, calculated)
	}

	return true, nil
}
