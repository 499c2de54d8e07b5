// Package ingest reads crawl export files into raw rows. It tolerates the
// variation real exports show: UTF-8 or UTF-16 byte order marks, comma,
// semicolon or tab delimiters, and rows with more or fewer cells than the
// header.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
)

// Ingest errors.
var (
	ErrEmptyDataset = errors.New("dataset has no header row")
)

// Dataset is one export file read into memory, not yet normalized.
type Dataset struct {
	// Label identifies the site in scores and reports. ReadFile derives
	// it from the file name.
	Label string

	// Header holds the trimmed column names in file order.
	Header []string

	// Rows maps column name to raw cell value, one map per data row.
	// Duplicate column names keep the first column's value.
	Rows []models.RawRow

	// Warnings records ragged rows and header anomalies. Row numbers
	// count the header as line 1.
	Warnings []models.RowWarning

	// Delimiter is the detected cell separator.
	Delimiter rune
}

// LabelFromPath derives a site label from a file path: the base name
// without its extension.
func LabelFromPath(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadFile opens and reads one export file. The site label is derived
// from the file name.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	return Read(f, LabelFromPath(path))
}

// Read reads one export from r. A byte order mark, when present, decides
// the decoding (UTF-8 and both UTF-16 orders are understood); without one
// the bytes are taken as UTF-8. The delimiter is detected from the header
// line. Ragged data rows are padded or truncated to the header width and
// reported as warnings, never as errors.
func Read(r io.Reader, label string) (*Dataset, error) {
	decoder := unicode.UTF8.NewDecoder()

	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(decoder)))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", label, err)
	}

	content := string(data)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, label)
	}

	delimiter := DetectDelimiter(firstLine(content))

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", label, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, label)
	}

	ds := &Dataset{Label: label, Delimiter: delimiter}

	ds.Header = make([]string, len(records[0]))
	seen := make(map[string]bool, len(records[0]))

	for i, cell := range records[0] {
		name := strings.TrimSpace(cell)
		ds.Header[i] = name

		if name == "" {
			ds.Warnings = append(ds.Warnings, models.RowWarning{
				Row:     1,
				Message: fmt.Sprintf("header column %d is empty and will be ignored", i+1),
			})

			continue
		}

		if seen[name] {
			ds.Warnings = append(ds.Warnings, models.RowWarning{
				Row:     1,
				Field:   name,
				Message: fmt.Sprintf("duplicate header column %q; the first occurrence wins", name),
			})
		}

		seen[name] = true
	}

	for i, record := range records[1:] {
		// The header is line 1, so data rows start at 2.
		rowNum := i + 2

		switch {
		case len(record) < len(ds.Header):
			ds.Warnings = append(ds.Warnings, models.RowWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d cells, header has %d; missing cells treated as empty", len(record), len(ds.Header)),
			})
		case len(record) > len(ds.Header):
			ds.Warnings = append(ds.Warnings, models.RowWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d cells, header has %d; extra cells dropped", len(record), len(ds.Header)),
			})
		}

		row := make(models.RawRow, len(ds.Header))

		for j, name := range ds.Header {
			if name == "" {
				continue
			}

			if _, dup := row[name]; dup {
				continue
			}

			if j < len(record) {
				row[name] = record[j]
			} else {
				row[name] = ""
			}
		}

		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

// DetectDelimiter picks the cell separator for a header line: whichever
// of comma, semicolon and tab occurs most often outside quotes, with
// comma winning ties.
func DetectDelimiter(header string) rune {
	var commas, semicolons, tabs int

	inQuotes := false

	for _, r := range header {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case inQuotes:
		case r == ',':
			commas++
		case r == ';':
			semicolons++
		case r == '\t':
			tabs++
		}
	}

	best, count := ',', commas

	if semicolons > count {
		best, count = ';', semicolons
	}

	if tabs > count {
		best = '\t'
	}

	return best
}

func firstLine(content string) string {
	line, _, _ := strings.Cut(content, "\n")

	return strings.TrimSuffix(line, "\r")
}
