// Package tabular reads delimited text sources and maps their header onto a
// fixed set of logical columns.
package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode"
)

// Delimiters recognized by DetectDelimiter, in tie-break order.
var Delimiters = []rune{',', ';', '\t', '|'}

// ReadRecords parses delimited text into records, skipping blank lines. The
// delimiter is detected from the header line. Records may have differing
// field counts; missing trailing fields read as empty.
func ReadRecords(text string) ([][]string, error) {
	text = strings.TrimPrefix(text, "\uFEFF")
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = DetectDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(rec) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func isBlank(rec []string) bool {
	return len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "")
}

// Columns maps logical column names to their index in a header record.
type Columns map[string]int

// ResolveColumns finds each required name in header (trimmed, case-insensitive
// exact match). The first matching header cell wins. Names that cannot be
// resolved are returned in required order.
func ResolveColumns(header []string, required ...string) (Columns, []string) {
	cols := make(Columns, len(required))
	var missing []string
	for _, name := range required {
		idx := -1
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			missing = append(missing, name)
			continue
		}
		cols[name] = idx
	}
	return cols, missing
}

// Field returns the record value of a resolved column, or "" when the record
// is shorter than the header.
func (c Columns) Field(record []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// DetectDelimiter picks the candidate delimiter occurring most often outside
// quotes on the first non-blank line. Ties go to the earlier candidate; a
// line without any candidate yields ','.
func DetectDelimiter(text string) rune {
	counts := make(map[rune]int, len(Delimiters))
	inQuotes := false
	started := false
	for _, c := range text {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case (c == '\n' || c == '\r') && !inQuotes:
			if started {
				return mostFrequent(counts)
			}
			clear(counts)
			continue
		case !inQuotes:
			counts[c]++
		}
		if !unicode.IsSpace(c) {
			started = true
		}
	}
	return mostFrequent(counts)
}

func mostFrequent(counts map[rune]int) rune {
	best, bestCount := Delimiters[0], 0
	for _, d := range Delimiters {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}
