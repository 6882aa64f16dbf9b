// Package areas loads the optional work-area reference table and resolves
// worklog rows against it.
package areas

import (
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/tabular"
	"github.com/alexanderramin/timesheet/internal/worklog"
)

// Required work-area header columns.
const (
	ColKey   = "Key"
	ColName  = "Name"
	ColAlias = "Alias"
)

// Entry is a work area together with its reference code.
type Entry struct {
	Code string
	domain.WorkArea
}

// Index maps area codes to work areas, preserving first-insertion order.
type Index struct {
	order   []string
	entries map[string]domain.WorkArea
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]domain.WorkArea)}
}

// Parse reads the work-area CSV. Records with an empty Key, Name or Alias are
// skipped; a missing header column or an empty source is a *domain.FormatError.
func Parse(text string) (*Index, error) {
	records, err := tabular.ReadRecords(text)
	if err != nil {
		return nil, &domain.FormatError{Source: "work areas", Reason: "CSV parse error", Err: err}
	}
	if len(records) < 2 {
		return nil, &domain.FormatError{Source: "work areas", Reason: "CSV has no data rows", Err: domain.ErrNoDataRows}
	}

	cols, missing := tabular.ResolveColumns(records[0], ColKey, ColName, ColAlias)
	if len(missing) > 0 {
		return nil, &domain.FormatError{
			Source:  "work areas",
			Reason:  `header must contain "Key", "Name", and "Alias"`,
			Missing: missing,
		}
	}

	idx := NewIndex()
	for _, record := range records[1:] {
		code := worklog.NormalizeField(cols.Field(record, ColKey))
		name := worklog.NormalizeField(cols.Field(record, ColName))
		alias := worklog.NormalizeField(cols.Field(record, ColAlias))
		if code == "" || name == "" || alias == "" {
			continue
		}
		idx.Set(code, domain.WorkArea{Name: name, Alias: alias})
	}
	return idx, nil
}

// Set stores area under code. Re-setting an existing code replaces the value
// but keeps its original position.
func (x *Index) Set(code string, area domain.WorkArea) {
	if _, ok := x.entries[code]; !ok {
		x.order = append(x.order, code)
	}
	x.entries[code] = area
}

// Get looks up a code.
func (x *Index) Get(code string) (domain.WorkArea, bool) {
	if x == nil {
		return domain.WorkArea{}, false
	}
	area, ok := x.entries[code]
	return area, ok
}

// Len returns the number of entries; a nil Index is empty.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.order)
}

// Entries returns all entries in insertion order.
func (x *Index) Entries() []Entry {
	if x == nil {
		return nil
	}
	out := make([]Entry, 0, len(x.order))
	for _, code := range x.order {
		out = append(out, Entry{Code: code, WorkArea: x.entries[code]})
	}
	return out
}

// Resolve returns the aliases of the row's area codes, de-duplicated
// case-insensitively and joined by newlines in first-seen order. It reports
// false when no code resolves.
func (x *Index) Resolve(row domain.WorklogRow) (string, bool) {
	if x.Len() == 0 {
		return "", false
	}
	var aliases []string
	seen := make(map[string]bool)
	for _, code := range row.AreaCodes() {
		area, ok := x.entries[code]
		if !ok {
			continue
		}
		norm := strings.ToLower(area.Alias)
		if seen[norm] {
			continue
		}
		seen[norm] = true
		aliases = append(aliases, area.Alias)
	}
	if len(aliases) == 0 {
		return "", false
	}
	return strings.Join(aliases, "\n"), true
}

// Referenced returns the entries whose code appears on at least one row, in
// index order.
func (x *Index) Referenced(rows []domain.WorklogRow) []Entry {
	if x.Len() == 0 {
		return nil
	}
	used := make(map[string]bool)
	for _, row := range rows {
		for _, code := range row.AreaCodes() {
			used[code] = true
		}
	}
	var out []Entry
	for _, code := range x.order {
		if used[code] {
			out = append(out, Entry{Code: code, WorkArea: x.entries[code]})
		}
	}
	return out
}

// Unmapped describes a row none of whose codes are known to the index.
type Unmapped struct {
	Position int // 1-based position in the row sequence
	User     string
	DateKey  string
	Codes    []string
}

// Missing returns the rows that carry no code known to the index.
func (x *Index) Missing(rows []domain.WorklogRow) []Unmapped {
	var out []Unmapped
	for i, row := range rows {
		codes := uniqueCodes(row.AreaCodes())
		matched := false
		for _, code := range codes {
			if _, ok := x.Get(code); ok {
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		out = append(out, Unmapped{Position: i + 1, User: row.User, DateKey: row.DateKey, Codes: codes})
	}
	return out
}

func uniqueCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
