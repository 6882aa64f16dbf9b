// Package export builds the renderer-neutral worklog table shared by the
// docx and xlsx writers: column set, proportional widths, date-column merge
// runs, German number and date formatting, and the legend selection.
package export

import (
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/areas"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/shopspring/decimal"
)

// Header and label texts.
const (
	HeaderWeek        = "Kalenderwoche"
	HeaderDate        = "Datum"
	HeaderUser        = "Mitarbeiter*in"
	HeaderHours       = "Stunden"
	HeaderArea        = "Bereich"
	HeaderDescription = "Beschreibung der Tätigkeit"
	LabelSum          = "Summe"
	LabelLegend       = "Legende"
)

var (
	weightsWithArea    = []int{14, 16, 10, 13, 47}
	weightsWithoutArea = []int{16, 20, 12, 52}
)

// Merge is the vertical-merge role of a date cell.
type Merge int

const (
	MergeNone Merge = iota
	MergeRestart
	MergeContinue
)

// Run is a maximal block of consecutive rows sharing a DateKey. Start and End
// are inclusive row indexes.
type Run struct {
	Start int
	End   int
}

// Merged reports whether the run spans more than one row.
func (r Run) Merged() bool {
	return r.End > r.Start
}

// Row is one data row of the rendered table.
type Row struct {
	Date        string
	Merge       Merge
	User        string
	Hours       decimal.Decimal
	Area        string
	Description string
}

// Table is the rendered form of a worklog row sequence.
type Table struct {
	Weekly   bool
	ShowArea bool
	Rows     []Row
	Runs     []Run
	Total    decimal.Decimal
	Legend   []areas.Entry
}

// Build lays out rows for rendering. The area column is shown when idx holds
// at least one entry; the legend is filled only when includeLegend is set and
// at least one entry is referenced by rows.
func Build(rows []domain.WorklogRow, idx *areas.Index, weekly, includeLegend bool) Table {
	t := Table{
		Weekly:   weekly,
		ShowArea: idx.Len() > 0,
		Rows:     make([]Row, 0, len(rows)),
		Runs:     MergeRuns(rows),
		Total:    SumHours(rows),
	}

	modes := make([]Merge, len(rows))
	for _, run := range t.Runs {
		if !run.Merged() {
			continue
		}
		modes[run.Start] = MergeRestart
		for i := run.Start + 1; i <= run.End; i++ {
			modes[i] = MergeContinue
		}
	}

	for i, r := range rows {
		row := Row{
			Date:        DateText(r),
			Merge:       modes[i],
			User:        r.User,
			Hours:       r.Hours,
			Description: r.Description,
		}
		if t.ShowArea {
			row.Area, _ = idx.Resolve(r)
		}
		t.Rows = append(t.Rows, row)
	}

	if includeLegend {
		t.Legend = idx.Referenced(rows)
	}
	return t
}

// Headers returns the column headers for the active column set.
func (t Table) Headers() []string {
	first := HeaderDate
	if t.Weekly {
		first = HeaderWeek
	}
	if t.ShowArea {
		return []string{first, HeaderUser, HeaderHours, HeaderArea, HeaderDescription}
	}
	return []string{first, HeaderUser, HeaderHours, HeaderDescription}
}

// ColumnCount returns the number of active columns.
func (t Table) ColumnCount() int {
	return len(t.Weights())
}

// Weights returns the proportional column weights.
func (t Table) Weights() []int {
	if t.ShowArea {
		return weightsWithArea
	}
	return weightsWithoutArea
}

// Widths distributes total across the columns by weight, each share rounded
// half up.
func (t Table) Widths(total int) []int {
	weights := t.Weights()
	sum := 0
	for _, w := range weights {
		sum += w
	}
	out := make([]int, len(weights))
	for i, w := range weights {
		out[i] = (2*w*total + sum) / (2 * sum)
	}
	return out
}

// HasLegend reports whether a legend block should be rendered.
func (t Table) HasLegend() bool {
	return len(t.Legend) > 0
}

// MergeRuns groups consecutive rows by DateKey in a single forward scan.
func MergeRuns(rows []domain.WorklogRow) []Run {
	var runs []Run
	for start := 0; start < len(rows); {
		end := start
		for end+1 < len(rows) && rows[end+1].DateKey == rows[start].DateKey {
			end++
		}
		runs = append(runs, Run{Start: start, End: end})
		start = end + 1
	}
	return runs
}

// SumHours is the arithmetic total of all row hours.
func SumHours(rows []domain.WorklogRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Hours)
	}
	return total
}

// DateText renders a row's date cell: DD.MM.YYYY for daily rows, the label
// text for weekly rows.
func DateText(row domain.WorklogRow) string {
	switch v := row.Date.(type) {
	case domain.Daily:
		return FormatDate(v.Time)
	case domain.WeekLabel:
		return v.Text
	default:
		return ""
	}
}

// FormatDate formats t as DD.MM.YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatHours formats d with two decimals and a decimal comma.
func FormatHours(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
