package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateValue is the date column of a worklog row. It is either Daily (a
// concrete calendar day) or WeekLabel (a pre-rendered work-week label).
type DateValue interface {
	isDateValue()
}

// Daily is a concrete calendar instant, anchored to local noon.
type Daily struct {
	Time time.Time
}

// WeekLabel is the display label of an aggregated work week, e.g. "6\n(02.02 - 06.02)".
type WeekLabel struct {
	Text string
}

func (Daily) isDateValue()     {}
func (WeekLabel) isDateValue() {}

// WorklogRow is one logical unit of worked time.
type WorklogRow struct {
	Date        DateValue
	DateKey     string // YYYY-MM-DD for daily rows, YYYY-Www for weekly rows
	DateSort    int64  // unix millis, agrees with DateKey ordering
	User        string
	Hours       decimal.Decimal
	Description string

	// Work-area references
	Key  string   // daily rows
	Keys []string // weekly rows
}

// IsWeekly reports whether the row carries an aggregated week label.
func (r WorklogRow) IsWeekly() bool {
	_, ok := r.Date.(WeekLabel)
	return ok
}

// AreaCodes returns Key followed by Keys, skipping empty codes.
func (r WorklogRow) AreaCodes() []string {
	codes := make([]string, 0, 1+len(r.Keys))
	if r.Key != "" {
		codes = append(codes, r.Key)
	}
	for _, k := range r.Keys {
		if k != "" {
			codes = append(codes, k)
		}
	}
	return codes
}

// WorkArea is the display name and alias of a work-area code.
type WorkArea struct {
	Name  string
	Alias string
}

// Logger receives one diagnostic line per soft failure.
type Logger func(line string)

// NopLogger discards all lines.
func NopLogger(string) {}
