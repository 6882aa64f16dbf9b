package testutil

import (
	"time"

	"github.com/alexanderramin/timesheet/internal/areas"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/shopspring/decimal"
)

// Day returns noon UTC of the given calendar day.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// Row options
type RowOption func(*domain.WorklogRow)

func WithHours(h string) RowOption {
	return func(r *domain.WorklogRow) {
		r.Hours = decimal.RequireFromString(h)
	}
}

func WithDescription(d string) RowOption {
	return func(r *domain.WorklogRow) {
		r.Description = d
	}
}

func WithKey(k string) RowOption {
	return func(r *domain.WorklogRow) {
		r.Key = k
	}
}

func WithKeys(keys ...string) RowOption {
	return func(r *domain.WorklogRow) {
		r.Keys = keys
	}
}

// NewTestRow builds a daily row worth one hour of "task" on day.
func NewTestRow(user string, day time.Time, opts ...RowOption) domain.WorklogRow {
	r := domain.WorklogRow{
		Date:        domain.Daily{Time: day},
		DateKey:     day.Format("2006-01-02"),
		DateSort:    day.UnixMilli(),
		User:        user,
		Hours:       decimal.NewFromInt(1),
		Description: "task",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// NewWeeklyRow builds an already aggregated row.
func NewWeeklyRow(user, weekKey, label string, monday time.Time, opts ...RowOption) domain.WorklogRow {
	r := domain.WorklogRow{
		Date:        domain.WeekLabel{Text: label},
		DateKey:     weekKey,
		DateSort:    monday.UnixMilli(),
		User:        user,
		Hours:       decimal.NewFromInt(1),
		Description: "task",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// NewTestIndex builds an area index from code/name/alias triples.
func NewTestIndex(entries ...[3]string) *areas.Index {
	idx := areas.NewIndex()
	for _, e := range entries {
		idx.Set(e[0], domain.WorkArea{Name: e[1], Alias: e[2]})
	}
	return idx
}
