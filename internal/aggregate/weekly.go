// Package aggregate buckets daily worklog rows into (work week, user) rows.
package aggregate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/worklog"
	"github.com/shopspring/decimal"
)

var dailyPattern = regexp.MustCompile(`(?i)^daily\b`)

// WorkWeek is the Monday-to-Friday span containing a day.
type WorkWeek struct {
	Start   time.Time // Monday, 12:00
	End     time.Time // Friday, 12:00
	Year    int       // ISO week-numbering year
	Number  int       // ISO week number
	Key     string    // e.g. "2026-W06"
	Display string    // e.g. "(02.02 - 06.02)"
}

// WorkWeekOf returns the work week of t, anchored to noon in t's location.
func WorkWeekOf(t time.Time) WorkWeek {
	shift := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -shift)
	start := time.Date(monday.Year(), monday.Month(), monday.Day(), 12, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 4)
	year, week := start.ISOWeek()
	return WorkWeek{
		Start:   start,
		End:     end,
		Year:    year,
		Number:  week,
		Key:     fmt.Sprintf("%d-W%02d", year, week),
		Display: fmt.Sprintf("(%s - %s)", start.Format("02.01"), end.Format("02.01")),
	}
}

// Label is the two-line date cell text of an aggregated row.
func (w WorkWeek) Label() string {
	return fmt.Sprintf("%d\n%s", w.Number, w.Display)
}

type group struct {
	week      WorkWeek
	user      string
	hours     decimal.Decimal
	fragments []string
	seen      map[string]bool
	codes     []string
	seenCodes map[string]bool
}

func (g *group) addFragment(part string) {
	key := strings.ToLower(part)
	if dailyPattern.MatchString(part) {
		key = "daily"
		part = "Daily"
	}
	if g.seen[key] {
		return
	}
	g.seen[key] = true
	g.fragments = append(g.fragments, part)
}

func (g *group) addCode(code string) {
	if g.seenCodes[code] {
		return
	}
	g.seenCodes[code] = true
	g.codes = append(g.codes, code)
}

func (g *group) row() domain.WorklogRow {
	row := domain.WorklogRow{
		Date:        domain.WeekLabel{Text: g.week.Label()},
		DateKey:     g.week.Key,
		DateSort:    g.week.Start.UnixMilli(),
		User:        g.user,
		Hours:       g.hours.Round(2),
		Description: worklog.JoinParts(g.fragments),
	}
	if len(g.codes) > 0 {
		row.Keys = g.codes
	}
	return row
}

// Weekly merges daily rows into one row per (work week, user). Hours are
// summed and rounded to two decimals, description fragments are de-duplicated
// case-insensitively (any fragment starting with "daily" collapses to
// "Daily"), and area codes are unioned. Rows that already carry a week label
// are skipped. The result is canonically sorted.
func Weekly(rows []domain.WorklogRow) []domain.WorklogRow {
	groups := make(map[string]*group)
	var order []*group

	for _, row := range rows {
		daily, ok := row.Date.(domain.Daily)
		if !ok {
			continue
		}
		week := WorkWeekOf(daily.Time)
		id := week.Key + "::" + row.User
		g, ok := groups[id]
		if !ok {
			g = &group{
				week:      week,
				user:      row.User,
				seen:      make(map[string]bool),
				seenCodes: make(map[string]bool),
			}
			groups[id] = g
			order = append(order, g)
		}

		g.hours = g.hours.Add(row.Hours)
		for _, part := range worklog.SplitParts(row.Description) {
			g.addFragment(part)
		}
		for _, code := range row.AreaCodes() {
			g.addCode(code)
		}
	}

	out := make([]domain.WorklogRow, 0, len(order))
	for _, g := range order {
		out = append(out, g.row())
	}
	worklog.CanonicalSort(out)
	return out
}
