package aggregate

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func dailyRow(t time.Time, user, hours, desc, key string) domain.WorklogRow {
	return domain.WorklogRow{
		Date:        domain.Daily{Time: t},
		DateKey:     t.Format("2006-01-02"),
		DateSort:    t.UnixMilli(),
		User:        user,
		Hours:       decimal.RequireFromString(hours),
		Description: desc,
		Key:         key,
	}
}

func TestWorkWeekOf(t *testing.T) {
	tests := []struct {
		name      string
		in        time.Time
		wantKey   string
		wantLabel string
		wantStart time.Time
	}{
		{"tuesday", day(2026, 2, 3), "2026-W06", "6\n(02.02 - 06.02)", day(2026, 2, 2)},
		{"monday", day(2026, 2, 2), "2026-W06", "6\n(02.02 - 06.02)", day(2026, 2, 2)},
		{"sunday belongs to preceding monday", day(2026, 2, 8), "2026-W06", "6\n(02.02 - 06.02)", day(2026, 2, 2)},
		{"next week", day(2026, 2, 9), "2026-W07", "7\n(09.02 - 13.02)", day(2026, 2, 9)},
		{"iso year boundary", day(2027, 1, 1), "2026-W53", "53\n(28.12 - 01.01)", day(2026, 12, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WorkWeekOf(tt.in)
			assert.Equal(t, tt.wantKey, w.Key)
			assert.Equal(t, tt.wantLabel, w.Label())
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantStart.AddDate(0, 0, 4), w.End)
		})
	}
}

func TestWeekly_SumsHoursPerUserAndWeek(t *testing.T) {
	rows := []domain.WorklogRow{
		dailyRow(day(2026, 2, 3), "A", "1", "task x", "K1"),
		dailyRow(day(2026, 2, 5), "A", "2", "task y", "K2"),
	}

	got := Weekly(rows)

	require.Len(t, got, 1)
	assert.Equal(t, "3.00", got[0].Hours.StringFixed(2))
	assert.Equal(t, "2026-W06", got[0].DateKey)
	assert.Equal(t, domain.WeekLabel{Text: "6\n(02.02 - 06.02)"}, got[0].Date)
	assert.Equal(t, day(2026, 2, 2).UnixMilli(), got[0].DateSort)
	assert.Equal(t, "task x, task y", got[0].Description)
	assert.Equal(t, []string{"K1", "K2"}, got[0].Keys)
	assert.Empty(t, got[0].Key)
}

func TestWeekly_DeduplicatesDescriptions(t *testing.T) {
	rows := []domain.WorklogRow{
		dailyRow(day(2026, 2, 2), "A", "1", "daily standup, Review", ""),
		dailyRow(day(2026, 2, 3), "A", "1", "DAILY, review", ""),
		dailyRow(day(2026, 2, 4), "A", "1", "Daily sync with team, dailyness report", ""),
	}

	got := Weekly(rows)

	require.Len(t, got, 1)
	// "dailyness" has no word boundary after "daily", so it is kept as-is.
	assert.Equal(t, "Daily, Review, dailyness report", got[0].Description)
	assert.Nil(t, got[0].Keys)
}

func TestWeekly_GroupsAndOrders(t *testing.T) {
	rows := []domain.WorklogRow{
		dailyRow(day(2026, 2, 10), "B", "1", "b2", "K1"),
		dailyRow(day(2026, 2, 3), "B", "1", "b1", "K1"),
		dailyRow(day(2026, 2, 4), "A", "1", "a1", "K1"),
		dailyRow(day(2026, 2, 11), "A", "1", "a2", "K1"),
	}

	got := Weekly(rows)

	var keys, users []string
	for _, r := range got {
		keys = append(keys, r.DateKey)
		users = append(users, r.User)
	}
	assert.Equal(t, []string{"2026-W06", "2026-W06", "2026-W07", "2026-W07"}, keys)
	assert.Equal(t, []string{"A", "B", "A", "B"}, users)
	assert.Equal(t, []string{"K1"}, got[0].Keys, "codes are de-duplicated")
}

func TestWeekly_SkipsWeekLabelRows(t *testing.T) {
	rows := []domain.WorklogRow{
		dailyRow(day(2026, 2, 3), "A", "1", "x", ""),
		{Date: domain.WeekLabel{Text: "6\n(02.02 - 06.02)"}, DateKey: "2026-W06", User: "A", Hours: decimal.NewFromInt(5), Description: "y"},
	}

	got := Weekly(rows)

	require.Len(t, got, 1)
	assert.Equal(t, "1.00", got[0].Hours.StringFixed(2))
	assert.Equal(t, "x", got[0].Description)
}

func TestWeekly_Empty(t *testing.T) {
	assert.Empty(t, Weekly(nil))
}

func TestWeekly_DoesNotMutateInput(t *testing.T) {
	rows := []domain.WorklogRow{
		dailyRow(day(2026, 2, 4), "B", "1", "x", "K1"),
		dailyRow(day(2026, 2, 3), "A", "2", "y", "K2"),
	}
	before := append([]domain.WorklogRow(nil), rows...)

	_ = Weekly(rows)

	if diff := cmp.Diff(before, rows); diff != "" {
		t.Errorf("input changed (-before +after):\n%s", diff)
	}
}

// TestWeekly_HoursConservation property-tests that every aggregated row's
// hours equal the rounded sum of its contributors.
func TestWeekly_HoursConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	users := []string{"A", "B", "C"}

	for trial := 0; trial < 100; trial++ {
		n := rng.Intn(20) + 1
		rows := make([]domain.WorklogRow, n)
		want := make(map[string]decimal.Decimal)
		for i := range rows {
			d := day(2026, 1, 1).AddDate(0, 0, rng.Intn(60))
			user := users[rng.Intn(len(users))]
			hours := decimal.New(int64(rng.Intn(800)+1), -2)
			rows[i] = dailyRow(d, user, hours.String(), "task", "")

			id := WorkWeekOf(d).Key + "::" + user
			want[id] = want[id].Add(hours)
		}

		got := Weekly(rows)

		require.Len(t, got, len(want))
		for _, r := range got {
			sum := want[r.DateKey+"::"+r.User]
			assert.True(t, sum.Round(2).Equal(r.Hours), "trial %d %s/%s", trial, r.DateKey, r.User)
			assert.True(t, sum.Sub(r.Hours).Abs().LessThanOrEqual(decimal.New(1, -2)))
		}
	}
}
