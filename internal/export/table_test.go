package export

import (
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/areas"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(dateKey, user, hours, key string) domain.WorklogRow {
	t, _ := time.Parse("2006-01-02", dateKey)
	t = t.Add(12 * time.Hour)
	return domain.WorklogRow{
		Date:        domain.Daily{Time: t},
		DateKey:     dateKey,
		DateSort:    t.UnixMilli(),
		User:        user,
		Hours:       decimal.RequireFromString(hours),
		Description: "task",
		Key:         key,
	}
}

func testIndex(t *testing.T) *areas.Index {
	t.Helper()
	idx, err := areas.Parse("Key,Name,Alias\nK1,Area One,A1\nK2,Area Two,A2\n")
	require.NoError(t, err)
	return idx
}

func TestMergeRuns(t *testing.T) {
	rows := []domain.WorklogRow{
		row("2026-02-03", "A", "1", ""),
		row("2026-02-03", "B", "1", ""),
		row("2026-02-04", "A", "1", ""),
		row("2026-02-05", "A", "1", ""),
		row("2026-02-05", "B", "1", ""),
		row("2026-02-05", "C", "1", ""),
	}

	runs := MergeRuns(rows)

	assert.Equal(t, []Run{{0, 1}, {2, 2}, {3, 5}}, runs)
	assert.True(t, runs[0].Merged())
	assert.False(t, runs[1].Merged())
	assert.Empty(t, MergeRuns(nil))
}

func TestBuild_MergeModes(t *testing.T) {
	rows := []domain.WorklogRow{
		row("2026-02-03", "A", "1", ""),
		row("2026-02-03", "B", "1", ""),
		row("2026-02-04", "A", "1", ""),
	}

	table := Build(rows, nil, false, false)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, MergeRestart, table.Rows[0].Merge)
	assert.Equal(t, MergeContinue, table.Rows[1].Merge)
	assert.Equal(t, MergeNone, table.Rows[2].Merge)
	assert.Equal(t, "03.02.2026", table.Rows[0].Date)
}

func TestBuild_AreaColumnAndLegend(t *testing.T) {
	idx := testIndex(t)
	rows := []domain.WorklogRow{row("2026-02-03", "A", "1", "K1")}

	table := Build(rows, idx, false, true)

	assert.True(t, table.ShowArea)
	assert.Equal(t, "A1", table.Rows[0].Area)
	require.Len(t, table.Legend, 1)
	assert.Equal(t, "K1", table.Legend[0].Code)
	assert.True(t, table.HasLegend())

	noLegend := Build(rows, idx, false, false)
	assert.False(t, noLegend.HasLegend())
}

func TestBuild_WithoutIndex(t *testing.T) {
	table := Build([]domain.WorklogRow{row("2026-02-03", "A", "1", "K1")}, nil, true, true)

	assert.False(t, table.ShowArea)
	assert.False(t, table.HasLegend())
	assert.Empty(t, table.Rows[0].Area)
	assert.Equal(t, []string{HeaderWeek, HeaderUser, HeaderHours, HeaderDescription}, table.Headers())
}

func TestHeaders(t *testing.T) {
	table := Table{ShowArea: true}
	assert.Equal(t, []string{"Datum", "Mitarbeiter*in", "Stunden", "Bereich", "Beschreibung der Tätigkeit"}, table.Headers())
	assert.Equal(t, 5, table.ColumnCount())
}

func TestWidths(t *testing.T) {
	withArea := Table{ShowArea: true}
	without := Table{}

	assert.Equal(t, []int{1260, 1440, 900, 1170, 4230}, withArea.Widths(9000))
	assert.Equal(t, []int{1440, 1800, 1080, 4680}, without.Widths(9000))
	assert.Equal(t, []int{17, 19, 12, 16, 56}, withArea.Widths(120))
	assert.Equal(t, []int{19, 24, 14, 62}, without.Widths(120))
}

func TestSumHours(t *testing.T) {
	rows := []domain.WorklogRow{row("2026-02-03", "A", "1.33", ""), row("2026-02-03", "B", "0.67", "")}
	assert.Equal(t, "2.00", SumHours(rows).StringFixed(2))
	assert.True(t, SumHours(nil).IsZero())
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1,50", FormatHours(decimal.RequireFromString("1.5")))
	assert.Equal(t, "12,00", FormatHours(decimal.NewFromInt(12)))
	assert.Equal(t, "03.02.2026", FormatDate(time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "6\n(02.02 - 06.02)", DateText(domain.WorklogRow{Date: domain.WeekLabel{Text: "6\n(02.02 - 06.02)"}}))
	assert.Empty(t, DateText(domain.WorklogRow{}))
}
