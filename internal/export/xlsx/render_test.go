package xlsx

import (
	"encoding/xml"
	"strconv"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/areas"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type worksheetDoc struct {
	Cols []struct {
		Min   int `xml:"min,attr"`
		Width int `xml:"width,attr"`
	} `xml:"cols>col"`
	Rows []struct {
		R     int       `xml:"r,attr"`
		Cells []cellDoc `xml:"c"`
	} `xml:"sheetData>row"`
	Merges []struct {
		Ref string `xml:"ref,attr"`
	} `xml:"mergeCells>mergeCell"`
}

type cellDoc struct {
	R string `xml:"r,attr"`
	S int    `xml:"s,attr"`
	T string `xml:"t,attr"`
	V string `xml:"v"`
	F string `xml:"f"`
}

type sstDoc struct {
	Items []struct {
		T string `xml:"t"`
	} `xml:"si"`
}

// workbook is a decoded view of a rendered archive.
type workbook struct {
	entries map[string]string
	sheet   worksheetDoc
	cells   map[string]cellDoc
	strings []string
}

func (w workbook) text(ref string) string {
	c, ok := w.cells[ref]
	if !ok {
		return ""
	}
	if c.T == "s" {
		i, _ := strconv.Atoi(c.V)
		return w.strings[i]
	}
	return c.V
}

func (w workbook) widths() []int {
	out := make([]int, 0, len(w.sheet.Cols))
	for _, c := range w.sheet.Cols {
		out = append(out, c.Width)
	}
	return out
}

func (w workbook) merges() []string {
	var out []string
	for _, m := range w.sheet.Merges {
		out = append(out, m.Ref)
	}
	return out
}

func render(t *testing.T, rows []domain.WorklogRow, idx *areas.Index, opts Options) workbook {
	t.Helper()
	out, err := Render(rows, idx, opts)
	require.NoError(t, err)

	w := workbook{entries: testutil.ReadEntries(t, out), cells: make(map[string]cellDoc)}
	require.NoError(t, xml.Unmarshal([]byte(w.entries[PathSheet]), &w.sheet))
	var sst sstDoc
	require.NoError(t, xml.Unmarshal([]byte(w.entries[PathSharedStrings]), &sst))
	for _, si := range sst.Items {
		w.strings = append(w.strings, si.T)
	}
	for _, row := range w.sheet.Rows {
		for _, c := range row.Cells {
			w.cells[c.R] = c
		}
	}
	return w
}

func twoRows() []domain.WorklogRow {
	return []domain.WorklogRow{
		testutil.NewTestRow("A", testutil.Day(2026, 2, 3), testutil.WithHours("1"), testutil.WithKey("K1")),
		testutil.NewTestRow("B", testutil.Day(2026, 2, 4), testutil.WithHours("2")),
	}
}

func TestRender_ArchiveEntries(t *testing.T) {
	out, err := Render(twoRows(), nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		PathContentTypes, PathRootRels, PathAppProps, PathCoreProps, PathWorkbook,
		PathWorkbookRels, PathStyles, PathSharedStrings, PathSheet,
	}, testutil.EntryNames(t, out))

	entries := testutil.ReadEntries(t, out)
	for name, data := range entries {
		var root struct{ XMLName xml.Name }
		assert.NoError(t, xml.Unmarshal([]byte(data), &root), name)
	}
	assert.Contains(t, entries[PathWorkbook], `<sheet name="Timesheet" sheetId="1" r:id="rId1"/>`)
	assert.Contains(t, entries[PathWorkbook], `fullCalcOnLoad="1"`)
	assert.NotContains(t, entries[PathCoreProps], "dcterms:created")
}

func TestRender_SummaryFormula(t *testing.T) {
	w := render(t, twoRows(), nil, Options{})

	sum := w.cells["C4"]
	assert.Equal(t, "SUM(C2:C3)", sum.F)
	assert.Equal(t, "3", sum.V, "cached value is the arithmetic total")
	assert.Equal(t, styleBorderHours, sum.S)
	assert.Equal(t, "Summe", w.text("B4"))
	assert.Equal(t, "1", w.text("C2"))
	assert.Empty(t, w.cells["C2"].T, "hours are numeric cells")
}

func TestRender_HeaderAndData(t *testing.T) {
	w := render(t, twoRows(), nil, Options{})

	assert.Equal(t, "Datum", w.text("A1"))
	assert.Equal(t, "Mitarbeiter*in", w.text("B1"))
	assert.Equal(t, "Stunden", w.text("C1"))
	assert.Equal(t, "Beschreibung der Tätigkeit", w.text("D1"))
	assert.Equal(t, "03.02.2026", w.text("A2"))
	assert.Equal(t, "B", w.text("B3"))
	assert.Equal(t, "task", w.text("D3"))
	_, hasE := w.cells["E1"]
	assert.False(t, hasE)
}

func TestRender_ColumnWidths(t *testing.T) {
	without := render(t, twoRows(), nil, Options{})
	with := render(t, twoRows(), testutil.NewTestIndex([3]string{"K1", "Area One", "A1"}), Options{})
	narrow := render(t, twoRows(), nil, Options{WidthChars: 20})

	assert.Equal(t, []int{19, 24, 14, 62}, without.widths())
	assert.Equal(t, []int{17, 19, 12, 16, 56}, with.widths())
	assert.Equal(t, []int{8, 8, 8, 10}, narrow.widths(), "columns never narrower than 8")
}

func TestRender_BordersCoverTable(t *testing.T) {
	w := render(t, twoRows(), nil, Options{})

	for r := 1; r <= 4; r++ {
		for _, col := range []string{"A", "B", "C", "D"} {
			ref := col + strconv.Itoa(r)
			c, ok := w.cells[ref]
			require.True(t, ok, ref)
			assert.NotEqual(t, styleDefault, c.S, ref)
		}
	}
}

func TestRender_LegendScopingAndBorders(t *testing.T) {
	idx := testutil.NewTestIndex(
		[3]string{"K1", "Area One", "A1"},
		[3]string{"K2", "Area Two", "A2"},
	)

	w := render(t, twoRows(), idx, Options{IncludeLegend: true})

	assert.Equal(t, "Bereich", w.text("D1"))
	assert.Equal(t, "A1", w.text("D2"))
	assert.Empty(t, w.text("D3"))
	_, blank := w.cells["A5"]
	assert.False(t, blank, "separator row is empty")
	assert.Equal(t, "Legende", w.text("A6"))
	assert.Equal(t, "A1", w.text("A7"))
	assert.Equal(t, "Area One", w.text("B7"))
	assert.NotContains(t, w.strings, "Area Two")
	assert.NotContains(t, w.strings, "A2")

	for _, ref := range []string{"A6", "B6", "A7", "B7"} {
		assert.Equal(t, styleBorder, w.cells[ref].S, ref)
	}
	_, hasC := w.cells["C6"]
	assert.False(t, hasC)
}

func TestRender_NoLegendUnlessRequested(t *testing.T) {
	idx := testutil.NewTestIndex([3]string{"K1", "Area One", "A1"})

	w := render(t, twoRows(), idx, Options{})

	assert.NotContains(t, w.strings, "Legende")
	assert.Len(t, w.sheet.Rows, 4)
}

func TestRender_WeeklyMerges(t *testing.T) {
	monday := testutil.Day(2026, 2, 2)
	rows := []domain.WorklogRow{
		testutil.NewWeeklyRow("A", "2026-W06", "6\n(02.02 - 06.02)", monday),
		testutil.NewWeeklyRow("B", "2026-W06", "6\n(02.02 - 06.02)", monday),
		testutil.NewWeeklyRow("A", "2026-W07", "7 (09.02 - 13.02)", monday.AddDate(0, 0, 7)),
	}

	w := render(t, rows, nil, Options{Weekly: true})

	assert.Equal(t, []string{"A2:A3"}, w.merges())
	assert.Equal(t, "Kalenderwoche", w.text("A1"))
	assert.Equal(t, "6\n(02.02 - 06.02)", w.text("A2"))
	assert.Empty(t, w.text("A3"))
	assert.Equal(t, "7\n(09.02 - 13.02)", w.text("A4"))
	for _, ref := range []string{"A2", "A3", "A4"} {
		assert.Equal(t, styleBorderCentered, w.cells[ref].S, ref)
	}
	assert.Equal(t, styleBorder, w.cells["A5"].S, "summary row is not centered")
}

func TestRender_DailyModeHasNoMerges(t *testing.T) {
	day := testutil.Day(2026, 2, 3)
	rows := []domain.WorklogRow{testutil.NewTestRow("A", day), testutil.NewTestRow("B", day)}

	w := render(t, rows, nil, Options{})

	assert.Empty(t, w.merges())
	assert.Equal(t, "03.02.2026", w.text("A3"))
	assert.NotContains(t, w.entries[PathSheet], "<mergeCells")
}

func TestRender_NoRows(t *testing.T) {
	w := render(t, nil, nil, Options{})

	assert.Equal(t, "Summe", w.text("B2"))
	assert.Empty(t, w.cells["C2"].F)
	assert.Equal(t, "0", w.cells["C2"].V)
}

func TestRender_DocumentProperties(t *testing.T) {
	created := time.Date(2026, 2, 3, 9, 30, 0, 0, time.UTC)

	w := render(t, twoRows(), nil, Options{SheetName: "Feb: [A/B]", Created: created})

	assert.Contains(t, w.entries[PathWorkbook], `<sheet name="Feb_ _A_B_"`)
	assert.Contains(t, w.entries[PathCoreProps], "2026-02-03T09:30:00Z")
}

func TestSanitizeSheetName(t *testing.T) {
	assert.Equal(t, DefaultSheetName, sanitizeSheetName(""))
	assert.Equal(t, DefaultSheetName, sanitizeSheetName(" '' "))
	assert.Equal(t, "Q1 & Q2", sanitizeSheetName("Q1 & Q2"))
	assert.Len(t, []rune(sanitizeSheetName("Stundenübersicht für das gesamte Jahr")), maxSheetNameLen)
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", columnName(0))
	assert.Equal(t, "E", columnName(4))
	assert.Equal(t, "Z", columnName(25))
	assert.Equal(t, "AA", columnName(26))
	assert.Equal(t, "AB1", cellRef(0, 27))
}
