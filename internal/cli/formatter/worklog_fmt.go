package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timesheet/internal/areas"
	"github.com/alexanderramin/timesheet/internal/contract"
	"github.com/alexanderramin/timesheet/internal/export"
)

// FormatPreview renders the export rows of resp as a table followed by the
// hours total and the mapping warning count.
func FormatPreview(resp *contract.ConvertResponse, weekly bool) string {
	t := export.Build(resp.Rows, resp.Areas, weekly, false)

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := []string{r.Date, r.User, export.FormatHours(r.Hours)}
		if t.ShowArea {
			row = append(row, r.Area)
		}
		rows = append(rows, append(row, r.Description))
	}

	var b strings.Builder
	b.WriteString(RenderTable(t.Headers(), rows, 2))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Bold(export.LabelSum+":"), export.FormatHours(t.Total))
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("%d row(s) from %d worklog record(s)", len(t.Rows), resp.SourceRows)))
	if n := len(resp.Unmapped); n > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d row(s) without matching work area", n)))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatAreas renders the work-area index in insertion order.
func FormatAreas(idx *areas.Index) string {
	entries := idx.Entries()
	if len(entries) == 0 {
		return "No work areas found.\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Code, e.Alias, e.Name})
	}
	return RenderTable([]string{"Key", "Alias", "Name"}, rows)
}

// FormatConvertSummary lists the written files and the hours total.
func FormatConvertSummary(resp *contract.ConvertResponse, paths []string) string {
	var b strings.Builder
	for _, p := range paths {
		fmt.Fprintf(&b, "%s %s\n", StyleGreen.Render("Wrote"), p)
	}
	fmt.Fprintf(&b, "%s %s h in %d row(s)\n", Bold(export.LabelSum+":"), export.FormatHours(resp.TotalHours), len(resp.Rows))
	return b.String()
}
