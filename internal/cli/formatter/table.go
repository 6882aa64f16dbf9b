package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Multi-line cells are flattened to one line. Columns listed in rightAligned
// are padded on the left.
func RenderTable(headers []string, rows [][]string, rightAligned ...int) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)
	right := make([]bool, cols)
	for _, c := range rightAligned {
		if c >= 0 && c < cols {
			right[c] = true
		}
	}

	cells := make([][]string, len(rows))
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for r, row := range rows {
		cells[r] = make([]string, cols)
		for i := 0; i < cols && i < len(row); i++ {
			cell := strings.Join(strings.Fields(row[i]), " ")
			cells[r][i] = cell
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	writeRow := func(values []string, style func(string) string) {
		for i, v := range values {
			pad := strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(v)))
			styled := v
			if style != nil {
				styled = style(v)
			}
			switch {
			case right[i]:
				b.WriteString(pad + styled)
			case i < cols-1:
				b.WriteString(styled + pad)
			default:
				b.WriteString(styled)
			}
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	seps := make([]string, cols)
	for i, w := range widths {
		seps[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	for i, s := range seps {
		b.WriteString(s)
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range cells {
		writeRow(row, nil)
	}
	return b.String()
}
