package docx

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timesheet/internal/export"
)

const (
	legendAliasWidth = 2500
	legendNameWidth  = 4500
	legendTableWidth = 7000
)

type cellOpts struct {
	width  int
	bold   bool
	jc     string
	vAlign string
	merge  export.Merge
}

// markup accumulates WordprocessingML fragments.
type markup struct {
	strings.Builder
	fontSize int
}

func (m *markup) run(text string, bold bool) {
	m.WriteString("<w:r><w:rPr>")
	if bold {
		m.WriteString("<w:b/><w:bCs/>")
	}
	fmt.Fprintf(m, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, m.fontSize, m.fontSize)
	m.WriteString(`</w:rPr><w:t xml:space="preserve">`)
	m.WriteString(export.EscapeXML(text))
	m.WriteString("</w:t></w:r>")
}

// paragraph writes text as one paragraph; every line break becomes an explicit
// break run.
func (m *markup) paragraph(text string, bold bool, jc string) {
	m.WriteString("<w:p>")
	if jc != "" {
		fmt.Fprintf(m, `<w:pPr><w:jc w:val="%s"/></w:pPr>`, jc)
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			m.WriteString("<w:r><w:br/></w:r>")
		}
		m.run(line, bold)
	}
	m.WriteString("</w:p>")
}

func (m *markup) emptyParagraph() {
	m.WriteString("<w:p/>")
}

func (m *markup) cell(text string, o cellOpts) {
	m.WriteString("<w:tc>")
	if o.width > 0 || o.vAlign != "" || o.merge != export.MergeNone {
		m.WriteString("<w:tcPr>")
		if o.width > 0 {
			fmt.Fprintf(m, `<w:tcW w:w="%d" w:type="dxa"/>`, o.width)
		}
		if o.vAlign != "" {
			fmt.Fprintf(m, `<w:vAlign w:val="%s"/>`, o.vAlign)
		}
		switch o.merge {
		case export.MergeRestart:
			m.WriteString(`<w:vMerge w:val="restart"/>`)
		case export.MergeContinue:
			m.WriteString("<w:vMerge/>")
		}
		m.WriteString("</w:tcPr>")
	}
	m.paragraph(text, o.bold, o.jc)
	m.WriteString("</w:tc>")
}

func (m *markup) tableStart(widthAttr string, grid []int) {
	m.WriteString("<w:tbl><w:tblPr>")
	m.WriteString(`<w:tblStyle w:val="TableGrid"/>`)
	m.WriteString(widthAttr)
	m.WriteString(`<w:tblLayout w:type="fixed"/>`)
	m.WriteString("</w:tblPr><w:tblGrid>")
	for _, w := range grid {
		fmt.Fprintf(m, `<w:gridCol w:w="%d"/>`, w)
	}
	m.WriteString("</w:tblGrid>")
}

// worklogTable writes the main table followed by an empty paragraph.
func (m *markup) worklogTable(t export.Table, widthDxa int) {
	grid := t.Widths(widthDxa)
	m.tableStart(`<w:tblW w:w="5000" w:type="pct"/>`, grid)

	m.WriteString("<w:tr>")
	for i, h := range t.Headers() {
		m.cell(h, cellOpts{width: grid[i], bold: true, jc: "center", vAlign: "center"})
	}
	m.WriteString("</w:tr>")

	dateJC := "left"
	if t.Weekly {
		dateJC = "center"
	}
	for _, r := range t.Rows {
		date := r.Date
		if r.Merge == export.MergeContinue {
			date = ""
		}
		m.WriteString("<w:tr>")
		m.cell(date, cellOpts{width: grid[0], jc: dateJC, vAlign: "center", merge: r.Merge})
		m.cell(r.User, cellOpts{width: grid[1], vAlign: "top"})
		m.cell(export.FormatHours(r.Hours), cellOpts{width: grid[2], jc: "right", vAlign: "top"})
		if t.ShowArea {
			m.cell(r.Area, cellOpts{width: grid[3], vAlign: "top"})
		}
		m.cell(r.Description, cellOpts{width: grid[len(grid)-1], vAlign: "top"})
		m.WriteString("</w:tr>")
	}

	m.WriteString("<w:tr>")
	m.cell("", cellOpts{width: grid[0], bold: true, vAlign: "center"})
	m.cell(export.LabelSum, cellOpts{width: grid[1], bold: true, vAlign: "center"})
	m.cell(export.FormatHours(t.Total), cellOpts{width: grid[2], bold: true, jc: "right", vAlign: "center"})
	for _, w := range grid[3:] {
		m.cell("", cellOpts{width: w, bold: true, vAlign: "center"})
	}
	m.WriteString("</w:tr></w:tbl>")
	m.emptyParagraph()
}

// legend writes the heading, the alias/name table and an empty paragraph.
func (m *markup) legend(t export.Table) {
	m.WriteString(`<w:p><w:pPr><w:spacing w:after="0"/></w:pPr>`)
	m.run(export.LabelLegend, true)
	m.WriteString("</w:p>")

	m.tableStart(fmt.Sprintf(`<w:tblW w:w="%d" w:type="dxa"/>`, legendTableWidth),
		[]int{legendAliasWidth, legendNameWidth})
	for _, e := range t.Legend {
		m.WriteString("<w:tr>")
		m.cell(e.Alias, cellOpts{width: legendAliasWidth})
		m.cell(e.Name, cellOpts{width: legendNameWidth})
		m.WriteString("</w:tr>")
	}
	m.WriteString("</w:tbl>")
	m.emptyParagraph()
}
