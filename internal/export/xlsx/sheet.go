package xlsx

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/timesheet/internal/export"
	"github.com/shopspring/decimal"
)

// Cell formats, indexes into cellXfs of styles.xml.
const (
	styleDefault = iota
	styleBorder
	styleBorderCentered
	styleBorderHours
)

const minColumnWidth = 8

var weekLabelPattern = regexp.MustCompile(`^(\d+)\s+\(`)

type cellKind int

const (
	cellBlank cellKind = iota
	cellString
	cellNumber
	cellFormula
)

type cell struct {
	kind    cellKind
	style   int
	text    string          // cellString
	number  decimal.Decimal // cellNumber, cached formula result
	formula string          // cellFormula
}

// sheet is a sparse cell matrix plus layout metadata. Rows and columns are
// zero-based internally and converted to A1 references on output.
type sheet struct {
	rows   [][]cell
	widths []int
	merges []string
}

func (s *sheet) set(r, c int, v cell) {
	for len(s.rows) <= r {
		s.rows = append(s.rows, nil)
	}
	for len(s.rows[r]) <= c {
		s.rows[r] = append(s.rows[r], cell{})
	}
	s.rows[r][c] = v
}

func (s *sheet) style(r, c, style int) {
	if r < len(s.rows) && c < len(s.rows[r]) {
		s.rows[r][c].style = style
		return
	}
	s.set(r, c, cell{style: style})
}

func (s *sheet) columns() int {
	n := len(s.widths)
	for _, row := range s.rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

func text(s string) cell {
	if s == "" {
		return cell{}
	}
	return cell{kind: cellString, text: s}
}

// buildSheet lays out the worksheet:
//
//	row 1            header
//	rows 2..N+1      one per worklog row
//	row N+2          "Summe" and the hours formula
//	row N+3          blank (legend only)
//	rows N+4..       "Legende" and one (alias, name) row per entry
func buildSheet(t export.Table, widthChars int) *sheet {
	s := &sheet{}
	cols := t.ColumnCount()

	for c, h := range t.Headers() {
		s.set(0, c, text(h))
	}

	for i, r := range t.Rows {
		row := i + 1
		date := r.Date
		if t.Weekly {
			date = weekLabelPattern.ReplaceAllString(date, "$1\n(")
			if r.Merge == export.MergeContinue {
				date = ""
			}
		}
		values := []cell{text(date), text(r.User), {kind: cellNumber, number: r.Hours}}
		if t.ShowArea {
			values = append(values, text(r.Area))
		}
		values = append(values, text(r.Description))
		for c, v := range values {
			s.set(row, c, v)
		}
	}

	summary := len(t.Rows) + 1
	s.set(summary, 1, text(export.LabelSum))
	hours := cell{kind: cellNumber, number: t.Total}
	if len(t.Rows) > 0 {
		hours.kind = cellFormula
		hours.formula = fmt.Sprintf("SUM(C2:C%d)", len(t.Rows)+1)
	}
	s.set(summary, 2, hours)

	for r := 0; r <= summary; r++ {
		for c := 0; c < cols; c++ {
			s.style(r, c, styleBorder)
		}
	}
	s.style(summary, 2, styleBorderHours)

	if t.Weekly {
		for r := 1; r <= len(t.Rows); r++ {
			s.style(r, 0, styleBorderCentered)
		}
		for _, run := range t.Runs {
			if run.Merged() {
				s.merges = append(s.merges, fmt.Sprintf("A%d:A%d", run.Start+2, run.End+2))
			}
		}
	}

	if t.HasLegend() {
		heading := summary + 2
		s.set(heading, 0, text(export.LabelLegend))
		for i, e := range t.Legend {
			s.set(heading+1+i, 0, text(e.Alias))
			s.set(heading+1+i, 1, text(e.Name))
		}
		for r := heading; r <= heading+len(t.Legend); r++ {
			s.style(r, 0, styleBorder)
			s.style(r, 1, styleBorder)
		}
	}

	for _, w := range t.Widths(widthChars) {
		s.widths = append(s.widths, max(minColumnWidth, w))
	}
	return s
}

// columnName converts a zero-based column index to its letter form.
func columnName(c int) string {
	name := ""
	for c++; c > 0; c = (c - 1) / 26 {
		name = string(rune('A'+(c-1)%26)) + name
	}
	return name
}

func cellRef(r, c int) string {
	return columnName(c) + strconv.Itoa(r+1)
}

// sharedStrings interns cell texts in first-use order.
type sharedStrings struct {
	index map[string]int
	list  []string
	refs  int
}

func (ss *sharedStrings) add(s string) int {
	ss.refs++
	if i, ok := ss.index[s]; ok {
		return i
	}
	if ss.index == nil {
		ss.index = make(map[string]int)
	}
	ss.index[s] = len(ss.list)
	ss.list = append(ss.list, s)
	return len(ss.list) - 1
}

func (ss *sharedStrings) xml() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<sst xmlns="%s" count="%d" uniqueCount="%d">`, nsMain, ss.refs, len(ss.list))
	for _, s := range ss.list {
		b.WriteString(`<si><t xml:space="preserve">`)
		b.WriteString(export.EscapeXML(s))
		b.WriteString("</t></si>")
	}
	b.WriteString("</sst>")
	return b.String()
}

// worksheetXML serializes s, interning its strings into ss.
func (s *sheet) worksheetXML(ss *sharedStrings) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<worksheet xmlns="%s" xmlns:r="%s">`, nsMain, nsRelationships)

	lastRow := len(s.rows)
	if lastRow == 0 {
		lastRow = 1
	}
	fmt.Fprintf(&b, `<dimension ref="A1:%s"/>`, cellRef(lastRow-1, max(0, s.columns()-1)))
	b.WriteString(`<sheetViews><sheetView workbookViewId="0"/></sheetViews>`)
	b.WriteString(`<sheetFormatPr defaultRowHeight="15"/>`)

	if len(s.widths) > 0 {
		b.WriteString("<cols>")
		for i, w := range s.widths {
			fmt.Fprintf(&b, `<col min="%d" max="%d" width="%d" customWidth="1"/>`, i+1, i+1, w)
		}
		b.WriteString("</cols>")
	}

	b.WriteString("<sheetData>")
	for r, row := range s.rows {
		if len(row) == 0 {
			continue
		}
		fmt.Fprintf(&b, `<row r="%d">`, r+1)
		for c, v := range row {
			writeCell(&b, cellRef(r, c), v, ss)
		}
		b.WriteString("</row>")
	}
	b.WriteString("</sheetData>")

	if len(s.merges) > 0 {
		fmt.Fprintf(&b, `<mergeCells count="%d">`, len(s.merges))
		for _, m := range s.merges {
			fmt.Fprintf(&b, `<mergeCell ref="%s"/>`, m)
		}
		b.WriteString("</mergeCells>")
	}

	b.WriteString(`<pageMargins left="0.7" right="0.7" top="0.75" bottom="0.75" header="0.3" footer="0.3"/>`)
	b.WriteString("</worksheet>")
	return b.String()
}

func writeCell(b *strings.Builder, ref string, v cell, ss *sharedStrings) {
	style := ""
	if v.style != styleDefault {
		style = fmt.Sprintf(` s="%d"`, v.style)
	}
	switch v.kind {
	case cellString:
		fmt.Fprintf(b, `<c r="%s"%s t="s"><v>%d</v></c>`, ref, style, ss.add(v.text))
	case cellNumber:
		fmt.Fprintf(b, `<c r="%s"%s><v>%s</v></c>`, ref, style, v.number.String())
	case cellFormula:
		fmt.Fprintf(b, `<c r="%s"%s><f>%s</f><v>%s</v></c>`, ref, style, export.EscapeXML(v.formula), v.number.String())
	default:
		fmt.Fprintf(b, `<c r="%s"%s/>`, ref, style)
	}
}
