// Package xlsx synthesizes a single-sheet SpreadsheetML workbook from
// worklog rows.
package xlsx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/areas"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/export"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

	nsMain          = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// Defaults applied to zero-valued Options fields.
const (
	DefaultSheetName  = "Timesheet"
	DefaultWidthChars = 120
	DefaultCreator    = "timesheet"
)

// Archive entry names.
const (
	PathContentTypes  = "[Content_Types].xml"
	PathRootRels      = "_rels/.rels"
	PathAppProps      = "docProps/app.xml"
	PathCoreProps     = "docProps/core.xml"
	PathWorkbook      = "xl/workbook.xml"
	PathWorkbookRels  = "xl/_rels/workbook.xml.rels"
	PathStyles        = "xl/styles.xml"
	PathSharedStrings = "xl/sharedStrings.xml"
	PathSheet         = "xl/worksheets/sheet1.xml"
)

const maxSheetNameLen = 31

var sheetNameReplacer = strings.NewReplacer(
	"[", "_", "]", "_", ":", "_", "*", "_", "?", "_", "/", "_", `\`, "_",
)

// Options controls sheet layout and document properties.
type Options struct {
	Weekly        bool
	IncludeLegend bool

	SheetName  string
	WidthChars int // total width the column weights are spread over

	Creator string
	Created time.Time // omitted from core properties when zero
}

func (o Options) withDefaults() Options {
	o.SheetName = sanitizeSheetName(o.SheetName)
	o.WidthChars = domain.CoalesceInt(o.WidthChars, DefaultWidthChars)
	o.Creator = domain.CoalesceStr(o.Creator, DefaultCreator)
	return o
}

// sanitizeSheetName replaces characters Excel rejects in sheet names and
// truncates to the 31-character limit.
func sanitizeSheetName(name string) string {
	name = strings.TrimSpace(sheetNameReplacer.Replace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		return DefaultSheetName
	}
	if r := []rune(name); len(r) > maxSheetNameLen {
		name = string(r[:maxSheetNameLen])
	}
	return name
}

// Render builds the workbook: header, one row per worklog row, a "Summe" row
// whose hours cell sums the data rows with a formula, and an optional legend
// of the area entries referenced by rows. In weekly mode the date column is
// merged across rows that share a week.
func Render(rows []domain.WorklogRow, idx *areas.Index, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	table := export.Build(rows, idx, opts.Weekly, opts.IncludeLegend)
	sh := buildSheet(table, opts.WidthChars)

	ss := &sharedStrings{}
	sheetXML := sh.worksheetXML(ss)

	entries := []struct {
		name string
		data string
	}{
		{PathContentTypes, contentTypesXML},
		{PathRootRels, rootRelsXML},
		{PathAppProps, appPropsXML(opts.SheetName)},
		{PathCoreProps, corePropsXML(opts.Creator, opts.Created)},
		{PathWorkbook, workbookXML(opts.SheetName)},
		{PathWorkbookRels, workbookRelsXML},
		{PathStyles, stylesXML},
		{PathSharedStrings, ss.xml()},
		{PathSheet, sheetXML},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", e.name, err)
		}
		if _, err := io.WriteString(w, e.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

const contentTypesXML = xmlHeader +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>` +
	`<Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>` +
	`<Override PartName="/xl/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"/>` +
	`<Override PartName="/xl/sharedStrings.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const rootRelsXML = xmlHeader +
	`<Relationships xmlns="` + nsPackageRels + `">` +
	`<Relationship Id="rId1" Type="` + nsRelationships + `/officeDocument" Target="xl/workbook.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="` + nsRelationships + `/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const workbookRelsXML = xmlHeader +
	`<Relationships xmlns="` + nsPackageRels + `">` +
	`<Relationship Id="rId1" Type="` + nsRelationships + `/worksheet" Target="worksheets/sheet1.xml"/>` +
	`<Relationship Id="rId2" Type="` + nsRelationships + `/styles" Target="styles.xml"/>` +
	`<Relationship Id="rId3" Type="` + nsRelationships + `/sharedStrings" Target="sharedStrings.xml"/>` +
	`</Relationships>`

// stylesXML holds one font, the two mandatory fills, no border and a thin
// black border, and the cell formats indexed by the style* constants.
const stylesXML = xmlHeader +
	`<styleSheet xmlns="` + nsMain + `">` +
	`<fonts count="1"><font><sz val="11"/><name val="Calibri"/><family val="2"/></font></fonts>` +
	`<fills count="2"><fill><patternFill patternType="none"/></fill><fill><patternFill patternType="gray125"/></fill></fills>` +
	`<borders count="2">` +
	`<border><left/><right/><top/><bottom/><diagonal/></border>` +
	`<border>` +
	`<left style="thin"><color rgb="FF000000"/></left>` +
	`<right style="thin"><color rgb="FF000000"/></right>` +
	`<top style="thin"><color rgb="FF000000"/></top>` +
	`<bottom style="thin"><color rgb="FF000000"/></bottom>` +
	`<diagonal/></border>` +
	`</borders>` +
	`<cellStyleXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0"/></cellStyleXfs>` +
	`<cellXfs count="4">` +
	`<xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/>` +
	`<xf numFmtId="0" fontId="0" fillId="0" borderId="1" xfId="0" applyBorder="1"/>` +
	`<xf numFmtId="0" fontId="0" fillId="0" borderId="1" xfId="0" applyBorder="1" applyAlignment="1">` +
	`<alignment horizontal="center" vertical="center" wrapText="1"/></xf>` +
	`<xf numFmtId="2" fontId="0" fillId="0" borderId="1" xfId="0" applyNumberFormat="1" applyBorder="1"/>` +
	`</cellXfs>` +
	`<cellStyles count="1"><cellStyle name="Normal" xfId="0" builtinId="0"/></cellStyles>` +
	`</styleSheet>`

func workbookXML(sheetName string) string {
	return xmlHeader +
		`<workbook xmlns="` + nsMain + `" xmlns:r="` + nsRelationships + `">` +
		`<bookViews><workbookView/></bookViews>` +
		`<sheets><sheet name="` + export.EscapeXML(sheetName) + `" sheetId="1" r:id="rId1"/></sheets>` +
		`<calcPr calcId="191029" fullCalcOnLoad="1"/>` +
		`</workbook>`
}

func appPropsXML(sheetName string) string {
	return xmlHeader +
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" ` +
		`xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">` +
		`<Application>timesheet</Application>` +
		`<HeadingPairs><vt:vector size="2" baseType="variant">` +
		`<vt:variant><vt:lpstr>Worksheets</vt:lpstr></vt:variant>` +
		`<vt:variant><vt:i4>1</vt:i4></vt:variant>` +
		`</vt:vector></HeadingPairs>` +
		`<TitlesOfParts><vt:vector size="1" baseType="lpstr">` +
		`<vt:lpstr>` + export.EscapeXML(sheetName) + `</vt:lpstr>` +
		`</vt:vector></TitlesOfParts>` +
		`</Properties>`
}

func corePropsXML(creator string, created time.Time) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	b.WriteString("<dc:creator>" + export.EscapeXML(creator) + "</dc:creator>")
	if !created.IsZero() {
		stamp := created.UTC().Format(time.RFC3339)
		b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>`)
		b.WriteString(`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>`)
	}
	b.WriteString("</cp:coreProperties>")
	return b.String()
}
