// Package docx renders worklog rows into a Word template. The table replaces
// the template paragraph whose text is the placeholder marker; every other
// archive entry is copied through unchanged.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/alexanderramin/timesheet/internal/areas"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/export"
)

// DocumentPath is the archive entry holding the document body.
const DocumentPath = "word/document.xml"

// Defaults applied to zero-valued Options fields.
const (
	DefaultMarker             = "Tabelle"
	DefaultFontSizeHalfPoints = 16
	DefaultTableWidthDxa      = 9000
)

// Options controls table layout and placeholder lookup.
type Options struct {
	Weekly        bool
	IncludeLegend bool

	Marker             string // placeholder paragraph text
	FontSizeHalfPoints int
	TableWidthDxa      int // grid total the column weights are spread over
}

func (o Options) withDefaults() Options {
	o.Marker = domain.CoalesceStr(o.Marker, DefaultMarker)
	o.FontSizeHalfPoints = domain.CoalesceInt(o.FontSizeHalfPoints, DefaultFontSizeHalfPoints)
	o.TableWidthDxa = domain.CoalesceInt(o.TableWidthDxa, DefaultTableWidthDxa)
	return o
}

// Render returns a copy of template with the placeholder paragraph replaced by
// the worklog table and, when requested and non-empty, the area legend.
// A template that is not a zip archive, has no document body or no
// placeholder paragraph yields a *domain.TemplateStructureError.
func Render(template []byte, rows []domain.WorklogRow, idx *areas.Index, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, &domain.TemplateStructureError{Reason: "not a zip archive", Err: err}
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == DocumentPath {
			body = f
			break
		}
	}
	if body == nil {
		return nil, &domain.TemplateStructureError{Reason: "no " + DocumentPath}
	}

	doc, err := readEntry(body)
	if err != nil {
		return nil, &domain.TemplateStructureError{Reason: "read " + DocumentPath, Err: err}
	}

	placeholder, ok := findPlaceholder(doc, opts.Marker)
	if !ok {
		return nil, &domain.TemplateStructureError{
			Reason: fmt.Sprintf("could not find placeholder paragraph %q", opts.Marker),
		}
	}

	table := export.Build(rows, idx, opts.Weekly, opts.IncludeLegend)
	m := &markup{fontSize: opts.FontSizeHalfPoints}
	m.worklogTable(table, opts.TableWidthDxa)
	if table.HasLegend() {
		m.legend(table)
	}
	updated := doc[:placeholder.start] + m.String() + doc[placeholder.end:]

	return rewrite(zr, body, []byte(updated))
}

func readEntry(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// rewrite re-serializes zr in its original entry order, replacing the content
// of target and copying all other entries without recompression.
func rewrite(zr *zip.Reader, target *zip.File, content []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if zr.Comment != "" {
		if err := zw.SetComment(zr.Comment); err != nil {
			return nil, fmt.Errorf("set archive comment: %w", err)
		}
	}

	for _, f := range zr.File {
		if f != target {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copy %s: %w", f.Name, err)
			}
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   f.Method,
			Modified: f.Modified,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", f.Name, err)
		}
		if _, err := w.Write(content); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}
