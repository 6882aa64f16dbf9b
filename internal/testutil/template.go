package testutil

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

const documentHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentTail = `<w:sectPr/></w:body></w:document>`

// PlaceholderBody is a document body with a heading, the "Tabelle" marker
// split over two runs, and a closing paragraph.
const PlaceholderBody = `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Stundenzettel</w:t></w:r></w:p>` +
	`<w:p w:rsidR="00AB12CD"><w:r><w:t xml:space="preserve"> Tab</w:t></w:r><w:r><w:t>elle </w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Unterschrift</w:t></w:r></w:p>`

type templateEntry struct {
	name string
	data string
}

type templateConfig struct {
	body       string
	noDocument bool
	extra      []templateEntry
}

// Template options
type TemplateOption func(*templateConfig)

// WithBody replaces the paragraphs inside <w:body>.
func WithBody(xml string) TemplateOption {
	return func(c *templateConfig) {
		c.body = xml
	}
}

func WithoutDocument() TemplateOption {
	return func(c *templateConfig) {
		c.noDocument = true
	}
}

func WithEntry(name, data string) TemplateOption {
	return func(c *templateConfig) {
		c.extra = append(c.extra, templateEntry{name: name, data: data})
	}
}

// NewTemplateDocx builds a minimal .docx archive whose body defaults to
// PlaceholderBody.
func NewTemplateDocx(t *testing.T, opts ...TemplateOption) []byte {
	t.Helper()
	cfg := templateConfig{body: PlaceholderBody}
	for _, opt := range opts {
		opt(&cfg)
	}

	entries := []templateEntry{
		{name: "[Content_Types].xml", data: `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`},
		{name: "_rels/.rels", data: `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`},
	}
	if !cfg.noDocument {
		entries = append(entries, templateEntry{name: "word/document.xml", data: documentHead + cfg.body + documentTail})
	}
	entries = append(entries, cfg.extra...)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("create %s: %v", e.name, err)
		}
		if _, err := io.WriteString(w, e.data); err != nil {
			t.Fatalf("write %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close template: %v", err)
	}
	return buf.Bytes()
}

// ReadEntry returns the content of one archive entry, failing the test when
// it is absent.
func ReadEntry(t *testing.T, archive []byte, name string) string {
	t.Helper()
	entries := ReadEntries(t, archive)
	data, ok := entries[name]
	if !ok {
		t.Fatalf("archive has no entry %s", name)
	}
	return data
}

// ReadEntries returns all archive entries by name.
func ReadEntries(t *testing.T, archive []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	out := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

// EntryNames lists archive entry names in stored order.
func EntryNames(t *testing.T, archive []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}
