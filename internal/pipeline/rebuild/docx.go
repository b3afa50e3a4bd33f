package rebuild

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"resume-intel/internal/pipeline/segment"
)

// A .docx file is a zip package; these three parts are the minimum a word
// processor (or an ATS parser) needs to open it.
const (
	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

	docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

	docxDocumentOpen = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

	docxDocumentClose = `<w:sectPr/></w:body></w:document>`
)

// RenderDOCX produces a single-column Word document from a rebuilt resume.
// Layout stays deliberately plain: centered contact block, bold headings,
// dash lines kept as literal text. No tables, columns, or colored text, all
// of which are known ATS parsing hazards.
func RenderDOCX(r Rebuilt) ([]byte, error) {
	var body strings.Builder

	for _, key := range r.Order {
		content := r.Sections[key]
		if content == "" {
			continue
		}

		if key == segment.KeyContact {
			for _, line := range strings.Split(content, "\n") {
				writeParagraph(&body, line, paragraphOpts{centered: true})
			}
			continue
		}

		writeParagraph(&body, strings.ToUpper(key), paragraphOpts{bold: true})
		for _, line := range strings.Split(content, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			writeParagraph(&body, line, paragraphOpts{})
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", docxDocumentOpen + body.String() + docxDocumentClose},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("render docx: %w", err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("render docx: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}
	return buf.Bytes(), nil
}

type paragraphOpts struct {
	centered bool
	bold     bool
}

func writeParagraph(b *strings.Builder, text string, opts paragraphOpts) {
	b.WriteString("<w:p>")
	if opts.centered {
		b.WriteString(`<w:pPr><w:jc w:val="center"/></w:pPr>`)
	}
	b.WriteString("<w:r>")
	if opts.bold {
		b.WriteString("<w:rPr><w:b/></w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(escapeXML(text))
	b.WriteString("</w:t></w:r></w:p>")
}

func escapeXML(s string) string {
	var b bytes.Buffer
	// EscapeText only fails on a broken writer, which bytes.Buffer is not.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
