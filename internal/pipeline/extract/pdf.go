package extract

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	layoutpdf "github.com/dslipak/pdf"
	"github.com/ledongthuc/pdf"
)

// pdfEngine is one extraction strategy with its acceptance threshold.
// Engines are tried in order; an attempt is accepted only when the cleaned
// output reaches minChars.
type pdfEngine struct {
	name     string
	minChars int
	run      func(data []byte) (string, error)
}

var pdfEngines = []pdfEngine{
	{name: "pdf-structured", minChars: 30, run: structuredPDFText},
	{name: "pdf-layout", minChars: 50, run: layoutPDFText},
	{name: "pdf-rawstream", minChars: 20, run: rawStreamPDFText},
}

// structuredPDFText is the primary engine: fast whole-document plain text.
func structuredPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// layoutPDFText walks page content fragments and reassembles reading order
// from glyph positions: rows grouped by Y within a tolerance, words sorted
// left to right. Slower, but recovers documents whose internal text stream
// order is scrambled.
func layoutPDFText(data []byte) (string, error) {
	reader, err := layoutpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		texts := page.Content().Text
		if len(texts) == 0 {
			continue
		}
		pages = append(pages, assembleRows(texts))
	}
	return strings.Join(pages, "\n\n"), nil
}

const rowYTolerance = 2.0

func assembleRows(texts []layoutpdf.Text) string {
	type row struct {
		y     float64
		cells []layoutpdf.Text
	}
	var rows []*row
	for _, t := range texts {
		var target *row
		for _, r := range rows {
			if t.Y >= r.y-rowYTolerance && t.Y <= r.y+rowYTolerance {
				target = r
				break
			}
		}
		if target == nil {
			target = &row{y: t.Y}
			rows = append(rows, target)
		}
		target.cells = append(target.cells, t)
	}

	// PDF Y grows upward, so higher Y comes first.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	var b strings.Builder
	for i, r := range rows {
		sort.SliceStable(r.cells, func(a, b int) bool { return r.cells[a].X < r.cells[b].X })
		if i > 0 {
			b.WriteByte('\n')
		}
		prevEnd := -1.0
		for _, c := range r.cells {
			// Insert a space when fragments are visibly separated.
			if prevEnd >= 0 && c.X-prevEnd > 1.0 && !strings.HasPrefix(c.S, " ") {
				b.WriteByte(' ')
			}
			b.WriteString(c.S)
			prevEnd = c.X + c.W
		}
	}
	return b.String()
}

var (
	streamPattern  = regexp.MustCompile(`(?s)stream\r?\n(.*?)endstream`)
	literalPattern = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)\s*Tj`)
	arrayPattern   = regexp.MustCompile(`\[((?:\\.|[^\\\]])*)\]\s*TJ`)
	arrayLiteral   = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)`)
)

// rawStreamPDFText is the last-resort engine: inflate every content stream
// and scrape string arguments of the Tj/TJ text-showing operators. It
// ignores encoding tables entirely, which is acceptable for the mostly
// ASCII resumes this engine exists to salvage.
func rawStreamPDFText(data []byte) (string, error) {
	matches := streamPattern.FindAllSubmatch(data, -1)
	if len(matches) == 0 {
		return "", fmt.Errorf("no content streams found")
	}

	var b strings.Builder
	for _, m := range matches {
		content := m[1]
		if inflated, err := inflate(content); err == nil {
			content = inflated
		}
		scrapeTextOperators(content, &b)
	}
	return b.String(), nil
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func scrapeTextOperators(content []byte, b *strings.Builder) {
	for _, m := range literalPattern.FindAllSubmatch(content, -1) {
		writePDFLiteral(b, m[1])
		b.WriteByte('\n')
	}
	for _, m := range arrayPattern.FindAllSubmatch(content, -1) {
		for _, lit := range arrayLiteral.FindAllSubmatch(m[1], -1) {
			writePDFLiteral(b, lit[1])
		}
		b.WriteByte('\n')
	}
}

func writePDFLiteral(b *strings.Builder, lit []byte) {
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(lit) {
			break
		}
		switch lit[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r', 'f', 'b':
			b.WriteByte(' ')
		default:
			b.WriteByte(lit[i])
		}
	}
}

var imageMarkers = [][]byte{
	[]byte("/Subtype /Image"),
	[]byte("/Subtype/Image"),
	[]byte("/DCTDecode"),
	[]byte("/JPXDecode"),
	[]byte("/CCITTFaxDecode"),
}

// hasEmbeddedImages reports whether the raw PDF bytes carry raster image
// objects, which distinguishes a scanned document from a broken one.
func hasEmbeddedImages(data []byte) bool {
	for _, marker := range imageMarkers {
		if bytes.Contains(data, marker) {
			return true
		}
	}
	return false
}
