package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// docxText unpacks word/document.xml and walks its tokens. Paragraphs become
// lines; table cells are flattened so each table row becomes one
// pipe-delimited line, which keeps tabular skill grids readable by the
// downstream heuristics.
func docxText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("word/document.xml not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return flattenDocumentXML(raw)
}

func flattenDocumentXML(raw []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))

	var (
		out       strings.Builder
		para      strings.Builder
		rowCells  []string
		cell      strings.Builder
		tableDoc  int // nesting depth of w:tbl
		inCell    bool
		wroteLine bool
	)

	writeLine := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		if wroteLine {
			out.WriteByte('\n')
		}
		out.WriteString(line)
		wroteLine = true
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDoc++
			case "tr":
				rowCells = rowCells[:0]
			case "tc":
				inCell = true
				cell.Reset()
			}
		case xml.CharData:
			if inCell {
				cell.Write(t)
			} else {
				para.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p", "br":
				if inCell {
					cell.WriteByte(' ')
				} else {
					writeLine(para.String())
					para.Reset()
				}
			case "tc":
				inCell = false
				if text := strings.TrimSpace(cell.String()); text != "" {
					rowCells = append(rowCells, text)
				}
			case "tr":
				if len(rowCells) > 0 {
					writeLine(strings.Join(rowCells, " | "))
				}
			case "tbl":
				if tableDoc > 0 {
					tableDoc--
				}
			}
		}
	}
	writeLine(para.String())

	return out.String(), nil
}
