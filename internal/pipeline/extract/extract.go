// Package extract converts uploaded resume files (PDF, DOCX, TXT) into
// cleaned plain text. PDF extraction tries multiple engines in priority
// order and falls through on low-quality output, timeouts, or panics.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ExtractedText is the result of one extraction. Immutable once produced.
type ExtractedText struct {
	Text        string  `json:"text"`
	Engine      string  `json:"extraction_engine"`
	Quality     Quality `json:"quality"`
	IsImageOnly bool    `json:"is_image_only"`
}

// Quality summarizes how much usable text an engine produced.
type Quality struct {
	Chars         int `json:"chars"`
	NonemptyLines int `json:"nonempty_lines"`
}

// DefaultEngineBudget bounds a single engine attempt.
const DefaultEngineBudget = 10 * time.Second

// Extractor picks the parsing strategy from the file extension.
type Extractor struct {
	// EngineBudget bounds each engine attempt; zero means DefaultEngineBudget.
	EngineBudget time.Duration
}

// New constructs an Extractor with default settings.
func New() *Extractor {
	return &Extractor{EngineBudget: DefaultEngineBudget}
}

// Extract parses data according to ext (".pdf", ".docx", ".txt", with or
// without the leading dot, case-insensitive) and returns cleaned text.
func (e *Extractor) Extract(ctx context.Context, data []byte, ext string) (ExtractedText, error) {
	if err := ctx.Err(); err != nil {
		return ExtractedText{}, err
	}

	switch normalizeExt(ext) {
	case ".pdf":
		return e.extractPDF(ctx, data)
	case ".docx":
		return e.extractDOCX(data)
	case ".txt":
		return e.extractTXT(data)
	case ".doc":
		return ExtractedText{}, fmt.Errorf("%w: legacy .doc files are not readable, convert to DOCX or PDF", ErrUnsupportedFormat)
	default:
		return ExtractedText{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func (e *Extractor) extractPDF(ctx context.Context, data []byte) (ExtractedText, error) {
	budget := e.EngineBudget
	if budget <= 0 {
		budget = DefaultEngineBudget
	}

	for _, attempt := range pdfEngines {
		text, err := runEngine(ctx, budget, data, attempt.run)
		if err != nil {
			continue
		}
		cleaned := CleanText(text)
		if len(cleaned) >= attempt.minChars {
			return result(cleaned, attempt.name), nil
		}
	}

	// Every engine yielded nothing usable. A scanned resume is a distinct,
	// actionable outcome rather than a generic failure.
	if hasEmbeddedImages(data) {
		return ExtractedText{Engine: "none", IsImageOnly: true}, ErrImageOnlyDocument
	}
	return ExtractedText{}, fmt.Errorf("%w: all pdf engines exhausted", ErrExtractionFailed)
}

func (e *Extractor) extractDOCX(data []byte) (ExtractedText, error) {
	text, err := docxText(data)
	if err != nil {
		return ExtractedText{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	cleaned := CleanText(text)
	if cleaned == "" {
		return ExtractedText{}, fmt.Errorf("%w: empty docx body", ErrExtractionFailed)
	}
	return result(cleaned, "docx-xml"), nil
}

func (e *Extractor) extractTXT(data []byte) (ExtractedText, error) {
	text, err := decodeText(data)
	if err != nil {
		return ExtractedText{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	cleaned := CleanText(text)
	if cleaned == "" {
		return ExtractedText{}, fmt.Errorf("%w: empty text file", ErrExtractionFailed)
	}
	return result(cleaned, "plaintext"), nil
}

func result(cleaned, engine string) ExtractedText {
	return ExtractedText{
		Text:    cleaned,
		Engine:  engine,
		Quality: measure(cleaned),
	}
}

func measure(text string) Quality {
	q := Quality{Chars: len(text)}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			q.NonemptyLines++
		}
	}
	return q
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Ext("f" + ext)
}

// runEngine executes one engine attempt under a time budget, converting
// panics and timeouts into ordinary errors so the chain can fall through.
func runEngine(ctx context.Context, budget time.Duration, data []byte, fn func([]byte) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				ch <- outcome{err: fmt.Errorf("engine panic: %v", rec)}
			}
		}()
		text, err := fn(data)
		ch <- outcome{text: text, err: err}
	}()

	select {
	case out := <-ch:
		return out.text, out.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
