package extract

import "errors"

var (
	// ErrUnsupportedFormat means the file extension is not one we can parse.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrExtractionFailed means every extraction engine was exhausted.
	ErrExtractionFailed = errors.New("text extraction failed")
	// ErrImageOnlyDocument means the document contains only raster images
	// (e.g. a scanned resume) and no extractable text.
	ErrImageOnlyDocument = errors.New("document contains only images")
)
