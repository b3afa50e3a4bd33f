package resumes

import "time"

// Resume is an uploaded resume with its extracted text and, once analyzed,
// the serialized analysis result.
type Resume struct {
	ID           string
	UserID       string
	FileName     string
	MimeType     string
	SizeBytes    int64
	StorageKey   string
	Content      string
	WordCount    int
	Engine       string
	Analyzed     bool
	AnalysisJSON []byte
	CreatedAt    time.Time
	AnalyzedAt   *time.Time
}
