package resumes

import "time"

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ResumeID   string     `json:"resumeId"`
	FileName   string     `json:"fileName"`
	MimeType   string     `json:"mimeType"`
	SizeBytes  int64      `json:"sizeBytes"`
	WordCount  int        `json:"wordCount"`
	Engine     string     `json:"extractionEngine"`
	Analyzed   bool       `json:"analyzed"`
	UploadedAt time.Time  `json:"uploadedAt"`
	AnalyzedAt *time.Time `json:"analyzedAt,omitempty"`
}

func toResponse(res Resume) ResumeResponse {
	return ResumeResponse{
		ResumeID:   res.ID,
		FileName:   res.FileName,
		MimeType:   res.MimeType,
		SizeBytes:  res.SizeBytes,
		WordCount:  res.WordCount,
		Engine:     res.Engine,
		Analyzed:   res.Analyzed,
		UploadedAt: res.CreatedAt,
		AnalyzedAt: res.AnalyzedAt,
	}
}
