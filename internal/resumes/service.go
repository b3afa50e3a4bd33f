package resumes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-intel/internal/pipeline"
	"resume-intel/internal/pipeline/gap"
	"resume-intel/internal/pipeline/rebuild"
	"resume-intel/internal/pipeline/score"
	"resume-intel/internal/pipeline/skills"
	"resume-intel/internal/shared/metrics"
	"resume-intel/internal/shared/storage/object"
	"resume-intel/internal/shared/telemetry"
)

// Service contains business logic for resumes: storage, extraction, and the
// analysis operations layered on top.
type Service struct {
	Store    object.ObjectStore
	Repo     Repo
	Pipeline *pipeline.Pipeline
}

// Upload saves the file, extracts its text, and records the resume. The raw
// bytes are buffered because extraction needs a second pass over them.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Resume, error) {
	if fileName == "" {
		return Resume{}, fmt.Errorf("%w: file name required", ErrInvalidInput)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Resume{}, fmt.Errorf("read upload: %w", err)
	}

	extracted, err := s.Pipeline.Extract(ctx, data, filepath.Ext(fileName))
	if err != nil {
		metrics.IncExtractionFailed()
		return Resume{}, err
	}
	metrics.IncUpload()

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Resume{}, err
	}

	res := Resume{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		Content:    extracted.Text,
		WordCount:  len(strings.Fields(extracted.Text)),
		Engine:     extracted.Engine,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, err
	}

	telemetry.Info("resume.uploaded", map[string]any{
		"resume_id": res.ID,
		"engine":    res.Engine,
		"words":     res.WordCount,
		"bytes":     res.SizeBytes,
	})
	return res, nil
}

// Analyze runs the full pipeline against a stored resume and persists the
// result. jobDescription may be empty.
func (s *Service) Analyze(ctx context.Context, userID, id, jobDescription string) (*pipeline.Analysis, error) {
	res, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	metrics.IncAnalysisStarted()
	started := time.Now()
	analysis, err := s.Pipeline.AnalyzeText(res.Content, jobDescription)
	if err != nil {
		metrics.IncAnalysisFailed()
		return nil, err
	}
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(started)) / float64(time.Millisecond))

	payload, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis: %w", err)
	}
	if err := s.Repo.SaveAnalysis(ctx, userID, id, payload, time.Now().UTC()); err != nil {
		return nil, err
	}

	telemetry.Info("resume.analyzed", map[string]any{
		"resume_id": id,
		"score":     analysis.Score.OverallScore,
		"skills":    len(analysis.Skills),
	})
	return analysis, nil
}

// ATSScore scores a stored resume without persisting a full analysis.
func (s *Service) ATSScore(ctx context.Context, userID, id, jobDescription string) (score.Breakdown, error) {
	res, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return score.Breakdown{}, err
	}
	analysis, err := s.Pipeline.AnalyzeText(res.Content, jobDescription)
	if err != nil {
		return score.Breakdown{}, err
	}
	return analysis.Score, nil
}

// Skills returns the categorized skill summary of a stored resume.
func (s *Service) Skills(ctx context.Context, userID, id string) ([]skills.CategorySummary, error) {
	res, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	analysis, err := s.Pipeline.AnalyzeText(res.Content, "")
	if err != nil {
		return nil, err
	}
	return analysis.Categories, nil
}

// List returns a user's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// AnalyzeText runs the pipeline on caller-provided text without storing
// anything.
func (s *Service) AnalyzeText(text, jobDescription string) (*pipeline.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text required", ErrInvalidInput)
	}
	return s.Pipeline.AnalyzeText(text, jobDescription)
}

// Convert reconstructs an ATS-friendly rendition of a stored resume.
func (s *Service) Convert(ctx context.Context, userID, id string, extraKeywords []string) (rebuild.Rebuilt, error) {
	res, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return rebuild.Rebuilt{}, err
	}
	return s.Pipeline.Convert(res.Content, extraKeywords), nil
}

// ConvertDOCX renders the reconstruction of a stored resume as DOCX bytes.
func (s *Service) ConvertDOCX(ctx context.Context, userID, id string, extraKeywords []string) ([]byte, error) {
	res, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.Pipeline.ConvertDOCX(res.Content, extraKeywords)
}

// ConvertUpload reconstructs an uploaded file without storing anything.
func (s *Service) ConvertUpload(ctx context.Context, fileName string, r io.Reader, extraKeywords []string) (rebuild.Rebuilt, error) {
	text, err := s.extractUpload(ctx, fileName, r)
	if err != nil {
		return rebuild.Rebuilt{}, err
	}
	return s.Pipeline.Convert(text, extraKeywords), nil
}

// ConvertUploadDOCX is ConvertUpload rendered as DOCX bytes.
func (s *Service) ConvertUploadDOCX(ctx context.Context, fileName string, r io.Reader, extraKeywords []string) ([]byte, error) {
	text, err := s.extractUpload(ctx, fileName, r)
	if err != nil {
		return nil, err
	}
	return s.Pipeline.ConvertDOCX(text, extraKeywords)
}

func (s *Service) extractUpload(ctx context.Context, fileName string, r io.Reader) (string, error) {
	if fileName == "" {
		return "", fmt.Errorf("%w: file name required", ErrInvalidInput)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	extracted, err := s.Pipeline.Extract(ctx, data, filepath.Ext(fileName))
	if err != nil {
		return "", err
	}
	return extracted.Text, nil
}

// LatestSkills returns the skill names from the user's most recently
// analyzed resume, for job recommendation queries.
func (s *Service) LatestSkills(ctx context.Context, userID string) ([]string, string, error) {
	res, err := s.Repo.GetLatestAnalyzed(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	var stored struct {
		Skills []skills.SkillRecord `json:"skills"`
	}
	if err := json.Unmarshal(res.AnalysisJSON, &stored); err != nil {
		return nil, "", fmt.Errorf("decode stored analysis: %w", err)
	}
	return skills.Names(stored.Skills), res.Content, nil
}

// MatchScore delegates to the pipeline's job-match scorer.
func (s *Service) MatchScore(resumeText string, resumeSkills []string, jobText string) gap.Match {
	return s.Pipeline.MatchScore(resumeText, resumeSkills, jobText)
}
