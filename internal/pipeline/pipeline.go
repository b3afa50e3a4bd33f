// Package pipeline wires the resume analysis stages together: extract,
// segment, match, score, and gap analysis. One document in, one result out;
// the only shared state is the read-only taxonomy, so a single Pipeline is
// safe for concurrent use.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-intel/internal/pipeline/extract"
	"resume-intel/internal/pipeline/gap"
	"resume-intel/internal/pipeline/rebuild"
	"resume-intel/internal/pipeline/score"
	"resume-intel/internal/pipeline/segment"
	"resume-intel/internal/pipeline/skills"
	"resume-intel/internal/pipeline/taxonomy"
)

var (
	// ErrInsufficientText means extraction succeeded but produced too little
	// text for the analysis heuristics to be meaningful.
	ErrInsufficientText = errors.New("extracted text too short for analysis")

	// ErrAnalysisFailure wraps unexpected failures inside the scoring or
	// matching stages.
	ErrAnalysisFailure = errors.New("analysis engine failure")
)

const minAnalyzableChars = 100

// Analysis is the full pipeline output for one document.
type Analysis struct {
	Extraction extract.ExtractedText    `json:"extraction"`
	WordCount  int                      `json:"word_count"`
	Sections   map[string]string        `json:"sections"`
	Skills     []skills.SkillRecord     `json:"skills"`
	Categories []skills.CategorySummary `json:"skill_categories"`
	Experience []skills.Experience      `json:"experience"`
	Education  []skills.Education       `json:"education"`
	Score      score.Breakdown          `json:"ats_score"`
	Gap        gap.Report               `json:"gap_report"`
}

// Pipeline owns the analysis stages.
type Pipeline struct {
	extractor *extract.Extractor
	matcher   *skills.Matcher
	scorer    *score.Scorer
	analyzer  *gap.Analyzer
}

// New builds a pipeline with the default taxonomy and engine budgets.
func New() *Pipeline {
	tax := taxonomy.Default()
	matcher := skills.NewMatcher(tax)
	return &Pipeline{
		extractor: extract.New(),
		matcher:   matcher,
		scorer:    score.NewScorer(matcher),
		analyzer:  gap.NewAnalyzer(tax),
	}
}

// NewWithEngineBudget builds a pipeline with a custom per-engine extraction
// budget. A non-positive budget keeps the default.
func NewWithEngineBudget(budget time.Duration) *Pipeline {
	p := New()
	if budget > 0 {
		p.extractor.EngineBudget = budget
	}
	return p
}

// Extract converts raw file bytes into cleaned text without analyzing.
func (p *Pipeline) Extract(ctx context.Context, data []byte, ext string) (extract.ExtractedText, error) {
	return p.extractor.Extract(ctx, data, ext)
}

// Analyze runs the full pipeline on raw file bytes. jobDescription may be
// empty; scoring then degrades to its general mode.
func (p *Pipeline) Analyze(ctx context.Context, data []byte, ext, jobDescription string) (*Analysis, error) {
	extracted, err := p.extractor.Extract(ctx, data, ext)
	if err != nil {
		return nil, err
	}
	analysis, err := p.AnalyzeText(extracted.Text, jobDescription)
	if err != nil {
		return nil, err
	}
	analysis.Extraction = extracted
	return analysis, nil
}

// AnalyzeText runs every stage after extraction on pre-extracted text.
func (p *Pipeline) AnalyzeText(text, jobDescription string) (analysis *Analysis, err error) {
	cleaned := extract.CleanText(text)
	if len(cleaned) < minAnalyzableChars {
		return nil, fmt.Errorf("%w: got %d characters, need %d",
			ErrInsufficientText, len(cleaned), minAnalyzableChars)
	}

	// The stage heuristics are regex-heavy; a panic on pathological input
	// must surface as a structured error, never crash the caller.
	defer func() {
		if r := recover(); r != nil {
			analysis = nil
			err = fmt.Errorf("%w: %v", ErrAnalysisFailure, r)
		}
	}()

	sections := segment.Segment(cleaned)
	sectionContent := make(map[string]string, sections.Len())
	for _, key := range sections.Keys() {
		content, _ := sections.Get(key)
		sectionContent[key] = content
	}

	records := p.matcher.Extract(cleaned)

	return &Analysis{
		Extraction: extract.ExtractedText{Text: cleaned, Engine: "provided"},
		WordCount:  len(strings.Fields(cleaned)),
		Sections:   sectionContent,
		Skills:     records,
		Categories: p.matcher.Categorize(cleaned),
		Experience: skills.ExtractExperience(cleaned),
		Education:  skills.ExtractEducation(cleaned),
		Score:      p.scorer.Score(cleaned, jobDescription),
		Gap:        p.analyzer.Analyze(skills.Names(records), jobDescription),
	}, nil
}

// MatchScore ranks pre-analyzed resume content against one job posting.
func (p *Pipeline) MatchScore(resumeText string, resumeSkills []string, jobText string) gap.Match {
	return p.analyzer.MatchScore(resumeText, resumeSkills, jobText)
}

// Convert reconstructs an ATS-friendly rendition of the text, appending any
// extra keywords to the skills section.
func (p *Pipeline) Convert(text string, extraKeywords []string) rebuild.Rebuilt {
	return rebuild.Rebuild(segment.Segment(extract.CleanText(text)), extraKeywords)
}

// ConvertDOCX renders the reconstruction as a Word document.
func (p *Pipeline) ConvertDOCX(text string, extraKeywords []string) ([]byte, error) {
	return rebuild.RenderDOCX(p.Convert(text, extraKeywords))
}
