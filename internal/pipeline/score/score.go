// Package score predicts how a resume performs in applicant tracking
// systems. The overall score is a weighted blend of five component scores,
// each with its own heuristic.
package score

import (
	"regexp"
	"sort"
	"strings"

	"resume-intel/internal/pipeline/skills"
)

// Component weights. Keyword matching dominates because it is what ATS
// filters act on first.
const (
	weightKeywords   = 0.30
	weightFormatting = 0.25
	weightExperience = 0.20
	weightEducation  = 0.15
	weightSkills     = 0.10
)

const (
	maxMatchedKeywords = 15
	maxMissingKeywords = 10
	maxRecommendations = 5
)

// ComponentScore is one factor of the overall prediction.
type ComponentScore struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Weight   int    `json:"weight"` // percent
	Label    string `json:"label"`
	Feedback string `json:"feedback"`
}

// KeywordAnalysis details the resume/job keyword overlap. When no job
// description was supplied only GeneralKeywordsFound is populated.
type KeywordAnalysis struct {
	MatchedKeywords      []string `json:"matched_keywords,omitempty"`
	MissingKeywords      []string `json:"missing_keywords,omitempty"`
	MatchRate            float64  `json:"match_rate,omitempty"`
	GeneralKeywordsFound int      `json:"general_keywords_found,omitempty"`
}

// Recommendation is one actionable improvement suggestion.
type Recommendation struct {
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Breakdown is the full scoring result.
type Breakdown struct {
	OverallScore    int              `json:"overall_score"`
	Label           string           `json:"score_label"`
	Components      []ComponentScore `json:"breakdown"`
	Recommendations []Recommendation `json:"recommendations"`
	KeywordAnalysis KeywordAnalysis  `json:"keyword_analysis"`
}

// Scorer evaluates resumes against the five weighted factors.
type Scorer struct {
	matcher *skills.Matcher
}

// NewScorer builds a scorer backed by the given skill matcher.
func NewScorer(m *skills.Matcher) *Scorer {
	return &Scorer{matcher: m}
}

var requiredSections = []string{
	"experience", "education", "skills", "summary",
	"contact", "work history", "employment",
}

var actionVerbs = []string{
	"achieved", "improved", "developed", "created", "managed",
	"led", "designed", "implemented", "increased", "reduced",
	"launched", "built", "delivered", "optimized", "streamlined",
	"spearheaded", "orchestrated", "executed", "transformed",
}

var generalKeywords = []string{
	"experience", "developed", "managed", "team", "project",
	"skills", "implemented", "designed", "improved", "led",
}

// Patterns ATS parsers commonly mangle. Only the first hit costs points:
// one messy character class is the same repair job as three.
var hostilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[^\x00-\x7F]`),
	regexp.MustCompile(`\|`),
	regexp.MustCompile("[•‣◦]"),
	regexp.MustCompile(`(?:^|\s)(?:[A-Z]\.){2,}`),
}

var (
	emailPattern  = regexp.MustCompile(`\b[\w.-]+@[\w.-]+\.\w+\b`)
	phonePattern  = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	metricPattern = regexp.MustCompile(`\d+%|\$\d+|\d+\+`)
	yearPattern   = regexp.MustCompile(`(19|20)\d{2}`)
)

// Score produces the weighted ATS prediction. jobDescription may be empty,
// in which case keyword scoring falls back to general industry terms.
func (s *Scorer) Score(resumeText, jobDescription string) Breakdown {
	keywords, analysis := s.scoreKeywords(resumeText, jobDescription)
	formatting := scoreFormatting(resumeText)
	experience := scoreExperience(resumeText)
	education := scoreEducation(resumeText)
	skillsComp := s.scoreSkills(resumeText)

	components := []ComponentScore{
		finish("keywords", weightKeywords, keywords),
		finish("formatting", weightFormatting, formatting),
		finish("experience", weightExperience, experience),
		finish("education", weightEducation, education),
		finish("skills", weightSkills, skillsComp),
	}

	var weighted float64
	for _, c := range components {
		weighted += float64(c.Score) * float64(c.Weight) / 100
	}
	overall := clamp(int(weighted))

	return Breakdown{
		OverallScore:    overall,
		Label:           scoreLabel(overall),
		Components:      components,
		Recommendations: recommendations(components),
		KeywordAnalysis: analysis,
	}
}

type partial struct {
	score    int
	feedback string
}

func finish(name string, weight float64, p partial) ComponentScore {
	return ComponentScore{
		Name:     name,
		Score:    p.score,
		Weight:   int(weight * 100),
		Label:    componentLabels[name],
		Feedback: p.feedback,
	}
}

func (s *Scorer) scoreKeywords(resumeText, jobDescription string) (partial, KeywordAnalysis) {
	if strings.TrimSpace(jobDescription) == "" {
		lower := strings.ToLower(resumeText)
		found := 0
		for _, kw := range generalKeywords {
			if strings.Contains(lower, kw) {
				found++
			}
		}
		score := clamp(found*10 + 40)
		return partial{score, "Add job-specific keywords for better matching"},
			KeywordAnalysis{GeneralKeywordsFound: found}
	}

	resumeSet := skillSet(s.matcher.Extract(resumeText))
	jobSet := skillSet(s.matcher.Extract(jobDescription))

	var matched, missing []string
	matchRate := 50.0 // default when the job description yields no skills
	if len(jobSet) > 0 {
		for skill := range jobSet {
			if resumeSet[skill] {
				matched = append(matched, skill)
			} else {
				missing = append(missing, skill)
			}
		}
		sort.Strings(matched)
		sort.Strings(missing)
		matchRate = float64(len(matched)) / float64(len(jobSet)) * 100
	}

	score := clamp(int(matchRate) + 20)

	var feedback string
	switch {
	case matchRate >= 70:
		feedback = "Excellent keyword match with job description"
	case matchRate >= 50:
		feedback = "Good keyword coverage, consider adding missing terms"
	default:
		feedback = "Low keyword match - add more relevant skills"
	}

	return partial{score, feedback}, KeywordAnalysis{
		MatchedKeywords: head(matched, maxMatchedKeywords),
		MissingKeywords: head(missing, maxMissingKeywords),
		MatchRate:       round1(matchRate),
	}
}

func scoreFormatting(text string) partial {
	score := 100
	var issues []string
	lower := strings.ToLower(text)

	sectionsFound := 0
	for _, section := range requiredSections {
		if strings.Contains(lower, section) {
			sectionsFound++
		}
	}
	if sectionsFound < 3 {
		score -= 20
		issues = append(issues, "Missing key resume sections")
	}

	for _, pat := range hostilePatterns {
		if pat.MatchString(text) {
			score -= 5
			issues = append(issues, "Contains characters that may not parse correctly")
			break
		}
	}

	words := len(strings.Fields(text))
	if words < 200 {
		score -= 15
		issues = append(issues, "Resume appears too short")
	} else if words > 2000 {
		score -= 10
		issues = append(issues, "Resume may be too long for ATS")
	}

	if !emailPattern.MatchString(text) {
		score -= 10
		issues = append(issues, "No email address detected")
	}
	if !phonePattern.MatchString(text) {
		score -= 5
		issues = append(issues, "No phone number detected")
	}

	feedback := "Well-formatted resume structure"
	if len(issues) > 0 {
		feedback = issues[0]
	}
	return partial{clamp(score), feedback}
}

func scoreExperience(text string) partial {
	lower := strings.ToLower(text)
	score := 60

	verbs := 0
	for _, v := range actionVerbs {
		if strings.Contains(lower, v) {
			verbs++
		}
	}

	var feedback string
	switch {
	case verbs >= 8:
		score += 25
		feedback = "Strong use of action verbs"
	case verbs >= 4:
		score += 15
		feedback = "Good action verb usage, could add more"
	default:
		feedback = "Add more action verbs to describe achievements"
	}

	metrics := metricPattern.FindAllString(text, -1)
	if len(metrics) >= 3 {
		score += 15
		feedback = "Excellent use of quantifiable metrics"
	} else if len(metrics) >= 1 {
		score += 8
	}

	return partial{clamp(score), feedback}
}

var degreeKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "mba",
	"b.s.", "m.s.", "b.a.", "m.a.", "degree",
}

var institutionKeywords = []string{"university", "college", "institute", "school"}

func scoreEducation(text string) partial {
	lower := strings.ToLower(text)
	score := 50

	hasDegree := containsAny(lower, degreeKeywords)
	if hasDegree {
		score += 30
	}
	hasInstitution := containsAny(lower, institutionKeywords)
	if hasInstitution {
		score += 15
	}
	if yearPattern.MatchString(text) {
		score += 5
	}

	var feedback string
	switch {
	case hasDegree && hasInstitution:
		feedback = "Education section is complete"
	case hasDegree:
		feedback = "Consider adding institution details"
	default:
		feedback = "Add formal education credentials"
	}
	return partial{clamp(score), feedback}
}

func (s *Scorer) scoreSkills(text string) partial {
	total := len(s.matcher.Extract(text))

	switch {
	case total >= 15:
		return partial{95, "Comprehensive skills section"}
	case total >= 10:
		return partial{85, "Good skills coverage"}
	case total >= 5:
		return partial{70, "Consider adding more relevant skills"}
	default:
		return partial{50, "Skills section needs improvement"}
	}
}

// recommendations surfaces the weakest factors first, capped at five. A
// single positive note is returned when every factor clears 70.
func recommendations(components []ComponentScore) []Recommendation {
	sorted := make([]ComponentScore, len(components))
	copy(sorted, components)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })

	var out []Recommendation
	allGood := true
	for _, c := range sorted {
		if c.Score >= 70 {
			continue
		}
		allGood = false
		priority := "medium"
		if c.Score < 50 {
			priority = "high"
		}
		out = append(out, Recommendation{
			Category:    c.Name,
			Priority:    priority,
			Title:       recommendationTitles[c.Name],
			Description: c.Feedback,
			Icon:        recommendationIcons[c.Name],
		})
	}

	if allGood {
		out = append(out, Recommendation{
			Category:    "general",
			Priority:    "low",
			Title:       "Great Job!",
			Description: "Your resume is well-optimized for ATS systems",
			Icon:        "check-circle",
		})
	}
	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	return out
}

var componentLabels = map[string]string{
	"keywords":   "Keyword Optimization",
	"formatting": "Format & Structure",
	"experience": "Experience Relevance",
	"education":  "Education Match",
	"skills":     "Skills Coverage",
}

var recommendationTitles = map[string]string{
	"keywords":   "Add More Keywords",
	"formatting": "Improve Resume Structure",
	"experience": "Enhance Experience Section",
	"education":  "Complete Education Details",
	"skills":     "Expand Skills Section",
}

var recommendationIcons = map[string]string{
	"keywords":   "search",
	"formatting": "file-text",
	"experience": "briefcase",
	"education":  "graduation-cap",
	"skills":     "tools",
}

func scoreLabel(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	case score >= 60:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func skillSet(records []skills.SkillRecord) map[string]bool {
	set := make(map[string]bool, len(records))
	for _, r := range records {
		set[strings.ToLower(r.Name)] = true
	}
	return set
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}
