// Package gap compares resume skills against a job description, reporting
// which skills are missing and how important each one is to the posting.
package gap

import (
	"strings"

	"resume-intel/internal/pipeline/taxonomy"
)

const (
	// Skills found within this many characters of a required/preferred
	// keyword inherit that keyword's importance.
	proximityWindow = 300

	minJobDescriptionChars = 20

	maxCritical    = 10
	maxRecommended = 8
	maxSoft        = 5
)

// Report is the outcome of a gap analysis. Critical/Recommended/Soft hold
// missing skills only; matched skills are listed separately.
type Report struct {
	Critical          []string `json:"critical"`
	Recommended       []string `json:"recommended"`
	Soft              []string `json:"soft"`
	MatchPercentage   int      `json:"match_percentage"`
	TotalJobSkills    int      `json:"total_job_skills"`
	MatchedSkills     int      `json:"matched_skills"`
	MatchedSkillsList []string `json:"matched_skills_list"`
	HasJobDescription bool     `json:"has_job_description"`
}

// Analyzer classifies job-description skills and computes match scores.
type Analyzer struct {
	tax *taxonomy.Taxonomy
}

// NewAnalyzer builds an analyzer over the given taxonomy.
func NewAnalyzer(tax *taxonomy.Taxonomy) *Analyzer {
	return &Analyzer{tax: tax}
}

var requiredKeywords = []string{
	"required", "must have", "must-have", "essential",
	"mandatory", "necessary", "need to have", "requirements",
	"qualifications", "you have", "you bring",
}

var preferredKeywords = []string{
	"preferred", "nice to have", "nice-to-have", "bonus",
	"plus", "advantage", "ideally", "optional", "desired",
	"good to have", "beneficial",
}

// Analyze reports the skills a job description asks for that the resume
// lacks. A missing or near-empty job description degrades to generic
// suggestions instead of failing.
func (a *Analyzer) Analyze(resumeSkills []string, jobDescription string) Report {
	if len(strings.TrimSpace(jobDescription)) < minJobDescriptionChars {
		return defaultSuggestions(resumeSkills)
	}

	resumeSet := lowerSet(resumeSkills)
	jobSkills := a.skillsInText(jobDescription)
	critical, recommended, soft := a.categorize(jobSkills, jobDescription)

	report := Report{HasJobDescription: true, TotalJobSkills: len(jobSkills)}

	var missingCritical, missingRecommended, missingSoft []string
	for _, skill := range critical {
		if resumeSet[strings.ToLower(skill)] {
			report.MatchedSkillsList = append(report.MatchedSkillsList, skill)
		} else {
			missingCritical = append(missingCritical, skill)
		}
	}
	for _, skill := range recommended {
		if resumeSet[strings.ToLower(skill)] {
			report.MatchedSkillsList = append(report.MatchedSkillsList, skill)
		} else {
			missingRecommended = append(missingRecommended, skill)
		}
	}
	for _, skill := range soft {
		if resumeSet[strings.ToLower(skill)] {
			report.MatchedSkillsList = append(report.MatchedSkillsList, skill)
		} else {
			missingSoft = append(missingSoft, skill)
		}
	}

	report.Critical = truncate(missingCritical, maxCritical)
	report.Recommended = truncate(missingRecommended, maxRecommended)
	report.Soft = truncate(missingSoft, maxSoft)
	report.MatchedSkills = len(report.MatchedSkillsList)
	if report.TotalJobSkills > 0 {
		report.MatchPercentage = roundPct(report.MatchedSkills, report.TotalJobSkills)
	}
	return report
}

// skillsInText finds taxonomy skills in text, deduplicated, in taxonomy
// declaration order so results are stable.
func (a *Analyzer) skillsInText(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var out []string
	for _, cs := range a.tax.AllSkills() {
		key := strings.ToLower(cs.Skill)
		if seen[key] {
			continue
		}
		if a.tax.Matches(lower, cs.Skill) {
			seen[key] = true
			out = append(out, cs.Skill)
		}
	}
	return out
}

// categorize buckets job skills by importance. Soft skills always go to the
// soft bucket; technical skills near a required-class keyword are critical,
// near a preferred-class keyword recommended, and critical by default when
// neither keyword class appears nearby.
func (a *Analyzer) categorize(skills []string, jobDescription string) (critical, recommended, soft []string) {
	lower := strings.ToLower(jobDescription)

	for _, skill := range skills {
		if a.tax.IsSoftSkill(skill) {
			soft = append(soft, skill)
			continue
		}

		switch {
		case nearKeyword(lower, skill, requiredKeywords):
			critical = append(critical, skill)
		case nearKeyword(lower, skill, preferredKeywords):
			recommended = append(recommended, skill)
		default:
			critical = append(critical, skill)
		}
	}
	return critical, recommended, soft
}

func nearKeyword(lowerText, skill string, keywords []string) bool {
	skillPos := strings.Index(lowerText, strings.ToLower(skill))
	if skillPos < 0 {
		return false
	}
	for _, kw := range keywords {
		kwPos := strings.Index(lowerText, kw)
		if kwPos < 0 {
			continue
		}
		if abs(skillPos-kwPos) < proximityWindow {
			return true
		}
	}
	return false
}

// Generic suggestions used when no usable job description exists.
var (
	commonCritical = []string{
		"Docker", "Kubernetes", "CI/CD", "AWS", "Git",
		"REST API", "SQL", "Agile", "Unit Testing",
	}
	commonRecommended = []string{
		"GraphQL", "Microservices", "TypeScript", "Redis",
		"Terraform", "Monitoring", "Security",
	}
	commonSoft = []string{
		"Leadership", "Communication", "Problem Solving",
		"Team Collaboration", "Project Management",
	}
)

func defaultSuggestions(resumeSkills []string) Report {
	have := lowerSet(resumeSkills)
	filter := func(candidates []string, limit int) []string {
		var out []string
		for _, c := range candidates {
			if !have[strings.ToLower(c)] {
				out = append(out, c)
			}
		}
		return truncate(out, limit)
	}
	return Report{
		Critical:          filter(commonCritical, 5),
		Recommended:       filter(commonRecommended, 4),
		Soft:              filter(commonSoft, 3),
		MatchedSkillsList: []string{},
	}
}

func lowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[strings.ToLower(s)] = true
	}
	return set
}

func truncate(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func roundPct(part, total int) int {
	return (part*100 + total/2) / total
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
