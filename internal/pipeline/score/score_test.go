package score

import (
	"strings"
	"testing"

	"resume-intel/internal/pipeline/skills"
	"resume-intel/internal/pipeline/taxonomy"
)

func newScorer(t *testing.T) *Scorer {
	t.Helper()
	return NewScorer(skills.NewMatcher(taxonomy.Default()))
}

var strongResume = `Jane Doe
jane@example.com
555-123-4567

SUMMARY
Experienced engineer who developed, designed, implemented, improved,
managed, optimized, launched, built and delivered large systems.

EXPERIENCE
Led a team project that increased throughput by 40% and reduced costs
by $200000 while serving 1000+ customers.

EDUCATION
Master of Science, State University, 2015

SKILLS
Python, Java, Go, JavaScript, TypeScript, React, Django, Flask,
PostgreSQL, MongoDB, Redis, Docker, Kubernetes, AWS, Terraform, Git
` + strings.Repeat("Additional detail about delivered work. ", 40)

func TestScoreBoundsAndWeights(t *testing.T) {
	s := newScorer(t)
	b := s.Score(strongResume, "Looking for Python and Go engineer with Docker and AWS")

	if b.OverallScore < 0 || b.OverallScore > 100 {
		t.Fatalf("overall score out of range: %d", b.OverallScore)
	}
	if len(b.Components) != 5 {
		t.Fatalf("expected 5 components, got %d", len(b.Components))
	}
	totalWeight := 0
	for _, c := range b.Components {
		totalWeight += c.Weight
		if c.Score < 0 || c.Score > 100 {
			t.Fatalf("component %s out of range: %d", c.Name, c.Score)
		}
		if c.Label == "" || c.Feedback == "" {
			t.Fatalf("component %s missing label or feedback", c.Name)
		}
	}
	if totalWeight != 100 {
		t.Fatalf("weights sum to %d, want 100", totalWeight)
	}
}

func TestScoreKeywordMatching(t *testing.T) {
	s := newScorer(t)
	b := s.Score(strongResume, "Requires Python, Go, Docker, Kubernetes and AWS experience")

	ka := b.KeywordAnalysis
	if len(ka.MatchedKeywords) == 0 {
		t.Fatal("expected matched keywords")
	}
	for _, kw := range ka.MatchedKeywords {
		if !strings.Contains(strings.ToLower(strongResume), kw) {
			t.Fatalf("matched keyword %q not present in resume", kw)
		}
	}
	if ka.MatchRate <= 0 || ka.MatchRate > 100 {
		t.Fatalf("match rate out of range: %v", ka.MatchRate)
	}
	if len(ka.MatchedKeywords) > 15 || len(ka.MissingKeywords) > 10 {
		t.Fatalf("keyword lists exceed caps: %d matched, %d missing",
			len(ka.MatchedKeywords), len(ka.MissingKeywords))
	}
}

func TestScoreWithoutJobDescription(t *testing.T) {
	s := newScorer(t)
	b := s.Score(strongResume, "")

	if b.KeywordAnalysis.GeneralKeywordsFound == 0 {
		t.Fatal("expected general keywords to be counted")
	}
	if len(b.KeywordAnalysis.MatchedKeywords) != 0 {
		t.Fatal("matched keywords should be empty without a job description")
	}
}

func TestScoreFormattingDeductions(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
	}{
		{
			name: "bare text loses section email phone and length points",
			text: "just a few words here",
			max:  50, // -20 sections, -15 short, -10 email, -5 phone
		},
		{
			name: "hostile characters cost a single flat deduction",
			text: strings.Repeat("experience education skills summary contact word ", 50) +
				"jane@example.com 555-123-4567 • | café A.B.C.",
			max: 95,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreFormatting(tt.text)
			if got.score > tt.max {
				t.Fatalf("score = %d, want <= %d", got.score, tt.max)
			}
		})
	}

	// Multiple hostile patterns must not each deduct.
	hostile := strings.Repeat("experience education skills summary contact word ", 50) +
		"jane@example.com 555-123-4567 • | A.B.C."
	clean := strings.Repeat("experience education skills summary contact word ", 50) +
		"jane@example.com 555-123-4567"
	if diff := scoreFormatting(clean).score - scoreFormatting(hostile).score; diff != 5 {
		t.Fatalf("hostile pattern deduction = %d, want flat 5", diff)
	}
}

func TestScoreExperienceVerbTiers(t *testing.T) {
	base := scoreExperience("nothing notable here").score
	if base != 60 {
		t.Fatalf("base experience score = %d, want 60", base)
	}
	some := scoreExperience("achieved improved developed created things").score
	if some != 75 {
		t.Fatalf("4-verb score = %d, want 75", some)
	}
	many := scoreExperience("achieved improved developed created managed led designed implemented").score
	if many != 85 {
		t.Fatalf("8-verb score = %d, want 85", many)
	}
	withMetrics := scoreExperience("achieved 40% growth, $2M revenue, 100+ users").score
	if withMetrics != 75 { // 60 base + 15 metrics
		t.Fatalf("metrics score = %d, want 75", withMetrics)
	}
}

func TestScoreEducationTiers(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"no credentials at all", 50},
		{"Bachelor of things", 80},
		{"Bachelor from State University", 95},
		{"Bachelor from State University, 2015", 100},
	}
	for _, tt := range tests {
		if got := scoreEducation(tt.text).score; got != tt.want {
			t.Fatalf("scoreEducation(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestRecommendationsOrderingAndCap(t *testing.T) {
	components := []ComponentScore{
		{Name: "keywords", Score: 65, Feedback: "f1"},
		{Name: "formatting", Score: 30, Feedback: "f2"},
		{Name: "experience", Score: 45, Feedback: "f3"},
		{Name: "education", Score: 69, Feedback: "f4"},
		{Name: "skills", Score: 10, Feedback: "f5"},
	}
	recs := recommendations(components)

	if len(recs) != 5 {
		t.Fatalf("expected 5 recommendations, got %d", len(recs))
	}
	if recs[0].Category != "skills" || recs[0].Priority != "high" {
		t.Fatalf("weakest component should lead: %+v", recs[0])
	}
	if recs[len(recs)-1].Category != "education" || recs[len(recs)-1].Priority != "medium" {
		t.Fatalf("near-threshold component should trail: %+v", recs[len(recs)-1])
	}
}

func TestRecommendationsAllHealthy(t *testing.T) {
	components := []ComponentScore{
		{Name: "keywords", Score: 80}, {Name: "formatting", Score: 90},
		{Name: "experience", Score: 75}, {Name: "education", Score: 70},
		{Name: "skills", Score: 95},
	}
	recs := recommendations(components)
	if len(recs) != 1 || recs[0].Category != "general" {
		t.Fatalf("expected single positive note, got %+v", recs)
	}
}

func TestScoreLabels(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, "Excellent"}, {90, "Excellent"}, {80, "Good"}, {75, "Good"},
		{65, "Fair"}, {60, "Fair"}, {59, "Needs Improvement"}, {0, "Needs Improvement"},
	}
	for _, tt := range tests {
		if got := scoreLabel(tt.score); got != tt.want {
			t.Fatalf("scoreLabel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
