package skills

import (
	"strings"
	"testing"

	"resume-intel/internal/pipeline/taxonomy"
)

func newMatcher(t *testing.T) *Matcher {
	t.Helper()
	return NewMatcher(taxonomy.Default())
}

func TestExtractBoundaryMatching(t *testing.T) {
	m := newMatcher(t)

	tests := []struct {
		name    string
		text    string
		present []string
		absent  []string
	}{
		{
			name:    "java not matched inside javascript",
			text:    "Expert in JavaScript and TypeScript.",
			present: []string{"javascript", "typescript"},
			absent:  []string{"java"},
		},
		{
			name:    "java matched standalone",
			text:    "Languages: Java, Kotlin",
			present: []string{"java", "kotlin"},
		},
		{
			name:    "punctuation delimiters",
			text:    "stack (python/django); databases: postgresql.",
			present: []string{"python", "django", "postgresql"},
		},
		{
			name:   "substring inside word rejected",
			text:   "I worked on a goroutine scheduler",
			absent: []string{"go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make(map[string]bool)
			for _, r := range m.Extract(tt.text) {
				got[strings.ToLower(r.Name)] = true
			}
			for _, want := range tt.present {
				if !got[want] {
					t.Fatalf("expected %q in matches, got %v", want, got)
				}
			}
			for _, skip := range tt.absent {
				if got[skip] {
					t.Fatalf("did not expect %q in matches", skip)
				}
			}
		})
	}
}

func TestExtractDeduplicatesWithinCategory(t *testing.T) {
	m := newMatcher(t)
	records := m.Extract("python python PYTHON Python")

	count := 0
	for _, r := range records {
		if strings.EqualFold(r.Name, "python") {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("python matched %d times, want 1", count)
	}
}

func TestCategorizeScores(t *testing.T) {
	m := newMatcher(t)
	summaries := m.Categorize("python java go rust c++ c# typescript kotlin swift ruby php scala javascript")

	var prog *CategorySummary
	for i := range summaries {
		if summaries[i].Category == "programming" {
			prog = &summaries[i]
		}
	}
	if prog == nil {
		t.Fatal("programming category not found")
	}
	if prog.Score > 100 {
		t.Fatalf("score %d exceeds 100", prog.Score)
	}
	if prog.Score < 50 {
		t.Fatalf("score %d below floor of 50", prog.Score)
	}
	if prog.Count != len(prog.Skills) {
		t.Fatalf("count %d != len(skills) %d", prog.Count, len(prog.Skills))
	}
}

func TestExtractEmptyText(t *testing.T) {
	m := newMatcher(t)
	if got := m.Extract("   \n  "); got != nil {
		t.Fatalf("expected nil for blank text, got %v", got)
	}
}

func TestExtractExperience(t *testing.T) {
	text := `Senior Software Engineer at Acme Technologies
Jan 2019 - Present
Led a platform team.

Backend Developer at Initech Corp
2015 - 2018`

	got := ExtractExperience(text)
	if len(got) == 0 {
		t.Fatal("no experience entries extracted")
	}
	if len(got) > 5 {
		t.Fatalf("entries exceed cap: %d", len(got))
	}
	if got[0].Title == "" {
		t.Fatal("first entry missing title")
	}
}

func TestExtractEducation(t *testing.T) {
	text := `EDUCATION
Master of Science in Computer Science, State University, 2016
Bachelor of Arts, City College, 2012`

	got := ExtractEducation(text)
	if len(got) == 0 {
		t.Fatal("no education entries extracted")
	}
	if len(got) > 3 {
		t.Fatalf("entries exceed cap: %d", len(got))
	}
	if !strings.Contains(strings.ToLower(got[0].Degree), "master") {
		t.Fatalf("first degree = %q, want a master's", got[0].Degree)
	}
	if got[0].Year == "" {
		t.Fatal("first entry missing year")
	}
}

func TestNamesDeduplicates(t *testing.T) {
	records := []SkillRecord{
		{Name: "python", Category: "programming"},
		{Name: "Python", Category: "data_science"},
		{Name: "docker", Category: "cloud_devops"},
	}
	got := Names(records)
	if len(got) != 2 {
		t.Fatalf("Names() = %v, want 2 unique entries", got)
	}
}
