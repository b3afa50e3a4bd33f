package segment

import (
	"strings"
	"testing"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567
linkedin.com/in/janedoe

SUMMARY
Backend engineer with eight years of experience building APIs.

EXPERIENCE
Senior Engineer, Acme Corp (2019-2024)
- Built payment services in Go and Python

EDUCATION
B.S. Computer Science, State University

SKILLS
Go, Python, PostgreSQL, Docker
`

func TestSegmentRecognizesCanonicalSections(t *testing.T) {
	sections := Segment(sampleResume)

	for _, key := range []string{KeyContact, KeySummary, KeyExperience, KeyEducation, KeySkills} {
		if _, ok := sections.Get(key); !ok {
			t.Fatalf("missing section %q, got keys %v", key, sections.Keys())
		}
	}

	exp, _ := sections.Get(KeyExperience)
	if !strings.Contains(exp, "Acme Corp") {
		t.Fatalf("experience content misplaced: %q", exp)
	}
	skills, _ := sections.Get(KeySkills)
	if !strings.Contains(skills, "PostgreSQL") {
		t.Fatalf("skills content misplaced: %q", skills)
	}
}

func TestSegmentContactAlwaysPresent(t *testing.T) {
	sections := Segment("just a single line of text with nothing else")
	if _, ok := sections.Get(KeyContact); !ok {
		t.Fatal("contact section must always exist")
	}
}

func TestSegmentFirstLineNeverHeader(t *testing.T) {
	// A resume whose owner is unfortunately named after a section.
	text := "SKILLS\nother content here\n\nEXPERIENCE\nworked somewhere for years"
	sections := Segment(text)

	exp, _ := sections.Get(KeyExperience)
	if !strings.Contains(exp, "worked somewhere") {
		t.Fatalf("experience not recognized: %q", exp)
	}
	if _, ok := sections.Get(KeySkills); ok {
		t.Fatal("first line must not open a skills section")
	}
}

func TestSegmentProtectedZoneRequiresCapitals(t *testing.T) {
	// "Education" in mixed case within the first lines is likely part of a
	// headline, not a header.
	text := strings.Join([]string{
		"John Smith",
		"Head of Education Programs",
		"john@example.com",
		"",
		"EXPERIENCE",
		"Director, Nonprofit Org",
	}, "\n")
	sections := Segment(text)

	if content, ok := sections.Get(KeyEducation); ok && content != "" {
		t.Fatalf("mixed-case line in protected zone treated as header: %q", content)
	}
	if _, ok := sections.Get(KeyExperience); !ok {
		t.Fatal("all-caps header in protected zone should be recognized")
	}
}

func TestSegmentHeaderLengthLimits(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"exact synonym", "Work Experience", true},
		{"decorated", "--- SKILLS ---", true},
		{"embedded keyword", "Technical Skills Overview", true},
		{"too many words", "my extensive skills gained over many years", false},
		{"sentence not header", "I have experience working with many teams and delivered results consistently", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := classifyHeader(tt.line, protectedZone+1)
			if ok != tt.want {
				t.Fatalf("classifyHeader(%q) = %v, want %v", tt.line, ok, tt.want)
			}
		})
	}
}

func TestSegmentRepeatedHeadersMerge(t *testing.T) {
	text := strings.Join([]string{
		"Jane Doe",
		"jane@example.com",
		"",
		"EXPERIENCE",
		"First job",
		"",
		"EDUCATION",
		"Some degree",
		"",
		"EXPERIENCE",
		"Second job",
	}, "\n")
	sections := Segment(text)

	exp, _ := sections.Get(KeyExperience)
	if !strings.Contains(exp, "First job") || !strings.Contains(exp, "Second job") {
		t.Fatalf("repeated sections not merged: %q", exp)
	}
	if got := sections.Len(); got != 3 {
		t.Fatalf("expected 3 sections, got %d (%v)", got, sections.Keys())
	}
}

func TestSegmentDropsGarbageLines(t *testing.T) {
	text := strings.Join([]string{
		"Jane Doe",
		"jane@example.com",
		"",
		"EXPERIENCE",
		"Page 2 of 3",
		"3",
		"/usr/local/share/resume.pdf",
		"10:45 AM",
		"Real experience content",
	}, "\n")
	sections := Segment(text)

	exp, _ := sections.Get(KeyExperience)
	if exp != "Real experience content" {
		t.Fatalf("garbage lines leaked into section: %q", exp)
	}
}

func TestSegmentIdempotentOnRebuiltOutput(t *testing.T) {
	first := Segment(sampleResume)

	// Rebuild the text the way the converter renders it and re-segment.
	var b strings.Builder
	for _, key := range first.Keys() {
		content, _ := first.Get(key)
		if content == "" {
			continue
		}
		b.WriteString(strings.ToUpper(key) + "\n")
		b.WriteString(content + "\n\n")
	}
	second := Segment(b.String())

	for _, key := range first.Keys() {
		content, _ := first.Get(key)
		if content == "" {
			continue
		}
		if _, ok := second.Get(key); !ok {
			t.Fatalf("section %q lost on re-segmentation, got %v", key, second.Keys())
		}
	}
}

func TestRefineContactExtractsEntities(t *testing.T) {
	sections := Segment(sampleResume)
	contact, _ := sections.Get(KeyContact)

	for _, want := range []string{"Jane Doe", "jane.doe@example.com", "linkedin.com/in/janedoe"} {
		if !strings.Contains(contact, want) {
			t.Fatalf("contact missing %q:\n%s", want, contact)
		}
	}
	if !phonePattern.MatchString(contact) {
		t.Fatalf("contact missing phone number:\n%s", contact)
	}
}

func TestRefineContactFiltersLeakedContent(t *testing.T) {
	// No headers at all: everything lands in contact first, then refinement
	// keeps identity lines and drops narrative ones.
	text := strings.Join([]string{
		"John Smith",
		"john@example.com",
		"Seasoned professional with a decade of industry experience delivering large projects across multiple continents",
	}, "\n")
	sections := Segment(text)
	contact, _ := sections.Get(KeyContact)

	if !strings.Contains(contact, "John Smith") || !strings.Contains(contact, "john@example.com") {
		t.Fatalf("identity lines dropped: %q", contact)
	}
	if strings.Contains(contact, "Seasoned professional") {
		t.Fatalf("narrative line leaked into contact: %q", contact)
	}
}
