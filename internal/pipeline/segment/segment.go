// Package segment splits cleaned resume text into canonical sections using
// line-level heuristics. Segmentation is a pure function: identical input
// yields identical output.
package segment

import (
	"regexp"
	"strings"
	"unicode"
)

// Canonical section keys, in presentation order.
const (
	KeyContact        = "contact"
	KeySummary        = "summary"
	KeyExperience     = "experience"
	KeyEducation      = "education"
	KeySkills         = "skills"
	KeyCertifications = "certifications"
	KeyProjects       = "projects"
	KeyAwards         = "awards"
)

// CanonicalOrder is the fixed order sections are rendered in.
var CanonicalOrder = []string{
	KeyContact, KeySummary, KeyExperience, KeyEducation,
	KeySkills, KeyCertifications, KeyProjects, KeyAwards,
}

// sectionKeywords maps canonical keys to header synonyms, matched after
// lower-casing and punctuation stripping.
var sectionKeywords = map[string][]string{
	KeyContact:        {"contact", "contact info", "contact information", "personal information"},
	KeySummary:        {"summary", "objective", "profile", "professional summary", "about me", "career objective"},
	KeyExperience:     {"experience", "work experience", "employment", "work history", "employment history", "professional experience"},
	KeyEducation:      {"education", "academic background", "qualifications", "academics"},
	KeySkills:         {"skills", "technical skills", "competencies", "abilities", "core competencies", "technologies"},
	KeyCertifications: {"certifications", "certificates", "licenses", "certification"},
	KeyProjects:       {"projects", "personal projects", "portfolio", "key projects"},
	KeyAwards:         {"awards", "honors", "achievements", "accomplishments"},
}

const (
	maxHeaderChars = 48
	maxHeaderWords = 4
	protectedZone  = 6
)

// SectionMap maps canonical section keys to raw text blocks, preserving
// document order. Repeated headers append to the existing block.
type SectionMap struct {
	keys []string
	data map[string]string
}

// NewSectionMap returns an empty map with the contact bucket pre-registered,
// since contact is always populated (possibly with an empty string).
func NewSectionMap() *SectionMap {
	m := &SectionMap{data: make(map[string]string)}
	m.register(KeyContact)
	return m
}

func (m *SectionMap) register(key string) {
	if _, ok := m.data[key]; !ok {
		m.keys = append(m.keys, key)
		m.data[key] = ""
	}
}

// Append adds a block to a section, creating it on first use.
func (m *SectionMap) Append(key, block string) {
	block = strings.TrimSpace(block)
	m.register(key)
	if block == "" {
		return
	}
	if existing := m.data[key]; existing != "" {
		m.data[key] = existing + "\n" + block
	} else {
		m.data[key] = block
	}
}

// Set replaces a section's content.
func (m *SectionMap) Set(key, content string) {
	m.register(key)
	m.data[key] = strings.TrimSpace(content)
}

// Get returns a section's content and whether the section exists.
func (m *SectionMap) Get(key string) (string, bool) {
	v, ok := m.data[key]
	return v, ok
}

// Keys returns section keys in document order.
func (m *SectionMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of sections.
func (m *SectionMap) Len() int { return len(m.keys) }

// Segment walks the text line by line, flushing accumulated content into the
// current section whenever a header is recognized. Content between two
// headers always attaches to the section opened by the more recent one.
func Segment(text string) *SectionMap {
	sections := NewSectionMap()

	lines := usableLines(text)
	current := KeyContact
	var block []string

	flush := func() {
		if len(block) > 0 {
			sections.Append(current, strings.Join(block, "\n"))
			block = block[:0]
		}
	}

	for i, line := range lines {
		key, ok := classifyHeader(line, i)
		if ok {
			flush()
			current = key
			continue // the header line itself is not content
		}
		block = append(block, line)
	}
	flush()

	refineContact(sections, text, lines)
	return sections
}

var (
	pageNumberLine = regexp.MustCompile(`(?i)^(?:page\s+\d+(?:\s+of\s+\d+)?|\d{1,3})$`)
	filePathLine   = regexp.MustCompile(`(?i)^(?:[a-z]:\\|/)[^\s]+$`)
	timestampLine  = regexp.MustCompile(`(?i)^\d{1,2}:\d{2}(?::\d{2})?\s*(?:am|pm)?$`)
)

// usableLines returns trimmed, non-empty, non-garbage lines.
func usableLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isGarbage(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func isGarbage(line string) bool {
	if len(line) < 2 {
		return true
	}
	return pageNumberLine.MatchString(line) ||
		filePathLine.MatchString(line) ||
		timestampLine.MatchString(line)
}

// classifyHeader decides whether a line opens a new section. Index 0 is
// assumed to be the candidate's name and is never a header; inside the
// protected zone only fully capitalized lines qualify, so short title lines
// like "Senior Engineer" near the top are not misread as headers.
func classifyHeader(line string, index int) (string, bool) {
	if index == 0 {
		return "", false
	}
	if len(line) > maxHeaderChars || len(strings.Fields(line)) > maxHeaderWords {
		return "", false
	}

	key, ok := matchSectionKeyword(line)
	if !ok {
		return "", false
	}
	if index < protectedZone && !isFullyCapitalized(line) {
		return "", false
	}
	return key, true
}

func matchSectionKeyword(line string) (string, bool) {
	normalized := normalizeHeader(line)
	if normalized == "" {
		return "", false
	}
	for _, key := range CanonicalOrder {
		for _, kw := range sectionKeywords[key] {
			if normalized == kw {
				return key, true
			}
		}
	}
	// Keyword embedded in a short title line, e.g. "My Skills" or
	// "Technical Skills & Tools".
	for _, key := range CanonicalOrder {
		for _, kw := range sectionKeywords[key] {
			if containsWholePhrase(normalized, kw) {
				return key, true
			}
		}
	}
	return "", false
}

// normalizeHeader lower-cases and strips punctuation so "SKILLS:" and
// "— Skills —" both reduce to "skills".
func normalizeHeader(line string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(line) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func containsWholePhrase(normalized, phrase string) bool {
	idx := strings.Index(normalized, phrase)
	for idx >= 0 {
		beforeOK := idx == 0 || normalized[idx-1] == ' '
		after := idx + len(phrase)
		afterOK := after == len(normalized) || normalized[after] == ' '
		if beforeOK && afterOK {
			return true
		}
		next := strings.Index(normalized[idx+1:], phrase)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}

func isFullyCapitalized(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// HasSectionKeyword reports whether a line carries any section header
// synonym as a whole phrase. Used to filter leaked content out of the
// contact bucket.
func HasSectionKeyword(line string) bool {
	_, ok := matchSectionKeyword(line)
	return ok
}
