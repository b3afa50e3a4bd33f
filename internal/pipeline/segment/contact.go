package segment

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	urlPattern   = regexp.MustCompile(`(?i)(?:https?://[^\s]+|(?:www\.)?(?:linkedin\.com|github\.com)/[^\s]+)`)
)

const (
	maxContactNameChars = 60
	maxContactLineChars = 80
	contactScanLines    = 10
)

// refineContact rebuilds the contact section from entities found anywhere in
// the document plus short identifying lines near the top. Whatever header-less
// preamble fell into the contact bucket during the walk often contains
// summary or experience content; that leakage is filtered out here.
func refineContact(sections *SectionMap, fullText string, lines []string) {
	var parts []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[strings.ToLower(s)] {
			return
		}
		seen[strings.ToLower(s)] = true
		parts = append(parts, s)
	}

	if name := pickName(lines); name != "" {
		add(name)
	}
	if email := emailPattern.FindString(fullText); email != "" {
		add(email)
	}
	if phone := phonePattern.FindString(fullText); phone != "" {
		add(phone)
	}
	for _, url := range urlPattern.FindAllString(fullText, 3) {
		add(strings.TrimRight(url, ".,;)"))
	}

	// Keep short leftover lines from the original contact block that are
	// not already captured and do not look like leaked section content.
	existing, _ := sections.Get(KeyContact)
	for _, line := range strings.Split(existing, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > maxContactLineChars {
			continue
		}
		if HasSectionKeyword(line) {
			continue
		}
		if containedInAny(line, parts) {
			continue
		}
		add(line)
	}

	sections.Set(KeyContact, strings.Join(parts, "\n"))
}

// pickName returns the first line near the top that plausibly reads as a
// person's name: short, no digits, no contact entities, no header keywords.
func pickName(lines []string) string {
	limit := contactScanLines
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		if len(line) > maxContactNameChars {
			continue
		}
		if strings.ContainsAny(line, "0123456789@") {
			continue
		}
		if urlPattern.MatchString(line) || HasSectionKeyword(line) {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 1 || len(words) > 5 {
			continue
		}
		return line
	}
	return ""
}

func containedInAny(line string, parts []string) bool {
	lower := strings.ToLower(line)
	for _, p := range parts {
		if strings.Contains(lower, strings.ToLower(p)) || strings.Contains(strings.ToLower(p), lower) {
			return true
		}
	}
	return false
}
