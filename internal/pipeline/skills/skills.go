// Package skills matches resume text against the skill taxonomy and pulls
// structured experience and education entries out of free text.
package skills

import (
	"sort"
	"strings"

	"resume-intel/internal/pipeline/taxonomy"
)

// SkillRecord is one matched skill with per-category coverage.
type SkillRecord struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// CategorySummary aggregates matches within one taxonomy category.
type CategorySummary struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
	Count    int      `json:"count"`
	Score    int      `json:"score"`
}

// Matcher extracts taxonomy skills from text.
type Matcher struct {
	tax *taxonomy.Taxonomy
}

// NewMatcher builds a matcher over the given taxonomy.
func NewMatcher(tax *taxonomy.Taxonomy) *Matcher {
	return &Matcher{tax: tax}
}

// Extract returns every taxonomy skill present in the text, deduplicated
// within each category. Matching is case-insensitive on token boundaries, so
// "java" never fires inside "javascript". Coverage score per category is
// min(100, matched/total*100 + 50).
func (m *Matcher) Extract(text string) []SkillRecord {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return nil
	}

	var records []SkillRecord
	for _, summary := range m.Categorize(lower) {
		for _, skill := range summary.Skills {
			records = append(records, SkillRecord{
				Name:     skill,
				Category: summary.Category,
				Score:    summary.Score,
			})
		}
	}
	return records
}

// Categorize groups matched skills by taxonomy category, categories and
// skills both in deterministic order.
func (m *Matcher) Categorize(text string) []CategorySummary {
	lower := strings.ToLower(text)

	var out []CategorySummary
	for _, cat := range m.tax.Categories() {
		var matched []string
		for _, skill := range cat.Skills {
			if m.tax.Matches(lower, skill) {
				matched = append(matched, skill)
			}
		}
		if len(matched) == 0 {
			continue
		}
		sort.Strings(matched)
		total := m.tax.CategorySize(cat.Name)
		if total == 0 {
			total = 1
		}
		score := len(matched)*100/total + 50
		if score > 100 {
			score = 100
		}
		out = append(out, CategorySummary{
			Category: cat.Name,
			Skills:   matched,
			Count:    len(matched),
			Score:    score,
		})
	}
	return out
}

// Names flattens records to unique skill names preserving order.
func Names(records []SkillRecord) []string {
	seen := make(map[string]bool, len(records))
	var out []string
	for _, r := range records {
		key := strings.ToLower(r.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r.Name)
	}
	return out
}
