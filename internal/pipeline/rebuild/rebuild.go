// Package rebuild renders segmented resume content back into ATS-friendly
// documents: a plain-text layout and a minimal single-column DOCX.
package rebuild

import (
	"strings"

	"resume-intel/internal/pipeline/segment"
)

// Rebuilt holds the reconstructed resume.
type Rebuilt struct {
	ATSText  string            `json:"ats_text"`
	Sections map[string]string `json:"sections"`
	Order    []string          `json:"-"`
}

// Rebuild assembles sections in canonical order with upper-cased, underlined
// headers. Extra keywords not already present are appended to the skills
// section as plain dash bullets.
func Rebuild(sections *segment.SectionMap, extraKeywords []string) Rebuilt {
	content := make(map[string]string)
	var order []string
	for _, key := range segment.CanonicalOrder {
		text, ok := sections.Get(key)
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		content[key] = strings.TrimSpace(text)
		order = append(order, key)
	}

	if len(extraKeywords) > 0 {
		skillsText := content[segment.KeySkills]
		lower := strings.ToLower(skillsText)
		for _, kw := range extraKeywords {
			kw = strings.TrimSpace(kw)
			if kw == "" || strings.Contains(lower, strings.ToLower(kw)) {
				continue
			}
			if skillsText != "" {
				skillsText += "\n"
			}
			skillsText += "- " + kw
			lower = strings.ToLower(skillsText)
		}
		if skillsText != "" && content[segment.KeySkills] == "" {
			order = insertInCanonicalOrder(order, segment.KeySkills)
		}
		if skillsText != "" {
			content[segment.KeySkills] = skillsText
		}
	}

	var parts []string
	for _, key := range order {
		header := strings.ToUpper(key)
		parts = append(parts, header+"\n"+strings.Repeat("=", len(header))+"\n"+content[key]+"\n")
	}

	return Rebuilt{
		ATSText:  strings.TrimSpace(strings.Join(parts, "\n")),
		Sections: content,
		Order:    order,
	}
}

// insertInCanonicalOrder adds key to order keeping canonical sequence.
func insertInCanonicalOrder(order []string, key string) []string {
	pos := map[string]int{}
	for i, k := range segment.CanonicalOrder {
		pos[k] = i
	}
	out := make([]string, 0, len(order)+1)
	inserted := false
	for _, k := range order {
		if !inserted && pos[key] < pos[k] {
			out = append(out, key)
			inserted = true
		}
		out = append(out, k)
	}
	if !inserted {
		out = append(out, key)
	}
	return out
}
