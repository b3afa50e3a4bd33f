package skills

import (
	"regexp"
	"strings"
)

// Experience is one inferred work history entry.
type Experience struct {
	Company string   `json:"company"`
	Title   string   `json:"title"`
	Dates   []string `json:"dates"`
}

// Education is one inferred education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

const (
	maxExperienceEntries = 5
	maxEducationEntries  = 3
)

var (
	jobTitlePattern = regexp.MustCompile(`(?i)(?:(?:Senior|Junior|Lead|Principal|Staff)\s+)?(?:(?:Software|Frontend|Backend|Full[ -]?Stack|DevOps|Data|ML|AI|Cloud|Systems?|Solutions?)\s+)?(?:Engineer|Developer|Architect|Scientist|Analyst|Manager|Director|Consultant)\b`)

	// Date ranges like "2019-2024", "Jan 2020 - Present", "March 2018".
	dateSpanPattern = regexp.MustCompile(`(?i)\b(?:(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+)?(?:19|20)\d{2}\s*(?:[-–]\s*(?:(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+)?(?:(?:19|20)\d{2}|Present|Current))?`)

	// Capitalized multi-word phrases followed by a corporate suffix, or
	// "at <Name>" constructions.
	companyPattern = regexp.MustCompile(`(?:[A-Z][A-Za-z&.]+\s+){0,3}[A-Z][A-Za-z&.]+\s+(?:Inc\.?|LLC|Ltd\.?|Corp\.?|Corporation|Company|Technologies|Labs|Systems|Solutions|Group)|\bat\s+((?:[A-Z][A-Za-z&.]+\s*){1,4})`)

	degreePattern = regexp.MustCompile(`(?i)\b(?:Bachelor(?:'?s)?|Master(?:'?s)?|Ph\.?D\.?|Doctorate|MBA|B\.?S(?:c)?\.?|M\.?S(?:c)?\.?|B\.?A\.?|M\.?A\.?|B\.?Eng\.?|M\.?Eng\.?|B\.?Tech\.?|M\.?Tech\.?)(?:\s+(?:of|in)\s+[A-Za-z][A-Za-z ]{2,40})?`)

	institutionPattern = regexp.MustCompile(`(?:[A-Z][A-Za-z.&]+\s+){0,4}(?:University|College|Institute|School|Academy)(?:\s+of\s+(?:[A-Z][A-Za-z]+\s*){1,3})?`)

	yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// ExtractExperience pairs organization-like phrases with nearby job titles
// and date spans. Heuristic only; capped at five entries.
func ExtractExperience(text string) []Experience {
	companies := findCompanies(text)
	titles := jobTitlePattern.FindAllString(text, maxExperienceEntries)
	dates := dateSpanPattern.FindAllString(text, -1)

	var out []Experience
	for i, company := range companies {
		if i >= maxExperienceEntries {
			break
		}
		exp := Experience{Company: company, Title: "Position"}
		if i < len(titles) {
			exp.Title = strings.TrimSpace(titles[i])
		}
		if i < len(dates) {
			exp.Dates = []string{strings.TrimSpace(dates[i])}
		}
		out = append(out, exp)
	}
	return out
}

func findCompanies(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range companyPattern.FindAllStringSubmatch(text, -1) {
		name := m[0]
		if m[1] != "" {
			name = m[1]
		}
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

// ExtractEducation pairs degree phrases with institution names and years by
// position. Capped at three entries.
func ExtractEducation(text string) []Education {
	degrees := degreePattern.FindAllString(text, maxEducationEntries)
	institutions := institutionPattern.FindAllString(text, maxEducationEntries)
	years := yearPattern.FindAllString(text, -1)

	var out []Education
	for i, degree := range degrees {
		edu := Education{Degree: strings.TrimSpace(degree)}
		if i < len(institutions) {
			edu.Institution = strings.TrimSpace(institutions[i])
		}
		if i < len(years) {
			edu.Year = years[i]
		}
		out = append(out, edu)
	}
	return out
}
