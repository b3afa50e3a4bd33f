package gap

import (
	"regexp"
	"strconv"
	"strings"
)

// Weights for the job-match blend. Skill overlap dominates because it is
// the strongest predictor of posting relevance.
const (
	matchWeightSkills     = 0.50
	matchWeightExperience = 0.25
	matchWeightEducation  = 0.15
	matchWeightSimilarity = 0.10

	defaultSkillScore    = 70.0 // when the job text yields no taxonomy skills
	defaultRequiredYears = 2.0
	defaultJobDegreeRank = 3 // bachelor's, unless the posting says otherwise
)

// Match is the ranking score of one resume against one job posting.
type Match struct {
	Overall    int     `json:"overall"`
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Similarity float64 `json:"similarity"`
}

var yearsPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*years?`)

// Degree keywords by rank. Checked highest first so "Master of Science"
// does not fall through to a lower rank on the "science" token.
var degreeRanks = []struct {
	rank     int
	keywords []string
}{
	{5, []string{"phd", "ph.d", "doctorate", "doctoral"}},
	{4, []string{"master", "msc", "m.s.", "mba", "mtech", "m.tech", "meng", "m.eng"}},
	{3, []string{"bachelor", "bsc", "b.s.", "btech", "b.tech", "beng", "b.eng", "b.a."}},
}

// MatchScore ranks a resume against a job posting. All four factors are in
// [0,100]; the overall score is their weighted blend.
func (a *Analyzer) MatchScore(resumeText string, resumeSkills []string, jobText string) Match {
	m := Match{
		Skills:     a.skillOverlapScore(resumeSkills, jobText),
		Experience: experienceScore(resumeText, jobText),
		Education:  educationScore(resumeText, jobText),
		Similarity: similarityScore(resumeSkills, jobText),
	}
	overall := m.Skills*matchWeightSkills +
		m.Experience*matchWeightExperience +
		m.Education*matchWeightEducation +
		m.Similarity*matchWeightSimilarity
	m.Overall = int(overall + 0.5)
	if m.Overall > 100 {
		m.Overall = 100
	}
	return m
}

func (a *Analyzer) skillOverlapScore(resumeSkills []string, jobText string) float64 {
	jobSkills := a.skillsInText(jobText)
	if len(jobSkills) == 0 {
		return defaultSkillScore
	}
	have := lowerSet(resumeSkills)
	matched := 0
	for _, s := range jobSkills {
		if have[strings.ToLower(s)] {
			matched++
		}
	}
	return float64(matched) / float64(len(jobSkills)) * 100
}

func experienceScore(resumeText, jobText string) float64 {
	required := maxYears(jobText)
	if required == 0 {
		required = defaultRequiredYears
	}
	candidate := maxYears(resumeText)
	if candidate >= required {
		return 100
	}
	return candidate / required * 100
}

func maxYears(text string) float64 {
	var max float64
	for _, m := range yearsPattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > max {
			max = v
		}
	}
	return max
}

func educationScore(resumeText, jobText string) float64 {
	candidate := degreeRank(resumeText)
	required := degreeRank(jobText)
	if required == 0 {
		required = defaultJobDegreeRank
	}
	if candidate >= required {
		return 100
	}
	return float64(candidate) / float64(required) * 100
}

func degreeRank(text string) int {
	lower := strings.ToLower(text)
	for _, level := range degreeRanks {
		for _, kw := range level.keywords {
			if strings.Contains(lower, kw) {
				return level.rank
			}
		}
	}
	return 0
}

// similarityScore is token-set Jaccard between the resume's skill keywords
// and the job text, scaled to [0,100]. It grows monotonically with shared
// vocabulary, which is all the ranking needs.
func similarityScore(resumeSkills []string, jobText string) float64 {
	a := tokenSet(strings.Join(resumeSkills, " "))
	b := tokenSet(jobText)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union) * 100
}

var tokenPattern = regexp.MustCompile(`[a-z0-9+#.]+`)

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if len(tok) < 2 {
			continue
		}
		set[strings.Trim(tok, ".")] = true
	}
	return set
}
