package jobs

import (
	"context"
	"sort"
	"strings"

	"resume-intel/internal/pipeline/gap"
	"resume-intel/internal/shared/telemetry"
)

// Recommendation pairs a posting with how well it fits the user's resume.
// MatchScore is the share of the user's skills found in the posting text,
// which is what filtering and ranking use; Match carries the full weighted
// breakdown for display.
type Recommendation struct {
	Posting
	MatchScore    float64   `json:"match_score"`
	MatchedSkills []string  `json:"matched_skills"`
	Match         gap.Match `json:"match_breakdown"`
}

// ResumeSource supplies the skill profile for a user, typically from their
// most recent analyzed resume, and scores it against a job posting.
type ResumeSource interface {
	LatestSkills(ctx context.Context, userID string) (skills []string, resumeText string, err error)
	MatchScore(resumeText string, resumeSkills []string, jobText string) gap.Match
}

// Service ranks job postings against a user's resume skills.
type Service struct {
	Client  *Client
	Resumes ResumeSource
}

// Recommend searches postings for the user's skills and keeps those whose
// skill overlap clears minMatch percent, best matches first.
func (s *Service) Recommend(ctx context.Context, userID, location string, minMatch float64, limit int) ([]Recommendation, error) {
	skills, resumeText, err := s.Resumes.LatestSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	postings, err := s.Client.Search(ctx, skills, location, 1, 50)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(postings))
	for _, p := range postings {
		score, matched := scoreAgainst(p, skills)
		if score < minMatch {
			continue
		}
		recs = append(recs, Recommendation{
			Posting:       p,
			MatchScore:    score,
			MatchedSkills: matched,
			Match:         s.Resumes.MatchScore(resumeText, skills, p.Title+" "+p.Description),
		})
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].MatchScore > recs[j].MatchScore })
	if len(recs) > limit {
		recs = recs[:limit]
	}

	telemetry.Info("jobs.recommended", map[string]any{
		"userId":   userID,
		"fetched":  len(postings),
		"returned": len(recs),
	})
	return recs, nil
}

// scoreAgainst measures what fraction of the user's skills appear in the
// posting's title or description.
func scoreAgainst(p Posting, userSkills []string) (float64, []string) {
	if len(userSkills) == 0 {
		return 0, nil
	}
	text := strings.ToLower(p.Title + " " + p.Description)
	var matched []string
	for _, sk := range userSkills {
		if strings.Contains(text, strings.ToLower(sk)) {
			matched = append(matched, sk)
		}
	}
	score := float64(len(matched)) / float64(len(userSkills)) * 100
	return score, matched
}
