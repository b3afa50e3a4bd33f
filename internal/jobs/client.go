// Package jobs fetches job postings from the Adzuna search API and ranks
// them against a user's analyzed resume.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotConfigured means Adzuna credentials are missing.
var ErrNotConfigured = errors.New("job search is not configured")

const maxQuerySkills = 8

// Posting is one job result from the search API.
type Posting struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	URL         string  `json:"redirect_url"`
	SalaryMin   float64 `json:"salary_min,omitempty"`
	SalaryMax   float64 `json:"salary_max,omitempty"`
}

// Client calls the Adzuna jobs API.
type Client struct {
	BaseURL string
	AppID   string
	AppKey  string
	Country string
	HTTP    *http.Client
}

// NewClient builds an Adzuna client. Credentials may be empty; Search then
// returns ErrNotConfigured.
func NewClient(baseURL, appID, appKey, country string) *Client {
	if country == "" {
		country = "us"
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		AppID:   appID,
		AppKey:  appKey,
		Country: country,
		HTTP:    &http.Client{Timeout: 20 * time.Second},
	}
}

// Search queries postings matching the given skills. The query keeps only
// the first few skills so it stays specific enough to return results.
func (c *Client) Search(ctx context.Context, skills []string, location string, page, perPage int) ([]Posting, error) {
	if c.AppID == "" || c.AppKey == "" {
		return nil, ErrNotConfigured
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 50 {
		perPage = 20
	}
	if len(skills) > maxQuerySkills {
		skills = skills[:maxQuerySkills]
	}

	endpoint := fmt.Sprintf("%s/jobs/%s/search/%d", c.BaseURL, c.Country, page)
	params := url.Values{}
	params.Set("app_id", c.AppID)
	params.Set("app_key", c.AppKey)
	params.Set("what", strings.Join(skills, " "))
	params.Set("results_per_page", strconv.Itoa(perPage))
	params.Set("content-type", "application/json")
	if location != "" {
		params.Set("where", location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna status %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			ID      string `json:"id"`
			Title   string `json:"title"`
			Company struct {
				DisplayName string `json:"display_name"`
			} `json:"company"`
			Location struct {
				DisplayName string `json:"display_name"`
			} `json:"location"`
			Description string  `json:"description"`
			RedirectURL string  `json:"redirect_url"`
			SalaryMin   float64 `json:"salary_min"`
			SalaryMax   float64 `json:"salary_max"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode adzuna response: %w", err)
	}

	out := make([]Posting, 0, len(body.Results))
	for _, r := range body.Results {
		out = append(out, Posting{
			ID:          r.ID,
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			Description: r.Description,
			URL:         r.RedirectURL,
			SalaryMin:   r.SalaryMin,
			SalaryMax:   r.SalaryMax,
		})
	}
	return out, nil
}
