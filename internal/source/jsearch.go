package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Kenengmathias/Hunter/internal/models"
)

const (
	jsearchEndpoint = "https://jsearch.p.rapidapi.com/search"
	jsearchHost     = "jsearch.p.rapidapi.com"
)

// JSearch queries the JSearch API on RapidAPI, which proxies Google
// for Jobs results.
type JSearch struct {
	key     string
	client  *http.Client
	baseURL string
}

func NewJSearch(key string, client *http.Client) *JSearch {
	return &JSearch{key: key, client: client, baseURL: jsearchEndpoint}
}

func (s *JSearch) Name() string { return NameJSearch }

type jsearchResponse struct {
	Data []jsearchJob `json:"data"`
}

type jsearchJob struct {
	Title          string  `json:"job_title"`
	Employer       string  `json:"employer_name"`
	ApplyLink      string  `json:"job_apply_link"`
	City           string  `json:"job_city"`
	Country        string  `json:"job_country"`
	SalaryMin      float64 `json:"job_salary_min"`
	SalaryMax      float64 `json:"job_salary_max"`
	SalaryCurrency string  `json:"job_salary_currency"`
	Description    string  `json:"job_description"`
	EmploymentType string  `json:"job_employment_type"`
}

func (s *JSearch) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	if s.key == "" {
		return nil, ErrNotConfigured
	}

	query := params.Keywords
	if location := strings.TrimSpace(params.Location); location != "" {
		query = params.Keywords + " in " + location
	}

	values := url.Values{}
	values.Set("query", query)
	values.Set("page", "1")
	values.Set("num_pages", "1")
	values.Set("date_posted", "all")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", s.key)
	req.Header.Set("X-RapidAPI-Host", jsearchHost)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("http %d (check the RapidAPI key and subscription)", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}

	var decoded jsearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	jobs := make([]models.Job, 0, len(decoded.Data))
	for _, item := range decoded.Data {
		if params.Limit > 0 && len(jobs) >= params.Limit {
			break
		}
		jobs = append(jobs, models.Job{
			Source:      NameJSearch,
			Title:       orDefault(item.Title, "No title"),
			Company:     orDefault(item.Employer, "Unknown"),
			Location:    orDefault(joinComma(item.City, item.Country), "Remote"),
			Salary:      jsearchSalary(item.SalaryCurrency, item.SalaryMin, item.SalaryMax),
			URL:         orDefault(item.ApplyLink, "#"),
			JobType:     strings.TrimSpace(item.EmploymentType),
			Description: clip(cleanText(item.Description), 200),
		})
	}
	return jobs, nil
}

func jsearchSalary(currency string, min float64, max float64) string {
	if min <= 0 || max <= 0 {
		return ""
	}
	symbol := strings.TrimSpace(currency)
	switch symbol {
	case "", "USD":
		symbol = "$"
	case "NGN":
		symbol = "₦"
	}
	return fmt.Sprintf("%s%s - %s%s", symbol, formatAmount(min), symbol, formatAmount(max))
}
