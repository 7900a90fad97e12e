package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Kenengmathias/Hunter/internal/models"
)

const adzunaEndpoint = "https://api.adzuna.com/v1/api/jobs"

// Adzuna covers a fixed set of country markets. The search location
// picks the market, it is not sent as a query filter.
var adzunaCountries = map[string]string{
	"remote":            "us",
	"new york, ny":      "us",
	"san francisco, ca": "us",
	"london, uk":        "gb",
	"berlin, de":        "de",
	"toronto, on":       "ca",
	"nigeria":           "ng",
	"lagos":             "ng",
	"abuja":             "ng",
	"calabar":           "ng",
}

type Adzuna struct {
	appID   string
	appKey  string
	client  *http.Client
	baseURL string
}

func NewAdzuna(appID string, appKey string, client *http.Client) *Adzuna {
	return &Adzuna{appID: appID, appKey: appKey, client: client, baseURL: adzunaEndpoint}
}

func (a *Adzuna) Name() string { return NameAdzuna }

type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	Title        string      `json:"title"`
	Company      adzunaNamed `json:"company"`
	Location     adzunaNamed `json:"location"`
	SalaryMin    float64     `json:"salary_min"`
	SalaryMax    float64     `json:"salary_max"`
	RedirectURL  string      `json:"redirect_url"`
	Description  string      `json:"description"`
	ContractTime string      `json:"contract_time"`
}

type adzunaNamed struct {
	DisplayName string `json:"display_name"`
}

func (a *Adzuna) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	if a.appID == "" || a.appKey == "" {
		return nil, ErrNotConfigured
	}

	country := adzunaCountry(params.Location)
	values := url.Values{}
	values.Set("app_id", a.appID)
	values.Set("app_key", a.appKey)
	values.Set("what", params.Keywords)
	if params.Limit > 0 {
		values.Set("results_per_page", strconv.Itoa(params.Limit))
	}

	target := fmt.Sprintf("%s/%s/search/1?%s", a.baseURL, country, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}

	var decoded adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	jobs := make([]models.Job, 0, len(decoded.Results))
	for _, item := range decoded.Results {
		if params.Limit > 0 && len(jobs) >= params.Limit {
			break
		}
		jobs = append(jobs, models.Job{
			Source:      NameAdzuna,
			Title:       orDefault(item.Title, "No title"),
			Company:     orDefault(item.Company.DisplayName, "Unknown"),
			Location:    orDefault(item.Location.DisplayName, "Remote"),
			Salary:      adzunaSalary(country, item.SalaryMin, item.SalaryMax),
			URL:         orDefault(item.RedirectURL, "#"),
			JobType:     strings.TrimSpace(item.ContractTime),
			Description: clip(cleanText(item.Description), 200),
		})
	}
	return jobs, nil
}

func adzunaCountry(location string) string {
	if country, ok := adzunaCountries[strings.ToLower(strings.TrimSpace(location))]; ok {
		return country
	}
	return "us"
}

func adzunaSalary(country string, min float64, max float64) string {
	if min <= 0 || max <= 0 {
		return ""
	}
	symbol := "$"
	if country == "ng" {
		symbol = "₦"
	}
	return fmt.Sprintf("%s%s - %s%s", symbol, formatAmount(min), symbol, formatAmount(max))
}

func formatAmount(value float64) string {
	digits := strconv.FormatFloat(value, 'f', 0, 64)
	if len(digits) <= 3 {
		return digits
	}
	var grouped strings.Builder
	pre := len(digits) % 3
	if pre > 0 {
		grouped.WriteString(digits[:pre])
	}
	for i := pre; i < len(digits); i += 3 {
		if grouped.Len() > 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteString(digits[i : i+3])
	}
	return grouped.String()
}
