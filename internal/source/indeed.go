package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/Kenengmathias/Hunter/internal/models"
	"github.com/Kenengmathias/Hunter/internal/network"
)

// Indeed serves different markup depending on market and rollout, so
// every field is read through a fallback chain of selectors.
var (
	indeedCardSelectors = []string{
		"[data-jk]",
		".jobsearch-SerpJobCard",
		".job_seen_beacon",
		"td.resultContent",
	}
	indeedTitleSelectors = []string{
		"h2 a span[title]",
		"h2 a",
		".jobTitle a",
		`[data-testid="job-title"] a`,
	}
	indeedSpamMarkers = []string{"undefined", "null", "error", "test job"}

	currencyMarkers = []string{"₦", "$", "€", "£", "USD", "NGN", "GBP"}
)

var indeedJobTypes = map[string]string{
	models.JobTypeFullTime:  "fulltime",
	models.JobTypePartTime:  "parttime",
	models.JobTypeContract:  "contract",
	models.JobTypeFreelance: "contract",
}

type Indeed struct {
	client *network.Client
}

func NewIndeed(client *network.Client) *Indeed {
	return &Indeed{client: client}
}

func (i *Indeed) Name() string {
	return NameIndeed
}

func (i *Indeed) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	base := indeedBaseURL(indeedCountry(params))
	searchURL := buildIndeedURL(base, params)

	doc, err := fetchDocument(ctx, i.client, searchURL, nil)
	if err != nil {
		return nil, err
	}
	return parseIndeedCards(doc, base, params.Limit), nil
}

// indeedCountry picks the market from the search location; the
// caller's country only applies when the location says nothing.
func indeedCountry(params models.SearchParams) string {
	location := strings.ToLower(params.Location)
	if strings.Contains(location, "uk") || strings.Contains(location, "united kingdom") {
		return "gb"
	}
	if containsAny(location, []string{"nigeria", "lagos", "abuja", "calabar"}) {
		return "ng"
	}
	if country := strings.TrimSpace(strings.ToLower(params.Country)); country != "" {
		return country
	}
	return "global"
}

func indeedBaseURL(country string) string {
	switch country {
	case "ng":
		return "https://ng.indeed.com"
	case "gb":
		return "https://uk.indeed.com"
	default:
		return "https://indeed.com"
	}
}

func buildIndeedURL(base string, params models.SearchParams) string {
	values := url.Values{}
	values.Set("q", params.Keywords)
	if params.Location != "" {
		values.Set("l", params.Location)
	}
	values.Set("start", "0")
	values.Set("sort", "relevance")
	if jt, ok := indeedJobTypes[models.NormalizeJobType(params.JobType)]; ok {
		values.Set("jt", jt)
	}
	return fmt.Sprintf("%s/jobs?%s", base, values.Encode())
}

func parseIndeedCards(doc *goquery.Document, base string, limit int) []models.Job {
	cards := firstMatch(doc, indeedCardSelectors)
	if cards == nil {
		return nil
	}

	var jobs []models.Job
	cards.Each(func(_ int, card *goquery.Selection) {
		if limit > 0 && len(jobs) >= limit {
			return
		}
		job, ok := parseIndeedCard(card, base)
		if !ok {
			return
		}
		jobs = append(jobs, job)
	})
	return jobs
}

func parseIndeedCard(card *goquery.Selection, base string) (models.Job, bool) {
	job := models.Job{
		Source:      NameIndeed,
		Title:       indeedTitle(card),
		Company:     firstText(card, `[data-testid="company-name"]`, ".companyName", "span.companyName"),
		Location:    firstText(card, `[data-testid="job-location"]`, ".companyLocation"),
		URL:         orDefault(indeedLink(card, base), "#"),
		Description: clip(firstText(card, ".job-snippet, .summary"), 200),
	}
	if salary := firstText(card, `.salary-snippet, [data-testid*="salary"]`); containsAny(salary, currencyMarkers) {
		job.Salary = salary
	}
	if !validIndeedJob(job) {
		return models.Job{}, false
	}
	return job, true
}

func indeedTitle(card *goquery.Selection) string {
	for _, selector := range indeedTitleSelectors {
		found := card.Find(selector).First()
		if found.Length() == 0 {
			continue
		}
		if title, ok := found.Attr("title"); ok && strings.TrimSpace(title) != "" {
			return cleanText(title)
		}
		if text := cleanText(found.Text()); text != "" {
			return text
		}
	}
	return ""
}

func indeedLink(card *goquery.Selection, base string) string {
	if href := firstAttr(card, "href", "h2 a[href]"); href != "" {
		return absoluteURL(base, href)
	}
	if jk, ok := card.Attr("data-jk"); ok && strings.TrimSpace(jk) != "" {
		return base + "/viewjob?jk=" + strings.TrimSpace(jk)
	}
	return ""
}

func validIndeedJob(job models.Job) bool {
	if utf8.RuneCountInString(job.Title) < 5 {
		return false
	}
	if containsAny(strings.ToLower(job.Title), indeedSpamMarkers) {
		return false
	}
	return job.Company != "" || job.Location != ""
}
