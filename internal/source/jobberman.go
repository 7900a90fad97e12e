package source

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/Kenengmathias/Hunter/internal/models"
	"github.com/Kenengmathias/Hunter/internal/network"
)

const (
	jobbermanBaseURL  = "https://www.jobberman.com"
	jobbermanAttempts = 2
	jobbermanMaxBody  = 2 << 20
)

// Jobberman has no stable listing markup, so parsing leans on broad
// selectors plus content heuristics that reject navigation chrome.
var (
	jobbermanStripSelector = "nav, header, footer, aside, .sidebar, .nav, .menu, .filter"
	jobbermanCardSelectors = []string{
		`article[class*="job"]`,
		`div[class*="job-card"]`,
		`div[class*="search-result"]`,
		`li[class*="job"]`,
		".job-item",
		".listing",
	}
	jobbermanTitleSelectors = []string{
		"h1 a", "h2 a", "h3 a", "h4 a",
		`a[href*="/job/"]`,
		`a[href*="/jobs/"]`,
		".job-title a",
		".title a",
	}
	jobbermanCompanySelectors = []string{
		".company-name", ".employer", ".company", `[class*="company"]`, "span.company",
	}
	jobbermanLocationSelectors = []string{
		".location", ".job-location", `[class*="location"]`,
	}

	jobbermanPageMarkers  = []string{"salary", "apply", "company", "position", "experience", "qualification"}
	jobbermanCardKeywords = []string{"apply", "salary", "experience", "qualification", "job", "position", "role"}
	jobbermanNavMarkers   = []string{
		"search filter", "homepage", "find a job", "jobs found",
		"filter applied", "sort by", "view all", "load more",
		"sign in", "register", "login", "create account",
		"terms", "privacy", "cookie", "contact us",
	}
	jobbermanUITitles = []string{
		"search filter", "homepage", "find a job", "jobs found",
		"filter applied", "filters applied", "sort by", "view all",
		"load more", "sign in", "register", "login", "create account",
		"jobs in nigeria", "any job function", "refine search",
		"browse", "categories", "popular searches",
	}
	jobbermanRoleWords = []string{
		"manager", "officer", "executive", "assistant", "specialist",
		"engineer", "developer", "analyst", "coordinator", "supervisor",
		"director", "consultant", "representative", "administrator",
		"accountant", "designer", "marketer", "sales", "hr", "it",
		"intern", "graduate", "senior", "junior", "lead",
	}
	jobbermanUICompanies   = []string{"filter", "search", "homepage", "jobs found"}
	jobbermanCities        = []string{"lagos", "abuja", "nigeria", "calabar", "kano", "ibadan", "port harcourt"}
	jobbermanSalaryMarkers = []string{"₦", "NGN", "naira", "salary", "$", "per month", "per annum"}
)

type Jobberman struct {
	client  *network.Client
	baseURL string
}

func NewJobberman(client *network.Client) *Jobberman {
	return &Jobberman{client: client, baseURL: jobbermanBaseURL}
}

func (j *Jobberman) Name() string {
	return NameJobberman
}

func (j *Jobberman) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	keywords := url.QueryEscape(strings.TrimSpace(params.Keywords))
	targets := []string{
		fmt.Sprintf("%s/jobs?q=%s", j.baseURL, keywords),
		fmt.Sprintf("%s/jobs?search=%s", j.baseURL, keywords),
	}

	var lastErr error
	for _, target := range targets {
		body, err := j.fetchPage(ctx, target)
		if err != nil {
			lastErr = err
			continue
		}
		if !validJobbermanHTML(body) {
			continue
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		if err != nil {
			lastErr = err
			continue
		}
		if jobs := parseJobbermanJobs(doc, j.baseURL, params.Limit); len(jobs) > 0 {
			return jobs, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}

// fetchPage retries once, pausing between requests so the crawl does
// not hammer the site. 404 and 410 are final for a URL pattern.
func (j *Jobberman) fetchPage(ctx context.Context, target string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < jobbermanAttempts; attempt++ {
		if attempt > 0 {
			if err := sleepJitter(ctx, 2*time.Second, 4*time.Second); err != nil {
				return "", err
			}
		}
		if err := sleepJitter(ctx, time.Second, 2*time.Second); err != nil {
			return "", err
		}

		req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
		if err != nil {
			return "", err
		}
		applyHeaders(req, network.BrowserHeaders(""))

		resp, err := j.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		switch resp.StatusCode {
		case fhttp.StatusOK:
			body, err := io.ReadAll(io.LimitReader(resp.Body, jobbermanMaxBody))
			resp.Body.Close()
			if err != nil {
				lastErr = err
				continue
			}
			return string(body), nil
		case fhttp.StatusNotFound, fhttp.StatusGone:
			resp.Body.Close()
			return "", fmt.Errorf("http %d", resp.StatusCode)
		default:
			resp.Body.Close()
			lastErr = fmt.Errorf("http %d", resp.StatusCode)
		}
	}
	return "", lastErr
}

func sleepJitter(ctx context.Context, min time.Duration, max time.Duration) error {
	delay := min
	if max > min {
		delay += time.Duration(rand.Int63n(int64(max - min)))
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// validJobbermanHTML rejects error pages and bot walls before any
// parsing happens.
func validJobbermanHTML(body string) bool {
	if len(body) < 1000 {
		return false
	}
	return countAny(strings.ToLower(body), jobbermanPageMarkers) >= 3
}

func parseJobbermanJobs(doc *goquery.Document, base string, limit int) []models.Job {
	doc.Find(jobbermanStripSelector).Remove()

	var candidates []*goquery.Selection
	if cards := firstMatch(doc, jobbermanCardSelectors); cards != nil {
		cards.Each(func(_ int, card *goquery.Selection) {
			candidates = append(candidates, card)
		})
	} else {
		doc.Find("div, article, li").Each(func(_ int, el *goquery.Selection) {
			if looksLikeJobbermanCard(el) {
				candidates = append(candidates, el)
			}
		})
	}

	budget := len(candidates)
	if limit > 0 && limit*3 < budget {
		budget = limit * 3
	}

	var jobs []models.Job
	for _, card := range candidates[:budget] {
		job, ok := parseJobbermanCard(card, base)
		if !ok {
			continue
		}
		jobs = append(jobs, job)
		if limit > 0 && len(jobs) >= limit {
			break
		}
	}
	return jobs
}

func looksLikeJobbermanCard(el *goquery.Selection) bool {
	text := strings.ToLower(el.Text())
	length := utf8.RuneCountInString(text)
	if length < 50 || length > 2000 {
		return false
	}
	if countAny(text, jobbermanCardKeywords) < 2 {
		return false
	}
	if containsAny(text, jobbermanNavMarkers) {
		return false
	}
	return el.Find("a[href]").Length() > 0
}

func parseJobbermanCard(card *goquery.Selection, base string) (models.Job, bool) {
	job := models.Job{Source: NameJobberman}

	for _, selector := range jobbermanTitleSelectors {
		link := card.Find(selector).First()
		if link.Length() == 0 {
			continue
		}
		title := cleanText(link.Text())
		if !validJobbermanTitle(title) {
			continue
		}
		job.Title = title
		if href, ok := link.Attr("href"); ok {
			job.URL = absoluteURL(base, strings.TrimSpace(href))
		}
		break
	}
	if job.Title == "" {
		return models.Job{}, false
	}

	for _, selector := range jobbermanCompanySelectors {
		company := cleanText(card.Find(selector).First().Text())
		length := utf8.RuneCountInString(company)
		if length <= 1 || length >= 100 {
			continue
		}
		if containsAny(strings.ToLower(company), jobbermanUICompanies) {
			continue
		}
		job.Company = company
		break
	}

	for _, selector := range jobbermanLocationSelectors {
		location := cleanText(card.Find(selector).First().Text())
		if location == "" || !containsAny(strings.ToLower(location), jobbermanCities) {
			continue
		}
		job.Location = location
		break
	}

	job.Salary = jobbermanSalaryLine(card.Text())

	card.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		desc := cleanText(p.Text())
		length := utf8.RuneCountInString(desc)
		if length > 50 && length < 500 {
			job.Description = clip(desc, 200)
			return false
		}
		return true
	})

	if !realJobbermanJob(job) {
		return models.Job{}, false
	}
	return job, true
}

// validJobbermanTitle separates role titles from the site chrome that
// broad selectors inevitably pick up.
func validJobbermanTitle(title string) bool {
	length := utf8.RuneCountInString(title)
	if length < 5 || length > 150 {
		return false
	}

	lower := strings.ToLower(title)
	if containsAny(lower, jobbermanUITitles) {
		return false
	}
	if !containsAny(lower, jobbermanRoleWords) {
		words := strings.Fields(lower)
		if len(words) < 2 || len(words) > 20 {
			return false
		}
	}
	return true
}

func jobbermanSalaryLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if !containsAny(line, jobbermanSalaryMarkers) {
			continue
		}
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < 50 && strings.ContainsFunc(line, unicode.IsDigit) {
			return line
		}
	}
	return ""
}

func realJobbermanJob(job models.Job) bool {
	if !validJobbermanTitle(job.Title) {
		return false
	}
	if job.Company == "" && job.Location == "" {
		return false
	}
	if job.URL != "" && (strings.Contains(job.URL, "#") || strings.Contains(strings.ToLower(job.URL), "javascript:")) {
		return false
	}
	return true
}
