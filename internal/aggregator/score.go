package aggregator

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Kenengmathias/Hunter/internal/models"
	"github.com/Kenengmathias/Hunter/internal/source"
)

// Clean trims the fields that arrive ragged from scrapers and
// collapses internal whitespace in locations.
func Clean(job models.Job) models.Job {
	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	job.Location = strings.Join(strings.Fields(job.Location), " ")
	return job
}

// Score rates how well a job matches the search. Every job starts at
// 1.0; location agreement, a posted salary, and a substantial
// description raise it, and the local board gets a bump on Nigerian
// searches.
func Score(job models.Job, searchLocation string) float64 {
	score := 1.0

	if searchLocation != "" && job.Location != "" {
		jobLocation := strings.ToLower(job.Location)
		search := strings.ToLower(searchLocation)
		if strings.Contains(jobLocation, search) {
			score += 2.0
		} else if containsAnyWord(jobLocation, strings.Fields(search)) {
			score += 1.0
		}
	}

	if strings.TrimSpace(job.Salary) != "" {
		score += 1.5
	}

	switch length := utf8.RuneCountInString(job.Description); {
	case length > 100:
		score += 1.0
	case length > 50:
		score += 0.5
	}

	if job.Source == source.NameJobberman && NigerianLocation(searchLocation) {
		score += 1.0
	}

	return score
}

// Rank cleans, scores, and orders jobs by descending relevance. Ties
// keep their incoming order.
func Rank(jobs []models.Job, searchLocation string) []models.Job {
	ranked := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		job = Clean(job)
		job.Score = Score(job, searchLocation)
		ranked = append(ranked, job)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func containsAnyWord(value string, words []string) bool {
	for _, word := range words {
		if strings.Contains(value, word) {
			return true
		}
	}
	return false
}
