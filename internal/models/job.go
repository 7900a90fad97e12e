package models

// Job is the normalized posting returned by every source.
type Job struct {
	Source      string  `json:"source"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	Salary      string  `json:"salary,omitempty"`
	URL         string  `json:"url"`
	JobType     string  `json:"job_type,omitempty"`
	Description string  `json:"description,omitempty"`
	Score       float64 `json:"relevance_score,omitempty"`
}
