package models

import "strings"

// Job type filters accepted by sources. JobTypeAll (or an empty string)
// means no filter.
const (
	JobTypeAll       = "all"
	JobTypeFullTime  = "fulltime"
	JobTypePartTime  = "parttime"
	JobTypeContract  = "contract"
	JobTypeFreelance = "freelance"
)

// SearchParams captures the normalized search inputs shared by all sources.
// Limit is the per-source cap; callers distribute a total budget before
// building params.
type SearchParams struct {
	Keywords     string
	Location     string
	JobType      string
	Country      string
	Limit        int
	IncludeLocal bool
}

// NormalizeJobType lowercases the filter and maps the empty string to "all".
func NormalizeJobType(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return JobTypeAll
	}
	return value
}
