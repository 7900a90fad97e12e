package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Kenengmathias/Hunter/internal/models"
	"github.com/Kenengmathias/Hunter/internal/source"
	"github.com/rs/zerolog"
)

const sourceTimeout = 30 * time.Second

// Failure records a source that produced no jobs. NotConfigured marks
// sources skipped for missing API keys, which callers report softer
// than real errors.
type Failure struct {
	Source        string
	Err           error
	NotConfigured bool
}

// Result is one aggregated search. Total counts jobs before
// deduplication; Counts holds per-source totals keyed by display name.
type Result struct {
	Jobs     []models.Job
	Total    int
	Counts   map[string]int
	Failures []Failure
}

type Aggregator struct {
	sources map[string]source.Source
	timeout time.Duration
	logger  zerolog.Logger
}

func New(sources map[string]source.Source, logger zerolog.Logger) *Aggregator {
	return &Aggregator{sources: sources, timeout: sourceTimeout, logger: logger}
}

// SelectKeys picks the sources for a search. The API boards always
// run, Jobberman joins Nigerian or include-local searches, and Indeed
// closes the list.
func SelectKeys(params models.SearchParams) []string {
	keys := []string{source.KeyJooble, source.KeyAdzuna, source.KeyJSearch}
	if NigerianLocation(params.Location) || params.IncludeLocal {
		keys = append(keys, source.KeyJobberman)
	}
	return append(keys, source.KeyIndeed)
}

// Search fans out to the sources SelectKeys picks and merges their
// results into one ranked list.
func (a *Aggregator) Search(ctx context.Context, params models.SearchParams) Result {
	return a.SearchKeys(ctx, SelectKeys(params), params)
}

type sourceResult struct {
	name string
	jobs []models.Job
	err  error
}

// SearchKeys runs the given sources concurrently, each under its own
// timeout, and never fails the whole search for one bad source.
func (a *Aggregator) SearchKeys(ctx context.Context, keys []string, params models.SearchParams) Result {
	if params.Country == "" && NigerianLocation(params.Location) {
		params.Country = "ng"
	}

	var (
		wg      sync.WaitGroup
		results = make(chan sourceResult, len(keys))
	)

	for _, key := range keys {
		src, ok := a.sources[key]
		if !ok {
			results <- sourceResult{name: key, err: fmt.Errorf("unknown source %q", key)}
			continue
		}

		wg.Add(1)
		go func(src source.Source) {
			defer wg.Done()
			searchCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			jobs, err := src.Search(searchCtx, params)
			results <- sourceResult{name: src.Name(), jobs: jobs, err: err}
		}(src)
	}

	wg.Wait()
	close(results)

	result := Result{Counts: map[string]int{}}
	var all []models.Job
	for res := range results {
		if res.err != nil {
			result.Failures = append(result.Failures, Failure{
				Source:        res.name,
				Err:           res.err,
				NotConfigured: errors.Is(res.err, source.ErrNotConfigured),
			})
			continue
		}
		result.Counts[res.name] = len(res.jobs)
		all = append(all, res.jobs...)
		a.logger.Info().Str("source", res.name).Int("jobs", len(res.jobs)).Msg("source finished")
	}

	sortJobsBySource(all)
	sortFailures(result.Failures)

	for _, failure := range result.Failures {
		if failure.NotConfigured {
			a.logger.Debug().Str("source", failure.Source).Msg("source not configured")
			continue
		}
		a.logger.Error().Err(failure.Err).Str("source", failure.Source).Msg("source failed")
	}

	result.Total = len(all)
	result.Jobs = Rank(Dedupe(all), params.Location)
	return result
}

var sourceOrder = map[string]int{
	source.NameJooble:    0,
	source.NameAdzuna:    1,
	source.NameJSearch:   2,
	source.NameIndeed:    3,
	source.NameJobberman: 4,
}

// sortJobsBySource pins completion-order results to a stable order so
// deduplication keeps the same winner run to run.
func sortJobsBySource(jobs []models.Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		return sourceRank(jobs[i].Source) < sourceRank(jobs[j].Source)
	})
}

func sortFailures(failures []Failure) {
	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].Source < failures[j].Source
	})
}

func sourceRank(name string) int {
	if rank, ok := sourceOrder[name]; ok {
		return rank
	}
	return len(sourceOrder)
}
