package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/Kenengmathias/Hunter/internal/aggregator"
	"github.com/Kenengmathias/Hunter/internal/config"
	"github.com/Kenengmathias/Hunter/internal/export"
	"github.com/Kenengmathias/Hunter/internal/models"
	"github.com/Kenengmathias/Hunter/internal/network"
	"github.com/Kenengmathias/Hunter/internal/seen"
	"github.com/Kenengmathias/Hunter/internal/source"
)

type SearchCmd struct {
	Query   string `arg:"" optional:"" help:"Search query (comma-separated). Optional when --query-file is provided."`
	Sources string `help:"Comma-separated list of sources, or auto to pick by location." default:"auto"`
	SearchOptions
}

type SourceSearchCmd struct {
	Query string `arg:"" optional:"" help:"Search query (comma-separated). Optional when --query-file is provided."`
	SearchOptions
	Source string `kong:"-"`
}

type SearchOptions struct {
	Location     string `help:"Job location." env:"HUNTER_DEFAULT_LOCATION"`
	JobType      string `help:"Job type filter (fulltime, parttime, contract, freelance)." enum:",all,fulltime,parttime,contract,freelance" default:""`
	Limit        int    `help:"Maximum total results, spread across sources." env:"HUNTER_DEFAULT_LIMIT"`
	IncludeLocal bool   `help:"Include Nigerian job boards regardless of location." env:"HUNTER_INCLUDE_LOCAL"`
	Format       string `help:"Output format: table, csv, json, md, tsv." enum:",table,csv,json,md,tsv" default:""`
	Links        string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output       string `name:"output" short:"o" help:"Write output to a file."`
	Out          string `name:"out" help:"Alias for --output."`
	File         string `name:"file" help:"Alias for --output."`
	Proxies      string `help:"Comma-separated proxy URLs." env:"HUNTER_PROXIES"`
	EnvFile      string `help:"Path to the env file with API keys." default:".env"`
	QueryFile    string `help:"Path to JSON file with queries (top-level string array or object with job_titles array)."`
	Seen         string `help:"Path to seen jobs JSON file."`
	NewOnly      bool   `help:"Output only unseen jobs (requires --seen)."`
	NewOut       string `help:"Write unseen jobs JSON to a file (requires --seen)."`
	SeenUpdate   bool   `help:"Merge newly discovered unseen jobs into --seen after the search completes (requires --seen)."`
}

const maxQueries = 10

func (s *SearchCmd) Run(ctx *Context) error {
	return runSearch(ctx, s.Query, s.Sources, s.SearchOptions)
}

func (s *SourceSearchCmd) Run(ctx *Context) error {
	return runSearch(ctx, s.Query, s.Source, s.SearchOptions)
}

func runSearch(ctx *Context, query string, sourcesArg string, opts SearchOptions) error {
	if opts.NewOnly && strings.TrimSpace(opts.Seen) == "" {
		return fmt.Errorf("--new-only requires --seen")
	}
	if strings.TrimSpace(opts.NewOut) != "" && strings.TrimSpace(opts.Seen) == "" {
		return fmt.Errorf("--new-out requires --seen")
	}
	if opts.SeenUpdate && strings.TrimSpace(opts.Seen) == "" {
		return fmt.Errorf("--seen-update requires --seen")
	}

	queries, err := resolveQueries(query, opts.QueryFile)
	if err != nil {
		return err
	}

	env, err := config.LoadEnvLenient(opts.EnvFile)
	if err != nil {
		return err
	}

	cfg := ctx.Config
	totalLimit := defaultInt(opts.Limit, cfg.DefaultLimit)
	baseParams := models.SearchParams{
		Location:     firstNonEmpty(opts.Location, cfg.DefaultLocation),
		JobType:      models.NormalizeJobType(opts.JobType),
		Limit:        perSourceBudget(totalLimit),
		IncludeLocal: opts.IncludeLocal || cfg.IncludeLocal,
	}

	proxies, err := config.LoadProxies(opts.Proxies, env.Proxies)
	if err != nil {
		return err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, 10*time.Minute)
		if err != nil {
			return err
		}
	}

	registry, err := source.Registry(env.Credentials(), rotator)
	if err != nil {
		return err
	}
	keys, err := selectSources(registry, sourcesArg, baseParams)
	if err != nil {
		return err
	}

	agg := aggregator.New(registry, ctx.Logger)

	stopIndicator := startSearchIndicator(ctx)
	if stopIndicator != nil {
		defer stopIndicator()
	}

	var (
		jobs     []models.Job
		failures []aggregator.Failure
	)
	for _, currentQuery := range queries {
		params := baseParams
		params.Keywords = currentQuery
		result := agg.SearchKeys(context.Background(), keys, params)
		jobs = mergeUniqueJobs(jobs, limitJobs(result.Jobs, totalLimit))
		failures = append(failures, result.Failures...)
	}

	sortJobsByScore(jobs)

	reportSourceFailures(ctx, failures)

	var unseenJobs []models.Job
	if strings.TrimSpace(opts.Seen) != "" {
		seenJobs, err := seen.ReadJobsAllowMissing(opts.Seen)
		if err != nil {
			return fmt.Errorf("read --seen: %w", err)
		}
		unseenJobs, _ = seen.Diff(jobs, seenJobs)
	}

	outputJobs := jobs
	if opts.NewOnly {
		outputJobs = unseenJobs
	}

	outputPath := resolveOutputPath(opts)
	if strings.TrimSpace(opts.NewOut) != "" && pathsEqual(outputPath, opts.NewOut) {
		return fmt.Errorf("--new-out path must differ from --output")
	}
	if strings.TrimSpace(opts.Seen) != "" && pathsEqual(outputPath, opts.Seen) {
		return fmt.Errorf("--output path must differ from --seen")
	}
	if strings.TrimSpace(opts.NewOut) != "" && pathsEqual(opts.NewOut, opts.Seen) {
		return fmt.Errorf("--new-out path must differ from --seen")
	}

	if strings.TrimSpace(opts.NewOut) != "" {
		if err := seen.WriteJobs(opts.NewOut, unseenJobs); err != nil {
			return fmt.Errorf("write --new-out: %w", err)
		}
	}

	format, err := resolveFormat(ctx, opts, outputPath)
	if err != nil {
		return err
	}

	writer := ctx.Out
	var file *os.File
	if outputPath != "" {
		file, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	hyperlinks := colorEnabled && isTTY(writer)
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(opts.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	if err := export.WriteJobs(writer, outputJobs, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   hyperlinks,
		LinkStyle:    linkStyle,
	}); err != nil {
		return err
	}

	if opts.SeenUpdate && strings.TrimSpace(opts.Seen) != "" {
		if err := updateSeenHistory(opts.Seen, unseenJobs); err != nil {
			return err
		}
	}

	summaryJobs := jobs
	if strings.TrimSpace(opts.Seen) != "" {
		summaryJobs = unseenJobs
	}
	printSearchSummary(ctx, summaryJobs)

	return nil
}

func pathsEqual(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil {
		return absA == absB
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

func updateSeenHistory(seenPath string, inputJobs []models.Job) error {
	seenJobs, err := seen.ReadJobsAllowMissing(seenPath)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}

	mergedJobs, _ := seen.Merge(seenJobs, inputJobs)
	if err := seen.WriteJobs(seenPath, mergedJobs); err != nil {
		return fmt.Errorf("write --seen: %w", err)
	}

	return nil
}

// perSourceBudget spreads a total result budget across the four
// always-on boards, matching the web form's distribution.
func perSourceBudget(total int) int {
	per := total / 4
	if per < 1 {
		per = 1
	}
	return per
}

func selectSources(registry map[string]source.Source, sourcesArg string, params models.SearchParams) ([]string, error) {
	requested := source.NormalizeKeys(strings.Split(sourcesArg, ","))

	if len(requested) == 0 || (len(requested) == 1 && requested[0] == "auto") {
		return aggregator.SelectKeys(params), nil
	}
	if len(requested) == 1 && requested[0] == "all" {
		return source.Keys(), nil
	}

	for _, key := range requested {
		if _, ok := registry[key]; !ok {
			return nil, fmt.Errorf("unknown source: %s", key)
		}
	}
	return requested, nil
}

func printSearchSummary(ctx *Context, jobs []models.Job) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintf(ctx.Err, "%s\n", formatSearchSummary(jobs))
}

func formatSearchSummary(jobs []models.Job) string {
	counts := countJobsBySource(jobs)
	if len(counts) == 0 {
		return "summary: jobs=0 by_source=none"
	}

	parts := make([]string, 0, len(counts))
	for _, count := range counts {
		parts = append(parts, fmt.Sprintf("%s:%d", count.source, count.total))
	}

	return fmt.Sprintf("summary: jobs=%d by_source=%s", len(jobs), strings.Join(parts, ", "))
}

type sourceCount struct {
	source string
	total  int
}

func countJobsBySource(jobs []models.Job) []sourceCount {
	totals := make(map[string]int, len(jobs))
	for _, job := range jobs {
		name := strings.ToLower(strings.TrimSpace(job.Source))
		if name == "" {
			name = "unknown"
		}
		totals[name]++
	}

	counts := make([]sourceCount, 0, len(totals))
	for name, total := range totals {
		counts = append(counts, sourceCount{source: name, total: total})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].source < counts[j].source
	})
	return counts
}

func parseQueries(raw string) ([]string, error) {
	return mergeAndNormalizeQueries(splitQueries(raw), nil)
}

func resolveQueries(raw string, queryFile string) ([]string, error) {
	positionalQueries := splitQueries(raw)
	var fileQueries []string
	if strings.TrimSpace(queryFile) != "" {
		var err error
		fileQueries, err = loadQueriesFromJSON(queryFile)
		if err != nil {
			return nil, err
		}
	}
	return mergeAndNormalizeQueries(positionalQueries, fileQueries)
}

func splitQueries(raw string) []string {
	parts := strings.Split(raw, ",")
	queries := make([]string, 0, len(parts))

	for _, part := range parts {
		query := strings.TrimSpace(part)
		if query == "" {
			continue
		}
		queries = append(queries, query)
	}

	return queries
}

func mergeAndNormalizeQueries(primary []string, secondary []string) ([]string, error) {
	queries := make([]string, 0, len(primary)+len(secondary))
	seenQueries := make(map[string]struct{}, len(primary)+len(secondary))

	appendUnique := func(rawQuery string) {
		query := strings.TrimSpace(rawQuery)
		if query == "" {
			return
		}
		normalized := strings.ToLower(query)
		if _, exists := seenQueries[normalized]; exists {
			return
		}
		seenQueries[normalized] = struct{}{}
		queries = append(queries, query)
	}

	for _, query := range primary {
		appendUnique(query)
	}
	for _, query := range secondary {
		appendUnique(query)
	}

	if len(queries) == 0 {
		return nil, fmt.Errorf("at least one non-empty query is required")
	}
	if len(queries) > maxQueries {
		return nil, fmt.Errorf("too many queries: max %d", maxQueries)
	}

	return queries, nil
}

func loadQueriesFromJSON(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read --query-file %q: %w", path, err)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("parse --query-file %q: %w", path, err)
	}

	switch value := decoded.(type) {
	case []any:
		return parseStringArray(value, path, "root array")
	case map[string]any:
		rawTitles, ok := value["job_titles"]
		if !ok {
			return nil, fmt.Errorf("invalid --query-file %q: expected top-level string array or object with \"job_titles\" string array", path)
		}
		titles, ok := rawTitles.([]any)
		if !ok {
			return nil, fmt.Errorf("invalid --query-file %q: field \"job_titles\" must be an array of strings", path)
		}
		return parseStringArray(titles, path, "job_titles")
	default:
		return nil, fmt.Errorf("invalid --query-file %q: expected top-level string array or object with \"job_titles\" string array", path)
	}
}

func parseStringArray(values []any, path string, fieldName string) ([]string, error) {
	queries := make([]string, 0, len(values))
	for idx, rawValue := range values {
		query, ok := rawValue.(string)
		if !ok {
			return nil, fmt.Errorf("invalid --query-file %q: %s[%d] must be a string", path, fieldName, idx)
		}
		query = strings.TrimSpace(query)
		if query == "" {
			continue
		}
		queries = append(queries, query)
	}
	return queries, nil
}

// mergeUniqueJobs appends incoming jobs whose fingerprint has not been
// seen yet, preserving the order of earlier queries.
func mergeUniqueJobs(existing []models.Job, incoming []models.Job) []models.Job {
	if len(incoming) == 0 {
		return existing
	}

	keys := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]models.Job, 0, len(existing)+len(incoming))

	for _, job := range existing {
		merged = append(merged, job)
		keys[aggregator.Fingerprint(job)] = struct{}{}
	}

	for _, job := range incoming {
		key := aggregator.Fingerprint(job)
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		merged = append(merged, job)
	}

	return merged
}

func limitJobs(jobs []models.Job, limit int) []models.Job {
	if limit <= 0 || len(jobs) <= limit {
		return jobs
	}
	return jobs[:limit]
}

func sortJobsByScore(jobs []models.Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].Score > jobs[j].Score
	})
}

func reportSourceFailures(ctx *Context, failures []aggregator.Failure) {
	if ctx == nil || ctx.UI == nil {
		return
	}
	if !ctx.Verbose {
		return
	}

	if len(failures) == 0 {
		return
	}

	ctx.UI.Warnf("\nSource errors:")
	for _, failure := range failures {
		ctx.UI.Warnf("  %s: %v", failure.Source, failure.Err)
	}
}

func resolveOutputPath(opts SearchOptions) string {
	if opts.Output != "" {
		return opts.Output
	}
	if opts.Out != "" {
		return opts.Out
	}
	return opts.File
}

func resolveFormat(ctx *Context, opts SearchOptions, outputPath string) (export.Format, error) {
	if outputPath != "" {
		if ctx.JSONOutput {
			return export.FormatJSON, nil
		}
		if ctx.PlainText {
			return export.FormatTSV, nil
		}
		if opts.Format == "" {
			return export.FormatCSV, nil
		}
		return parseFormat(opts.Format)
	}

	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if opts.Format != "" {
		return parseFormat(opts.Format)
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return export.FormatCSV, nil
	case "json":
		return export.FormatJSON, nil
	case "md", "markdown":
		return export.FormatMarkdown, nil
	case "tsv":
		return export.FormatTSV, nil
	case "table", "":
		return export.FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func defaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

func startSearchIndicator(ctx *Context) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return nil
	}
	if !isTTY(ctx.Err) {
		return nil
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2KSearching... %ds %s", seconds, frame)
				index++
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}
