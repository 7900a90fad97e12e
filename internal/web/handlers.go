package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Kenengmathias/Hunter/internal/models"
)

// Flash messages shown on the index page.
const (
	flashEmptyTitle  = "Please enter a job title or keywords."
	flashNoJobs      = "No jobs found. Try different keywords or location."
	flashNotFound    = "Page not found."
	flashServerError = "An internal error occurred. Please try again."
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.notFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, http.StatusOK, pageData{Form: defaultForm()})
	case http.MethodPost:
		s.handleSearch(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	form, err := parseSearchForm(r)
	if err != nil {
		s.render(w, http.StatusOK, pageData{
			Flashes: []string{fmt.Sprintf("Search error: %v. Please try again.", err)},
			Form:    form,
		})
		return
	}

	if form.JobTitle == "" {
		s.render(w, http.StatusOK, pageData{
			Flashes: []string{flashEmptyTitle},
			Form:    form,
		})
		return
	}

	s.logger.Info().
		Str("query", form.JobTitle).
		Str("location", form.Location).
		Str("type", form.JobType).
		Bool("local", form.IncludeLocal).
		Msg("job search")

	// The total budget is spread across the four always-on boards.
	perSource := form.MaxResults / 4
	if perSource < 1 {
		perSource = 1
	}

	result := s.searcher.Search(r.Context(), models.SearchParams{
		Keywords:     form.JobTitle,
		Location:     form.Location,
		JobType:      models.NormalizeJobType(form.JobType),
		Limit:        perSource,
		IncludeLocal: form.IncludeLocal,
	})

	flash := flashNoJobs
	if n := len(result.Jobs); n > 0 {
		flash = fmt.Sprintf("Found %d jobs matching your search.", n)
	}

	s.render(w, http.StatusOK, pageData{
		Flashes:         []string{flash},
		Form:            form,
		SearchPerformed: true,
		Jobs:            result.Jobs,
	})
}

func parseSearchForm(r *http.Request) (formValues, error) {
	form := defaultForm()
	if err := r.ParseForm(); err != nil {
		return form, err
	}

	form.JobTitle = strings.TrimSpace(r.PostFormValue("job_title"))
	form.Location = strings.TrimSpace(r.PostFormValue("location"))
	if jobType := r.PostFormValue("job_type"); jobType != "" {
		form.JobType = jobType
	}
	form.IncludeLocal = r.PostFormValue("include_local") == "on"

	if raw := strings.TrimSpace(r.PostFormValue("max_results")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return form, fmt.Errorf("invalid max results %q", raw)
		}
		form.MaxResults = n
	}
	return form, nil
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.logger.Warn().Str("url", r.URL.String()).Msg("not found")
	s.render(w, http.StatusNotFound, pageData{
		Flashes: []string{flashNotFound},
		Form:    defaultForm(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}{Status: "ok", Message: "Hunter job search is running"})
}
