package web

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/Kenengmathias/Hunter/internal/models"
)

type formValues struct {
	JobTitle     string
	Location     string
	JobType      string
	MaxResults   int
	IncludeLocal bool
}

func defaultForm() formValues {
	return formValues{JobType: models.JobTypeAll, MaxResults: 20}
}

type pageData struct {
	Flashes         []string
	Form            formValues
	SearchPerformed bool
	Jobs            []models.Job
}

// sourceClass maps a display name to its badge CSS class.
func sourceClass(name string) string {
	return "source-" + strings.ToLower(strings.TrimSpace(name))
}

// render buffers the whole page before writing so a template failure
// never leaks half a document behind a 200.
func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	tmpl := s.tmpl
	if s.debug {
		if fresh, err := s.parseTemplate(); err == nil {
			tmpl = fresh
		} else {
			s.logger.Error().Err(err).Msg("template reload failed")
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.logger.Error().Err(err).Msg("render failed")
		http.Error(w, flashServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
