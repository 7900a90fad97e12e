// Package web serves the Hunter search page, static assets, and the
// health endpoint.
package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Kenengmathias/Hunter/internal/aggregator"
	"github.com/Kenengmathias/Hunter/internal/assets"
	"github.com/Kenengmathias/Hunter/internal/models"
)

const (
	readTimeout = 15 * time.Second
	// Write must outlive the slowest source fan-out.
	writeTimeout  = 60 * time.Second
	idleTimeout   = 60 * time.Second
	shutdownGrace = 5 * time.Second
)

// Searcher runs one aggregated search. *aggregator.Aggregator satisfies it.
type Searcher interface {
	Search(ctx context.Context, params models.SearchParams) aggregator.Result
}

// Server carries the handlers behind the Hunter web UI. Templates and
// static files are read from root, where setup materialized them.
type Server struct {
	searcher Searcher
	root     string
	debug    bool
	logger   zerolog.Logger
	tmpl     *template.Template
}

// New parses the index template under root and wires the handlers.
// With debug set the template is re-read on every render.
func New(root string, searcher Searcher, logger zerolog.Logger, debug bool) (*Server, error) {
	s := &Server{searcher: searcher, root: root, debug: debug, logger: logger}

	tmpl, err := s.parseTemplate()
	if err != nil {
		return nil, err
	}
	s.tmpl = tmpl
	return s, nil
}

func (s *Server) templatePath() string {
	return filepath.Join(s.root, filepath.FromSlash(assets.TemplatePath))
}

func (s *Server) parseTemplate() (*template.Template, error) {
	return template.New("index.html").Funcs(template.FuncMap{
		"sourceClass": sourceClass,
	}).ParseFiles(s.templatePath())
}

// Handler returns the routed handler with logging and panic recovery
// wrapped around every request.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/static/", s.handleStatic())

	return s.logRequests(s.recoverPanics(mux))
}

func (s *Server) handleStatic() http.Handler {
	dir := filepath.Join(s.root, "static")
	files := http.StripPrefix("/static/", http.FileServer(http.Dir(dir)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := strings.TrimPrefix(r.URL.Path, "/static/")
		if rel == "" || strings.Contains(rel, "..") {
			s.notFound(w, r)
			return
		}
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			s.notFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// Run serves on addr until ctx is canceled, then drains in-flight
// requests before returning.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info().Str("addr", addr).Msg("Starting Hunter Job Search")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
