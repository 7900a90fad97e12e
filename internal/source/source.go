package source

import (
	"context"
	"errors"
	"strings"

	"github.com/Kenengmathias/Hunter/internal/models"
)

// Registry keys, stable lowercase identifiers used for selection.
const (
	KeyJooble    = "jooble"
	KeyAdzuna    = "adzuna"
	KeyJSearch   = "jsearch"
	KeyIndeed    = "indeed"
	KeyJobberman = "jobberman"
)

// Display names stamped into Job.Source.
const (
	NameJooble    = "Jooble"
	NameAdzuna    = "Adzuna"
	NameJSearch   = "JSearch"
	NameIndeed    = "Indeed"
	NameJobberman = "Jobberman"
)

// ErrNotConfigured is returned by API sources whose keys are absent.
// The aggregator skips them instead of failing the whole search.
var ErrNotConfigured = errors.New("source not configured")

type Source interface {
	Name() string
	Search(ctx context.Context, params models.SearchParams) ([]models.Job, error)
}

// Credentials carries the API keys read from the environment.
type Credentials struct {
	JoobleKey    string
	AdzunaAppID  string
	AdzunaAppKey string
	JSearchKey   string
}

// Keys returns every registry key in presentation order.
func Keys() []string {
	return []string{KeyJooble, KeyAdzuna, KeyJSearch, KeyIndeed, KeyJobberman}
}

// RequiredEnv maps a registry key to the environment variables the
// source needs. Scrapers need none.
func RequiredEnv(key string) []string {
	switch key {
	case KeyJooble:
		return []string{"JOOBLE_API_KEY"}
	case KeyAdzuna:
		return []string{"ADZUNA_APP_ID", "ADZUNA_APP_KEY"}
	case KeyJSearch:
		return []string{"JSEARCH_API_KEY"}
	default:
		return nil
	}
}

func NormalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		out = append(out, key)
	}
	return out
}
