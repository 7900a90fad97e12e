package source

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Kenengmathias/Hunter/internal/network"
)

const apiTimeout = 15 * time.Second

// Registry builds every source. API sources share one plain HTTP
// client; each scraper gets its own TLS client so cookies do not
// leak between boards.
func Registry(creds Credentials, rotator *network.Rotator) (map[string]Source, error) {
	api := &http.Client{Timeout: apiTimeout}

	indeedClient, err := network.NewClient(rotator)
	if err != nil {
		return nil, fmt.Errorf("build indeed client: %w", err)
	}
	jobbermanClient, err := network.NewClient(rotator)
	if err != nil {
		return nil, fmt.Errorf("build jobberman client: %w", err)
	}

	return map[string]Source{
		KeyJooble:    NewJooble(creds.JoobleKey, api),
		KeyAdzuna:    NewAdzuna(creds.AdzunaAppID, creds.AdzunaAppKey, api),
		KeyJSearch:   NewJSearch(creds.JSearchKey, api),
		KeyIndeed:    NewIndeed(indeedClient),
		KeyJobberman: NewJobberman(jobbermanClient),
	}, nil
}
