package network

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:109.0) Gecko/20100101 Firefox/121.0",
}

var uaRand = struct {
	mu  sync.Mutex
	rng *rand.Rand
}{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}

func pickUA(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	uaRand.mu.Lock()
	defer uaRand.mu.Unlock()
	return pool[uaRand.rng.Intn(len(pool))]
}

// RandomUserAgent returns a user agent from the full pool.
func RandomUserAgent() string {
	return pickUA(userAgents)
}

// ChromeUserAgent returns a Chrome user agent, matching the TLS
// fingerprint profile the client presents.
func ChromeUserAgent() string {
	return pickUA(filterUserAgents("Chrome"))
}

// FirefoxUserAgent returns a Firefox user agent.
func FirefoxUserAgent() string {
	return pickUA(filterUserAgents("Firefox"))
}

func filterUserAgents(token string) []string {
	out := make([]string, 0, len(userAgents))
	for _, ua := range userAgents {
		if strings.Contains(ua, token) {
			out = append(out, ua)
		}
	}
	if len(out) == 0 {
		return userAgents
	}
	return out
}

// BrowserHeaders builds a browser-consistent header set around a random
// user agent. Referer is included only when non-empty. Hop-by-hop and
// encoding headers are left to the transport.
func BrowserHeaders(referer string) map[string]string {
	headers := map[string]string{
		"User-Agent":                RandomUserAgent(),
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.9",
		"Cache-Control":             "no-cache",
		"Upgrade-Insecure-Requests": "1",
	}
	if referer != "" {
		headers["Referer"] = referer
	}
	return headers
}
