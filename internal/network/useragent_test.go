package network

import (
	"strings"
	"testing"
)

func TestRandomUserAgentComesFromPool(t *testing.T) {
	got := RandomUserAgent()
	for _, ua := range userAgents {
		if got == ua {
			return
		}
	}
	t.Fatalf("RandomUserAgent() = %q, not in pool", got)
}

func TestBrowserUserAgentPools(t *testing.T) {
	if ua := ChromeUserAgent(); !strings.Contains(ua, "Chrome") {
		t.Fatalf("ChromeUserAgent() = %q", ua)
	}
	if ua := FirefoxUserAgent(); !strings.Contains(ua, "Firefox") {
		t.Fatalf("FirefoxUserAgent() = %q", ua)
	}
}

func TestBrowserHeaders(t *testing.T) {
	headers := BrowserHeaders("")
	if headers["User-Agent"] == "" {
		t.Fatalf("missing User-Agent")
	}
	if headers["Accept"] == "" || headers["Accept-Language"] == "" {
		t.Fatalf("missing accept headers: %#v", headers)
	}
	if _, ok := headers["Referer"]; ok {
		t.Fatalf("Referer should be omitted when empty")
	}

	withReferer := BrowserHeaders("https://example.com")
	if withReferer["Referer"] != "https://example.com" {
		t.Fatalf("Referer = %q", withReferer["Referer"])
	}
}
