package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"

	"github.com/Kenengmathias/Hunter/internal/config"
	"github.com/Kenengmathias/Hunter/internal/network"
)

type SmokeCmd struct {
	URL     string `arg:"" optional:"" help:"Page to fetch." default:"http://localhost:8000/"`
	Timeout int    `help:"Request timeout in seconds." default:"30"`
	Proxies string `help:"Comma-separated proxy URLs." env:"HUNTER_PROXIES"`
	EnvFile string `help:"Path to the env file with PROXY_LIST." default:".env"`
}

// Titles served by bot checks instead of the real page.
var blockMarkers = []string{"just a moment", "verify", "captcha", "access denied", "security check"}

func (s *SmokeCmd) Run(ctx *Context) error {
	env, err := config.LoadEnvLenient(s.EnvFile)
	if err != nil {
		return err
	}
	proxies, err := config.LoadProxies(s.Proxies, env.Proxies)
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

	client, err := network.NewClient(rotator)
	if err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.Timeout)*time.Second)
	defer cancel()

	req, err := fhttp.NewRequestWithContext(reqCtx, fhttp.MethodGet, s.URL, nil)
	if err != nil {
		return err
	}
	for key, value := range network.BrowserHeaders("") {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return err
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "(no title)"
	}

	ctx.UI.Infof("%d %s in %dms", resp.StatusCode, s.URL, time.Since(start).Milliseconds())
	fmt.Fprintln(ctx.Out, title)

	if resp.StatusCode != 200 {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if containsAnyFold(title, blockMarkers) {
		ctx.UI.Warnf("Title looks like a bot check, try different proxies.")
	}
	return nil
}

func containsAnyFold(value string, tokens []string) bool {
	value = strings.ToLower(value)
	for _, token := range tokens {
		if strings.Contains(value, token) {
			return true
		}
	}
	return false
}
