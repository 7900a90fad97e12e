package network

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
)

// Proxy check statuses. Anything else is an error_<code> or a short
// transport error description.
const (
	StatusWorking       = "working"
	StatusTimeout       = "timeout"
	StatusInvalidFormat = "invalid_format"
)

// DefaultCheckTarget echoes the caller's IP so working proxies also
// report their exit address.
const DefaultCheckTarget = "http://httpbin.org/ip"

type CheckResult struct {
	Input     string `json:"-"`
	Proxy     string `json:"proxy"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
	ExitIP    string `json:"ip,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (r CheckResult) Working() bool {
	return r.Status == StatusWorking
}

// CheckProxies validates every entry against the target with a worker
// pool. Results keep the input order regardless of completion order.
func CheckProxies(ctx context.Context, proxies []string, target string, timeout time.Duration, workers int) []CheckResult {
	if target == "" {
		target = DefaultCheckTarget
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(proxies) {
		workers = len(proxies)
	}

	results := make([]CheckResult, len(proxies))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = checkProxy(ctx, proxies[idx], target, timeout)
			}
		}()
	}

	for idx := range proxies {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return results
}

// WorkingInputs returns the original entries of all working proxies,
// ready to be reassembled into a PROXY_LIST value.
func WorkingInputs(results []CheckResult) []string {
	var working []string
	for _, res := range results {
		if res.Working() {
			working = append(working, res.Input)
		}
	}
	return working
}

func checkProxy(ctx context.Context, raw string, target string, timeout time.Duration) CheckResult {
	result := CheckResult{Input: raw, Proxy: strings.TrimSpace(raw)}

	proxyURL, err := ParseProxy(raw)
	if err != nil {
		result.Status = StatusInvalidFormat
		result.Error = err.Error()
		return result
	}
	result.Proxy = proxyURL.Host

	rotator, err := NewRotator([]string{raw}, time.Minute)
	if err != nil {
		result.Status = StatusInvalidFormat
		result.Error = err.Error()
		return result
	}

	seconds := int(timeout.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	client, err := NewClientWithTimeout(rotator, seconds)
	if err != nil {
		result.Status = "error: " + clipError(err)
		return result
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := fhttp.NewRequestWithContext(reqCtx, fhttp.MethodGet, target, nil)
	if err != nil {
		result.Status = "error: " + clipError(err)
		return result
	}
	req.Header.Set("User-Agent", ChromeUserAgent())

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		if isTimeoutError(err) {
			result.Status = StatusTimeout
		} else {
			result.Status = "error: " + clipError(err)
		}
		return result
	}
	defer resp.Body.Close()

	result.LatencyMS = time.Since(start).Milliseconds()
	if resp.StatusCode != 200 {
		result.Status = "error_" + strconv.Itoa(resp.StatusCode)
		return result
	}

	result.Status = StatusWorking
	result.ExitIP = parseExitIP(resp.Body)
	return result
}

// parseExitIP pulls the origin address from an httpbin-style JSON body.
func parseExitIP(body io.Reader) string {
	var payload struct {
		Origin string `json:"origin"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err != nil {
		return "unknown"
	}
	if strings.TrimSpace(payload.Origin) == "" {
		return "unknown"
	}
	return payload.Origin
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded")
}

func clipError(err error) string {
	msg := err.Error()
	if len(msg) > 50 {
		msg = msg[:50]
	}
	return msg
}
