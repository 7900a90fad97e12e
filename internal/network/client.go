package network

import (
	"errors"
	"net/url"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

var ErrRequestFailed = errors.New("request failed")

// Client wraps a Chrome-fingerprint HTTP client with user agent and
// proxy rotation. Job boards block default Go TLS fingerprints.
type Client struct {
	http    tls_client.HttpClient
	rotator *Rotator
}

func NewClient(rotator *Rotator) (*Client, error) {
	return newClient(rotator, 30)
}

// NewClientWithTimeout is NewClient with a custom timeout, used by the
// proxy checker where 30s per proxy is too slow.
func NewClientWithTimeout(rotator *Rotator, timeoutSeconds int) (*Client, error) {
	return newClient(rotator, timeoutSeconds)
}

func newClient(rotator *Rotator, timeoutSeconds int) (*Client, error) {
	jar, _ := fhttpcookiejar.New(nil)

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(timeoutSeconds),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, err
	}

	return &Client{http: client, rotator: rotator}, nil
}

// Do sends the request with a rotated proxy and a Chrome user agent
// unless the caller set one. Ban-worthy responses are reported back to
// the rotator.
func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	proxy, _ := c.rotateProxy()
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", ChromeUserAgent())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if proxy != nil {
		c.rotator.Report(proxy, resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) rotateProxy() (*url.URL, error) {
	if c.rotator == nil {
		return nil, nil
	}
	proxy, err := c.rotator.Next()
	if err != nil {
		return nil, err
	}

	if proxy != nil {
		_ = c.http.SetProxy(proxy.String())
	}
	return proxy, nil
}
