// Package http provides the network transport and the MediaWiki content
// API client.
package http

import (
	"context"
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/fwojciec/grail"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Transport defaults.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultRetries      = 5
	DefaultRetryWait    = 800 * time.Millisecond
	DefaultRetryMaxWait = 20 * time.Second
	DefaultUserAgent    = "grail/1.0 (+https://github.com/fwojciec/grail)"
)

// Ensure Client implements grail.Fetcher at compile time.
var _ grail.Fetcher = (*Client)(nil)

// Client performs GET requests with a bounded retry policy on throttling
// and server errors. It does not retry 403 responses.
type Client struct {
	client *resty.Client

	timeout      time.Duration
	retries      int
	retryWait    time.Duration
	retryMaxWait time.Duration
	userAgent    string
	cloudflare   bool
	limiter      *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetries sets how many times a retryable response is retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.retries = n
	}
}

// WithRetryWait sets the base and maximum backoff between retries.
func WithRetryWait(base, maxWait time.Duration) Option {
	return func(c *Client) {
		c.retryWait = base
		c.retryMaxWait = maxWait
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRateLimit caps outgoing requests per second. Zero disables the cap.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithCloudflareBypass wraps the transport with browser-like TLS and
// header fingerprints.
func WithCloudflareBypass() Option {
	return func(c *Client) {
		c.cloudflare = true
	}
}

// NewClient creates a new Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout:      DefaultFetchTimeout,
		retries:      DefaultRetries,
		retryWait:    DefaultRetryWait,
		retryMaxWait: DefaultRetryMaxWait,
		userAgent:    DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	client := resty.New()
	client.SetTimeout(c.timeout)
	client.SetHeader("User-Agent", c.userAgent)
	client.SetRetryCount(c.retries)
	client.SetRetryWaitTime(c.retryWait)
	client.SetRetryMaxWaitTime(c.retryMaxWait)
	client.AddRetryCondition(retryable)
	if c.cloudflare {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	c.client = client

	return c
}

// retryable reports whether a response is worth another attempt: throttling
// and transient server errors. Transport errors are retried by resty itself.
func retryable(r *resty.Response, err error) bool {
	if r == nil {
		return false
	}
	switch r.StatusCode() {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Fetch retrieves the body of url.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	return c.Get(ctx, url, nil)
}

// Get performs a GET request with query params and returns the body.
// A non-200 final response is returned as *grail.StatusError.
func (c *Client) Get(ctx context.Context, url string, params map[string]string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(url)
	if err != nil {
		return "", err
	}

	if resp.StatusCode() != http.StatusOK {
		return "", &grail.StatusError{StatusCode: resp.StatusCode(), URL: url}
	}

	return string(resp.Body()), nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
