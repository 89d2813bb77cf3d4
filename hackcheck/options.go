package hackcheck

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the HackCheck API origin
	DefaultBaseURL = "https://api.hackcheck.io"
	// DefaultTimeout bounds each exchange when no custom HTTP client is given
	DefaultTimeout = 30 * time.Second
	// DefaultConcurrency is the number of in-flight requests CheckMany allows
	DefaultConcurrency = 5
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	userAgent   string
	concurrency int
}

func defaultOptions() *clientOptions {
	return &clientOptions{
		baseURL:     DefaultBaseURL,
		timeout:     DefaultTimeout,
		userAgent:   "hackcheck-go",
		concurrency: DefaultConcurrency,
	}
}

// WithBaseURL overrides the API origin. Mostly useful in tests.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient sets the transport used for every exchange.
// The client still closes its idle connections on Close.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout. Ignored when WithHTTPClient is used.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithConcurrency sets how many checks CheckMany runs at once.
func WithConcurrency(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}
