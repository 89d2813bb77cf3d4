package hackcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Rate limit headers sent with 429 responses
const (
	headerRateLimit     = "X-HackCheck-Limit"
	headerRateRemaining = "X-HackCheck-Remaining"
)

// Client represents a HackCheck API client
type Client struct {
	baseURL     string
	apiKey      string
	userAgent   string
	httpClient  *http.Client
	concurrency int
	logger      zerolog.Logger
	closed      atomic.Bool
}

// NewClient creates a new HackCheck client
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL:     strings.TrimRight(o.baseURL, "/"),
		apiKey:      apiKey,
		userAgent:   o.userAgent,
		httpClient:  httpClient,
		concurrency: o.concurrency,
		logger:      logger,
	}, nil
}

// Search queries breach records matching opts
func (c *Client) Search(ctx context.Context, opts SearchOptions) (*SearchResponse, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	var result *SearchResponse
	err := c.do(ctx, http.MethodGet, opts.Endpoint(), nil, func(body []byte) error {
		var err error
		result, err = DecodeSearchResponse(body)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("field", opts.Field.String()).
		Int("databases", result.Databases).
		Int("results", len(result.Results)).
		Msg("Search completed")

	return result, nil
}

// Check reports whether opts.Query appears in breach data
func (c *Client) Check(ctx context.Context, opts CheckOptions) (bool, error) {
	if err := validateOptions(opts); err != nil {
		return false, err
	}

	var result *CheckResponse
	err := c.do(ctx, http.MethodPost, "/check", opts, func(body []byte) error {
		var err error
		result, err = DecodeCheckResponse(body)
		return err
	})
	if err != nil {
		return false, err
	}

	return result.Found, nil
}

// GetMonitors lists the asset and domain monitors owned by the API key
func (c *Client) GetMonitors(ctx context.Context) (*GetMonitorsResponse, error) {
	var result *GetMonitorsResponse
	err := c.do(ctx, http.MethodGet, "/monitors", nil, func(body []byte) error {
		var err error
		result, err = DecodeGetMonitorsResponse(body)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("asset_monitors", len(result.AssetMonitors)).
		Int("domain_monitors", len(result.DomainMonitors)).
		Msg("Retrieved monitors")

	return result, nil
}

// UpdateAssetMonitor replaces the watched asset of a monitor
func (c *Client) UpdateAssetMonitor(ctx context.Context, id string, params UpdateAssetMonitorParams) (*AssetMonitor, error) {
	if id == "" {
		return nil, &ValidationError{Errors: []string{"monitor id is required"}}
	}
	if err := validateOptions(params); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/monitors/asset/%s", url.PathEscape(id))

	var result *AssetMonitor
	err := c.do(ctx, http.MethodPut, path, params, func(body []byte) error {
		var err error
		result, err = DecodeAssetMonitor(body)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateDomainMonitor replaces the watched domain of a monitor
func (c *Client) UpdateDomainMonitor(ctx context.Context, id string, params UpdateDomainMonitorParams) (*DomainMonitor, error) {
	if id == "" {
		return nil, &ValidationError{Errors: []string{"monitor id is required"}}
	}

	path := fmt.Sprintf("/monitors/domain/%s", url.PathEscape(id))

	var result *DomainMonitor
	err := c.do(ctx, http.MethodPut, path, params, func(body []byte) error {
		var err error
		result, err = DecodeDomainMonitor(body)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SearchURL returns the absolute URL Search would request for opts
func (c *Client) SearchURL(opts SearchOptions) string {
	return c.baseURL + opts.Endpoint()
}

// Close releases idle connections held by the transport. It is safe to call
// more than once; operations after Close fail with ErrClientClosed.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.httpClient.CloseIdleConnections()
	c.logger.Debug().Msg("HackCheck client closed")
	return nil
}

// do performs one exchange. The status code is classified before decode is
// called, so error responses never reach a success decoder. Transport errors
// are returned unchanged.
func (c *Client) do(ctx context.Context, method, path string, body any, decode func([]byte) error) error {
	if c.closed.Load() {
		return ErrClientClosed
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("method", method).
			Str("endpoint", endpointLabel(path)).
			Msg("HackCheck request failed")
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpointLabel(path)).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("HackCheck API request")

	if err := classifyResponse(resp, data); err != nil {
		return err
	}

	return decode(data)
}

// classifyResponse maps error statuses onto the client's error variants.
// Any other status is treated as success.
func classifyResponse(resp *http.Response, data []byte) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		var errResp errorResponse
		if err := json.Unmarshal(data, &errResp); err != nil {
			return &ServerError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		}
		switch errResp.Error {
		case messageInvalidAPIKey:
			return &InvalidAPIKeyError{Message: errResp.Error}
		case messageUnauthorizedAddress:
			return &UnauthorizedIPAddressError{Message: errResp.Error}
		default:
			return &ServerError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}

	case http.StatusTooManyRequests:
		return &RateLimitError{
			Limit:     headerInt(resp.Header, headerRateLimit),
			Remaining: headerInt(resp.Header, headerRateRemaining),
		}

	case http.StatusBadRequest, http.StatusNotFound:
		var errResp errorResponse
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	return nil
}

// headerInt parses an integer header, defaulting to 0
func headerInt(h http.Header, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(h.Get(key)))
	if err != nil {
		return 0
	}
	return n
}

// endpointLabel drops the searched value from a path before logging
func endpointLabel(path string) string {
	if !strings.HasPrefix(path, "/search/") {
		return path
	}
	parts := strings.SplitN(strings.TrimPrefix(path, "/search/"), "/", 2)
	return "/search/" + parts[0]
}
