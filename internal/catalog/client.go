package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pmvhaven/internal/document"
	"pmvhaven/internal/logging"
	"pmvhaven/internal/services"
)

const (
	watchPagePath = "/api/videos/%s/watch-page"
	searchPath    = "/api/videos/search"

	maxBodySnippet = 1000
)

// Searcher defines the catalog operations used by identification.
type Searcher interface {
	WatchPage(ctx context.Context, videoID string) (document.Value, error)
	Search(ctx context.Context, query string, opts SearchOptions) (document.Value, error)
}

// SearchOptions carries the paging parameters of the search endpoint.
type SearchOptions struct {
	Limit int
	Page  int
}

// Timeouts bounds every request uniformly.
type Timeouts struct {
	Connect time.Duration
	Read    time.Duration
}

// Client provides access to the PMVHaven API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewHTTPClient builds an HTTP client whose dial and response-header waits are
// bounded by the supplied timeouts.
func NewHTTPClient(t Timeouts) *http.Client {
	dialer := &net.Dialer{Timeout: t.Connect}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   t.Connect,
		ResponseHeaderTimeout: t.Read,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          4,
		IdleConnTimeout:       30 * time.Second,
	}
	return &http.Client{Transport: transport}
}

// New creates a catalog client rooted at the site base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("catalog base url %q is not absolute", baseURL)
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "Mozilla/5.0",
		httpClient: NewHTTPClient(Timeouts{Connect: 10 * time.Second, Read: 20 * time.Second}),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// BaseURL returns the site root used for API calls and canonical links.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WatchPage fetches the full watch-page payload for a video id.
func (c *Client) WatchPage(ctx context.Context, videoID string) (document.Value, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return document.Value{}, services.Wrap(services.ErrInvalidInput, "catalog", "watch_page", "video id must not be empty", nil)
	}
	endpoint := c.baseURL + fmt.Sprintf(watchPagePath, url.PathEscape(videoID))
	return c.getJSON(ctx, "watch_page", endpoint, nil)
}

// Search runs a keyword search and returns the raw response document.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (document.Value, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return document.Value{}, services.Wrap(services.ErrInvalidInput, "catalog", "search", "query must not be empty", nil)
	}
	if opts.Limit <= 0 {
		opts.Limit = 32
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(opts.Limit))
	params.Set("page", strconv.Itoa(opts.Page))
	params.Set("q", query)
	return c.getJSON(ctx, "search", c.baseURL+searchPath, params)
}

func (c *Client) getJSON(ctx context.Context, operation, endpoint string, params url.Values) (document.Value, error) {
	target, err := url.Parse(endpoint)
	if err != nil {
		return document.Value{}, services.Wrap(services.ErrInvalidInput, "catalog", operation, "parse url", err)
	}
	if len(params) > 0 {
		target.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return document.Value{}, services.Wrap(services.ErrInvalidInput, "catalog", operation, "build request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", c.baseURL+"/")

	c.logger.Debug("catalog request",
		logging.String("operation", operation),
		logging.String("url", target.String()))

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return document.Value{}, services.Wrap(services.ErrTransport, "catalog", operation,
			fmt.Sprintf("request failed (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return document.Value{}, services.Wrap(services.ErrTransport, "catalog", operation,
			fmt.Sprintf("read body (latency=%v)", latency), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.WarnWithContext(c.logger, "catalog returned non-OK status", "catalog_http_status",
			logging.String("operation", operation),
			logging.Int("status", resp.StatusCode),
			logging.Duration("latency", latency),
			logging.String(logging.FieldErrorHint, "the body is still decoded; check the remote API"),
			logging.String(logging.FieldImpact, "response may carry no usable data"))
	}

	payload, err := document.Parse(body)
	if err != nil {
		logging.ErrorWithContext(c.logger, "catalog response is not JSON", "catalog_decode_failed",
			logging.String("operation", operation),
			logging.Int("status", resp.StatusCode),
			logging.String("content_type", resp.Header.Get("Content-Type")),
			logging.String("body", snippet(body)),
			logging.Error(err))
		return document.Value{}, services.Wrap(services.ErrBadResponse, "catalog", operation,
			fmt.Sprintf("non-JSON response (HTTP %d)", resp.StatusCode), err)
	}
	if payload.Has("error") {
		message, _ := payload.Get("error").Scalar()
		return document.Value{}, services.Wrap(services.ErrBadResponse, "catalog", operation,
			fmt.Sprintf("remote error (HTTP %d): %s", resp.StatusCode, strings.TrimSpace(message)), nil)
	}

	c.logger.Debug("catalog response",
		logging.String("operation", operation),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency))
	return payload, nil
}

func snippet(body []byte) string {
	if len(body) > maxBodySnippet {
		body = body[:maxBodySnippet]
	}
	return string(body)
}
