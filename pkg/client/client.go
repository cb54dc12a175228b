// Package client provides the wallhaven HTTP client with typed errors,
// optional retries, metrics and the API's endpoint methods.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for wallhaven client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallhaven_requests_total",
		Help: "Total wallhaven requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wallhaven_request_duration_seconds",
		Help:    "Wallhaven request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallhaven_errors_total",
		Help: "Total wallhaven errors by class",
	}, []string{"class"})
)

// DefaultUserAgent identifies the client to the API.
const DefaultUserAgent = "wallhaven-client/0.1.0"

var apiKeyExpr = regexp.MustCompile(`^[a-zA-Z0-9]{32}$`)

// Client is the wallhaven API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the API (default https://wallhaven.cc/api/v1)
	BaseURL string

	// APIKey is optional. It is required for NSFW content, user settings and
	// the key owner's collections.
	APIKey string

	// User-Agent header
	UserAgent string

	// Timeout per HTTP request
	Timeout time.Duration

	// PageDelay is the pause between page requests of paginated fetches.
	PageDelay time.Duration

	// Retry
	Retry RetryConfig

	// HTTPClient overrides the default transport (optional).
	HTTPClient *http.Client

	// Logger overrides the global logger (optional).
	Logger *zerolog.Logger
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(apiKey string) Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		APIKey:    apiKey,
		UserAgent: DefaultUserAgent,
		Timeout:   10 * time.Second,
		PageDelay: 500 * time.Millisecond,
		Retry:     DefaultRetryConfig(),
	}
}

// New creates a new wallhaven client.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("base url must be an absolute http(s) url (got %q)", cfg.BaseURL)
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be > 0 (got %s)", cfg.Timeout)
	}

	if cfg.PageDelay < 0 {
		return nil, fmt.Errorf("page_delay must be >= 0 (got %s)", cfg.PageDelay)
	}

	if cfg.Retry.MaxAttempts < 1 {
		return nil, fmt.Errorf("max_attempts must be >= 1 (got %d)", cfg.Retry.MaxAttempts)
	}

	if cfg.APIKey != "" && !apiKeyExpr.MatchString(cfg.APIKey) {
		return nil, fmt.Errorf("api key must be 32 alphanumeric characters")
	}

	logger := log.With().Str("component", "wallhaven-client").Logger()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "wallhaven-client").Logger()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(base.String(), "/"),
		config:     cfg,
		logger:     logger,
	}, nil
}

// HasAPIKey reports whether requests are authenticated.
func (c *Client) HasAPIKey() bool {
	return c.config.APIKey != ""
}

// get performs a GET request against a route and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, r route, vars map[string]string, params url.Values, out any) error {
	query := url.Values{}
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}
	if c.config.APIKey != "" {
		query.Set("apikey", c.config.APIKey)
	}

	rawURL := c.baseURL + r.path(vars)
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(r.name).Observe(time.Since(startTime).Seconds())
	}()

	return retryWithBackoff(ctx, c.config.Retry, func() error {
		return c.do(ctx, r.name, rawURL, out)
	})
}

// do executes a single request attempt.
func (c *Client) do(ctx context.Context, endpoint, rawURL string, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Msg("Executing wallhaven request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return &APIError{
			ErrorClass: ErrorClassNetwork,
			Message:    "request failed",
			Err:        unwrapURLError(err),
		}
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		apiErr := statusError(resp.StatusCode, c.HasAPIKey())
		errorsTotal.WithLabelValues(string(apiErr.ErrorClass)).Inc()
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(apiErr.ErrorClass)).
			Msg("Wallhaven request error")
		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	return nil
}

// unwrapURLError strips the *url.Error wrapper, whose message repeats the
// request URL including the API key.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
