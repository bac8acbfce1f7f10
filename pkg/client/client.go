// Package client provides the core HTTP client for the manufacturing
// operations API with retries, caching, and error handling.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/leading2lean/lesgo/pkg/cache"
)

// Prometheus metrics for API client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "l2l_requests_total",
		Help: "Total API requests by resource and status",
	}, []string{"resource", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "l2l_request_duration_seconds",
		Help:    "API request duration in seconds by resource",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"resource"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "l2l_errors_total",
		Help: "Total API errors by class",
	}, []string{"class"})
)

// apiBasePath is the versioned prefix every resource path hangs off.
const apiBasePath = "/api/1.0"

// Client is the main API client.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API origin, e.g. "https://example.leading2lean.com".
	BaseURL string

	// Credentials carry the API key applied to every request.
	Credentials *Credentials

	// UserAgent header sent with every request.
	UserAgent string

	// Timeout for a single HTTP round trip.
	Timeout time.Duration

	// Retry controls backoff for 429/5xx/network failures.
	Retry RetryConfig

	// Redis client for the optional GET response cache.
	Redis *redis.Client

	// CacheTTL is how long GET responses are cached. Zero disables caching.
	CacheTTL time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(baseURL string, creds *Credentials) Config {
	return Config{
		BaseURL:     baseURL,
		Credentials: creds,
		UserAgent:   "lesgo/0.1.0",
		Timeout:     30 * time.Second,
		Retry:       DefaultRetryConfig(),
	}
}

// New creates a new API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if cfg.Credentials == nil {
		return nil, fmt.Errorf("credentials are required")
	}

	if cfg.Credentials.Released() {
		return nil, ErrCredentialsReleased
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = "lesgo/0.1.0"
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryConfig()
	}

	logger := log.With().Str("component", "l2l-client").Logger()

	var cacheManager *cache.Manager
	if cfg.Redis != nil && cfg.CacheTTL > 0 {
		cacheManager = cache.NewManager(cfg.Redis)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  cacheManager,
		config: cfg,
		logger: logger,
	}, nil
}

// GetJSON performs a GET against a resource path and decodes the enveloped
// response data into out.
func (c *Client) GetJSON(ctx context.Context, resource string, query url.Values, out any) error {
	body, err := c.doGet(ctx, resource, query)
	if err != nil {
		return err
	}
	return decodeEnvelope(body, out)
}

// PostForm sends a form-encoded POST and decodes the enveloped response data
// into out.
func (c *Client) PostForm(ctx context.Context, resource string, form url.Values, out any) error {
	body, err := c.execute(ctx, http.MethodPost, c.endpointURL(resource, nil), resource, form.Encode())
	if err != nil {
		return err
	}
	return decodeEnvelope(body, out)
}

// FetchPage requests one page of a collection resource with the given filter
// query, page size and offset. It satisfies the pagination.PageFetcher
// contract.
func (c *Client) FetchPage(ctx context.Context, resource string, query url.Values, limit, offset int) ([]map[string]any, error) {
	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var page []map[string]any
	if err := c.GetJSON(ctx, resource, q, &page); err != nil {
		return nil, err
	}
	return page, nil
}

// doGet reads through the cache when one is configured.
func (c *Client) doGet(ctx context.Context, resource string, query url.Values) ([]byte, error) {
	key := cache.Key{Resource: resource, Query: query}

	if c.cache != nil {
		body, err := c.cache.Get(ctx, key)
		if err == nil {
			c.logger.Debug().
				Str("resource", resource).
				Msg("Cache hit")
			return body, nil
		}
		if err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("resource", resource).Msg("Cache get error")
		}
	}

	body, err := c.execute(ctx, http.MethodGet, c.endpointURL(resource, query), resource, "")
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body, c.config.CacheTTL); err != nil {
			c.logger.Warn().Err(err).Str("resource", resource).Msg("Failed to cache response")
		}
	}
	return body, nil
}

// endpointURL builds the full URL for a resource path.
func (c *Client) endpointURL(resource string, query url.Values) string {
	u := strings.TrimRight(c.config.BaseURL, "/") + apiBasePath + "/" + strings.Trim(resource, "/") + "/"
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// execute performs the HTTP round trip with retry logic and returns the raw
// response body. Non-2xx responses become *APIError; the request is rebuilt
// on every attempt so form bodies can be resent.
func (c *Client) execute(ctx context.Context, method, rawURL, resource, form string) ([]byte, error) {
	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(resource).Observe(time.Since(startTime).Seconds())
	}()

	var body []byte
	err := retryWithBackoff(ctx, c.logger, c.config.Retry, func() error {
		var reader io.Reader
		if form != "" {
			reader = strings.NewReader(form)
		}

		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return &APIError{ErrorClass: ErrorClassClient, Message: "build request", Err: err}
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.config.UserAgent)
		req.Header.Set("X-Request-ID", uuid.NewString())
		if form != "" {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}

		if err := c.config.Credentials.apply(req); err != nil {
			return &APIError{ErrorClass: ErrorClassClient, Message: "apply credentials", Err: err}
		}

		c.logger.Debug().
			Str("resource", resource).
			Str("method", method).
			Msg("Executing API request")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Error().Err(err).Str("resource", resource).Msg("HTTP request failed")
			errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			requestsTotal.WithLabelValues(resource, "network_error").Inc()
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			requestsTotal.WithLabelValues(resource, "read_error").Inc()
			return err
		}

		requestsTotal.WithLabelValues(resource, strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			errClass := classifyStatus(resp.StatusCode)
			errorsTotal.WithLabelValues(string(errClass)).Inc()

			c.logger.Warn().
				Str("resource", resource).
				Int("status", resp.StatusCode).
				Str("error_class", string(errClass)).
				Msg("API request error")

			return &APIError{
				StatusCode: resp.StatusCode,
				ErrorClass: errClass,
				Message:    resp.Status,
			}
		}

		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Close releases the client's credentials. The client must not be used after
// Close.
func (c *Client) Close() error {
	c.config.Credentials.Release()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
