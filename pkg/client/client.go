// Package client provides the core Sentry HTTP executor with quota-aware
// waiting, transparent 429 retries and typed error reporting, plus the
// cursor pagination driver for list endpoints.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/issuegaze/issuegaze/pkg/pagination"
	"github.com/issuegaze/issuegaze/pkg/ratelimit"
)

// DefaultRetryAfter is the wait applied to a 429 response whose retry-after
// header is absent or unparseable.
const DefaultRetryAfter = 60 * time.Second

// Prometheus metrics for executor operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "issuegaze_requests_total",
		Help: "Total API requests by path and status",
	}, []string{"path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "issuegaze_request_duration_seconds",
		Help:    "API request duration in seconds by path",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"path"})

	rateLimitRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "issuegaze_rate_limit_retries_total",
		Help: "Total number of requests re-issued after a 429 response",
	})

	transportErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "issuegaze_transport_errors_total",
		Help: "Total transport-level request failures",
	})
)

// Config holds the executor configuration.
type Config struct {
	// BaseURL of the Sentry-compatible API, e.g. https://sentry.io.
	BaseURL string

	// Token is the static bearer credential attached to every request.
	Token string

	// UserAgent identifies this client, optional.
	UserAgent string

	// Timeout applies per HTTP round trip.
	Timeout time.Duration

	// RequestsPerSecond enables a courtesy client-side token bucket below
	// the server quota. Zero disables pacing.
	RequestsPerSecond float64

	// Burst is the token bucket burst size when pacing is enabled.
	Burst int
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(baseURL, token string) Config {
	return Config{
		BaseURL: baseURL,
		Token:   token,
		Timeout: 30 * time.Second,
	}
}

// Client executes single API requests against one connection. It owns the
// quota state for that connection: logical queries that should share quota
// accounting must share the Client instance.
type Client struct {
	httpClient *http.Client
	tracker    *ratelimit.Tracker
	limiter    *rate.Limiter
	config     Config
	logger     zerolog.Logger
}

// New creates a client. BaseURL and Token are required.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tracker:    ratelimit.NewTracker(logger),
		limiter:    limiter,
		config:     cfg,
		logger:     logger,
	}, nil
}

// Response is one HTTP call's worth of result data plus its decoded
// pagination links. It is consumed immediately and never retained.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Links      pagination.Links
}

// QuotaState returns a copy of the current quota observation.
func (c *Client) QuotaState() ratelimit.State {
	return c.tracker.State()
}

// Get executes a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Do executes one API request. It waits out an exhausted quota before
// sending, feeds every response's headers back into the quota tracker, and
// transparently re-issues the request after a 429 for as long as the server
// keeps rejecting (the quota is assumed self-healing; cancel the context to
// abort). Any other non-2xx status fails with *APIError carrying the status
// and raw body. Transport failures fail immediately with no retry.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body []byte) (*Response, error) {
	reqURL, err := c.buildURL(path, query)
	if err != nil {
		return nil, fmt.Errorf("build request URL: %w", err)
	}

	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}()

	for {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("pacing wait: %w", err)
			}
		}

		if wait := c.tracker.ShouldWait(time.Now()); wait > 0 {
			c.tracker.ObserveWait(wait)
			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
		}

		resp, err := c.send(ctx, method, reqURL, body)
		if err != nil {
			transportErrorsTotal.Inc()
			requestsTotal.WithLabelValues(path, "transport_error").Inc()
			c.logger.Error().Err(err).Str("path", path).Msg("Request failed at transport level")
			return nil, &APIError{
				Message: fmt.Sprintf("%s %s", method, path),
				Err:     fmt.Errorf("%w: %w", ErrTransport, err),
			}
		}

		// Quota headers are consumed on every response, including errors.
		c.tracker.UpdateFromHeaders(resp.Header)

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := retryAfter(resp.Header)
			drain(resp.Body)

			rateLimitRetriesTotal.Inc()
			requestsTotal.WithLabelValues(path, "429").Inc()
			c.logger.Warn().
				Str("path", path).
				Dur("retry_after", wait).
				Msg("Rate limited, retrying after server-provided wait")

			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}

		payload, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			transportErrorsTotal.Inc()
			requestsTotal.WithLabelValues(path, "transport_error").Inc()
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    "read response body",
				Err:        fmt.Errorf("%w: %w", ErrTransport, readErr),
			}
		}

		requestsTotal.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			c.logger.Warn().
				Str("path", path).
				Int("status", resp.StatusCode).
				Msg("API request error")
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Body:       string(payload),
				Message:    http.StatusText(resp.StatusCode),
			}
		}

		c.logger.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("bytes", len(payload)).
			Msg("API request complete")

		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       payload,
			Links:      pagination.ParseLinkHeader(resp.Header.Get("link")),
		}, nil
	}
}

// send issues a single HTTP round trip with auth headers attached.
func (c *Client) send(ctx context.Context, method, reqURL string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Content-Type", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	return c.httpClient.Do(req)
}

// buildURL joins the configured base URL with path and query parameters.
func (c *Client) buildURL(path string, query url.Values) (string, error) {
	u, err := url.Parse(strings.TrimRight(c.config.BaseURL, "/") + path)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// retryAfter reads the retry-after header of a 429 response, in integer
// seconds, falling back to DefaultRetryAfter when absent or unparseable.
func retryAfter(headers http.Header) time.Duration {
	raw := headers.Get("retry-after")
	if raw == "" {
		return DefaultRetryAfter
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return DefaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}

// sleep blocks for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// drain discards and closes a response body so the connection can be reused.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	body.Close()
}
