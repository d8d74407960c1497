// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package tmdb fetches movie metadata from The Movie Database and turns it into
catalog snapshot rows.

Client Features:
  - Outbound throttling with golang.org/x/time/rate (default 4 requests/s)
  - Circuit breaker protection with sony/gobreaker
  - JSON decoding with goccy/go-json
  - Context support for cancellation and timeouts

Resilience Mechanisms:
  - Circuit Breaker: opens after 5 consecutive failures, half-opens after 30s
  - Client errors (4xx other than 429) do not count as breaker failures, so a
    run of missing movie IDs cannot open the circuit
*/
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Endpoint labels used in metrics and logs.
const (
	EndpointPopular = "popular"
	EndpointDetails = "details"
)

// Request outcomes recorded in metrics.
const (
	outcomeSuccess  = "success"
	outcomeFailure  = "failure"
	outcomeRejected = "rejected"
)

// breakerName labels circuit breaker metrics.
const breakerName = "tmdb-api"

// maxErrorBodySize limits how much of an error response is kept.
const maxErrorBodySize = 4 * 1024

// ErrMissingAPIKey is returned by NewClient without an API key.
var ErrMissingAPIKey = errors.New("tmdb: api key is required")

// StatusError reports a non-200 response.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb: unexpected status %d: %s", e.StatusCode, e.Body)
}

// clientError reports whether the status blames the request rather than
// the service.
func (e *StatusError) clientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}

// Client is a throttled, circuit-broken TMDB API client.
// It is safe for concurrent use.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	imageBaseURL string
	apiKey       string
	language     string

	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
	logger  zerolog.Logger
}

// NewClient creates a client from the tmdb configuration section.
func NewClient(cfg *config.TMDBConfig, logger zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	logger = logger.With().Str("component", "tmdb").Logger()

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		apiKey:       cfg.APIKey,
		language:     cfg.Language,
		limiter:      rate.NewLimiter(rate.Limit(rps), 1),
		logger:       logger,
	}
	c.cb = newBreaker(logger)
	return c, nil
}

func newBreaker(logger zerolog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},

		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var se *StatusError
			return errors.As(err, &se) && se.clientError()
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})
}

// getJSON throttles, sends a GET for path through the breaker and decodes
// the body into dst.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, params url.Values, dst interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("tmdb %s: %w", endpoint, err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	reqURL := c.baseURL + path + "?" + params.Encode()

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.do(ctx, reqURL)
	})
	if err != nil {
		outcome := outcomeFailure
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = outcomeRejected
		}
		metrics.RecordTMDBRequest(endpoint, outcome)
		return fmt.Errorf("tmdb %s: %w", endpoint, err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		metrics.RecordTMDBRequest(endpoint, outcomeFailure)
		return fmt.Errorf("tmdb %s: decode response: %w", endpoint, err)
	}

	metrics.RecordTMDBRequest(endpoint, outcomeSuccess)
	return nil
}

func (c *Client) do(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	return body, nil
}

// PopularPage fetches one page of /movie/popular. Pages start at 1.
func (c *Client) PopularPage(ctx context.Context, page int) (*PopularPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var out PopularPage
	if err := c.getJSON(ctx, EndpointPopular, "/movie/popular", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieDetails fetches /movie/{id} with credits and keywords appended.
func (c *Client) MovieDetails(ctx context.Context, id int64) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,keywords")

	var out MovieDetails
	path := "/movie/" + strconv.FormatInt(id, 10)
	if err := c.getJSON(ctx, EndpointDetails, path, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BreakerState returns the circuit breaker state name.
func (c *Client) BreakerState() string {
	return stateToString(c.cb.State())
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
