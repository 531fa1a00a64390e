package openmeteo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ADEB21/weather-app/pkg/config"
	pkgerrors "github.com/ADEB21/weather-app/pkg/errors"
	"github.com/ADEB21/weather-app/pkg/metrics"
)

const (
	defaultForecastBaseURL  = "https://api.open-meteo.com"
	defaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com"
	defaultTimeout          = 5 * time.Second

	errorBodyReadLimit int64 = 1024
	bodyReadLimit      int64 = 8 << 20

	apiForecast  = "forecast"
	apiGeocoding = "geocoding"
)

// Client wraps the Open-Meteo forecast and geocoding APIs. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	httpClient       *http.Client
	forecastBaseURL  string
	geocodingBaseURL string

	timezone          string
	forecastDays      int
	forecastHours     int
	geocodingCount    int
	geocodingLanguage string

	metrics *metrics.UpstreamMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithForecastBaseURL overrides the forecast API host.
func WithForecastBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.forecastBaseURL = trimmed
		}
	}
}

// WithGeocodingBaseURL overrides the geocoding API host.
func WithGeocodingBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.geocodingBaseURL = trimmed
		}
	}
}

// WithMetrics records every upstream call on m.
func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a client from configuration. Zero values fall back to the
// public Open-Meteo endpoints and the defaults the frontend expects.
func NewClient(cfg config.OpenMeteoConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		httpClient:        &http.Client{Timeout: timeout},
		forecastBaseURL:   firstNonEmpty(cfg.ForecastBaseURL, defaultForecastBaseURL),
		geocodingBaseURL:  firstNonEmpty(cfg.GeocodingBaseURL, defaultGeocodingBaseURL),
		timezone:          firstNonEmpty(cfg.Timezone, "Europe/Paris"),
		forecastDays:      positiveOr(cfg.ForecastDays, 10),
		forecastHours:     positiveOr(cfg.ForecastHours, 24),
		geocodingCount:    positiveOr(cfg.GeocodingCount, 10),
		geocodingLanguage: firstNonEmpty(cfg.GeocodingLanguage, "fr"),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client
}

func (c *Client) observe(api string, started time.Time, err error) {
	c.metrics.Observe(api, time.Since(started), err)
}

// get issues a GET and returns the body of a 200 response. Any other outcome
// is an upstream error.
func (c *Client) get(ctx context.Context, api, baseURL, path string, query url.Values) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s?%s", strings.TrimRight(baseURL, "/"), strings.TrimLeft(path, "/"), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("build %s request", api))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("%s request failed", api))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), fmt.Sprintf("%s request failed", api))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, bodyReadLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("read %s response", api))
	}
	return body, nil
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func firstNonEmpty(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
