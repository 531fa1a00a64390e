package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/ADEB21/weather-app/pkg/errors"
)

var (
	currentFields = []string{
		"temperature_2m",
		"relative_humidity_2m",
		"apparent_temperature",
		"precipitation",
		"weather_code",
		"wind_speed_10m",
		"wind_direction_10m",
		"wind_gusts_10m",
		"uv_index",
	}
	hourlyFields = []string{
		"temperature_2m",
		"weather_code",
		"precipitation_probability",
	}
	dailyFields = []string{
		"weather_code",
		"temperature_2m_max",
		"temperature_2m_min",
		"precipitation_sum",
		"precipitation_probability_max",
		"wind_speed_10m_max",
		"wind_direction_10m_dominant",
		"sunrise",
		"sunset",
		"uv_index_max",
	}

	errMalformedForecast = errors.New("forecast response is not valid JSON")
)

// Forecast returns the upstream forecast document for the coordinates,
// byte for byte. Only JSON well-formedness is checked.
func (c *Client) Forecast(ctx context.Context, latitude, longitude float64) (_ json.RawMessage, err error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "forecast client not configured")
	}

	started := time.Now()
	defer func() { c.observe(apiForecast, started, err) }()

	body, err := c.get(ctx, apiForecast, c.forecastBaseURL, "v1/forecast", c.forecastParams(latitude, longitude))
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, errMalformedForecast, "decode forecast response")
	}
	return json.RawMessage(body), nil
}

func (c *Client) forecastParams(latitude, longitude float64) url.Values {
	params := url.Values{}
	params.Set("latitude", formatCoordinate(latitude))
	params.Set("longitude", formatCoordinate(longitude))
	params.Set("current", strings.Join(currentFields, ","))
	params.Set("hourly", strings.Join(hourlyFields, ","))
	params.Set("daily", strings.Join(dailyFields, ","))
	params.Set("timezone", c.timezone)
	params.Set("forecast_days", strconv.Itoa(c.forecastDays))
	params.Set("forecast_hours", strconv.Itoa(c.forecastHours))
	return params
}
