package openmeteo

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/ADEB21/weather-app/pkg/errors"
)

// City is one geocoding match as returned to the frontend.
type City struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Admin1      *string `json:"admin1"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type geocodingResponse struct {
	Results []struct {
		Name        *string  `json:"name"`
		Country     *string  `json:"country"`
		CountryCode *string  `json:"country_code"`
		Admin1      *string  `json:"admin1"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
	} `json:"results"`
}

// SearchCity resolves a free-text place name. A blank query is rejected before
// any network call; a response without results yields an empty slice.
func (c *Client) SearchCity(ctx context.Context, query string) (cities []City, err error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "geocoding client not configured")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, `Query parameter "q" is required`)
	}

	params := url.Values{}
	params.Set("name", query)
	params.Set("count", strconv.Itoa(c.geocodingCount))
	params.Set("language", c.geocodingLanguage)
	params.Set("format", "json")

	started := time.Now()
	defer func() { c.observe(apiGeocoding, started, err) }()

	body, err := c.get(ctx, apiGeocoding, c.geocodingBaseURL, "v1/search", params)
	if err != nil {
		return nil, err
	}

	var apiResp geocodingResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode geocoding response")
	}

	cities = make([]City, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		cities = append(cities, City{
			Name:        deref(r.Name),
			Country:     deref(r.Country),
			CountryCode: deref(r.CountryCode),
			Admin1:      r.Admin1,
			Latitude:    derefFloat(r.Latitude),
			Longitude:   derefFloat(r.Longitude),
		})
	}
	return cities, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefFloat(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
