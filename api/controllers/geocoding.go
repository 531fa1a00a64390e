package controllers

import (
	"context"
	"net/http"

	"github.com/ADEB21/weather-app/api/responses"
	pkgerrors "github.com/ADEB21/weather-app/pkg/errors"
	"github.com/ADEB21/weather-app/pkg/logger"
	"github.com/ADEB21/weather-app/pkg/openmeteo"
)

// CitySearcher resolves place names to coordinates.
type CitySearcher interface {
	SearchCity(ctx context.Context, query string) ([]openmeteo.City, error)
}

func GeocodingSearch(geo CitySearcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if geo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geocoding unavailable"))
			return
		}

		cities, err := geo.SearchCity(ctx, r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cities)
	}
}
