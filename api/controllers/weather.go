package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ADEB21/weather-app/api/responses"
	pkgerrors "github.com/ADEB21/weather-app/pkg/errors"
	"github.com/ADEB21/weather-app/pkg/logger"
)

// Forecaster fetches the raw forecast document for a location.
type Forecaster interface {
	Forecast(ctx context.Context, latitude, longitude float64) (json.RawMessage, error)
}

// Weather proxies the forecast and writes the upstream JSON unchanged,
// without the data envelope.
func Weather(forecaster Forecaster, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if forecaster == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "weather unavailable"))
			return
		}

		lat, lon, err := queryCoordinates(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if lat == nil || lon == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "latitude and longitude parameters are required"))
			return
		}

		raw, err := forecaster.Forecast(ctx, *lat, *lon)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteRaw(w, http.StatusOK, raw)
	}
}
