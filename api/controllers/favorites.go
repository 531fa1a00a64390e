package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ADEB21/weather-app/api/responses"
	"github.com/ADEB21/weather-app/api/validators"
	"github.com/ADEB21/weather-app/internal/favorites"
	pkgerrors "github.com/ADEB21/weather-app/pkg/errors"
	"github.com/ADEB21/weather-app/pkg/logger"
	"github.com/ADEB21/weather-app/pkg/types"
)

// FavoritesList returns every saved location, newest first.
func FavoritesList(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		list, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// FavoritesCreate saves a location; a duplicate answers 409 with the existing record.
func FavoritesCreate(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		input, err := decodeLocation(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		fav, err := svc.Create(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, fav)
	}
}

// FavoritesCheck reports whether the exact coordinates are saved.
func FavoritesCheck(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		lat, lon, err := queryCoordinates(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Check(ctx, lat, lon)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, result)
	}
}

func FavoritesDelete(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		id, err := validators.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// decodeLocation reads a favorite/history body, trims its optional labels and
// only then validates, so " FR " is accepted as "FR".
func decodeLocation(r *http.Request) (types.LocationInput, error) {
	var input types.LocationInput
	if err := validators.DecodeJSON(r, &input); err != nil {
		return types.LocationInput{}, err
	}
	input.City = validators.SanitizeOptional(input.City)
	input.Country = validators.SanitizeOptional(input.Country)
	if err := validators.ValidateStruct(&input); err != nil {
		return types.LocationInput{}, err
	}
	return input, nil
}

// queryCoordinates parses latitude/longitude query parameters; absent values
// come back nil so the caller decides whether they are required.
func queryCoordinates(r *http.Request) (*float64, *float64, error) {
	lat, err := validators.ParseQueryFloat(r, "latitude")
	if err != nil {
		return nil, nil, err
	}
	lon, err := validators.ParseQueryFloat(r, "longitude")
	if err != nil {
		return nil, nil, err
	}
	return lat, lon, nil
}
