package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ADEB21/weather-app/api/responses"
	"github.com/ADEB21/weather-app/api/validators"
	"github.com/ADEB21/weather-app/internal/history"
	pkgerrors "github.com/ADEB21/weather-app/pkg/errors"
	"github.com/ADEB21/weather-app/pkg/logger"
	"github.com/ADEB21/weather-app/pkg/types"
)

// HistoryList returns recent searches. Query: limit (1..100, default 10),
// unique (default true).
func HistoryList(svc history.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "history service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", history.DefaultLimit, 1, history.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		unique, err := validators.ParseQueryBool(r, "unique", true)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entries, err := svc.List(ctx, history.ListParams{Limit: limit, Unique: unique})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

func HistoryCreate(svc history.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "history service unavailable"))
			return
		}

		input, err := decodeLocation(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entry, err := svc.Create(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

func HistoryDelete(svc history.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "history service unavailable"))
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

// HistoryClear removes every entry. Clearing an empty history still succeeds.
func HistoryClear(svc history.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "history service unavailable"))
			return
		}

		removed, err := svc.Clear(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(logg.WithField(ctx, "removed", removed), "search history cleared")
		}
		responses.WriteJSON(w, http.StatusOK, types.MessageEnvelope{Message: "All search history cleared"})
	}
}
