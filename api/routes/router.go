package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ADEB21/weather-app/api/controllers"
	"github.com/ADEB21/weather-app/api/middleware"
	"github.com/ADEB21/weather-app/api/responses"
	"github.com/ADEB21/weather-app/internal/favorites"
	"github.com/ADEB21/weather-app/internal/history"
	"github.com/ADEB21/weather-app/pkg/config"
	"github.com/ADEB21/weather-app/pkg/db"
	pkgerrors "github.com/ADEB21/weather-app/pkg/errors"
	"github.com/ADEB21/weather-app/pkg/logger"
	"github.com/ADEB21/weather-app/pkg/metrics"
	"github.com/ADEB21/weather-app/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	favoritesService favorites.Service,
	historyService history.Service,
	geocoder controllers.CitySearcher,
	forecaster controllers.Forecaster,
) http.Handler {
	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if cfg.Metrics.Enabled && registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(registry)
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	// A nil *redis.Client must not leak into the interfaces below as a non-nil value.
	var idempotencyStore redis.IdempotencyStore
	readyDeps := map[string]db.Pinger{}
	if dbP != nil {
		readyDeps["db"] = dbP
	}
	if redisClient != nil {
		idempotencyStore = redisClient
		readyDeps["redis"] = redisClient
	}
	idempotent := middleware.Idempotency(idempotencyStore, cfg.Redis.IdempotencyTTL, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})

	if cfg.Metrics.Enabled && registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", controllers.FavoritesList(favoritesService, logg))
			r.With(idempotent).Post("/", controllers.FavoritesCreate(favoritesService, logg))
			r.Get("/check", controllers.FavoritesCheck(favoritesService, logg))
			r.Delete("/{id}", controllers.FavoritesDelete(favoritesService, logg))
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", controllers.HistoryList(historyService, logg))
			r.With(idempotent).Post("/", controllers.HistoryCreate(historyService, logg))
			r.Delete("/clear", controllers.HistoryClear(historyService, logg))
			r.Delete("/{id}", controllers.HistoryDelete(historyService, logg))
		})

		r.Get("/geocoding/search", controllers.GeocodingSearch(geocoder, logg))
		r.Get("/weather", controllers.Weather(forecaster, logg))
	})

	return r
}
