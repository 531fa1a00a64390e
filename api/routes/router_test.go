package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ADEB21/weather-app/internal/favorites"
	"github.com/ADEB21/weather-app/internal/history"
	"github.com/ADEB21/weather-app/pkg/config"
	"github.com/ADEB21/weather-app/pkg/db"
	"github.com/ADEB21/weather-app/pkg/db/models"
	"github.com/ADEB21/weather-app/pkg/metrics"
	"github.com/ADEB21/weather-app/pkg/openmeteo"
)

type testServer struct {
	handler  http.Handler
	upstream *upstreamStub
}

type upstreamStub struct {
	mu        sync.Mutex
	failNext  bool
	lastQuery string
}

func (u *upstreamStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.lastQuery = r.URL.RawQuery
	if u.failNext {
		u.failNext = false
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/v1/search":
		_, _ = io.WriteString(w, `{"results":[{"name":"Lyon","country":"France","country_code":"FR","admin1":"Auvergne-Rhône-Alpes","latitude":45.74846,"longitude":4.84671}]}`)
	case "/v1/forecast":
		_, _ = io.WriteString(w, `{"latitude":45.75,"longitude":4.85,"current":{"temperature_2m":18.4}}`)
	default:
		http.NotFound(w, r)
	}
}

func (u *upstreamStub) failOnce() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failNext = true
}

func (u *upstreamStub) query() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.lastQuery
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Favorite{}, &models.SearchHistory{}))
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	stub := &upstreamStub{}
	upstream := httptest.NewServer(stub)
	t.Cleanup(upstream.Close)

	registry := prometheus.NewRegistry()
	weather := openmeteo.NewClient(config.OpenMeteoConfig{},
		openmeteo.WithForecastBaseURL(upstream.URL),
		openmeteo.WithGeocodingBaseURL(upstream.URL),
		openmeteo.WithMetrics(metrics.NewUpstreamMetrics(registry)),
	)

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	favSvc, err := favorites.NewService(favorites.ServiceParams{Repo: favorites.NewRepository(conn), Now: now})
	require.NoError(t, err)
	histSvc, err := history.NewService(history.ServiceParams{Repo: history.NewRepository(conn), Now: now})
	require.NoError(t, err)

	cfg := &config.Config{
		App:     config.AppConfig{Env: "test"},
		Metrics: config.MetricsConfig{Enabled: true},
	}

	handler := NewRouter(cfg, nil, db.NewFromGorm(conn, config.DBDriverSQLite), nil, registry, favSvc, histSvc, weather, weather)
	return &testServer{handler: handler, upstream: stub}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

type errorBody struct {
	Error string          `json:"error"`
	Code  string          `json:"code"`
	Data  json.RawMessage `json:"data"`
}

func TestFavoritesLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/favorites", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())

	paris := map[string]any{"latitude": 48.8566, "longitude": 2.3522, "city": "Paris", "country": "FR"}
	rec = srv.do(t, http.MethodPost, "/api/favorites", paris)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dataEnvelope[favorites.FavoriteDTO]](t, rec).Data
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Paris", *created.City)

	rec = srv.do(t, http.MethodPost, "/api/favorites", paris)
	require.Equal(t, http.StatusConflict, rec.Code)
	conflict := decode[errorBody](t, rec)
	assert.Equal(t, "This location is already in favorites", conflict.Error)
	var existing favorites.FavoriteDTO
	require.NoError(t, json.Unmarshal(conflict.Data, &existing))
	assert.Equal(t, created.ID, existing.ID)

	rec = srv.do(t, http.MethodGet, "/api/favorites", nil)
	list := decode[dataEnvelope[[]favorites.FavoriteDTO]](t, rec).Data
	require.Len(t, list, 1)

	rec = srv.do(t, http.MethodGet, "/api/favorites/check?latitude=48.8566&longitude=2.3522", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"isFavorite":true,"favoriteId":%d}`, created.ID), rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/favorites/check?latitude=48.8566&longitude=2.35221", nil)
	assert.JSONEq(t, `{"isFavorite":false,"favoriteId":null}`, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/favorites/check?latitude=48.8566", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", created.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Favorite not found", decode[errorBody](t, rec).Error)

	rec = srv.do(t, http.MethodGet, "/api/favorites/check?latitude=48.8566&longitude=2.3522", nil)
	assert.JSONEq(t, `{"isFavorite":false,"favoriteId":null}`, rec.Body.String())
}

func TestFavoritesCreateRequiresCoordinates(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/favorites", map[string]any{"city": "Paris"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[errorBody](t, rec).Code)

	rec = srv.do(t, http.MethodGet, "/api/favorites", nil)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestHistoryUniqueAndClear(t *testing.T) {
	srv := newTestServer(t)

	for _, entry := range []map[string]any{
		{"latitude": 45.75, "longitude": 4.85, "city": "Lyon"},
		{"latitude": 48.8566, "longitude": 2.3522, "city": "Paris"},
		{"latitude": 45.75, "longitude": 4.85, "city": "Lyon"},
	} {
		rec := srv.do(t, http.MethodPost, "/api/history", entry)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := srv.do(t, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	unique := decode[dataEnvelope[[]history.EntryDTO]](t, rec).Data
	require.Len(t, unique, 2)
	assert.Equal(t, "Lyon", *unique[0].City)
	assert.Equal(t, "Paris", *unique[1].City)

	rec = srv.do(t, http.MethodGet, "/api/history?unique=false&limit=2", nil)
	all := decode[dataEnvelope[[]history.EntryDTO]](t, rec).Data
	require.Len(t, all, 2)
	assert.True(t, all[0].SearchedAt.After(all[1].SearchedAt))

	rec = srv.do(t, http.MethodGet, "/api/history?limit=500", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/history/%d", all[0].ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/history/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"All search history cleared"}`, rec.Body.String())

	rec = srv.do(t, http.MethodDelete, "/api/history/clear", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/history?unique=false", nil)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestGeocodingAndWeatherProxy(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/geocoding/search?q=%20%20", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/geocoding/search?q=Lyon", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cities := decode[dataEnvelope[[]openmeteo.City]](t, rec).Data
	require.Len(t, cities, 1)
	assert.Equal(t, "FR", cities[0].CountryCode)
	assert.Contains(t, srv.upstream.query(), "name=Lyon")

	rec = srv.do(t, http.MethodGet, "/api/weather?latitude=45.75&longitude=4.85", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"latitude":45.75,"longitude":4.85,"current":{"temperature_2m":18.4}}`, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/weather?longitude=4.85", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	srv.upstream.failOnce()
	rec = srv.do(t, http.MethodGet, "/api/weather?latitude=45.75&longitude=4.85", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "UPSTREAM_ERROR", decode[errorBody](t, rec).Code)
}

func TestHealthMetricsAndUnknownRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, rec).Code)

	rec = srv.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRequestIDHeaderIsReturned(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil).WithContext(context.Background())
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
