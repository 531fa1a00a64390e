package middleware

import (
	"net/http"
	"time"

	"github.com/ADEB21/weather-app/pkg/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics records request count and latency labelled by the matched chi route,
// so /api/favorites/7 and /api/favorites/8 share one series.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			m.Observe(r.Method, metricsRoute(r), rec.Status(), time.Since(start))
		})
	}
}

func metricsRoute(r *http.Request) string {
	if pattern := routePattern(r); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
