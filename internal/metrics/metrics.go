package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "celestial_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "celestial_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	catalogEntries = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "celestial_catalog_entries",
			Help: "Number of entries in each catalog table.",
		},
		[]string{"table"},
	)

	catalogRowsSkipped = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "celestial_catalog_rows_skipped",
			Help: "Rows dropped during catalog ingestion.",
		},
	)

	catalogDegraded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "celestial_catalog_degraded",
			Help: "1 when any catalog table runs on the built-in fallback set.",
		},
	)

	resolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "celestial_resolve_total",
			Help: "Name resolutions by outcome (catalog, solar_system, unknown).",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(catalogEntries)
	prometheus.MustRegister(catalogRowsSkipped)
	prometheus.MustRegister(catalogDegraded)
	prometheus.MustRegister(resolveTotal)
}

// SetCatalogEntries records the size of one catalog table.
func SetCatalogEntries(table string, n int) {
	catalogEntries.WithLabelValues(table).Set(float64(n))
}

// SetCatalogSkipped records the ingestion skip count.
func SetCatalogSkipped(n int) {
	catalogRowsSkipped.Set(float64(n))
}

// SetCatalogDegraded records whether the store runs in degraded mode.
func SetCatalogDegraded(degraded bool) {
	v := 0.0
	if degraded {
		v = 1.0
	}
	catalogDegraded.Set(v)
}

// IncResolve counts one name resolution by outcome.
func IncResolve(outcome string) {
	resolveTotal.WithLabelValues(outcome).Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// knownRoutes are the exact paths this service serves.
var knownRoutes = map[string]bool{
	"/healthz":              true,
	"/readyz":               true,
	"/metrics":              true,
	"/api/v1/resolve":       true,
	"/api/v1/position":      true,
	"/api/v1/visibility":    true,
	"/api/v1/catalog/stats": true,
}

// normalizeRoute collapses unknown paths (bot probes, typos) to a single
// label so scanner traffic cannot blow up metric cardinality.
func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		route := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(route, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(route, r.Method).Observe(duration)
	})
}
