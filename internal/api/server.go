package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Rkm1999/CelestialMCP/internal/auth"
	"github.com/Rkm1999/CelestialMCP/internal/catalog"
	"github.com/Rkm1999/CelestialMCP/internal/ephemeris"
	"github.com/Rkm1999/CelestialMCP/internal/health"
	"github.com/Rkm1999/CelestialMCP/internal/httputil"
	"github.com/Rkm1999/CelestialMCP/internal/metrics"
	"github.com/Rkm1999/CelestialMCP/internal/resolve"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	store      *catalog.Store
	resolver   *resolve.Resolver
	eph        ephemeris.Client
	clock      clockwork.Clock
	trustProxy bool
}

// NewServer creates a configured HTTP server over a fully built catalog
// store. The clock supplies the default instant for queries that omit one;
// tests inject a fake.
func NewServer(addr string, logger *slog.Logger, authCfg auth.Config, store *catalog.Store, resolver *resolve.Resolver, eph ephemeris.Client, clock clockwork.Clock, trustProxy bool) *Server {
	s := &Server{
		logger:     logger,
		store:      store,
		resolver:   resolver,
		eph:        eph,
		clock:      clock,
		trustProxy: trustProxy,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.HandleFunc("GET /readyz", health.Readyz)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /api/v1/resolve", s.resolveHandler)
	mux.HandleFunc("GET /api/v1/position", s.positionHandler)
	mux.HandleFunc("GET /api/v1/visibility", s.visibilityHandler)
	mux.HandleFunc("GET /api/v1/catalog/stats", s.statsHandler)

	// Middleware chain: metrics -> logging -> auth -> mux.
	var handler http.Handler = mux
	handler = auth.Middleware(authCfg)(handler)
	handler = s.loggingMiddleware(handler)
	handler = metrics.Middleware(handler)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s
}

// HTTPServer returns the underlying *http.Server for external control (e.g. shutdown).
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Handler returns the full middleware-wrapped handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// probePath returns true for health/readiness probe paths that should not log at INFO.
func probePath(path string) bool {
	return path == "/healthz" || path == "/readyz"
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(sr, r)

		duration := time.Since(start)
		level := slog.LevelInfo
		if probePath(r.URL.Path) {
			level = slog.LevelDebug
		}

		s.logger.Log(r.Context(), level, "request",
			"component", "api",
			"method", r.Method,
			"path", r.URL.Path,
			"status", strconv.Itoa(sr.statusCode),
			"duration_ms", duration.Milliseconds(),
			"remote_ip", httputil.ClientIP(r, s.trustProxy),
		)
	})
}
