package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Rkm1999/CelestialMCP/internal/api"
	"github.com/Rkm1999/CelestialMCP/internal/auth"
	"github.com/Rkm1999/CelestialMCP/internal/catalog"
	"github.com/Rkm1999/CelestialMCP/internal/ephemeris"
	"github.com/Rkm1999/CelestialMCP/internal/health"
	"github.com/Rkm1999/CelestialMCP/internal/metrics"
	"github.com/Rkm1999/CelestialMCP/internal/resolve"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	addr := os.Getenv("CELESTIAL_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	authCfg, err := loadAuthConfig(logger)
	if err != nil {
		logger.Error("invalid auth configuration", "error", err)
		os.Exit(1)
	}

	trustProxy := false
	if v := os.Getenv("CELESTIAL_TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn("invalid CELESTIAL_TRUST_PROXY value, defaulting to false", "value", v)
		} else {
			trustProxy = b
		}
	}

	catalogCfg := loadCatalogConfig(logger)

	// The catalog store is built fully before the server starts serving:
	// every query afterwards is a pure read against this snapshot.
	start := time.Now()
	store := catalog.Build(catalogCfg, logger)
	logger.Info("catalog ready", "duration_ms", time.Since(start).Milliseconds())

	metrics.SetCatalogEntries("stars", store.StarCount())
	metrics.SetCatalogEntries("deep_sky", store.DeepSkyCount())
	metrics.SetCatalogSkipped(store.Skipped())
	metrics.SetCatalogDegraded(store.Degraded())
	health.SetReady()

	// No ephemeris collaborator ships with this service; solar-system
	// queries answer 503 until a deployment wires one in.
	eph := ephemeris.Unavailable{}
	resolver := resolve.New(store, eph)

	srv := api.NewServer(addr, logger, authCfg, store, resolver, eph, clockwork.NewRealClock(), trustProxy)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", addr, "auth_enabled", authCfg.Enabled, "degraded", store.Degraded())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.HTTPServer().Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func loadAuthConfig(logger *slog.Logger) (auth.Config, error) {
	cfg := auth.Config{}

	enabledStr := os.Getenv("CELESTIAL_AUTH_ENABLED")
	if enabledStr != "" {
		enabled, err := strconv.ParseBool(enabledStr)
		if err != nil {
			return cfg, errors.New("CELESTIAL_AUTH_ENABLED must be a boolean value (true/false/1/0)")
		}
		cfg.Enabled = enabled
	}

	if cfg.Enabled {
		cfg.Token = os.Getenv("CELESTIAL_AUTH_TOKEN")
		if cfg.Token == "" {
			return cfg, errors.New("CELESTIAL_AUTH_TOKEN is required when auth is enabled")
		}
		logger.Info("auth enabled")
	}

	return cfg, nil
}

func loadCatalogConfig(logger *slog.Logger) catalog.Config {
	cfg := catalog.Config{
		StarsPath:   "data/stars.csv",
		DeepSkyPath: "data/dso.csv",
	}

	if v := os.Getenv("CELESTIAL_STARS_PATH"); v != "" {
		cfg.StarsPath = v
	}
	if v := os.Getenv("CELESTIAL_DSO_PATH"); v != "" {
		cfg.DeepSkyPath = v
	}

	logger.Info("catalog config",
		"stars_path", cfg.StarsPath,
		"dso_path", cfg.DeepSkyPath,
	)

	return cfg
}
