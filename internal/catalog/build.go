package catalog

import (
	"log/slog"
	"os"
	"strings"
)

// Config points the builder at the catalog files on disk.
type Config struct {
	StarsPath   string
	DeepSkyPath string
}

// Build ingests both catalog files and returns the finished store. A file
// that is missing or wholly unparsable degrades that table to the built-in
// fallback set; per-row failures only increment the skip count. Build never
// fails: in the worst case both tables run in degraded mode.
//
// Build must complete before the store is shared; afterwards the store is
// read-only.
func Build(cfg Config, logger *slog.Logger) *Store {
	s := &Store{
		stars:   make(map[string]Entry),
		deepSky: make(map[string]Entry),
		aliases: make(map[string]string),
	}

	s.buildTable("stars", cfg.StarsPath, s.stars, fallbackStars, logger)
	s.buildTable("deep_sky", cfg.DeepSkyPath, s.deepSky, fallbackDeepSky, logger)

	logger.Info("catalog store built",
		"stars", len(s.stars),
		"deep_sky_objects", len(s.deepSky),
		"aliases", len(s.aliases),
		"rows_skipped", s.skipped,
		"degraded", s.degraded,
	)

	return s
}

func (s *Store) buildTable(table, path string, dst map[string]Entry, fallback []Entry, logger *slog.Logger) {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("catalog file unavailable, loading built-in fallback",
			"table", table, "path", path, "error", err)
		n := loadFallback(fallback, dst, s.aliases)
		s.degraded = true
		logger.Info("fallback table loaded", "table", table, "entries", n)
		return
	}
	defer f.Close()

	res, err := Ingest(f, dst, s.aliases, logger)
	if err != nil {
		logger.Warn("catalog file unusable, loading built-in fallback",
			"table", table, "path", path, "error", err)
		n := loadFallback(fallback, dst, s.aliases)
		s.degraded = true
		logger.Info("fallback table loaded", "table", table, "entries", n)
		return
	}

	s.skipped += res.Skipped
	logger.Info("catalog file ingested",
		"table", table,
		"path", path,
		"format", res.Format,
		"entries", res.Entries,
		"rows_skipped", res.Skipped,
	)
}

func lowerAlias(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
