// Package catalog ingests heterogeneous astronomical catalog files into one
// normalized, immutable in-memory model: a star table, a deep-sky-object
// table, and a common-name alias table.
package catalog

// Entry is one normalized catalog object. Key is the lowercase canonical
// identifier used as the primary lookup key; CommonName and ObjectType are
// optional and empty when the source row did not carry them.
type Entry struct {
	Key        string
	RAHours    float64 // right ascension, hours, [0, 24)
	DecDeg     float64 // declination, degrees, [-90, 90]
	CommonName string
	ObjectType string
}

// Store is the catalog snapshot. It is built exactly once, before any query
// is served, and never mutated afterwards, so concurrent readers need no
// locking.
type Store struct {
	stars    map[string]Entry
	deepSky  map[string]Entry
	aliases  map[string]string // lowercase common name -> canonical key
	degraded bool              // at least one table came from the built-in fallback
	skipped  int               // rows dropped during ingestion across all files
}

// Star looks up a star table entry by canonical key.
func (s *Store) Star(key string) (Entry, bool) {
	e, ok := s.stars[key]
	return e, ok
}

// DeepSky looks up a deep-sky-object table entry by canonical key.
func (s *Store) DeepSky(key string) (Entry, bool) {
	e, ok := s.deepSky[key]
	return e, ok
}

// Alias maps a lowercase common name to its canonical key.
func (s *Store) Alias(name string) (string, bool) {
	key, ok := s.aliases[name]
	return key, ok
}

// StarCount returns the number of star table entries.
func (s *Store) StarCount() int { return len(s.stars) }

// DeepSkyCount returns the number of deep-sky-object table entries.
func (s *Store) DeepSkyCount() int { return len(s.deepSky) }

// AliasCount returns the number of registered aliases.
func (s *Store) AliasCount() int { return len(s.aliases) }

// Skipped returns the number of rows dropped during ingestion.
func (s *Store) Skipped() int { return s.skipped }

// Degraded reports whether any table fell back to the built-in set because
// its catalog file was missing or unusable.
func (s *Store) Degraded() bool { return s.degraded }
