package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
)

// Result summarizes one file's ingestion.
type Result struct {
	Format  string
	Entries int
	Skipped int
}

// maxSkipWarnings caps per-row warning logs so a structurally broken file
// cannot flood the log; the final count still lands in Result.Skipped.
const maxSkipWarnings = 20

// Ingest stream-parses one catalog file into dst, registering common names
// into aliases. Rows that fail any extractor are skipped and counted, never
// fatal; an error is returned only when the file as a whole is unusable
// (unreadable, empty, or no recognized schema).
func Ingest(r io.Reader, dst map[string]Entry, aliases map[string]string, logger *slog.Logger) (Result, error) {
	br := bufio.NewReader(r)
	headerLine, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Result{}, fmt.Errorf("reading catalog header: %w", err)
	}
	if strings.TrimSpace(headerLine) == "" {
		return Result{}, errors.New("catalog file is empty")
	}

	delim := sniffDelimiter(headerLine)

	cr := csv.NewReader(io.MultiReader(strings.NewReader(headerLine), br))
	cr.Comma = delim
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return Result{}, fmt.Errorf("parsing catalog header: %w", err)
	}
	for i, h := range header {
		header[i] = normalizeHeader(h)
	}

	f := detectFormat(delim, header)
	if f == nil {
		return Result{}, fmt.Errorf("unrecognized catalog schema (%d columns, delimiter %q)", len(header), delim)
	}

	res := Result{Format: f.name}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Skipped++
			warnSkip(logger, res.Skipped, "malformed row", "error", err)
			continue
		}

		rw := make(row, len(header))
		for i, v := range rec {
			if i < len(header) {
				rw[header[i]] = v
			}
		}

		// Inclusion filter runs before coordinate parsing; filtered rows are
		// intentional drops, not failures.
		if f.keep != nil && !f.keep(rw) {
			continue
		}

		key, ok := f.key(rw)
		if !ok || key == "" {
			res.Skipped++
			warnSkip(logger, res.Skipped, "row without canonical key")
			continue
		}

		ra, raOK := f.ra(rw)
		dec, decOK := f.dec(rw)
		if !raOK || !decOK || !validCoordinate(ra, dec) {
			res.Skipped++
			warnSkip(logger, res.Skipped, "row without valid coordinates", "key", key)
			continue
		}

		entry := Entry{
			Key:     key,
			RAHours: normalizeRA(ra),
			DecDeg:  dec,
		}
		if f.common != nil {
			if name, ok := f.common(rw); ok {
				entry.CommonName = name
				alias := strings.ToLower(name)
				if alias != key {
					aliases[alias] = key
				}
			}
		}
		if f.objType != nil {
			if typ, ok := f.objType(rw); ok {
				entry.ObjectType = typ
			}
		}

		dst[key] = entry
		res.Entries++

		// A cross-reference registers the same coordinate under a second
		// canonical key (e.g. the Messier number of an NGC object).
		if f.crossRef != nil {
			if xkey, ok := f.crossRef(rw); ok && xkey != key {
				xentry := entry
				xentry.Key = xkey
				dst[xkey] = xentry
				res.Entries++
			}
		}
	}

	return res, nil
}

func warnSkip(logger *slog.Logger, skipped int, msg string, args ...any) {
	if skipped <= maxSkipWarnings {
		logger.Warn("skipping catalog row: "+msg, args...)
	}
}

// validCoordinate rejects non-finite or out-of-range coordinates so partial
// records never reach the model. RA one full turn outside [0,24) is
// tolerated and normalized; declination must be within [-90, 90].
func validCoordinate(raHours, decDeg float64) bool {
	if math.IsNaN(raHours) || math.IsInf(raHours, 0) || math.IsNaN(decDeg) || math.IsInf(decDeg, 0) {
		return false
	}
	return raHours > -24 && raHours < 48 && decDeg >= -90 && decDeg <= 90
}

// normalizeRA reduces right ascension to [0, 24).
func normalizeRA(hours float64) float64 {
	hours = math.Mod(hours, 24.0)
	if hours < 0 {
		hours += 24.0
	}
	return hours
}
