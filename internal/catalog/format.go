package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// row is one CSV record keyed by lowercased, trimmed header name.
type row map[string]string

// get returns the first non-empty value among the named columns.
func (r row) get(cols ...string) (string, bool) {
	for _, c := range cols {
		if v := strings.TrimSpace(r[c]); v != "" {
			return v, true
		}
	}
	return "", false
}

// float parses the first non-empty value among the named columns.
func (r row) float(cols ...string) (float64, bool) {
	v, ok := r.get(cols...)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// stringField pulls one optional text field out of a row.
type stringField func(row) (string, bool)

// coordField pulls one coordinate out of a row. ok is false when the field
// is absent or unparsable; such rows are skipped by the ingest loop.
type coordField func(row) (float64, bool)

// format is a declarative descriptor for one known catalog schema family:
// which header shape identifies it, how each logical field is extracted, and
// an optional row-level inclusion filter applied before coordinate parsing.
type format struct {
	name     string
	match    func(delim rune, cols map[string]bool) bool
	key      stringField // canonical key; required per row
	ra       coordField  // right ascension in hours; required per row
	dec      coordField  // declination in degrees; required per row
	common   stringField // common name: stored on the entry and registered as an alias
	objType  stringField
	crossRef stringField // secondary canonical key for the same coordinate
	keep     func(row) bool
}

// formats are tried in priority order during detection.
var formats = []*format{ngcFormat, wideStarFormat, genericFormat}

// detectFormat picks the schema family for a header row, or nil when no
// family matches.
func detectFormat(delim rune, header []string) *format {
	cols := make(map[string]bool, len(header))
	for _, h := range header {
		cols[normalizeHeader(h)] = true
	}
	for _, f := range formats {
		if f.match(delim, cols) {
			return f
		}
	}
	return nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
}

// sniffDelimiter picks the field delimiter from the header line: semicolon
// when present and comma absent, comma otherwise.
func sniffDelimiter(headerLine string) rune {
	if strings.ContainsRune(headerLine, ';') && !strings.ContainsRune(headerLine, ',') {
		return ';'
	}
	return ','
}

// ngcFormat covers semicolon-delimited sexagesimal sources in the NGC/IC
// style: RA as HH:MM:SS.ss, Dec as ±DD:MM:SS.s, zero-padded identifiers, a
// Messier cross-reference column and a common-names column.
var ngcFormat = &format{
	name: "ngc",
	match: func(delim rune, cols map[string]bool) bool {
		return delim == ';' && cols["name"] && cols["ra"] && cols["dec"]
	},
	key: func(r row) (string, bool) {
		v, ok := r.get("name")
		if !ok {
			return "", false
		}
		return CanonicalKey(v), true
	},
	ra: func(r row) (float64, bool) {
		v, ok := r.get("ra")
		if !ok {
			return 0, false
		}
		hours, err := parseSexagesimal(v)
		if err != nil {
			return 0, false
		}
		return hours, true
	},
	dec: func(r row) (float64, bool) {
		v, ok := r.get("dec")
		if !ok {
			return 0, false
		}
		deg, err := parseSexagesimal(v)
		if err != nil {
			return 0, false
		}
		return deg, true
	},
	common: func(r row) (string, bool) {
		// Sources vary between "common names" and "common name"; a
		// multi-valued cell keeps only the first name.
		v, ok := r.get("common names", "common name")
		if !ok {
			return "", false
		}
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = strings.TrimSpace(v[:i])
		}
		return v, v != ""
	},
	objType: func(r row) (string, bool) { return r.get("type") },
	crossRef: func(r row) (string, bool) {
		v, ok := r.get("m")
		if !ok {
			return "", false
		}
		n := strings.TrimLeft(v, "0")
		if n == "" {
			return "", false
		}
		return "m" + n, true
	},
}

// wideStarFormat covers comma-delimited wide star tables in the HYG style:
// decimal coordinates in hours/degrees or radians, and a name built from the
// first available designation.
var wideStarFormat = &format{
	name: "widestar",
	match: func(delim rune, cols map[string]bool) bool {
		return delim == ',' && (cols["proper"] || cols["bf"] || cols["hip"]) &&
			(cols["ra"] || cols["rarad"])
	},
	key: func(r row) (string, bool) {
		name, ok := starName(r)
		if !ok {
			return "", false
		}
		return strings.ToLower(name), true
	},
	ra: func(r row) (float64, bool) {
		if v, ok := r.float("ra"); ok {
			return v, true
		}
		if v, ok := r.float("rarad"); ok {
			return v * 180.0 / math.Pi / 15.0, true
		}
		return 0, false
	},
	dec: func(r row) (float64, bool) {
		if v, ok := r.float("dec"); ok {
			return v, true
		}
		if v, ok := r.float("decrad"); ok {
			return v * 180.0 / math.Pi, true
		}
		return 0, false
	},
	common:  starName, // display-cased name; lowercases to the key, so no self-alias
	objType: func(r row) (string, bool) { return r.get("spect") },
	keep:    keepStarRow,
}

// genericFormat covers plain CSV exports: ra_hours/dec_degrees directly, or
// RA/Dec in degrees (RA divided by 15 to get hours).
var genericFormat = &format{
	name: "generic",
	match: func(delim rune, cols map[string]bool) bool {
		if delim != ',' {
			return false
		}
		return (cols["ra_hours"] && cols["dec_degrees"]) || (cols["ra"] && cols["dec"])
	},
	key: func(r row) (string, bool) {
		v, ok := r.get("name", "id")
		if !ok {
			return "", false
		}
		return CanonicalKey(v), true
	},
	ra: func(r row) (float64, bool) {
		if v, ok := r.float("ra_hours"); ok {
			return v, true
		}
		if v, ok := r.float("ra"); ok {
			return v / 15.0, true
		}
		return 0, false
	},
	dec: func(r row) (float64, bool) {
		if v, ok := r.float("dec_degrees"); ok {
			return v, true
		}
		return r.float("dec")
	},
	common:  func(r row) (string, bool) { return r.get("common_name") },
	objType: func(r row) (string, bool) { return r.get("type") },
}

// nakedEyeMagnitude is the inclusion threshold for star rows that carry no
// name or designation. Large star tables run past 10⁵ rows; unnamed and
// invisible ones add noise without ever being resolvable by name.
const nakedEyeMagnitude = 6.0

// keepStarRow filters wide-star-table rows before coordinate parsing: rows
// with a name or designation are always kept, anonymous rows only when they
// are naked-eye visible.
func keepStarRow(r row) bool {
	if _, ok := r.get("proper", "bf", "flam", "fl", "hd", "hip"); ok {
		return true
	}
	mag, ok := r.float("mag")
	return ok && mag < nakedEyeMagnitude
}

// starName builds a display name from the first available designation:
// proper name, Bayer/Flamsteed designation (plus constellation), Flamsteed
// number alone, HD number, HIP number, then a synthesized magnitude-based
// name for bright anonymous rows.
func starName(r row) (string, bool) {
	if v, ok := r.get("proper"); ok {
		return v, true
	}
	if v, ok := r.get("bf"); ok {
		if con, ok := r.get("con"); ok && !strings.Contains(v, con) {
			return v + " " + con, true
		}
		return v, true
	}
	if v, ok := r.get("flam", "fl"); ok {
		if con, ok := r.get("con"); ok {
			return v + " " + con, true
		}
		return v, true
	}
	if v, ok := r.get("hd"); ok {
		return "HD " + trimNumeric(v), true
	}
	if v, ok := r.get("hip"); ok {
		return "HIP " + trimNumeric(v), true
	}
	mag, ok := r.float("mag")
	if !ok {
		return "", false
	}
	con, _ := r.get("con")
	if con == "" {
		con = "unknown"
	}
	return fmt.Sprintf("Star mag %.2f in %s", mag, con), true
}

// trimNumeric drops a trailing ".0" that some exports attach to integer
// identifier columns.
func trimNumeric(v string) string {
	return strings.TrimSuffix(v, ".0")
}

// paddedNumber matches NGC/IC/Messier designations with an optionally
// space-separated, zero-padded number. Other designations (HD, HIP, proper
// names) pass through untouched.
var paddedNumber = regexp.MustCompile(`^(ngc|ic|m)\s*0*([0-9]+)$`)

// CanonicalKey lowercases a catalog identifier and, for NGC/IC/Messier
// designations, collapses whitespace and strips zero padding:
// "NGC0007" -> "ngc7", "IC 10" -> "ic10".
func CanonicalKey(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	if m := paddedNumber.FindStringSubmatch(k); m != nil {
		return m[1] + m[2]
	}
	return k
}

// parseSexagesimal converts "HH:MM:SS.ss" or "±DD:MM:SS.s" to a decimal
// value via first + second/60 + third/3600. The sign is taken once from the
// front of the string and reapplied after the sum, so "-00:29:00" keeps its
// sign; a sign anywhere else (a doubled prefix, a negative minutes field) is
// malformed.
func parseSexagesimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("malformed sexagesimal value %q", s)
	}

	var total float64
	divisor := 1.0
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(p, "+") || strings.HasPrefix(p, "-") {
			return 0, fmt.Errorf("malformed sexagesimal value %q", s)
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed sexagesimal value %q: %w", s, err)
		}
		total += v / divisor
		divisor *= 60.0
	}

	if neg {
		total = -total
	}
	return total, nil
}
