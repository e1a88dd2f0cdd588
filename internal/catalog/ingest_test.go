package catalog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const ngcSample = `Name;Type;RA;Dec;Const;M;Common names
NGC0007;G;00:08:20.9;-29:54:54;Scl;;
IC0003;G;00:12:06.1;-00:24:54;Psc;;
NGC0224;G;00:42:44.3;+41:16:09;And;31;Andromeda Galaxy
NGC1976;Neb;05:35:17.3;-05:23:28;Ori;42;Orion Nebula, Great Nebula in Orion
NGC9999;G;bad:ra:here;+10:00:00;Foo;;
`

func TestIngestNGCStyle(t *testing.T) {
	dst := make(map[string]Entry)
	aliases := make(map[string]string)

	res, err := Ingest(strings.NewReader(ngcSample), dst, aliases, testLogger)
	require.NoError(t, err)

	assert.Equal(t, "ngc", res.Format)
	assert.Equal(t, 6, res.Entries, "4 rows, 2 of them also cross-referenced")
	assert.Equal(t, 1, res.Skipped, "row with unparsable RA dropped")

	// Zero padding stripped from canonical keys.
	e, ok := dst["ngc7"]
	require.True(t, ok)
	assert.InDelta(t, 8.0/60+20.9/3600, e.RAHours, 1e-6)
	assert.InDelta(t, -(29 + 54.0/60 + 54.0/3600), e.DecDeg, 1e-6)
	assert.Equal(t, "G", e.ObjectType)
	assert.Empty(t, e.CommonName)

	_, ok = dst["ic3"]
	assert.True(t, ok)

	// Messier cross-reference registers a second key for the same coordinate.
	andromeda, ok := dst["ngc224"]
	require.True(t, ok)
	m31, ok := dst["m31"]
	require.True(t, ok)
	m31.Key = andromeda.Key
	assert.Empty(t, cmp.Diff(andromeda, m31), "cross-referenced entry shares the coordinate")
	assert.InDelta(t, 42.0/60+44.3/3600, andromeda.RAHours, 1e-6)
	assert.InDelta(t, 41+16.0/60+9.0/3600, andromeda.DecDeg, 1e-6)
	assert.Equal(t, "Andromeda Galaxy", andromeda.CommonName)

	// Common names register aliases; multi-valued cells keep the first name.
	assert.Equal(t, "ngc224", aliases["andromeda galaxy"])
	assert.Equal(t, "ngc1976", aliases["orion nebula"])
	_, ok = aliases["great nebula in orion"]
	assert.False(t, ok)

	_, ok = dst["ngc9999"]
	assert.False(t, ok, "row with bad coordinates never inserted")
}

const hygSample = `id,hip,hd,hr,gl,bf,proper,ra,dec,dist,mag,absmag,spect,rarad,decrad,con
1,32349,48915,2491,,9Alp CMa,Sirius,6.752481,-16.716116,2.64,-1.44,1.45,A1V,1.767793,-0.291751,CMa
2,,,,,,,,,,7.21,5.1,K0,2.5,0.5,Oph
3,91262,172167,7001,,3Alp Lyr,Vega,18.615649,38.783690,7.68,0.03,0.58,A0V,4.873563,0.676901,Lyr
4,,189733,,,,,,,19.3,7.67,5.2,K2V,5.2403,0.3791,Vul
5,,,,,,,,,,4.20,1.1,M1,3.1415,-0.1234,Hya
`

func TestIngestWideStarTable(t *testing.T) {
	dst := make(map[string]Entry)
	aliases := make(map[string]string)

	res, err := Ingest(strings.NewReader(hygSample), dst, aliases, testLogger)
	require.NoError(t, err)

	assert.Equal(t, "widestar", res.Format)
	assert.Equal(t, 4, res.Entries)
	assert.Equal(t, 0, res.Skipped, "anonymous faint row is filtered, not a failure")

	sirius, ok := dst["sirius"]
	require.True(t, ok)
	assert.InDelta(t, 6.752481, sirius.RAHours, 1e-6)
	assert.InDelta(t, -16.716116, sirius.DecDeg, 1e-6)
	assert.Equal(t, "Sirius", sirius.CommonName)
	assert.Equal(t, "A1V", sirius.ObjectType)

	_, ok = dst["vega"]
	assert.True(t, ok)

	// Row 4 has decimal hours/degrees columns empty: radians are converted.
	hd, ok := dst["hd 189733"]
	require.True(t, ok)
	assert.InDelta(t, 5.2403*180/3.14159265358979/15, hd.RAHours, 1e-4)
	assert.InDelta(t, 0.3791*180/3.14159265358979, hd.DecDeg, 1e-4)

	// Row 5 is anonymous but naked-eye bright: synthesized name.
	synth, ok := dst["star mag 4.20 in hya"]
	require.True(t, ok)
	assert.Equal(t, "Star mag 4.20 in Hya", synth.CommonName)

	// Proper names double as aliases only when they differ from the key;
	// "sirius" is already the key.
	_, ok = aliases["sirius"]
	assert.False(t, ok)

	// Row 2 (anonymous, mag 7.21) must not appear anywhere.
	assert.Len(t, dst, 4)
}

func TestIngestGenericCSV(t *testing.T) {
	t.Run("explicit units", func(t *testing.T) {
		src := "name,ra_hours,dec_degrees,common_name\nBarnard's Star,17.963472,4.693391,\nKapteyn's Star,5.195187,-45.018457,\n"
		dst := make(map[string]Entry)
		aliases := make(map[string]string)

		res, err := Ingest(strings.NewReader(src), dst, aliases, testLogger)
		require.NoError(t, err)
		assert.Equal(t, "generic", res.Format)

		e, ok := dst["barnard's star"]
		require.True(t, ok)
		assert.InDelta(t, 17.963472, e.RAHours, 1e-6)
		assert.InDelta(t, 4.693391, e.DecDeg, 1e-6)
	})

	t.Run("degrees divided down to hours", func(t *testing.T) {
		src := "name,ra,dec\nTest Object,101.287,-16.7161\n"
		dst := make(map[string]Entry)

		_, err := Ingest(strings.NewReader(src), dst, make(map[string]string), testLogger)
		require.NoError(t, err)

		e, ok := dst["test object"]
		require.True(t, ok)
		assert.InDelta(t, 101.287/15.0, e.RAHours, 1e-6)
		assert.InDelta(t, -16.7161, e.DecDeg, 1e-6)
	})
}

func TestIngestRowFailuresAreNotFatal(t *testing.T) {
	src := strings.Join([]string{
		"name,ra_hours,dec_degrees",
		"good,6.5,10.0",
		",1.0,1.0",          // no key
		"noc,NaN,5.0",       // NaN coordinate
		"range,3.0,95.0",    // declination out of range
		"alsogood,23.9,-89", // boundary declination kept
		`"unterminated,1.0,1.0`, // csv-level error
	}, "\n") + "\n"

	dst := make(map[string]Entry)
	res, err := Ingest(strings.NewReader(src), dst, make(map[string]string), testLogger)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Entries)
	assert.Equal(t, 4, res.Skipped)
	assert.Contains(t, dst, "good")
	assert.Contains(t, dst, "alsogood")
}

func TestIngestUnusableFile(t *testing.T) {
	for name, src := range map[string]string{
		"empty":          "",
		"blank line":     "\n\n",
		"unknown schema": "alpha,beta,gamma\n1,2,3\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Ingest(strings.NewReader(src), make(map[string]Entry), make(map[string]string), testLogger)
			assert.Error(t, err)
		})
	}
}

func TestIngestNormalizesRA(t *testing.T) {
	src := "name,ra_hours,dec_degrees\nwrapped,24.5,10.0\nnegative,-0.25,10.0\n"
	dst := make(map[string]Entry)

	_, err := Ingest(strings.NewReader(src), dst, make(map[string]string), testLogger)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, dst["wrapped"].RAHours, 1e-9)
	assert.InDelta(t, 23.75, dst["negative"].RAHours, 1e-9)
}

func TestBuildFallsBackWhenFilesMissing(t *testing.T) {
	dir := t.TempDir()
	s := Build(Config{
		StarsPath:   filepath.Join(dir, "absent_stars.csv"),
		DeepSkyPath: filepath.Join(dir, "absent_dso.csv"),
	}, testLogger)

	assert.True(t, s.Degraded())
	assert.NotZero(t, s.StarCount())
	assert.NotZero(t, s.DeepSkyCount())

	// Degraded-mode guarantee: fallback-covered names stay answerable.
	sirius, ok := s.Star("sirius")
	require.True(t, ok)
	assert.InDelta(t, 6.752481, sirius.RAHours, 1e-6)

	key, ok := s.Alias("andromeda galaxy")
	require.True(t, ok)
	assert.Equal(t, "m31", key)
	_, ok = s.DeepSky(key)
	assert.True(t, ok)
}

func TestBuildFromFiles(t *testing.T) {
	dir := t.TempDir()
	starsPath := filepath.Join(dir, "stars.csv")
	dsoPath := filepath.Join(dir, "dso.csv")
	writeFile(t, starsPath, hygSample)
	writeFile(t, dsoPath, ngcSample)

	s := Build(Config{StarsPath: starsPath, DeepSkyPath: dsoPath}, testLogger)

	assert.False(t, s.Degraded())
	assert.Equal(t, 4, s.StarCount())
	assert.Equal(t, 6, s.DeepSkyCount())
	assert.Equal(t, 1, s.Skipped())

	_, ok := s.DeepSky("m42")
	assert.True(t, ok)
	key, ok := s.Alias("orion nebula")
	require.True(t, ok)
	assert.Equal(t, "ngc1976", key)
}

func TestBuildMixedDegradation(t *testing.T) {
	dir := t.TempDir()
	starsPath := filepath.Join(dir, "stars.csv")
	writeFile(t, starsPath, hygSample)

	s := Build(Config{
		StarsPath:   starsPath,
		DeepSkyPath: filepath.Join(dir, "missing.csv"),
	}, testLogger)

	assert.True(t, s.Degraded(), "one fallback table marks the store degraded")
	assert.Equal(t, 4, s.StarCount(), "healthy table still ingested from file")
	_, ok := s.DeepSky("m31")
	assert.True(t, ok, "fallback deep-sky table in place")
}
