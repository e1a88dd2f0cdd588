package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Rkm1999/CelestialMCP/internal/ephemeris"
	"github.com/Rkm1999/CelestialMCP/internal/metrics"
	"github.com/Rkm1999/CelestialMCP/internal/resolve"
	"github.com/Rkm1999/CelestialMCP/internal/transform"
	"github.com/Rkm1999/CelestialMCP/internal/visibility"
)

type resolveResponse struct {
	Name       string  `json:"name"`
	Kind       string  `json:"kind"` // "catalog" or "solar_system"
	Key        string  `json:"key,omitempty"`
	Body       string  `json:"body,omitempty"`
	RAHours    float64 `json:"ra_hours"`
	DecDegrees float64 `json:"dec_degrees"`
	CommonName string  `json:"common_name,omitempty"`
	ObjectType string  `json:"object_type,omitempty"`
}

func (s *Server) resolveHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name parameter is required")
		return
	}

	res, err := s.resolver.Resolve(name)
	if err != nil {
		metrics.IncResolve("unknown")
		writeResolveError(w, err)
		return
	}

	resp := resolveResponse{Name: name}
	switch res.Kind {
	case resolve.KindBody:
		metrics.IncResolve("solar_system")
		resp.Kind = "solar_system"
		resp.Body = string(res.Body)
	default:
		metrics.IncResolve("catalog")
		resp.Kind = "catalog"
		resp.Key = res.Entry.Key
		resp.RAHours = res.Entry.RAHours
		resp.DecDegrees = res.Entry.DecDeg
		resp.CommonName = res.Entry.CommonName
		resp.ObjectType = res.Entry.ObjectType
	}

	writeJSON(w, http.StatusOK, resp)
}

type positionResponse struct {
	Name            string    `json:"name"`
	Time            time.Time `json:"time"`
	RAHours         float64   `json:"ra_hours"`
	DecDegrees      float64   `json:"dec_degrees"`
	AltitudeDegrees float64   `json:"altitude_degrees"`
	AzimuthDegrees  float64   `json:"azimuth_degrees"`
}

func (s *Server) positionHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name parameter is required")
		return
	}
	obs, err := parseObserver(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	instant, err := s.parseInstant(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	eq, err := s.resolver.Equatorial(r.Context(), name, obs, instant)
	if err != nil {
		writeResolveError(w, err)
		return
	}

	hz := transform.ToHorizontal(eq, obs, instant)
	writeJSON(w, http.StatusOK, positionResponse{
		Name:            name,
		Time:            instant,
		RAHours:         eq.RAHours,
		DecDegrees:      eq.DecDeg,
		AltitudeDegrees: hz.AltitudeDeg,
		AzimuthDegrees:  hz.AzimuthDeg,
	})
}

type visibilityResponse struct {
	Name        string     `json:"name"`
	Circumpolar bool       `json:"circumpolar"`
	NeverRises  bool       `json:"never_rises,omitempty"`
	Rise        *time.Time `json:"rise,omitempty"`
	Transit     *time.Time `json:"transit,omitempty"`
	Set         *time.Time `json:"set,omitempty"`
}

func (s *Server) visibilityHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name parameter is required")
		return
	}
	obs, err := parseObserver(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	instant, err := s.parseInstant(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.resolver.Resolve(name)
	if err != nil {
		writeResolveError(w, err)
		return
	}

	if res.Kind == resolve.KindBody {
		s.bodyVisibility(w, r, name, res.Body, obs, instant)
		return
	}

	eq := transform.Equatorial{RAHours: res.Entry.RAHours, DecDeg: res.Entry.DecDeg}
	win := visibility.Compute(eq, obs, instant)

	resp := visibilityResponse{
		Name:        name,
		Circumpolar: win.Circumpolar,
		NeverRises:  win.NeverRises,
	}
	if !win.Circumpolar {
		resp.Rise = &win.Rise
		resp.Transit = &win.Transit
		resp.Set = &win.Set
	}
	writeJSON(w, http.StatusOK, resp)
}

// bodyVisibility delegates a solar-system visibility query to the ephemeris
// collaborator's day-window event search.
func (s *Server) bodyVisibility(w http.ResponseWriter, r *http.Request, name string, body ephemeris.Body, obs transform.Observer, instant time.Time) {
	dayStart := time.Date(instant.Year(), instant.Month(), instant.Day(), 0, 0, 0, 0, instant.Location())

	events, err := s.eph.Events(r.Context(), body, obs, dayStart)
	if err != nil {
		if errors.Is(err, ephemeris.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "ephemeris collaborator unavailable")
			return
		}
		writeError(w, http.StatusBadGateway, fmt.Sprintf("ephemeris event search failed: %v", err))
		return
	}

	resp := visibilityResponse{Name: name}
	for _, ev := range events {
		t := ev.Time
		switch ev.Kind {
		case ephemeris.EventRise:
			resp.Rise = &t
		case ephemeris.EventTransit:
			resp.Transit = &t
		case ephemeris.EventSet:
			resp.Set = &t
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type statsResponse struct {
	Stars          int  `json:"stars"`
	DeepSkyObjects int  `json:"deep_sky_objects"`
	Aliases        int  `json:"aliases"`
	RowsSkipped    int  `json:"rows_skipped"`
	Degraded       bool `json:"degraded"`
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsResponse{
		Stars:          s.store.StarCount(),
		DeepSkyObjects: s.store.DeepSkyCount(),
		Aliases:        s.store.AliasCount(),
		RowsSkipped:    s.store.Skipped(),
		Degraded:       s.store.Degraded(),
	})
}

// parseObserver reads observer parameters from the query string. Latitude
// and longitude are required; elevation, temperature and pressure optional.
func parseObserver(q url.Values) (transform.Observer, error) {
	lat, err := requiredFloat(q, "lat")
	if err != nil {
		return transform.Observer{}, err
	}
	lon, err := requiredFloat(q, "lon")
	if err != nil {
		return transform.Observer{}, err
	}
	if lat < -90 || lat > 90 {
		return transform.Observer{}, fmt.Errorf("lat %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return transform.Observer{}, fmt.Errorf("lon %v out of range [-180, 180]", lon)
	}

	// Standard-atmosphere defaults for the optional refraction inputs.
	elev, err := optionalFloat(q, "elev", 0)
	if err != nil {
		return transform.Observer{}, err
	}
	temp, err := optionalFloat(q, "temp", 15)
	if err != nil {
		return transform.Observer{}, err
	}
	pressure, err := optionalFloat(q, "pressure", 1013.25)
	if err != nil {
		return transform.Observer{}, err
	}

	return transform.Observer{
		LatitudeDeg:  lat,
		LongitudeDeg: lon,
		ElevationM:   elev,
		TemperatureC: temp,
		PressureHPa:  pressure,
	}, nil
}

func requiredFloat(q url.Values, key string) (float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, fmt.Errorf("%s parameter is required", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", key, raw)
	}
	return v, nil
}

func optionalFloat(q url.Values, key string, def float64) (float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", key, raw)
	}
	return v, nil
}

// parseInstant reads the optional time parameter (RFC 3339), defaulting to
// the injected clock's now in UTC.
func (s *Server) parseInstant(q url.Values) (time.Time, error) {
	raw := q.Get("time")
	if raw == "" {
		return s.clock.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time value %q: must be RFC 3339", raw)
	}
	return t, nil
}

func writeResolveError(w http.ResponseWriter, err error) {
	var unknown *resolve.UnknownObjectError
	switch {
	case errors.As(err, &unknown):
		writeError(w, http.StatusNotFound, unknown.Error())
	case errors.Is(err, ephemeris.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "ephemeris collaborator unavailable")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
