// Package visibility computes horizon-crossing times for fixed celestial
// objects from the observer's latitude and the object's declination. It is
// closed-form spherical trigonometry over the sidereal-time machinery in
// internal/transform; no ephemeris is involved.
package visibility

import (
	"math"
	"time"

	"github.com/Rkm1999/CelestialMCP/internal/transform"
)

const degToRad = math.Pi / 180.0

// Window is the result of a horizon-crossing computation for one calendar
// day. Either Circumpolar is set and the instants are zero, or all three
// instants are populated.
type Window struct {
	Circumpolar bool      `json:"circumpolar"`
	NeverRises  bool      `json:"never_rises,omitempty"`
	Rise        time.Time `json:"rise,omitzero"`
	Transit     time.Time `json:"transit,omitzero"`
	Set         time.Time `json:"set,omitzero"`
}

// Compute determines whether and when the object crosses the horizon on the
// calendar day containing t. The day starts at local midnight in t's time
// representation (hours, minutes and seconds zeroed in t's location).
//
// The horizon condition is cos H = -tan(lat)·tan(dec). When |cos H| >= 1 the
// object never crosses the horizon that day; the tangency boundary is
// classified as non-crossing rather than a zero-length rise/set pair. An
// object that never sets is reported only for the same-signed northern case
// (dec > 0 at northern latitudes); every other non-crossing configuration is
// reported as never rising.
func Compute(eq transform.Equatorial, obs transform.Observer, t time.Time) Window {
	cosH := -math.Tan(obs.LatitudeDeg*degToRad) * math.Tan(eq.DecDeg*degToRad)
	if math.Abs(cosH) >= 1 {
		neverRises := !(eq.DecDeg > 0 && obs.LatitudeDeg > 0)
		return Window{Circumpolar: true, NeverRises: neverRises}
	}

	// Half the day arc: the hour angle at rise and set, in degrees.
	h0 := math.Acos(cosH) / degToRad

	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	ha0 := transform.HourAngleDegrees(midnight, obs.LongitudeDeg, eq.RAHours)

	// Upper meridian crossing (hour angle 0), as hours after local midnight,
	// then the rise/set pair half a day arc to either side.
	transitHours := math.Mod(24.0-ha0/15.0, 24.0)
	riseHours := math.Mod(transitHours-h0/15.0+24.0, 24.0)
	setHours := math.Mod(transitHours+h0/15.0, 24.0)

	return Window{
		Rise:    addHours(midnight, riseHours),
		Transit: addHours(midnight, transitHours),
		Set:     addHours(midnight, setHours),
	}
}

func addHours(t time.Time, hours float64) time.Time {
	return t.Add(time.Duration(hours * float64(time.Hour)))
}
