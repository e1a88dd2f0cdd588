package transform

import (
	"math"
	"time"
)

// j2000 is the J2000.0 reference epoch: January 1, 2000, 12:00:00 UTC.
var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// DaysSinceJ2000 returns the signed fractional number of days between t and
// the J2000.0 epoch. Negative for instants before the epoch.
func DaysSinceJ2000(t time.Time) float64 {
	return t.UTC().Sub(j2000).Seconds() / 86400.0
}

// GMSTDegrees computes Greenwich Mean Sidereal Time in degrees using the
// low-precision expansion about J2000.0:
//
//	GMST = 280.46061837 + 360.98564736629 · D
//
// where D is days since J2000.0. Accurate to about an arcsecond over several
// decades around the epoch, which is far below the resolution of rise/set
// times. Result is normalized to [0, 360).
func GMSTDegrees(t time.Time) float64 {
	d := DaysSinceJ2000(t)
	return normalizeDegrees(280.46061837 + 360.98564736629*d)
}

// LSTDegrees computes Local Sidereal Time in degrees for an observer at the
// given east-positive longitude.
func LSTDegrees(t time.Time, longitudeDeg float64) float64 {
	return normalizeDegrees(GMSTDegrees(t) + longitudeDeg)
}

// HourAngleDegrees returns the local hour angle of an object at the given
// right ascension (hours), measured westward from the observer's meridian,
// normalized to [0, 360). Zero means the object is on the upper meridian.
func HourAngleDegrees(t time.Time, longitudeDeg, raHours float64) float64 {
	return normalizeDegrees(LSTDegrees(t, longitudeDeg) - raHours*15.0)
}

// normalizeDegrees reduces an angle to [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}
