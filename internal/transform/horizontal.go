package transform

import (
	"math"
	"time"
)

const degToRad = math.Pi / 180.0

// Observer is a ground observer. Latitude is north-positive, longitude
// east-positive, both in degrees. Temperature and pressure ride along for
// collaborators that apply refraction corrections; the conversion in this
// package deliberately does not.
type Observer struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	ElevationM   float64
	TemperatureC float64
	PressureHPa  float64
}

// Equatorial is a position on the celestial sphere: right ascension in
// hours [0, 24), declination in degrees [-90, 90].
type Equatorial struct {
	RAHours float64
	DecDeg  float64
}

// Horizontal is an observer-relative position: altitude above the horizon
// and azimuth measured clockwise from North (0 = N, 90 = E, 180 = S,
// 270 = W), both in degrees.
type Horizontal struct {
	AltitudeDeg float64
	AzimuthDeg  float64
}

// ToHorizontal converts an equatorial position to horizontal coordinates for
// the observer at instant t.
//
// The hour angle comes from the sidereal-time machinery above; the transform
// itself is the standard spherical triangle solved in a South-East-Zenith
// basis, the same rotation used for topocentric look angles (Vallado
// Section 4.4). No atmospheric refraction is applied.
func ToHorizontal(eq Equatorial, obs Observer, t time.Time) Horizontal {
	haRad := HourAngleDegrees(t, obs.LongitudeDeg, eq.RAHours) * degToRad
	decRad := eq.DecDeg * degToRad
	latRad := obs.LatitudeDeg * degToRad

	sinLat := math.Sin(latRad)
	cosLat := math.Cos(latRad)
	sinDec := math.Sin(decRad)
	cosDec := math.Cos(decRad)
	cosHA := math.Cos(haRad)

	// Unit vector toward the object in SEZ coordinates.
	south := sinLat*cosHA*cosDec - cosLat*sinDec
	east := -math.Sin(haRad) * cosDec
	zenith := cosLat*cosHA*cosDec + sinLat*sinDec

	// zenith equals sin(alt); the asin form of the altitude equation.
	alt := math.Asin(clampUnit(zenith))

	// Azimuth clockwise from North: North = -South direction.
	az := math.Atan2(east, -south)
	if az < 0 {
		az += 2 * math.Pi
	}

	return Horizontal{
		AltitudeDeg: alt / degToRad,
		AzimuthDeg:  az / degToRad,
	}
}

// clampUnit guards asin against rounding drift just outside [-1, 1].
func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
