// Package ephemeris defines the contract with the external ephemeris
// collaborator that owns all solar-system computation. This service treats
// the collaborator as a request/response black box; only the fixed-object
// math in internal/transform and internal/visibility is implemented locally.
package ephemeris

import (
	"context"
	"errors"
	"time"

	"github.com/Rkm1999/CelestialMCP/internal/transform"
)

// Body identifies a solar-system object handled by the collaborator.
type Body string

const (
	Sun     Body = "sun"
	Moon    Body = "moon"
	Mercury Body = "mercury"
	Venus   Body = "venus"
	Mars    Body = "mars"
	Jupiter Body = "jupiter"
	Saturn  Body = "saturn"
	Uranus  Body = "uranus"
	Neptune Body = "neptune"
	Pluto   Body = "pluto"
)

var bodies = map[string]Body{
	"sun": Sun, "moon": Moon, "mercury": Mercury, "venus": Venus,
	"mars": Mars, "jupiter": Jupiter, "saturn": Saturn,
	"uranus": Uranus, "neptune": Neptune, "pluto": Pluto,
}

// BodyByName maps a lowercased, trimmed name to a Body.
func BodyByName(name string) (Body, bool) {
	b, ok := bodies[name]
	return b, ok
}

// EventKind classifies a horizon or meridian crossing found by the collaborator.
type EventKind string

const (
	EventRise    EventKind = "rise"
	EventTransit EventKind = "transit"
	EventSet     EventKind = "set"
)

// Event is one crossing within a searched day window.
type Event struct {
	Kind EventKind
	Time time.Time
}

// Client is the collaborator interface. Implementations are injected by the
// host process; this repository ships no real implementation.
type Client interface {
	// Equatorial returns the body's equatorial coordinate for the observer
	// at instant t.
	Equatorial(ctx context.Context, body Body, obs transform.Observer, t time.Time) (transform.Equatorial, error)

	// Events searches the day starting at dayStart for horizon crossings and
	// meridian transits of the body.
	Events(ctx context.Context, body Body, obs transform.Observer, dayStart time.Time) ([]Event, error)
}

// ErrUnavailable is returned when no collaborator is wired in.
var ErrUnavailable = errors.New("ephemeris collaborator unavailable")

// Unavailable is the Client used by deployments without a collaborator:
// every call fails with ErrUnavailable. Fixed-object queries are unaffected.
type Unavailable struct{}

func (Unavailable) Equatorial(context.Context, Body, transform.Observer, time.Time) (transform.Equatorial, error) {
	return transform.Equatorial{}, ErrUnavailable
}

func (Unavailable) Events(context.Context, Body, transform.Observer, time.Time) ([]Event, error) {
	return nil, ErrUnavailable
}
