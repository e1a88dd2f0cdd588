// Package resolve maps free-form object names to catalog coordinates or to
// the solar-system ephemeris path.
package resolve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rkm1999/CelestialMCP/internal/catalog"
	"github.com/Rkm1999/CelestialMCP/internal/ephemeris"
	"github.com/Rkm1999/CelestialMCP/internal/transform"
)

// Kind tells which path answers a resolved name.
type Kind int

const (
	KindCatalog Kind = iota
	KindBody
)

// Resolution is a successful name resolution: either a catalog entry or a
// solar-system body routed to the ephemeris collaborator.
type Resolution struct {
	Kind  Kind
	Body  ephemeris.Body // set when Kind == KindBody
	Entry catalog.Entry  // set when Kind == KindCatalog
}

// UnknownObjectError reports a name that matched nothing. It is terminal:
// resolution is a pure read against the immutable store, so there is nothing
// to retry.
type UnknownObjectError struct {
	Name string
}

func (e *UnknownObjectError) Error() string {
	return fmt.Sprintf("unknown object %q", e.Name)
}

// Resolver answers name queries against the immutable catalog store and
// routes solar-system bodies to the ephemeris collaborator.
type Resolver struct {
	store *catalog.Store
	eph   ephemeris.Client
}

// New creates a Resolver. The store must be fully built before the first
// call; eph may be ephemeris.Unavailable{} when no collaborator is wired.
func New(store *catalog.Store, eph ephemeris.Client) *Resolver {
	return &Resolver{store: store, eph: eph}
}

// Resolve matches a name after lowercasing and trimming, first match wins:
// solar-system bodies, then the alias table (canonical key looked up in the
// deep-sky table before the star table), then star keys, then deep-sky keys.
// No fuzzy or partial matching.
func (r *Resolver) Resolve(name string) (Resolution, error) {
	q := strings.ToLower(strings.TrimSpace(name))

	if body, ok := ephemeris.BodyByName(q); ok {
		return Resolution{Kind: KindBody, Body: body}, nil
	}

	if key, ok := r.store.Alias(q); ok {
		if e, ok := r.store.DeepSky(key); ok {
			return Resolution{Kind: KindCatalog, Entry: e}, nil
		}
		if e, ok := r.store.Star(key); ok {
			return Resolution{Kind: KindCatalog, Entry: e}, nil
		}
	}

	if e, ok := r.store.Star(q); ok {
		return Resolution{Kind: KindCatalog, Entry: e}, nil
	}
	if e, ok := r.store.DeepSky(q); ok {
		return Resolution{Kind: KindCatalog, Entry: e}, nil
	}

	return Resolution{}, &UnknownObjectError{Name: name}
}

// Equatorial resolves a name to its equatorial coordinate at instant t.
// Catalog objects return their stored coordinate; solar-system bodies
// delegate to the ephemeris collaborator.
func (r *Resolver) Equatorial(ctx context.Context, name string, obs transform.Observer, t time.Time) (transform.Equatorial, error) {
	res, err := r.Resolve(name)
	if err != nil {
		return transform.Equatorial{}, err
	}

	if res.Kind == KindBody {
		eq, err := r.eph.Equatorial(ctx, res.Body, obs, t)
		if err != nil {
			return transform.Equatorial{}, fmt.Errorf("ephemeris lookup for %s: %w", res.Body, err)
		}
		return eq, nil
	}

	return transform.Equatorial{RAHours: res.Entry.RAHours, DecDeg: res.Entry.DecDeg}, nil
}
