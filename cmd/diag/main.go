package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Rkm1999/CelestialMCP/internal/catalog"
	"github.com/Rkm1999/CelestialMCP/internal/ephemeris"
	"github.com/Rkm1999/CelestialMCP/internal/resolve"
	"github.com/Rkm1999/CelestialMCP/internal/transform"
	"github.com/Rkm1999/CelestialMCP/internal/visibility"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		fmt.Println("usage: diag <object name> [stars.csv] [dso.csv]")
		os.Exit(1)
	}
	name := os.Args[1]

	cfg := catalog.Config{StarsPath: "data/stars.csv", DeepSkyPath: "data/dso.csv"}
	if len(os.Args) > 2 {
		cfg.StarsPath = os.Args[2]
	}
	if len(os.Args) > 3 {
		cfg.DeepSkyPath = os.Args[3]
	}

	store := catalog.Build(cfg, logger)
	fmt.Printf("Loaded %d stars, %d deep-sky objects, %d aliases (degraded=%v)\n",
		store.StarCount(), store.DeepSkyCount(), store.AliasCount(), store.Degraded())

	resolver := resolve.New(store, ephemeris.Unavailable{})

	res, err := resolver.Resolve(name)
	if err != nil {
		fmt.Println("ERROR resolving:", err)
		os.Exit(1)
	}
	if res.Kind == resolve.KindBody {
		fmt.Printf("%q is the solar-system body %s (ephemeris collaborator required)\n", name, res.Body)
		os.Exit(0)
	}

	e := res.Entry
	fmt.Printf("Resolved %q -> %s (RA %.6fh, Dec %.4f°)", name, e.Key, e.RAHours, e.DecDeg)
	if e.CommonName != "" {
		fmt.Printf(" %q", e.CommonName)
	}
	fmt.Println()

	// Reference observer: Vancouver, BC.
	obs := transform.Observer{LatitudeDeg: 49.2827, LongitudeDeg: -123.1207, ElevationM: 70}

	now := time.Now().UTC()
	eq, err := resolver.Equatorial(context.Background(), name, obs, now)
	if err != nil {
		fmt.Println("ERROR resolving coordinate:", err)
		os.Exit(1)
	}

	hz := transform.ToHorizontal(eq, obs, now)
	fmt.Printf("At %v from (%.4f, %.4f):\n", now.Format(time.RFC3339), obs.LatitudeDeg, obs.LongitudeDeg)
	fmt.Printf("  altitude %.2f°, azimuth %.2f°\n", hz.AltitudeDeg, hz.AzimuthDeg)

	win := visibility.Compute(eq, obs, now)
	if win.Circumpolar {
		if win.NeverRises {
			fmt.Println("  never rises at this latitude today")
		} else {
			fmt.Println("  circumpolar: never sets at this latitude")
		}
		return
	}
	fmt.Printf("  rise    %v\n", win.Rise.Format(time.RFC3339))
	fmt.Printf("  transit %v\n", win.Transit.Format(time.RFC3339))
	fmt.Printf("  set     %v\n", win.Set.Format(time.RFC3339))
}
