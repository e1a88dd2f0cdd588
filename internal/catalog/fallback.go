package catalog

// Built-in degraded-mode tables, used when a catalog file is missing or
// wholly unparsable. Coordinates are J2000 epoch values for the brightest
// and most commonly requested objects, so name queries stay answerable
// without any file or network state.

var fallbackStars = []Entry{
	{Key: "sirius", RAHours: 6.752481, DecDeg: -16.716116, CommonName: "Sirius", ObjectType: "A1V"},
	{Key: "canopus", RAHours: 6.399195, DecDeg: -52.695661, CommonName: "Canopus", ObjectType: "F0II"},
	{Key: "arcturus", RAHours: 14.261021, DecDeg: 19.182410, CommonName: "Arcturus", ObjectType: "K1.5III"},
	{Key: "vega", RAHours: 18.615649, DecDeg: 38.783690, CommonName: "Vega", ObjectType: "A0V"},
	{Key: "capella", RAHours: 5.278155, DecDeg: 45.997991, CommonName: "Capella", ObjectType: "G5III"},
	{Key: "rigel", RAHours: 5.242298, DecDeg: -8.201640, CommonName: "Rigel", ObjectType: "B8I"},
	{Key: "procyon", RAHours: 7.655033, DecDeg: 5.224993, CommonName: "Procyon", ObjectType: "F5IV-V"},
	{Key: "betelgeuse", RAHours: 5.919529, DecDeg: 7.407064, CommonName: "Betelgeuse", ObjectType: "M2I"},
	{Key: "achernar", RAHours: 1.628556, DecDeg: -57.236753, CommonName: "Achernar", ObjectType: "B3V"},
	{Key: "altair", RAHours: 19.846388, DecDeg: 8.868322, CommonName: "Altair", ObjectType: "A7V"},
	{Key: "aldebaran", RAHours: 4.598677, DecDeg: 16.509302, CommonName: "Aldebaran", ObjectType: "K5III"},
	{Key: "antares", RAHours: 16.490128, DecDeg: -26.432002, CommonName: "Antares", ObjectType: "M1.5I"},
	{Key: "spica", RAHours: 13.419883, DecDeg: -11.161322, CommonName: "Spica", ObjectType: "B1V"},
	{Key: "pollux", RAHours: 7.755264, DecDeg: 27.995785, CommonName: "Pollux", ObjectType: "K0III"},
	{Key: "fomalhaut", RAHours: 22.960838, DecDeg: -29.622237, CommonName: "Fomalhaut", ObjectType: "A3V"},
	{Key: "deneb", RAHours: 20.690532, DecDeg: 45.280338, CommonName: "Deneb", ObjectType: "A2I"},
	{Key: "regulus", RAHours: 10.139532, DecDeg: 11.967207, CommonName: "Regulus", ObjectType: "B7V"},
	{Key: "polaris", RAHours: 2.530301, DecDeg: 89.264109, CommonName: "Polaris", ObjectType: "F7I"},
}

var fallbackDeepSky = []Entry{
	{Key: "m1", RAHours: 5.575539, DecDeg: 22.014500, CommonName: "Crab Nebula", ObjectType: "SNR"},
	{Key: "m8", RAHours: 18.060278, DecDeg: -24.386700, CommonName: "Lagoon Nebula", ObjectType: "Neb"},
	{Key: "m13", RAHours: 16.694898, DecDeg: 36.461319, CommonName: "Hercules Globular Cluster", ObjectType: "GCl"},
	{Key: "m27", RAHours: 19.993434, DecDeg: 22.721198, CommonName: "Dumbbell Nebula", ObjectType: "PN"},
	{Key: "m31", RAHours: 0.712314, DecDeg: 41.269065, CommonName: "Andromeda Galaxy", ObjectType: "G"},
	{Key: "m33", RAHours: 1.564138, DecDeg: 30.660175, CommonName: "Triangulum Galaxy", ObjectType: "G"},
	{Key: "m42", RAHours: 5.588139, DecDeg: -5.391111, CommonName: "Orion Nebula", ObjectType: "Neb"},
	{Key: "m45", RAHours: 3.790419, DecDeg: 24.105278, CommonName: "Pleiades", ObjectType: "OCl"},
	{Key: "m51", RAHours: 13.497970, DecDeg: 47.195258, CommonName: "Whirlpool Galaxy", ObjectType: "G"},
	{Key: "m57", RAHours: 18.893082, DecDeg: 33.028580, CommonName: "Ring Nebula", ObjectType: "PN"},
	{Key: "m81", RAHours: 9.925881, DecDeg: 69.065295, CommonName: "Bode's Galaxy", ObjectType: "G"},
	{Key: "m104", RAHours: 12.666508, DecDeg: -11.623052, CommonName: "Sombrero Galaxy", ObjectType: "G"},
}

// loadFallback copies a built-in table into dst and registers each common
// name as an alias, mirroring what ingestion of a real file would do.
func loadFallback(entries []Entry, dst map[string]Entry, aliases map[string]string) int {
	for _, e := range entries {
		dst[e.Key] = e
		alias := lowerAlias(e.CommonName)
		if alias != "" && alias != e.Key {
			aliases[alias] = e.Key
		}
	}
	return len(entries)
}
