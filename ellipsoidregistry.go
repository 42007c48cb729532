package geocrs

import "sync"

// ellipsoidRegistry is a process-wide, append-only name->Ellipsoid table.
// Grounded on the original package-level
// ellipse_list (defs.go), which was a plain unsynchronized map populated
// once at init; this generalizes it to the read-mostly, RWMutex-guarded
// registry needed so late registration (e.g. a custom ellipsoid
// loaded from a WKT string) is safe to do concurrently with lookups.
type ellipsoidRegistry struct {
	mu    sync.RWMutex
	byKey map[string]*Ellipsoid
}

func newEllipsoidRegistry() *ellipsoidRegistry {
	return &ellipsoidRegistry{byKey: make(map[string]*Ellipsoid)}
}

// Register adds (or overwrites) an ellipsoid. The table only ever grows --
// callers don't remove entries.
func (r *ellipsoidRegistry) Register(key string, e *Ellipsoid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey[key] = e
}

func (r *ellipsoidRegistry) Lookup(key string) (*Ellipsoid, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byKey[key]
	return e, ok
}

// Ellipsoids is the package's built-in ellipsoid registry, seeded with the
// original ellipse_list (defs.go), translated from PROJ-string fragments
// ("a=...", "b=..."/"rf=...") into concrete a/b or a/invF pairs.
var Ellipsoids = newEllipsoidRegistry()

func init() {
	reg := Ellipsoids
	reg.Register("MERIT", NewEllipsoidAF("MERIT", "MERIT 1983", 6378137.0, 298.257))
	reg.Register("SGS85", NewEllipsoidAF("SGS85", "Soviet Geodetic System 85", 6378136.0, 298.257))
	reg.Register("GRS80", NewEllipsoidAF("GRS80", "GRS 1980(IUGG, 1980)", 6378137.0, 298.257222101))
	reg.Register("IAU76", NewEllipsoidAF("IAU76", "IAU 1976", 6378140.0, 298.257))
	reg.Register("airy", NewEllipsoidAB("airy", "Airy 1830", 6377563.396, 6356256.910))
	reg.Register("mod_airy", NewEllipsoidAB("mod_airy", "Modified Airy", 6377340.189, 6356034.446))
	reg.Register("andrae", NewEllipsoidAF("andrae", "Andrae 1876 (Den., Iclnd.)", 6377104.43, 300.0))
	reg.Register("aust_SA", NewEllipsoidAF("aust_SA", "Australian Natl & S. Amer. 1969", 6378160.0, 298.25))
	reg.Register("GRS67", NewEllipsoidAF("GRS67", "GRS 67(IUGG 1967)", 6378160.0, 298.2471674270))
	reg.Register("bessel", NewEllipsoidAF("bessel", "Bessel 1841", 6377397.155, 299.1528128))
	reg.Register("bess_nam", NewEllipsoidAF("bess_nam", "Bessel 1841 (Namibia)", 6377483.865, 299.1528128))
	reg.Register("clrk66", NewEllipsoidAB("clrk66", "Clarke 1866", 6378206.4, 6356583.8))
	reg.Register("clrk80", NewEllipsoidAF("clrk80", "Clarke 1880 mod.", 6378249.145, 293.4663))
	reg.Register("clrk80ign", NewEllipsoidAF("clrk80ign", "Clarke 1880 (IGN)", 6378249.2, 293.4660212936269))
	reg.Register("CPM", NewEllipsoidAF("CPM", "Comm. des Poids et Mesures 1799", 6375738.7, 334.29))
	reg.Register("delmbr", NewEllipsoidAF("delmbr", "Delambre 1810 (Belgium)", 6376428.0, 311.5))
	reg.Register("engelis", NewEllipsoidAF("engelis", "Engelis 1985", 6378136.05, 298.2566))
	reg.Register("evrst30", NewEllipsoidAF("evrst30", "Everest 1830", 6377276.345, 300.8017))
	reg.Register("evrst48", NewEllipsoidAF("evrst48", "Everest 1948", 6377304.063, 300.8017))
	reg.Register("evrst56", NewEllipsoidAF("evrst56", "Everest 1956", 6377301.243, 300.8017))
	reg.Register("evrst69", NewEllipsoidAF("evrst69", "Everest 1969", 6377295.664, 300.8017))
	reg.Register("evrstSS", NewEllipsoidAF("evrstSS", "Everest (Sabah & Sarawak)", 6377298.556, 300.8017))
	reg.Register("fschr60", NewEllipsoidAF("fschr60", "Fischer (Mercury Datum) 1960", 6378166.0, 298.3))
	reg.Register("fschr60m", NewEllipsoidAF("fschr60m", "Modified Fischer 1960", 6378155.0, 298.3))
	reg.Register("fschr68", NewEllipsoidAF("fschr68", "Fischer 1968", 6378150.0, 298.3))
	reg.Register("helmert", NewEllipsoidAF("helmert", "Helmert 1906", 6378200.0, 298.3))
	reg.Register("hough", NewEllipsoidAF("hough", "Hough", 6378270.0, 297.0))
	reg.Register("intl", NewEllipsoidAF("intl", "International 1909 (Hayford)", 6378388.0, 297.0))
	reg.Register("krass", NewEllipsoidAF("krass", "Krassovsky, 1942", 6378245.0, 298.3))
	reg.Register("kaula", NewEllipsoidAF("kaula", "Kaula 1961", 6378163.0, 298.24))
	reg.Register("lerch", NewEllipsoidAF("lerch", "Lerch 1979", 6378139.0, 298.257))
	reg.Register("mprts", NewEllipsoidAF("mprts", "Maupertius 1738", 6397300.0, 191.0))
	reg.Register("new_intl", NewEllipsoidAB("new_intl", "New International 1967", 6378157.5, 6356772.2))
	reg.Register("plessis", NewEllipsoidAB("plessis", "Plessis 1817 (France)", 6376523.0, 6355863.0))
	reg.Register("SEasia", NewEllipsoidAB("SEasia", "Southeast Asia", 6378155.0, 6356773.3205))
	reg.Register("walbeck", NewEllipsoidAB("walbeck", "Walbeck", 6376896.0, 6355834.8467))
	reg.Register("WGS60", NewEllipsoidAF("WGS60", "WGS 60", 6378165.0, 298.3))
	reg.Register("WGS66", NewEllipsoidAF("WGS66", "WGS 66", 6378145.0, 298.25))
	reg.Register("WGS72", NewEllipsoidAF("WGS72", "WGS 72", 6378135.0, 298.26))
	reg.Register("WGS84", NewEllipsoidAF("WGS84", "WGS 84", 6378137.0, 298.257223563))
	reg.Register("GRS80-IGN", NewEllipsoidAF("GRS80-IGN", "GRS80 (IGN 3D grid pivot)", 6378137.0, 298.257222101))
	reg.Register("sphere", NewEllipsoidAB("sphere", "Normal Sphere (r=6370997)", 6370997.0, 6370997.0))
}
