package geocrs

import "sync"

// datumRegistry is the append-only name->GeodeticDatum table, grounded on the original datums_list (defs.go:
// id/towgs84-string/ellipse), generalized to real *GeodeticDatum values
// with a resolved toWGS84 Helmert/translation operation.
type datumRegistry struct {
	mu    sync.RWMutex
	byKey map[string]*GeodeticDatum
}

func newDatumRegistry() *datumRegistry {
	return &datumRegistry{byKey: make(map[string]*GeodeticDatum)}
}

func (r *datumRegistry) Register(key string, d *GeodeticDatum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey[key] = d
}

func (r *datumRegistry) Lookup(key string) (*GeodeticDatum, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byKey[key]
	return d, ok
}

// Datums is the package's built-in datum registry.
var Datums = newDatumRegistry()

func mustEllipsoid(key string) *Ellipsoid {
	e, ok := Ellipsoids.Lookup(key)
	if !ok {
		panic("geocrs: built-in ellipsoid missing: " + key)
	}
	return e
}

// registerDatum builds and registers a datum with a towgs84 (3 or 7
// element) shift to WGS84, mirroring the original datums_list entries
// (defs.go), where each row names an ellipsoid and a towgs84 string.
//
// SetToWGS84 keeps the bare geocentric op (frenchgrid.go's GR3DF97A seed
// step expects to run it directly on XYZ it converts itself); the graph
// edges registered with AddOperation are bracketed with geocentricShift
// so ResolveDatumShift's callers always get a geographic-space operation
// straight off the graph, matching every other registered edge kind
// (NTv2 GridShift2D, GR3DF97A).
func registerDatum(key, ellipsoidKey string, towgs84 []float64) *GeodeticDatum {
	d := NewGeodeticDatum(key, mustEllipsoid(ellipsoidKey), Greenwich, WholeWorld)
	if len(towgs84) > 0 {
		op := Translation7ToHelmert(towgs84, PositionVector, true)
		d.SetToWGS84(op)
		d.AddOperation(WGS84Datum, geocentricShift(op, d.Ellipsoid, WGS84Datum.Ellipsoid))
		if inv, err := op.Inverse(); err == nil {
			WGS84Datum.AddOperation(d, geocentricShift(inv, WGS84Datum.Ellipsoid, d.Ellipsoid))
		}
	} else {
		d.SetToWGS84(Identity{})
	}
	Datums.Register(key, d)
	return d
}

func init() {
	Datums.Register("WGS84", WGS84Datum)

	registerDatum("GGRS87", "GRS80", []float64{-199.87, 74.79, 246.62})
	registerDatum("NAD83", "GRS80", []float64{0, 0, 0})
	registerDatum("potsdam", "bessel", []float64{598.1, 73.7, 418.2, 0.202, 0.045, -2.455, 6.7})
	registerDatum("carthage", "clrk80ign", []float64{-263.0, 6.0, 431.0})
	registerDatum("hermannskogel", "bessel", []float64{577.326, 90.129, 463.919, 5.137, 1.474, 5.297, 2.4232})
	registerDatum("ire65", "mod_airy", []float64{482.530, -130.596, 564.557, -1.042, -0.214, -0.631, 8.15})
	registerDatum("nzgd49", "intl", []float64{59.47, -5.04, 187.44, 0.47, -0.1, 1.024, -4.5993})
	registerDatum("OSGB36", "airy", []float64{446.448, -125.157, 542.060, 0.1502, 0.2470, 0.8421, -20.4894})

	// NAD27 in the original table is nadgrids-only (defs.go:
	// "nadgrids=@conus,@alaska,..."); no towgs84 fallback is declared, so no
	// direct Helmert edge is registered here -- NAD27<->WGS84 is reachable
	// only through a registered NTv2 GridShift2D edge (see ntv2.go), which
	// is exactly the PJD_GRIDSHIFT datum type the original flags as
	// unimplemented (BUG(slecuyer): no support for nadgrids).
	nad27 := NewGeodeticDatum("NAD27", mustEllipsoid("clrk66"), Greenwich, WholeWorld)
	Datums.Register("NAD27", nad27)

	// French historical datums used by the IGN/GR3DF97A grid chain;
	// towgs84 values are the standard NTF->WGS84 approximate
	// 3-parameter shift used as the GR3DF97A iteration's starting point.
	// Its accuracy (meter level) is far below the registered GR3DF97A grid
	// edge's (RegisterGR3DF97A, 1mm), so it carries a realistic Prec rather
	// than the unset-field default of 0 -- otherwise ResolveDatumShift's
	// lowest-precision-wins rule would prefer this approximation over the
	// grid it exists only to seed.
	ntf := NewGeodeticDatum("NTF", mustEllipsoid("clrk80ign"), Paris, WholeWorld)
	ntf.SetToWGS84(Translation3D{DX: -168, DY: -60, DZ: 320, Prec: 1.0})
	Datums.Register("NTF", ntf)

	rgf93 := NewGeodeticDatum("RGF93", mustEllipsoid("GRS80"), Greenwich, WholeWorld)
	rgf93.SetToWGS84(Identity{})
	Datums.Register("RGF93", rgf93)
}
