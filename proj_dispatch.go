package geocrs

import (
	"math"
	"strconv"
)

type projConstructor func(base *pj, params ParameterMap) (Projection, error)

// projRegistry maps a "+proj=" name to its constructor, replacing the
// original small hardcoded switch in lookupImpl (projections.go) with an
// append-only table big enough to cover every projection family named.
var projRegistry = map[string]projConstructor{
	"latlong": newLngLat, "longlat": newLngLat, "latlon": newLngLat, "lonlat": newLngLat,
	"merc":   newMercator,
	"eqc":    newEquirectangular,
	"cass":   newCassini,
	"mill":   newMiller,
	"cea":    newCylindricalEqualArea,
	"lcc":    newLCC,
	"aea":    newAlbersEqualArea,
	"leac":   newLeac,
	"stere":  newStereographic,
	"sterea": newObliqueStereographic,
	"laea":   newLambertAzimuthalEqualArea,
	"tmerc":  newTransverseMercator,
	"utm":    newUTM,
	"omerc":  newObliqueMercatorDispatch,
	"somerc": newSwissObliqueMercator,
	"poly":   newPolyconic,
	"krovak": newKrovak,
	"nzmg":   newNZMG,
	"gstmerc": newGaussSchreiberTransverseMercator,
}

// newLeac recasts the "recast as a 1-parallel Albers with the pole as the
// second parallel" Lambert Equal Area Conic onto AlbersEqualArea, matching
// how PROJ itself implements leac as an aea variant.
func newLeac(base *pj, params ParameterMap) (Projection, error) {
	south, _ := getBool(params, "south")
	pole := math.Copysign(half_pi, 1)
	if south {
		pole = -half_pi
	}
	wrapped := wrapWithLat2(params, pole)
	return newAlbersEqualArea(base, wrapped)
}

// newObliqueMercatorDispatch implements the §4.6 family rule: alpha=gamma=90
// degrees is the Swiss oblique Mercator special case, dispatched to its own
// dedicated type instead of falling through the general Hotine formulas.
func newObliqueMercatorDispatch(base *pj, params ParameterMap) (Projection, error) {
	alpha, hasAlpha := getDegree(params, "alpha")
	gamma, hasGamma := getDegree(params, "gamma")
	if hasAlpha && hasGamma && math.Abs(alpha-half_pi) < 1e-9 && math.Abs(gamma-half_pi) < 1e-9 {
		return newSwissObliqueMercator(base, params)
	}
	return newObliqueMercator(base, params)
}

// wrapWithLat2 overlays a synthetic "lat_2" onto an existing ParameterMap
// without mutating the caller's map.
type overlayParameterMap struct {
	base ParameterMap
	key  string
	val  string
}

func (o overlayParameterMap) Get(key string) (string, bool) {
	if key == o.key {
		return o.val, true
	}
	return o.base.Get(key)
}

func wrapWithLat2(base ParameterMap, latRad float64) ParameterMap {
	return overlayParameterMap{base: base, key: "lat_2", val: formatDegrees(latRad / d2r)}
}

func formatDegrees(deg float64) string {
	return strconv.FormatFloat(deg, 'g', -1, 64)
}

// lookupImpl resolves a projection name into a concrete Projection,
// mirroring the original lookupImpl (projections.go) but against the
// larger projRegistry table instead of a 4-case switch.
func lookupImpl(name string, base *pj, params ParameterMap) (Projection, error) {
	ctor, ok := projRegistry[name]
	if !ok {
		return nil, &UnknownParameterError{Key: "proj", Value: name}
	}
	return ctor(base, params)
}
