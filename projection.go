package geocrs

import (
	"errors"
	"math"
)

// Projection is a named forward/inverse map projection. Forward takes
// geographic (lam, phi) in radians relative to the projection's own central
// meridian/ellipsoid and returns planar (x, y); Inverse is its mechanical
// inverse. This mirrors the original Projection interface (projection.go)
// almost exactly -- only the construction source changed, from a
// "+proj=..." string to a ParameterMap.
type Projection interface {
	Forward(lam, phi float64) (x, y float64, err error)
	Inverse(x, y float64) (lam, phi float64, err error)
	Name() string
	// Precision estimates the projection's worst-case numerical error in
	// meters; closed-form projections are exact to double precision,
	// iteratively-converging inverses carry the iteration's tolerance.
	Precision() float64
}

type projTranslator func(lam, phi float64) (float64, float64, error)
type projInvTranslator func(x, y float64) (float64, float64, error)

// pj is the common projection state every concrete projection embeds,
// grounded on the original pj struct (projection.go): ellipsoid
// parameters, central meridian/latitude, false easting/northing, scale,
// and the commonFwd/commonInv scaffolding that every projection routes
// through. The original code derived these fields by hand-parsing a "+proj=..."
// string; here they come from a ParameterMap so the same struct serves
// authority-code/WKT-sourced CRS as well as PROJ-string ones.
type pj struct {
	name string

	ellipsoid *Ellipsoid
	a, es, e  float64
	ra        float64
	oneEs     float64
	rOneEs    float64

	lam0, phi0 float64
	k0         float64
	x0, y0     float64

	geoc bool
	over bool

	toMeter, frMeter float64
}

// newPJ builds the common projection state from a ParameterMap, mirroring
// the original NewProjection parameter resolution (projection.go).
func newPJ(name string, params ParameterMap) (*pj, error) {
	p := &pj{name: name}

	ell, err := ellipsoidFromParams(params)
	if err != nil {
		return nil, err
	}
	p.ellipsoid = ell
	p.a = ell.A
	p.es = ell.E2
	p.e = ell.E
	p.ra = 1 / p.a
	p.oneEs = 1 - p.es
	if p.oneEs != 0 {
		p.rOneEs = 1 / p.oneEs
	}

	p.geoc, _ = getBool(params, "geoc")
	p.over, _ = getBool(params, "over")

	p.lam0, _ = getDegree(params, "lon_0")
	p.phi0, _ = getDegree(params, "lat_0")

	p.x0, _ = getFloat(params, "x_0")
	p.y0, _ = getFloat(params, "y_0")

	if k0, ok := getFloat(params, "k_0"); ok {
		p.k0 = k0
	} else if k0, ok := getFloat(params, "k"); ok {
		p.k0 = k0
	} else {
		p.k0 = 1
	}
	if p.k0 <= 0 {
		return nil, &UnknownParameterError{Key: "k_0", Value: "<=0"}
	}

	// When "units" is absent but "to_meter" is present, the scale comes
	// from to_meter directly, not from an unrelated default.
	if name, ok := getString(params, "units"); ok {
		if u, ok := Units.Lookup(name); ok {
			p.toMeter = u.Scale
		} else {
			return nil, &UnknownParameterError{Key: "units", Value: name}
		}
	} else if f, ok := getFloat(params, "to_meter"); ok {
		p.toMeter = f
	} else {
		p.toMeter = 1
	}
	if p.toMeter == 0 {
		p.toMeter = 1
	}
	p.frMeter = 1 / p.toMeter

	return p, nil
}

// commonFwd applies the shared pre/post processing around a projection's
// own (lam,phi)->(x,y) core, mirroring the original commonFwd
// (projection.go).
func (p *pj) commonFwd(lam, phi float64, tr projTranslator) (x, y float64, err error) {
	t := math.Abs(phi) - half_pi
	if t > epsln || math.Abs(lam) > 10 {
		return hugeVal, hugeVal, errors.New("coordinate out of bounds for projection")
	}
	if math.Abs(t) <= epsln {
		phi = math.Copysign(half_pi, phi)
	} else if p.geoc {
		phi = math.Atan(p.rOneEs * math.Tan(phi))
	}
	lam -= p.lam0
	if !p.over {
		lam = adjLng(lam)
	}
	x, y, err = tr(lam, phi)
	if err != nil {
		return hugeVal, hugeVal, err
	}
	x = p.frMeter * (p.a*p.k0*x + p.x0)
	y = p.frMeter * (p.a*p.k0*y + p.y0)
	return
}

// commonInv mirrors the original commonInv (projection.go).
func (p *pj) commonInv(x, y float64, tr projInvTranslator) (lam, phi float64, err error) {
	x = (x*p.toMeter - p.x0) / (p.a * p.k0)
	y = (y*p.toMeter - p.y0) / (p.a * p.k0)
	lam, phi, err = tr(x, y)
	if err != nil {
		return hugeVal, hugeVal, err
	}
	lam += p.lam0
	if !p.over {
		lam = adjLng(lam)
	}
	if p.geoc && math.Abs(math.Abs(phi)-half_pi) > epsln {
		phi = math.Atan(p.oneEs * math.Tan(phi))
	}
	return
}

func (p *pj) Name() string { return p.name }

// ProjectForward wraps a Projection as a CoordinateOperation acting on a
// canonical (lat, lon, ...) geographic coordinate, producing (x, y, ...).
type ProjectForward struct {
	Proj Projection
}

func (f ProjectForward) Transform(coord []float64) error {
	if len(coord) < 2 {
		return &CoordinateDimensionError{Got: len(coord), Needed: 2}
	}
	phi, lam := coord[0], coord[1]
	x, y, err := f.Proj.Forward(lam, phi)
	if err != nil {
		return err
	}
	coord[0], coord[1] = x, y
	return nil
}

func (f ProjectForward) Inverse() (CoordinateOperation, error) {
	return ProjectInverse{Proj: f.Proj}, nil
}

func (f ProjectForward) Precision() float64 { return f.Proj.Precision() }
func (f ProjectForward) IsIdentity() bool   { return false }
func (f ProjectForward) String() string     { return "ProjectForward(" + f.Proj.Name() + ")" }

// ProjectInverse wraps a Projection's Inverse as a CoordinateOperation
// acting on (x, y, ...), producing canonical (lat, lon, ...).
type ProjectInverse struct {
	Proj Projection
}

func (v ProjectInverse) Transform(coord []float64) error {
	if len(coord) < 2 {
		return &CoordinateDimensionError{Got: len(coord), Needed: 2}
	}
	lam, phi, err := v.Proj.Inverse(coord[0], coord[1])
	if err != nil {
		return err
	}
	coord[0], coord[1] = phi, lam
	return nil
}

func (v ProjectInverse) Inverse() (CoordinateOperation, error) {
	return ProjectForward{Proj: v.Proj}, nil
}

func (v ProjectInverse) Precision() float64 { return v.Proj.Precision() }
func (v ProjectInverse) IsIdentity() bool   { return false }
func (v ProjectInverse) String() string     { return "ProjectInverse(" + v.Proj.Name() + ")" }

// ellipsoidFromParams resolves the "R"/"ellps"/"a"+one-of{b,es,e,rf,f}
// parameter family, mirroring the original setEllipse (projection.go).
func ellipsoidFromParams(params ParameterMap) (*Ellipsoid, error) {
	if r, ok := getFloat(params, "R"); ok {
		return NewEllipsoidAB("", "sphere(R)", r, r), nil
	}
	var a, b float64
	var haveB bool
	if name, ok := getString(params, "ellps"); ok {
		if ell, ok := Ellipsoids.Lookup(name); ok {
			a, b = ell.A, ell.B
			haveB = true
		} else {
			return nil, &UnknownParameterError{Key: "ellps", Value: name}
		}
	}
	if av, ok := getFloat(params, "a"); ok {
		a = av
	}
	if a == 0 {
		return nil, &UnknownParameterError{Key: "a", Value: ""}
	}
	if es, ok := getFloat(params, "es"); ok {
		return NewEllipsoidAE("", "custom", a, math.Sqrt(es)), nil
	}
	if e, ok := getFloat(params, "e"); ok {
		return NewEllipsoidAE("", "custom", a, e), nil
	}
	if rf, ok := getFloat(params, "rf"); ok {
		return NewEllipsoidAF("", "custom", a, rf), nil
	}
	if f, ok := getFloat(params, "f"); ok {
		if f == 0 {
			return NewEllipsoidAB("", "custom-sphere", a, a), nil
		}
		return NewEllipsoidAF("", "custom", a, 1/f), nil
	}
	if bv, ok := getFloat(params, "b"); ok {
		return NewEllipsoidAB("", "custom", a, bv), nil
	}
	if haveB {
		return NewEllipsoidAB("", "custom", a, b), nil
	}
	return nil, &UnknownParameterError{Key: "b/rf/e/es/f", Value: ""}
}

// NewProjection resolves a named projection out of a ParameterMap,
// dispatching through lookupImpl the same way the original NewProjection
// does (projection.go), generalized from a "+proj=..." string to the
// ParameterMap interface.
func NewProjection(params ParameterMap) (Projection, error) {
	name, ok := getString(params, "proj")
	if !ok {
		return nil, &UnknownParameterError{Key: "proj", Value: ""}
	}
	base, err := newPJ(name, params)
	if err != nil {
		return nil, err
	}
	return lookupImpl(name, base, params)
}
