package geocrs

import (
	"math"
	"sync"
)

// Ellipsoid is an immutable oblate-spheroid model of the Earth, identified
// by its semi-major axis and one of {semi-minor axis, inverse flattening,
// eccentricity}. Constructing an Ellipsoid precomputes the series
// coefficients its numeric methods need so Forward/Inverse never allocate.
type Ellipsoid struct {
	Code string
	Name string

	A, B   float64 // semi-major, semi-minor axis (meters)
	F      float64 // flattening
	E, E2  float64 // eccentricity, eccentricity squared
	secondE2 float64 // second eccentricity squared, e'^2 = e2/(1-e2)

	// arcCoef are the Snyder meridian-arc series coefficients (en[0..4]),
	// used by MeridianArc.
	arcCoef [5]float64
	// footpointCoef are the coefficients of the footpoint-latitude series
	// used by InverseMeridianArc (mu -> phi).
	footpointCoef [5]float64
	// utmFwdCoef/utmInvCoef hold precomputed per-ellipsoid constants
	// (e.g. second eccentricity squared powers) reused by the forward and
	// inverse transverse Mercator / UTM series respectively.
	utmFwdCoef [5]float64
	utmInvCoef [5]float64
	// mercInvCoef are the conformal-latitude series coefficients for the
	// closed-form (non-iterative) inverse isometric latitude.
	mercInvCoef [5]float64

	kSeriesOnce sync.Once
	kSeries     [9]float64 // alternate arc formulation, 1<=n<=8
}

// NewEllipsoidAB builds an Ellipsoid from semi-major/semi-minor axes.
func NewEllipsoidAB(code, name string, a, b float64) *Ellipsoid {
	f := 1 - b/a
	return newEllipsoid(code, name, a, b, f)
}

// NewEllipsoidAF builds an Ellipsoid from the semi-major axis and inverse
// flattening (1/f).
func NewEllipsoidAF(code, name string, a, invF float64) *Ellipsoid {
	if invF == 0 {
		return newEllipsoid(code, name, a, a, 0) // sphere
	}
	f := 1 / invF
	b := a * (1 - f)
	return newEllipsoid(code, name, a, b, f)
}

// NewEllipsoidAE builds an Ellipsoid from the semi-major axis and first
// eccentricity e.
func NewEllipsoidAE(code, name string, a, e float64) *Ellipsoid {
	e2 := e * e
	f := 1 - math.Sqrt(1-e2)
	b := a * (1 - f)
	return newEllipsoid(code, name, a, b, f)
}

func newEllipsoid(code, name string, a, b, f float64) *Ellipsoid {
	el := &Ellipsoid{Code: code, Name: name, A: a, B: b, F: f}
	el.E2 = 2*f - f*f
	el.E = math.Sqrt(el.E2)
	if el.E2 < 1 {
		el.secondE2 = el.E2 / (1 - el.E2)
	}
	el.precompute()
	return el
}

func (e *Ellipsoid) precompute() {
	es := e.E2
	// Snyder meridian-arc series (en[0..4]), PROJ's pj_enfn layout.
	e.arcCoef[0] = 1 - es*(1.0/4+es*(3.0/64+es*(5.0/256+es*(175.0/16384))))
	e.arcCoef[1] = es * (3.0/8 + es*(3.0/32+es*(45.0/1024+es*(105.0/4096))))
	e.arcCoef[2] = es * es * (15.0/256 + es*(45.0/1024+es*(525.0/16384)))
	e.arcCoef[3] = es * es * es * (35.0/3072 + es*(175.0/12288))
	e.arcCoef[4] = es * es * es * es * (315.0 / 131072)

	// Footpoint-latitude series in the "third flattening" e1.
	sq := math.Sqrt(1 - es)
	e1 := (1 - sq) / (1 + sq)
	e.footpointCoef[0] = 3.0/2*e1 - 27.0/32*e1*e1*e1
	e.footpointCoef[1] = 21.0/16*e1*e1 - 55.0/32*e1*e1*e1*e1
	e.footpointCoef[2] = 151.0 / 96 * e1 * e1 * e1
	e.footpointCoef[3] = 1097.0 / 512 * e1 * e1 * e1 * e1
	e.footpointCoef[4] = 0

	ep2 := e.secondE2
	e.utmFwdCoef[0] = ep2
	e.utmFwdCoef[1] = ep2 * ep2
	e.utmFwdCoef[2] = ep2 * ep2 * ep2
	e.utmFwdCoef[3] = es
	e.utmFwdCoef[4] = es * es

	e.utmInvCoef[0] = ep2
	e.utmInvCoef[1] = ep2 * ep2
	e.utmInvCoef[2] = ep2 * ep2 * ep2
	e.utmInvCoef[3] = e.arcCoef[0]
	e.utmInvCoef[4] = es

	// Closed-form conformal-latitude series (non-iterative alternate to
	// InverseIsometricLatitude's fixed-point version).
	e.mercInvCoef[0] = es/2 + 5*es*es/24 + es*es*es/12 + 13*es*es*es*es/360
	e.mercInvCoef[1] = 7*es*es/48 + 29*es*es*es/240 + 811*es*es*es*es/11520
	e.mercInvCoef[2] = 7*es*es*es/120 + 81*es*es*es*es/1120
	e.mercInvCoef[3] = 4279.0 / 161280 * es * es * es * es
	e.mercInvCoef[4] = 0
}

// kCoefficients lazily computes the powers n^1..n^8 of the third flattening
// n = f/(2-f), stored at indices 1..8 (index 0 is unused).
func (e *Ellipsoid) kCoefficients() [9]float64 {
	e.kSeriesOnce.Do(func() {
		n := e.F / (2 - e.F)
		p := 1.0
		for i := 1; i <= 8; i++ {
			p *= n
			e.kSeries[i] = p
		}
	})
	return e.kSeries
}

// Equal compares two ellipsoids: equal if codes match, or if the semi-major
// and semi-minor axes agree to within 1e-4 m.
func (e *Ellipsoid) Equal(o *Ellipsoid) bool {
	if e == o {
		return true
	}
	if e == nil || o == nil {
		return false
	}
	if e.Code != "" && o.Code != "" && e.Code == o.Code {
		return true
	}
	return math.Abs(e.A-o.A) < 1e-4 && math.Abs(e.B-o.B) < 1e-4
}

// TransverseRadius is the prime-vertical radius of curvature N(phi).
func (e *Ellipsoid) TransverseRadius(phi float64) float64 {
	sinPhi := math.Sin(phi)
	return e.A / math.Sqrt(1-e.E2*sinPhi*sinPhi)
}

// MeridionalRadius is the meridional radius of curvature M(phi).
func (e *Ellipsoid) MeridionalRadius(phi float64) float64 {
	sinPhi := math.Sin(phi)
	return e.A * (1 - e.E2) / math.Pow(1-e.E2*sinPhi*sinPhi, 1.5)
}

// MeridianArc returns the arc length along the meridian from the equator to
// latitude phi, via the Snyder series.
func (e *Ellipsoid) MeridianArc(phi float64) float64 {
	c := e.arcCoef
	return e.A * (c[0]*phi - c[1]*math.Sin(2*phi) + c[2]*math.Sin(4*phi) -
		c[3]*math.Sin(6*phi) + c[4]*math.Sin(8*phi))
}

// InverseMeridianArc recovers latitude from a meridian arc length s, via the
// footpoint-latitude series. It never fails; the error return lets callers
// chain it with the other iterative inverse series that can.
func (e *Ellipsoid) InverseMeridianArc(s float64) (float64, error) {
	mu := s / (e.A * e.arcCoef[0])
	c := e.footpointCoef
	return mu + c[0]*math.Sin(2*mu) + c[1]*math.Sin(4*mu) + c[2]*math.Sin(6*mu) + c[3]*math.Sin(8*mu), nil
}

// IsometricLatitude computes the conformal/isometric latitude.
func (e *Ellipsoid) IsometricLatitude(phi float64) float64 {
	sinPhi := math.Sin(phi)
	return math.Log(math.Tan(fort_pi+phi/2)*math.Pow((1-e.E*sinPhi)/(1+e.E*sinPhi), e.E/2))
}

// InverseIsometricLatitudeEps is the default convergence tolerance for
// InverseIsometricLatitude (~0.06mm on an Earth-sized ellipsoid).
const InverseIsometricLatitudeEps = 1e-11

// InverseIsometricLatitude iterates to recover geodetic latitude from the
// isometric latitude L, returning IterationDivergedError if it
// fails to converge within 15 iterations.
func (e *Ellipsoid) InverseIsometricLatitude(l float64) (float64, error) {
	phi := 2*math.Atan(math.Exp(l)) - half_pi
	eL := math.Exp(l)
	for i := 0; i < 15; i++ {
		sinPhi := math.Sin(phi)
		next := 2*math.Atan(math.Pow((1+e.E*sinPhi)/(1-e.E*sinPhi), e.E/2)*eL) - half_pi
		if math.Abs(next-phi) < InverseIsometricLatitudeEps {
			return next, nil
		}
		phi = next
	}
	return phi, &IterationDivergedError{Op: "InverseIsometricLatitude", Iterations: 15}
}

// ConformalLatitudeSeries is the closed-form (non-iterative) alternate to
// InverseIsometricLatitude, via the conformal-latitude series.
func (e *Ellipsoid) ConformalLatitudeSeries(chi float64) float64 {
	c := e.mercInvCoef
	return chi + c[0]*math.Sin(2*chi) + c[1]*math.Sin(4*chi) + c[2]*math.Sin(6*chi) + c[3]*math.Sin(8*chi)
}
