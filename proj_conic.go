package geocrs

import (
	"errors"
	"math"
)

// LCC is the Lambert Conformal Conic projection (1 or 2 standard
// parallels), grounded on the original LCC (projections.go): same
// forward formula and parameter resolution, but with a real inverse added
// (the original LCC.Inverse panics "don't call this").
type LCC struct {
	*pj
	c, n, rho0 float64
	phi1, phi2 float64
	ellips     bool
}

func newLCC(base *pj, params ParameterMap) (Projection, error) {
	l := &LCC{pj: base}
	l.phi1, _ = getDegree(params, "lat_1")
	if phi2, ok := getDegree(params, "lat_2"); ok {
		l.phi2 = phi2
	} else {
		l.phi2 = l.phi1
		if _, ok := getString(params, "lat_0"); !ok {
			l.phi0 = l.phi1
		}
	}
	if math.Abs(l.phi1+l.phi2) <= epsln {
		return nil, errors.New("lcc: lat_1 and lat_2 must not be opposite")
	}
	sinphi := math.Sin(l.phi1)
	l.n = sinphi
	cosphi := math.Cos(l.phi1)
	secant := math.Abs(l.phi1-l.phi2) >= epsln
	l.ellips = l.es != 0
	if l.ellips {
		m1 := msfn(sinphi, cosphi, l.es)
		ml1 := tsfn(l.phi1, sinphi, l.e)
		if secant {
			sinphi2 := math.Sin(l.phi2)
			l.n = math.Log(m1 / msfn(sinphi2, math.Cos(l.phi2), l.es))
			l.n /= math.Log(ml1 / tsfn(l.phi2, sinphi2, l.e))
		}
		l.c = m1 * math.Pow(ml1, -l.n) / l.n
		if math.Abs(math.Abs(l.phi0)-half_pi) < epsln {
			l.rho0 = 0
		} else {
			l.rho0 = l.c * math.Pow(tsfn(l.phi0, math.Sin(l.phi0), l.e), l.n)
		}
	} else {
		if secant {
			l.n = math.Log(cosphi/math.Cos(l.phi2)) /
				math.Log(math.Tan(fort_pi+.5*l.phi2)/math.Tan(fort_pi+.5*l.phi1))
		}
		l.c = cosphi * math.Pow(math.Tan(fort_pi+.5*l.phi1), l.n) / l.n
		if math.Abs(math.Abs(l.phi0)-half_pi) < epsln {
			l.rho0 = 0
		} else {
			l.rho0 = l.c * math.Pow(math.Tan(fort_pi+0.5*l.phi0), -l.n)
		}
	}
	return l, nil
}

func (l *LCC) Forward(lam, phi float64) (float64, float64, error) {
	return l.commonFwd(lam, phi, l.fwd)
}
func (l *LCC) Inverse(x, y float64) (float64, float64, error) {
	return l.commonInv(x, y, l.inv)
}

func (l *LCC) fwd(lam, phi float64) (float64, float64, error) {
	var rho float64
	if math.Abs(math.Abs(phi)-half_pi) < epsln {
		if phi*l.n <= 0 {
			return hugeVal, hugeVal, errors.New("lcc: point projects to infinity")
		}
	} else {
		if l.ellips {
			rho = l.c * math.Pow(tsfn(phi, math.Sin(phi), l.e), l.n)
		} else {
			rho = l.c * math.Pow(math.Tan(fort_pi+0.5*phi), -l.n)
		}
	}
	lam *= l.n
	x := rho * math.Sin(lam)
	y := l.rho0 - rho*math.Cos(lam)
	return x, y, nil
}

func (l *LCC) inv(x, y float64) (lam, phi float64, err error) {
	dy := l.rho0 - y
	rho := math.Hypot(x, dy)
	if rho < epsln {
		return 0, math.Copysign(half_pi, l.n), nil
	}
	if l.n < 0 {
		rho = -rho
		x, dy = -x, -dy
	}
	lam = math.Atan2(x, dy) / l.n
	if l.ellips {
		ts := math.Pow(rho/l.c, 1/l.n)
		phi, err = phi2(ts, l.e)
		return lam, phi, err
	}
	phi = 2*math.Atan(math.Pow(l.c/rho, 1/l.n)) - half_pi
	return lam, phi, nil
}

func (l *LCC) Precision() float64 {
	if l.ellips {
		return 0.001
	}
	return 0
}

// AlbersEqualArea ("aea"; "leac" recast with lat_2 at a pole) uses
// Snyder's qsfn-based equal-area conic formulation.
type AlbersEqualArea struct {
	*pj
	n, c, rho0 float64
	ec         float64
}

func newAlbersEqualArea(base *pj, params ParameterMap) (Projection, error) {
	a := &AlbersEqualArea{pj: base}
	phi1, _ := getDegree(params, "lat_1")
	phi2 := phi1
	if p2, ok := getDegree(params, "lat_2"); ok {
		phi2 = p2
	}
	if math.Abs(phi1+phi2) < epsln {
		return nil, errors.New("aea: lat_1 and lat_2 must not be opposite")
	}
	sin1 := math.Sin(phi1)
	cos1 := math.Cos(phi1)
	secant := math.Abs(phi1-phi2) >= epsln
	m1 := cos1 / math.Sqrt(1-a.es*sin1*sin1)
	q1 := qsfn(sin1, a.e, a.oneEs)
	if secant {
		sin2 := math.Sin(phi2)
		m2 := math.Cos(phi2) / math.Sqrt(1-a.es*sin2*sin2)
		q2 := qsfn(sin2, a.e, a.oneEs)
		a.n = (m1*m1 - m2*m2) / (q2 - q1)
	} else {
		a.n = sin1
	}
	a.c = m1*m1 + a.n*q1
	q0 := qsfn(math.Sin(a.phi0), a.e, a.oneEs)
	a.rho0 = math.Sqrt(math.Max(0, a.c-a.n*q0)) / a.n
	return a, nil
}

func (a *AlbersEqualArea) Forward(lam, phi float64) (float64, float64, error) {
	return a.commonFwd(lam, phi, a.fwd)
}
func (a *AlbersEqualArea) Inverse(x, y float64) (float64, float64, error) {
	return a.commonInv(x, y, a.inv)
}

func (a *AlbersEqualArea) fwd(lam, phi float64) (float64, float64, error) {
	q := qsfn(math.Sin(phi), a.e, a.oneEs)
	rho := math.Sqrt(math.Max(0, a.c-a.n*q)) / a.n
	theta := a.n * lam
	x := rho * math.Sin(theta)
	y := a.rho0 - rho*math.Cos(theta)
	return x, y, nil
}

func (a *AlbersEqualArea) inv(x, y float64) (float64, float64, error) {
	dy := a.rho0 - y
	rho := math.Hypot(x, dy)
	if rho < epsln {
		return 0, math.Copysign(half_pi, a.n), nil
	}
	if a.n < 0 {
		rho = -rho
		x, dy = -x, -dy
	}
	theta := math.Atan2(x, dy)
	q := (a.c - rho*rho*a.n*a.n) / a.n
	beta := math.Asin(clamp(q/qsfn(1, a.e, a.oneEs), -1, 1))
	phi, _ := authalicToGeodeticLatitude(beta, &CylindricalEqualArea{pj: a.pj})
	return theta / a.n, phi, nil
}

func (a *AlbersEqualArea) Precision() float64 { return 0.01 }
