package geocrs

import "math"

// LngLat is the pass-through "projection" used when a CRS's planar
// coordinates are simply radians of longitude/latitude scaled by the
// ellipsoid radius (the original LngLat, projections.go), kept verbatim
// in shape since the identity semantics did not change.
type LngLat struct{ *pj }

func newLngLat(base *pj, params ParameterMap) (Projection, error) {
	return &LngLat{pj: base}, nil
}

func (ll *LngLat) Forward(lam, phi float64) (float64, float64, error) {
	return ll.commonFwd(lam, phi, ll.fwd)
}
func (ll *LngLat) Inverse(x, y float64) (float64, float64, error) {
	return ll.commonInv(x, y, ll.inv)
}
func (ll *LngLat) fwd(lam, phi float64) (float64, float64, error) { return lam, phi, nil }
func (ll *LngLat) inv(x, y float64) (float64, float64, error)     { return x, y, nil }
func (ll *LngLat) Precision() float64                             { return 0 }

// Mercator is the (spherical or ellipsoidal) Mercator projection, grounded
// on the original Mercator (projections.go) and Snyder's closed-form
// ellipsoidal forward/inverse (msfn/tsfn/phi2, math.go).
type Mercator struct{ *pj }

func newMercator(base *pj, params ParameterMap) (Projection, error) {
	m := &Mercator{pj: base}
	if phits, ok := getDegree(params, "lat_ts"); ok {
		phits = math.Abs(phits)
		if m.es != 0 {
			m.k0 = msfn(math.Sin(phits), math.Cos(phits), m.es)
		} else {
			m.k0 = math.Cos(phits)
		}
	}
	return m, nil
}

func (m *Mercator) Forward(lam, phi float64) (float64, float64, error) {
	return m.commonFwd(lam, phi, m.fwd)
}
func (m *Mercator) Inverse(x, y float64) (float64, float64, error) {
	return m.commonInv(x, y, m.inv)
}

func (m *Mercator) fwd(lam, phi float64) (float64, float64, error) {
	if m.es != 0 {
		return lam, -math.Log(tsfn(phi, math.Sin(phi), m.e)), nil
	}
	return lam, math.Log(math.Tan(fort_pi + 0.5*phi)), nil
}

func (m *Mercator) inv(x, y float64) (lam, phi float64, err error) {
	if m.es != 0 {
		phi, err = phi2(math.Exp(-y), m.e)
		lam = x
		return
	}
	lam = x
	phi = half_pi - 2*math.Atan(math.Exp(-y))
	return
}

func (m *Mercator) Precision() float64 { return 0 }

// Equirectangular (Plate Carree) is a scaled identity around a standard
// parallel (original Equirectangular, projections.go).
type Equirectangular struct {
	*pj
	phi1 float64
}

func newEquirectangular(base *pj, params ParameterMap) (Projection, error) {
	e := &Equirectangular{pj: base}
	e.phi1, _ = getDegree(params, "lat_1")
	return e, nil
}

func (eqc *Equirectangular) Forward(lam, phi float64) (float64, float64, error) {
	return eqc.commonFwd(lam, phi, eqc.fwd)
}
func (eqc *Equirectangular) Inverse(x, y float64) (float64, float64, error) {
	return eqc.commonInv(x, y, eqc.inv)
}

func (eqc *Equirectangular) fwd(lam, phi float64) (float64, float64, error) {
	return lam * math.Cos(eqc.phi1), phi, nil
}

func (eqc *Equirectangular) inv(x, y float64) (float64, float64, error) {
	return x / math.Cos(eqc.phi1), y, nil
}

func (eqc *Equirectangular) Precision() float64 { return 0 }

// Cassini is the transverse-cylindrical Cassini-Soldner projection, using
// the ellipsoid's meridian-arc series (ellipsoid.go) the way Snyder's
// closed-form ellipsoidal Cassini does.
type Cassini struct {
	*pj
	m0 float64
}

func newCassini(base *pj, params ParameterMap) (Projection, error) {
	c := &Cassini{pj: base}
	c.m0 = c.ellipsoid.MeridianArc(c.phi0)
	return c, nil
}

func (c *Cassini) Forward(lam, phi float64) (float64, float64, error) {
	return c.commonFwd(lam, phi, c.fwd)
}
func (c *Cassini) Inverse(x, y float64) (float64, float64, error) {
	return c.commonInv(x, y, c.inv)
}

func (c *Cassini) fwd(lam, phi float64) (float64, float64, error) {
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	n := 1 / math.Sqrt(1-c.es*sinPhi*sinPhi)
	t := math.Tan(phi) * math.Tan(phi)
	a := lam * cosPhi
	a2 := a * a
	x := n * a * (1 - a2/6*(1-t+c.es*cosPhi*cosPhi/(1-c.es)))
	m := c.ellipsoid.MeridianArc(phi) / c.a
	y := m - c.m0/c.a + n*math.Tan(phi)*a2/2*(1+a2/12*(5-t))
	return x, y, nil
}

func (c *Cassini) inv(x, y float64) (float64, float64, error) {
	m := c.m0/c.a + y
	phi1, err := invMeridianArcFraction(c.ellipsoid, m*c.a)
	if err != nil {
		return hugeVal, hugeVal, err
	}
	t1 := math.Tan(phi1)
	n1 := 1 / math.Sqrt(1-c.es*math.Sin(phi1)*math.Sin(phi1))
	r1 := (1 - c.es) * n1 * n1 * n1
	d := x / n1
	d2 := d * d
	phi := phi1 - (n1*t1/r1)*d2/2*(1-d2/12*(1+3*t1*t1))
	lam := d * (1 - d2/6*(1+2*t1*t1)) / math.Cos(phi1)
	return lam, phi, nil
}

func (c *Cassini) Precision() float64 { return 0.001 }

// invMeridianArcFraction calls the ellipsoid's InverseMeridianArc, which
// expects meters; Cassini/Polyconic above work in a-normalized units.
func invMeridianArcFraction(e *Ellipsoid, sMeters float64) (float64, error) {
	return e.InverseMeridianArc(sMeters)
}

// Miller is the Miller Cylindrical projection (spherical), a log-tan
// variant of Mercator with a 0.8 vertical compression, per Snyder.
type Miller struct{ *pj }

func newMiller(base *pj, params ParameterMap) (Projection, error) {
	return &Miller{pj: base}, nil
}

func (m *Miller) Forward(lam, phi float64) (float64, float64, error) {
	return m.commonFwd(lam, phi, m.fwd)
}
func (m *Miller) Inverse(x, y float64) (float64, float64, error) {
	return m.commonInv(x, y, m.inv)
}

func (m *Miller) fwd(lam, phi float64) (float64, float64, error) {
	y := 1.25 * math.Log(math.Tan(fort_pi+0.4*phi))
	return lam, y, nil
}

func (m *Miller) inv(x, y float64) (float64, float64, error) {
	phi := 2.5*math.Atan(math.Exp(0.8*y)) - 0.625*math.Pi
	return x, phi, nil
}

func (m *Miller) Precision() float64 { return 0 }

// CylindricalEqualArea (Lambert cylindrical / Behrmann family, "cea") uses
// the authalic-latitude-style qsfn the way Snyder's normal aspect
// cylindrical equal-area formula does.
type CylindricalEqualArea struct {
	*pj
	k0ts float64
}

func newCylindricalEqualArea(base *pj, params ParameterMap) (Projection, error) {
	c := &CylindricalEqualArea{pj: base}
	if phits, ok := getDegree(params, "lat_ts"); ok {
		phits = math.Abs(phits)
		if c.es != 0 {
			c.k0ts = math.Cos(phits) / math.Sqrt(1-c.es*math.Sin(phits)*math.Sin(phits))
		} else {
			c.k0ts = math.Cos(phits)
		}
	} else {
		c.k0ts = 1
	}
	return c, nil
}

func qsfn(sinphi, e, oneEs float64) float64 {
	if e < 1e-10 {
		return 2 * sinphi
	}
	con := e * sinphi
	return oneEs * (sinphi/(1-con*con) - (0.5/e)*math.Log((1-con)/(1+con)))
}

func (c *CylindricalEqualArea) Forward(lam, phi float64) (float64, float64, error) {
	return c.commonFwd(lam, phi, c.fwd)
}
func (c *CylindricalEqualArea) Inverse(x, y float64) (float64, float64, error) {
	return c.commonInv(x, y, c.inv)
}

func (c *CylindricalEqualArea) fwd(lam, phi float64) (float64, float64, error) {
	if c.es != 0 {
		x := c.k0ts * lam
		y := 0.5 * qsfn(math.Sin(phi), c.e, c.oneEs) / c.k0ts
		return x, y, nil
	}
	return c.k0ts * lam, math.Sin(phi) / c.k0ts, nil
}

func (c *CylindricalEqualArea) inv(x, y float64) (float64, float64, error) {
	if c.es != 0 {
		qp := qsfn(1, c.e, c.oneEs)
		q := 2 * y * c.k0ts
		beta := math.Asin(clamp(q/qp, -1, 1))
		phi, _ := authalicToGeodeticLatitude(beta, c)
		return x / c.k0ts, phi, nil
	}
	return x / c.k0ts, math.Asin(y * c.k0ts), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// authalicToGeodeticLatitude approximates the inverse of qsfn using the
// standard authalic-latitude series correction (Snyder eq. 3-18).
func authalicToGeodeticLatitude(beta float64, c *CylindricalEqualArea) (float64, error) {
	es := c.es
	phi := beta +
		(es/3+31*es*es/180+517*es*es*es/5040)*math.Sin(2*beta) +
		(23*es*es/360+251*es*es*es/3780)*math.Sin(4*beta) +
		(761*es*es*es/45360)*math.Sin(6*beta)
	return phi, nil
}

func (c *CylindricalEqualArea) Precision() float64 { return 0.01 }
