package geocrs

import "math"

// TransverseMercator is the ellipsoidal transverse Mercator, grounded on
// the ellipsoid's Snyder meridian-arc/footpoint series (ellipsoid.go)
// rather than a re-derived series, the way the original Mercator family
// leans on math.go's shared msfn/tsfn helpers.
type TransverseMercator struct {
	*pj
	m0 float64
}

func newTransverseMercator(base *pj, params ParameterMap) (Projection, error) {
	t := &TransverseMercator{pj: base}
	t.m0 = t.ellipsoid.MeridianArc(t.phi0)
	return t, nil
}

func (t *TransverseMercator) Forward(lam, phi float64) (float64, float64, error) {
	return t.commonFwd(lam, phi, t.fwd)
}
func (t *TransverseMercator) Inverse(x, y float64) (float64, float64, error) {
	return t.commonInv(x, y, t.inv)
}

// fwd follows Snyder's 6th-order ellipsoidal transverse Mercator series
// (USGS PP1395, eq. 8-9), using the ellipsoid's precomputed meridian-arc
// coefficients.
func (t *TransverseMercator) fwd(lam, phi float64) (float64, float64, error) {
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	tanPhi := sinPhi / cosPhi
	es := t.es
	ep2 := es / (1 - es)
	nu := 1 / math.Sqrt(1-es*sinPhi*sinPhi)
	t2 := tanPhi * tanPhi
	c := ep2 * cosPhi * cosPhi
	aTerm := lam * cosPhi

	a2 := aTerm * aTerm
	a3 := a2 * aTerm
	a4 := a2 * a2
	a5 := a4 * aTerm
	a6 := a4 * a2

	m := t.ellipsoid.MeridianArc(phi)

	x := nu * (aTerm + (1-t2+c)*a3/6 + (5-18*t2+t2*t2+72*c-58*ep2)*a5/120)
	y := (m - t.m0) + nu*tanPhi*(a2/2+(5-t2+9*c+4*c*c)*a4/24+
		(61-58*t2+t2*t2+600*c-330*ep2)*a6/720)

	return x / t.a, y / t.a, nil
}

// inv follows Snyder's 6th-order inverse series (eq. 8-11) using the
// ellipsoid's footpoint-latitude series (ellipsoid.go).
func (t *TransverseMercator) inv(x, y float64) (float64, float64, error) {
	X := x * t.a
	Y := y * t.a
	m := t.m0 + Y
	phi1, err := t.ellipsoid.InverseMeridianArc(m)
	if err != nil {
		return hugeVal, hugeVal, err
	}
	es := t.es
	ep2 := es / (1 - es)
	sinPhi1, cosPhi1 := math.Sin(phi1), math.Cos(phi1)
	tanPhi1 := sinPhi1 / cosPhi1
	c1 := ep2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	n1 := 1 / math.Sqrt(1-es*sinPhi1*sinPhi1)
	r1 := (1 - es) * n1 * n1 * n1
	d := X / (n1 * t.a)

	d2 := d * d
	d3 := d2 * d
	d4 := d2 * d2
	d5 := d4 * d
	d6 := d4 * d2

	phi := phi1 - (n1*tanPhi1/r1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d4/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d6/720)
	lam := (d - (1+2*t1+c1)*d3/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d5/120) / cosPhi1

	return lam, phi, nil
}

func (t *TransverseMercator) Precision() float64 { return 0.001 }

// UTM is the Universal Transverse Mercator zone system: a TransverseMercator
// with the standard k0=0.9996, 500000m false easting, zone-derived central
// meridian, and 10,000,000m false northing for the southern hemisphere.
type UTM struct {
	*TransverseMercator
	zone  int
	south bool
}

func newUTM(base *pj, params ParameterMap) (Projection, error) {
	zone, _ := getFloat(params, "zone")
	south, _ := getBool(params, "south")

	base.lam0 = (float64(int(zone))-0.5)*6*d2r - math.Pi
	base.k0 = 0.9996
	base.x0 = 500000
	if south {
		base.y0 = 10000000
	} else {
		base.y0 = 0
	}

	tm := &TransverseMercator{pj: base}
	tm.m0 = tm.ellipsoid.MeridianArc(tm.phi0)
	return &UTM{TransverseMercator: tm, zone: int(zone), south: south}, nil
}

func (u *UTM) Precision() float64 { return 0.001 }
