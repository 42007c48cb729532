package geocrs

import "math"

// Stereographic is the (spherical or ellipsoidal, polar/oblique/equatorial)
// stereographic azimuthal projection, following Snyder's standard
// formulation; "ups" polar cases are the original merc/lcc pattern
// applied to an azimuthal core instead of a cylindrical/conic one.
type Stereographic struct {
	*pj
	mode    int // 0 = oblique/equatorial, 1 = north polar, 2 = south polar
	sinPhi0 float64
	cosPhi0 float64
	akm1    float64
}

const (
	stereObliqueOrEquatorial = 0
	stereNorthPole           = 1
	stereSouthPole           = 2
)

func newStereographic(base *pj, params ParameterMap) (Projection, error) {
	s := &Stereographic{pj: base}
	if math.Abs(s.phi0-half_pi) < epsln {
		s.mode = stereNorthPole
	} else if math.Abs(s.phi0+half_pi) < epsln {
		s.mode = stereSouthPole
	} else {
		s.mode = stereObliqueOrEquatorial
		s.sinPhi0 = math.Sin(s.phi0)
		s.cosPhi0 = math.Cos(s.phi0)
	}
	if s.es != 0 {
		if s.mode == stereObliqueOrEquatorial {
			s.akm1 = 2 * msfn(s.sinPhi0, s.cosPhi0, s.es)
		} else {
			s.akm1 = 2 / math.Sqrt(math.Pow(1+s.e, 1+s.e)*math.Pow(1-s.e, 1-s.e))
		}
	} else {
		s.akm1 = 2
	}
	return s, nil
}

func (s *Stereographic) Forward(lam, phi float64) (float64, float64, error) {
	return s.commonFwd(lam, phi, s.fwd)
}
func (s *Stereographic) Inverse(x, y float64) (float64, float64, error) {
	return s.commonInv(x, y, s.inv)
}

func (s *Stereographic) fwd(lam, phi float64) (float64, float64, error) {
	if s.es == 0 {
		return s.fwdSpherical(lam, phi)
	}
	switch s.mode {
	case stereNorthPole, stereSouthPole:
		phiSign := phi
		if s.mode == stereSouthPole {
			phiSign = -phi
			lam = -lam
		}
		rho := s.akm1 * tsfn(phiSign, math.Sin(phiSign), s.e)
		x := rho * math.Sin(lam)
		y := -rho * math.Cos(lam)
		if s.mode == stereSouthPole {
			y = -y
		}
		return x, y, nil
	default:
		sinPhi := math.Sin(phi)
		chi := 2*math.Atan(1/tsfn(phi, sinPhi, s.e)) - half_pi
		chi0 := 2*math.Atan(1/tsfn(s.phi0, s.sinPhi0, s.e)) - half_pi
		sinChi, cosChi := math.Sin(chi), math.Cos(chi)
		sinChi0, cosChi0 := math.Sin(chi0), math.Cos(chi0)
		cosLam := math.Cos(lam)
		k := s.akm1 / (1 + sinChi0*sinChi + cosChi0*cosChi*cosLam)
		x := k * cosChi * math.Sin(lam)
		y := k * (cosChi0*sinChi - sinChi0*cosChi*cosLam)
		return x, y, nil
	}
}

func (s *Stereographic) fwdSpherical(lam, phi float64) (float64, float64, error) {
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	cosLam := math.Cos(lam)
	switch s.mode {
	case stereNorthPole:
		k := s.akm1 / (1 + sinPhi)
		return k * cosPhi * math.Sin(lam), -k * cosPhi * cosLam, nil
	case stereSouthPole:
		k := s.akm1 / (1 - sinPhi)
		return k * cosPhi * math.Sin(lam), k * cosPhi * cosLam, nil
	default:
		k := s.akm1 / (1 + s.sinPhi0*sinPhi + s.cosPhi0*cosPhi*cosLam)
		return k * cosPhi * math.Sin(lam), k * (s.cosPhi0*sinPhi - s.sinPhi0*cosPhi*cosLam), nil
	}
}

func (s *Stereographic) inv(x, y float64) (float64, float64, error) {
	rho := math.Hypot(x, y)
	if rho < 1e-12 {
		switch s.mode {
		case stereNorthPole:
			return 0, half_pi, nil
		case stereSouthPole:
			return 0, -half_pi, nil
		default:
			return 0, s.phi0, nil
		}
	}
	c := 2 * math.Atan2(rho, s.akm1)
	sinC, cosC := math.Sin(c), math.Cos(c)
	switch s.mode {
	case stereNorthPole:
		phi := math.Asin(cosC)
		lam := math.Atan2(x, -y)
		if s.es != 0 {
			ts := rho / s.akm1
			p, err := phi2(ts, s.e)
			if err != nil {
				return 0, 0, err
			}
			phi = p
		}
		return lam, phi, nil
	case stereSouthPole:
		phi := -math.Asin(cosC)
		lam := math.Atan2(x, y)
		if s.es != 0 {
			ts := rho / s.akm1
			p, err := phi2(ts, s.e)
			if err != nil {
				return 0, 0, err
			}
			phi = -p
		}
		return lam, phi, nil
	default:
		phi := math.Asin(cosC*s.sinPhi0 + y*sinC*s.cosPhi0/rho)
		lam := math.Atan2(x*sinC, rho*s.cosPhi0*cosC-y*s.sinPhi0*sinC)
		return lam, phi, nil
	}
}

func (s *Stereographic) Precision() float64 {
	if s.es != 0 && s.mode == stereObliqueOrEquatorial {
		return 0.01
	}
	return 0.001
}

// ObliqueStereographic ("sterea") is the alternate double/conformal
// stereographic used by national grids such as the Dutch RD and Romanian
// Stereo 70: project through the conformal sphere via the ellipsoid's
// isometric-latitude machinery (ellipsoid.go), then a spherical oblique
// stereographic.
type ObliqueStereographic struct {
	*pj
	phic0, sinc0, cosc0 float64
	ratio, k1, lam0c    float64
}

// gaussConformalLatitude implements the double (Gauss-Schreiber) conformal
// sphere construction EPSG guidance note 7-2 uses for the oblique/double
// stereographic: the ellipsoid's isometric latitude is scaled by the
// conformal-sphere ratio n, then mapped back through the Mercator-style
// exponential to give the conformal-sphere latitude.
func (o *ObliqueStereographic) gaussConformalLatitude(phi float64) float64 {
	return 2*math.Atan(math.Exp(o.ratio*o.ellipsoid.IsometricLatitude(phi))) - half_pi
}

func newObliqueStereographic(base *pj, params ParameterMap) (Projection, error) {
	o := &ObliqueStereographic{pj: base}
	phi0 := o.phi0
	o.ratio = math.Sqrt(1 + o.es*math.Pow(math.Cos(phi0), 4)/o.oneEs)
	o.phic0 = o.gaussConformalLatitude(phi0)
	o.sinc0 = math.Sin(o.phic0)
	o.cosc0 = math.Cos(o.phic0)
	o.k1 = o.k0
	return o, nil
}

func (o *ObliqueStereographic) conformalLatitude(phi, lam float64) (chi, lamc float64) {
	return o.gaussConformalLatitude(phi), o.ratio * lam
}

func (o *ObliqueStereographic) Forward(lam, phi float64) (float64, float64, error) {
	return o.commonFwd(lam, phi, o.fwd)
}
func (o *ObliqueStereographic) Inverse(x, y float64) (float64, float64, error) {
	return o.commonInv(x, y, o.inv)
}

func (o *ObliqueStereographic) fwd(lam, phi float64) (float64, float64, error) {
	chi, lamc := o.conformalLatitude(phi, lam)
	sinChi, cosChi := math.Sin(chi), math.Cos(chi)
	cosLam := math.Cos(lamc)
	k := 2 * o.k1 / (1 + o.sinc0*sinChi + o.cosc0*cosChi*cosLam)
	x := k * cosChi * math.Sin(lamc)
	y := k * (o.cosc0*sinChi - o.sinc0*cosChi*cosLam)
	return x, y, nil
}

func (o *ObliqueStereographic) inv(x, y float64) (float64, float64, error) {
	rho := math.Hypot(x, y)
	if rho < 1e-12 {
		return 0, o.phi0, nil
	}
	c := 2 * math.Atan2(rho, 2*o.k1)
	sinC, cosC := math.Sin(c), math.Cos(c)
	chi := math.Asin(cosC*o.sinc0 + y*sinC*o.cosc0/rho)
	lamc := math.Atan2(x*sinC, rho*o.cosc0*cosC-y*o.sinc0*sinC)
	lam := lamc / o.ratio
	// Invert the conformal latitude back to geodetic via the ellipsoid's
	// inverse isometric-latitude iteration (ellipsoid.go).
	isolat := math.Log(math.Tan(fort_pi+0.5*chi)) / o.ratio
	phi, err := o.ellipsoid.InverseIsometricLatitude(isolat)
	if err != nil {
		return 0, 0, err
	}
	return lam, phi, nil
}

func (o *ObliqueStereographic) Precision() float64 { return 0.001 }

// LambertAzimuthalEqualArea ("laea") follows Snyder's polar/oblique
// equal-area azimuthal formula, reusing qsfn from the cylindrical
// equal-area implementation.
type LambertAzimuthalEqualArea struct {
	*pj
	mode   int
	sinB1  float64
	cosB1  float64
	qp     float64
	rq     float64
}

func newLambertAzimuthalEqualArea(base *pj, params ParameterMap) (Projection, error) {
	l := &LambertAzimuthalEqualArea{pj: base}
	if math.Abs(l.phi0-half_pi) < epsln {
		l.mode = stereNorthPole
	} else if math.Abs(l.phi0+half_pi) < epsln {
		l.mode = stereSouthPole
	} else {
		l.mode = stereObliqueOrEquatorial
	}
	if l.es != 0 {
		l.qp = qsfn(1, l.e, l.oneEs)
		l.rq = math.Sqrt(0.5 * l.qp)
		if l.mode == stereObliqueOrEquatorial {
			q0 := qsfn(math.Sin(l.phi0), l.e, l.oneEs)
			l.sinB1 = q0 / l.qp
			l.cosB1 = math.Sqrt(1 - l.sinB1*l.sinB1)
		}
	}
	return l, nil
}

func (l *LambertAzimuthalEqualArea) Forward(lam, phi float64) (float64, float64, error) {
	return l.commonFwd(lam, phi, l.fwd)
}
func (l *LambertAzimuthalEqualArea) Inverse(x, y float64) (float64, float64, error) {
	return l.commonInv(x, y, l.inv)
}

func (l *LambertAzimuthalEqualArea) fwd(lam, phi float64) (float64, float64, error) {
	if l.es == 0 {
		return l.fwdSpherical(lam, phi)
	}
	q := qsfn(math.Sin(phi), l.e, l.oneEs)
	switch l.mode {
	case stereNorthPole:
		rho := math.Sqrt(math.Max(0, l.qp-q))
		return rho * math.Sin(lam), -rho * math.Cos(lam), nil
	case stereSouthPole:
		rho := math.Sqrt(math.Max(0, l.qp+q))
		return rho * math.Sin(lam), rho * math.Cos(lam), nil
	default:
		sinB := q / l.qp
		cosB := math.Sqrt(math.Max(0, 1-sinB*sinB))
		cosLam := math.Cos(lam)
		b := 1 + l.sinB1*sinB + l.cosB1*cosB*cosLam
		d := l.rq * math.Sqrt(2/b)
		x := d * cosB * math.Sin(lam)
		y := d / l.rq * (l.cosB1*sinB - l.sinB1*cosB*cosLam) * l.rq
		return x, y, nil
	}
}

func (l *LambertAzimuthalEqualArea) fwdSpherical(lam, phi float64) (float64, float64, error) {
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	cosLam := math.Cos(lam)
	switch l.mode {
	case stereNorthPole:
		rho := math.Sqrt(2 * (1 - sinPhi))
		return rho * math.Sin(lam), -rho * math.Cos(lam), nil
	case stereSouthPole:
		rho := math.Sqrt(2 * (1 + sinPhi))
		return rho * math.Sin(lam), rho * math.Cos(lam), nil
	default:
		k := math.Sqrt(2 / (1 + l.sinOrigin()*sinPhi + l.cosOrigin()*cosPhi*cosLam))
		return k * cosPhi * math.Sin(lam), k * (l.cosOrigin()*sinPhi - l.sinOrigin()*cosPhi*cosLam), nil
	}
}

func (l *LambertAzimuthalEqualArea) sinOrigin() float64 { return math.Sin(l.phi0) }
func (l *LambertAzimuthalEqualArea) cosOrigin() float64 { return math.Cos(l.phi0) }

func (l *LambertAzimuthalEqualArea) inv(x, y float64) (float64, float64, error) {
	rho := math.Hypot(x, y)
	if rho < 1e-12 {
		return 0, l.phi0, nil
	}
	if l.es == 0 {
		c := 2 * math.Asin(clamp(rho/2, -1, 1))
		sinC, cosC := math.Sin(c), math.Cos(c)
		switch l.mode {
		case stereNorthPole:
			return math.Atan2(x, -y), math.Asin(cosC), nil
		case stereSouthPole:
			return math.Atan2(x, y), math.Asin(-cosC), nil
		default:
			phi := math.Asin(cosC*l.sinOrigin() + y*sinC*l.cosOrigin()/rho)
			lam := math.Atan2(x*sinC, rho*l.cosOrigin()*cosC-y*l.sinOrigin()*sinC)
			return lam, phi, nil
		}
	}
	switch l.mode {
	case stereNorthPole:
		q := l.qp - rho*rho
		beta := math.Asin(clamp(q/l.qp, -1, 1))
		phi, _ := authalicToGeodeticLatitude(beta, &CylindricalEqualArea{pj: l.pj})
		return math.Atan2(x, -y), phi, nil
	case stereSouthPole:
		q := rho*rho - l.qp
		beta := math.Asin(clamp(q/l.qp, -1, 1))
		phi, _ := authalicToGeodeticLatitude(beta, &CylindricalEqualArea{pj: l.pj})
		return math.Atan2(x, y), phi, nil
	default:
		ce := 2 * math.Asin(rho/(2*l.rq))
		sinCe, cosCe := math.Sin(ce), math.Cos(ce)
		sinB := cosCe*l.sinB1 + y*sinCe*l.cosB1/rho
		beta := math.Asin(clamp(sinB, -1, 1))
		phi, _ := authalicToGeodeticLatitude(beta, &CylindricalEqualArea{pj: l.pj})
		lam := math.Atan2(x*sinCe, rho*l.cosB1*cosCe-y*l.sinB1*sinCe)
		return lam, phi, nil
	}
}

func (l *LambertAzimuthalEqualArea) Precision() float64 { return 0.01 }
