package geocrs

import (
	"fmt"
	"math"
)

// HelmertConvention selects the rotation sign convention.
type HelmertConvention int

const (
	// PositionVector is the sigma=+1 convention (EPSG's "Position Vector").
	PositionVector HelmertConvention = iota
	// CoordinateFrame is the sigma=-1 convention.
	CoordinateFrame
)

// Helmert7 is the 7-parameter similarity (Bursa-Wolf) transform between
// geocentric frames. Rotations (RX,RY,RZ) are in radians,
// Scale is a multiplier near 1 (1 + ppm/1e6).
type Helmert7 struct {
	TX, TY, TZ    float64
	RX, RY, RZ    float64
	Scale         float64
	Convention    HelmertConvention
	Linearized    bool // false = exact trigonometric rotation, true = small-angle linearization
}

func (h Helmert7) sigma() float64 {
	if h.Convention == CoordinateFrame {
		return -1
	}
	return 1
}

// signedRotations applies the sigma sign convention for the chosen rotation direction.
func (h Helmert7) signedRotations() (srx, sry, srz float64) {
	s := h.sigma()
	return s * h.RX, s * h.RY, s * h.RZ
}

func (h Helmert7) Transform(coord []float64) error {
	if len(coord) < 3 {
		return &CoordinateDimensionError{Got: len(coord), Needed: 3}
	}
	x, y, z := coord[0], coord[1], coord[2]
	srx, sry, srz := h.signedRotations()

	if h.Linearized {
		coord[0] = h.TX + h.Scale*(x+z*sry-y*srz)
		coord[1] = h.TY + h.Scale*(y+x*srz-z*srx)
		coord[2] = h.TZ + h.Scale*(z+y*srx-x*sry)
		return nil
	}

	// Exact trigonometric rotation matrix (R = Rz*Ry*Rx using the signed
	// angles), applied transposed before scaling and translation, so that
	// to first order it reduces to the linearized formula above.
	sinX, cosX := math.Sin(srx), math.Cos(srx)
	sinY, cosY := math.Sin(sry), math.Cos(sry)
	sinZ, cosZ := math.Sin(srz), math.Cos(srz)

	r00 := cosY * cosZ
	r01 := cosX*sinZ + sinX*sinY*cosZ
	r02 := sinX*sinZ - cosX*sinY*cosZ
	r10 := -cosY * sinZ
	r11 := cosX*cosZ - sinX*sinY*sinZ
	r12 := sinX*cosZ + cosX*sinY*sinZ
	r20 := sinY
	r21 := -sinX * cosY
	r22 := cosX * cosY

	coord[0] = h.TX + h.Scale*(r00*x+r10*y+r20*z)
	coord[1] = h.TY + h.Scale*(r01*x+r11*y+r21*z)
	coord[2] = h.TZ + h.Scale*(r02*x+r12*y+r22*z)
	return nil
}

// Inverse implements the explicit "standard" inverse formula.
func (h Helmert7) Inverse() (CoordinateOperation, error) {
	srx, sry, srz := h.signedRotations()
	return helmertInverse{fwd: h, srx: srx, sry: sry, srz: srz}, nil
}

func (h Helmert7) Precision() float64 {
	if h.Linearized {
		return 0.01 // linearized small-angle approximation error floor
	}
	return 0.001
}

func (h Helmert7) IsIdentity() bool {
	return h.TX == 0 && h.TY == 0 && h.TZ == 0 &&
		h.RX == 0 && h.RY == 0 && h.RZ == 0 && h.Scale == 1
}

func (h Helmert7) String() string {
	return fmt.Sprintf("Helmert7(t=%g,%g,%g r=%g,%g,%g s=%g)", h.TX, h.TY, h.TZ, h.RX, h.RY, h.RZ, h.Scale)
}

// helmertInverse holds the explicit inverse-formula evaluation:
//
//	x = (1/s)*(X(1+srx^2) + Y(srz+srx*sry) - Z(sry-srx*srz)) / (1+srx^2+sry^2+srz^2)
//
// and cyclically for y, z -- this is the numerically-stable "standard"
// form, not a negate-and-reapply shortcut.
type helmertInverse struct {
	fwd            Helmert7
	srx, sry, srz  float64
}

func (h helmertInverse) Transform(coord []float64) error {
	if len(coord) < 3 {
		return &CoordinateDimensionError{Got: len(coord), Needed: 3}
	}
	X := coord[0] - h.fwd.TX
	Y := coord[1] - h.fwd.TY
	Z := coord[2] - h.fwd.TZ

	srx, sry, srz := h.srx, h.sry, h.srz
	denom := 1 + srx*srx + sry*sry + srz*srz
	s := h.fwd.Scale

	x := (X*(1+srx*srx) + Y*(srz+srx*sry) - Z*(sry-srx*srz)) / (s * denom)
	y := (Y*(1+sry*sry) + Z*(srx+sry*srz) - X*(srz-srx*sry)) / (s * denom)
	z := (Z*(1+srz*srz) + X*(sry+srx*srz) - Y*(srx-sry*srz)) / (s * denom)

	coord[0], coord[1], coord[2] = x, y, z
	return nil
}

func (h helmertInverse) Inverse() (CoordinateOperation, error) {
	return h.fwd, nil
}

// Precision scales the forward operation's precision: by 0.1 for the exact
// branch; for the linearized branch by 0.9 while |RX|+|RY|+|RZ| is below
// 1e-4, by 0.5 from 1e-4 and by 0.1 from 1e-3, so a larger rotation
// reports a smaller value.
func (h helmertInverse) Precision() float64 {
	base := h.fwd.Precision()
	if !h.fwd.Linearized {
		return base * 0.1 // exact formulation: smallest error, planner prefers it
	}
	sumRot := math.Abs(h.fwd.RX) + math.Abs(h.fwd.RY) + math.Abs(h.fwd.RZ)
	switch {
	case sumRot >= 1e-3:
		return base * 0.1
	case sumRot >= 1e-4:
		return base * 0.5
	default:
		return base * 0.9
	}
}

func (h helmertInverse) IsIdentity() bool { return h.fwd.IsIdentity() }
func (h helmertInverse) String() string   { return "Helmert7Inverse(" + h.fwd.String() + ")" }

// Translation7ToHelmert builds a Helmert7 out of raw towgs84-style
// parameters: 3 values for a translation-only shift, or 7 for a full
// Helmert (rotations in arc-seconds, scale in ppm), matching the original's
// setDatum parsing (projection.go).
func Translation7ToHelmert(params []float64, convention HelmertConvention, linearized bool) CoordinateOperation {
	if len(params) == 3 {
		return Translation3D{DX: params[0], DY: params[1], DZ: params[2]}
	}
	return Helmert7{
		TX: params[0], TY: params[1], TZ: params[2],
		RX: params[3] * sec2rad, RY: params[4] * sec2rad, RZ: params[5] * sec2rad,
		Scale:      params[6]/1e6 + 1,
		Convention: convention,
		Linearized: linearized,
	}
}
