package geocrs

import "fmt"

// Identity is the no-op CoordinateOperation: it leaves the coordinates
// unchanged. Compose keeps it as a step unless every step is a no-op, in
// which case the whole composition collapses to Identity.
type Identity struct{}

func (Identity) Transform([]float64) error             { return nil }
func (Identity) Inverse() (CoordinateOperation, error)  { return Identity{}, nil }
func (Identity) Precision() float64                     { return 0 }
func (Identity) IsIdentity() bool                       { return true }
func (Identity) String() string                         { return "Identity" }

// Translation3D shifts geocentric X,Y,Z by fixed offsets.
type Translation3D struct {
	DX, DY, DZ float64
	Prec       float64
}

func (t Translation3D) Transform(coord []float64) error {
	if len(coord) < 3 {
		return &CoordinateDimensionError{Got: len(coord), Needed: 3}
	}
	coord[0] += t.DX
	coord[1] += t.DY
	coord[2] += t.DZ
	return nil
}

func (t Translation3D) Inverse() (CoordinateOperation, error) {
	return Translation3D{DX: -t.DX, DY: -t.DY, DZ: -t.DZ, Prec: t.Prec}, nil
}

func (t Translation3D) Precision() float64 { return t.Prec }

func (t Translation3D) IsIdentity() bool {
	return t.DX == 0 && t.DY == 0 && t.DZ == 0
}

func (t Translation3D) String() string {
	return fmt.Sprintf("Translation3D(%g,%g,%g)", t.DX, t.DY, t.DZ)
}

// SignFlip negates a single axis, used to implement the South/West/Down
// sign-flip rule for South/West/Down axes.
type SignFlip struct {
	Axis int
}

func (s SignFlip) Transform(coord []float64) error {
	if s.Axis >= len(coord) {
		return &CoordinateDimensionError{Got: len(coord), Needed: s.Axis + 1}
	}
	coord[s.Axis] = -coord[s.Axis]
	return nil
}

func (s SignFlip) Inverse() (CoordinateOperation, error) { return s, nil }
func (s SignFlip) Precision() float64                    { return 0 }
func (s SignFlip) IsIdentity() bool                      { return false }
func (s SignFlip) String() string                         { return fmt.Sprintf("SignFlip(%d)", s.Axis) }

// DimensionChange extends a 2D coordinate to 3D with a given height (To=3),
// or marks the drop back to 2D (To=2), which leaves the buffer unchanged.
type DimensionChange struct {
	To     int // 2 or 3
	Height float64
}

func (d DimensionChange) Transform(coord []float64) error {
	// The caller is expected to supply a buffer already sized for the
	// wider dimension; DimensionChange only ever sets the 3rd slot (To=3).
	if d.To == 3 {
		if len(coord) < 3 {
			return &CoordinateDimensionError{Got: len(coord), Needed: 3}
		}
		coord[2] = d.Height
	}
	return nil
}

func (d DimensionChange) Inverse() (CoordinateOperation, error) {
	if d.To == 3 {
		return DimensionChange{To: 2}, nil
	}
	return DimensionChange{To: 3, Height: d.Height}, nil
}

func (d DimensionChange) Precision() float64 { return 0 }
func (d DimensionChange) IsIdentity() bool    { return false }
func (d DimensionChange) String() string {
	return fmt.Sprintf("DimensionChange(to=%d)", d.To)
}

// UnitConversion converts one axis from From to To.
type UnitConversion struct {
	Axis     int
	From, To Unit
}

func (u UnitConversion) Transform(coord []float64) error {
	if u.Axis >= len(coord) {
		return &CoordinateDimensionError{Got: len(coord), Needed: u.Axis + 1}
	}
	if u.From.Quantity != u.To.Quantity {
		return &IncompatibleUnitError{Have: u.From.Quantity, Need: u.To.Quantity}
	}
	coord[u.Axis] = u.To.FromBase(u.From.ToBase(coord[u.Axis]))
	return nil
}

func (u UnitConversion) Inverse() (CoordinateOperation, error) {
	return UnitConversion{Axis: u.Axis, From: u.To, To: u.From}, nil
}

func (u UnitConversion) Precision() float64 { return 0 }
func (u UnitConversion) IsIdentity() bool {
	return u.From.Equal(u.To)
}
func (u UnitConversion) String() string {
	return fmt.Sprintf("UnitConversion(axis=%d,%s->%s)", u.Axis, u.From.Symbol, u.To.Symbol)
}

// AxisSwap exchanges the values at indices I and J.
type AxisSwap struct {
	I, J int
}

func (a AxisSwap) Transform(coord []float64) error {
	n := a.I
	if a.J > n {
		n = a.J
	}
	if n >= len(coord) {
		return &CoordinateDimensionError{Got: len(coord), Needed: n + 1}
	}
	coord[a.I], coord[a.J] = coord[a.J], coord[a.I]
	return nil
}

func (a AxisSwap) Inverse() (CoordinateOperation, error) { return a, nil }
func (a AxisSwap) Precision() float64                    { return 0 }
func (a AxisSwap) IsIdentity() bool                       { return a.I == a.J }
func (a AxisSwap) String() string                         { return fmt.Sprintf("AxisSwap(%d,%d)", a.I, a.J) }

// LongitudeRotation shifts longitude (axis 1, in radians, lat/lon order) by
// a fixed amount -- used to move between a non-Greenwich prime meridian and
// Greenwich.
type LongitudeRotation struct {
	DeltaLonRad float64
}

func (l LongitudeRotation) Transform(coord []float64) error {
	if len(coord) < 2 {
		return &CoordinateDimensionError{Got: len(coord), Needed: 2}
	}
	coord[1] = adjLng(coord[1] + l.DeltaLonRad)
	return nil
}

func (l LongitudeRotation) Inverse() (CoordinateOperation, error) {
	return LongitudeRotation{DeltaLonRad: -l.DeltaLonRad}, nil
}

func (l LongitudeRotation) Precision() float64 { return 0 }
func (l LongitudeRotation) IsIdentity() bool    { return l.DeltaLonRad == 0 }
func (l LongitudeRotation) String() string {
	return fmt.Sprintf("LongitudeRotation(%g rad)", l.DeltaLonRad)
}
