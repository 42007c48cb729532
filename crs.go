package geocrs

import "fmt"

// CRS is the tagged-union capability every coordinate reference system
// variant implements: build the pipeline into and out of the canonical
// geographic form (radians, lat/lon[, ellipsoidal height], Greenwich
// prime meridian) that datum shifts operate on.
type CRS interface {
	// ToGeographic builds the pipeline from this CRS's own coordinate
	// system into canonical geographic form.
	ToGeographic() (CoordinateOperation, error)
	// FromGeographic builds the symmetric reverse.
	FromGeographic() (CoordinateOperation, error)
	// HorizontalDatum returns the geodetic datum the planner shifts
	// between, or nil for a CRS with no horizontal component.
	HorizontalDatum() *GeodeticDatum
	// System returns the CRS's own coordinate system.
	System() CoordinateSystem
}

func baseUnitFor(q Quantity) Unit {
	switch q {
	case QuantityAngle:
		return Radian
	case QuantityLength:
		return Meter
	case QuantityTime:
		return Second
	default:
		return Dimensionless
	}
}

// axisNormalization builds the shared first three construction-rule steps
// (§4.5): sign-flip South/West/Down axes, convert every axis to its
// quantity's base unit, then swap axes 0 and 1 if the CS is (lon, lat, ...)
// ordered. It is the common prefix every CRS variant's ToGeographic starts
// from; FromGeographic gets the reverse for free via Sequence.Inverse.
func axisNormalization(cs CoordinateSystem) CoordinateOperation {
	var ops []CoordinateOperation
	for i, ax := range cs.Axes {
		if ax.Direction.reversed() {
			ops = append(ops, SignFlip{Axis: i})
		}
	}
	for i, u := range cs.Units {
		base := baseUnitFor(u.Quantity)
		if !u.Equal(base) {
			ops = append(ops, UnitConversion{Axis: i, From: u, To: base})
		}
	}
	if cs.isLonLatOrder() {
		ops = append(ops, AxisSwap{I: 0, J: 1})
	}
	return Compose(ops...)
}

// pmRotationToGreenwich builds the longitude rotation that re-expresses a
// longitude measured from d's own prime meridian as Greenwich-referenced,
// the way every canonical geographic output in §4.5 is defined ("prime
// meridian = Greenwich-referenced after longitude rotation"). The
// construction-rule list only spells this step out under the Geocentric
// case, but the requirement in the canonical-form definition is general,
// so every CRS variant below applies it wherever its datum's prime
// meridian is non-Greenwich, not only the geocentric one.
func pmRotationToGreenwich(pm PrimeMeridian) CoordinateOperation {
	if pm.LongitudeFromGreenwichRad == 0 {
		return Identity{}
	}
	return LongitudeRotation{DeltaLonRad: pm.LongitudeFromGreenwichRad}
}

// GeocentricCRS is a 3D (X, Y, Z) Cartesian CRS anchored to a datum.
type GeocentricCRS struct {
	Name  string
	CS    CoordinateSystem
	Datum *GeodeticDatum
}

func (c GeocentricCRS) System() CoordinateSystem      { return c.CS }
func (c GeocentricCRS) HorizontalDatum() *GeodeticDatum { return c.Datum }

func (c GeocentricCRS) ToGeographic() (CoordinateOperation, error) {
	norm := axisNormalization(c.CS)
	toGeo := GeocentricToGeographic{Ellipsoid: c.Datum.Ellipsoid}
	rot := pmRotationToGreenwich(c.Datum.PrimeMeridian)
	return Compose(norm, toGeo, rot), nil
}

func (c GeocentricCRS) FromGeographic() (CoordinateOperation, error) {
	op, err := c.ToGeographic()
	if err != nil {
		return nil, err
	}
	return op.Inverse()
}

// Geographic2DCRS is a 2D (lat, lon) geographic CRS.
type Geographic2DCRS struct {
	Name  string
	CS    CoordinateSystem
	Datum *GeodeticDatum
}

func (c Geographic2DCRS) System() CoordinateSystem      { return c.CS }
func (c Geographic2DCRS) HorizontalDatum() *GeodeticDatum { return c.Datum }

func (c Geographic2DCRS) ToGeographic() (CoordinateOperation, error) {
	norm := axisNormalization(c.CS)
	rot := pmRotationToGreenwich(c.Datum.PrimeMeridian)
	extend := DimensionChange{To: 3, Height: 0}
	return Compose(norm, rot, extend), nil
}

func (c Geographic2DCRS) FromGeographic() (CoordinateOperation, error) {
	op, err := c.ToGeographic()
	if err != nil {
		return nil, err
	}
	return op.Inverse()
}

// Geographic3DCRS is a 3D (lat, lon, ellipsoidal height) geographic CRS.
type Geographic3DCRS struct {
	Name  string
	CS    CoordinateSystem
	Datum *GeodeticDatum
}

func (c Geographic3DCRS) System() CoordinateSystem      { return c.CS }
func (c Geographic3DCRS) HorizontalDatum() *GeodeticDatum { return c.Datum }

func (c Geographic3DCRS) ToGeographic() (CoordinateOperation, error) {
	norm := axisNormalization(c.CS)
	rot := pmRotationToGreenwich(c.Datum.PrimeMeridian)
	return Compose(norm, rot), nil
}

func (c Geographic3DCRS) FromGeographic() (CoordinateOperation, error) {
	op, err := c.ToGeographic()
	if err != nil {
		return nil, err
	}
	return op.Inverse()
}

// ProjectedCRS is a 2D (easting, northing) planar CRS built over a
// geographic base by a Projection.
type ProjectedCRS struct {
	Name  string
	CS    CoordinateSystem
	Datum *GeodeticDatum
	Proj  Projection
}

func (c ProjectedCRS) System() CoordinateSystem      { return c.CS }
func (c ProjectedCRS) HorizontalDatum() *GeodeticDatum { return c.Datum }

func (c ProjectedCRS) ToGeographic() (CoordinateOperation, error) {
	norm := axisNormalization(c.CS)
	inv := ProjectInverse{Proj: c.Proj}
	rot := pmRotationToGreenwich(c.Datum.PrimeMeridian)
	return Compose(norm, inv, rot), nil
}

func (c ProjectedCRS) FromGeographic() (CoordinateOperation, error) {
	op, err := c.ToGeographic()
	if err != nil {
		return nil, err
	}
	return op.Inverse()
}

// VerticalCRS is a 1D gravity-related height CRS.
type VerticalCRS struct {
	Name  string
	CS    CoordinateSystem
	Datum *VerticalDatum
}

func (c VerticalCRS) System() CoordinateSystem        { return c.CS }
func (c VerticalCRS) HorizontalDatum() *GeodeticDatum { return nil }

func (c VerticalCRS) ToGeographic() (CoordinateOperation, error) {
	return axisNormalization(c.CS), nil
}

func (c VerticalCRS) FromGeographic() (CoordinateOperation, error) {
	op, err := c.ToGeographic()
	if err != nil {
		return nil, err
	}
	return op.Inverse()
}

// CompoundCRS combines a horizontal CRS (Projected or Geographic2D) and a
// VerticalCRS into one 3D (lat, lon, ellipsoidal-height) canonical form.
type CompoundCRS struct {
	Name       string
	Horizontal CRS
	Vertical   VerticalCRS
}

func (c CompoundCRS) System() CoordinateSystem {
	hcs := c.Horizontal.System()
	return CoordinateSystem{
		Axes:  append(append([]Axis{}, hcs.Axes...), c.Vertical.CS.Axes...),
		Units: append(append([]Unit{}, hcs.Units...), c.Vertical.CS.Units...),
	}
}

func (c CompoundCRS) HorizontalDatum() *GeodeticDatum { return c.Horizontal.HorizontalDatum() }

// validateHorizontal enforces §3's "Compound's horizontal must be Projected
// or Geographic2D" invariant.
func (c CompoundCRS) validateHorizontal() error {
	switch c.Horizontal.(type) {
	case ProjectedCRS, Geographic2DCRS:
		return nil
	default:
		return &UnsupportedError{What: fmt.Sprintf("compound CRS %s: horizontal must be Projected or Geographic2D", c.Name)}
	}
}

// ToGeographic implements §4.6. When the vertical datum is nil or
// Ellipsoidal, the Z leg is Identity and the horizontal pipeline alone
// (extended to 3D, carrying the live height through unchanged) already
// produces canonical output; an Ellipsoidal vertical datum's ellipsoid is
// not compared with the horizontal datum's. Otherwise it walks
// the six-step grid-sampling recipe: memoize Z before the horizontal
// pipeline can clobber it (Geographic2D's extend-to-3D step sets h=0),
// shift X,Y into the vertical datum's associated horizontal datum, restore
// the real Z, apply the altitude<->ellipsoidal-height grid, then shift X,Y
// back.
func (c CompoundCRS) ToGeographic() (CoordinateOperation, error) {
	if err := c.validateHorizontal(); err != nil {
		return nil, err
	}
	hToGeo, err := c.Horizontal.ToGeographic()
	if err != nil {
		return nil, err
	}

	dv := c.Vertical.Datum
	dh := c.Horizontal.HorizontalDatum()

	if dv == nil || dv.Kind == Ellipsoidal {
		return Compose(MemoizeCoord{Index: 2}, hToGeo, LoadMemorizedCoord{Index: 2}), nil
	}

	if dv.AssociatedHorizontal == nil || dh == nil || dv.AssociatedHorizontal.Equal(dh) {
		return Compose(MemoizeCoord{Index: 2}, hToGeo, LoadMemorizedCoord{Index: 2}, dv.ToEllipsoidalHeight()), nil
	}

	shiftToVertical, err := ResolveDatumShift(dh, dv.AssociatedHorizontal)
	if err != nil {
		return nil, err
	}
	shiftBack, err := ResolveDatumShift(dv.AssociatedHorizontal, dh)
	if err != nil {
		return nil, err
	}

	return Compose(
		MemoizeCoord{Index: 2},
		hToGeo,
		shiftToVertical,
		LoadMemorizedCoord{Index: 2},
		dv.ToEllipsoidalHeight(),
		shiftBack,
	), nil
}

func (c CompoundCRS) FromGeographic() (CoordinateOperation, error) {
	op, err := c.ToGeographic()
	if err != nil {
		return nil, err
	}
	return op.Inverse()
}
