package geocrs

import (
	"errors"
	"math"
	"testing"
)

func testWGS84Datum() *GeodeticDatum {
	e, _ := Ellipsoids.Lookup("WGS84")
	return NewGeodeticDatum("Test WGS84", e, Greenwich, WholeWorld)
}

func TestGeographic2DCRSExtendsTo3D(t *testing.T) {
	crs := Geographic2DCRS{Name: "test-geog2d", CS: Geographic2DLatLon(), Datum: testWGS84Datum()}
	op, err := crs.ToGeographic()
	if err != nil {
		t.Fatal(err)
	}
	coord := []float64{45, 3, 1} // lat, lon in degrees, plus the height slot extend-to-3D overwrites
	if err := op.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if len(coord) != 3 {
		t.Fatalf("expected a 3-vector after extend-to-3D, got %v", coord)
	}
	if math.Abs(coord[0]-45*d2r) > 1e-12 || math.Abs(coord[1]-3*d2r) > 1e-12 {
		t.Errorf("lat/lon not converted to radians: got %v", coord)
	}
	if coord[2] != 0 {
		t.Errorf("expected extended height 0, got %g", coord[2])
	}
}

func TestGeographic2DCRSLonLatAxisSwap(t *testing.T) {
	crs := Geographic2DCRS{Name: "test-lonlat", CS: Geographic2DLonLat(), Datum: testWGS84Datum()}
	op, err := crs.ToGeographic()
	if err != nil {
		t.Fatal(err)
	}
	coord := []float64{3, 45, 0} // lon, lat in degrees, this CS's own axis order, plus the height slot
	if err := op.Transform(coord); err != nil {
		t.Fatal(err)
	}
	// Canonical form is (lat, lon, h); the axis swap must have put lat first.
	if math.Abs(coord[0]-45*d2r) > 1e-12 || math.Abs(coord[1]-3*d2r) > 1e-12 {
		t.Errorf("axis swap didn't reorder to (lat,lon): got %v", coord)
	}
}

func TestGeographic2DCRSRoundTrip(t *testing.T) {
	crs := Geographic2DCRS{Name: "test-geog2d", CS: Geographic2DLatLon(), Datum: testWGS84Datum()}
	toGeo, err := crs.ToGeographic()
	if err != nil {
		t.Fatal(err)
	}
	fromGeo, err := crs.FromGeographic()
	if err != nil {
		t.Fatal(err)
	}
	coord := []float64{45, 3, 0}
	if err := toGeo.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if err := fromGeo.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if math.Abs(coord[0]-45) > 1e-9 || math.Abs(coord[1]-3) > 1e-9 {
		t.Errorf("round trip off: got %v, want (45,3)", coord)
	}
}

func TestGeocentricCRSRoundTrip(t *testing.T) {
	crs := GeocentricCRS{Name: "test-geoc", CS: GeocentricXYZ(), Datum: testWGS84Datum()}
	toGeo, err := crs.ToGeographic()
	if err != nil {
		t.Fatal(err)
	}
	fromGeo, err := crs.FromGeographic()
	if err != nil {
		t.Fatal(err)
	}
	coord := []float64{4194304.0, 173859.0, 4780871.0}
	orig := append([]float64{}, coord...)
	if err := toGeo.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if err := fromGeo.Transform(coord); err != nil {
		t.Fatal(err)
	}
	for i := range orig {
		if math.Abs(coord[i]-orig[i]) > 1e-6 {
			t.Errorf("geocentric round trip off at axis %d: got %g, want %g", i, coord[i], orig[i])
		}
	}
}

func TestPmRotationToGreenwichNonZero(t *testing.T) {
	paris := PrimeMeridian{"Paris", 2.337229166667 * d2r}
	datum := NewGeodeticDatum("Test NTF-like", testWGS84Datum().Ellipsoid, paris, WholeWorld)
	crs := Geographic3DCRS{Name: "test-paris", CS: Geographic3DLatLonHeight(), Datum: datum}
	op, err := crs.ToGeographic()
	if err != nil {
		t.Fatal(err)
	}
	// A longitude of 0 relative to Paris must come out non-zero relative to
	// Greenwich once the rotation is applied.
	coord := []float64{45, 0, 0}
	if err := op.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if math.Abs(coord[1]-paris.LongitudeFromGreenwichRad) > 1e-12 {
		t.Errorf("expected Greenwich-referenced longitude %g, got %g", paris.LongitudeFromGreenwichRad, coord[1])
	}
}

// fakeIdentityProjection is a Projection whose Forward/Inverse are the
// identity map, letting ProjectedCRS tests exercise axis normalization and
// composition without depending on a specific named projection's math.
type fakeIdentityProjection struct{}

func (fakeIdentityProjection) Forward(lam, phi float64) (float64, float64, error) { return lam, phi, nil }
func (fakeIdentityProjection) Inverse(x, y float64) (float64, float64, error)      { return x, y, nil }
func (fakeIdentityProjection) Name() string                                       { return "fake-identity" }
func (fakeIdentityProjection) Precision() float64                                 { return 0 }

func TestProjectedCRSRoundTrip(t *testing.T) {
	crs := ProjectedCRS{
		Name:  "test-proj",
		CS:    ProjectedEastingNorthing(),
		Datum: testWGS84Datum(),
		Proj:  fakeIdentityProjection{},
	}
	toGeo, err := crs.ToGeographic()
	if err != nil {
		t.Fatal(err)
	}
	fromGeo, err := crs.FromGeographic()
	if err != nil {
		t.Fatal(err)
	}
	coord := []float64{3 * d2r, 45 * d2r} // easting=lon rad, northing=lat rad under the fake identity proj
	orig := append([]float64{}, coord...)
	if err := toGeo.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if err := fromGeo.Transform(coord); err != nil {
		t.Fatal(err)
	}
	for i := range orig {
		if math.Abs(coord[i]-orig[i]) > 1e-12 {
			t.Errorf("projected round trip off at axis %d: got %g, want %g", i, coord[i], orig[i])
		}
	}
}

func TestVerticalCRSNormalizesAxisOnly(t *testing.T) {
	crs := VerticalCRS{Name: "test-height", CS: VerticalHeight(), Datum: nil}
	if crs.HorizontalDatum() != nil {
		t.Error("VerticalCRS must report a nil horizontal datum")
	}
	op, err := crs.ToGeographic()
	if err != nil {
		t.Fatal(err)
	}
	coord := []float64{123.45}
	if err := op.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if coord[0] != 123.45 {
		t.Errorf("meter-unit vertical axis should pass through unchanged, got %g", coord[0])
	}
}

func TestCompoundCRSRejectsGeocentricHorizontal(t *testing.T) {
	c := CompoundCRS{
		Name:       "test-bad-compound",
		Horizontal: GeocentricCRS{Name: "bad", CS: GeocentricXYZ(), Datum: testWGS84Datum()},
		Vertical:   VerticalCRS{Name: "h", CS: VerticalHeight(), Datum: nil},
	}
	_, err := c.ToGeographic()
	if err == nil {
		t.Fatal("expected an error for a Geocentric horizontal component")
	}
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Errorf("expected an *UnsupportedError, got %T: %v", err, err)
	}
}

func TestCompoundCRSEllipsoidalVerticalPassesHeightThrough(t *testing.T) {
	datum := testWGS84Datum()
	c := CompoundCRS{
		Name:       "test-compound-ellipsoidal",
		Horizontal: Geographic2DCRS{Name: "h", CS: Geographic2DLatLon(), Datum: datum},
		Vertical:   VerticalCRS{Name: "v", CS: VerticalHeight(), Datum: NewEllipsoidalVerticalDatum("test-ellipsoidal", datum)},
	}
	op, err := c.ToGeographic()
	if err != nil {
		t.Fatal(err)
	}
	coord := []float64{45, 3, 222.5, 0, 0, 0} // 3 live slots + 3 memo scratch slots
	if err := op.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if math.Abs(coord[2]-222.5) > 1e-9 {
		t.Errorf("ellipsoidal vertical datum should pass height through unchanged, got %g", coord[2])
	}
}

func TestCompoundCRSRoundTrip(t *testing.T) {
	datum := testWGS84Datum()
	c := CompoundCRS{
		Name:       "test-compound-roundtrip",
		Horizontal: Geographic2DCRS{Name: "h", CS: Geographic2DLatLon(), Datum: datum},
		Vertical:   VerticalCRS{Name: "v", CS: VerticalHeight(), Datum: NewEllipsoidalVerticalDatum("test-ellipsoidal", datum)},
	}
	toGeo, err := c.ToGeographic()
	if err != nil {
		t.Fatal(err)
	}
	fromGeo, err := c.FromGeographic()
	if err != nil {
		t.Fatal(err)
	}
	coord := []float64{45, 3, 222.5, 0, 0, 0} // 3 live slots + 3 memo scratch slots
	if err := toGeo.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if err := fromGeo.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if math.Abs(coord[0]-45) > 1e-9 || math.Abs(coord[1]-3) > 1e-9 || math.Abs(coord[2]-222.5) > 1e-9 {
		t.Errorf("compound CRS round trip off: got %v", coord)
	}
}
