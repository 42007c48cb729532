package geocrs

import (
	"math"
	"testing"
)

func geocentricTestEllipsoid() *Ellipsoid {
	e, _ := Ellipsoids.Lookup("WGS84")
	return e
}

func TestGeographicToGeocentricRoundTrip(t *testing.T) {
	e := geocentricTestEllipsoid()
	fwd := GeographicToGeocentric{Ellipsoid: e}
	inv := GeocentricToGeographic{Ellipsoid: e}

	coord := []float64{45 * d2r, 3 * d2r, 250.0}
	orig := append([]float64{}, coord...)
	if err := fwd.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if err := inv.Transform(coord); err != nil {
		t.Fatal(err)
	}
	for i := range orig {
		if math.Abs(coord[i]-orig[i]) > 1e-9 {
			t.Errorf("axis %d: got %g, want %g", i, coord[i], orig[i])
		}
	}
}

func TestGeographicToGeocentricEquator(t *testing.T) {
	e := geocentricTestEllipsoid()
	fwd := GeographicToGeocentric{Ellipsoid: e}
	coord := []float64{0, 0, 0}
	if err := fwd.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if math.Abs(coord[0]-e.A) > 1e-6 || math.Abs(coord[1]) > 1e-6 || math.Abs(coord[2]) > 1e-6 {
		t.Errorf("equator/Greenwich point should land at (a,0,0): got %v", coord)
	}
}

func TestGeocentricToGeographicPole(t *testing.T) {
	e := geocentricTestEllipsoid()
	inv := GeocentricToGeographic{Ellipsoid: e}
	coord := []float64{0, 0, e.B}
	if err := inv.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if math.Abs(coord[0]-half_pi) > 1e-9 {
		t.Errorf("north pole point should give latitude pi/2, got %g", coord[0])
	}
	if math.Abs(coord[2]) > 1e-6 {
		t.Errorf("north pole point should give height 0, got %g", coord[2])
	}
}

func TestGeocentricOperationsAreInverses(t *testing.T) {
	e := geocentricTestEllipsoid()
	fwd := GeographicToGeocentric{Ellipsoid: e}
	inv, err := fwd.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := inv.(GeocentricToGeographic); !ok {
		t.Errorf("GeographicToGeocentric.Inverse() should be a GeocentricToGeographic, got %T", inv)
	}
	back, err := inv.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := back.(GeographicToGeocentric); !ok {
		t.Errorf("GeocentricToGeographic.Inverse() should be a GeographicToGeocentric, got %T", back)
	}
}
