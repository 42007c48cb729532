package geocrs

import (
	"math"
	"testing"
)

// frenchGridTestDatums builds a tiny NTF/RGF93 pair on the same ellipsoid so
// the only thing under test is GR3DF97A's iteration and directness, not
// ellipsoid-shape effects from GeographicToGeocentric/GeocentricToGeographic.
func frenchGridTestDatums() (ntf, rgf93 *GeodeticDatum) {
	e := NewEllipsoidAF("TEST80", "Test GRS80-like", 6378137.0, 298.257222101)
	ntf = NewGeodeticDatum("Test NTF", e, Greenwich, WholeWorld)
	rgf93 = NewGeodeticDatum("Test RGF93", e, Greenwich, WholeWorld)
	ntf.SetToWGS84(Translation3D{DX: -168, DY: -60, DZ: 320})
	rgf93.SetToWGS84(Identity{})
	return ntf, rgf93
}

// uniformGR3Grid builds a dim=3 grid with the same (dX,dY,dZ) everywhere,
// matching ntf's seed translation so the iteration converges immediately
// (every resample returns the same correction the seed already applied).
func uniformGR3Grid(t *testing.T, dx, dy, dz float64) *IGNGrid {
	t.Helper()
	path := writeIGNGrid(t, 0, 10, 0, 10, 10, 10, 1, 3, [][]float64{
		{dx, dy, dz}, {dx, dy, dz}, {dx, dy, dz}, {dx, dy, dz},
	})
	g, err := LoadIGNGrid(path)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGR3DF97ANTFToRGF93Converges(t *testing.T) {
	ntf, rgf93 := frenchGridTestDatums()
	grid := uniformGR3Grid(t, -168, -60, 320)

	op := GR3DF97A{Grid: grid, NTF: ntf, RGF93: rgf93}
	coord := []float64{5 * d2r, 5 * d2r, 100}
	if err := op.Transform(coord); err != nil {
		t.Fatal(err)
	}
	// A uniform grid matching the seed translation exactly means the first
	// iteration already reproduces the seed's result and the loop should
	// converge well before MaxIter.
	if math.IsNaN(coord[0]) || math.IsNaN(coord[1]) {
		t.Fatalf("converged result is NaN: %v", coord)
	}
}

func TestGR3DF97ARGF93ToNTFIsDirect(t *testing.T) {
	ntf, rgf93 := frenchGridTestDatums()
	grid := uniformGR3Grid(t, -168, -60, 320)

	fwd := GR3DF97A{Grid: grid, NTF: ntf, RGF93: rgf93}
	coord := []float64{5 * d2r, 5 * d2r, 100}
	if err := fwd.Transform(coord); err != nil {
		t.Fatal(err)
	}

	inv, err := fwd.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if err := inv.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if math.Abs(coord[0]-5*d2r) > 1e-8 || math.Abs(coord[1]-5*d2r) > 1e-8 {
		t.Errorf("NTF->RGF93->NTF round trip off: got (%g,%g), want (%g,%g)",
			coord[0], coord[1], 5*d2r, 5*d2r)
	}
}

func TestGR3DF97AStringAndIdentity(t *testing.T) {
	ntf, rgf93 := frenchGridTestDatums()
	grid := uniformGR3Grid(t, 0, 0, 0)
	fwd := GR3DF97A{Grid: grid, NTF: ntf, RGF93: rgf93}

	if fwd.IsIdentity() {
		t.Error("GR3DF97A should never report IsIdentity")
	}
	if got := fwd.String(); got != "GR3DF97A(NTF->RGF93)" {
		t.Errorf("String() = %q, want GR3DF97A(NTF->RGF93)", got)
	}
	inv, err := fwd.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if got := inv.String(); got != "GR3DF97A(RGF93->NTF)" {
		t.Errorf("Inverse String() = %q, want GR3DF97A(RGF93->NTF)", got)
	}
}

func TestGR3DF97ADimensionError(t *testing.T) {
	ntf, rgf93 := frenchGridTestDatums()
	grid := uniformGR3Grid(t, 0, 0, 0)
	op := GR3DF97A{Grid: grid, NTF: ntf, RGF93: rgf93}
	if err := op.Transform([]float64{1, 2}); err == nil {
		t.Error("expected an error transforming a too-short coordinate")
	}
}

func TestRegisterGR3DF97AWiresGraphEdge(t *testing.T) {
	path := writeIGNGrid(t, 0, 10, 0, 10, 10, 10, 1, 3, [][]float64{
		{-168, -60, 320}, {-168, -60, 320}, {-168, -60, 320}, {-168, -60, 320},
	})
	if _, err := RegisterGR3DF97A(path); err != nil {
		t.Fatal(err)
	}

	ntf, ok := Datums.Lookup("NTF")
	if !ok {
		t.Fatal("NTF datum not registered")
	}
	rgf93, ok := Datums.Lookup("RGF93")
	if !ok {
		t.Fatal("RGF93 datum not registered")
	}

	op, err := ResolveDatumShift(ntf, rgf93)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := op.(GR3DF97A); !ok {
		t.Errorf("expected ResolveDatumShift to prefer the registered GR3DF97A grid edge, got %T", op)
	}
}
