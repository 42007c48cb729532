package geocrs

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeIGNGrid assembles a minimal IGN ASCII grid file: the numeric header
// line, one translation line per dim, a title, then nodeRows in file-scan
// order (already pre-ordered by the caller to match the chosen order).
func writeIGNGrid(t *testing.T, lonMin, lonMax, latMin, latMax, dLon, dLat float64, order, dim int, nodeRows [][]float64) string {
	t.Helper()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%g %g %g %g %g %g %d 0 %d 0\n", lonMin, lonMax, latMin, latMax, dLon, dLat, order, dim)
	for i := 0; i < dim; i++ {
		fmt.Fprintf(&sb, "translation %d\n", i)
	}
	sb.WriteString("test grid\n")
	for _, row := range nodeRows {
		for i, v := range row {
			if i > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%g", v)
		}
		sb.WriteString("\n")
	}
	path := filepath.Join(t.TempDir(), "grid.txt")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIGNGridOrder1Corners(t *testing.T) {
	// order=1: outer ascending (south->north), inner ascending (west->east).
	path := writeIGNGrid(t, 0, 10, 0, 10, 10, 10, 1, 1, [][]float64{
		{1}, // row0 (south), col0 (west) -- SW
		{2}, // row0, col1 (east) -- SE
		{3}, // row1 (north), col0 -- NW
		{4}, // row1, col1 -- NE
	})
	g, err := LoadIGNGrid(path)
	if err != nil {
		t.Fatal(err)
	}
	sw, err := g.Interpolate(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sw[0] != 1 {
		t.Errorf("SW corner: got %v, want 1", sw)
	}
	ne, err := g.Interpolate(10*d2r, 10*d2r)
	if err != nil {
		t.Fatal(err)
	}
	if ne[0] != 4 {
		t.Errorf("NE corner: got %v, want 4", ne)
	}
}

func TestIGNGridOrder2Corners(t *testing.T) {
	// order=2: constant max latitude first, growing longitude, then
	// decreasing latitude -- the one scan order spec.md defines explicitly.
	path := writeIGNGrid(t, 0, 10, 0, 10, 10, 10, 2, 1, [][]float64{
		{10}, // row1 (north, max lat), col0 (west) -- NW
		{20}, // row1, col1 (east) -- NE
		{30}, // row0 (south), col0 -- SW
		{40}, // row0, col1 -- SE
	})
	g, err := LoadIGNGrid(path)
	if err != nil {
		t.Fatal(err)
	}
	nw, err := g.Interpolate(10*d2r, 0)
	if err != nil {
		t.Fatal(err)
	}
	if nw[0] != 10 {
		t.Errorf("NW corner: got %v, want 10", nw)
	}
	se, err := g.Interpolate(0, 10*d2r)
	if err != nil {
		t.Fatal(err)
	}
	if se[0] != 40 {
		t.Errorf("SE corner: got %v, want 40", se)
	}
}

func TestIGNGridOutOfExtent(t *testing.T) {
	path := writeIGNGrid(t, 0, 10, 0, 10, 10, 10, 1, 1, [][]float64{{1}, {2}, {3}, {4}})
	g, err := LoadIGNGrid(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Interpolate(50*d2r, 0); err == nil {
		t.Error("expected OutOfExtent for a point outside the grid")
	}
}

func TestIGNGridNoDataSentinel(t *testing.T) {
	path := writeIGNGrid(t, 0, 10, 0, 10, 10, 10, 1, 1, [][]float64{
		{1}, {2}, {IGNGridNoData}, {4},
	})
	g, err := LoadIGNGrid(path)
	if err != nil {
		t.Fatal(err)
	}
	// Any interior point samples all four corners, one of which is no-data.
	if _, err := g.Interpolate(5*d2r, 5*d2r); err == nil {
		t.Error("expected OutOfExtent from a no-data node in the interpolation stencil")
	}
}

func TestVerticalGridOffset(t *testing.T) {
	path := writeIGNGrid(t, 0, 10, 0, 10, 10, 10, 1, 1, [][]float64{
		{5}, {5}, {5}, {5}, // flat 5 m undulation everywhere
	})
	grid, err := LoadIGNGrid(path)
	if err != nil {
		t.Fatal(err)
	}
	v := VerticalGridOffset{Grid: grid, Prec: 0.01}
	coord := []float64{5 * d2r, 5 * d2r, 100}
	if err := v.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if coord[2] != 105 {
		t.Errorf("H->h: got %g, want 105", coord[2])
	}

	inv, err := v.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if err := inv.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if math.Abs(coord[2]-100) > 1e-9 {
		t.Errorf("h->H round trip off: got %g, want 100", coord[2])
	}
}

func TestGridShift3D(t *testing.T) {
	path := writeIGNGrid(t, 0, 10, 0, 10, 10, 10, 1, 3, [][]float64{
		{1, 2, 3}, {1, 2, 3}, {1, 2, 3}, {1, 2, 3}, // uniform (dX,dY,dZ)
	})
	grid, err := LoadIGNGrid(path)
	if err != nil {
		t.Fatal(err)
	}
	op := GridShift3D{Grid: grid, Prec: 0.001}
	coord := make([]float64, ScratchOffset+3)
	coord[0], coord[1], coord[2] = 100, 200, 300
	coord[ScratchOffset+0] = 5 * d2r
	coord[ScratchOffset+1] = 5 * d2r
	if err := op.Transform(coord); err != nil {
		t.Fatal(err)
	}
	if coord[0] != 101 || coord[1] != 202 || coord[2] != 303 {
		t.Errorf("grid shift off: got (%g,%g,%g)", coord[0], coord[1], coord[2])
	}
	if _, err := op.Inverse(); err == nil {
		t.Error("expected GridShift3D.Inverse to report NonInvertible")
	}
}
