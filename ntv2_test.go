package geocrs

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeNTv2HeaderRecord writes one 16-byte (8-byte key + 8-byte payload)
// record in the on-disk layout ntv2.go's readHeaderRecord expects.
func writeNTv2HeaderRecord(buf *bytes.Buffer, key string, payload []byte) {
	var kb [8]byte
	copy(kb[:], key)
	buf.Write(kb[:])
	var pb [8]byte
	copy(pb[:], payload)
	buf.Write(pb[:])
}

func ntv2Float64Bytes(v float64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	return b
}

func ntv2Int32Bytes(v int32) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

// buildSingleGridNTv2File synthesizes a minimal one-subgrid NTv2 file: a
// 2x2 lattice spanning 10 arcseconds in each direction, one node per
// corner, each holding a distinct (lat,lon) shift so bilinear sampling at
// each corner is checkable exactly.
func buildSingleGridNTv2File(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer

	writeNTv2HeaderRecord(&buf, "NUM_OREC", ntv2Int32Bytes(11))
	writeNTv2HeaderRecord(&buf, "NUM_SREC", ntv2Int32Bytes(11))
	writeNTv2HeaderRecord(&buf, "NUM_FILE", ntv2Int32Bytes(1))
	writeNTv2HeaderRecord(&buf, "GS_TYPE", []byte("SECONDS"))
	writeNTv2HeaderRecord(&buf, "VERSION", nil)
	writeNTv2HeaderRecord(&buf, "SYSTEM_F", []byte("NAD27"))
	writeNTv2HeaderRecord(&buf, "SYSTEM_T", []byte("NAD83"))
	writeNTv2HeaderRecord(&buf, "MAJOR_F", ntv2Float64Bytes(6378206.4))
	writeNTv2HeaderRecord(&buf, "MINOR_F", ntv2Float64Bytes(6356583.8))
	writeNTv2HeaderRecord(&buf, "MAJOR_T", ntv2Float64Bytes(6378137.0))
	writeNTv2HeaderRecord(&buf, "MINOR_T", ntv2Float64Bytes(6356752.3))

	writeNTv2HeaderRecord(&buf, "SUB_NAME", []byte("TEST"))
	writeNTv2HeaderRecord(&buf, "PARENT", []byte("NONE"))
	writeNTv2HeaderRecord(&buf, "CREATED", nil)
	writeNTv2HeaderRecord(&buf, "UPDATED", nil)
	writeNTv2HeaderRecord(&buf, "S_LAT", ntv2Float64Bytes(0))
	writeNTv2HeaderRecord(&buf, "N_LAT", ntv2Float64Bytes(10))
	writeNTv2HeaderRecord(&buf, "E_LONG", ntv2Float64Bytes(0))
	writeNTv2HeaderRecord(&buf, "W_LONG", ntv2Float64Bytes(10))
	writeNTv2HeaderRecord(&buf, "LAT_INC", ntv2Float64Bytes(10))
	writeNTv2HeaderRecord(&buf, "LONG_INC", ntv2Float64Bytes(10))
	writeNTv2HeaderRecord(&buf, "GS_COUNT", ntv2Int32Bytes(4))

	writeNode := func(lat, lon float32) {
		var rec [16]byte
		binary.LittleEndian.PutUint32(rec[0:4], math.Float32bits(lat))
		binary.LittleEndian.PutUint32(rec[4:8], math.Float32bits(lon))
		buf.Write(rec[:])
	}
	// Shift magnitudes are kept small relative to the 10" grid span so a
	// shifted point stays inside the extent for the inverse-iteration test.
	writeNode(0.1, 1.0) // NE: row0 (north), col0 (east)
	writeNode(0.2, 2.0) // NW: row0, col1 (west)
	writeNode(0.3, 3.0) // SE: row1 (south), col0
	writeNode(0.4, 4.0) // SW: row1, col1

	path := filepath.Join(t.TempDir(), "test.gsb")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func closeSec(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestNTv2ShiftCorners(t *testing.T) {
	path := buildSingleGridNTv2File(t)
	g, err := LoadNTv2Grid(path, Speed)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	// NE corner: lat=10", lon positive-west=0" -> lonRad=0.
	dLat, dLon, err := g.Shift(10*sec2rad, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !closeSec(dLat/sec2rad, 0.1) || !closeSec(-dLon/sec2rad, 1.0) {
		t.Errorf("NE corner shift off: got (%g, %g) arcsec", dLat/sec2rad, -dLon/sec2rad)
	}

	// SW corner: lat=0", lon positive-west=10" -> lonRad = -10*sec2rad.
	dLat, dLon, err = g.Shift(0, -10*sec2rad)
	if err != nil {
		t.Fatal(err)
	}
	if !closeSec(dLat/sec2rad, 0.4) || !closeSec(-dLon/sec2rad, 4.0) {
		t.Errorf("SW corner shift off: got (%g, %g) arcsec", dLat/sec2rad, -dLon/sec2rad)
	}
}

func TestNTv2LowMemoryMatchesSpeed(t *testing.T) {
	path := buildSingleGridNTv2File(t)
	speedGrid, err := LoadNTv2Grid(path, Speed)
	if err != nil {
		t.Fatal(err)
	}
	defer speedGrid.Close()
	lowMemGrid, err := LoadNTv2Grid(path, LowMemory)
	if err != nil {
		t.Fatal(err)
	}
	defer lowMemGrid.Close()

	latRad, lonRad := 6*sec2rad, -3*sec2rad
	dLatS, dLonS, err := speedGrid.Shift(latRad, lonRad)
	if err != nil {
		t.Fatal(err)
	}
	dLatL, dLonL, err := lowMemGrid.Shift(latRad, lonRad)
	if err != nil {
		t.Fatal(err)
	}
	if !closeSec(dLatS, dLatL) || !closeSec(dLonS, dLonL) {
		t.Errorf("Speed and LowMemory disagree: (%g,%g) vs (%g,%g)", dLatS, dLonS, dLatL, dLonL)
	}
}

func TestNTv2OutOfExtent(t *testing.T) {
	path := buildSingleGridNTv2File(t)
	g, err := LoadNTv2Grid(path, Speed)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	if _, _, err := g.Shift(100*sec2rad, 0); err == nil {
		t.Error("expected OutOfExtent for a point outside the grid")
	}
}

func TestNTv2InverseShiftRoundTrip(t *testing.T) {
	path := buildSingleGridNTv2File(t)
	g, err := LoadNTv2Grid(path, Speed)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	latRad, lonRad := 5*sec2rad, -5*sec2rad
	dLat, dLon, err := g.Shift(latRad, lonRad)
	if err != nil {
		t.Fatal(err)
	}
	shifted := []float64{latRad + dLat, lonRad + dLon}
	back, backLon, err := g.InverseShift(shifted[0], shifted[1])
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(back-latRad) > 1e-8 || math.Abs(backLon-lonRad) > 1e-8 {
		t.Errorf("inverse shift round trip off: (%g,%g) vs (%g,%g)", back, backLon, latRad, lonRad)
	}
}

// TestNTv2BoundaryContinuity checks property 5 of the testable-properties
// list: crossing a sub-grid boundary, shift values from the parent and the
// nested child grid agree on their shared edge -- because the edge row of
// the child is required to carry the same node values as the
// corresponding row of the parent.
func TestNTv2BoundaryContinuity(t *testing.T) {
	parent := &ntv2SubGrid{
		name: "PARENT", parent: "NONE",
		sLat: 0, nLat: 20, eLong: 0, wLong: 20,
		latInc: 10, lonInc: 10,
		nrows: 3, ncols: 3,
		nodes: []ntv2Node{
			{1, 10}, {2, 20}, {3, 30},
			{4, 40}, {5, 50}, {6, 60},
			{7, 70}, {8, 80}, {9, 90},
		},
	}
	// Child nests in the NE quadrant (lat 10..20, lon 0..10 positive-west),
	// sharing the boundary row/col with the parent's first row/column.
	child := &ntv2SubGrid{
		name: "CHILD", parent: "PARENT",
		sLat: 10, nLat: 20, eLong: 0, wLong: 10,
		latInc: 10, lonInc: 10,
		nrows: 2, ncols: 2,
		nodes: []ntv2Node{
			{1, 10}, {2, 20}, // matches parent's row0 (north edge)
			{4, 40}, {5, 50}, // matches parent's row1 at the same columns
		},
	}
	g := &NTv2Grid{mode: Speed, roots: []*ntv2SubGrid{parent}}
	parent.children = []*ntv2SubGrid{child}

	// A point inside the child (lat=15", lon=5" positive-west) falls
	// in both extents; findDeepest must return the child, and the bilinear
	// value there must equal what the parent alone would have produced.
	dLatParent, dLonParent, err := g.interpolate(parent, 15, 5)
	if err != nil {
		t.Fatal(err)
	}
	dLatChild, dLonChild, err := g.interpolate(child, 15, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !closeSec(dLatParent, dLatChild) || !closeSec(dLonParent, dLonChild) {
		t.Errorf("parent/child disagree at shared boundary: (%g,%g) vs (%g,%g)",
			dLatParent, dLonParent, dLatChild, dLonChild)
	}

	sg := g.findDeepest(15, 5)
	if sg != child {
		t.Error("expected findDeepest to prefer the nested child sub-grid")
	}
}
