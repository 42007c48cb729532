package geocrs

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// GridMode selects how a grid reader holds its node data: Speed loads the
// whole grid into memory up front; LowMemory keeps a single file handle
// open and reads nodes on demand, serialized by a mutex.
type GridMode int

const (
	Speed GridMode = iota
	LowMemory
)

// ntv2Node keeps the lat_shift and lon_shift of one grid-node record, in
// arcseconds as the file format defines; the record's accuracy fields are
// not kept.
type ntv2Node struct {
	latShift, lonShift float32
}

// ntv2SubGrid is one named sub-grid of an NTv2 file: a rectangular lattice
// of shift nodes plus any finer sub-grids nested inside its extent.
//
// Bounds and increments are kept in the file's native units: arcseconds,
// longitude positive-west. nodes are ordered row-major starting at the
// north-east corner, row index increasing southward and column index
// increasing westward -- the conventional NTv2 on-disk layout.
type ntv2SubGrid struct {
	name, parent                 string
	sLat, nLat, eLong, wLong     float64
	latInc, lonInc               float64
	nrows, ncols                 int
	dataOffset                   int64 // file offset of the first node record, LowMemory only
	nodes                        []ntv2Node
	children                     []*ntv2SubGrid
}

func (s *ntv2SubGrid) contains(latSec, lonPWSec float64) bool {
	return latSec >= s.sLat && latSec <= s.nLat && lonPWSec >= s.eLong && lonPWSec <= s.wLong
}

// NTv2Grid is a loaded NTv2 binary grid shift file, e.g. a NAD27->NAD83
// "national transformation" grid.
type NTv2Grid struct {
	mode  GridMode
	roots []*ntv2SubGrid

	mu   sync.Mutex
	file *os.File
}

// LoadNTv2Grid reads the NTv2 header tree from path. In Speed mode the
// shift nodes are read into memory now; in LowMemory mode the file is kept
// open and nodes are read lazily, one bilinear lookup at a time.
func LoadNTv2Grid(path string, mode GridMode) (*NTv2Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &GridLoadError{Name: path, Cause: errors.Wrap(err, "opening ntv2 grid file")}
	}

	g := &NTv2Grid{mode: mode}
	subgrids, err := readNTv2SubGrids(f, mode)
	if err != nil {
		f.Close()
		return nil, &GridLoadError{Name: path, Cause: errors.Wrap(err, "parsing ntv2 sub-grid tree")}
	}
	g.roots = buildNTv2Tree(subgrids)

	if mode == LowMemory {
		g.file = f
	} else {
		f.Close()
	}
	return g, nil
}

func readHeaderRecord(r io.Reader) (key string, payload []byte, err error) {
	buf := make([]byte, 16)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", nil, err
	}
	return strings.TrimRight(string(buf[:8]), " \x00"), buf[8:16], nil
}

func ntv2Int32(payload []byte) int32 {
	return int32(binary.LittleEndian.Uint32(payload[:4]))
}

func ntv2Float64(payload []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(payload))
}

func ntv2String(payload []byte) string {
	return strings.TrimRight(string(payload), " \x00")
}

// readNTv2SubGrids reads the file header (11 records) followed by NUM_FILE
// sub-grid header+data blocks, per the on-disk layout: 11 fixed 16-byte
// records per header, then GS_COUNT 16-byte (4 x float32) node records.
func readNTv2SubGrids(r io.Reader, mode GridMode) ([]*ntv2SubGrid, error) {
	var fileHeader [11][]byte
	for i := range fileHeader {
		_, payload, err := readHeaderRecord(r)
		if err != nil {
			return nil, fmt.Errorf("ntv2: reading file header: %w", err)
		}
		fileHeader[i] = payload
	}
	numFiles := int(ntv2Int32(fileHeader[2]))

	var offset int64 = 176 // 11 * 16-byte file header records already consumed
	subgrids := make([]*ntv2SubGrid, 0, numFiles)
	for i := 0; i < numFiles; i++ {
		var sub [11][]byte
		for j := range sub {
			_, payload, err := readHeaderRecord(r)
			if err != nil {
				return nil, fmt.Errorf("ntv2: reading sub-grid header %d: %w", i, err)
			}
			sub[j] = payload
		}
		offset += 176

		sg := &ntv2SubGrid{
			name:    ntv2String(sub[0]),
			parent:  ntv2String(sub[1]),
			sLat:    ntv2Float64(sub[4]),
			nLat:    ntv2Float64(sub[5]),
			eLong:   ntv2Float64(sub[6]),
			wLong:   ntv2Float64(sub[7]),
			latInc:  ntv2Float64(sub[8]),
			lonInc:  ntv2Float64(sub[9]),
		}
		gsCount := int(ntv2Int32(sub[10]))
		sg.nrows = int(math.Round((sg.nLat-sg.sLat)/sg.latInc)) + 1
		sg.ncols = int(math.Round((sg.wLong-sg.eLong)/sg.lonInc)) + 1

		if mode == Speed {
			sg.nodes = make([]ntv2Node, gsCount)
			rec := make([]byte, 16)
			for n := 0; n < gsCount; n++ {
				if _, err := io.ReadFull(r, rec); err != nil {
					return nil, fmt.Errorf("ntv2: reading node %d of %q: %w", n, sg.name, err)
				}
				sg.nodes[n] = ntv2Node{
					latShift: math.Float32frombits(binary.LittleEndian.Uint32(rec[0:4])),
					lonShift: math.Float32frombits(binary.LittleEndian.Uint32(rec[4:8])),
				}
			}
		} else {
			sg.dataOffset = offset
			if seeker, ok := r.(io.Seeker); ok {
				if _, err := seeker.Seek(int64(gsCount)*16, io.SeekCurrent); err != nil {
					return nil, err
				}
			} else {
				if _, err := io.CopyN(io.Discard, r, int64(gsCount)*16); err != nil {
					return nil, err
				}
			}
		}
		offset += int64(gsCount) * 16

		subgrids = append(subgrids, sg)
	}
	return subgrids, nil
}

// buildNTv2Tree links sub-grids into a forest by PARENT name, so a finer
// nested patch (e.g. a dense city survey) takes priority over its coarser
// enclosing grid during lookup.
func buildNTv2Tree(subgrids []*ntv2SubGrid) []*ntv2SubGrid {
	byName := make(map[string]*ntv2SubGrid, len(subgrids))
	for _, sg := range subgrids {
		byName[sg.name] = sg
	}
	var roots []*ntv2SubGrid
	for _, sg := range subgrids {
		if parent, ok := byName[sg.parent]; ok && sg.parent != "NONE" {
			parent.children = append(parent.children, sg)
		} else {
			roots = append(roots, sg)
		}
	}
	return roots
}

func (g *NTv2Grid) findDeepest(latSec, lonPWSec float64) *ntv2SubGrid {
	var search func(grids []*ntv2SubGrid) *ntv2SubGrid
	search = func(grids []*ntv2SubGrid) *ntv2SubGrid {
		for _, sg := range grids {
			if sg.contains(latSec, lonPWSec) {
				if child := search(sg.children); child != nil {
					return child
				}
				return sg
			}
		}
		return nil
	}
	return search(g.roots)
}

func (g *NTv2Grid) node(s *ntv2SubGrid, row, col int) (ntv2Node, error) {
	idx := row*s.ncols + col
	if g.mode == Speed {
		return s.nodes[idx], nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	buf := make([]byte, 16)
	if _, err := g.file.ReadAt(buf, s.dataOffset+int64(idx)*16); err != nil {
		return ntv2Node{}, err
	}
	return ntv2Node{
		latShift: math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])),
		lonShift: math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])),
	}, nil
}

// interpolate bilinearly samples a sub-grid at (latSec, lonPWSec), both in
// arcseconds, returning the shift in arcseconds.
func (g *NTv2Grid) interpolate(s *ntv2SubGrid, latSec, lonPWSec float64) (dLatSec, dLonSec float64, err error) {
	rowF := (s.nLat - latSec) / s.latInc
	colF := (lonPWSec - s.eLong) / s.lonInc

	r0 := clampInt(int(math.Floor(rowF)), 0, s.nrows-2)
	c0 := clampInt(int(math.Floor(colF)), 0, s.ncols-2)
	fr := clamp(rowF-float64(r0), 0, 1)
	fc := clamp(colF-float64(c0), 0, 1)

	v00, err := g.node(s, r0, c0)
	if err != nil {
		return 0, 0, err
	}
	v01, err := g.node(s, r0, c0+1)
	if err != nil {
		return 0, 0, err
	}
	v10, err := g.node(s, r0+1, c0)
	if err != nil {
		return 0, 0, err
	}
	v11, err := g.node(s, r0+1, c0+1)
	if err != nil {
		return 0, 0, err
	}

	dLatSec = (1-fr)*(1-fc)*float64(v00.latShift) + (1-fr)*fc*float64(v01.latShift) +
		fr*(1-fc)*float64(v10.latShift) + fr*fc*float64(v11.latShift)
	dLonSec = (1-fr)*(1-fc)*float64(v00.lonShift) + (1-fr)*fc*float64(v01.lonShift) +
		fr*(1-fc)*float64(v10.lonShift) + fr*fc*float64(v11.lonShift)
	return dLatSec, dLonSec, nil
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Shift returns the forward (Δlat, Δlon) at (latRad, lonRad), both in
// radians, standard east-positive longitude.
func (g *NTv2Grid) Shift(latRad, lonRad float64) (dLatRad, dLonRad float64, err error) {
	latSec := latRad / sec2rad
	lonPWSec := -lonRad / sec2rad

	sg := g.findDeepest(latSec, lonPWSec)
	if sg == nil {
		return 0, 0, &OutOfExtentError{Lat: latRad, Lon: lonRad, Extent: "ntv2"}
	}
	dLatSec, dLonSec, err := g.interpolate(sg, latSec, lonPWSec)
	if err != nil {
		return 0, 0, err
	}
	return dLatSec * sec2rad, -(dLonSec * sec2rad), nil
}

// InverseShift recovers the source point that forward-shifts to
// (latRad, lonRad), by the standard NTv2 iteration: seed the guess with
// the negated shift at the target itself, then re-interpolate at the
// guess until the correction stops moving or a small iteration cap is hit.
func (g *NTv2Grid) InverseShift(latRad, lonRad float64) (float64, float64, error) {
	const maxIter = 4
	const tol = 1e-11

	dLat0, dLon0, err := g.Shift(latRad, lonRad)
	if err != nil {
		return 0, 0, err
	}
	lat, lon := latRad-dLat0, lonRad-dLon0

	for i := 0; i < maxIter; i++ {
		dLat, dLon, err := g.Shift(lat, lon)
		if err != nil {
			return 0, 0, err
		}
		newLat, newLon := latRad-dLat, lonRad-dLon
		if math.Abs(newLat-lat) < tol && math.Abs(newLon-lon) < tol {
			return newLat, newLon, nil
		}
		lat, lon = newLat, newLon
	}
	return lat, lon, nil
}

// Close releases the LowMemory file handle; a no-op in Speed mode.
func (g *NTv2Grid) Close() error {
	if g.file != nil {
		return g.file.Close()
	}
	return nil
}

// GridShift2D is the NTv2 datum-shift CoordinateOperation: Reverse=false
// applies the grid's forward (Δlat, Δlon); Reverse=true recovers the
// source point by iteration (InverseShift).
type GridShift2D struct {
	Grid    *NTv2Grid
	Reverse bool
	Prec    float64
}

func (g GridShift2D) Transform(coord []float64) error {
	if len(coord) < 2 {
		return &CoordinateDimensionError{Got: len(coord), Needed: 2}
	}
	if !g.Reverse {
		dLat, dLon, err := g.Grid.Shift(coord[0], coord[1])
		if err != nil {
			return err
		}
		coord[0] += dLat
		coord[1] += dLon
		return nil
	}
	lat, lon, err := g.Grid.InverseShift(coord[0], coord[1])
	if err != nil {
		return err
	}
	coord[0], coord[1] = lat, lon
	return nil
}

func (g GridShift2D) Inverse() (CoordinateOperation, error) {
	return GridShift2D{Grid: g.Grid, Reverse: !g.Reverse, Prec: g.Prec}, nil
}

func (g GridShift2D) Precision() float64 { return g.Prec }
func (g GridShift2D) IsIdentity() bool   { return false }
func (g GridShift2D) String() string     { return "GridShift2D" }
