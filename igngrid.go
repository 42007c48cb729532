package geocrs

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// IGNGrid is an IGN-format ASCII grid: a regular (lon, lat) lattice of
// dim-vector values, used for both 3D horizontal/geocentric-translation
// grids (GR3DF97A) and 1D vertical (altitude/geoid) grids.
//
// Values are in degrees for the bounds/increments (matching the file's own
// units); IGNGridNoData (9999) marks a missing node.
type IGNGrid struct {
	lonMin, lonMax, latMin, latMax float64
	dLon, dLat                     float64
	order                          int
	hasCoords                      bool
	dim                            int
	hasPrecision                   bool
	translations                   []string
	title                          string

	nrows, ncols int
	values       []float64 // row*ncols*dim + col*dim + k, row 0 = south, col 0 = west
}

// IGNGridNoData is the sentinel value marking a grid node with no data.
const IGNGridNoData = 9999

// LoadIGNGrid reads an IGN ASCII grid file.
func LoadIGNGrid(path string) (*IGNGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &GridLoadError{Name: path, Cause: errors.Wrap(err, "opening ign grid file")}
	}
	defer f.Close()

	g, err := parseIGNGrid(f)
	if err != nil {
		return nil, &GridLoadError{Name: path, Cause: errors.Wrap(err, "parsing ign grid body")}
	}
	return g, nil
}

// isIGNGridSpace reports whether b is a whitespace byte separating numeric
// tokens in an IGN grid file (space, tab, or line ending).
func isIGNGridSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func parseIGNGrid(f *os.File) (*IGNGrid, error) {
	r := bufio.NewReaderSize(f, 64*1024)

	// nextToken and nextLine share the same underlying reader position, so
	// numeric fields can be read word-by-word while the translation and
	// title lines -- which may contain embedded spaces -- are read whole.
	nextToken := func() (string, error) {
		var b byte
		var err error
		for {
			b, err = r.ReadByte()
			if err != nil {
				return "", fmt.Errorf("ign grid: unexpected end of file")
			}
			if !isIGNGridSpace(b) {
				break
			}
		}
		var sb strings.Builder
		sb.WriteByte(b)
		for {
			b, err = r.ReadByte()
			if err != nil {
				break
			}
			if isIGNGridSpace(b) {
				_ = r.UnreadByte()
				break
			}
			sb.WriteByte(b)
		}
		return sb.String(), nil
	}
	nextFloat := func() (float64, error) {
		tok, err := nextToken()
		if err != nil {
			return 0, err
		}
		var v float64
		if _, err := fmt.Sscanf(tok, "%g", &v); err != nil {
			return 0, err
		}
		return v, nil
	}
	nextInt := func() (int, error) {
		v, err := nextFloat()
		return int(v), err
	}
	// nextLine reads one full line of text. It is only ever called right
	// after a run of nextToken/nextFloat/nextInt calls that left the reader
	// positioned mid-line (just past the last numeric header token); the
	// first call discards that line's trailing newline before returning the
	// next line's content, so a caller always gets the line that follows
	// the tokens it just consumed.
	atLineStart := false
	nextLine := func() (string, error) {
		if !atLineStart {
			if _, err := r.ReadString('\n'); err != nil {
				return "", fmt.Errorf("ign grid: unexpected end of file")
			}
			atLineStart = true
		}
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("ign grid: unexpected end of file")
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	g := &IGNGrid{}
	var err error
	if g.lonMin, err = nextFloat(); err != nil {
		return nil, err
	}
	if g.lonMax, err = nextFloat(); err != nil {
		return nil, err
	}
	if g.latMin, err = nextFloat(); err != nil {
		return nil, err
	}
	if g.latMax, err = nextFloat(); err != nil {
		return nil, err
	}
	if g.dLon, err = nextFloat(); err != nil {
		return nil, err
	}
	if g.dLat, err = nextFloat(); err != nil {
		return nil, err
	}
	if g.order, err = nextInt(); err != nil {
		return nil, err
	}
	hasCoords, err := nextInt()
	if err != nil {
		return nil, err
	}
	g.hasCoords = hasCoords != 0
	if g.dim, err = nextInt(); err != nil {
		return nil, err
	}
	hasPrecision, err := nextInt()
	if err != nil {
		return nil, err
	}
	g.hasPrecision = hasPrecision != 0

	for i := 0; i < g.dim; i++ {
		line, err := nextLine()
		if err != nil {
			return nil, err
		}
		g.translations = append(g.translations, line)
	}
	if g.title, err = nextLine(); err != nil {
		return nil, err
	}

	g.nrows = int(math.Round((g.latMax-g.latMin)/g.dLat)) + 1
	g.ncols = int(math.Round((g.lonMax-g.lonMin)/g.dLon)) + 1
	g.values = make([]float64, g.nrows*g.ncols*g.dim)

	latOuterDesc := g.order == 2 || g.order == 4
	lonInnerDesc := g.order == 3 || g.order == 4

	n := g.nrows * g.ncols
	for seq := 0; seq < n; seq++ {
		outer := seq / g.ncols
		inner := seq % g.ncols

		row := outer
		if latOuterDesc {
			row = g.nrows - 1 - outer
		}
		col := inner
		if lonInnerDesc {
			col = g.ncols - 1 - inner
		}

		if g.hasCoords {
			if _, err := nextFloat(); err != nil { // lat, unused: header bounds are authoritative
				return nil, err
			}
			if _, err := nextFloat(); err != nil { // lon
				return nil, err
			}
		}
		for k := 0; k < g.dim; k++ {
			v, err := nextFloat()
			if err != nil {
				return nil, err
			}
			g.values[row*g.ncols*g.dim+col*g.dim+k] = v
		}
		if g.hasPrecision {
			if _, err := nextFloat(); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func (g *IGNGrid) nodeValue(row, col, k int) float64 {
	return g.values[row*g.ncols*g.dim+col*g.dim+k]
}

// Interpolate bilinearly samples the grid at (latRad, lonRad), returning
// the dim-vector value. Points outside the grid's extent, or whose
// surrounding nodes include a no-data sentinel, raise OutOfExtent.
func (g *IGNGrid) Interpolate(latRad, lonRad float64) ([]float64, error) {
	latDeg := latRad / d2r
	lonDeg := lonRad / d2r

	if latDeg < g.latMin || latDeg > g.latMax || lonDeg < g.lonMin || lonDeg > g.lonMax {
		return nil, &OutOfExtentError{Lat: latRad, Lon: lonRad, Extent: g.title}
	}

	rowF := (latDeg - g.latMin) / g.dLat
	colF := (lonDeg - g.lonMin) / g.dLon
	r0 := clampInt(int(math.Floor(rowF)), 0, g.nrows-2)
	c0 := clampInt(int(math.Floor(colF)), 0, g.ncols-2)
	fr := clamp(rowF-float64(r0), 0, 1)
	fc := clamp(colF-float64(c0), 0, 1)

	out := make([]float64, g.dim)
	for k := 0; k < g.dim; k++ {
		v00 := g.nodeValue(r0, c0, k)
		v01 := g.nodeValue(r0, c0+1, k)
		v10 := g.nodeValue(r0+1, c0, k)
		v11 := g.nodeValue(r0+1, c0+1, k)
		if v00 == IGNGridNoData || v01 == IGNGridNoData || v10 == IGNGridNoData || v11 == IGNGridNoData {
			return nil, &OutOfExtentError{Lat: latRad, Lon: lonRad, Extent: g.title + " (no data)"}
		}
		out[k] = (1-fr)*(1-fc)*v00 + (1-fr)*fc*v01 + fr*(1-fc)*v10 + fr*fc*v11
	}
	return out, nil
}

// VerticalGridOffset converts between an orthometric altitude H and an
// ellipsoidal height h via h = H + N(lam, phi), sampling a 1D IGN grid for
// the geoid undulation N. AssociatedDatum documents which horizontal datum
// (lam, phi) must be expressed in for the lookup to be meaningful; callers
// composing a Sequence insert a horizontal datum shift first when needed.
type VerticalGridOffset struct {
	Grid            *IGNGrid
	AssociatedDatum *GeodeticDatum
	Reverse         bool // false: H -> h (add N); true: h -> H (subtract N)
	Prec            float64
}

func (v VerticalGridOffset) Transform(coord []float64) error {
	if len(coord) < 3 {
		return &CoordinateDimensionError{Got: len(coord), Needed: 3}
	}
	phi, lam := coord[0], coord[1]
	vals, err := v.Grid.Interpolate(phi, lam)
	if err != nil {
		return err
	}
	if v.Reverse {
		coord[2] -= vals[0]
	} else {
		coord[2] += vals[0]
	}
	return nil
}

func (v VerticalGridOffset) Inverse() (CoordinateOperation, error) {
	return VerticalGridOffset{Grid: v.Grid, AssociatedDatum: v.AssociatedDatum, Reverse: !v.Reverse, Prec: v.Prec}, nil
}

func (v VerticalGridOffset) Precision() float64 { return v.Prec }
func (v VerticalGridOffset) IsIdentity() bool   { return false }
func (v VerticalGridOffset) String() string {
	if v.Reverse {
		return "VerticalGridOffset(h->H)"
	}
	return "VerticalGridOffset(H->h)"
}

// GridShift3D samples a 3D IGN grid (e.g. GR3DF97A) at the geographic
// position memoized in the scratch slots by an earlier MemoizeCoord(0),
// MemoizeCoord(1) step, and adds the resulting (dX, dY, dZ) geocentric
// translation to the live X,Y,Z. frenchgrid.go's GR3DF97A does not use it:
// that operation samples the grid itself inside its own iteration. By
// itself GridShift3D is not exactly invertible, so Inverse reports
// NonInvertible and callers needing the true inverse use the dedicated
// iterative operation instead.
type GridShift3D struct {
	Grid *IGNGrid
	Prec float64
}

func (g GridShift3D) Transform(coord []float64) error {
	need := ScratchOffset + 2
	if len(coord) <= need {
		return &CoordinateDimensionError{Got: len(coord), Needed: need + 1}
	}
	phi := coord[ScratchOffset+0]
	lam := coord[ScratchOffset+1]
	vals, err := g.Grid.Interpolate(phi, lam)
	if err != nil {
		return err
	}
	coord[0] += vals[0]
	coord[1] += vals[1]
	coord[2] += vals[2]
	return nil
}

func (g GridShift3D) Inverse() (CoordinateOperation, error) {
	return nil, &NonInvertibleError{OpName: "GridShift3D"}
}

func (g GridShift3D) Precision() float64 { return g.Prec }
func (g GridShift3D) IsIdentity() bool   { return false }
func (g GridShift3D) String() string     { return "GridShift3D" }
