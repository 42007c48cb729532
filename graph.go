package geocrs

import (
	"fmt"

	"github.com/pkg/errors"
)

// ResolveDatumShift finds the best operation transforming a geographic
// (lat, lon, h) coordinate from s's datum to t's datum. If the datums
// already compare equal it returns Identity. Otherwise it collects the
// candidates of the datum operation graph: every direct registered edge
// (this covers both a plain Helmert/translation edge and a nadgrid edge --
// both are just CoordinateOperation values registered with AddOperation,
// so there's no separate nadgrid case to special-case here), and the
// via-WGS84 composition using each side's registered pivot; the candidate
// with the lowest Precision wins.
//
// Every candidate this function returns operates on (lat, lon, h) in
// radians/meters, the shape the CRS pipeline actually carries. Direct
// edges registered by registerDatum are already bracketed into that
// shape at registration time; grid edges (NTv2 GridShift2D, GR3DF97A)
// are geographic-space by construction. Only the via-WGS84 candidate is
// assembled here from each side's bare geocentric pivot, so it is the
// one place this function brackets with geocentricShift before adding
// it to the candidate list.
//
// The datum graph here is small enough (built-in datums, a WGS84 pivot,
// and whatever the caller registers) that a bounded search degenerates to
// exactly these two candidate shapes; a general breadth-first walk isn't
// needed to stay within the ≤3-hop bound.
func ResolveDatumShift(s, t *GeodeticDatum) (CoordinateOperation, error) {
	if s.Equal(t) {
		return Identity{}, nil
	}

	var candidates []CoordinateOperation
	candidates = append(candidates, s.OperationsTo(t)...)

	if sToWGS84, ok := s.ToWGS84(); ok {
		if tToWGS84, ok2 := t.ToWGS84(); ok2 {
			if wgs84ToT, err := tToWGS84.Inverse(); err == nil {
				candidates = append(candidates, geocentricShift(Compose(sToWGS84, wgs84ToT), s.Ellipsoid, t.Ellipsoid))
			}
		}
	}

	if len(candidates) == 0 {
		err := &UnsupportedError{What: fmt.Sprintf("no datum shift path from %s to %s", s.Name, t.Name)}
		return nil, errors.Wrap(err, "resolving datum shift")
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if betterDatumShift(c, best) {
			best = c
		}
	}
	return best, nil
}

// betterDatumShift reports whether a should be preferred over b: lower
// precision value (a tighter worst-case error bound) wins; ties break by
// shortest chain.
func betterDatumShift(a, b CoordinateOperation) bool {
	pa, pb := a.Precision(), b.Precision()
	if pa != pb {
		return pa < pb
	}
	return chainLength(a) < chainLength(b)
}

// geocentricShift brackets a bare geocentric-space operation (a
// Translation3D, Helmert7, Sequence of those, or Identity, such as a
// datum's toWGS84 pivot) with the geographic<->geocentric conversion
// needed to run it on a (lat, lon, h) coordinate: convert to geocentric
// using srcEllipsoid, apply op, convert back to geographic using
// dstEllipsoid. Per spec §2/§4.3, a Helmert/translation datum shift is
// only meaningful in XYZ space.
func geocentricShift(op CoordinateOperation, srcEllipsoid, dstEllipsoid *Ellipsoid) CoordinateOperation {
	if op.IsIdentity() && srcEllipsoid.Equal(dstEllipsoid) {
		return Identity{}
	}
	return Compose(
		GeographicToGeocentric{Ellipsoid: srcEllipsoid},
		op,
		GeocentricToGeographic{Ellipsoid: dstEllipsoid},
	)
}

func chainLength(op CoordinateOperation) int {
	if seq, ok := op.(Sequence); ok {
		return len(seq.Steps)
	}
	return 1
}

// BuildTransform builds the full pipeline from CRS a to CRS b:
// a.toGeographic() joined with the datum shift between their horizontal
// datums, joined with b.fromGeographic() -- the control-flow rule every
// CRS-to-CRS transform follows.
func BuildTransform(a, b CRS) (CoordinateOperation, error) {
	toGeo, err := a.ToGeographic()
	if err != nil {
		return nil, err
	}
	fromGeo, err := b.FromGeographic()
	if err != nil {
		return nil, err
	}

	da, db := a.HorizontalDatum(), b.HorizontalDatum()
	var shift CoordinateOperation = Identity{}
	if da != nil && db != nil {
		shift, err = ResolveDatumShift(da, db)
		if err != nil {
			return nil, err
		}
	}
	return Compose(toGeo, shift, fromGeo), nil
}
