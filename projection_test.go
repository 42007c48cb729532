// Copyright 2015 Sam L'ecuyer. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocrs

import (
	"math"
	"testing"
)

func close(a, b float64) bool {
	return math.Abs(a-b) < 1.0e-5
}

func TestProjLngLat(t *testing.T) {
	pm := NewParameterMap("+title=WGS 84 (long/lat) +proj=longlat +ellps=WGS84 +datum=WGS84")
	pj, err := NewProjection(pm)
	if err != nil {
		t.Fatal(err)
	}
	lng0, lat0 := 18.5*d2r, 54.2*d2r
	x, y, err := pj.Forward(lng0, lat0)
	if err != nil {
		t.Fatal(err)
	}
	if !close(lng0, x) || !close(lat0, y) {
		t.Errorf("fwd translation off: (%f, %f) - (%f, %f)", lng0, lat0, x, y)
	}

	lng1, lat1, err := pj.Inverse(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if !close(lng0, lng1) || !close(lat0, lat1) {
		t.Errorf("inv translation off: (%f, %f) - (%f, %f)", lng0, lat0, lng1, lat1)
	}
}

func TestProjMercator(t *testing.T) {
	pm := NewParameterMap("+title=WGS 84 / Pseudo-Mercator +proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m")
	pj, err := NewProjection(pm)
	if err != nil {
		t.Fatal(err)
	}
	lng0, lat0 := 18.5*d2r, 54.2*d2r
	expx, expy := 2059410.57968, 7208125.2609
	x, y, err := pj.Forward(lng0, lat0)
	if err != nil {
		t.Fatal(err)
	}
	if !close(expx, x) || !close(expy, y) {
		t.Errorf("fwd translation off: (%f, %f) - (%f, %f)", expx, expy, x, y)
	}

	lng1, lat1, err := pj.Inverse(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if !close(lng0, lng1) || !close(lat0, lat1) {
		t.Errorf("inv translation off: (%f, %f) - (%f, %f)", lng0, lat0, lng1, lat1)
	}
}

func TestProjLCCRoundTrip(t *testing.T) {
	pm := NewParameterMap("+proj=lcc +lat_0=18 +lat_1=18 +lon_0=-77 +k_0=1.0 +R=6378137")
	pj, err := NewProjection(pm)
	if err != nil {
		t.Fatal(err)
	}
	lng0, lat0 := -0.1396263, 0.4712389
	x, y, err := pj.Forward(lng0, lat0)
	if err != nil {
		t.Fatal(err)
	}
	lng1, lat1, err := pj.Inverse(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if !close(lng0, lng1) || !close(lat0, lat1) {
		t.Errorf("inv translation off: (%f, %f) - (%f, %f)", lng0, lat0, lng1, lat1)
	}
}

func TestProjUnknownName(t *testing.T) {
	pm := NewParameterMap("+proj=bogus +ellps=WGS84")
	if _, err := NewProjection(pm); err == nil {
		t.Error("expected an error for an unregistered projection name")
	}
}

func TestProjRoundTripTable(t *testing.T) {
	cases := []string{
		"+proj=eqc +ellps=WGS84 +lat_ts=0",
		"+proj=cass +ellps=WGS84 +lon_0=2.3",
		"+proj=mill +ellps=WGS84",
		"+proj=cea +ellps=WGS84 +lat_ts=30",
		"+proj=aea +ellps=WGS84 +lat_1=29.5 +lat_2=45.5 +lat_0=23 +lon_0=-96",
		"+proj=stere +ellps=WGS84 +lat_0=90 +lat_ts=70 +lon_0=-45",
		"+proj=sterea +ellps=WGS84 +lat_0=52.15616 +lon_0=5.38763 +k=0.9999079",
		"+proj=laea +ellps=WGS84 +lat_0=52 +lon_0=10",
		"+proj=tmerc +ellps=WGS84 +lat_0=0 +lon_0=9 +k=0.9996 +x_0=500000",
		"+proj=utm +ellps=WGS84 +zone=32",
		"+proj=somerc +ellps=bessel +lat_0=46.95240556 +lon_0=7.43958333 +k_0=1 +x_0=600000 +y_0=200000",
		"+proj=gstmerc +ellps=WGS84 +lon_0=9 +lat_0=0",
	}
	for _, c := range cases {
		pm := NewParameterMap(c)
		pj, err := NewProjection(pm)
		if err != nil {
			t.Errorf("%s: %v", c, err)
			continue
		}
		lam, phi := 0.02, 0.3
		x, y, err := pj.Forward(lam, phi)
		if err != nil {
			t.Errorf("%s: forward: %v", c, err)
			continue
		}
		lam1, phi1, err := pj.Inverse(x, y)
		if err != nil {
			t.Errorf("%s: inverse: %v", c, err)
			continue
		}
		tol := pj.Precision() / 6378137.0 * 50
		if tol < 1e-6 {
			tol = 1e-6
		}
		if math.Abs(lam-lam1) > tol || math.Abs(phi-phi1) > tol {
			t.Errorf("%s: round trip off: (%f, %f) - (%f, %f)", c, lam, phi, lam1, phi1)
		}
	}
}
