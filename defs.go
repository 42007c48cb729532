// Copyright 2015 Sam L'ecuyer. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geocrs

import (
	"math"
	"strconv"
	"strings"
)

const (
	sec2rad float64 = 4.84813681109535993589914102357e-6
	epsln   float64 = 1.0e-10
)

var hugeVal = math.Inf(1)

// parseDegreeString parses a PROJ-style "DdM'S\"H" degree/minute/second
// string (used by prime meridian definitions and the "lat_0"-family
// ParameterMap accessors), unchanged from the original helper.
func parseDegreeString(ds string) float64 {
	var res float64
	idx := strings.Index(ds, "d")
	if idx >= 0 {
		f, _ := strconv.ParseFloat(ds[0:idx], 64)
		res += f
		ds = ds[idx+1:]
	} else {
		res, _ = strconv.ParseFloat(ds, 64)
	}
	idx = strings.Index(ds, "'")
	if idx >= 0 {
		f, _ := strconv.ParseFloat(ds[0:idx], 64)
		res += f / 60
		ds = ds[idx+1:]
	}
	idx = strings.Index(ds, "\"")
	if idx >= 0 {
		f, _ := strconv.ParseFloat(ds[0:idx], 64)
		res += f / 3600
		ds = ds[idx+1:]
	}
	if strings.HasSuffix(ds, "W") || strings.HasSuffix(ds, "S") {
		res *= -1
	}
	return res
}

// keyVal splits a "+key=val" token, unchanged from the original helper.
func keyVal(s string) (key string, val string) {
	defs := strings.Split(s, "=")
	key = defs[0]
	if len(defs) == 2 {
		val = defs[1]
	}
	return
}
