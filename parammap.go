package geocrs

import "strconv"

// ParameterMap is the external interface through which a CRS registry
// loader (WKT, PROJ-string, EPSG database...) hands named parameters to the
// core. Parsing those sources is out of scope; the core only ever reads
// parameters through this interface.
//
// Values are always strings; the core does its own numeric parsing, the
// same way the original paramset did (defs.go).
type ParameterMap interface {
	// Get returns the raw string value for key and whether it was present.
	Get(key string) (string, bool)
}

// RecognizedKeys documents the parameter names the core understands;
// ParameterMap implementations are free to hold more.
var RecognizedKeys = []string{
	"proj", "ellps", "datum", "a", "b", "rf", "pm", "towgs84", "nadgrids",
	"units", "to_meter", "lat_0", "lat_1", "lat_2", "lat_ts", "lon_0",
	"lonc", "alpha", "gamma", "k", "k_0", "x_0", "y_0", "zone", "south",
	"title",
}

// mapParameterMap is a minimal map-backed ParameterMap, used by tests and
// as a reference implementation; behaves like the original paramset.
type mapParameterMap map[string]string

func (p mapParameterMap) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// NewParameterMap builds a ParameterMap out of a PROJ-style "+key=val
// +key=val" string, mirroring the original NewProjection parsing
// (projection.go) but factored out so it can seed any ParameterMap-based
// constructor, not just Projection.
func NewParameterMap(projString string) ParameterMap {
	parms := make(mapParameterMap)
	for _, part := range splitPlus(projString) {
		key, val := keyVal(part)
		if key == "" {
			continue
		}
		parms[key] = val
	}
	return parms
}

func splitPlus(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '+' {
			if i > start {
				parts = append(parts, trimSpace(s[start:i]))
			}
			start = i + 1
		}
	}
	if start < len(s) {
		parts = append(parts, trimSpace(s[start:]))
	}
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t') {
		j--
	}
	return s[i:j]
}

// getString/getBool/getFloat/getDegree are package-level accessor helpers
// over any ParameterMap, generalizing the original paramset methods
// (defs.go) from a concrete map to the interface.

func getString(p ParameterMap, key string) (string, bool) {
	return p.Get(key)
}

func getBool(p ParameterMap, key string) (bool, bool) {
	v, ok := p.Get(key)
	if !ok {
		return false, false
	}
	if v == "" {
		return true, true
	}
	b, err := strconv.ParseBool(v)
	return b, err == nil
}

func getFloat(p ParameterMap, key string) (float64, bool) {
	v, ok := p.Get(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}

func getDegree(p ParameterMap, key string) (float64, bool) {
	v, ok := p.Get(key)
	if !ok {
		return 0, false
	}
	return parseDegreeString(v) * d2r, true
}
