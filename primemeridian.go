package geocrs

// PrimeMeridian is a named longitude-zero reference, expressed as an offset
// from Greenwich in radians.
type PrimeMeridian struct {
	Name               string
	LongitudeFromGreenwichRad float64
}

// Named prime meridians, grounded on the original pm_list (defs.go), which
// stored the same set as DMS strings; values here are pre-resolved radians
// (parseDegreeString(dms) * d2r) so construction never needs string parsing
// outside parammap.go.
var (
	Greenwich = PrimeMeridian{"Greenwich", 0}
	Lisbon    = PrimeMeridian{"Lisbon", parseDegreeString("9d07'54.862\"W") * d2r}
	Paris     = PrimeMeridian{"Paris", parseDegreeString("2d20'14.025\"E") * d2r}
	Bogota    = PrimeMeridian{"Bogota", parseDegreeString("74d04'51.3\"W") * d2r}
	Madrid    = PrimeMeridian{"Madrid", parseDegreeString("3d41'16.58\"W") * d2r}
	Rome      = PrimeMeridian{"Rome", parseDegreeString("12d27'8.4\"E") * d2r}
	Bern      = PrimeMeridian{"Bern", parseDegreeString("7d26'22.5\"E") * d2r}
	Jakarta   = PrimeMeridian{"Jakarta", parseDegreeString("106d48'27.79\"E") * d2r}
	Ferro     = PrimeMeridian{"Ferro", parseDegreeString("17d40'W") * d2r}
	Brussels  = PrimeMeridian{"Brussels", parseDegreeString("4d22'4.71\"E") * d2r}
	Stockholm = PrimeMeridian{"Stockholm", parseDegreeString("18d3'29.8\"E") * d2r}
	Athens    = PrimeMeridian{"Athens", parseDegreeString("23d42'58.815\"E") * d2r}
	Oslo      = PrimeMeridian{"Oslo", parseDegreeString("10d43'22.5\"E") * d2r}
)

// Equal compares by resolved offset, matching within a tenth of an
// arc-second -- named meridians are immutable built-ins so exact float
// equality would also work, but this keeps the comparison meaningful for
// meridians built from a parsed definition string.
func (p PrimeMeridian) Equal(o PrimeMeridian) bool {
	d := p.LongitudeFromGreenwichRad - o.LongitudeFromGreenwichRad
	if d < 0 {
		d = -d
	}
	return d < 0.1*sec2rad
}
