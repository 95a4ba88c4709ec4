package domain

// NumericField names one of the nine three-point estimate values on a Row.
type NumericField int

const (
	DesignMin NumericField = iota
	DesignMost
	DesignMax
	BEMin
	BEMost
	BEMax
	FEMin
	FEMost
	FEMax

	// NumFields is the number of numeric fields on a Row.
	NumFields = 9
)

// NumericFields lists every numeric field in canonical order.
var NumericFields = [NumFields]NumericField{
	DesignMin, DesignMost, DesignMax,
	BEMin, BEMost, BEMax,
	FEMin, FEMost, FEMax,
}

var fieldNames = [NumFields]string{
	"designMin", "designMost", "designMax",
	"beMin", "beMost", "beMax",
	"feMin", "feMost", "feMax",
}

var wireFieldNames = [NumFields]string{
	"design_min", "design_most", "design_max",
	"be_min", "be_most", "be_max",
	"fe_min", "fe_most", "fe_max",
}

// String returns the camelCase name of the field, e.g. "feMost".
func (f NumericField) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return fieldNames[f]
}

// WireName returns the snake_case name used by the backend, e.g. "fe_most".
func (f NumericField) WireName() string {
	if !f.Valid() {
		return "unknown"
	}
	return wireFieldNames[f]
}

// Valid reports whether f is one of the nine known fields.
func (f NumericField) Valid() bool {
	return f >= 0 && int(f) < NumFields
}

// Track returns the estimation track the field belongs to.
func (f NumericField) Track() Track {
	return Track(int(f) / 3)
}

// ParseNumericField accepts either the camelCase or the snake_case name.
func ParseNumericField(s string) (NumericField, bool) {
	for i := range NumFields {
		if fieldNames[i] == s || wireFieldNames[i] == s {
			return NumericField(i), true
		}
	}
	return 0, false
}

// Track is one of the three estimation tracks.
type Track int

const (
	TrackDesign Track = iota
	TrackBackend
	TrackFrontend
)

// Tracks lists the tracks in display order.
var Tracks = [3]Track{TrackDesign, TrackBackend, TrackFrontend}

func (t Track) String() string {
	switch t {
	case TrackDesign:
		return "design"
	case TrackBackend:
		return "backend"
	case TrackFrontend:
		return "frontend"
	default:
		return "unknown"
	}
}

// Fields returns the min, most and max fields of the track.
func (t Track) Fields() (lo, mid, hi NumericField) {
	base := NumericField(int(t) * 3)
	return base, base + 1, base + 2
}
