package layout

import (
	"fmt"
	"math"
)

// Validate checks a layout before conversion and returns every problem found.
func Validate(l *Layout) []error {
	var errs []error

	if l.Name == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	for gi, g := range l.Groups {
		prefix := fmt.Sprintf("groups[%d]", gi)
		if g.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		for ri, r := range g.Rows {
			rowPrefix := fmt.Sprintf("%s.rows[%d]", prefix, ri)
			if r.Feature == "" {
				errs = append(errs, fmt.Errorf("%s.feature is required", rowPrefix))
			}
			errs = append(errs, validateTriple(rowPrefix+".design", r.Design)...)
			errs = append(errs, validateTriple(rowPrefix+".backend", r.Backend)...)
			errs = append(errs, validateTriple(rowPrefix+".frontend", r.Frontend)...)
		}
	}
	return errs
}

func validateTriple(field string, v []float64) []error {
	if len(v) == 0 {
		return nil
	}
	if len(v) != 3 {
		return []error{fmt.Errorf("%s: expected [min, most, max], got %d values", field, len(v))}
	}
	var errs []error
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			errs = append(errs, fmt.Errorf("%s: values must be finite and non-negative, got %v", field, v))
			break
		}
	}
	return errs
}
