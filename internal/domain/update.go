package domain

import "fmt"

// RowFieldKind tags which part of a Row a RowUpdate writes.
type RowFieldKind int

const (
	RowFeature RowFieldKind = iota + 1
	RowAssumptions
	RowNumeric
	RowSortOrder
)

// RowUpdate is a single typed field assignment on a Row. Build one with
// SetFeature, SetAssumptions, SetValue or SetSortOrder.
type RowUpdate struct {
	kind  RowFieldKind
	field NumericField
	text  string
	num   float64
	order int
}

// SetFeature updates the feature name.
func SetFeature(s string) RowUpdate {
	return RowUpdate{kind: RowFeature, text: s}
}

// SetAssumptions updates the free-text assumptions.
func SetAssumptions(s string) RowUpdate {
	return RowUpdate{kind: RowAssumptions, text: s}
}

// SetValue updates one of the nine numeric fields.
func SetValue(f NumericField, v float64) RowUpdate {
	return RowUpdate{kind: RowNumeric, field: f, num: v}
}

// SetSortOrder moves the row to a new position.
func SetSortOrder(n int) RowUpdate {
	return RowUpdate{kind: RowSortOrder, order: n}
}

// Kind reports which field the update writes.
func (u RowUpdate) Kind() RowFieldKind {
	return u.kind
}

// Apply writes the update to r. It reports false for the zero RowUpdate or
// an unknown numeric field, leaving r untouched.
func (u RowUpdate) Apply(r *Row) bool {
	switch u.kind {
	case RowFeature:
		r.Feature = u.text
	case RowAssumptions:
		r.Assumptions = u.text
	case RowNumeric:
		if !u.field.Valid() {
			return false
		}
		r.SetValue(u.field, u.num)
	case RowSortOrder:
		r.SortOrder = u.order
	default:
		return false
	}
	return true
}

func (u RowUpdate) String() string {
	switch u.kind {
	case RowFeature:
		return fmt.Sprintf("feature=%q", u.text)
	case RowAssumptions:
		return fmt.Sprintf("assumptions=%q", u.text)
	case RowNumeric:
		return fmt.Sprintf("%s=%g", u.field, u.num)
	case RowSortOrder:
		return fmt.Sprintf("sortOrder=%d", u.order)
	default:
		return "noop"
	}
}

// ApplyAll applies every update in order and reports whether any of them
// changed a field.
func ApplyAll(r *Row, updates []RowUpdate) bool {
	changed := false
	for _, u := range updates {
		if u.Apply(r) {
			changed = true
		}
	}
	return changed
}
