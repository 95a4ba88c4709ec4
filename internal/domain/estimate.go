package domain

import (
	"slices"
	"time"
)

// Row is a single feature line with three-point estimates for each track.
// The JSON tags describe the internal shape persisted in local mode; the
// backend's snake_case shape lives in package wire.
type Row struct {
	ID          ID      `json:"id"`
	Feature     string  `json:"feature"`
	Assumptions string  `json:"assumptions"`
	DesignMin   float64 `json:"designMin"`
	DesignMost  float64 `json:"designMost"`
	DesignMax   float64 `json:"designMax"`
	BEMin       float64 `json:"beMin"`
	BEMost      float64 `json:"beMost"`
	BEMax       float64 `json:"beMax"`
	FEMin       float64 `json:"feMin"`
	FEMost      float64 `json:"feMost"`
	FEMax       float64 `json:"feMax"`
	SortOrder   int     `json:"sortOrder"`
}

// Value returns the numeric field f. Unknown fields read as 0.
func (r *Row) Value(f NumericField) float64 {
	if p := r.field(f); p != nil {
		return *p
	}
	return 0
}

// SetValue assigns the numeric field f. Unknown fields are ignored.
func (r *Row) SetValue(f NumericField, v float64) {
	if p := r.field(f); p != nil {
		*p = v
	}
}

func (r *Row) field(f NumericField) *float64 {
	switch f {
	case DesignMin:
		return &r.DesignMin
	case DesignMost:
		return &r.DesignMost
	case DesignMax:
		return &r.DesignMax
	case BEMin:
		return &r.BEMin
	case BEMost:
		return &r.BEMost
	case BEMax:
		return &r.BEMax
	case FEMin:
		return &r.FEMin
	case FEMost:
		return &r.FEMost
	case FEMax:
		return &r.FEMax
	default:
		return nil
	}
}

// Group is a named, ordered collection of rows inside an estimate or
// template.
type Group struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Rows      []Row  `json:"rows"`
	SortOrder int    `json:"sortOrder"`
}

// SortedRows returns a copy of the rows ordered by SortOrder. Rows sharing
// a position keep their slice order.
func (g Group) SortedRows() []Row {
	rows := slices.Clone(g.Rows)
	slices.SortStableFunc(rows, func(a, b Row) int { return a.SortOrder - b.SortOrder })
	return rows
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	out := g
	out.Rows = slices.Clone(g.Rows)
	if out.Rows == nil {
		out.Rows = []Row{}
	}
	return out
}

// Estimate is the top-level document: a named set of groups.
type Estimate struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Groups    []Group   `json:"groups"`
}

// SortedGroups returns a copy of the groups ordered by SortOrder.
func (e Estimate) SortedGroups() []Group {
	return SortGroups(e.Groups)
}

// RowCount returns the number of rows across all groups.
func (e Estimate) RowCount() int {
	n := 0
	for _, g := range e.Groups {
		n += len(g.Rows)
	}
	return n
}

// Clone returns a deep copy of the estimate.
func (e Estimate) Clone() Estimate {
	out := e
	out.Groups = CloneGroups(e.Groups)
	return out
}

// Template is reusable estimate content without the estimate wrapper.
type Template struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Data      []Group   `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the template.
func (t Template) Clone() Template {
	out := t
	out.Data = CloneGroups(t.Data)
	return out
}

// CloneGroups deep-copies a slice of groups. A nil slice becomes empty.
func CloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = g.Clone()
	}
	return out
}

// SortGroups returns a copy of groups ordered by SortOrder. Groups sharing a
// position keep their slice order.
func SortGroups(groups []Group) []Group {
	out := slices.Clone(groups)
	slices.SortStableFunc(out, func(a, b Group) int { return a.SortOrder - b.SortOrder })
	return out
}

// RenumberGroups rewrites SortOrder to 0..n-1 following the current order.
func RenumberGroups(groups []Group) {
	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return groups[a].SortOrder - groups[b].SortOrder })
	for pos, i := range order {
		groups[i].SortOrder = pos
	}
}

// RenumberRows rewrites SortOrder to 0..n-1 following the current order.
func RenumberRows(rows []Row) {
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return rows[a].SortOrder - rows[b].SortOrder })
	for pos, i := range order {
		rows[i].SortOrder = pos
	}
}

// FindGroup returns the index of the group with the given ID, or -1.
func FindGroup(groups []Group, id ID) int {
	return slices.IndexFunc(groups, func(g Group) bool { return SameID(g.ID, id) })
}

// FindRow returns the index of the row with the given ID, or -1.
func FindRow(rows []Row, id ID) int {
	return slices.IndexFunc(rows, func(r Row) bool { return SameID(r.ID, id) })
}
