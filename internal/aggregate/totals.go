// Package aggregate computes per-group and grand totals of three-point
// estimates. Every function is pure.
package aggregate

import (
	"math"

	"github.com/alexanderramin/estimo/internal/domain"
)

// Totals holds one sum per numeric field, indexed by domain.NumericField.
type Totals [domain.NumFields]float64

// Get returns the total for field f, or 0 for an unknown field.
func (t Totals) Get(f domain.NumericField) float64 {
	if !f.Valid() {
		return 0
	}
	return t[f]
}

// Add returns the field-wise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	var out Totals
	for i := range t {
		out[i] = t[i] + o[i]
	}
	return out
}

// Track returns the min, most and max totals of a single track.
func (t Totals) Track(tr domain.Track) (lo, mid, hi float64) {
	fLo, fMid, fHi := tr.Fields()
	return t.Get(fLo), t.Get(fMid), t.Get(fHi)
}

// Sum returns the min, most and max totals across all three tracks.
func (t Totals) Sum() (lo, mid, hi float64) {
	for _, tr := range domain.Tracks {
		l, m, h := t.Track(tr)
		lo += l
		mid += m
		hi += h
	}
	return lo, mid, hi
}

// SumField sums field f across rows. NaN values count as zero.
func SumField(rows []domain.Row, f domain.NumericField) float64 {
	var acc float64
	for i := range rows {
		acc += valueOrZero(rows[i].Value(f))
	}
	return acc
}

// GroupTotals sums every numeric field across the group's rows.
func GroupTotals(g domain.Group) Totals {
	var out Totals
	for _, f := range domain.NumericFields {
		out[f] = SumField(g.Rows, f)
	}
	return out
}

// GrandTotals sums every numeric field across all rows of all groups. The
// result equals the field-wise sum of each group's GroupTotals.
func GrandTotals(groups []domain.Group) Totals {
	var out Totals
	for _, f := range domain.NumericFields {
		for _, g := range groups {
			out[f] += SumField(g.Rows, f)
		}
	}
	return out
}

func valueOrZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
