package testutil

import (
	"time"

	"github.com/alexanderramin/estimo/internal/domain"
)

// FixedTime is the timestamp fixtures use unless told otherwise.
var FixedTime = time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)

// Row options
type RowOption func(*domain.Row)

func WithTrack(tr domain.Track, lo, mid, hi float64) RowOption {
	return func(r *domain.Row) {
		fLo, fMid, fHi := tr.Fields()
		r.SetValue(fLo, lo)
		r.SetValue(fMid, mid)
		r.SetValue(fHi, hi)
	}
}

func WithAssumptions(s string) RowOption {
	return func(r *domain.Row) {
		r.Assumptions = s
	}
}

func WithRowSortOrder(n int) RowOption {
	return func(r *domain.Row) {
		r.SortOrder = n
	}
}

func WithRowID(id domain.ID) RowOption {
	return func(r *domain.Row) {
		r.ID = id
	}
}

func NewTestRow(feature string, opts ...RowOption) domain.Row {
	r := domain.NewRow(domain.SetFeature(feature))
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// NewTestGroup builds a group whose rows take sort orders from their
// position unless a row already carries one.
func NewTestGroup(name string, rows ...domain.Row) domain.Group {
	g := domain.NewGroup(name)
	for i, r := range rows {
		if r.SortOrder == 0 {
			r.SortOrder = i
		}
		g.Rows = append(g.Rows, r)
	}
	return g
}

// Estimate options
type EstimateOption func(*domain.Estimate)

func WithGroups(groups ...domain.Group) EstimateOption {
	return func(e *domain.Estimate) {
		for i, g := range groups {
			g.SortOrder = i
			e.Groups = append(e.Groups, g)
		}
	}
}

func WithEstimateID(id domain.ID) EstimateOption {
	return func(e *domain.Estimate) {
		e.ID = id
	}
}

func WithUpdatedAt(t time.Time) EstimateOption {
	return func(e *domain.Estimate) {
		e.UpdatedAt = t
	}
}

func NewTestEstimate(name string, opts ...EstimateOption) domain.Estimate {
	e := domain.Estimate{
		ID:        domain.PendingID(domain.GenerateID()),
		Name:      name,
		CreatedAt: FixedTime,
		UpdatedAt: FixedTime,
		Groups:    []domain.Group{},
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
