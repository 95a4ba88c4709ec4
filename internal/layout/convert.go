package layout

import (
	"github.com/alexanderramin/estimo/internal/domain"
)

// ToGroups converts a validated layout into groups with fresh pending IDs.
// Sort orders follow file order.
func ToGroups(l *Layout) []domain.Group {
	groups := make([]domain.Group, 0, len(l.Groups))
	for gi, g := range l.Groups {
		group := domain.NewGroup(g.Name)
		group.SortOrder = gi
		for ri, r := range g.Rows {
			updates := []domain.RowUpdate{
				domain.SetFeature(r.Feature),
				domain.SetAssumptions(r.Assumptions),
				domain.SetSortOrder(ri),
			}
			updates = appendTrack(updates, domain.TrackDesign, r.Design)
			updates = appendTrack(updates, domain.TrackBackend, r.Backend)
			updates = appendTrack(updates, domain.TrackFrontend, r.Frontend)
			group.Rows = append(group.Rows, domain.NewRow(updates...))
		}
		groups = append(groups, group)
	}
	return groups
}

// FromGroups builds a layout from groups in sort order. Tracks that are all
// zero are left out.
func FromGroups(name string, groups []domain.Group) *Layout {
	l := &Layout{Name: name, Groups: make([]Group, 0, len(groups))}
	for _, g := range domain.SortGroups(groups) {
		out := Group{Name: g.Name}
		for _, r := range g.SortedRows() {
			out.Rows = append(out.Rows, Row{
				Feature:     r.Feature,
				Assumptions: r.Assumptions,
				Design:      track(r, domain.TrackDesign),
				Backend:     track(r, domain.TrackBackend),
				Frontend:    track(r, domain.TrackFrontend),
			})
		}
		l.Groups = append(l.Groups, out)
	}
	return l
}

func appendTrack(updates []domain.RowUpdate, tr domain.Track, v []float64) []domain.RowUpdate {
	if len(v) != 3 {
		return updates
	}
	lo, mid, hi := tr.Fields()
	return append(updates,
		domain.SetValue(lo, v[0]),
		domain.SetValue(mid, v[1]),
		domain.SetValue(hi, v[2]),
	)
}

func track(r domain.Row, tr domain.Track) []float64 {
	lo, mid, hi := tr.Fields()
	v := []float64{r.Value(lo), r.Value(mid), r.Value(hi)}
	if v[0] == 0 && v[1] == 0 && v[2] == 0 {
		return nil
	}
	return v
}
