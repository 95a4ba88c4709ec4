package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/estimo/internal/aggregate"
	"github.com/alexanderramin/estimo/internal/domain"
)

const assumptionsWidth = 32

// FormatEstimateList renders estimates with their combined most-likely total.
func FormatEstimateList(estimates []domain.Estimate, now time.Time) string {
	headers := []string{"ID", "NAME", "GROUPS", "ROWS", "TOTAL", "UPDATED"}
	rows := make([][]string, 0, len(estimates))

	for _, e := range estimates {
		lo, mid, hi := aggregate.GrandTotals(e.Groups).Sum()
		rows = append(rows, []string{
			Dim(e.ID.String()),
			Bold(e.Name),
			strconv.Itoa(len(e.Groups)),
			strconv.Itoa(e.RowCount()),
			FormatRange(lo, mid, hi),
			RelativeDateFrom(e.UpdatedAt, now),
		})
	}

	table := Table{Headers: headers, Rows: rows, Right: map[int]bool{2: true, 3: true}}
	return RenderBox("Estimates", table.Render())
}

// FormatEstimate renders every group as a table with per-track ranges and a
// totals footer, followed by the grand totals.
func FormatEstimate(e domain.Estimate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", StyleBold.Render(e.Name), Dim("#"+e.ID.String()))
	if !e.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "%s\n", Dim("updated "+e.UpdatedAt.Format("Jan 2, 2006 15:04")))
	}

	groups := e.SortedGroups()
	for _, g := range groups {
		b.WriteString("\n")
		b.WriteString(formatGroup(g))
	}
	if len(groups) == 0 {
		b.WriteString("\n" + Dim("No groups yet.") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(formatGrandTotals(aggregate.GrandTotals(e.Groups)))

	return RenderBox("", b.String())
}

func formatGroup(g domain.Group) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", StyleHeader.Render(strings.ToUpper(g.Name)), Dim("#"+g.ID.String()))

	headers := []string{"ID", "FEATURE"}
	for _, tr := range domain.Tracks {
		headers = append(headers, TrackStyle(tr).Render(strings.ToUpper(tr.String())))
	}
	headers = append(headers, "ASSUMPTIONS")

	rows := make([][]string, 0, len(g.Rows))
	for _, r := range g.SortedRows() {
		cells := []string{Dim(r.ID.String()), r.Feature}
		for _, tr := range domain.Tracks {
			cells = append(cells, FormatRange(rowTrack(r, tr)))
		}
		cells = append(cells, Dim(Truncate(r.Assumptions, assumptionsWidth)))
		rows = append(rows, cells)
	}

	totals := aggregate.GroupTotals(g)
	footer := []string{"", Bold("Total")}
	for _, tr := range domain.Tracks {
		footer = append(footer, Bold(FormatRange(totals.Track(tr))))
	}

	table := Table{Headers: headers, Rows: rows, Footer: footer}
	b.WriteString(table.Render())
	return b.String()
}

func formatGrandTotals(t aggregate.Totals) string {
	var b strings.Builder
	b.WriteString(Header("Grand total"))
	b.WriteString("\n")

	rows := make([][]string, 0, len(domain.Tracks))
	for _, tr := range domain.Tracks {
		lo, mid, hi := t.Track(tr)
		rows = append(rows, []string{TrackStyle(tr).Render(tr.String()), FormatHours(lo), FormatHours(mid), FormatHours(hi)})
	}
	lo, mid, hi := t.Sum()
	footer := []string{Bold("combined"), Bold(FormatHours(lo)), Bold(FormatHours(mid)), Bold(FormatHours(hi))}

	table := Table{
		Headers: []string{"TRACK", "MIN", "MOST", "MAX"},
		Rows:    rows,
		Footer:  footer,
		Right:   map[int]bool{1: true, 2: true, 3: true},
	}
	b.WriteString(table.Render())
	return b.String()
}

func rowTrack(r domain.Row, tr domain.Track) (lo, mid, hi float64) {
	flo, fmid, fhi := tr.Fields()
	return r.Value(flo), r.Value(fmid), r.Value(fhi)
}
