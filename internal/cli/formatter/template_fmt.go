package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/estimo/internal/aggregate"
	"github.com/alexanderramin/estimo/internal/domain"
)

// FormatTemplateList renders a styled template list inside a bordered box.
func FormatTemplateList(templates []domain.Template, now time.Time) string {
	headers := []string{"ID", "NAME", "GROUPS", "ROWS", "UPDATED"}
	rows := make([][]string, 0, len(templates))

	for _, t := range templates {
		n := 0
		for _, g := range t.Data {
			n += len(g.Rows)
		}
		rows = append(rows, []string{
			Dim(t.ID.String()),
			Bold(t.Name),
			strconv.Itoa(len(t.Data)),
			strconv.Itoa(n),
			RelativeDateFrom(t.UpdatedAt, now),
		})
	}

	table := Table{Headers: headers, Rows: rows, Right: map[int]bool{2: true, 3: true}}
	return RenderBox("Templates", table.Render())
}

// FormatTemplateShow renders a template's groups and rows. Groups and rows
// are numbered by position since template content carries no stable IDs.
func FormatTemplateShow(t domain.Template) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", StyleBold.Render(t.Name), Dim("#"+t.ID.String()))

	groups := domain.SortGroups(t.Data)
	for gi, g := range groups {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", StyleHeader.Render(strconv.Itoa(gi+1)+"."), Header(g.Name))

		rows := make([][]string, 0, len(g.Rows))
		for ri, r := range g.SortedRows() {
			cells := []string{Dim(strconv.Itoa(ri + 1)), r.Feature}
			for _, tr := range domain.Tracks {
				cells = append(cells, FormatRange(rowTrack(r, tr)))
			}
			rows = append(rows, cells)
		}

		headers := []string{"#", "FEATURE"}
		for _, tr := range domain.Tracks {
			headers = append(headers, TrackStyle(tr).Render(strings.ToUpper(tr.String())))
		}
		b.WriteString(Table{Headers: headers, Rows: rows, Right: map[int]bool{0: true}}.Render())
	}
	if len(groups) == 0 {
		b.WriteString("\n" + Dim("Empty template.") + "\n")
	}

	lo, mid, hi := aggregate.GrandTotals(t.Data).Sum()
	fmt.Fprintf(&b, "\n%s %s\n", Dim("combined"), Bold(FormatRange(lo, mid, hi)))

	return RenderBox("", b.String())
}
