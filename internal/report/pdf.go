package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/estimo/internal/aggregate"
	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/go-pdf/fpdf"
)

const (
	featureWidth = 85.0
	trackWidth   = 48.0
	rowHeight    = 7.0
)

// WritePDF renders e as a landscape A4 table: one section per group with its
// rows and a totals line, followed by the grand totals.
func WritePDF(w io.Writer, e domain.Estimate) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(e.Name), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Estimate: "+e.Name))
	pdf.Ln(10)
	if !e.UpdatedAt.IsZero() {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, "Updated "+e.UpdatedAt.Format("2006-01-02 15:04"))
		pdf.Ln(8)
	}

	groups := e.SortedGroups()
	if len(groups) == 0 {
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, "No groups.")
		pdf.Ln(8)
	}

	for _, g := range groups {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 9, tr(g.Name))
		pdf.Ln(9)

		tableHeader(pdf)
		pdf.SetFont("Arial", "", 10)
		for _, r := range g.SortedRows() {
			pdf.CellFormat(featureWidth, rowHeight, tr(r.Feature), "1", 0, "L", false, 0, "")
			for _, t := range domain.Tracks {
				lo, mid, hi := t.Fields()
				pdf.CellFormat(trackWidth, rowHeight, triple(r.Value(lo), r.Value(mid), r.Value(hi)), "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
		totalsLine(pdf, "Group total", aggregate.GroupTotals(g))
		pdf.Ln(4)
	}

	grand := aggregate.GrandTotals(groups)
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 9, "Grand total")
	pdf.Ln(9)
	tableHeader(pdf)
	totalsLine(pdf, "All groups", grand)

	lo, mid, hi := grand.Sum()
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Combined (min / most / max): "+triple(lo, mid, hi))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}

func tableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(featureWidth, rowHeight, "Feature", "1", 0, "L", true, 0, "")
	for _, name := range []string{"Design", "Backend", "Frontend"} {
		pdf.CellFormat(trackWidth, rowHeight, name, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func totalsLine(pdf *fpdf.Fpdf, label string, t aggregate.Totals) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(featureWidth, rowHeight, label, "1", 0, "L", false, 0, "")
	for _, tr := range domain.Tracks {
		lo, mid, hi := t.Track(tr)
		pdf.CellFormat(trackWidth, rowHeight, triple(lo, mid, hi), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}

func triple(lo, mid, hi float64) string {
	return num(lo) + " / " + num(mid) + " / " + num(hi)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
