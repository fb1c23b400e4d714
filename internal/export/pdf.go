package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/nerrad567/steelframe-core/internal/geometry"
)

// WriteSummary writes a one-page A4 design summary to w: the headline
// dimensions, the member schedule and the color assignments.
func WriteSummary(w io.Writer, r Report) error {
	if err := r.validate(); err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.title(), false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, r.title())
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", r.date()))
	pdf.Ln(10)

	section(pdf, "Design")
	for _, fact := range designFacts(r) {
		pdf.CellFormat(50, 6, fact[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, fact[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, "Member schedule")
	widths := []float64{45, 30, 20, 40, 40}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 243, 255)
	for i, h := range ScheduleHeader {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	rows := Schedule(r.Scene.Primitives)
	for _, row := range rows {
		scheduleLine(pdf, widths, string(row.Role), string(row.Layer), row)
	}
	pdf.SetFont("Helvetica", "B", 10)
	scheduleLine(pdf, widths, "Total", "", Totals(rows))
	pdf.Ln(4)

	section(pdf, "Colors")
	pdf.MultiCell(0, 6, colorNotes(r), "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func scheduleLine(pdf *gofpdf.Fpdf, widths []float64, role, layer string, row Row) {
	pdf.CellFormat(widths[0], 6, role, "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[1], 6, layer, "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[2], 6, fmt.Sprintf("%d", row.Count), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", row.Length), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", row.Area), "1", 1, "R", false, 0, "")
}

func colorNotes(r Report) string {
	slots := []geometry.ColorSlot{geometry.ColorRoof, geometry.ColorWall, geometry.ColorTrim, geometry.ColorWainscot}
	var b strings.Builder
	for _, slot := range slots {
		fmt.Fprintf(&b, "%s: %s\n", slot, r.Scene.Palette[slot])
	}
	if r.Config.Walls.WainscotEnabled {
		fmt.Fprintf(&b, "Wainscot height: %s\n", feet(r.Config.Walls.WainscotHeight))
	} else {
		b.WriteString("Wainscot: none\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
