package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the schedule workbook.
const (
	SheetSchedule = "Schedule"
	SheetDesign   = "Design"
	SheetOpenings = "Openings"
)

// ScheduleHeader is the header row of the schedule sheet.
var ScheduleHeader = []string{"Role", "Layer", "Count", "Total Length (ft)", "Total Area (sq ft)"}

// OpeningsHeader is the header row of the openings sheet.
var OpeningsHeader = []string{"ID", "Type", "Wall", "Position (ft)", "Width (ft)", "Height (ft)", "Bottom (ft)"}

// WriteSchedule writes the member schedule workbook to w.
func WriteSchedule(w io.Writer, r Report) error {
	if err := r.validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	if err := fillWorkbook(f, r); err != nil {
		f.Close()
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		f.Close()
		return fmt.Errorf("writing workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing workbook: %w", err)
	}
	return nil
}

func fillWorkbook(f *excelize.File, r Report) error {
	if err := f.SetSheetName("Sheet1", SheetSchedule); err != nil {
		return fmt.Errorf("renaming default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Color: "000000", Style: 1}},
	})
	if err != nil {
		return fmt.Errorf("creating total style: %w", err)
	}

	// Schedule
	rows := Schedule(r.Scene.Primitives)
	if err := writeHeader(f, SheetSchedule, ScheduleHeader, headerStyle, []float64{18, 12, 10, 18, 18}); err != nil {
		return err
	}
	for i, row := range rows {
		values := []any{string(row.Role), string(row.Layer), row.Count, round2(row.Length), round2(row.Area)}
		if err := writeRow(f, SheetSchedule, i+2, values); err != nil {
			return err
		}
	}
	totals := Totals(rows)
	totalRow := len(rows) + 2
	if err := writeRow(f, SheetSchedule, totalRow, []any{"Total", "", totals.Count, round2(totals.Length), round2(totals.Area)}); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, totalRow)
	last, _ := excelize.CoordinatesToCellName(len(ScheduleHeader), totalRow)
	if err := f.SetCellStyle(SheetSchedule, first, last, totalStyle); err != nil {
		return fmt.Errorf("styling totals: %w", err)
	}
	if err := freezeHeader(f, SheetSchedule); err != nil {
		return err
	}

	// Design
	if _, err := f.NewSheet(SheetDesign); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := writeHeader(f, SheetDesign, []string{"Property", "Value"}, headerStyle, []float64{20, 40}); err != nil {
		return err
	}
	if err := writeRow(f, SheetDesign, 2, []any{"Name", r.title()}); err != nil {
		return err
	}
	for i, fact := range designFacts(r) {
		if err := writeRow(f, SheetDesign, i+3, []any{fact[0], fact[1]}); err != nil {
			return err
		}
	}

	// Openings
	if _, err := f.NewSheet(SheetOpenings); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := writeHeader(f, SheetOpenings, OpeningsHeader, headerStyle, []float64{38, 14, 8, 14, 12, 12, 12}); err != nil {
		return err
	}
	for i, o := range r.Config.Openings {
		values := []any{o.ID, string(o.Type), string(o.Wall), round2(o.Position), round2(o.Width), round2(o.Height), round2(o.BottomOffset)}
		if err := writeRow(f, SheetOpenings, i+2, values); err != nil {
			return err
		}
	}
	return freezeHeader(f, SheetOpenings)
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int, widths []float64) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("converting coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("setting header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("setting header style: %w", err)
		}
	}
	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("converting column number: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("converting coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("setting cell %s: %w", cell, err)
		}
	}
	return nil
}

func freezeHeader(f *excelize.File, sheet string) error {
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing panes: %w", err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
