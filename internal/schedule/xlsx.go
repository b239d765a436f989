package schedule

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	barsSheet   = "Bars"
	totalsSheet = "Totals"
)

// BuildXLSX renders the schedule as a workbook with a bar sheet and a
// totals sheet.
func BuildXLSX(s *Schedule) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", barsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(totalsSheet); err != nil {
		return nil, err
	}

	header := []any{"Mark", "Bar type", "Segments", "Length (mm)", "Unit weight (kg/m)", "Weight (kg)", "Copy", "Id"}
	if err := f.SetSheetRow(barsSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, l := range s.Lines {
		row := []any{l.Mark, l.BarType, l.Segments, float64(l.Length), float64(l.UnitWeight), l.Weight, l.Copy, l.ID}
		if err := f.SetSheetRow(barsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	_ = f.SetCellValue(totalsSheet, "A1", s.Title)
	totalsHeader := []any{"Bar type", "Count", "Length (m)", "Weight (kg)"}
	if err := f.SetSheetRow(totalsSheet, "A3", &totalsHeader); err != nil {
		return nil, err
	}
	row := 4
	for _, t := range s.Totals {
		values := []any{t.BarType, t.Count, t.Length, t.Weight}
		if err := f.SetSheetRow(totalsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, err
		}
		row++
	}
	_ = f.SetCellValue(totalsSheet, fmt.Sprintf("A%d", row), "Total")
	_ = f.SetCellValue(totalsSheet, fmt.Sprintf("D%d", row), s.TotalWeight())

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
