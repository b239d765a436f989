package schedule

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// BuildPDF renders the per-type totals and the bar list on A4 pages.
func BuildPDF(s *Schedule) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, s.Title)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Bar type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Count", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Length (m)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Weight (kg)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, t := range s.Totals {
		pdf.CellFormat(40, 6, t.BarType, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", t.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", t.Length), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.1f", t.Weight), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(110, 6, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, fmt.Sprintf("%.1f", s.TotalWeight()), "1", 0, "R", false, 0, "")
	pdf.Ln(12)

	pdf.CellFormat(15, 6, "Mark", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Legs", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Length (mm)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Weight (kg)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Copy", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, l := range s.Lines {
		copied := ""
		if l.Copy {
			copied = "yes"
		}
		pdf.CellFormat(15, 5, fmt.Sprintf("%d", l.Mark), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 5, l.BarType, "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 5, fmt.Sprintf("%d", l.Segments), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 5, fmt.Sprintf("%.0f", float64(l.Length)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 5, fmt.Sprintf("%.2f", l.Weight), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 5, copied, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
