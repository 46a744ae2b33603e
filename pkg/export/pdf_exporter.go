package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const pdfTableWidth = 277.0 // A4 landscape minus margins

// PDFExporter renders a week grid as a landscape PDF, one banner-headed
// table section per weekday.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render draws the grid title, then for each day a shaded banner, the column
// headers and the session rows.
func (e *PDFExporter) Render(grid WeekGrid) ([]byte, error) {
	if len(grid.Columns) == 0 {
		return nil, fmt.Errorf("pdf export needs at least one column")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if grid.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, grid.Title, "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	colWidth := pdfTableWidth / float64(len(grid.Columns))
	for _, day := range grid.Days {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(pdfTableWidth, 8, day.Day, "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 9)
		for _, column := range grid.Columns {
			pdf.CellFormat(colWidth, 7, column, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, row := range day.Rows {
			for i := range grid.Columns {
				value := ""
				if i < len(row) {
					value = row[i]
				}
				pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(3)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
