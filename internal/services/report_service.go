package services

import (
	"bytes"

	"arthaus/internal/domain"

	"github.com/jung-kurt/gofpdf"
)

// ReportService renders downloadable documents from plain record lists.
type ReportService struct{}

// ExhibitionsPDF renders the exhibition list as a one-table PDF.
func (ReportService) ExhibitionsPDF(exhibitions []domain.Exhibition) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Exhibitions", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Gallery Exhibitions")
	pdf.Ln(14)

	headers := []string{"Title", "Location", "Start", "End"}
	widths := []float64{70, 50, 35, 35}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range exhibitions {
		pdf.CellFormat(widths[0], 8, e.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, e.Location, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, e.StartDate, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 8, e.EndDate, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
