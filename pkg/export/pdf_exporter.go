package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const pdfTableWidth = 190.0

// PDFExporter renders a Dataset as a one-table A4 document.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render produces the PDF with an optional title and subtitle above the
// table. Columns share the page width evenly.
func (e *PDFExporter) Render(data Dataset, title, subtitle string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf export needs headers")
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(10, 15, 10)
	doc.AddPage()

	if title != "" {
		doc.SetFont("Arial", "B", 14)
		doc.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	}
	if subtitle != "" {
		doc.SetFont("Arial", "", 10)
		doc.CellFormat(0, 6, subtitle, "", 1, "C", false, 0, "")
	}
	doc.Ln(4)

	colWidth := pdfTableWidth / float64(len(data.Headers))
	doc.SetFont("Arial", "B", 10)
	for _, header := range data.Headers {
		doc.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, cell := range data.record(row) {
			doc.CellFormat(colWidth, 7, cell, "1", 0, "", false, 0, "")
		}
		doc.Ln(-1)
	}

	doc.Ln(4)
	doc.SetFont("Arial", "I", 8)
	doc.CellFormat(0, 5, "Generated "+time.Now().UTC().Format(time.RFC3339), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
