package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/backend-billing/internal/billing"
)

// PDF table column widths in millimetres (A4 portrait, 10mm margins).
var pdfColWidths = [4]float64{85, 25, 35, 45}

var pdfHeaders = [4]string{"Product", "Qty", "Unit Price", "Total"}

// PDF renders the bill as a bordered A4 table and returns the document bytes.
// No intermediate files are written.
func PDF(b billing.Bill) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(10, 15, 10)
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, b.Store, "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "", 11)
	doc.CellFormat(0, 8, "Date: "+b.Date.Format("02-01-2006"), "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Arial", "B", 11)
	for i, header := range pdfHeaders {
		doc.CellFormat(pdfColWidths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Arial", "", 11)
	for _, it := range b.Items {
		doc.CellFormat(pdfColWidths[0], 8, it.Product, "1", 0, "L", false, 0, "")
		doc.CellFormat(pdfColWidths[1], 8, strconv.Itoa(it.Qty), "1", 0, "C", false, 0, "")
		doc.CellFormat(pdfColWidths[2], 8, it.Price.StringFixed(2), "1", 0, "C", false, 0, "")
		doc.CellFormat(pdfColWidths[3], 8, it.Amount.StringFixed(2), "1", 0, "C", false, 0, "")
		doc.Ln(-1)
	}

	doc.SetFont("Arial", "B", 11)
	doc.CellFormat(pdfColWidths[0]+pdfColWidths[1]+pdfColWidths[2], 8, "Grand Total", "1", 0, "R", false, 0, "")
	doc.CellFormat(pdfColWidths[3], 8, b.Total.StringFixed(2), "1", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: pdf: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
