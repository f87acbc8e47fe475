package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

var columnWidths = []float64{32, 26, 26, 30, 36, 40}

// the core fonts only cover cp1252
var pdfText = strings.NewReplacer("₹", "Rs.")

// WritePDF writes an A4 report with a title, the generation time and a
// striped table of rows that continues across pages.
func WritePDF(w io.Writer, rows []Row, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Time Entries Report", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(
			0, 8,
			fmt.Sprintf("Page %d of {nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Time Entries Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(
		0, 8,
		"Generated on "+generatedAt.Format("Jan 2, 2006 15:04"),
		"", 1, "L", false, 0, "",
	)
	pdf.Ln(4)

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(220, 220, 220)
		pdf.SetTextColor(0, 0, 0)

		for i, h := range Header {
			pdf.CellFormat(columnWidths[i], 8, h, "1", 0, "C", true, 0, "")
		}

		pdf.Ln(-1)
	}

	header()

	pdf.SetFont("Arial", "", 9)

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	for n, r := range rows {
		if pdf.GetY()+7 > pageHeight-bottom-15 {
			pdf.AddPage()
			header()
			pdf.SetFont("Arial", "", 9)
		}

		if n%2 == 1 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for i, f := range r.Fields() {
			pdf.CellFormat(
				columnWidths[i], 7, pdfText.Replace(f),
				"1", 0, "C", true, 0, "",
			)
		}

		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return err
	}

	return pdf.Output(w)
}
