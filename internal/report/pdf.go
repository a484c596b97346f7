// Package report renders a user's payment history into a PDF document.
// It operates only on already-fetched records and has no remote
// dependencies.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/billmate/billmate/internal/model"
)

// table layout in millimetres on an A4 portrait page.
var columnWidths = [6]float64{35, 48, 24, 38, 28, 22}

var columnTitles = [6]string{"Name", "Email", "Amount", "Address", "Phone", "Date"}

// PaymentReport renders the record set into a tabular PDF with a totals
// header. It is a pure function of its input: same records, same document
// layout.
func PaymentReport(payments []*model.Payment, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("My Paid Bills Report", false)
	// Pin document metadata so identical input renders identical bytes.
	pdf.SetCreationDate(generatedAt.UTC())
	pdf.SetModificationDate(generatedAt.UTC())
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "My Paid Bills Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.UTC().Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total Bills: %d", len(payments)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total Amount: %.2f", model.TotalAmount(payments)))
	pdf.Ln(10)

	writeHeaderRow(pdf)

	pdf.SetFont("Helvetica", "", 9)
	fill := false
	for _, p := range payments {
		row := [6]string{
			p.PayerName,
			p.Email,
			fmt.Sprintf("%.2f", p.Amount.Float64()),
			p.Address,
			p.Phone,
			p.Date.UTC().Format("2006-01-02"),
		}
		for i, cell := range row {
			pdf.CellFormat(columnWidths[i], 7, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	return buf.Bytes(), nil
}

func writeHeaderRow(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range columnTitles {
		pdf.CellFormat(columnWidths[i], 7, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFillColor(245, 245, 245)
}
