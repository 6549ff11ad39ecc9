package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/fiscmind/fiscmind/internal/model"
)

// PDF writes b as a single A4 document.
func PDF(w io.Writer, b *model.Bundle) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Financial Statements", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Financial Statements")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Standard: %s    Currency: %s", b.Standard, currencyLabel(b.Currency)))
	pdf.Ln(10)

	for _, s := range Sections(b) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 7, s.Title)
		pdf.Ln(8)
		for _, l := range s.Lines {
			style, border, label := "", "", "    "+l.Label
			if l.Total {
				style, border, label = "B", "T", l.Label
			}
			pdf.SetFont("Arial", style, 10)
			pdf.CellFormat(120, 6, label, border, 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, Fixed(l.Amount), border, 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
