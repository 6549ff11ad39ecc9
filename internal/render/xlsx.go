package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/fiscmind/fiscmind/internal/model"
)

// maxSheetName is Excel's limit on worksheet names.
const maxSheetName = 31

// XLSX writes b as a workbook with one sheet per section.
func XLSX(w io.Writer, b *model.Bundle) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	totalAmount, err := f.NewStyle(&excelize.Style{NumFmt: 4, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	for i, s := range Sections(b) {
		sheet := sheetName(s.Title)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("naming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %q: %w", sheet, err)
		}

		_ = f.SetCellValue(sheet, "A1", s.Title)
		_ = f.SetCellStyle(sheet, "A1", "A1", bold)
		_ = f.SetCellValue(sheet, "A2", fmt.Sprintf("%s, %s", b.Standard, currencyLabel(b.Currency)))
		_ = f.SetColWidth(sheet, "A", "A", 36)
		_ = f.SetColWidth(sheet, "B", "B", 18)

		for j, l := range s.Lines {
			row := j + 4
			labelCell := fmt.Sprintf("A%d", row)
			amountCell := fmt.Sprintf("B%d", row)
			_ = f.SetCellValue(sheet, labelCell, l.Label)
			_ = f.SetCellValue(sheet, amountCell, l.Amount.Round(2).InexactFloat64())
			if l.Total {
				_ = f.SetCellStyle(sheet, labelCell, labelCell, bold)
				_ = f.SetCellStyle(sheet, amountCell, amountCell, totalAmount)
			} else {
				_ = f.SetCellStyle(sheet, amountCell, amountCell, amount)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func sheetName(title string) string {
	if len(title) > maxSheetName {
		return title[:maxSheetName]
	}
	return title
}
