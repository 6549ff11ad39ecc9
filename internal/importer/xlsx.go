package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/fiscmind/fiscmind/internal/model"
)

// XLSXParser parses the first worksheet of an Excel workbook laid out like
// the CSV format.
type XLSXParser struct{}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Extensions returns the file extensions handled.
func (p *XLSXParser) Extensions() []string { return []string{".xlsx", ".xlsm"} }

// Parse reads the first sheet of a workbook.
func (p *XLSXParser) Parse(r io.Reader) ([]model.TrialBalanceEntry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return parseRecords(rows)
}
