// Package render writes statement bundles as text, CSV, XLSX, PDF or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/fiscmind/fiscmind/internal/model"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatCSV, FormatXLSX, FormatPDF, FormatJSON}

// ParseFormat parses a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Extension returns the file extension for f.
func (f Format) Extension() string {
	if f == FormatText {
		return ".txt"
	}
	return "." + string(f)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Render writes b to w in format f.
func Render(w io.Writer, b *model.Bundle, f Format) error {
	switch f {
	case FormatText:
		return Text(w, b)
	case FormatCSV:
		return CSV(w, b)
	case FormatXLSX:
		return XLSX(w, b)
	case FormatPDF:
		return PDF(w, b)
	case FormatJSON:
		return JSON(w, b)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// JSON writes b as indented JSON.
func JSON(w io.Writer, b *model.Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// Fixed rounds an amount for display.
func Fixed(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// Amount formats an amount in the given currency using its symbol, digit
// grouping and minor units. Unknown or empty codes fall back to Fixed.
func Amount(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	cur := money.GetCurrency(code)
	if code == "" || cur == nil {
		return Fixed(amount)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}
