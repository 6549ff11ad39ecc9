package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fiscmind/fiscmind/internal/model"
)

// CSVParser parses delimited trial balance exports with a header row naming
// the account, debit, credit and (optional) currency columns.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Extensions returns the file extensions handled.
func (p *CSVParser) Extensions() []string { return []string{".csv"} }

// Parse reads a CSV trial balance.
func (p *CSVParser) Parse(r io.Reader) ([]model.TrialBalanceEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading trial balance CSV: %w", err)
	}
	return parseRecords(records)
}

var columnAliases = map[string]string{
	"account":      colAccount,
	"account name": colAccount,
	"name":         colAccount,
	"debit":        colDebit,
	"dr":           colDebit,
	"credit":       colCredit,
	"cr":           colCredit,
	"currency":     colCurrency,
	"ccy":          colCurrency,
}

const (
	colAccount  = "account"
	colDebit    = "debit"
	colCredit   = "credit"
	colCurrency = "currency"
)

type columns map[string]int

func (c columns) get(rec []string, col string) string {
	i, ok := c[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func readHeader(rec []string) (columns, error) {
	cols := make(columns)
	for i, name := range rec {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if col, ok := columnAliases[name]; ok {
			if _, dup := cols[col]; !dup {
				cols[col] = i
			}
		}
	}
	if _, ok := cols[colAccount]; !ok {
		return nil, errors.New("header has no account column")
	}
	_, hasDebit := cols[colDebit]
	_, hasCredit := cols[colCredit]
	if !hasDebit && !hasCredit {
		return nil, errors.New("header has neither a debit nor a credit column")
	}
	return cols, nil
}

// parseRecords turns a header row plus data rows into entries. Rows with no
// content are skipped. An empty input yields no entries.
func parseRecords(records [][]string) ([]model.TrialBalanceEntry, error) {
	if len(records) == 0 {
		return nil, nil
	}
	cols, err := readHeader(records[0])
	if err != nil {
		return nil, err
	}

	var entries []model.TrialBalanceEntry
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		e, err := parseRow(cols, rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseRow(cols columns, rec []string) (model.TrialBalanceEntry, error) {
	account := cols.get(rec, colAccount)
	if account == "" {
		return model.TrialBalanceEntry{}, errors.New("empty account")
	}
	debit, err := parseAmount(cols.get(rec, colDebit))
	if err != nil {
		return model.TrialBalanceEntry{}, fmt.Errorf("parsing debit: %w", err)
	}
	credit, err := parseAmount(cols.get(rec, colCredit))
	if err != nil {
		return model.TrialBalanceEntry{}, fmt.Errorf("parsing credit: %w", err)
	}
	return model.TrialBalanceEntry{
		Account:  account,
		Debit:    debit,
		Credit:   credit,
		Currency: strings.ToUpper(cols.get(rec, colCurrency)),
	}, nil
}

// parseAmount reads a non-negative amount. Blank is zero; thousands
// separators are ignored.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %q", s)
	}
	return d, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
