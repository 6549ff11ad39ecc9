package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fiscmind/fiscmind/internal/model"
)

const (
	numFields = 6
	colName   = 0
	colMajor  = 1
	colSub    = 2
	colSide   = 3
	colContra = 4
	colDesc   = 5
)

var header = []string{"account", "major", "sub", "normal_balance", "contra", "description"}

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colName] = acct.Name
	row[colMajor] = string(acct.Classification.Major)
	row[colSub] = string(acct.Classification.Sub)
	row[colSide] = string(acct.Classification.Side)
	if acct.Classification.Contra {
		row[colContra] = "true"
	}
	row[colDesc] = acct.Description
	return row
}

// UnmarshalAccount converts a CSV row to an Account. An empty normal_balance
// is left empty and filled in by NewChart.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colName] == "" {
		return model.Account{}, fmt.Errorf("empty account name")
	}

	major, err := model.ParseMajorCategory(record[colMajor])
	if err != nil {
		return model.Account{}, err
	}

	sub, err := model.ParseSubCategory(record[colSub])
	if err != nil {
		return model.Account{}, err
	}

	var side model.Side
	if record[colSide] != "" {
		side, err = model.ParseSide(record[colSide])
		if err != nil {
			return model.Account{}, err
		}
	}

	var contra bool
	if record[colContra] != "" {
		contra, err = strconv.ParseBool(record[colContra])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing contra %q: %w", record[colContra], err)
		}
	}

	return model.Account{
		Name: record[colName],
		Classification: model.Classification{
			Major:  major,
			Sub:    sub,
			Side:   side,
			Contra: contra,
		},
		Description: record[colDesc],
	}, nil
}
