package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fiscmind/fiscmind/internal/accounts"
	"github.com/fiscmind/fiscmind/internal/model"
	"github.com/fiscmind/fiscmind/internal/statements"
)

func bundle(t *testing.T) *model.Bundle {
	t.Helper()
	d := decimal.RequireFromString
	entries := []model.TrialBalanceEntry{
		{Account: "Cash", Debit: d("1500")},
		{Account: "Property, Plant & Equipment", Debit: d("2000")},
		{Account: "Accounts Payable", Credit: d("300")},
		{Account: "Retained Earnings", Credit: d("200")},
		{Account: "Sales Revenue", Credit: d("1000")},
		{Account: "Rent Expense", Debit: d("400")},
		{Account: "Depreciation Expense", Debit: d("100")},
		{Account: "Mystery Account", Debit: d("30.555")},
	}
	b, err := statements.NewGenerator(accounts.DefaultChart()).Generate(t.Context(), entries, statements.Options{
		Standard:          "ASC",
		ReportingCurrency: "USD",
	})
	require.NoError(t, err)
	return b
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("docx")
	assert.Error(t, err)

	assert.Equal(t, ".txt", FormatText.Extension())
	assert.Equal(t, ".xlsx", FormatXLSX.Extension())
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
}

func TestAmount(t *testing.T) {
	d := decimal.RequireFromString
	assert.Equal(t, "$12,500.00", Amount(d("12500"), "USD"))
	assert.Equal(t, "$0.13", Amount(d("0.125"), "usd"))
	assert.Equal(t, "12500.00", Amount(d("12500"), ""))
	assert.Equal(t, "7.10", Amount(d("7.1"), "NOPE"))
	assert.Equal(t, "-3.50", Fixed(d("-3.5")))
}

func TestSections(t *testing.T) {
	sections := Sections(bundle(t))
	require.Len(t, sections, 5)

	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{
		"Balance Sheet", "Income Statement", "Statement of Changes in Equity", "Cash Flow Statement", "Unmapped Accounts",
	}, titles)

	assert.Equal(t, "Current Assets", sections[0].Lines[0].Label)
	assert.Equal(t, "Add back: Depreciation", sections[3].Lines[1].Label)
	assert.Equal(t, "Mystery Account", sections[4].Lines[0].Label)
}

func TestSections_NoUnmapped(t *testing.T) {
	b := bundle(t)
	b.Unmapped = model.UnmappedSummary{}
	assert.Len(t, Sections(b), 4)
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, bundle(t)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Balance Sheet\n"))
	assert.Contains(t, out, "Current Assets,1500.00\n")
	assert.Contains(t, out, "\n\nIncome Statement\n")
	assert.Contains(t, out, "Net Income,500.00\n")
	assert.Contains(t, out, "Ending Retained Earnings,700.00\n")
	assert.Contains(t, out, "Operating Activities,600.00\n")
	assert.Contains(t, out, "Mystery Account,30.56\n")

	r := csv.NewReader(strings.NewReader(out))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	var titles int
	for _, rec := range records {
		if len(rec) == 1 {
			titles++
		}
	}
	assert.Equal(t, 5, titles)
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, bundle(t)))

	out := buf.String()
	assert.Contains(t, out, "Standard: ASC")
	assert.Contains(t, out, "Currency: USD")
	assert.Contains(t, out, "$1,500.00")
	assert.Contains(t, out, "Statement of Changes in Equity")
	assert.Contains(t, out, "Net Change in Cash")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bundle(t)))

	var got model.Bundle
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, model.StandardASC, got.Standard)
	assert.True(t, got.IncomeStatement.NetIncome.Equal(decimal.NewFromInt(500)))
	assert.Contains(t, buf.String(), `"balance_sheet"`)
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX(&buf, bundle(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"Balance Sheet", "Income Statement", "Statement of Changes in Equity", "Cash Flow Statement", "Unmapped Accounts",
	}, f.GetSheetList())

	label, err := f.GetCellValue("Income Statement", "A6")
	require.NoError(t, err)
	assert.Equal(t, "Net Income", label)

	raw, err := f.GetCellValue("Income Statement", "B6", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "500", raw)
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, bundle(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRender_Dispatch(t *testing.T) {
	b := bundle(t)
	for _, f := range Formats {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, b, f), "format %s", f)
		assert.NotZero(t, buf.Len(), "format %s", f)
	}
	assert.Error(t, Render(&bytes.Buffer{}, b, Format("docx")))
}
