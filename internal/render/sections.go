package render

import (
	"github.com/shopspring/decimal"

	"github.com/fiscmind/fiscmind/internal/model"
)

// Line is one labeled amount of a rendered section.
type Line struct {
	Label  string
	Amount decimal.Decimal
	Total  bool
}

// Section is one statement laid out for display.
type Section struct {
	Title string
	Lines []Line
}

func rows(rs []model.Row) []Line {
	out := make([]Line, len(rs))
	for i, r := range rs {
		out[i] = Line{Label: r.Label, Amount: r.Amount}
	}
	return out
}

// Sections lays b out in presentation order. The unmapped section appears
// only when some account could not be classified.
func Sections(b *model.Bundle) []Section {
	bs := b.BalanceSheet
	balance := Section{Title: "Balance Sheet"}
	balance.Lines = append(balance.Lines, rows(bs.Assets)...)
	balance.Lines = append(balance.Lines, Line{Label: "Total Assets", Amount: bs.TotalAssets, Total: true})
	balance.Lines = append(balance.Lines, rows(bs.Liabilities)...)
	balance.Lines = append(balance.Lines, Line{Label: "Total Liabilities", Amount: bs.TotalLiabilities, Total: true})
	balance.Lines = append(balance.Lines, rows(bs.Equity)...)
	balance.Lines = append(balance.Lines, Line{
		Label:  "Total Liabilities and Equity",
		Amount: bs.TotalLiabilities.Add(bs.TotalEquity),
		Total:  true,
	})

	is := b.IncomeStatement
	income := Section{Title: "Income Statement"}
	income.Lines = append(income.Lines, rows(is.Revenues)...)
	income.Lines = append(income.Lines, rows(is.Expenses)...)
	income.Lines = append(income.Lines, Line{Label: "Net Income", Amount: is.NetIncome, Total: true})

	socie := Section{Title: "Statement of Changes in Equity", Lines: []Line{
		{Label: "Opening Retained Earnings", Amount: b.SOCIE.OpeningRetainedEarnings},
		{Label: "Net Income", Amount: b.SOCIE.NetIncome},
		{Label: "Dividends", Amount: b.SOCIE.Dividends},
		{Label: "Ending Retained Earnings", Amount: b.SOCIE.EndingRetainedEarnings, Total: true},
	}}

	cf := b.CashFlow
	cash := Section{Title: "Cash Flow Statement"}
	cash.Lines = append(cash.Lines, Line{Label: "Net Income", Amount: cf.NetIncome})
	for _, adj := range cf.Adjustments {
		cash.Lines = append(cash.Lines, Line{Label: "Add back: " + adj.Label, Amount: adj.Amount})
	}
	cash.Lines = append(cash.Lines,
		Line{Label: "Operating Activities", Amount: cf.Operating, Total: true},
		Line{Label: "Investing Activities", Amount: cf.Investing, Total: true},
		Line{Label: "Financing Activities", Amount: cf.Financing, Total: true},
		Line{Label: "Net Change in Cash", Amount: cf.NetChange, Total: true},
	)

	out := []Section{balance, income, socie, cash}
	if len(b.Unmapped.Accounts) > 0 {
		unmapped := Section{Title: "Unmapped Accounts"}
		for _, a := range b.Unmapped.Accounts {
			unmapped.Lines = append(unmapped.Lines, Line{Label: a.Account, Amount: a.Net()})
		}
		unmapped.Lines = append(unmapped.Lines, Line{Label: "Total Unmapped", Amount: b.Unmapped.Total, Total: true})
		out = append(out, unmapped)
	}
	return out
}
